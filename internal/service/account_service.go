package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gamepedia/community-service/internal/domain"
	"github.com/gamepedia/community-service/internal/dto"
	identityprovider "github.com/gamepedia/community-service/internal/infrastructure/identity-provider"
	"github.com/gamepedia/community-service/internal/infrastructure/mailer"
	objectstorage "github.com/gamepedia/community-service/internal/infrastructure/object-storage"
	"github.com/gamepedia/community-service/internal/repository"
	"github.com/gamepedia/community-service/pkg/errs"
	"github.com/gamepedia/community-service/pkg/utils"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	nicknameAttempts      = 5
	nicknameLength        = 20
	emailVerificationTTL  = time.Hour
	verificationEmailBody = "<p>Your verification code is <b>%s</b></p>"
)

type AccountService interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) error
	KakaoLogin(ctx context.Context, code string) (dto.KakaoLoginResponse, error)

	CheckLoginID(ctx context.Context, loginID string) error
	CheckNickname(ctx context.Context, nickname string) error
	CheckEmail(ctx context.Context, email string) error
	VerifyEmailCode(ctx context.Context, req dto.EmailAuthRequest) error
	FindLoginID(ctx context.Context, email string) (dto.FindIDResponse, error)

	GetMyInfo(ctx context.Context, userIdx int64) (dto.UserInfoResponse, error)
	UpdateMyInfo(ctx context.Context, userIdx int64, req dto.UpdateInfoRequest) error
	UpdatePassword(ctx context.Context, userIdx int64, req dto.UpdatePasswordRequest) error
	UpdateProfileImage(ctx context.Context, userIdx int64, filename string, contentType string, body []byte) (dto.ProfileImageResponse, error)
	Withdraw(ctx context.Context, userIdx int64) error

	GetNotifications(ctx context.Context, userIdx int64, lastIdx int64) (dto.NotificationsResponse, error)
	DeleteNotification(ctx context.Context, notificationIdx int64, userIdx int64) error

	PurgeExpiredEmailCodes(ctx context.Context)
}

type AccountServiceImpl struct {
	repo             repository.AccountRepository
	identityProvider identityprovider.IdentityProvider
	storage          objectstorage.ObjectStorage
	mailer           mailer.Mailer
	publisher        EventPublisher
	jwtSecretKey     string
}

func CreateAccountService(repo repository.AccountRepository, identityProvider identityprovider.IdentityProvider, storage objectstorage.ObjectStorage, mailer mailer.Mailer, publisher EventPublisher, jwtSecretKey string) AccountService {
	return &AccountServiceImpl{
		repo:             repo,
		identityProvider: identityProvider,
		storage:          storage,
		mailer:           mailer,
		publisher:        publisher,
		jwtSecretKey:     jwtSecretKey,
	}
}

func (s *AccountServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (resp dto.LoginResponse, err error) {
	credential, err := s.repo.GetLocalCredentialByLoginID(ctx, req.ID)
	if err != nil {
		return
	}
	if credential.UserIdx == 0 {
		return resp, errs.ErrInvalidLogin
	}

	err = bcrypt.CompareHashAndPassword([]byte(credential.Password), []byte(req.Pw))
	if err != nil {
		return resp, errs.ErrInvalidPassword
	}

	token, err := utils.CreateJWTToken(credential.UserIdx, credential.IsAdmin, s.jwtSecretKey)
	if err != nil {
		log.Error().Err(err).Str("component", "Login").Msg("")
		return resp, errs.ErrInternalServer
	}

	resp.Token = token
	resp.UserIdx = credential.UserIdx
	resp.IsAdmin = credential.IsAdmin

	return
}

func (s *AccountServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	hashedPw, err := bcrypt.GenerateFromPassword([]byte(req.Pw), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Str("component", "Register").Msg("")
		return errs.ErrInternalServer
	}

	var userIdx int64
	err = s.repo.HandleTrx(ctx, func(ctx context.Context, repo repository.AccountRepository) error {
		credential, err := repo.GetLocalCredentialByLoginID(ctx, req.ID)
		if err != nil {
			return err
		}
		if credential.UserIdx != 0 {
			return errs.ErrExistingID
		}

		user, err := repo.GetUserByNickname(ctx, req.Nickname)
		if err != nil {
			return err
		}
		if user.Idx != 0 {
			return errs.ErrExistingNickname
		}

		user, err = repo.GetUserByEmail(ctx, req.Email)
		if err != nil {
			return err
		}
		if user.Idx != 0 {
			return errs.ErrExistingEmail
		}

		userIdx, err = repo.AddUser(ctx, domain.User{Nickname: req.Nickname, Email: req.Email})
		if err != nil {
			return err
		}

		return repo.AddLocalAccount(ctx, domain.LocalAccount{UserIdx: userIdx, LoginID: req.ID, Password: string(hashedPw)})
	})
	if err != nil {
		return
	}

	if err := s.publisher.Publish(EventUserRegistered, dto.UserRegisteredEvent{UserIdx: userIdx, Nickname: req.Nickname}); err != nil {
		log.Error().Err(err).Str("component", "Register").Msg("failed to publish user registered event")
	}

	return nil
}

func (s *AccountServiceImpl) KakaoLogin(ctx context.Context, code string) (resp dto.KakaoLoginResponse, err error) {
	identity, err := s.identityProvider.Exchange(ctx, code)
	if err != nil {
		return
	}

	account, err := s.repo.GetKakaoAccountByKey(ctx, identity.Key)
	if err != nil {
		return
	}

	userIdx := account.UserIdx
	isAdmin := account.IsAdmin

	if userIdx == 0 {
		var nickname string
		err = s.repo.HandleTrx(ctx, func(ctx context.Context, repo repository.AccountRepository) error {
			existing, err := repo.GetUserByEmail(ctx, identity.Email)
			if err != nil {
				return err
			}
			if existing.Idx != 0 {
				return errs.ErrExistingEmail
			}

			nickname, err = s.pickNickname(ctx, repo)
			if err != nil {
				return err
			}

			userIdx, err = repo.AddUser(ctx, domain.User{Nickname: nickname, Email: identity.Email})
			if err != nil {
				return err
			}

			return repo.AddKakaoAccount(ctx, userIdx, identity.Key)
		})
		if err != nil {
			return
		}
		isAdmin = false

		if err := s.publisher.Publish(EventUserRegistered, dto.UserRegisteredEvent{UserIdx: userIdx, Nickname: nickname}); err != nil {
			log.Error().Err(err).Str("component", "KakaoLogin").Msg("failed to publish user registered event")
		}
	}

	token, err := utils.CreateJWTToken(userIdx, isAdmin, s.jwtSecretKey)
	if err != nil {
		log.Error().Err(err).Str("component", "KakaoLogin").Msg("")
		return resp, errs.ErrInternalServer
	}

	resp.Token = token
	resp.UserIdx = userIdx
	resp.Email = identity.Email

	return
}

// pickNickname tries a handful of random candidates and falls back to a ULID
// so that signup never spins on nickname collisions.
func (s *AccountServiceImpl) pickNickname(ctx context.Context, repo repository.AccountRepository) (string, error) {
	for i := 0; i < nicknameAttempts; i++ {
		candidate := utils.GenerateRandomString(nicknameLength)
		user, err := repo.GetUserByNickname(ctx, candidate)
		if err != nil {
			return "", err
		}
		if user.Idx == 0 {
			return candidate, nil
		}
	}

	return utils.GenerateFallbackNickname(), nil
}

func (s *AccountServiceImpl) CheckLoginID(ctx context.Context, loginID string) (err error) {
	credential, err := s.repo.GetLocalCredentialByLoginID(ctx, loginID)
	if err != nil {
		return
	}
	if credential.UserIdx != 0 {
		return errs.ErrExistingID
	}

	return
}

func (s *AccountServiceImpl) CheckNickname(ctx context.Context, nickname string) (err error) {
	user, err := s.repo.GetUserByNickname(ctx, nickname)
	if err != nil {
		return
	}
	if user.Idx != 0 {
		return errs.ErrExistingNickname
	}

	return
}

// CheckEmail rejects taken addresses, then issues a verification code and
// mails it to the address being claimed.
func (s *AccountServiceImpl) CheckEmail(ctx context.Context, email string) (err error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return
	}
	if user.Idx != 0 {
		return errs.ErrExistingEmail
	}

	code := utils.GenerateVerificationCode()
	err = s.repo.AddEmailVerification(ctx, email, code)
	if err != nil {
		return
	}

	err = s.mailer.Send(email, "Email verification", fmt.Sprintf(verificationEmailBody, code))
	if err != nil {
		log.Error().Err(err).Str("component", "CheckEmail").Msg("")
		return errs.ErrInternalServer
	}

	return
}

func (s *AccountServiceImpl) VerifyEmailCode(ctx context.Context, req dto.EmailAuthRequest) (err error) {
	verification, err := s.repo.GetEmailVerification(ctx, req.Email, req.Code)
	if err != nil {
		return
	}
	if verification.Idx == 0 {
		return errs.ErrInvalidEmailCode
	}
	if time.Since(verification.CreatedAt) > emailVerificationTTL {
		return errs.ErrInvalidEmailCode
	}

	return
}

func (s *AccountServiceImpl) FindLoginID(ctx context.Context, email string) (resp dto.FindIDResponse, err error) {
	loginID, err := s.repo.GetLoginIDByEmail(ctx, email)
	if err != nil {
		return
	}
	if loginID == "" {
		return resp, errs.ErrNoContent
	}

	resp.ID = loginID

	return
}

func (s *AccountServiceImpl) GetMyInfo(ctx context.Context, userIdx int64) (resp dto.UserInfoResponse, err error) {
	user, err := s.repo.GetUserByID(ctx, userIdx)
	if err != nil {
		return
	}
	if user.Idx == 0 {
		return resp, errs.ErrNoContent
	}

	resp.Idx = user.Idx
	resp.Nickname = user.Nickname
	resp.Email = user.Email
	resp.IsAdmin = user.IsAdmin
	resp.CreatedAt = user.CreatedAt

	return
}

// UpdateMyInfo lets the caller keep their current nickname or email while
// still rejecting values held by anyone else.
func (s *AccountServiceImpl) UpdateMyInfo(ctx context.Context, userIdx int64, req dto.UpdateInfoRequest) (err error) {
	return s.repo.HandleTrx(ctx, func(ctx context.Context, repo repository.AccountRepository) error {
		user, err := repo.GetUserByNickname(ctx, req.Nickname)
		if err != nil {
			return err
		}
		if user.Idx != 0 && user.Idx != userIdx {
			return errs.ErrExistingNickname
		}

		user, err = repo.GetUserByEmail(ctx, req.Email)
		if err != nil {
			return err
		}
		if user.Idx != 0 && user.Idx != userIdx {
			return errs.ErrExistingEmail
		}

		return repo.UpdateUser(ctx, domain.User{Idx: userIdx, Nickname: req.Nickname, Email: req.Email})
	})
}

func (s *AccountServiceImpl) UpdatePassword(ctx context.Context, userIdx int64, req dto.UpdatePasswordRequest) (err error) {
	hashedPw, err := bcrypt.GenerateFromPassword([]byte(req.Pw), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdatePassword").Msg("")
		return errs.ErrInternalServer
	}

	count, err := s.repo.UpdatePassword(ctx, userIdx, string(hashedPw))
	if err != nil {
		return
	}
	if count == 0 {
		return errs.ErrNoContent
	}

	return
}

func (s *AccountServiceImpl) UpdateProfileImage(ctx context.Context, userIdx int64, filename string, contentType string, body []byte) (resp dto.ProfileImageResponse, err error) {
	if len(body) == 0 {
		return resp, errs.ErrNoImage
	}

	location, err := s.storage.Upload(ctx, filename, contentType, body)
	if err != nil {
		return resp, errs.ErrInternalServer
	}

	err = s.repo.HandleTrx(ctx, func(ctx context.Context, repo repository.AccountRepository) error {
		if err := repo.SoftDeleteProfileImages(ctx, userIdx); err != nil {
			return err
		}
		return repo.AddProfileImage(ctx, userIdx, location)
	})
	if err != nil {
		return
	}

	resp.ImgPath = location

	return
}

func (s *AccountServiceImpl) Withdraw(ctx context.Context, userIdx int64) (err error) {
	return s.repo.HandleTrx(ctx, func(ctx context.Context, repo repository.AccountRepository) error {
		count, err := repo.SoftDeleteUser(ctx, userIdx)
		if err != nil {
			return err
		}
		if count == 0 {
			return errs.ErrNoContent
		}

		return nil
	})
}

func (s *AccountServiceImpl) GetNotifications(ctx context.Context, userIdx int64, lastIdx int64) (resp dto.NotificationsResponse, err error) {
	notifications, err := s.repo.GetNotifications(ctx, userIdx, lastIdx)
	if err != nil {
		return
	}

	resp.Notifications = make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		resp.Notifications = append(resp.Notifications, dto.NotificationResponse{
			Idx:       n.Idx,
			Type:      n.Type,
			GameIdx:   n.GameIdx,
			PostIdx:   n.PostIdx,
			PostTitle: n.PostTitle,
			GameTitle: n.GameTitle,
			CreatedAt: n.CreatedAt,
		})
		if n.Idx > resp.LastIdx {
			resp.LastIdx = n.Idx
		}
	}

	return
}

func (s *AccountServiceImpl) DeleteNotification(ctx context.Context, notificationIdx int64, userIdx int64) (err error) {
	return s.repo.SoftDeleteNotification(ctx, notificationIdx, userIdx)
}

// PurgeExpiredEmailCodes runs on a schedule and removes verification rows
// that can no longer be redeemed.
func (s *AccountServiceImpl) PurgeExpiredEmailCodes(ctx context.Context) {
	count, err := s.repo.DeleteExpiredEmailVerifications(ctx, time.Now().Add(-emailVerificationTTL))
	if err != nil {
		log.Error().Err(err).Str("component", "PurgeExpiredEmailCodes").Msg("")
		return
	}

	if count > 0 {
		log.Info().Int64("count", count).Msg("purged expired email verification codes")
	}
}
