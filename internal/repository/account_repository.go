package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/gamepedia/community-service/internal/domain"
	"github.com/gamepedia/community-service/pkg/errs"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type AccountRepository interface {
	HandleTrx(ctx context.Context, fn func(ctx context.Context, repo AccountRepository) error) error

	GetLocalCredentialByLoginID(ctx context.Context, loginID string) (data domain.LocalCredential, err error)
	GetUserByID(ctx context.Context, idx int64) (data domain.User, err error)
	GetUserByNickname(ctx context.Context, nickname string) (data domain.User, err error)
	GetUserByEmail(ctx context.Context, email string) (data domain.User, err error)
	AddUser(ctx context.Context, data domain.User) (idx int64, err error)
	AddLocalAccount(ctx context.Context, data domain.LocalAccount) (err error)
	UpdateUser(ctx context.Context, data domain.User) (err error)
	UpdatePassword(ctx context.Context, userIdx int64, hashedPw string) (count int64, err error)
	SoftDeleteUser(ctx context.Context, userIdx int64) (count int64, err error)

	GetKakaoAccountByKey(ctx context.Context, kakaoKey string) (data domain.KakaoAccount, err error)
	AddKakaoAccount(ctx context.Context, userIdx int64, kakaoKey string) (err error)

	GetLoginIDByEmail(ctx context.Context, email string) (loginID string, err error)
	AddEmailVerification(ctx context.Context, email string, code string) (err error)
	GetEmailVerification(ctx context.Context, email string, code string) (data domain.EmailVerification, err error)
	DeleteExpiredEmailVerifications(ctx context.Context, olderThan time.Time) (count int64, err error)

	AddProfileImage(ctx context.Context, userIdx int64, imgPath string) (err error)
	SoftDeleteProfileImages(ctx context.Context, userIdx int64) (err error)

	GetNotifications(ctx context.Context, userIdx int64, lastIdx int64) (data []domain.NotificationView, err error)
	SoftDeleteNotification(ctx context.Context, notificationIdx int64, userIdx int64) (err error)
}

type AccountRepositoryImpl struct {
	db *sqlx.DB
	tx *sqlx.Tx
}

func CreateAccountRepository(db *sqlx.DB) AccountRepository {
	return &AccountRepositoryImpl{db: db}
}

func (r *AccountRepositoryImpl) ext() sqlx.ExtContext {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// HandleTrx runs fn against a tx-scoped repository. The named result matters:
// the deferred commit writes its error into it.
func (r *AccountRepositoryImpl) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo AccountRepository) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else if cerr := tx.Commit(); cerr != nil {
			log.Error().Err(cerr).Str("component", "HandleTrx").Msg("")
			err = errs.ErrInternalServer
		}
	}()

	trxRepo := &AccountRepositoryImpl{tx: tx}

	err = fn(ctx, trxRepo)

	return err
}

func (r *AccountRepositoryImpl) GetLocalCredentialByLoginID(ctx context.Context, loginID string) (data domain.LocalCredential, err error) {
	err = sqlx.GetContext(ctx, r.ext(), &data, `SELECT al.user_idx, al.id, al.pw, u.is_admin FROM account_local al JOIN "user" u ON al.user_idx = u.idx WHERE al.id = $1 AND al.deleted_at IS NULL AND u.deleted_at IS NULL`, loginID)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, nil
		}
		log.Error().Err(err).Str("component", "GetLocalCredentialByLoginID").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *AccountRepositoryImpl) GetUserByID(ctx context.Context, idx int64) (data domain.User, err error) {
	err = sqlx.GetContext(ctx, r.ext(), &data, `SELECT * FROM "user" WHERE idx = $1 AND deleted_at IS NULL`, idx)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, nil
		}
		log.Error().Err(err).Str("component", "GetUserByID").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *AccountRepositoryImpl) GetUserByNickname(ctx context.Context, nickname string) (data domain.User, err error) {
	err = sqlx.GetContext(ctx, r.ext(), &data, `SELECT * FROM "user" WHERE nickname = $1 AND deleted_at IS NULL`, nickname)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, nil
		}
		log.Error().Err(err).Str("component", "GetUserByNickname").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *AccountRepositoryImpl) GetUserByEmail(ctx context.Context, email string) (data domain.User, err error) {
	err = sqlx.GetContext(ctx, r.ext(), &data, `SELECT * FROM "user" WHERE email = $1 AND deleted_at IS NULL`, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, nil
		}
		log.Error().Err(err).Str("component", "GetUserByEmail").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *AccountRepositoryImpl) AddUser(ctx context.Context, data domain.User) (idx int64, err error) {
	err = sqlx.GetContext(ctx, r.ext(), &idx, `INSERT INTO "user"(nickname, email, is_admin) VALUES ($1, $2, $3) RETURNING idx`, data.Nickname, data.Email, data.IsAdmin)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, errs.ErrNoContent
		}
		log.Error().Err(err).Str("component", "AddUser").Msg("")
		return 0, translateWriteError(err)
	}

	return
}

func (r *AccountRepositoryImpl) AddLocalAccount(ctx context.Context, data domain.LocalAccount) (err error) {
	var userIdx int64
	err = sqlx.GetContext(ctx, r.ext(), &userIdx, `INSERT INTO account_local(user_idx, id, pw) VALUES ($1, $2, $3) RETURNING user_idx`, data.UserIdx, data.LoginID, data.Password)
	if err != nil {
		if err == sql.ErrNoRows {
			return errs.ErrNoContent
		}
		log.Error().Err(err).Str("component", "AddLocalAccount").Msg("")
		return translateWriteError(err)
	}

	return
}

func (r *AccountRepositoryImpl) UpdateUser(ctx context.Context, data domain.User) (err error) {
	var idx int64
	err = sqlx.GetContext(ctx, r.ext(), &idx, `UPDATE "user" SET nickname = $2, email = $3 WHERE idx = $1 AND deleted_at IS NULL RETURNING idx`, data.Idx, data.Nickname, data.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return errs.ErrNoContent
		}
		log.Error().Err(err).Str("component", "UpdateUser").Msg("")
		return translateWriteError(err)
	}

	return
}

func (r *AccountRepositoryImpl) UpdatePassword(ctx context.Context, userIdx int64, hashedPw string) (count int64, err error) {
	result, err := r.ext().ExecContext(ctx, `UPDATE account_local SET pw = $2 WHERE user_idx = $1 AND deleted_at IS NULL`, userIdx, hashedPw)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdatePassword").Msg("")
		return 0, errs.ErrInternalServer
	}

	count, err = result.RowsAffected()
	if err != nil {
		return 0, errs.ErrInternalServer
	}

	return
}

// SoftDeleteUser tombstones the user row together with its credential rows so
// a withdrawn login id or kakao key can be claimed again.
func (r *AccountRepositoryImpl) SoftDeleteUser(ctx context.Context, userIdx int64) (count int64, err error) {
	result, err := r.ext().ExecContext(ctx, `UPDATE "user" SET deleted_at = now() WHERE idx = $1 AND deleted_at IS NULL`, userIdx)
	if err != nil {
		log.Error().Err(err).Str("component", "SoftDeleteUser").Msg("")
		return 0, errs.ErrInternalServer
	}

	count, err = result.RowsAffected()
	if err != nil {
		return 0, errs.ErrInternalServer
	}
	if count == 0 {
		return
	}

	_, err = r.ext().ExecContext(ctx, `UPDATE account_local SET deleted_at = now() WHERE user_idx = $1 AND deleted_at IS NULL`, userIdx)
	if err != nil {
		log.Error().Err(err).Str("component", "SoftDeleteUser").Msg("")
		return 0, errs.ErrInternalServer
	}

	_, err = r.ext().ExecContext(ctx, `UPDATE account_kakao SET deleted_at = now() WHERE user_idx = $1 AND deleted_at IS NULL`, userIdx)
	if err != nil {
		log.Error().Err(err).Str("component", "SoftDeleteUser").Msg("")
		return 0, errs.ErrInternalServer
	}

	return
}

func (r *AccountRepositoryImpl) GetKakaoAccountByKey(ctx context.Context, kakaoKey string) (data domain.KakaoAccount, err error) {
	err = sqlx.GetContext(ctx, r.ext(), &data, `SELECT ak.user_idx, ak.kakao_key, u.is_admin FROM account_kakao ak JOIN "user" u ON ak.user_idx = u.idx WHERE ak.kakao_key = $1 AND ak.deleted_at IS NULL AND u.deleted_at IS NULL`, kakaoKey)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, nil
		}
		log.Error().Err(err).Str("component", "GetKakaoAccountByKey").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *AccountRepositoryImpl) AddKakaoAccount(ctx context.Context, userIdx int64, kakaoKey string) (err error) {
	var idx int64
	err = sqlx.GetContext(ctx, r.ext(), &idx, `INSERT INTO account_kakao(user_idx, kakao_key) VALUES ($1, $2) RETURNING user_idx`, userIdx, kakaoKey)
	if err != nil {
		if err == sql.ErrNoRows {
			return errs.ErrNoContent
		}
		log.Error().Err(err).Str("component", "AddKakaoAccount").Msg("")
		return translateWriteError(err)
	}

	return
}

func (r *AccountRepositoryImpl) GetLoginIDByEmail(ctx context.Context, email string) (loginID string, err error) {
	err = sqlx.GetContext(ctx, r.ext(), &loginID, `SELECT al.id FROM account_local al JOIN "user" u ON al.user_idx = u.idx WHERE u.email = $1 AND al.deleted_at IS NULL AND u.deleted_at IS NULL`, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		log.Error().Err(err).Str("component", "GetLoginIDByEmail").Msg("")
		return "", errs.ErrInternalServer
	}

	return
}

func (r *AccountRepositoryImpl) AddEmailVerification(ctx context.Context, email string, code string) (err error) {
	var idx int64
	err = sqlx.GetContext(ctx, r.ext(), &idx, `INSERT INTO email_verification(email, code) VALUES ($1, $2) RETURNING idx`, email, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return errs.ErrNoContent
		}
		log.Error().Err(err).Str("component", "AddEmailVerification").Msg("")
		return errs.ErrInternalServer
	}

	return
}

func (r *AccountRepositoryImpl) GetEmailVerification(ctx context.Context, email string, code string) (data domain.EmailVerification, err error) {
	err = sqlx.GetContext(ctx, r.ext(), &data, `SELECT * FROM email_verification WHERE email = $1 AND code = $2`, email, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, nil
		}
		log.Error().Err(err).Str("component", "GetEmailVerification").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *AccountRepositoryImpl) DeleteExpiredEmailVerifications(ctx context.Context, olderThan time.Time) (count int64, err error) {
	result, err := r.ext().ExecContext(ctx, `DELETE FROM email_verification WHERE created_at < $1`, olderThan)
	if err != nil {
		log.Error().Err(err).Str("component", "DeleteExpiredEmailVerifications").Msg("")
		return 0, errs.ErrInternalServer
	}

	count, err = result.RowsAffected()
	if err != nil {
		return 0, errs.ErrInternalServer
	}

	return
}

func (r *AccountRepositoryImpl) AddProfileImage(ctx context.Context, userIdx int64, imgPath string) (err error) {
	var idx int64
	err = sqlx.GetContext(ctx, r.ext(), &idx, `INSERT INTO profile_img(user_idx, img_path) VALUES ($1, $2) RETURNING idx`, userIdx, imgPath)
	if err != nil {
		if err == sql.ErrNoRows {
			return errs.ErrNoContent
		}
		log.Error().Err(err).Str("component", "AddProfileImage").Msg("")
		return errs.ErrInternalServer
	}

	return
}

func (r *AccountRepositoryImpl) SoftDeleteProfileImages(ctx context.Context, userIdx int64) (err error) {
	_, err = r.ext().ExecContext(ctx, `UPDATE profile_img SET deleted_at = now() WHERE user_idx = $1 AND deleted_at IS NULL`, userIdx)
	if err != nil {
		log.Error().Err(err).Str("component", "SoftDeleteProfileImages").Msg("")
		return errs.ErrInternalServer
	}

	return
}

func (r *AccountRepositoryImpl) GetNotifications(ctx context.Context, userIdx int64, lastIdx int64) (data []domain.NotificationView, err error) {
	err = sqlx.SelectContext(ctx, r.ext(), &data, `
		SELECT
			n.idx, n.type, n.user_idx, n.game_idx, n.post_idx, n.created_at,
			p.title AS post_title,
			g.title AS game_title
		FROM notification n
		LEFT JOIN post p ON n.post_idx = p.idx AND n.type = 1
		LEFT JOIN game g ON n.game_idx = g.idx AND (n.type = 2 OR n.type = 3)
		WHERE n.user_idx = $1 AND n.idx > $2 AND n.deleted_at IS NULL
		ORDER BY n.idx DESC
		LIMIT 20`, userIdx, lastIdx)
	if err != nil {
		log.Error().Err(err).Str("component", "GetNotifications").Msg("")
		return nil, errs.ErrInternalServer
	}

	return
}

func (r *AccountRepositoryImpl) SoftDeleteNotification(ctx context.Context, notificationIdx int64, userIdx int64) (err error) {
	_, err = r.ext().ExecContext(ctx, `UPDATE notification SET deleted_at = now() WHERE idx = $1 AND user_idx = $2`, notificationIdx, userIdx)
	if err != nil {
		log.Error().Err(err).Str("component", "SoftDeleteNotification").Msg("")
		return errs.ErrInternalServer
	}

	return
}
