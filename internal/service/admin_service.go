package service

import (
	"context"
	"fmt"

	"github.com/gamepedia/community-service/internal/domain"
	"github.com/gamepedia/community-service/internal/dto"
	objectstorage "github.com/gamepedia/community-service/internal/infrastructure/object-storage"
	"github.com/gamepedia/community-service/internal/repository"
	pkgdto "github.com/gamepedia/community-service/pkg/dto"
	"github.com/gamepedia/community-service/pkg/errs"
	"github.com/rs/zerolog/log"
)

const requestPageSize = 20

type AdminService interface {
	GetGameRequests(ctx context.Context, page int) ([]dto.GameRequestResponse, pkgdto.Pagination, error)
	ApproveGameRequest(ctx context.Context, adminIdx int64, req dto.ApproveGameRequest, thumbnail dto.FileUpload, banner dto.FileUpload) error
	DenyGameRequest(ctx context.Context, requestIdx int64) error
}

type AdminServiceImpl struct {
	repo      repository.AdminRepository
	storage   objectstorage.ObjectStorage
	publisher EventPublisher
}

func CreateAdminService(repo repository.AdminRepository, storage objectstorage.ObjectStorage, publisher EventPublisher) AdminService {
	return &AdminServiceImpl{repo: repo, storage: storage, publisher: publisher}
}

func (s *AdminServiceImpl) GetGameRequests(ctx context.Context, page int) (resp []dto.GameRequestResponse, pagination pkgdto.Pagination, err error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * requestPageSize

	total, err := s.repo.CountPendingRequests(ctx)
	if err != nil {
		return
	}

	requests, err := s.repo.GetPendingRequests(ctx, requestPageSize, offset)
	if err != nil {
		return
	}

	resp = make([]dto.GameRequestResponse, 0, len(requests))
	for _, r := range requests {
		resp = append(resp, dto.GameRequestResponse{
			Idx:       r.Idx,
			UserIdx:   r.UserIdx,
			Title:     r.Title,
			CreatedAt: r.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	pagination.Page = page
	pagination.MaxPage = int((total + requestPageSize - 1) / requestPageSize)
	pagination.Total = total

	return
}

// ApproveGameRequest settles a pending request, creates the game with its
// announcement post and images, and notifies the requester. The images are
// uploaded before the transaction opens so that a storage failure cannot
// leave a half-created game behind. A title conflict rolls everything back,
// leaving the request pending for the admin to retry with different titles.
func (s *AdminServiceImpl) ApproveGameRequest(ctx context.Context, adminIdx int64, req dto.ApproveGameRequest, thumbnail dto.FileUpload, banner dto.FileUpload) (err error) {
	if len(thumbnail.Body) == 0 || len(banner.Body) == 0 {
		return errs.ErrNoImage
	}

	req.ThumbnailPath, err = s.storage.Upload(ctx, thumbnail.Filename, thumbnail.ContentType, thumbnail.Body)
	if err != nil {
		return errs.ErrInternalServer
	}
	req.BannerPath, err = s.storage.Upload(ctx, banner.Filename, banner.ContentType, banner.Body)
	if err != nil {
		return errs.ErrInternalServer
	}

	var gameIdx int64
	var requesterIdx int64
	err = s.repo.HandleTrx(ctx, func(ctx context.Context, repo repository.AdminRepository) error {
		request, err := repo.ConsumeRequest(ctx, req.RequestIdx, true)
		if err != nil {
			return err
		}
		requesterIdx = request.UserIdx

		existing, err := repo.GetGameByTitles(ctx, req.TitleKor, req.TitleEng)
		if err != nil {
			return err
		}
		if existing.Idx != 0 {
			return errs.ErrConflict
		}

		gameIdx, err = repo.AddGame(ctx, request.UserIdx, req.Title, req.TitleKor, req.TitleEng)
		if err != nil {
			return err
		}

		_, err = repo.AddPost(ctx, adminIdx, gameIdx,
			fmt.Sprintf("Welcome to the %s community", req.Title),
			fmt.Sprintf("The %s community has been opened. Say hello!", req.Title))
		if err != nil {
			return err
		}

		if err := repo.AddThumbnail(ctx, gameIdx, req.ThumbnailPath); err != nil {
			return err
		}
		if err := repo.AddBanner(ctx, gameIdx, req.BannerPath); err != nil {
			return err
		}

		return repo.AddNotification(ctx, domain.NotificationApproveGame, gameIdx, request.UserIdx)
	})
	if err != nil {
		return
	}

	if err := s.publisher.Publish(EventGameApproved, dto.GameApprovedEvent{
		GameIdx:  gameIdx,
		UserIdx:  requesterIdx,
		Title:    req.Title,
		TitleKor: req.TitleKor,
		TitleEng: req.TitleEng,
	}); err != nil {
		log.Error().Err(err).Str("component", "ApproveGameRequest").Msg("failed to publish game approved event")
	}

	return nil
}

// DenyGameRequest settles the request negatively. The denial notification
// needs a game row to point at, so a tombstoned game is inserted to carry
// the rejected title.
func (s *AdminServiceImpl) DenyGameRequest(ctx context.Context, requestIdx int64) (err error) {
	return s.repo.HandleTrx(ctx, func(ctx context.Context, repo repository.AdminRepository) error {
		request, err := repo.ConsumeRequest(ctx, requestIdx, false)
		if err != nil {
			return err
		}

		gameIdx, err := repo.AddTombstonedGame(ctx, request.UserIdx, request.Title)
		if err != nil {
			return err
		}

		return repo.AddNotification(ctx, domain.NotificationDenyGame, gameIdx, request.UserIdx)
	})
}
