package service

import (
	"context"

	"github.com/gamepedia/community-service/internal/domain"
	"github.com/gamepedia/community-service/internal/dto"
	"github.com/gamepedia/community-service/internal/repository"
	"github.com/gamepedia/community-service/pkg/errs"
	"github.com/rs/zerolog/log"
)

const commentPageSize = 20

type CommentService interface {
	AddComment(ctx context.Context, postIdx int64, userIdx int64, req dto.CommentRequest) error
	GetComments(ctx context.Context, postIdx int64, lastIdx int64) (dto.CommentsResponse, error)
	DeleteComment(ctx context.Context, commentIdx int64, userIdx int64) error
}

type CommentServiceImpl struct {
	repo             repository.CommentRepository
	notificationRepo repository.NotificationRepository
}

func CreateCommentService(repo repository.CommentRepository, notificationRepo repository.NotificationRepository) CommentService {
	return &CommentServiceImpl{repo: repo, notificationRepo: notificationRepo}
}

// AddComment writes the comment, then notifies the post author outside the
// transaction. A failed notification is logged and dropped, it never fails
// the comment itself.
func (s *CommentServiceImpl) AddComment(ctx context.Context, postIdx int64, userIdx int64, req dto.CommentRequest) (err error) {
	var authorIdx, gameIdx int64
	err = s.repo.HandleTrx(ctx, func(ctx context.Context, repo repository.CommentRepository) error {
		post, err := repo.GetPost(ctx, postIdx)
		if err != nil {
			return err
		}
		if post.Idx == 0 {
			return errs.ErrNoContent
		}
		authorIdx = post.UserIdx
		gameIdx = post.GameIdx

		return repo.AddComment(ctx, postIdx, userIdx, req.Content)
	})
	if err != nil {
		return
	}

	if authorIdx != userIdx {
		if err := s.notificationRepo.AddNotification(ctx, domain.NotificationMakeComment, gameIdx, postIdx, authorIdx); err != nil {
			log.Error().Err(err).Str("component", "AddComment").Msg("failed to add comment notification")
		}
	}

	return nil
}

func (s *CommentServiceImpl) GetComments(ctx context.Context, postIdx int64, lastIdx int64) (resp dto.CommentsResponse, err error) {
	total, err := s.repo.CountComments(ctx, postIdx)
	if err != nil {
		return
	}

	comments, err := s.repo.GetComments(ctx, postIdx, lastIdx, commentPageSize)
	if err != nil {
		return
	}

	resp.TotalComments = total
	resp.Data = make([]dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		resp.Data = append(resp.Data, dto.CommentResponse{
			Idx:       c.Idx,
			PostIdx:   c.PostIdx,
			UserIdx:   c.UserIdx,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			Nickname:  c.Nickname,
		})
		if c.Idx > resp.LastIdx {
			resp.LastIdx = c.Idx
		}
	}

	return
}

func (s *CommentServiceImpl) DeleteComment(ctx context.Context, commentIdx int64, userIdx int64) (err error) {
	deleted, err := s.repo.SoftDeleteComment(ctx, commentIdx, userIdx)
	if err != nil {
		return
	}
	if !deleted {
		return errs.ErrNoContent
	}

	return
}
