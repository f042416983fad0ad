package service

import (
	"context"

	"github.com/gamepedia/community-service/internal/domain"
	"github.com/gamepedia/community-service/internal/dto"
	objectstorage "github.com/gamepedia/community-service/internal/infrastructure/object-storage"
	"github.com/gamepedia/community-service/internal/repository"
	"github.com/gamepedia/community-service/pkg/errs"
)

const postPageSize = 20

type PostService interface {
	AddPost(ctx context.Context, userIdx int64, gameIdx int64, req dto.PostRequest) error
	GetPosts(ctx context.Context, gameIdx int64, page int, keyword string) (dto.PostsResponse, error)
	GetPostDetail(ctx context.Context, postIdx int64, userIdx int64) (dto.PostDetailResponse, error)
	UploadPostImage(ctx context.Context, filename string, contentType string, body []byte) (dto.PostImageResponse, error)
	DeletePost(ctx context.Context, postIdx int64, userIdx int64) error
}

type PostServiceImpl struct {
	repo    repository.PostRepository
	storage objectstorage.ObjectStorage
}

func CreatePostService(repo repository.PostRepository, storage objectstorage.ObjectStorage) PostService {
	return &PostServiceImpl{repo: repo, storage: storage}
}

func (s *PostServiceImpl) AddPost(ctx context.Context, userIdx int64, gameIdx int64, req dto.PostRequest) (err error) {
	_, err = s.repo.AddPost(ctx, userIdx, gameIdx, req.Title, req.Content)
	return
}

func (s *PostServiceImpl) GetPosts(ctx context.Context, gameIdx int64, page int, keyword string) (resp dto.PostsResponse, err error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * postPageSize

	var total int64
	var posts []domain.PostSummary
	if keyword == "" {
		total, err = s.repo.CountPosts(ctx, gameIdx)
		if err != nil {
			return
		}
		posts, err = s.repo.GetPosts(ctx, gameIdx, postPageSize, offset)
	} else {
		total, err = s.repo.CountSearchPosts(ctx, gameIdx, keyword)
		if err != nil {
			return
		}
		posts, err = s.repo.SearchPosts(ctx, gameIdx, keyword, postPageSize, offset)
	}
	if err != nil {
		return
	}

	resp.Page = page
	resp.MaxPage = int((total + postPageSize - 1) / postPageSize)
	resp.TotalPosts = total
	resp.Data = make([]dto.PostSummaryResponse, 0, len(posts))
	for _, p := range posts {
		resp.Data = append(resp.Data, dto.PostSummaryResponse{
			PostIdx:   p.Idx,
			GameIdx:   p.GameIdx,
			Title:     p.Title,
			CreatedAt: p.CreatedAt,
			UserIdx:   p.UserIdx,
			Nickname:  p.Nickname,
			View:      p.View,
		})
	}

	return
}

// GetPostDetail records the view and reads the post in one transaction, so
// the returned count already includes the caller's own visit.
func (s *PostServiceImpl) GetPostDetail(ctx context.Context, postIdx int64, userIdx int64) (resp dto.PostDetailResponse, err error) {
	err = s.repo.HandleTrx(ctx, func(ctx context.Context, repo repository.PostRepository) error {
		detail, err := repo.GetPostDetail(ctx, postIdx)
		if err != nil {
			return err
		}

		if err := repo.AddView(ctx, postIdx, userIdx); err != nil {
			return err
		}

		resp.Title = detail.Title
		resp.Content = detail.Content
		resp.CreatedAt = detail.CreatedAt
		resp.GameIdx = detail.GameIdx
		resp.UserIdx = detail.UserIdx
		resp.Nickname = detail.Nickname
		resp.View = detail.View + 1
		resp.IsAuthor = detail.UserIdx == userIdx

		return nil
	})

	return
}

func (s *PostServiceImpl) UploadPostImage(ctx context.Context, filename string, contentType string, body []byte) (resp dto.PostImageResponse, err error) {
	if len(body) == 0 {
		return resp, errs.ErrNoImage
	}

	location, err := s.storage.Upload(ctx, filename, contentType, body)
	if err != nil {
		return resp, errs.ErrInternalServer
	}

	resp.Location = location

	return
}

func (s *PostServiceImpl) DeletePost(ctx context.Context, postIdx int64, userIdx int64) (err error) {
	deleted, err := s.repo.SoftDeletePost(ctx, postIdx, userIdx)
	if err != nil {
		return
	}
	if !deleted {
		return errs.ErrNoContent
	}

	return
}
