package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gamepedia/community-service/internal/domain"
	"github.com/gamepedia/community-service/internal/dto"
	"github.com/gamepedia/community-service/internal/repository"
	"github.com/gamepedia/community-service/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommentRepo struct {
	posts    []domain.Post
	comments []domain.Comment

	nextCommentIdx int64
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{nextCommentIdx: 1}
}

func (r *fakeCommentRepo) snapshot() fakeCommentRepo {
	cp := *r
	cp.posts = append([]domain.Post(nil), r.posts...)
	cp.comments = append([]domain.Comment(nil), r.comments...)
	return cp
}

func (r *fakeCommentRepo) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo repository.CommentRepository) error) error {
	saved := r.snapshot()
	if err := fn(ctx, r); err != nil {
		*r = saved
		return err
	}
	return nil
}

func (r *fakeCommentRepo) GetPost(ctx context.Context, postIdx int64) (domain.Post, error) {
	for _, p := range r.posts {
		if p.Idx == postIdx && p.DeletedAt == nil {
			return p, nil
		}
	}
	return domain.Post{}, nil
}

func (r *fakeCommentRepo) AddComment(ctx context.Context, postIdx int64, userIdx int64, content string) error {
	r.comments = append(r.comments, domain.Comment{Idx: r.nextCommentIdx, PostIdx: postIdx, UserIdx: userIdx, Content: content, CreatedAt: time.Now()})
	r.nextCommentIdx++
	return nil
}

func (r *fakeCommentRepo) GetComments(ctx context.Context, postIdx int64, lastIdx int64, limit int) ([]domain.CommentView, error) {
	result := []domain.CommentView{}
	for _, c := range r.comments {
		if c.PostIdx == postIdx && c.Idx > lastIdx && c.DeletedAt == nil {
			result = append(result, domain.CommentView{Idx: c.Idx, PostIdx: c.PostIdx, UserIdx: c.UserIdx, Content: c.Content, CreatedAt: c.CreatedAt})
			if len(result) == limit {
				break
			}
		}
	}
	return result, nil
}

func (r *fakeCommentRepo) CountComments(ctx context.Context, postIdx int64) (int64, error) {
	var count int64
	for _, c := range r.comments {
		if c.PostIdx == postIdx && c.DeletedAt == nil {
			count++
		}
	}
	return count, nil
}

func (r *fakeCommentRepo) SoftDeleteComment(ctx context.Context, commentIdx int64, userIdx int64) (bool, error) {
	now := time.Now()
	for i, c := range r.comments {
		if c.Idx == commentIdx && c.UserIdx == userIdx && c.DeletedAt == nil {
			r.comments[i].DeletedAt = &now
			return true, nil
		}
	}
	return false, nil
}

type detachedNotification struct {
	kind    string
	gameIdx int64
	postIdx int64
	userIdx int64
}

type fakeNotificationRepo struct {
	notifications []detachedNotification
	err           error
}

func (r *fakeNotificationRepo) AddNotification(ctx context.Context, kind string, gameIdx int64, postIdx int64, userIdx int64) error {
	if r.err != nil {
		return r.err
	}
	r.notifications = append(r.notifications, detachedNotification{kind: kind, gameIdx: gameIdx, postIdx: postIdx, userIdx: userIdx})
	return nil
}

func newCommentService(repo *fakeCommentRepo) (CommentService, *fakeNotificationRepo) {
	notificationRepo := &fakeNotificationRepo{}
	return CreateCommentService(repo, notificationRepo), notificationRepo
}

func TestAddCommentNotifiesAuthor(t *testing.T) {
	repo := newFakeCommentRepo()
	repo.posts = append(repo.posts, domain.Post{Idx: 1, UserIdx: 10, GameIdx: 7, Title: "hello"})
	svc, notificationRepo := newCommentService(repo)

	err := svc.AddComment(context.Background(), 1, 20, dto.CommentRequest{Content: "nice post"})
	require.NoError(t, err)

	require.Len(t, repo.comments, 1)
	require.Len(t, notificationRepo.notifications, 1)
	assert.Equal(t, domain.NotificationMakeComment, notificationRepo.notifications[0].kind)
	// the notification carries the post's game for rendering
	assert.Equal(t, int64(7), notificationRepo.notifications[0].gameIdx)
	assert.Equal(t, int64(1), notificationRepo.notifications[0].postIdx)
	assert.Equal(t, int64(10), notificationRepo.notifications[0].userIdx)
}

func TestAddCommentOwnPostNoNotification(t *testing.T) {
	repo := newFakeCommentRepo()
	repo.posts = append(repo.posts, domain.Post{Idx: 1, UserIdx: 10})
	svc, notificationRepo := newCommentService(repo)

	err := svc.AddComment(context.Background(), 1, 10, dto.CommentRequest{Content: "replying to myself"})
	require.NoError(t, err)

	assert.Len(t, repo.comments, 1)
	assert.Empty(t, notificationRepo.notifications)
}

func TestAddCommentUnknownPost(t *testing.T) {
	repo := newFakeCommentRepo()
	svc, notificationRepo := newCommentService(repo)

	err := svc.AddComment(context.Background(), 99, 20, dto.CommentRequest{Content: "hello?"})
	assert.Equal(t, errs.ErrNoContent, err)
	assert.Empty(t, repo.comments)
	assert.Empty(t, notificationRepo.notifications)
}

func TestAddCommentNotificationFailureIsSwallowed(t *testing.T) {
	repo := newFakeCommentRepo()
	repo.posts = append(repo.posts, domain.Post{Idx: 1, UserIdx: 10})
	svc, notificationRepo := newCommentService(repo)
	notificationRepo.err = errors.New("db down")

	// the comment is already committed, a lost notification is acceptable
	err := svc.AddComment(context.Background(), 1, 20, dto.CommentRequest{Content: "nice post"})
	require.NoError(t, err)
	assert.Len(t, repo.comments, 1)
}

func TestGetComments(t *testing.T) {
	repo := newFakeCommentRepo()
	repo.posts = append(repo.posts, domain.Post{Idx: 1, UserIdx: 10})
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.AddComment(context.Background(), 1, 20, "comment"))
	}
	svc, _ := newCommentService(repo)

	resp, err := svc.GetComments(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Len(t, resp.Data, 3)
	assert.Equal(t, int64(3), resp.LastIdx)
	assert.Equal(t, int64(3), resp.TotalComments)

	resp, err = svc.GetComments(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, int64(3), resp.LastIdx)
}

func TestDeleteComment(t *testing.T) {
	repo := newFakeCommentRepo()
	repo.posts = append(repo.posts, domain.Post{Idx: 1, UserIdx: 10})
	require.NoError(t, repo.AddComment(context.Background(), 1, 20, "comment"))
	svc, _ := newCommentService(repo)

	// only the author can delete their comment
	err := svc.DeleteComment(context.Background(), 1, 99)
	assert.Equal(t, errs.ErrNoContent, err)

	err = svc.DeleteComment(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.NotNil(t, repo.comments[0].DeletedAt)
}
