package service

import (
	"context"
	"testing"
	"time"

	"github.com/gamepedia/community-service/internal/domain"
	"github.com/gamepedia/community-service/internal/dto"
	"github.com/gamepedia/community-service/internal/repository"
	"github.com/gamepedia/community-service/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedView struct {
	postIdx int64
	userIdx int64
}

type fakePostRepo struct {
	posts []domain.Post
	views []recordedView

	searchCalls []string

	nextPostIdx int64
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{nextPostIdx: 1}
}

func (r *fakePostRepo) snapshot() fakePostRepo {
	cp := *r
	cp.posts = append([]domain.Post(nil), r.posts...)
	cp.views = append([]recordedView(nil), r.views...)
	cp.searchCalls = append([]string(nil), r.searchCalls...)
	return cp
}

func (r *fakePostRepo) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo repository.PostRepository) error) error {
	saved := r.snapshot()
	if err := fn(ctx, r); err != nil {
		*r = saved
		return err
	}
	return nil
}

func (r *fakePostRepo) AddPost(ctx context.Context, userIdx int64, gameIdx int64, title string, content string) (int64, error) {
	idx := r.nextPostIdx
	r.nextPostIdx++
	r.posts = append(r.posts, domain.Post{Idx: idx, UserIdx: userIdx, GameIdx: gameIdx, Title: title, Content: content, CreatedAt: time.Now()})
	return idx, nil
}

func (r *fakePostRepo) GetPosts(ctx context.Context, gameIdx int64, limit int, offset int) ([]domain.PostSummary, error) {
	result := []domain.PostSummary{}
	for _, p := range r.posts {
		if p.GameIdx == gameIdx && p.DeletedAt == nil {
			result = append(result, domain.PostSummary{Idx: p.Idx, GameIdx: p.GameIdx, Title: p.Title, UserIdx: p.UserIdx})
		}
	}
	return result, nil
}

func (r *fakePostRepo) CountPosts(ctx context.Context, gameIdx int64) (int64, error) {
	var count int64
	for _, p := range r.posts {
		if p.GameIdx == gameIdx && p.DeletedAt == nil {
			count++
		}
	}
	return count, nil
}

func (r *fakePostRepo) SearchPosts(ctx context.Context, gameIdx int64, keyword string, limit int, offset int) ([]domain.PostSummary, error) {
	r.searchCalls = append(r.searchCalls, keyword)
	return nil, nil
}

func (r *fakePostRepo) CountSearchPosts(ctx context.Context, gameIdx int64, keyword string) (int64, error) {
	return 0, nil
}

func (r *fakePostRepo) GetPostDetail(ctx context.Context, postIdx int64) (domain.PostDetail, error) {
	for _, p := range r.posts {
		if p.Idx == postIdx && p.DeletedAt == nil {
			var view int64
			for _, v := range r.views {
				if v.postIdx == postIdx {
					view++
				}
			}
			return domain.PostDetail{Title: p.Title, Content: p.Content, CreatedAt: p.CreatedAt, GameIdx: p.GameIdx, UserIdx: p.UserIdx, View: view}, nil
		}
	}
	return domain.PostDetail{}, errs.ErrNoContent
}

func (r *fakePostRepo) AddView(ctx context.Context, postIdx int64, userIdx int64) error {
	r.views = append(r.views, recordedView{postIdx: postIdx, userIdx: userIdx})
	return nil
}

func (r *fakePostRepo) SoftDeletePost(ctx context.Context, postIdx int64, userIdx int64) (bool, error) {
	now := time.Now()
	for i, p := range r.posts {
		if p.Idx == postIdx && p.UserIdx == userIdx && p.DeletedAt == nil {
			r.posts[i].DeletedAt = &now
			return true, nil
		}
	}
	return false, nil
}

func newPostService(repo *fakePostRepo) (PostService, *fakeStorage) {
	storage := &fakeStorage{}
	return CreatePostService(repo, storage), storage
}

func TestAddPost(t *testing.T) {
	repo := newFakePostRepo()
	svc, _ := newPostService(repo)

	err := svc.AddPost(context.Background(), 10, 1, dto.PostRequest{Title: "hello", Content: "world"})
	require.NoError(t, err)
	require.Len(t, repo.posts, 1)
	assert.Equal(t, int64(10), repo.posts[0].UserIdx)
	assert.Equal(t, int64(1), repo.posts[0].GameIdx)
}

func TestGetPostsUsesSearchWhenKeywordGiven(t *testing.T) {
	repo := newFakePostRepo()
	svc, _ := newPostService(repo)

	_, err := svc.GetPosts(context.Background(), 1, 1, "")
	require.NoError(t, err)
	assert.Empty(t, repo.searchCalls)

	_, err = svc.GetPosts(context.Background(), 1, 1, "guide")
	require.NoError(t, err)
	assert.Equal(t, []string{"guide"}, repo.searchCalls)
}

func TestGetPostsMaxPage(t *testing.T) {
	repo := newFakePostRepo()
	for i := 0; i < 41; i++ {
		_, err := repo.AddPost(context.Background(), 10, 1, "post", "content")
		require.NoError(t, err)
	}
	svc, _ := newPostService(repo)

	resp, err := svc.GetPosts(context.Background(), 1, 1, "")
	require.NoError(t, err)
	assert.Equal(t, 3, resp.MaxPage)
	assert.Equal(t, int64(41), resp.TotalPosts)
}

func TestGetPostDetail(t *testing.T) {
	repo := newFakePostRepo()
	_, err := repo.AddPost(context.Background(), 10, 1, "hello", "world")
	require.NoError(t, err)
	svc, _ := newPostService(repo)

	resp, err := svc.GetPostDetail(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.True(t, resp.IsAuthor)
	// the returned count includes the caller's own visit
	assert.Equal(t, int64(1), resp.View)
	assert.Len(t, repo.views, 1)

	resp, err = svc.GetPostDetail(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.False(t, resp.IsAuthor)
	assert.Equal(t, int64(2), resp.View)
}

func TestGetPostDetailUnknownPost(t *testing.T) {
	svc, _ := newPostService(newFakePostRepo())

	_, err := svc.GetPostDetail(context.Background(), 99, 10)
	assert.Equal(t, errs.ErrNoContent, err)
}

func TestUploadPostImage(t *testing.T) {
	svc, storage := newPostService(newFakePostRepo())

	resp, err := svc.UploadPostImage(context.Background(), "shot.png", "image/png", []byte{1})
	require.NoError(t, err)
	assert.Equal(t, storage.uploads[0], resp.Location)

	_, err = svc.UploadPostImage(context.Background(), "shot.png", "image/png", nil)
	assert.Equal(t, errs.ErrNoImage, err)
}

func TestDeletePost(t *testing.T) {
	repo := newFakePostRepo()
	_, err := repo.AddPost(context.Background(), 10, 1, "hello", "world")
	require.NoError(t, err)
	svc, _ := newPostService(repo)

	// only the author can delete their post
	assert.Equal(t, errs.ErrNoContent, svc.DeletePost(context.Background(), 1, 99))

	require.NoError(t, svc.DeletePost(context.Background(), 1, 10))
	assert.NotNil(t, repo.posts[0].DeletedAt)
}
