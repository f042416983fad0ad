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

type recordedNotification struct {
	kind    string
	gameIdx int64
	userIdx int64
}

type recordedImage struct {
	gameIdx int64
	imgPath string
}

type fakeAdminRepo struct {
	requests      []domain.Request
	games         []domain.Game
	posts         []domain.Post
	thumbnails    []recordedImage
	banners       []recordedImage
	notifications []recordedNotification

	nextGameIdx int64
	nextPostIdx int64
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{nextGameIdx: 1, nextPostIdx: 1}
}

func (r *fakeAdminRepo) snapshot() fakeAdminRepo {
	cp := *r
	cp.requests = append([]domain.Request(nil), r.requests...)
	cp.games = append([]domain.Game(nil), r.games...)
	cp.posts = append([]domain.Post(nil), r.posts...)
	cp.thumbnails = append([]recordedImage(nil), r.thumbnails...)
	cp.banners = append([]recordedImage(nil), r.banners...)
	cp.notifications = append([]recordedNotification(nil), r.notifications...)
	return cp
}

func (r *fakeAdminRepo) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo repository.AdminRepository) error) error {
	saved := r.snapshot()
	if err := fn(ctx, r); err != nil {
		*r = saved
		return err
	}
	return nil
}

func (r *fakeAdminRepo) GetPendingRequests(ctx context.Context, limit int, offset int) ([]domain.Request, error) {
	pending := []domain.Request{}
	for _, req := range r.requests {
		if req.DeletedAt == nil {
			pending = append(pending, req)
		}
	}
	if offset >= len(pending) {
		return nil, nil
	}
	end := offset + limit
	if end > len(pending) {
		end = len(pending)
	}
	return pending[offset:end], nil
}

func (r *fakeAdminRepo) CountPendingRequests(ctx context.Context) (int64, error) {
	var count int64
	for _, req := range r.requests {
		if req.DeletedAt == nil {
			count++
		}
	}
	return count, nil
}

func (r *fakeAdminRepo) ConsumeRequest(ctx context.Context, requestIdx int64, confirmed bool) (domain.Request, error) {
	for i, req := range r.requests {
		if req.Idx == requestIdx && req.DeletedAt == nil {
			now := time.Now()
			r.requests[i].IsConfirmed = confirmed
			r.requests[i].DeletedAt = &now
			return r.requests[i], nil
		}
	}
	return domain.Request{}, errs.ErrNoContent
}

func (r *fakeAdminRepo) GetGameByTitles(ctx context.Context, titleKor string, titleEng string) (domain.Game, error) {
	for _, g := range r.games {
		if (g.TitleKor == titleKor || g.TitleEng == titleEng) && g.DeletedAt == nil {
			return g, nil
		}
	}
	return domain.Game{}, nil
}

func (r *fakeAdminRepo) AddGame(ctx context.Context, userIdx int64, title string, titleKor string, titleEng string) (int64, error) {
	idx := r.nextGameIdx
	r.nextGameIdx++
	r.games = append(r.games, domain.Game{Idx: idx, UserIdx: userIdx, Title: title, TitleKor: titleKor, TitleEng: titleEng})
	return idx, nil
}

func (r *fakeAdminRepo) AddTombstonedGame(ctx context.Context, userIdx int64, title string) (int64, error) {
	idx := r.nextGameIdx
	r.nextGameIdx++
	now := time.Now()
	r.games = append(r.games, domain.Game{Idx: idx, UserIdx: userIdx, Title: title, TitleKor: title, TitleEng: title, DeletedAt: &now})
	return idx, nil
}

func (r *fakeAdminRepo) AddPost(ctx context.Context, userIdx int64, gameIdx int64, title string, content string) (int64, error) {
	idx := r.nextPostIdx
	r.nextPostIdx++
	r.posts = append(r.posts, domain.Post{Idx: idx, UserIdx: userIdx, GameIdx: gameIdx, Title: title, Content: content})
	return idx, nil
}

func (r *fakeAdminRepo) AddThumbnail(ctx context.Context, gameIdx int64, imgPath string) error {
	r.thumbnails = append(r.thumbnails, recordedImage{gameIdx: gameIdx, imgPath: imgPath})
	return nil
}

func (r *fakeAdminRepo) AddBanner(ctx context.Context, gameIdx int64, imgPath string) error {
	r.banners = append(r.banners, recordedImage{gameIdx: gameIdx, imgPath: imgPath})
	return nil
}

func (r *fakeAdminRepo) AddNotification(ctx context.Context, kind string, gameIdx int64, userIdx int64) error {
	r.notifications = append(r.notifications, recordedNotification{kind: kind, gameIdx: gameIdx, userIdx: userIdx})
	return nil
}

func newAdminService(repo *fakeAdminRepo) (AdminService, *fakeStorage, *fakePublisher) {
	storage := &fakeStorage{}
	pub := &fakePublisher{}
	return CreateAdminService(repo, storage, pub), storage, pub
}

func pendingRequest(repo *fakeAdminRepo, idx int64, userIdx int64, title string) {
	repo.requests = append(repo.requests, domain.Request{Idx: idx, UserIdx: userIdx, Title: title, CreatedAt: time.Now()})
}

var (
	testThumbnail = dto.FileUpload{Filename: "thumb.png", ContentType: "image/png", Body: []byte{1}}
	testBanner    = dto.FileUpload{Filename: "banner.png", ContentType: "image/png", Body: []byte{2}}
)

func TestApproveGameRequest(t *testing.T) {
	repo := newFakeAdminRepo()
	pendingRequest(repo, 1, 10, "Stardew Valley")
	svc, storage, pub := newAdminService(repo)

	req := dto.ApproveGameRequest{RequestIdx: 1, Title: "Stardew Valley", TitleKor: "스타듀밸리", TitleEng: "Stardew Valley"}
	err := svc.ApproveGameRequest(context.Background(), 99, req, testThumbnail, testBanner)
	require.NoError(t, err)

	// request is settled positively
	require.NotNil(t, repo.requests[0].DeletedAt)
	assert.True(t, repo.requests[0].IsConfirmed)

	// the game belongs to the requester, the announcement post to the admin
	require.Len(t, repo.games, 1)
	assert.Equal(t, int64(10), repo.games[0].UserIdx)
	assert.Nil(t, repo.games[0].DeletedAt)
	require.Len(t, repo.posts, 1)
	assert.Equal(t, int64(99), repo.posts[0].UserIdx)
	assert.Equal(t, repo.games[0].Idx, repo.posts[0].GameIdx)

	require.Len(t, repo.thumbnails, 1)
	require.Len(t, repo.banners, 1)
	assert.Len(t, storage.uploads, 2)

	require.Len(t, repo.notifications, 1)
	assert.Equal(t, domain.NotificationApproveGame, repo.notifications[0].kind)
	assert.Equal(t, int64(10), repo.notifications[0].userIdx)

	assert.Equal(t, []string{EventGameApproved}, pub.events)
}

func TestApproveGameRequestTitleConflict(t *testing.T) {
	repo := newFakeAdminRepo()
	pendingRequest(repo, 1, 10, "Stardew Valley")
	repo.games = append(repo.games, domain.Game{Idx: 50, Title: "Stardew", TitleKor: "스타듀밸리", TitleEng: "Stardew"})
	repo.nextGameIdx = 51
	svc, _, pub := newAdminService(repo)

	req := dto.ApproveGameRequest{RequestIdx: 1, Title: "Stardew Valley", TitleKor: "스타듀밸리", TitleEng: "Stardew Valley"}
	err := svc.ApproveGameRequest(context.Background(), 99, req, testThumbnail, testBanner)
	assert.Equal(t, errs.ErrConflict, err)

	// the conflict rolls everything back, the request stays pending
	assert.Nil(t, repo.requests[0].DeletedAt)
	assert.Len(t, repo.games, 1)
	assert.Empty(t, repo.posts)
	assert.Empty(t, repo.notifications)
	assert.Empty(t, pub.events)

	// retrying with non-colliding titles succeeds, no residue from the
	// rolled-back attempt gets in the way
	req.TitleKor = "스타듀밸리2"
	req.TitleEng = "Stardew Valley 2"
	err = svc.ApproveGameRequest(context.Background(), 99, req, testThumbnail, testBanner)
	require.NoError(t, err)
	assert.NotNil(t, repo.requests[0].DeletedAt)
	assert.Len(t, repo.games, 2)
	assert.Equal(t, []string{EventGameApproved}, pub.events)
}

func TestApproveGameRequestAlreadySettled(t *testing.T) {
	repo := newFakeAdminRepo()
	pendingRequest(repo, 1, 10, "Stardew Valley")
	now := time.Now()
	repo.requests[0].DeletedAt = &now
	svc, _, pub := newAdminService(repo)

	req := dto.ApproveGameRequest{RequestIdx: 1, Title: "Stardew Valley", TitleKor: "스타듀밸리", TitleEng: "Stardew Valley"}
	err := svc.ApproveGameRequest(context.Background(), 99, req, testThumbnail, testBanner)
	assert.Equal(t, errs.ErrNoContent, err)
	assert.Empty(t, repo.games)
	assert.Empty(t, pub.events)
}

func TestApproveGameRequestMissingImages(t *testing.T) {
	repo := newFakeAdminRepo()
	pendingRequest(repo, 1, 10, "Stardew Valley")
	svc, storage, _ := newAdminService(repo)

	req := dto.ApproveGameRequest{RequestIdx: 1, Title: "Stardew Valley", TitleKor: "스타듀밸리", TitleEng: "Stardew Valley"}
	err := svc.ApproveGameRequest(context.Background(), 99, req, dto.FileUpload{}, testBanner)
	assert.Equal(t, errs.ErrNoImage, err)
	assert.Empty(t, storage.uploads)
	assert.Nil(t, repo.requests[0].DeletedAt)
}

func TestDenyGameRequest(t *testing.T) {
	repo := newFakeAdminRepo()
	pendingRequest(repo, 1, 10, "Stardew Valley")
	svc, _, pub := newAdminService(repo)

	err := svc.DenyGameRequest(context.Background(), 1)
	require.NoError(t, err)

	require.NotNil(t, repo.requests[0].DeletedAt)
	assert.False(t, repo.requests[0].IsConfirmed)

	// a tombstoned game carries the rejected title for the notification
	require.Len(t, repo.games, 1)
	assert.NotNil(t, repo.games[0].DeletedAt)
	assert.Equal(t, "Stardew Valley", repo.games[0].Title)

	require.Len(t, repo.notifications, 1)
	assert.Equal(t, domain.NotificationDenyGame, repo.notifications[0].kind)
	assert.Equal(t, repo.games[0].Idx, repo.notifications[0].gameIdx)
	assert.Equal(t, int64(10), repo.notifications[0].userIdx)

	assert.Empty(t, pub.events)
}

func TestDenyGameRequestAlreadySettled(t *testing.T) {
	repo := newFakeAdminRepo()
	pendingRequest(repo, 1, 10, "Stardew Valley")
	svc, _, _ := newAdminService(repo)

	require.NoError(t, svc.DenyGameRequest(context.Background(), 1))
	assert.Equal(t, errs.ErrNoContent, svc.DenyGameRequest(context.Background(), 1))
	assert.Len(t, repo.games, 1)
}

func TestGetGameRequests(t *testing.T) {
	repo := newFakeAdminRepo()
	pendingRequest(repo, 1, 10, "Game A")
	pendingRequest(repo, 2, 11, "Game B")
	now := time.Now()
	repo.requests = append(repo.requests, domain.Request{Idx: 3, UserIdx: 12, Title: "Settled", DeletedAt: &now})
	svc, _, _ := newAdminService(repo)

	requests, pagination, err := svc.GetGameRequests(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, requests, 2)
	assert.Equal(t, int64(2), pagination.Total)
	assert.Equal(t, 1, pagination.MaxPage)
}
