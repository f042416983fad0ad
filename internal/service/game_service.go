package service

import (
	"context"

	"github.com/gamepedia/community-service/internal/domain"
	"github.com/gamepedia/community-service/internal/dto"
	objectstorage "github.com/gamepedia/community-service/internal/infrastructure/object-storage"
	"github.com/gamepedia/community-service/internal/repository"
	"github.com/gamepedia/community-service/pkg/errs"
)

const (
	gamePageSize = 20

	// The landing page shows a 19 card grid, later pages show 16.
	popularFirstPageSize = 19
	popularNextPageSize  = 16
)

type GameService interface {
	AddGameRequest(ctx context.Context, userIdx int64, req dto.GameRequestRequest) error

	GetGames(ctx context.Context, page int) (dto.GamesResponse, error)
	SearchGames(ctx context.Context, title string) ([]dto.GameSearchResponse, error)
	GetPopularGames(ctx context.Context, page int) (dto.PopularGamesResponse, error)
	GetBanners(ctx context.Context, gameIdx int64) ([]dto.BannerResponse, error)

	GetHistories(ctx context.Context, gameIdx int64) (dto.HistoryListResponse, error)
	GetHistoryDetail(ctx context.Context, historyIdx int64, gameIdx int64) (dto.HistoryDetailResponse, error)
	ReviseWiki(ctx context.Context, gameIdx int64, userIdx int64, req dto.WikiRequest) error
	UploadWikiImage(ctx context.Context, gameIdx int64, filename string, contentType string, body []byte) (dto.WikiImageResponse, error)
}

type GameServiceImpl struct {
	repo    repository.GameRepository
	storage objectstorage.ObjectStorage
}

func CreateGameService(repo repository.GameRepository, storage objectstorage.ObjectStorage) GameService {
	return &GameServiceImpl{repo: repo, storage: storage}
}

func (s *GameServiceImpl) AddGameRequest(ctx context.Context, userIdx int64, req dto.GameRequestRequest) (err error) {
	game, err := s.repo.GetGameByTitle(ctx, req.Title)
	if err != nil {
		return
	}
	if game.Idx != 0 {
		return errs.ErrExistingGameTitle
	}

	return s.repo.AddRequest(ctx, userIdx, req.Title)
}

func (s *GameServiceImpl) GetGames(ctx context.Context, page int) (resp dto.GamesResponse, err error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * gamePageSize

	total, err := s.repo.CountGames(ctx)
	if err != nil {
		return
	}

	games, err := s.repo.GetGames(ctx, gamePageSize, offset)
	if err != nil {
		return
	}

	resp.Page = page
	resp.MaxPage = int((total + gamePageSize - 1) / gamePageSize)
	resp.Skip = offset
	resp.Count = len(games)
	resp.GameList = make([]dto.GameResponse, 0, len(games))
	for _, g := range games {
		resp.GameList = append(resp.GameList, dto.GameResponse{
			Idx:       g.Idx,
			UserIdx:   g.UserIdx,
			Title:     g.Title,
			CreatedAt: g.CreatedAt,
		})
	}

	return
}

func (s *GameServiceImpl) SearchGames(ctx context.Context, title string) (resp []dto.GameSearchResponse, err error) {
	games, err := s.repo.SearchGames(ctx, title)
	if err != nil {
		return
	}

	resp = make([]dto.GameSearchResponse, 0, len(games))
	for _, g := range games {
		resp = append(resp, dto.GameSearchResponse{Idx: g.Idx, Title: g.Title, ImgPath: g.ImgPath})
	}

	return
}

func (s *GameServiceImpl) GetPopularGames(ctx context.Context, page int) (resp dto.PopularGamesResponse, err error) {
	if page < 1 {
		page = 1
	}

	limit := popularFirstPageSize
	offset := 0
	if page > 1 {
		limit = popularNextPageSize
		offset = popularFirstPageSize + popularNextPageSize*(page-2)
	}

	total, err := s.repo.CountGames(ctx)
	if err != nil {
		return
	}

	games, err := s.repo.GetPopularGames(ctx, limit, offset)
	if err != nil {
		return
	}

	maxPage := 1
	if total > popularFirstPageSize {
		maxPage = 1 + int((total-popularFirstPageSize+popularNextPageSize-1)/popularNextPageSize)
	}

	resp.Page = page
	resp.MaxPage = maxPage
	resp.Skip = offset
	resp.Count = len(games)
	resp.GameList = make([]dto.PopularGameResponse, 0, len(games))
	for _, g := range games {
		resp.GameList = append(resp.GameList, dto.PopularGameResponse{
			Idx:       g.Idx,
			Title:     g.Title,
			PostCount: g.PostCount,
			ImgPath:   g.ImgPath,
		})
	}

	return
}

func (s *GameServiceImpl) GetBanners(ctx context.Context, gameIdx int64) (resp []dto.BannerResponse, err error) {
	imgPaths, err := s.repo.GetBannerImages(ctx, gameIdx)
	if err != nil {
		return
	}

	resp = make([]dto.BannerResponse, 0, len(imgPaths))
	for _, p := range imgPaths {
		resp = append(resp, dto.BannerResponse{ImgPath: p})
	}

	return
}

func (s *GameServiceImpl) GetHistories(ctx context.Context, gameIdx int64) (resp dto.HistoryListResponse, err error) {
	game, err := s.repo.GetGameByID(ctx, gameIdx)
	if err != nil {
		return
	}
	if game.Idx == 0 || game.DeletedAt != nil {
		return resp, errs.ErrNoContent
	}

	histories, err := s.repo.GetHistories(ctx, gameIdx)
	if err != nil {
		return
	}

	resp.Idx = game.Idx
	resp.Title = game.Title
	resp.HistoryList = make([]dto.HistorySummaryResponse, 0, len(histories))
	for _, h := range histories {
		resp.HistoryList = append(resp.HistoryList, dto.HistorySummaryResponse{
			Idx:       h.Idx,
			CreatedAt: h.CreatedAt,
			Nickname:  h.Nickname,
		})
	}

	return
}

func (s *GameServiceImpl) GetHistoryDetail(ctx context.Context, historyIdx int64, gameIdx int64) (resp dto.HistoryDetailResponse, err error) {
	detail, err := s.repo.GetHistoryDetail(ctx, historyIdx, gameIdx)
	if err != nil {
		return
	}

	resp.HistoryIdx = detail.Idx
	resp.GameIdx = detail.GameIdx
	resp.UserIdx = detail.UserIdx
	resp.Title = detail.Title
	resp.Content = detail.Content
	resp.CreatedAt = detail.CreatedAt
	resp.Nickname = detail.Nickname

	return
}

// ReviseWiki appends a history revision and notifies every distinct prior
// contributor, the editor included. A game with no history yet cannot be
// revised. The revision and the notification fan-out commit together or not
// at all.
func (s *GameServiceImpl) ReviseWiki(ctx context.Context, gameIdx int64, userIdx int64, req dto.WikiRequest) (err error) {
	return s.repo.HandleTrx(ctx, func(ctx context.Context, repo repository.GameRepository) error {
		game, err := repo.GetGameByID(ctx, gameIdx)
		if err != nil {
			return err
		}
		if game.Idx == 0 || game.DeletedAt != nil {
			return errs.ErrNoContent
		}

		contributors, err := repo.GetHistoryContributors(ctx, gameIdx)
		if err != nil {
			return err
		}
		if len(contributors) == 0 {
			return errs.ErrNoContent
		}

		if err := repo.AddHistory(ctx, gameIdx, userIdx, req.Content); err != nil {
			return err
		}

		return repo.AddNotificationsBulk(ctx, domain.NotificationModifyGame, gameIdx, contributors)
	})
}

func (s *GameServiceImpl) UploadWikiImage(ctx context.Context, gameIdx int64, filename string, contentType string, body []byte) (resp dto.WikiImageResponse, err error) {
	if len(body) == 0 {
		return resp, errs.ErrNoImage
	}

	historyIdx, err := s.repo.GetLatestHistoryIdx(ctx, gameIdx)
	if err != nil {
		return
	}
	if historyIdx == 0 {
		return resp, errs.ErrNoContent
	}

	location, err := s.storage.Upload(ctx, filename, contentType, body)
	if err != nil {
		return resp, errs.ErrInternalServer
	}

	err = s.repo.AddWikiImage(ctx, historyIdx, location)
	if err != nil {
		return
	}

	resp.Location = location

	return
}
