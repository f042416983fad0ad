package repository

import (
	"context"
	"database/sql"

	"github.com/gamepedia/community-service/internal/domain"
	"github.com/gamepedia/community-service/pkg/errs"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type GameRepository interface {
	HandleTrx(ctx context.Context, fn func(ctx context.Context, repo GameRepository) error) error

	GetGameByTitle(ctx context.Context, title string) (data domain.Game, err error)
	AddRequest(ctx context.Context, userIdx int64, title string) (err error)

	GetGames(ctx context.Context, limit int, offset int) (data []domain.Game, err error)
	CountGames(ctx context.Context) (count int64, err error)
	SearchGames(ctx context.Context, title string) (data []domain.GameSearchResult, err error)
	GetPopularGames(ctx context.Context, limit int, offset int) (data []domain.PopularGame, err error)
	GetBannerImages(ctx context.Context, gameIdx int64) (imgPaths []string, err error)

	GetGameByID(ctx context.Context, gameIdx int64) (data domain.Game, err error)
	GetHistories(ctx context.Context, gameIdx int64) (data []domain.HistorySummary, err error)
	GetLatestHistoryIdx(ctx context.Context, gameIdx int64) (historyIdx int64, err error)
	GetHistoryDetail(ctx context.Context, historyIdx int64, gameIdx int64) (data domain.HistoryDetail, err error)
	GetHistoryContributors(ctx context.Context, gameIdx int64) (userIdxs []int64, err error)
	AddHistory(ctx context.Context, gameIdx int64, userIdx int64, content string) (err error)
	AddWikiImage(ctx context.Context, historyIdx int64, imgPath string) (err error)

	AddNotificationsBulk(ctx context.Context, kind string, gameIdx int64, userIdxs []int64) (err error)
}

type GameRepositoryImpl struct {
	db *sqlx.DB
	tx *sqlx.Tx
}

func CreateGameRepository(db *sqlx.DB) GameRepository {
	return &GameRepositoryImpl{db: db}
}

func (r *GameRepositoryImpl) ext() sqlx.ExtContext {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// HandleTrx runs fn against a tx-scoped repository. The named result matters:
// the deferred commit writes its error into it.
func (r *GameRepositoryImpl) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo GameRepository) error) (err error) {
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

	trxRepo := &GameRepositoryImpl{tx: tx}

	err = fn(ctx, trxRepo)

	return err
}

func (r *GameRepositoryImpl) GetGameByTitle(ctx context.Context, title string) (data domain.Game, err error) {
	err = sqlx.GetContext(ctx, r.ext(), &data, `SELECT * FROM game WHERE title = $1 AND deleted_at IS NULL`, title)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, nil
		}
		log.Error().Err(err).Str("component", "GetGameByTitle").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *GameRepositoryImpl) AddRequest(ctx context.Context, userIdx int64, title string) (err error) {
	_, err = r.ext().ExecContext(ctx, `INSERT INTO request(user_idx, title) VALUES ($1, $2)`, userIdx, title)
	if err != nil {
		log.Error().Err(err).Str("component", "AddRequest").Msg("")
		return translateWriteError(err)
	}

	return
}

func (r *GameRepositoryImpl) GetGames(ctx context.Context, limit int, offset int) (data []domain.Game, err error) {
	err = sqlx.SelectContext(ctx, r.ext(), &data, `SELECT * FROM game WHERE deleted_at IS NULL ORDER BY title ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		log.Error().Err(err).Str("component", "GetGames").Msg("")
		return nil, errs.ErrInternalServer
	}

	return
}

func (r *GameRepositoryImpl) CountGames(ctx context.Context) (count int64, err error) {
	err = sqlx.GetContext(ctx, r.ext(), &count, `SELECT count(*) FROM game WHERE deleted_at IS NULL`)
	if err != nil {
		log.Error().Err(err).Str("component", "CountGames").Msg("")
		return 0, errs.ErrInternalServer
	}

	return
}

func (r *GameRepositoryImpl) SearchGames(ctx context.Context, title string) (data []domain.GameSearchResult, err error) {
	err = sqlx.SelectContext(ctx, r.ext(), &data, `
		SELECT g.idx, g.title, t.img_path
		FROM game g
		JOIN game_img_thumbnail t ON g.idx = t.game_idx
		WHERE (g.title_kor ILIKE $1 OR g.title_eng ILIKE $1)
		AND g.deleted_at IS NULL
		AND t.deleted_at IS NULL`, "%"+title+"%")
	if err != nil {
		log.Error().Err(err).Str("component", "SearchGames").Msg("")
		return nil, errs.ErrInternalServer
	}

	return
}

func (r *GameRepositoryImpl) GetPopularGames(ctx context.Context, limit int, offset int) (data []domain.PopularGame, err error) {
	err = sqlx.SelectContext(ctx, r.ext(), &data, `
		SELECT g.idx, g.title, count(*) AS post_count, t.img_path
		FROM game g
		JOIN post p ON g.idx = p.game_idx
		JOIN game_img_thumbnail t ON g.idx = t.game_idx
		WHERE g.deleted_at IS NULL AND t.deleted_at IS NULL
		GROUP BY g.title, t.img_path, g.idx
		ORDER BY post_count DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		log.Error().Err(err).Str("component", "GetPopularGames").Msg("")
		return nil, errs.ErrInternalServer
	}

	return
}

func (r *GameRepositoryImpl) GetBannerImages(ctx context.Context, gameIdx int64) (imgPaths []string, err error) {
	err = sqlx.SelectContext(ctx, r.ext(), &imgPaths, `SELECT img_path FROM game_img_banner WHERE game_idx = $1 AND deleted_at IS NULL`, gameIdx)
	if err != nil {
		log.Error().Err(err).Str("component", "GetBannerImages").Msg("")
		return nil, errs.ErrInternalServer
	}

	return
}

func (r *GameRepositoryImpl) GetGameByID(ctx context.Context, gameIdx int64) (data domain.Game, err error) {
	err = sqlx.GetContext(ctx, r.ext(), &data, `SELECT * FROM game WHERE idx = $1`, gameIdx)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, nil
		}
		log.Error().Err(err).Str("component", "GetGameByID").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *GameRepositoryImpl) GetHistories(ctx context.Context, gameIdx int64) (data []domain.HistorySummary, err error) {
	err = sqlx.SelectContext(ctx, r.ext(), &data, `
		SELECT h.idx, TO_CHAR(h.created_at AT TIME ZONE 'Asia/Seoul', 'YYYY-MM-DD HH24:MI:SS') AS created_at, u.nickname
		FROM history h
		JOIN "user" u ON h.user_idx = u.idx
		WHERE h.game_idx = $1
		ORDER BY h.created_at DESC`, gameIdx)
	if err != nil {
		log.Error().Err(err).Str("component", "GetHistories").Msg("")
		return nil, errs.ErrInternalServer
	}

	return
}

func (r *GameRepositoryImpl) GetLatestHistoryIdx(ctx context.Context, gameIdx int64) (historyIdx int64, err error) {
	err = sqlx.GetContext(ctx, r.ext(), &historyIdx, `SELECT COALESCE(MAX(idx), 0) FROM history WHERE game_idx = $1`, gameIdx)
	if err != nil {
		log.Error().Err(err).Str("component", "GetLatestHistoryIdx").Msg("")
		return 0, errs.ErrInternalServer
	}

	return
}

func (r *GameRepositoryImpl) GetHistoryDetail(ctx context.Context, historyIdx int64, gameIdx int64) (data domain.HistoryDetail, err error) {
	err = sqlx.GetContext(ctx, r.ext(), &data, `
		SELECT h.idx, h.game_idx, h.user_idx, g.title, h.content, h.created_at, u.nickname
		FROM history h
		JOIN "user" u ON h.user_idx = u.idx
		JOIN game g ON g.idx = h.game_idx
		WHERE h.idx = $1 AND h.game_idx = $2`, historyIdx, gameIdx)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, errs.ErrNoContent
		}
		log.Error().Err(err).Str("component", "GetHistoryDetail").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *GameRepositoryImpl) GetHistoryContributors(ctx context.Context, gameIdx int64) (userIdxs []int64, err error) {
	err = sqlx.SelectContext(ctx, r.ext(), &userIdxs, `SELECT DISTINCT user_idx FROM history WHERE game_idx = $1`, gameIdx)
	if err != nil {
		log.Error().Err(err).Str("component", "GetHistoryContributors").Msg("")
		return nil, errs.ErrInternalServer
	}

	return
}

func (r *GameRepositoryImpl) AddHistory(ctx context.Context, gameIdx int64, userIdx int64, content string) (err error) {
	_, err = r.ext().ExecContext(ctx, `INSERT INTO history(game_idx, user_idx, content) VALUES ($1, $2, $3)`, gameIdx, userIdx, content)
	if err != nil {
		log.Error().Err(err).Str("component", "AddHistory").Msg("")
		return errs.ErrInternalServer
	}

	return
}

func (r *GameRepositoryImpl) AddWikiImage(ctx context.Context, historyIdx int64, imgPath string) (err error) {
	_, err = r.ext().ExecContext(ctx, `INSERT INTO game_img(history_idx, img_path) VALUES ($1, $2)`, historyIdx, imgPath)
	if err != nil {
		log.Error().Err(err).Str("component", "AddWikiImage").Msg("")
		return errs.ErrInternalServer
	}

	return
}

// AddNotificationsBulk inserts one notification row per recipient in a
// single statement, so the fan-out commits or rolls back as a set.
func (r *GameRepositoryImpl) AddNotificationsBulk(ctx context.Context, kind string, gameIdx int64, userIdxs []int64) (err error) {
	_, err = r.ext().ExecContext(ctx, `INSERT INTO notification(type, game_idx, post_idx, user_idx) SELECT $1, $2, NULL, UNNEST($3::bigint[])`, domain.NotificationTypeCode(kind), gameIdx, pq.Array(userIdxs))
	if err != nil {
		log.Error().Err(err).Str("component", "AddNotificationsBulk").Msg("")
		return errs.ErrInternalServer
	}

	return
}
