package repository

import (
	"context"
	"database/sql"

	"github.com/gamepedia/community-service/internal/domain"
	"github.com/gamepedia/community-service/pkg/errs"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type AdminRepository interface {
	HandleTrx(ctx context.Context, fn func(ctx context.Context, repo AdminRepository) error) error

	GetPendingRequests(ctx context.Context, limit int, offset int) (data []domain.Request, err error)
	CountPendingRequests(ctx context.Context) (count int64, err error)

	ConsumeRequest(ctx context.Context, requestIdx int64, confirmed bool) (data domain.Request, err error)
	GetGameByTitles(ctx context.Context, titleKor string, titleEng string) (data domain.Game, err error)
	AddGame(ctx context.Context, userIdx int64, title string, titleKor string, titleEng string) (gameIdx int64, err error)
	AddTombstonedGame(ctx context.Context, userIdx int64, title string) (gameIdx int64, err error)
	AddPost(ctx context.Context, userIdx int64, gameIdx int64, title string, content string) (postIdx int64, err error)
	AddThumbnail(ctx context.Context, gameIdx int64, imgPath string) (err error)
	AddBanner(ctx context.Context, gameIdx int64, imgPath string) (err error)
	AddNotification(ctx context.Context, kind string, gameIdx int64, userIdx int64) (err error)
}

type AdminRepositoryImpl struct {
	db *sqlx.DB
	tx *sqlx.Tx
}

func CreateAdminRepository(db *sqlx.DB) AdminRepository {
	return &AdminRepositoryImpl{db: db}
}

func (r *AdminRepositoryImpl) ext() sqlx.ExtContext {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// HandleTrx runs fn against a tx-scoped repository. The named result matters:
// the deferred commit writes its error into it.
func (r *AdminRepositoryImpl) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo AdminRepository) error) (err error) {
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

	trxRepo := &AdminRepositoryImpl{tx: tx}

	err = fn(ctx, trxRepo)

	return err
}

func (r *AdminRepositoryImpl) GetPendingRequests(ctx context.Context, limit int, offset int) (data []domain.Request, err error) {
	err = sqlx.SelectContext(ctx, r.ext(), &data, `SELECT * FROM request WHERE deleted_at IS NULL ORDER BY created_at ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		log.Error().Err(err).Str("component", "GetPendingRequests").Msg("")
		return nil, errs.ErrInternalServer
	}

	return
}

func (r *AdminRepositoryImpl) CountPendingRequests(ctx context.Context) (count int64, err error) {
	err = sqlx.GetContext(ctx, r.ext(), &count, `SELECT count(*) FROM request WHERE deleted_at IS NULL`)
	if err != nil {
		log.Error().Err(err).Str("component", "CountPendingRequests").Msg("")
		return 0, errs.ErrInternalServer
	}

	return
}

// ConsumeRequest settles a pending request. The deleted_at guard makes it
// single-shot: a request already settled by a concurrent admin yields no row.
func (r *AdminRepositoryImpl) ConsumeRequest(ctx context.Context, requestIdx int64, confirmed bool) (data domain.Request, err error) {
	err = sqlx.GetContext(ctx, r.ext(), &data, `
		UPDATE request
		SET is_confirmed = $2, deleted_at = now()
		WHERE idx = $1 AND deleted_at IS NULL
		RETURNING *`, requestIdx, confirmed)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, errs.ErrNoContent
		}
		log.Error().Err(err).Str("component", "ConsumeRequest").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *AdminRepositoryImpl) GetGameByTitles(ctx context.Context, titleKor string, titleEng string) (data domain.Game, err error) {
	err = sqlx.GetContext(ctx, r.ext(), &data, `SELECT * FROM game WHERE (title_kor = $1 OR title_eng = $2) AND deleted_at IS NULL`, titleKor, titleEng)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, nil
		}
		log.Error().Err(err).Str("component", "GetGameByTitles").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *AdminRepositoryImpl) AddGame(ctx context.Context, userIdx int64, title string, titleKor string, titleEng string) (gameIdx int64, err error) {
	err = sqlx.GetContext(ctx, r.ext(), &gameIdx, `INSERT INTO game(user_idx, title, title_kor, title_eng) VALUES ($1, $2, $3, $4) RETURNING idx`, userIdx, title, titleKor, titleEng)
	if err != nil {
		log.Error().Err(err).Str("component", "AddGame").Msg("")
		return 0, translateWriteError(err)
	}

	return
}

// AddTombstonedGame inserts a game that is dead on arrival. Denials need a
// game row so the notification can reference the rejected title.
func (r *AdminRepositoryImpl) AddTombstonedGame(ctx context.Context, userIdx int64, title string) (gameIdx int64, err error) {
	err = sqlx.GetContext(ctx, r.ext(), &gameIdx, `INSERT INTO game(user_idx, title, title_kor, title_eng, deleted_at) VALUES ($1, $2, $2, $2, now()) RETURNING idx`, userIdx, title)
	if err != nil {
		log.Error().Err(err).Str("component", "AddTombstonedGame").Msg("")
		return 0, errs.ErrInternalServer
	}

	return
}

func (r *AdminRepositoryImpl) AddPost(ctx context.Context, userIdx int64, gameIdx int64, title string, content string) (postIdx int64, err error) {
	err = sqlx.GetContext(ctx, r.ext(), &postIdx, `INSERT INTO post(user_idx, game_idx, title, content) VALUES ($1, $2, $3, $4) RETURNING idx`, userIdx, gameIdx, title, content)
	if err != nil {
		log.Error().Err(err).Str("component", "AddPost").Msg("")
		return 0, errs.ErrInternalServer
	}

	return
}

func (r *AdminRepositoryImpl) AddThumbnail(ctx context.Context, gameIdx int64, imgPath string) (err error) {
	_, err = r.ext().ExecContext(ctx, `INSERT INTO game_img_thumbnail(game_idx, img_path) VALUES ($1, $2)`, gameIdx, imgPath)
	if err != nil {
		log.Error().Err(err).Str("component", "AddThumbnail").Msg("")
		return errs.ErrInternalServer
	}

	return
}

func (r *AdminRepositoryImpl) AddBanner(ctx context.Context, gameIdx int64, imgPath string) (err error) {
	_, err = r.ext().ExecContext(ctx, `INSERT INTO game_img_banner(game_idx, img_path) VALUES ($1, $2)`, gameIdx, imgPath)
	if err != nil {
		log.Error().Err(err).Str("component", "AddBanner").Msg("")
		return errs.ErrInternalServer
	}

	return
}

func (r *AdminRepositoryImpl) AddNotification(ctx context.Context, kind string, gameIdx int64, userIdx int64) (err error) {
	_, err = r.ext().ExecContext(ctx, `INSERT INTO notification(type, game_idx, post_idx, user_idx) VALUES ($1, $2, NULL, $3)`, domain.NotificationTypeCode(kind), gameIdx, userIdx)
	if err != nil {
		log.Error().Err(err).Str("component", "AddNotification").Msg("")
		return errs.ErrInternalServer
	}

	return
}
