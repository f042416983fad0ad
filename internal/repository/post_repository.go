package repository

import (
	"context"
	"database/sql"

	"github.com/gamepedia/community-service/internal/domain"
	"github.com/gamepedia/community-service/pkg/errs"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type PostRepository interface {
	HandleTrx(ctx context.Context, fn func(ctx context.Context, repo PostRepository) error) error

	AddPost(ctx context.Context, userIdx int64, gameIdx int64, title string, content string) (postIdx int64, err error)
	GetPosts(ctx context.Context, gameIdx int64, limit int, offset int) (data []domain.PostSummary, err error)
	CountPosts(ctx context.Context, gameIdx int64) (count int64, err error)
	SearchPosts(ctx context.Context, gameIdx int64, keyword string, limit int, offset int) (data []domain.PostSummary, err error)
	CountSearchPosts(ctx context.Context, gameIdx int64, keyword string) (count int64, err error)
	GetPostDetail(ctx context.Context, postIdx int64) (data domain.PostDetail, err error)
	AddView(ctx context.Context, postIdx int64, userIdx int64) (err error)
	SoftDeletePost(ctx context.Context, postIdx int64, userIdx int64) (deleted bool, err error)
}

type PostRepositoryImpl struct {
	db *sqlx.DB
	tx *sqlx.Tx
}

func CreatePostRepository(db *sqlx.DB) PostRepository {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) ext() sqlx.ExtContext {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// HandleTrx runs fn against a tx-scoped repository. The named result matters:
// the deferred commit writes its error into it.
func (r *PostRepositoryImpl) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo PostRepository) error) (err error) {
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

	trxRepo := &PostRepositoryImpl{tx: tx}

	err = fn(ctx, trxRepo)

	return err
}

func (r *PostRepositoryImpl) AddPost(ctx context.Context, userIdx int64, gameIdx int64, title string, content string) (postIdx int64, err error) {
	err = sqlx.GetContext(ctx, r.ext(), &postIdx, `INSERT INTO post(user_idx, game_idx, title, content) VALUES ($1, $2, $3, $4) RETURNING idx`, userIdx, gameIdx, title, content)
	if err != nil {
		log.Error().Err(err).Str("component", "AddPost").Msg("")
		return 0, errs.ErrInternalServer
	}

	return
}

func (r *PostRepositoryImpl) GetPosts(ctx context.Context, gameIdx int64, limit int, offset int) (data []domain.PostSummary, err error) {
	err = sqlx.SelectContext(ctx, r.ext(), &data, `
		SELECT p.idx, p.game_idx, p.title, p.created_at, p.user_idx, u.nickname,
			(SELECT count(*) FROM view v WHERE v.post_idx = p.idx) AS view
		FROM post p
		JOIN "user" u ON p.user_idx = u.idx
		WHERE p.game_idx = $1 AND p.deleted_at IS NULL
		ORDER BY p.idx DESC
		LIMIT $2 OFFSET $3`, gameIdx, limit, offset)
	if err != nil {
		log.Error().Err(err).Str("component", "GetPosts").Msg("")
		return nil, errs.ErrInternalServer
	}

	return
}

func (r *PostRepositoryImpl) CountPosts(ctx context.Context, gameIdx int64) (count int64, err error) {
	err = sqlx.GetContext(ctx, r.ext(), &count, `SELECT count(*) FROM post WHERE game_idx = $1 AND deleted_at IS NULL`, gameIdx)
	if err != nil {
		log.Error().Err(err).Str("component", "CountPosts").Msg("")
		return 0, errs.ErrInternalServer
	}

	return
}

func (r *PostRepositoryImpl) SearchPosts(ctx context.Context, gameIdx int64, keyword string, limit int, offset int) (data []domain.PostSummary, err error) {
	err = sqlx.SelectContext(ctx, r.ext(), &data, `
		SELECT p.idx, p.game_idx, p.title, p.created_at, p.user_idx, u.nickname,
			(SELECT count(*) FROM view v WHERE v.post_idx = p.idx) AS view
		FROM post p
		JOIN "user" u ON p.user_idx = u.idx
		WHERE p.game_idx = $1 AND p.title ILIKE $2 AND p.deleted_at IS NULL
		ORDER BY p.idx DESC
		LIMIT $3 OFFSET $4`, gameIdx, "%"+keyword+"%", limit, offset)
	if err != nil {
		log.Error().Err(err).Str("component", "SearchPosts").Msg("")
		return nil, errs.ErrInternalServer
	}

	return
}

func (r *PostRepositoryImpl) CountSearchPosts(ctx context.Context, gameIdx int64, keyword string) (count int64, err error) {
	err = sqlx.GetContext(ctx, r.ext(), &count, `SELECT count(*) FROM post WHERE game_idx = $1 AND title ILIKE $2 AND deleted_at IS NULL`, gameIdx, "%"+keyword+"%")
	if err != nil {
		log.Error().Err(err).Str("component", "CountSearchPosts").Msg("")
		return 0, errs.ErrInternalServer
	}

	return
}

func (r *PostRepositoryImpl) GetPostDetail(ctx context.Context, postIdx int64) (data domain.PostDetail, err error) {
	err = sqlx.GetContext(ctx, r.ext(), &data, `
		SELECT p.title, p.content, p.created_at, p.game_idx, p.user_idx, u.nickname,
			(SELECT count(*) FROM view v WHERE v.post_idx = p.idx) AS view
		FROM post p
		JOIN "user" u ON p.user_idx = u.idx
		WHERE p.idx = $1 AND p.deleted_at IS NULL`, postIdx)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, errs.ErrNoContent
		}
		log.Error().Err(err).Str("component", "GetPostDetail").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *PostRepositoryImpl) AddView(ctx context.Context, postIdx int64, userIdx int64) (err error) {
	_, err = r.ext().ExecContext(ctx, `INSERT INTO view(post_idx, user_idx) VALUES ($1, $2)`, postIdx, userIdx)
	if err != nil {
		log.Error().Err(err).Str("component", "AddView").Msg("")
		return errs.ErrInternalServer
	}

	return
}

// SoftDeletePost only touches rows owned by userIdx, so authorship is
// enforced by the statement itself.
func (r *PostRepositoryImpl) SoftDeletePost(ctx context.Context, postIdx int64, userIdx int64) (deleted bool, err error) {
	result, err := r.ext().ExecContext(ctx, `UPDATE post SET deleted_at = now() WHERE idx = $1 AND user_idx = $2 AND deleted_at IS NULL`, postIdx, userIdx)
	if err != nil {
		log.Error().Err(err).Str("component", "SoftDeletePost").Msg("")
		return false, errs.ErrInternalServer
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Error().Err(err).Str("component", "SoftDeletePost").Msg("")
		return false, errs.ErrInternalServer
	}

	return affected > 0, nil
}
