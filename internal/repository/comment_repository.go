package repository

import (
	"context"
	"database/sql"

	"github.com/gamepedia/community-service/internal/domain"
	"github.com/gamepedia/community-service/pkg/errs"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type CommentRepository interface {
	HandleTrx(ctx context.Context, fn func(ctx context.Context, repo CommentRepository) error) error

	GetPost(ctx context.Context, postIdx int64) (data domain.Post, err error)
	AddComment(ctx context.Context, postIdx int64, userIdx int64, content string) (err error)
	GetComments(ctx context.Context, postIdx int64, lastIdx int64, limit int) (data []domain.CommentView, err error)
	CountComments(ctx context.Context, postIdx int64) (count int64, err error)
	SoftDeleteComment(ctx context.Context, commentIdx int64, userIdx int64) (deleted bool, err error)
}

type CommentRepositoryImpl struct {
	db *sqlx.DB
	tx *sqlx.Tx
}

func CreateCommentRepository(db *sqlx.DB) CommentRepository {
	return &CommentRepositoryImpl{db: db}
}

func (r *CommentRepositoryImpl) ext() sqlx.ExtContext {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// HandleTrx runs fn against a tx-scoped repository. The named result matters:
// the deferred commit writes its error into it.
func (r *CommentRepositoryImpl) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo CommentRepository) error) (err error) {
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

	trxRepo := &CommentRepositoryImpl{tx: tx}

	err = fn(ctx, trxRepo)

	return err
}

func (r *CommentRepositoryImpl) GetPost(ctx context.Context, postIdx int64) (data domain.Post, err error) {
	err = sqlx.GetContext(ctx, r.ext(), &data, `SELECT * FROM post WHERE idx = $1 AND deleted_at IS NULL`, postIdx)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, nil
		}
		log.Error().Err(err).Str("component", "GetPost").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *CommentRepositoryImpl) AddComment(ctx context.Context, postIdx int64, userIdx int64, content string) (err error) {
	_, err = r.ext().ExecContext(ctx, `INSERT INTO comment(post_idx, user_idx, content) VALUES ($1, $2, $3)`, postIdx, userIdx, content)
	if err != nil {
		log.Error().Err(err).Str("component", "AddComment").Msg("")
		return errs.ErrInternalServer
	}

	return
}

// GetComments pages forward by keyset: callers pass the last idx they have
// seen and get the next batch in ascending order.
func (r *CommentRepositoryImpl) GetComments(ctx context.Context, postIdx int64, lastIdx int64, limit int) (data []domain.CommentView, err error) {
	err = sqlx.SelectContext(ctx, r.ext(), &data, `
		SELECT c.idx, c.post_idx, c.user_idx, c.content, c.created_at, u.nickname
		FROM comment c
		JOIN "user" u ON c.user_idx = u.idx
		WHERE c.post_idx = $1 AND c.idx > $2 AND c.deleted_at IS NULL
		ORDER BY c.idx ASC
		LIMIT $3`, postIdx, lastIdx, limit)
	if err != nil {
		log.Error().Err(err).Str("component", "GetComments").Msg("")
		return nil, errs.ErrInternalServer
	}

	return
}

func (r *CommentRepositoryImpl) CountComments(ctx context.Context, postIdx int64) (count int64, err error) {
	err = sqlx.GetContext(ctx, r.ext(), &count, `SELECT count(*) FROM comment WHERE post_idx = $1 AND deleted_at IS NULL`, postIdx)
	if err != nil {
		log.Error().Err(err).Str("component", "CountComments").Msg("")
		return 0, errs.ErrInternalServer
	}

	return
}

func (r *CommentRepositoryImpl) SoftDeleteComment(ctx context.Context, commentIdx int64, userIdx int64) (deleted bool, err error) {
	result, err := r.ext().ExecContext(ctx, `UPDATE comment SET deleted_at = now() WHERE idx = $1 AND user_idx = $2 AND deleted_at IS NULL`, commentIdx, userIdx)
	if err != nil {
		log.Error().Err(err).Str("component", "SoftDeleteComment").Msg("")
		return false, errs.ErrInternalServer
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Error().Err(err).Str("component", "SoftDeleteComment").Msg("")
		return false, errs.ErrInternalServer
	}

	return affected > 0, nil
}
