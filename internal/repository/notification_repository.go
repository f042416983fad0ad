package repository

import (
	"context"

	"github.com/gamepedia/community-service/internal/domain"
	"github.com/gamepedia/community-service/pkg/errs"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// NotificationRepository writes outside any caller transaction. It backs the
// best-effort paths where losing a notification must not fail the request.
type NotificationRepository interface {
	AddNotification(ctx context.Context, kind string, gameIdx int64, postIdx int64, userIdx int64) (err error)
}

type NotificationRepositoryImpl struct {
	db *sqlx.DB
}

func CreateNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) AddNotification(ctx context.Context, kind string, gameIdx int64, postIdx int64, userIdx int64) (err error) {
	_, err = r.db.ExecContext(ctx, `INSERT INTO notification(type, game_idx, post_idx, user_idx) VALUES ($1, $2, $3, $4)`, domain.NotificationTypeCode(kind), gameIdx, postIdx, userIdx)
	if err != nil {
		log.Error().Err(err).Str("component", "AddNotification").Msg("")
		return errs.ErrInternalServer
	}

	return
}
