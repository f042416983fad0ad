package domain

import "time"

const (
	NotificationMakeComment = "MAKE_COMMENT"
	NotificationModifyGame  = "MODIFY_GAME"
	NotificationDenyGame    = "DENY_GAME"

	// NotificationApproveGame has no type code. Approval rows are stored
	// with a NULL type and clients render them as a generic notice.
	NotificationApproveGame = "APPROVE_GAME"
)

// NotificationTypeCode maps a notification kind to its stored type code.
// Unrecognized kinds map to nil and are stored with a NULL type.
func NotificationTypeCode(kind string) *int16 {
	var code int16
	switch kind {
	case NotificationMakeComment:
		code = 1
	case NotificationModifyGame:
		code = 2
	case NotificationDenyGame:
		code = 3
	default:
		return nil
	}
	return &code
}

type Notification struct {
	Idx       int64      `db:"idx"`
	Type      *int16     `db:"type"`
	UserIdx   int64      `db:"user_idx"`
	GameIdx   *int64     `db:"game_idx"`
	PostIdx   *int64     `db:"post_idx"`
	CreatedAt time.Time  `db:"created_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type NotificationView struct {
	Idx       int64     `db:"idx"`
	Type      *int16    `db:"type"`
	UserIdx   int64     `db:"user_idx"`
	GameIdx   *int64    `db:"game_idx"`
	PostIdx   *int64    `db:"post_idx"`
	CreatedAt time.Time `db:"created_at"`
	PostTitle *string   `db:"post_title"`
	GameTitle *string   `db:"game_title"`
}
