package domain

import "time"

type Comment struct {
	Idx       int64      `db:"idx"`
	PostIdx   int64      `db:"post_idx"`
	UserIdx   int64      `db:"user_idx"`
	Content   string     `db:"content"`
	CreatedAt time.Time  `db:"created_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type CommentView struct {
	Idx       int64     `db:"idx"`
	PostIdx   int64     `db:"post_idx"`
	UserIdx   int64     `db:"user_idx"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
	Nickname  string    `db:"nickname"`
}
