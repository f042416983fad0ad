package domain

import "time"

type Post struct {
	Idx       int64      `db:"idx"`
	UserIdx   int64      `db:"user_idx"`
	GameIdx   int64      `db:"game_idx"`
	Title     string     `db:"title"`
	Content   string     `db:"content"`
	CreatedAt time.Time  `db:"created_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type PostSummary struct {
	Idx       int64     `db:"idx"`
	GameIdx   int64     `db:"game_idx"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
	UserIdx   int64     `db:"user_idx"`
	Nickname  string    `db:"nickname"`
	View      int64     `db:"view"`
}

type PostDetail struct {
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
	GameIdx   int64     `db:"game_idx"`
	UserIdx   int64     `db:"user_idx"`
	Nickname  string    `db:"nickname"`
	View      int64     `db:"view"`
}
