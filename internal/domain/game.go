package domain

import "time"

type Game struct {
	Idx       int64      `db:"idx"`
	UserIdx   int64      `db:"user_idx"`
	Title     string     `db:"title"`
	TitleKor  string     `db:"title_kor"`
	TitleEng  string     `db:"title_eng"`
	CreatedAt time.Time  `db:"created_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

// Request is a user's petition to create a game. It is terminal once
// deleted_at is set: approved when is_confirmed is true, denied otherwise.
type Request struct {
	Idx         int64      `db:"idx"`
	UserIdx     int64      `db:"user_idx"`
	Title       string     `db:"title"`
	IsConfirmed bool       `db:"is_confirmed"`
	CreatedAt   time.Time  `db:"created_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type History struct {
	Idx       int64     `db:"idx"`
	GameIdx   int64     `db:"game_idx"`
	UserIdx   int64     `db:"user_idx"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

type HistorySummary struct {
	Idx       int64  `db:"idx"`
	CreatedAt string `db:"created_at"`
	Nickname  string `db:"nickname"`
}

type HistoryDetail struct {
	Idx       int64     `db:"idx"`
	GameIdx   int64     `db:"game_idx"`
	UserIdx   int64     `db:"user_idx"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
	Nickname  string    `db:"nickname"`
}

type GameSearchResult struct {
	Idx     int64  `db:"idx"`
	Title   string `db:"title"`
	ImgPath string `db:"img_path"`
}

type PopularGame struct {
	Idx       int64  `db:"idx"`
	Title     string `db:"title"`
	PostCount int64  `db:"post_count"`
	ImgPath   string `db:"img_path"`
}

type GameImage struct {
	Idx        int64      `db:"idx"`
	HistoryIdx int64      `db:"history_idx"`
	ImgPath    string     `db:"img_path"`
	CreatedAt  time.Time  `db:"created_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}
