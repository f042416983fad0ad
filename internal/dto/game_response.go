package dto

import "time"

type GameResponse struct {
	Idx       int64     `json:"idx"`
	UserIdx   int64     `json:"user_idx"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type GamesResponse struct {
	MaxPage  int            `json:"max_page"`
	Page     int            `json:"page"`
	Skip     int            `json:"skip"`
	Count    int            `json:"count"`
	GameList []GameResponse `json:"game_list"`
}

type GameSearchResponse struct {
	Idx     int64  `json:"idx"`
	Title   string `json:"title"`
	ImgPath string `json:"img_path"`
}

type PopularGameResponse struct {
	Idx       int64  `json:"idx"`
	Title     string `json:"title"`
	PostCount int64  `json:"post_count"`
	ImgPath   string `json:"img_path"`
}

type PopularGamesResponse struct {
	MaxPage  int                   `json:"max_page"`
	Page     int                   `json:"page"`
	Skip     int                   `json:"skip"`
	Count    int                   `json:"count"`
	GameList []PopularGameResponse `json:"game_list"`
}

type BannerResponse struct {
	ImgPath string `json:"img_path"`
}

type HistorySummaryResponse struct {
	Idx       int64  `json:"idx"`
	CreatedAt string `json:"created_at"`
	Nickname  string `json:"nickname"`
}

type HistoryListResponse struct {
	Idx         int64                    `json:"idx"`
	Title       string                   `json:"title"`
	HistoryList []HistorySummaryResponse `json:"history_list"`
}

type HistoryDetailResponse struct {
	HistoryIdx int64     `json:"history_idx"`
	GameIdx    int64     `json:"game_idx"`
	UserIdx    int64     `json:"user_idx"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	Nickname   string    `json:"nickname"`
}

type WikiImageResponse struct {
	Location string `json:"location"`
}
