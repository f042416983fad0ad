package dto

import "time"

type PostSummaryResponse struct {
	PostIdx   int64     `json:"post_idx"`
	GameIdx   int64     `json:"game_idx,omitempty"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UserIdx   int64     `json:"user_idx"`
	Nickname  string    `json:"nickname"`
	View      int64     `json:"view"`
}

type PostsResponse struct {
	Data       []PostSummaryResponse `json:"data"`
	Page       int                   `json:"page"`
	MaxPage    int                   `json:"max_page"`
	TotalPosts int64                 `json:"total_posts"`
}

type PostDetailResponse struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	GameIdx   int64     `json:"game_idx"`
	UserIdx   int64     `json:"user_idx"`
	Nickname  string    `json:"nickname"`
	View      int64     `json:"view"`
	IsAuthor  bool      `json:"is_author"`
}

type PostImageResponse struct {
	Location string `json:"location"`
}
