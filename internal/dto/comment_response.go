package dto

import "time"

type CommentResponse struct {
	Idx       int64     `json:"idx"`
	PostIdx   int64     `json:"post_idx"`
	UserIdx   int64     `json:"user_idx"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Nickname  string    `json:"nickname"`
}

type CommentsResponse struct {
	Data          []CommentResponse `json:"data"`
	LastIdx       int64             `json:"last_idx"`
	TotalComments int64             `json:"total_comments"`
}
