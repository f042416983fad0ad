package dto

type CommentRequest struct {
	Content string `json:"content"`
}
