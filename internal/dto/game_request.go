package dto

type GameRequestRequest struct {
	Title string `json:"title"`
}

type WikiRequest struct {
	Content string `json:"content"`
}
