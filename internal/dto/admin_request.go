package dto

type ApproveGameRequest struct {
	RequestIdx int64  `json:"request_idx" form:"request_idx"`
	Title      string `json:"title" form:"title"`
	TitleKor   string `json:"title_kor" form:"title_kor"`
	TitleEng   string `json:"title_eng" form:"title_eng"`

	ThumbnailPath string `json:"-" form:"-"`
	BannerPath    string `json:"-" form:"-"`
}

// FileUpload carries one multipart file through the service layer.
type FileUpload struct {
	Filename    string
	ContentType string
	Body        []byte
}

type GameRequestResponse struct {
	Idx       int64  `json:"idx"`
	UserIdx   int64  `json:"user_idx"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}
