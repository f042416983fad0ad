package dto

type Filter struct {
	Limit   int    `query:"limit"`
	Page    int    `query:"page"`
	Q       string `query:"q"`
	LastIdx int64  `query:"lastidx"`
}

type Pagination struct {
	Page    int   `json:"page"`
	MaxPage int   `json:"max_page"`
	Total   int64 `json:"total"`
}
