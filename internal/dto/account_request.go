package dto

type LoginRequest struct {
	ID string `json:"id"`
	Pw string `json:"pw"`
}

type RegisterRequest struct {
	ID       string `json:"id"`
	Pw       string `json:"pw"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

type CheckIDRequest struct {
	ID string `json:"id"`
}

type CheckNicknameRequest struct {
	Nickname string `json:"nickname"`
}

type CheckEmailRequest struct {
	Email string `json:"email"`
}

type EmailAuthRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type UpdatePasswordRequest struct {
	Pw string `json:"pw"`
}

type UpdateInfoRequest struct {
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}
