package dto

import "time"

type LoginResponse struct {
	Token   string `json:"token"`
	UserIdx int64  `json:"user_idx"`
	IsAdmin bool   `json:"is_admin"`
}

type KakaoLoginResponse struct {
	Token   string `json:"token"`
	UserIdx int64  `json:"user_idx"`
	Email   string `json:"email"`
}

type UserInfoResponse struct {
	Idx       int64     `json:"idx"`
	Nickname  string    `json:"nickname"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type FindIDResponse struct {
	ID string `json:"id"`
}

type NotificationResponse struct {
	Idx       int64     `json:"idx"`
	Type      *int16    `json:"type"`
	GameIdx   *int64    `json:"game_idx,omitempty"`
	PostIdx   *int64    `json:"post_idx,omitempty"`
	PostTitle *string   `json:"post_title,omitempty"`
	GameTitle *string   `json:"game_title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	LastIdx       int64                  `json:"last_idx"`
}

type ProfileImageResponse struct {
	ImgPath string `json:"img_path"`
}
