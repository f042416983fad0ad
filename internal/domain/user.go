package domain

import "time"

type User struct {
	Idx       int64      `db:"idx"`
	Nickname  string     `db:"nickname"`
	Email     string     `db:"email"`
	IsAdmin   bool       `db:"is_admin"`
	CreatedAt time.Time  `db:"created_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

// LocalAccount is the credential row of an account created through local
// signup, 1:1 with a User. Tombstoned together with the user so its login id
// can be claimed again.
type LocalAccount struct {
	UserIdx   int64      `db:"user_idx"`
	LoginID   string     `db:"id"`
	Password  string     `db:"pw"`
	DeletedAt *time.Time `db:"deleted_at"`
}

// LocalCredential joins a local account with its user row for login.
type LocalCredential struct {
	UserIdx  int64  `db:"user_idx"`
	LoginID  string `db:"id"`
	Password string `db:"pw"`
	IsAdmin  bool   `db:"is_admin"`
}

type KakaoAccount struct {
	UserIdx  int64  `db:"user_idx"`
	KakaoKey string `db:"kakao_key"`
	IsAdmin  bool   `db:"is_admin"`
}

type EmailVerification struct {
	Idx       int64     `db:"idx"`
	Email     string    `db:"email"`
	Code      string    `db:"code"`
	CreatedAt time.Time `db:"created_at"`
}

type ProfileImage struct {
	Idx       int64      `db:"idx"`
	UserIdx   int64      `db:"user_idx"`
	ImgPath   string     `db:"img_path"`
	CreatedAt time.Time  `db:"created_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}
