package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusClient         = http.StatusBadRequest
	ErrStatusUnauthorized   = http.StatusUnauthorized
	ErrStatusNotFound       = http.StatusNotFound
	ErrStatusConflict       = http.StatusConflict
	ErrStatusNoContent      = http.StatusNoContent
	ErrBadGateway           = http.StatusBadGateway
)

var (
	ErrInternalServer = errors.New("Internal server error")
	ErrClient         = errors.New("Bad request")

	ErrNoToken       = errors.New("no token")
	ErrInvalidScheme = errors.New("invalid scheme")
	ErrInvalidToken  = errors.New("Invalid or expired token")
	ErrNoAdmin       = errors.New("no admin")

	ErrInvalidLogin    = errors.New("Invalid login")
	ErrInvalidPassword = errors.New("Invalid password")

	ErrConflict          = errors.New("Conflicting record found")
	ErrExistingID        = errors.New("Existing id")
	ErrExistingNickname  = errors.New("Existing nickname")
	ErrExistingEmail     = errors.New("Existing email")
	ErrExistingGameTitle = errors.New("Existing game title")
	ErrExistingKakaoUser = errors.New("Existing kakao user")

	ErrNoContent        = errors.New("No content")
	ErrNoImage          = errors.New("No image")
	ErrInvalidEmailCode = errors.New("Invalid verification code")

	ErrIdentityProvider = errors.New("Identity provider request failed")
)

var errorMap = map[error]int{
	ErrInternalServer:    ErrStatusInternalServer,
	ErrClient:            ErrStatusClient,
	ErrNoToken:           ErrStatusUnauthorized,
	ErrInvalidScheme:     ErrStatusUnauthorized,
	ErrInvalidToken:      ErrStatusUnauthorized,
	ErrNoAdmin:           ErrStatusUnauthorized,
	ErrInvalidLogin:      ErrStatusUnauthorized,
	ErrInvalidPassword:   ErrStatusUnauthorized,
	ErrConflict:          ErrStatusConflict,
	ErrExistingID:        ErrStatusConflict,
	ErrExistingNickname:  ErrStatusConflict,
	ErrExistingEmail:     ErrStatusConflict,
	ErrExistingGameTitle: ErrStatusConflict,
	ErrExistingKakaoUser: ErrStatusConflict,
	ErrNoContent:         ErrStatusNotFound,
	ErrNoImage:           ErrStatusClient,
	ErrInvalidEmailCode:  ErrStatusNoContent,
	ErrIdentityProvider:  ErrBadGateway,
}

func GetErrorStatusCode(err error) int {
	errStatusCode, ok := errorMap[err]
	if !ok {
		errStatusCode = errorMap[ErrInternalServer]
	}
	return errStatusCode
}
