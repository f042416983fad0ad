package utils

import (
	"time"

	"github.com/gamepedia/community-service/pkg/errs"
	"github.com/golang-jwt/jwt"
)

// TokenClaims is the verified identity attached to a request after the
// bearer token has been checked.
type TokenClaims struct {
	UserIdx int64
	IsAdmin bool
}

func CreateJWTToken(userIdx int64, isAdmin bool, jwtSecretKey string) (string, error) {
	claims := jwt.MapClaims{}
	claims["userIdx"] = userIdx
	claims["isAdmin"] = isAdmin
	claims["exp"] = time.Now().Add(time.Hour * 5).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(jwtSecretKey))
}

// ParseJWTToken verifies the signature and expiry and decodes the claims.
// A payload that does not carry a numeric userIdx and a boolean isAdmin is
// rejected as invalid rather than defaulted.
func ParseJWTToken(tokenString string, jwtSecretKey string) (TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.ErrInvalidToken
		}
		return []byte(jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return TokenClaims{}, errs.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, errs.ErrInvalidToken
	}

	userIdx, ok := claims["userIdx"].(float64)
	if !ok {
		return TokenClaims{}, errs.ErrInvalidToken
	}

	isAdmin, ok := claims["isAdmin"].(bool)
	if !ok {
		return TokenClaims{}, errs.ErrInvalidToken
	}

	return TokenClaims{UserIdx: int64(userIdx), IsAdmin: isAdmin}, nil
}
