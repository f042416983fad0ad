package middleware

import (
	"strings"

	"github.com/gamepedia/community-service/pkg/errs"
	"github.com/gamepedia/community-service/pkg/response"
	"github.com/gamepedia/community-service/pkg/utils"
	"github.com/labstack/echo/v4"
)

const claimsContextKey = "claims"

// CheckLogin extracts the bearer token, verifies it and attaches the decoded
// claims to the request context. Every failure short-circuits with 401.
func CheckLogin(jwtSecretKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return response.WriteErrorResponse(c, errs.ErrNoToken, nil)
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || scheme != "Bearer" {
				return response.WriteErrorResponse(c, errs.ErrInvalidScheme, nil)
			}
			if token == "" {
				return response.WriteErrorResponse(c, errs.ErrNoToken, nil)
			}

			claims, err := utils.ParseJWTToken(token, jwtSecretKey)
			if err != nil {
				return response.WriteErrorResponse(c, err, nil)
			}

			c.Set(claimsContextKey, claims)

			return next(c)
		}
	}
}

// CheckAdmin must run after CheckLogin. The admin flag has to be exactly
// true; anything else is rejected.
func CheckAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := GetTokenClaims(c)
			if err != nil {
				return response.WriteErrorResponse(c, err, nil)
			}

			if !claims.IsAdmin {
				return response.WriteErrorResponse(c, errs.ErrNoAdmin, nil)
			}

			return next(c)
		}
	}
}

func GetTokenClaims(c echo.Context) (utils.TokenClaims, error) {
	claims, ok := c.Get(claimsContextKey).(utils.TokenClaims)
	if !ok {
		return utils.TokenClaims{}, errs.ErrNoToken
	}

	return claims, nil
}
