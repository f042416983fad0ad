package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gamepedia/community-service/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func performRequest(t *testing.T, authHeader string, mw ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, utils.TokenClaims) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seenClaims utils.TokenClaims
	handler := func(c echo.Context) error {
		claims, err := GetTokenClaims(c)
		if err != nil {
			return err
		}
		seenClaims = claims
		return c.NoContent(http.StatusOK)
	}

	h := handler
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}

	err := h(c)
	require.NoError(t, err)

	return rec, seenClaims
}

func TestCheckLoginMissingHeader(t *testing.T) {
	rec, _ := performRequest(t, "", CheckLogin(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckLoginInvalidScheme(t *testing.T) {
	token, err := utils.CreateJWTToken(7, false, testSecret)
	require.NoError(t, err)

	rec, _ := performRequest(t, "Basic "+token, CheckLogin(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckLoginEmptyToken(t *testing.T) {
	rec, _ := performRequest(t, "Bearer ", CheckLogin(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckLoginInvalidToken(t *testing.T) {
	rec, _ := performRequest(t, "Bearer garbage", CheckLogin(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckLoginAttachesClaims(t *testing.T) {
	token, err := utils.CreateJWTToken(7, true, testSecret)
	require.NoError(t, err)

	rec, claims := performRequest(t, "Bearer "+token, CheckLogin(testSecret))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), claims.UserIdx)
	assert.True(t, claims.IsAdmin)
}

func TestCheckAdminRejectsNonAdmin(t *testing.T) {
	token, err := utils.CreateJWTToken(7, false, testSecret)
	require.NoError(t, err)

	rec, _ := performRequest(t, "Bearer "+token, CheckLogin(testSecret), CheckAdmin())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckAdminAllowsAdmin(t *testing.T) {
	token, err := utils.CreateJWTToken(7, true, testSecret)
	require.NoError(t, err)

	rec, claims := performRequest(t, "Bearer "+token, CheckLogin(testSecret), CheckAdmin())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, claims.IsAdmin)
}

func TestCheckAdminWithoutLogin(t *testing.T) {
	rec, _ := performRequest(t, "", CheckAdmin())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
