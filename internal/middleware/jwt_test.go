package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func protectedEcho(secret string) *echo.Echo {
	e := echo.New()
	g := e.Group("/v1", JWTMiddleware(secret))
	g.GET("/ping", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return e
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	const secret = "test-secret"
	token, err := IssueAdminToken(secret, time.Hour)
	assert.NoError(t, err)

	e := protectedEcho(secret)
	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTMiddleware_MissingToken(t *testing.T) {
	e := protectedEcho("test-secret")
	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJWTMiddleware_WrongSecret(t *testing.T) {
	token, err := IssueAdminToken("other-secret", time.Hour)
	assert.NoError(t, err)

	e := protectedEcho("test-secret")
	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	const secret = "test-secret"
	token, err := IssueAdminToken(secret, -time.Minute)
	assert.NoError(t, err)

	e := protectedEcho(secret)
	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
