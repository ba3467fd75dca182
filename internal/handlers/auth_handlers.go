package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"

	"tienda/internal/common"
	"tienda/internal/config"
	"tienda/internal/middleware"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	security config.SecurityConfig
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(security config.SecurityConfig) *AuthHandlers {
	return &AuthHandlers{security: security}
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse represents the issued token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Login authenticates the admin user and issues a JWT
func (h *AuthHandlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}
	if req.Username == "" || req.Password == "" {
		return common.SendClientError(c, "username and password are required")
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.security.AdminUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.security.AdminPassword)) == 1
	if !userOK || !passOK {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	token, err := middleware.IssueAdminToken(h.security.JWTSecret, h.security.JWTExpiration)
	if err != nil {
		return common.SendServerError(c, "failed to issue token")
	}

	return c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.security.JWTExpiration.Seconds()),
	})
}
