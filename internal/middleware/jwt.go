package middleware

import (
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// AdminClaims is the token payload for the single admin principal.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueAdminToken signs a short-lived admin token with HS256.
func IssueAdminToken(secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &AdminClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// JWTMiddleware returns the echo-jwt middleware protecting the v1 routes.
func JWTMiddleware(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(AdminClaims)
		},
	})
}
