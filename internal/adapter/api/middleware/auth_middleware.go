package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"targ/internal/infrastructure/firebase"
	"targ/internal/usecase"
	"targ/pkg/errors"
	"targ/pkg/response"
)

// TokenVerifier checks a Firebase ID token.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*firebase.TokenInfo, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

// bearerToken reads "Authorization: Bearer <token>". Browsers cannot set headers on a
// websocket handshake, so the token query parameter is accepted as well.
func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		token := c.QueryParam("token")
		return token, token != ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func (m *AuthMiddleware) identify(c echo.Context, token string) error {
	info, err := m.verifier.VerifyToken(c.Request().Context(), token)
	if err != nil {
		return err
	}
	c.Set("uid", info.UID)
	c.Set("identity", usecase.Identity{
		UID:         info.UID,
		Email:       info.Email,
		DisplayName: info.DisplayName,
		PhotoURL:    info.PhotoURL,
	})
	return nil
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			return response.Error(c, errors.Unauthorized("Authorization header is required", nil))
		}

		if err := m.identify(c, token); err != nil {
			return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
		}

		return next(c)
	}
}

// Optional identifies the caller when a valid token is present and lets anonymous
// requests through otherwise.
func (m *AuthMiddleware) Optional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if token, ok := bearerToken(c); ok {
			_ = m.identify(c, token)
		}
		return next(c)
	}
}
