package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"targ/internal/domain/repository"
	"targ/pkg/errors"
	"targ/pkg/response"
)

// TokenIssuer mints Firebase custom tokens.
type TokenIssuer interface {
	CustomToken(ctx context.Context, uid string) (string, error)
}

type DevTokenHandler struct {
	issuer   TokenIssuer
	userRepo repository.UserRepository
}

var devTokenHandler *DevTokenHandler

func NewDevTokenHandler(issuer TokenIssuer, userRepo repository.UserRepository) *DevTokenHandler {
	return &DevTokenHandler{
		issuer:   issuer,
		userRepo: userRepo,
	}
}

func SetupDevTokenHandler(issuer TokenIssuer, userRepo repository.UserRepository) {
	devTokenHandler = NewDevTokenHandler(issuer, userRepo)
}

func GetDevTokenHandler() *DevTokenHandler {
	return devTokenHandler
}

type devTokenRequest struct {
	UID string `json:"uid" validate:"required"`
}

// GenerateToken issues a custom token for an existing user. The client exchanges it for
// an ID token through Firebase's signInWithCustomToken.
func (h *DevTokenHandler) GenerateToken(c echo.Context) error {
	var req devTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userRepo.GetByID(c.Request().Context(), req.UID)
	if err != nil {
		return response.Error(c, err)
	}

	token, err := h.issuer.CustomToken(c.Request().Context(), user.ID)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to create custom token", err))
	}

	return response.Success(c, map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"id":           user.ID,
			"email":        user.Email,
			"display_name": user.DisplayName,
			"role":         user.Role,
		},
	})
}
