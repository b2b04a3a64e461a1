package handler

import (
	"github.com/labstack/echo/v4"

	"targ/internal/domain/entity"
	"targ/internal/usecase"
	"targ/pkg/errors"
	"targ/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type updateProfileRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,min=2,max=60"`
	PhotoURL    *string `json:"photo_url" validate:"omitempty,url"`
	Phone       *string `json:"phone" validate:"omitempty,e164"`
	Location    *string `json:"location" validate:"omitempty,max=120"`
	Bio         *string `json:"bio" validate:"omitempty,max=500"`
}

type updatePreferencesRequest struct {
	CardTheme string `json:"card_theme" validate:"required,oneof=classic compact dark"`
}

// GetMe returns the caller's profile and creates it on first sign-in.
func (h *UserHandler) GetMe(c echo.Context) error {
	identity, ok := c.Get("identity").(usecase.Identity)
	if !ok {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	user, err := h.userUseCase.Me(c.Request().Context(), identity)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), uid, usecase.UpdateProfileInput{
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
		Phone:       req.Phone,
		Location:    req.Location,
		Bio:         req.Bio,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) UpdatePreferences(c echo.Context) error {
	var req updatePreferencesRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	prefs, err := h.userUseCase.UpdatePreferences(c.Request().Context(), uid, entity.Preferences{
		CardTheme: entity.CardTheme(req.CardTheme),
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, prefs)
}

func (h *UserHandler) SaveBillingProfile(c echo.Context) error {
	var billing entity.BillingProfile
	if err := c.Bind(&billing); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	saved, err := h.userUseCase.SaveBillingProfile(c.Request().Context(), uid, &billing)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, saved)
}

func (h *UserHandler) GetPublicProfile(c echo.Context) error {
	userID := c.Param("id")
	if userID == "" {
		return response.Error(c, errors.BadRequest("User ID is required", nil))
	}

	profile, err := h.userUseCase.GetPublicProfile(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}
