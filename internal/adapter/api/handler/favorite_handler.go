package handler

import (
	"github.com/labstack/echo/v4"

	"targ/internal/usecase"
	"targ/pkg/errors"
	"targ/pkg/response"
	"targ/pkg/utils"
)

type FavoriteHandler struct {
	favoriteUseCase *usecase.FavoriteUseCase
}

func NewFavoriteHandler(favoriteUseCase *usecase.FavoriteUseCase) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteUseCase: favoriteUseCase,
	}
}

func (h *FavoriteHandler) ToggleFavorite(c echo.Context) error {
	userID := c.Get("uid").(string)
	listingID := c.Param("listingId")

	if listingID == "" {
		return response.Error(c, errors.BadRequest("Listing ID is required", nil))
	}

	favorited, err := h.favoriteUseCase.Toggle(c.Request().Context(), userID, listingID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"listing_id":  listingID,
		"is_favorite": favorited,
	})
}

func (h *FavoriteHandler) ListFavorites(c echo.Context) error {
	userID := c.Get("uid").(string)

	pagination := utils.GetPaginationParams(c)

	items, total, err := h.favoriteUseCase.ListForUser(
		c.Request().Context(),
		userID,
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, items, total, pagination.Page, pagination.PageSize)
}

func (h *FavoriteHandler) CheckFavoriteStatus(c echo.Context) error {
	userID := c.Get("uid").(string)
	listingID := c.Param("listingId")

	if listingID == "" {
		return response.Error(c, errors.BadRequest("Listing ID is required", nil))
	}

	favorited, err := h.favoriteUseCase.IsFavorite(c.Request().Context(), userID, listingID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"listing_id":  listingID,
		"is_favorite": favorited,
	})
}

func (h *FavoriteHandler) GetFavoriteCount(c echo.Context) error {
	userID := c.Get("uid").(string)

	count, err := h.favoriteUseCase.Count(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"count": count,
	})
}
