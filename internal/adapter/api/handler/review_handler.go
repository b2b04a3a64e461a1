package handler

import (
	"github.com/labstack/echo/v4"

	"targ/internal/usecase"
	"targ/pkg/errors"
	"targ/pkg/response"
	"targ/pkg/utils"
)

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
	}
}

func (h *ReviewHandler) ListUserReviews(c echo.Context) error {
	userID := c.Param("id")
	if userID == "" {
		return response.Error(c, errors.BadRequest("User ID is required", nil))
	}

	pagination := utils.GetPaginationParams(c)

	reviews, total, err := h.reviewUseCase.ListForUser(c.Request().Context(), userID, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, reviews, total, pagination.Page, pagination.PageSize)
}
