package handler

import (
	"github.com/labstack/echo/v4"

	"targ/internal/domain/entity"
	"targ/internal/usecase"
	"targ/pkg/errors"
	"targ/pkg/response"
)

type PromotionHandler struct {
	promotionUseCase *usecase.PromotionUseCase
}

func NewPromotionHandler(promotionUseCase *usecase.PromotionUseCase) *PromotionHandler {
	return &PromotionHandler{
		promotionUseCase: promotionUseCase,
	}
}

type PurchasePromotionRequest struct {
	ListingID string                 `json:"listing_id" validate:"required"`
	PlanID    string                 `json:"plan_id" validate:"required"`
	Billing   *entity.BillingProfile `json:"billing,omitempty"`
}

func (h *PromotionHandler) ListPlans(c echo.Context) error {
	return response.Success(c, h.promotionUseCase.Plans())
}

// PurchasePromotion always answers with the purchase result; failures keep the envelope
// shape so clients can read the code next to the message.
func (h *PromotionHandler) PurchasePromotion(c echo.Context) error {
	userID := c.Get("uid").(string)

	var req PurchasePromotionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result := h.promotionUseCase.Purchase(c.Request().Context(), usecase.PurchaseInput{
		ListingID: req.ListingID,
		PlanID:    req.PlanID,
		UserID:    userID,
		Billing:   req.Billing,
	})
	if !result.Success {
		return response.Failure(c, errors.As(result.Err).Status, result.Code, result.Error, result)
	}

	return response.Created(c, result)
}

func (h *PromotionHandler) GetPromotionStatus(c echo.Context) error {
	status, err := h.promotionUseCase.Status(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, status)
}

func (h *PromotionHandler) ExpirePromotions(c echo.Context) error {
	count, err := h.promotionUseCase.ExpireAll(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"expired": count,
	})
}
