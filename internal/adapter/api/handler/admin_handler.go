package handler

import (
	"github.com/labstack/echo/v4"

	"targ/internal/usecase"
	"targ/pkg/response"
	"targ/pkg/utils"
)

type AdminHandler struct {
	listingUseCase *usecase.ListingUseCase
}

var adminHandler *AdminHandler

func NewAdminHandler(listingUseCase *usecase.ListingUseCase) *AdminHandler {
	return &AdminHandler{
		listingUseCase: listingUseCase,
	}
}

func SetupAdminHandler(listingUseCase *usecase.ListingUseCase) {
	adminHandler = NewAdminHandler(listingUseCase)
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}

type moderateListingRequest struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
	Reason string `json:"reason" validate:"max=500"`
}

func (h *AdminHandler) ListPendingListings(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	page, err := h.listingUseCase.ListPending(c.Request().Context(), pagination.PageSize, c.QueryParam("cursor"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Cursor(c, page.Listings, page.NextCursor, page.HasMore)
}

func (h *AdminHandler) ModerateListing(c echo.Context) error {
	var req moderateListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	adminID := c.Get("uid").(string)

	listing, err := h.listingUseCase.Moderate(c.Request().Context(), adminID, c.Param("id"), req.Action == "approve", req.Reason)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}
