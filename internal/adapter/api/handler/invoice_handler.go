package handler

import (
	"github.com/labstack/echo/v4"

	"targ/internal/domain/entity"
	"targ/internal/usecase"
	"targ/pkg/response"
)

type InvoiceHandler struct {
	invoiceUseCase *usecase.InvoiceUseCase
}

func NewInvoiceHandler(invoiceUseCase *usecase.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceUseCase: invoiceUseCase,
	}
}

type updateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=paid pending cancelled"`
}

func (h *InvoiceHandler) ListInvoices(c echo.Context) error {
	userID := c.Get("uid").(string)

	invoices, err := h.invoiceUseCase.List(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, invoices)
}

func (h *InvoiceHandler) GetInvoice(c echo.Context) error {
	userID := c.Get("uid").(string)

	invoice, err := h.invoiceUseCase.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, invoice)
}

func (h *InvoiceHandler) UpdateInvoiceStatus(c echo.Context) error {
	var req updateInvoiceStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	invoice, err := h.invoiceUseCase.UpdateStatus(c.Request().Context(), c.Param("id"), entity.InvoiceStatus(req.Status))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, invoice)
}
