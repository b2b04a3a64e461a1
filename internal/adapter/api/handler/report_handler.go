package handler

import (
	"github.com/labstack/echo/v4"

	"targ/internal/domain/entity"
	"targ/internal/usecase"
	"targ/pkg/response"
)

type ReportHandler struct {
	reportUseCase *usecase.ReportUseCase
}

func NewReportHandler(reportUseCase *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{
		reportUseCase: reportUseCase,
	}
}

type fileReportRequest struct {
	ListingID string `json:"listing_id" validate:"required"`
	Reason    string `json:"reason" validate:"required"`
	Details   string `json:"details" validate:"max=1000"`
}

type resolveReportRequest struct {
	Status string `json:"status" validate:"required,oneof=resolved dismissed"`
}

func (h *ReportHandler) FileReport(c echo.Context) error {
	var req fileReportRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	report, err := h.reportUseCase.File(c.Request().Context(), usecase.FileReportInput{
		ReporterID: c.Get("uid").(string),
		ListingID:  req.ListingID,
		Reason:     entity.ReportReason(req.Reason),
		Details:    req.Details,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, report)
}

func (h *ReportHandler) ListReports(c echo.Context) error {
	reports, err := h.reportUseCase.List(c.Request().Context(), entity.ReportStatus(c.QueryParam("status")))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, reports)
}

func (h *ReportHandler) ResolveReport(c echo.Context) error {
	var req resolveReportRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	adminID := c.Get("uid").(string)

	report, err := h.reportUseCase.Resolve(c.Request().Context(), adminID, c.Param("id"), entity.ReportStatus(req.Status))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, report)
}
