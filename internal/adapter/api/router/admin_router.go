package router

import (
	"github.com/labstack/echo/v4"

	"targ/internal/adapter/api/handler"
	"targ/internal/adapter/api/middleware"
)

func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	adminHandler := handler.GetAdminHandler()
	reportHandler := handler.GetReportHandler()
	invoiceHandler := handler.GetInvoiceHandler()
	promotionHandler := handler.GetPromotionHandler()

	admin := e.Group("/v1/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	// Moderation
	admin.GET("/listings/pending", adminHandler.ListPendingListings)
	admin.POST("/listings/:id/moderate", adminHandler.ModerateListing)

	admin.GET("/reports", reportHandler.ListReports)
	admin.PATCH("/reports/:id", reportHandler.ResolveReport)

	admin.PATCH("/invoices/:id/status", invoiceHandler.UpdateInvoiceStatus)

	admin.POST("/promotions/expire", promotionHandler.ExpirePromotions)
}
