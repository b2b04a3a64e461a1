package router

import (
	"github.com/labstack/echo/v4"

	"targ/internal/adapter/api/handler"
	"targ/internal/adapter/api/middleware"
)

func SetupInvoiceRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	invoiceHandler := handler.GetInvoiceHandler()

	invoices := e.Group("/v1/invoices")
	invoices.Use(authMiddleware.Authenticate)
	invoices.GET("", invoiceHandler.ListInvoices)
	invoices.GET("/:id", invoiceHandler.GetInvoice)
}
