package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"targ/internal/adapter/api/middleware"
)

// Setup registers the domain routes. Handlers must be set up before it runs.
func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	SetupListingRouter(e, authMiddleware)
	SetupPromotionRouter(e, authMiddleware)
	SetupFavoriteRouter(e, authMiddleware)
	SetupConversationRouter(e, authMiddleware)
	SetupNotificationRouter(e, authMiddleware)
	SetupReportRouter(e, authMiddleware)
	SetupInvoiceRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware)
	SetupReviewRouter(e)
	SetupFileRouter(e, authMiddleware)
	SetupAdminRouter(e, authMiddleware, adminMiddleware)
	SetupWebSocketRouter(e, authMiddleware)
	SetupHealthRouter(e)
}

func SetupMetricsRouter(e *echo.Echo, metrics http.Handler) {
	e.GET("/metrics", echo.WrapHandler(metrics))
}
