package router

import (
	"github.com/labstack/echo/v4"

	"targ/internal/adapter/api/handler"
	"targ/internal/adapter/api/middleware"
)

// SetupWebSocketRouter mounts /ws. Browsers pass the ID token as ?token=.
func SetupWebSocketRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	e.GET("/ws", handler.GetWebSocketHandler().HandleWebSocket, authMiddleware.Authenticate)
}
