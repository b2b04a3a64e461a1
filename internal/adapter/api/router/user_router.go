package router

import (
	"github.com/labstack/echo/v4"

	"targ/internal/adapter/api/handler"
	"targ/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()

	e.GET("/v1/users/:id", userHandler.GetPublicProfile)

	me := e.Group("/v1/me")
	me.Use(authMiddleware.Authenticate)
	me.GET("", userHandler.GetMe)
	me.PATCH("", userHandler.UpdateProfile)
	me.PUT("/preferences", userHandler.UpdatePreferences)
	me.PUT("/billing", userHandler.SaveBillingProfile)
}
