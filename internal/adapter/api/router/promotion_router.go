package router

import (
	"github.com/labstack/echo/v4"

	"targ/internal/adapter/api/handler"
	"targ/internal/adapter/api/middleware"
)

func SetupPromotionRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	promotionHandler := handler.GetPromotionHandler()

	e.GET("/v1/promotions/plans", promotionHandler.ListPlans)
	e.GET("/v1/listings/:id/promotion", promotionHandler.GetPromotionStatus)

	promotions := e.Group("/v1/promotions")
	promotions.Use(authMiddleware.Authenticate)
	promotions.POST("", promotionHandler.PurchasePromotion)
}
