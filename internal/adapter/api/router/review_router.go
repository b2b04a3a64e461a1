package router

import (
	"github.com/labstack/echo/v4"

	"targ/internal/adapter/api/handler"
)

func SetupReviewRouter(e *echo.Echo) {
	reviewHandler := handler.GetReviewHandler()

	e.GET("/v1/users/:id/reviews", reviewHandler.ListUserReviews)
}
