package router

import (
	"github.com/labstack/echo/v4"

	"targ/internal/adapter/api/handler"
	"targ/internal/adapter/api/middleware"
)

func SetupFavoriteRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	favoriteHandler := handler.GetFavoriteHandler()

	favorites := e.Group("/v1/favorites")
	favorites.Use(authMiddleware.Authenticate)

	favorites.GET("", favoriteHandler.ListFavorites)
	favorites.GET("/count", favoriteHandler.GetFavoriteCount)
	favorites.POST("/:listingId", favoriteHandler.ToggleFavorite)
	favorites.GET("/:listingId/status", favoriteHandler.CheckFavoriteStatus)
}
