package router

import (
	"github.com/labstack/echo/v4"

	"targ/internal/adapter/api/handler"
	"targ/internal/adapter/api/middleware"
)

func SetupListingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	listingHandler := handler.GetListingHandler()

	listings := e.Group("/v1/listings")
	listings.GET("", listingHandler.ListListings)
	listings.GET("/search", listingHandler.SearchListings)
	listings.GET("/:id", listingHandler.GetListing, authMiddleware.Optional)

	e.GET("/v1/users/:id/listings", listingHandler.ListSellerListings, authMiddleware.Optional)

	mine := e.Group("/v1/my-listings")
	mine.Use(authMiddleware.Authenticate)
	mine.GET("", listingHandler.ListMyListings)
	mine.POST("", listingHandler.CreateListing)
	mine.PATCH("/:id", listingHandler.UpdateListing)
	mine.DELETE("/:id", listingHandler.DeleteListing)
	mine.POST("/:id/sold", listingHandler.MarkSold)
}
