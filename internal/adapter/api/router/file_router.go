package router

import (
	"github.com/labstack/echo/v4"

	"targ/internal/adapter/api/handler"
	"targ/internal/adapter/api/middleware"
)

func SetupFileRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	fileHandler := handler.GetFileHandler()

	files := e.Group("/v1/my-listings/images")
	files.Use(authMiddleware.Authenticate)
	files.GET("", fileHandler.ListMyUploads)
	files.POST("", fileHandler.UploadListingImage)
}
