package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"targ/internal/usecase"
	"targ/pkg/errors"
	"targ/pkg/logger"
	"targ/pkg/response"
	"targ/pkg/utils"
)

type FileHandler struct {
	listingUseCase *usecase.ListingUseCase
	maxFileSize    int64
}

func NewFileHandler(listingUseCase *usecase.ListingUseCase, maxFileSize int64) *FileHandler {
	if maxFileSize <= 0 {
		maxFileSize = 5 * 1024 * 1024
	}
	return &FileHandler{
		listingUseCase: listingUseCase,
		maxFileSize:    maxFileSize,
	}
}

func SetupFileHandler(listingUseCase *usecase.ListingUseCase, maxFileSize int64) {
	fileHandler = NewFileHandler(listingUseCase, maxFileSize)
}

var (
	fileHandler *FileHandler
)

func GetFileHandler() *FileHandler {
	return fileHandler
}

// UploadListingImage stores one listing photo and returns its public URL. The URL is
// attached to a listing through the images field of create or update.
func (h *FileHandler) UploadListingImage(c echo.Context) error {
	userID := c.Get("uid").(string)

	file, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}

	logger.Debug("Received image: %s, size: %d bytes, type: %s", file.Filename, file.Size, file.Header.Get("Content-Type"))

	if file.Size > h.maxFileSize {
		logger.Warn("Image too large: %d bytes (max: %d)", file.Size, h.maxFileSize)
		return response.Error(c, errors.BadRequest(fmt.Sprintf("File size exceeds maximum allowed (%dMB)", h.maxFileSize/(1024*1024)), nil))
	}

	fileType := file.Header.Get("Content-Type")
	if !isAllowedFileType(fileType) {
		return response.Error(c, errors.BadRequest("File type not supported", nil))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read uploaded file", err))
	}
	defer src.Close()

	url, err := h.listingUseCase.UploadImage(c.Request().Context(), userID, src, fileType, file.Size)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]string{
		"url": url,
	})
}

func (h *FileHandler) ListMyUploads(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	uploads, total, err := h.listingUseCase.ListUploads(c.Request().Context(), userID, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, uploads, total, pagination.Page, pagination.PageSize)
}

func isAllowedFileType(fileType string) bool {
	switch fileType {
	case "image/jpeg", "image/jpg", "image/png", "image/webp":
		return true
	}
	return false
}
