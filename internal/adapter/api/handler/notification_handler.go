package handler

import (
	"github.com/labstack/echo/v4"

	"targ/internal/usecase"
	"targ/pkg/response"
	"targ/pkg/utils"
)

type NotificationHandler struct {
	notificationUseCase *usecase.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
	}
}

func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)
	unreadOnly := c.QueryParam("unread") == "true"

	items, total, err := h.notificationUseCase.List(c.Request().Context(), userID, unreadOnly, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, items, total, pagination.Page, pagination.PageSize)
}

func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	userID := c.Get("uid").(string)

	count, err := h.notificationUseCase.UnreadCount(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"count": count,
	})
}

func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.notificationUseCase.MarkRead(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Notification marked as read",
	})
}

func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	userID := c.Get("uid").(string)

	updated, err := h.notificationUseCase.MarkAllRead(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"updated": updated,
	})
}

func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.notificationUseCase.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Notification deleted",
	})
}
