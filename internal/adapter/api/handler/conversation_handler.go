package handler

import (
	"github.com/labstack/echo/v4"

	"targ/internal/usecase"
	"targ/pkg/errors"
	"targ/pkg/response"
	"targ/pkg/utils"
)

type ConversationHandler struct {
	conversationUseCase *usecase.ConversationUseCase
}

func NewConversationHandler(conversationUseCase *usecase.ConversationUseCase) *ConversationHandler {
	return &ConversationHandler{
		conversationUseCase: conversationUseCase,
	}
}

type startConversationRequest struct {
	ListingID string `json:"listing_id" validate:"required"`
	Message   string `json:"message" validate:"required,max=2000"`
}

type sendMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// StartConversation opens the buyer's conversation about a listing, reusing an existing
// one, and posts the first message.
func (h *ConversationHandler) StartConversation(c echo.Context) error {
	var req startConversationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	conversation, message, err := h.conversationUseCase.Start(c.Request().Context(), userID, req.ListingID, req.Message)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]interface{}{
		"conversation": conversation,
		"message":      message,
	})
}

func (h *ConversationHandler) ListConversations(c echo.Context) error {
	userID := c.Get("uid").(string)

	conversations, err := h.conversationUseCase.List(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversations)
}

func (h *ConversationHandler) GetConversation(c echo.Context) error {
	userID := c.Get("uid").(string)

	conversation, err := h.conversationUseCase.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversation)
}

func (h *ConversationHandler) GetMessages(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	messages, total, err := h.conversationUseCase.Messages(
		c.Request().Context(),
		userID,
		c.Param("id"),
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, total, pagination.Page, pagination.PageSize)
}

func (h *ConversationHandler) SendMessage(c echo.Context) error {
	conversationID := c.Param("id")
	if conversationID == "" {
		return response.Error(c, errors.BadRequest("Conversation ID is required", nil))
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	message, err := h.conversationUseCase.Send(c.Request().Context(), userID, conversationID, req.Content)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ConversationHandler) MarkAsRead(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.conversationUseCase.MarkRead(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Conversation marked as read",
	})
}

func (h *ConversationHandler) GetUnreadCount(c echo.Context) error {
	userID := c.Get("uid").(string)

	count, err := h.conversationUseCase.UnreadTotal(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"count": count,
	})
}
