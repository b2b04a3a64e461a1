package router

import (
	"github.com/labstack/echo/v4"

	"targ/internal/adapter/api/handler"
	"targ/internal/adapter/api/middleware"
)

func SetupConversationRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	conversationHandler := handler.GetConversationHandler()

	conversations := e.Group("/v1/conversations")
	conversations.Use(authMiddleware.Authenticate)

	conversations.GET("", conversationHandler.ListConversations)
	conversations.POST("", conversationHandler.StartConversation)
	conversations.GET("/unread-count", conversationHandler.GetUnreadCount)
	conversations.GET("/:id", conversationHandler.GetConversation)
	conversations.GET("/:id/messages", conversationHandler.GetMessages)
	conversations.POST("/:id/messages", conversationHandler.SendMessage)
	conversations.POST("/:id/read", conversationHandler.MarkAsRead)
}
