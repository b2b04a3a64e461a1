package handler

import (
	"github.com/labstack/echo/v4"

	"targ/internal/usecase"
)

var (
	listingHandler      *ListingHandler
	promotionHandler    *PromotionHandler
	favoriteHandler     *FavoriteHandler
	conversationHandler *ConversationHandler
	notificationHandler *NotificationHandler
	reportHandler       *ReportHandler
	invoiceHandler      *InvoiceHandler
	userHandler         *UserHandler
	reviewHandler       *ReviewHandler
)

func Setup(
	listingUseCase *usecase.ListingUseCase,
	promotionUseCase *usecase.PromotionUseCase,
	favoriteUseCase *usecase.FavoriteUseCase,
	conversationUseCase *usecase.ConversationUseCase,
	notificationUseCase *usecase.NotificationUseCase,
	reportUseCase *usecase.ReportUseCase,
	invoiceUseCase *usecase.InvoiceUseCase,
	userUseCase *usecase.UserUseCase,
	reviewUseCase *usecase.ReviewUseCase,
) {
	listingHandler = NewListingHandler(listingUseCase)
	promotionHandler = NewPromotionHandler(promotionUseCase)
	favoriteHandler = NewFavoriteHandler(favoriteUseCase)
	conversationHandler = NewConversationHandler(conversationUseCase)
	notificationHandler = NewNotificationHandler(notificationUseCase)
	reportHandler = NewReportHandler(reportUseCase)
	invoiceHandler = NewInvoiceHandler(invoiceUseCase)
	userHandler = NewUserHandler(userUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
}

func GetListingHandler() *ListingHandler {
	return listingHandler
}

func GetPromotionHandler() *PromotionHandler {
	return promotionHandler
}

func GetFavoriteHandler() *FavoriteHandler {
	return favoriteHandler
}

func GetConversationHandler() *ConversationHandler {
	return conversationHandler
}

func GetNotificationHandler() *NotificationHandler {
	return notificationHandler
}

func GetReportHandler() *ReportHandler {
	return reportHandler
}

func GetInvoiceHandler() *InvoiceHandler {
	return invoiceHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}

// viewerID is the caller on routes behind optional auth, empty for anonymous requests.
func viewerID(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}
