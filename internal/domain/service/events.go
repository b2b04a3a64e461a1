package service

import "context"

// Subjects published on the event bus.
const (
	EventListingReported   = "listing.reported"
	EventListingSold       = "listing.sold"
	EventListingModerated  = "listing.moderated"
	EventPromotionPurchase = "promotion.purchased"
	EventInvoiceIssued     = "invoice.issued"
)

type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload interface{}) error
}

// Pusher delivers a realtime event to every open socket of a user. Delivery is
// best-effort; offline users simply miss it.
type Pusher interface {
	Push(userID, eventType string, data interface{})
}

// Realtime event types delivered through a Pusher.
const (
	PushMessageNew         = "message.new"
	PushConversationRead   = "conversation.read"
	PushNotificationNew    = "notification.new"
	PushPreferencesUpdated = "preferences.updated"
	PushPromotionActivated = "promotion.activated"
)
