package entity

import "time"

type NotificationType string

const (
	NotificationReport          NotificationType = "report"
	NotificationMessage         NotificationType = "message"
	NotificationListingApproved NotificationType = "listing_approved"
	NotificationListingRejected NotificationType = "listing_rejected"
	NotificationPromotion       NotificationType = "promotion"
	NotificationInvoice         NotificationType = "invoice"
	NotificationSystem          NotificationType = "system"
)

type NotificationMetadata struct {
	ListingID    string `json:"listing_id,omitempty" firestore:"listingId,omitempty"`
	ListingTitle string `json:"listing_title,omitempty" firestore:"listingTitle,omitempty"`
	ListingImage string `json:"listing_image,omitempty" firestore:"listingImage,omitempty"`
	ReportID     string `json:"report_id,omitempty" firestore:"reportId,omitempty"`
	InvoiceID    string `json:"invoice_id,omitempty" firestore:"invoiceId,omitempty"`
}

type Notification struct {
	ID        string                `json:"id" firestore:"id"`
	UserID    string                `json:"user_id" firestore:"userId"`
	Type      NotificationType      `json:"type" firestore:"type"`
	Title     string                `json:"title" firestore:"title"`
	Message   string                `json:"message" firestore:"message"`
	Link      string                `json:"link,omitempty" firestore:"link,omitempty"`
	Read      bool                  `json:"read" firestore:"read"`
	Metadata  *NotificationMetadata `json:"metadata,omitempty" firestore:"metadata,omitempty"`
	CreatedAt time.Time             `json:"created_at" firestore:"createdAt"`
}
