package entity

import (
	"time"
)

const (
	ReviewOfBuyer  = "buyer_review"
	ReviewOfSeller = "seller_review"
)

// Review is written by one side of a sale about the other.
type Review struct {
	ID         string    `json:"id" firestore:"id"`
	ListingID  string    `json:"listing_id" firestore:"listingId"`
	ReviewerID string    `json:"reviewer_id" firestore:"reviewerId"`
	TargetID   string    `json:"target_id" firestore:"targetId"`
	Type       string    `json:"type" firestore:"type"`
	Rating     int       `json:"rating" firestore:"rating"`
	Comment    string    `json:"comment,omitempty" firestore:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}
