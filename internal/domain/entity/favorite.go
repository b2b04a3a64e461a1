package entity

import (
	"time"
)

// Favorite is the (user, listing) join record. Its document id is deterministic so that
// repeated toggles address the same document.
type Favorite struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"userId"`
	ListingID string    `json:"listing_id" firestore:"listingId"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

func FavoriteID(userID, listingID string) string {
	return userID + "_" + listingID
}

type FavoriteWithListing struct {
	Favorite
	Listing *Listing `json:"listing"`
}
