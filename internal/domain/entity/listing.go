package entity

import (
	"time"
)

type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyRON Currency = "RON"
)

func (c Currency) Valid() bool {
	return c == CurrencyEUR || c == CurrencyRON
}

type ListingStatus string

const (
	ListingStatusPending  ListingStatus = "pending"
	ListingStatusApproved ListingStatus = "approved"
	ListingStatusRejected ListingStatus = "rejected"
)

type Listing struct {
	ID       string `json:"id" firestore:"id"`
	SellerID string `json:"seller_id" firestore:"sellerId"`

	Title       string            `json:"title" firestore:"title"`
	Description string            `json:"description" firestore:"description"`
	Category    string            `json:"category" firestore:"category"`
	Subcategory string            `json:"subcategory,omitempty" firestore:"subcategory,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty" firestore:"attributes,omitempty"`

	Price      float64  `json:"price" firestore:"price"`
	Currency   Currency `json:"currency" firestore:"currency"`
	Negotiable bool     `json:"negotiable" firestore:"negotiable"`
	Condition  string   `json:"condition,omitempty" firestore:"condition,omitempty"`

	// Images[0] is the cover.
	Images   []string `json:"images" firestore:"images"`
	Location string   `json:"location" firestore:"location"`

	Sold            bool          `json:"sold" firestore:"sold"`
	SoldAt          *time.Time    `json:"sold_at,omitempty" firestore:"soldAt,omitempty"`
	BuyerID         string        `json:"buyer_id,omitempty" firestore:"buyerId,omitempty"`
	Status          ListingStatus `json:"status,omitempty" firestore:"status,omitempty"`
	RejectionReason string        `json:"rejection_reason,omitempty" firestore:"rejectionReason,omitempty"`

	Promoted       bool       `json:"promoted" firestore:"promoted"`
	PromotionType  string     `json:"promotion_type,omitempty" firestore:"promotionType,omitempty"`
	PromotionStart *time.Time `json:"promotion_start,omitempty" firestore:"promotionStart,omitempty"`
	PromotionEnd   *time.Time `json:"promotion_end,omitempty" firestore:"promotionEnd,omitempty"`

	Views int `json:"views" firestore:"views"`

	PublishedAt time.Time  `json:"published_at" firestore:"publishedAt"`
	UpdatedAt   time.Time  `json:"updated_at" firestore:"updatedAt"`
	DeletedAt   *time.Time `json:"-" firestore:"deletedAt,omitempty"`
}

// IsActive reports whether the listing is visible to buyers. Listings created before
// moderation existed carry no status and count as approved.
func (l *Listing) IsActive() bool {
	if l.DeletedAt != nil || l.Sold {
		return false
	}
	return l.Status == ListingStatusApproved || l.Status == ""
}

// IsPromoted is true while the flag is set and the end is strictly in the future.
func (l *Listing) IsPromoted(now time.Time) bool {
	if !l.Promoted || l.PromotionEnd == nil {
		return false
	}
	return now.Before(*l.PromotionEnd)
}

// PromotionExpired reports a listing that still carries the flag after its end.
func (l *Listing) PromotionExpired(now time.Time) bool {
	return l.Promoted && !l.IsPromoted(now)
}

type Remaining struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// PromotionRemaining decomposes promotionEnd-now with floor division. Nil means expired.
func (l *Listing) PromotionRemaining(now time.Time) *Remaining {
	if !l.Promoted || l.PromotionEnd == nil {
		return nil
	}
	left := l.PromotionEnd.Sub(now)
	if left <= 0 {
		return nil
	}
	day := 24 * time.Hour
	return &Remaining{
		Days:    int(left / day),
		Hours:   int((left % day) / time.Hour),
		Minutes: int((left % time.Hour) / time.Minute),
	}
}

func (l *Listing) CoverImage() string {
	if len(l.Images) == 0 {
		return ""
	}
	return l.Images[0]
}

func (l *Listing) OwnedBy(userID string) bool {
	return userID != "" && l.SellerID == userID
}
