package entity

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type CardTheme string

const (
	CardThemeClassic CardTheme = "classic"
	CardThemeCompact CardTheme = "compact"
	CardThemeDark    CardTheme = "dark"
)

type Preferences struct {
	CardTheme CardTheme `json:"card_theme" firestore:"cardTheme"`
}

type User struct {
	ID          string `json:"id" firestore:"id"`
	Email       string `json:"email" firestore:"email"`
	DisplayName string `json:"display_name" firestore:"displayName"`
	PhotoURL    string `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`
	Phone       string `json:"phone,omitempty" firestore:"phone,omitempty"`
	Location    string `json:"location,omitempty" firestore:"location,omitempty"`
	Bio         string `json:"bio,omitempty" firestore:"bio,omitempty"`
	Role        string `json:"role" firestore:"role"`

	SellerRating      float64 `json:"seller_rating" firestore:"sellerRating"`
	SellerReviewCount int     `json:"seller_review_count" firestore:"sellerReviewCount"`
	BuyerRating       float64 `json:"buyer_rating" firestore:"buyerRating"`
	BuyerReviewCount  int     `json:"buyer_review_count" firestore:"buyerReviewCount"`

	Preferences    Preferences     `json:"preferences" firestore:"preferences"`
	BillingProfile *BillingProfile `json:"billing_profile,omitempty" firestore:"billingProfile,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PublicProfile is the subset of a user shown to other users.
type PublicProfile struct {
	ID                string    `json:"id"`
	DisplayName       string    `json:"display_name"`
	PhotoURL          string    `json:"photo_url,omitempty"`
	Location          string    `json:"location,omitempty"`
	SellerRating      float64   `json:"seller_rating"`
	SellerReviewCount int       `json:"seller_review_count"`
	MemberSince       time.Time `json:"member_since"`
}

func (u *User) Public() *PublicProfile {
	return &PublicProfile{
		ID:                u.ID,
		DisplayName:       u.DisplayName,
		PhotoURL:          u.PhotoURL,
		Location:          u.Location,
		SellerRating:      u.SellerRating,
		SellerReviewCount: u.SellerReviewCount,
		MemberSince:       u.CreatedAt,
	}
}
