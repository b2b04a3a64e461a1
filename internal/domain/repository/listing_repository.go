package repository

import (
	"context"
	"time"

	"targ/internal/domain/entity"
)

// ListingFilter carries the store-side filters of a listing fetch. SearchQuery is matched
// in memory after the equality filters run.
type ListingFilter struct {
	Category    string
	Subcategory string
	Location    string
	MinPrice    *float64
	MaxPrice    *float64
	Condition   string
	SellerID    string
	SearchQuery string
	ExcludeSold bool
	Status      entity.ListingStatus
}

type ListingQuery struct {
	Filters  ListingFilter
	PageSize int
	Cursor   string
}

type ListingPage struct {
	Listings   []*entity.Listing `json:"listings"`
	NextCursor string            `json:"next_cursor,omitempty"`
	HasMore    bool              `json:"has_more"`
}

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	List(ctx context.Context, query ListingQuery) (*ListingPage, error)
	// ListActive returns every approved, unsold listing, promoted ones first.
	ListActive(ctx context.Context) ([]*entity.Listing, error)
	ListBySeller(ctx context.Context, sellerID string, includeInactive bool) ([]*entity.Listing, error)
	ListPromoted(ctx context.Context) ([]*entity.Listing, error)
	// Update writes only the given fields, keyed by their stored names.
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	SoftDelete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	// ApplyPromotion sets the promotion window atomically and fails with a conflict when the
	// listing is already promoted at start.
	ApplyPromotion(ctx context.Context, id, planID string, start, end time.Time) (*entity.Listing, error)
	ClearPromotion(ctx context.Context, id string) error
}
