package service

import (
	"context"

	"targ/internal/domain/entity"
)

// ListingCache is a read-through cache in front of the listing store.
type ListingCache interface {
	// Get returns a confirmed entry. Pending entries count as a miss.
	Get(ctx context.Context, id string) (*entity.Listing, bool)
	Set(ctx context.Context, listing *entity.Listing)
	// Optimistic publishes next as pending, runs write, then confirms next on success or
	// restores the previous entry on failure. write's error is returned unchanged.
	Optimistic(ctx context.Context, next *entity.Listing, write func(ctx context.Context) error) error
	Invalidate(ctx context.Context, id string)
}
