package repository

import (
	"context"

	"targ/internal/domain/entity"
)

type FavoriteRepository interface {
	Exists(ctx context.Context, userID, listingID string) (bool, error)
	Create(ctx context.Context, favorite *entity.Favorite) error
	Delete(ctx context.Context, userID, listingID string) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Favorite, int64, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}
