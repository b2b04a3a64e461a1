package repository

import (
	"context"

	"targ/internal/domain/entity"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	ListByTarget(ctx context.Context, targetID string, limit, offset int) ([]*entity.Review, int64, error)
}
