package repository

import (
	"context"

	"targ/internal/domain/entity"
)

type UploadRepository interface {
	Create(ctx context.Context, upload *entity.Upload) error
	ListByUploader(ctx context.Context, userID string, limit, offset int) ([]*entity.Upload, int64, error)
	DeleteByURL(ctx context.Context, url string) error
}
