package repository

import (
	"context"

	"targ/internal/domain/entity"
)

type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	GetByID(ctx context.Context, id string) (*entity.Report, error)
	// List returns reports newest first; an empty status lists all of them.
	List(ctx context.Context, status entity.ReportStatus) ([]*entity.Report, error)
	Update(ctx context.Context, report *entity.Report) error
}
