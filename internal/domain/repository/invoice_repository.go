package repository

import (
	"context"

	"targ/internal/domain/entity"
)

type InvoiceRepository interface {
	// Create fails with a conflict when an invoice with the same id exists.
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Invoice, error)
	ExistsForListing(ctx context.Context, listingID string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status entity.InvoiceStatus) error
}
