package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"targ/internal/domain/entity"
	"targ/internal/domain/repository"
	"targ/pkg/errors"
)

type firestoreInvoiceRepository struct {
	client *firestore.Client
}

func NewFirestoreInvoiceRepository(client *firestore.Client) repository.InvoiceRepository {
	return &firestoreInvoiceRepository{client: client}
}

func (r *firestoreInvoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	_, err := r.client.Collection(invoicesCollection).Doc(invoice.ID).Create(ctx, invoice)
	if err != nil {
		if isAlreadyExists(err) {
			return errors.Conflict("Invoice already issued", err)
		}
		return errors.Internal("Failed to create invoice", err)
	}
	return nil
}

func (r *firestoreInvoiceRepository) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	doc, err := r.client.Collection(invoicesCollection).Doc(id).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("Invoice", err)
		}
		return nil, errors.Internal("Failed to get invoice", err)
	}

	var invoice entity.Invoice
	if err := doc.DataTo(&invoice); err != nil {
		return nil, errors.Internal("Failed to parse invoice data", err)
	}
	return &invoice, nil
}

func (r *firestoreInvoiceRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Invoice, error) {
	docs, err := r.client.Collection(invoicesCollection).
		Where("userId", "==", userID).
		OrderBy("issuedAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list invoices", err)
	}

	invoices := make([]*entity.Invoice, 0, len(docs))
	for _, doc := range docs {
		var invoice entity.Invoice
		if err := doc.DataTo(&invoice); err != nil {
			return nil, errors.Internal("Failed to parse invoice data", err)
		}
		invoices = append(invoices, &invoice)
	}
	return invoices, nil
}

func (r *firestoreInvoiceRepository) ExistsForListing(ctx context.Context, listingID string) (bool, error) {
	docs, err := r.client.Collection(invoicesCollection).Where("listingId", "==", listingID).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return false, errors.Internal("Failed to check invoices for listing", err)
	}
	return len(docs) > 0, nil
}

func (r *firestoreInvoiceRepository) UpdateStatus(ctx context.Context, id string, status entity.InvoiceStatus) error {
	_, err := r.client.Collection(invoicesCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: status},
	})
	if err != nil {
		if IsNotFound(err) {
			return errors.NotFound("Invoice", err)
		}
		return errors.Internal("Failed to update invoice status", err)
	}
	return nil
}
