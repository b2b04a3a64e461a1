package usecase

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"targ/internal/domain/entity"
	"targ/pkg/errors"
)

func TestInvoiceNumber(t *testing.T) {
	issued := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	id := InvoiceID("l1", issued)

	number := InvoiceNumber(id, issued)

	assert.Regexp(t, regexp.MustCompile(`^TRG-20260309-[0-9A-F]{6}$`), number)
	assert.Equal(t, number, InvoiceNumber(id, issued))
	assert.NotEqual(t, number, InvoiceNumber(InvoiceID("l2", issued), issued))
}

func TestInvoiceUseCase_GenerateForPromotion(t *testing.T) {
	ctx := context.Background()
	issued := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	plan, _ := entity.FindPromotionPlan("standard")
	listing := approvedListing("l1", "seller")

	repo := newMemInvoices()
	mailer := new(MockMailer)
	mailer.On("SendInvoice", mock.Anything, mock.AnythingOfType("*entity.Invoice")).Return(errors.Internal("smtp down", nil)).Once()
	recorder := newCountingRecorder()
	uc := NewInvoiceUseCase(repo, mailer, nil, nil, recorder, InvoiceConfig{VATRate: 0.19, DueDays: 14})

	invoice, err := uc.GenerateForPromotion(ctx, "seller", listing, plan, personalBilling(), issued)

	require.NoError(t, err)
	assert.Equal(t, 19.0, invoice.Subtotal)
	assert.Equal(t, 3.61, invoice.VAT)
	assert.Equal(t, 22.61, invoice.Total)
	assert.Equal(t, entity.InvoiceStatusPaid, invoice.Status)
	assert.Equal(t, time.Date(2026, 3, 23, 12, 0, 0, 0, time.UTC), invoice.DueAt)
	require.Len(t, invoice.Items, 1)
	assert.Equal(t, "standard", invoice.Items[0].PlanID)
	assert.Equal(t, 1, recorder.invoices)
	assert.Equal(t, 1, recorder.failures["invoice.mail"])
	mailer.AssertExpectations(t)

	_, err = uc.GenerateForPromotion(ctx, "seller", listing, plan, personalBilling(), issued)
	assert.True(t, errors.Is(err, errors.CodeConflict))
}

func TestInvoiceUseCase_BillingValidation(t *testing.T) {
	ctx := context.Background()
	plan, _ := entity.FindPromotionPlan("vip")
	repo := newMemInvoices()
	uc := NewInvoiceUseCase(repo, nil, nil, nil, nil, InvoiceConfig{VATRate: 0.19, DueDays: 14})

	business := &entity.BillingProfile{
		Type:    entity.BillingBusiness,
		Email:   "firma@example.com",
		Address: "Bd. Unirii 2",
		City:    "Bucuresti",
		TaxID:   "RO123",
	}
	_, err := uc.GenerateForPromotion(ctx, "seller", approvedListing("l1", "seller"), plan, business, time.Now())

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
	assert.Contains(t, err.Error(), "company_name")
	assert.Contains(t, err.Error(), "registration_number")
	assert.Empty(t, repo.items)
}

func TestInvoiceUseCase_GetAndUpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := newMemInvoices()
	require.NoError(t, repo.Create(ctx, &entity.Invoice{ID: "i1", UserID: "seller", Status: entity.InvoiceStatusPaid}))
	uc := NewInvoiceUseCase(repo, nil, nil, nil, nil, InvoiceConfig{})

	_, err := uc.Get(ctx, "buyer", "i1")
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	invoice, err := uc.Get(ctx, "seller", "i1")
	require.NoError(t, err)
	assert.Equal(t, "i1", invoice.ID)

	_, err = uc.UpdateStatus(ctx, "i1", "refunded")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	updated, err := uc.UpdateStatus(ctx, "i1", entity.InvoiceStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusCancelled, updated.Status)
	assert.Equal(t, entity.InvoiceStatusCancelled, repo.items["i1"].Status)
}
