package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strings"
	"time"

	"targ/internal/domain/entity"
	"targ/internal/domain/repository"
	"targ/internal/domain/service"
	"targ/pkg/errors"
)

type InvoiceConfig struct {
	VATRate float64
	DueDays int
}

type InvoiceUseCase struct {
	invoiceRepo   repository.InvoiceRepository
	mailer        service.Mailer
	notifications *NotificationUseCase
	publisher     service.EventPublisher
	recorder      Recorder
	config        InvoiceConfig
}

func NewInvoiceUseCase(
	invoiceRepo repository.InvoiceRepository,
	mailer service.Mailer,
	notifications *NotificationUseCase,
	publisher service.EventPublisher,
	recorder Recorder,
	config InvoiceConfig,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		invoiceRepo:   invoiceRepo,
		mailer:        mailer,
		notifications: notifications,
		publisher:     publisher,
		recorder:      recorderOrNop(recorder),
		config:        config,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// InvoiceID is derived from the purchase so that one promotion yields at most one invoice.
func InvoiceID(listingID string, promotionStart time.Time) string {
	return fmt.Sprintf("%s_%d", listingID, promotionStart.UTC().UnixMilli())
}

// InvoiceNumber renders TRG-YYYYMMDD-XXXXXX, the suffix taken from the invoice id.
func InvoiceNumber(id string, issuedAt time.Time) string {
	sum := sha256.Sum256([]byte(id))
	return fmt.Sprintf("TRG-%s-%s", issuedAt.UTC().Format("20060102"), strings.ToUpper(hex.EncodeToString(sum[:3])))
}

// GenerateForPromotion issues the invoice for a promotion that started at issuedAt.
func (uc *InvoiceUseCase) GenerateForPromotion(
	ctx context.Context,
	userID string,
	listing *entity.Listing,
	plan entity.PromotionPlan,
	billing *entity.BillingProfile,
	issuedAt time.Time,
) (*entity.Invoice, error) {
	if err := validateBilling(billing); err != nil {
		return nil, err
	}

	id := InvoiceID(listing.ID, issuedAt)
	subtotal := round2(plan.Price)
	vat := round2(subtotal * uc.config.VATRate)

	invoice := &entity.Invoice{
		ID:        id,
		Number:    InvoiceNumber(id, issuedAt),
		UserID:    userID,
		ListingID: listing.ID,
		Items:     []entity.InvoiceLineItem{{
			Description: fmt.Sprintf("Promovare %s %d zile: %s", plan.Name, plan.DurationDays, listing.Title),
			ListingID:   listing.ID,
			PlanID:      plan.ID,
			Quantity:    1,
			UnitPrice:   subtotal,
			Amount:      subtotal,
		}},
		Currency: plan.Currency,
		Subtotal: subtotal,
		VATRate:  uc.config.VATRate,
		VAT:      vat,
		Total:    round2(subtotal + vat),
		Status:   entity.InvoiceStatusPaid,
		Billing:  *billing,
		IssuedAt: issuedAt,
		DueAt:    issuedAt.AddDate(0, 0, uc.config.DueDays),
	}

	if err := uc.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	uc.recorder.InvoiceIssued()

	if uc.mailer != nil {
		bestEffort(uc.recorder, "invoice.mail", invoice.ID, uc.mailer.SendInvoice(ctx, invoice))
	}
	if uc.notifications != nil {
		err := uc.notifications.Notify(ctx, &entity.Notification{
			UserID:  userID,
			Type:    entity.NotificationInvoice,
			Title:   "Factura " + invoice.Number,
			Message: fmt.Sprintf("Factura pentru promovarea anuntului %q a fost emisa.", listing.Title),
			Link:    "/invoices/" + invoice.ID,
			Metadata: &entity.NotificationMetadata{
				ListingID: listing.ID,
				InvoiceID: invoice.ID,
			},
		})
		bestEffort(uc.recorder, "invoice.notify", invoice.ID, err)
	}
	if uc.publisher != nil {
		bestEffort(uc.recorder, "invoice.publish", invoice.ID, uc.publisher.Publish(ctx, service.EventInvoiceIssued, invoice))
	}

	return invoice, nil
}

func (uc *InvoiceUseCase) List(ctx context.Context, userID string) ([]*entity.Invoice, error) {
	return uc.invoiceRepo.ListByUser(ctx, userID)
}

func (uc *InvoiceUseCase) Get(ctx context.Context, userID, id string) (*entity.Invoice, error) {
	invoice, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.UserID != userID {
		return nil, errors.Forbidden("You can only view your own invoices", nil)
	}
	return invoice, nil
}

// UpdateStatus is the only mutation an issued invoice allows.
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, id string, status entity.InvoiceStatus) (*entity.Invoice, error) {
	if !status.Valid() {
		return nil, errors.BadRequest("Unknown invoice status", nil)
	}
	invoice, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status == status {
		return invoice, nil
	}
	if err := uc.invoiceRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	invoice.Status = status
	return invoice, nil
}
