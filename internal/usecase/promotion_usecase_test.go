package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"targ/internal/domain/entity"
	"targ/internal/domain/service"
	"targ/pkg/errors"
)

type promotionFixture struct {
	uc        *PromotionUseCase
	listings  *memListings
	invoices  *memInvoices
	notes     *memNotifications
	publisher *MockPublisher
	mailer    *MockMailer
	pusher    *recordingPusher
	recorder  *countingRecorder
	now       time.Time
}

func newPromotionFixture(listings ...*entity.Listing) *promotionFixture {
	f := &promotionFixture{
		listings:  newMemListings(listings...),
		invoices:  newMemInvoices(),
		notes:     &memNotifications{},
		publisher: new(MockPublisher),
		mailer:    new(MockMailer),
		pusher:    &recordingPusher{},
		recorder:  newCountingRecorder(),
		now:       time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC),
	}
	users := newMemUsers(
		&entity.User{ID: "seller", DisplayName: "Ana", BillingProfile: personalBilling()},
		&entity.User{ID: "other", DisplayName: "Dan"},
	)
	notifications := NewNotificationUseCase(f.notes, f.pusher)
	invoices := NewInvoiceUseCase(f.invoices, f.mailer, notifications, f.publisher, f.recorder, InvoiceConfig{VATRate: 0.19, DueDays: 14})
	f.uc = NewPromotionUseCase(f.listings, users, invoices, nopCache{}, f.publisher, f.pusher, f.recorder)
	f.uc.now = fixedClock(f.now)
	return f
}

func TestPromotionUseCase_Purchase(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newPromotionFixture(approvedListing("l1", "seller"))
		f.publisher.On("Publish", mock.Anything, service.EventInvoiceIssued, mock.Anything).Return(nil).Once()
		f.publisher.On("Publish", mock.Anything, service.EventPromotionPurchase, mock.Anything).Return(nil).Once()
		f.mailer.On("SendInvoice", mock.Anything, mock.AnythingOfType("*entity.Invoice")).Return(nil).Once()

		result := f.uc.Purchase(ctx, PurchaseInput{ListingID: "l1", PlanID: "premium", UserID: "seller"})

		require.True(t, result.Success, result.Error)
		require.NotNil(t, result.Listing)
		assert.True(t, result.Listing.Promoted)
		assert.Equal(t, "premium", result.Listing.PromotionType)
		assert.Equal(t, f.now.Add(14*24*time.Hour), *result.Listing.PromotionEnd)

		require.NotNil(t, result.Invoice)
		assert.Equal(t, InvoiceID("l1", f.now), result.Invoice.ID)
		assert.True(t, strings.HasPrefix(result.Invoice.Number, "TRG-20260309-"))
		assert.Equal(t, 35.0, result.Invoice.Subtotal)
		assert.Equal(t, 6.65, result.Invoice.VAT)
		assert.Equal(t, 41.65, result.Invoice.Total)

		assert.True(t, f.listings.get("l1").IsPromoted(f.now))
		assert.Equal(t, 1, f.recorder.promotions["premium"])
		assert.Len(t, f.pusher.ofType(service.PushPromotionActivated), 1)
		assert.Len(t, f.notes.forUser("seller"), 1)

		f.publisher.AssertExpectations(t)
		f.mailer.AssertExpectations(t)
	})

	t.Run("UnknownPlan", func(t *testing.T) {
		f := newPromotionFixture(approvedListing("l1", "seller"))

		result := f.uc.Purchase(ctx, PurchaseInput{ListingID: "l1", PlanID: "gold", UserID: "seller"})

		assert.False(t, result.Success)
		assert.Equal(t, errors.CodeBadRequest, result.Code)
	})

	t.Run("ListingNotFound", func(t *testing.T) {
		f := newPromotionFixture()

		result := f.uc.Purchase(ctx, PurchaseInput{ListingID: "missing", PlanID: "standard", UserID: "seller"})

		assert.False(t, result.Success)
		assert.Equal(t, errors.CodeNotFound, result.Code)
	})

	t.Run("NotOwner", func(t *testing.T) {
		f := newPromotionFixture(approvedListing("l1", "seller"))

		result := f.uc.Purchase(ctx, PurchaseInput{ListingID: "l1", PlanID: "standard", UserID: "other", Billing: personalBilling()})

		assert.False(t, result.Success)
		assert.Equal(t, errors.CodeForbidden, result.Code)
		assert.True(t, errors.Is(result.Err, errors.CodeForbidden))
		assert.False(t, f.listings.get("l1").Promoted)
	})

	t.Run("AlreadyPromoted", func(t *testing.T) {
		l := approvedListing("l1", "seller")
		end := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		l.Promoted, l.PromotionType, l.PromotionEnd = true, "standard", &end
		f := newPromotionFixture(l)

		result := f.uc.Purchase(ctx, PurchaseInput{ListingID: "l1", PlanID: "vip", UserID: "seller"})

		assert.False(t, result.Success)
		assert.Equal(t, errors.CodeConflict, result.Code)
		assert.Equal(t, "standard", f.listings.get("l1").PromotionType)
	})

	t.Run("ExpiredPromotionCanBeRenewed", func(t *testing.T) {
		l := approvedListing("l1", "seller")
		end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		l.Promoted, l.PromotionType, l.PromotionEnd = true, "standard", &end
		f := newPromotionFixture(l)
		f.publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.mailer.On("SendInvoice", mock.Anything, mock.Anything).Return(nil)

		result := f.uc.Purchase(ctx, PurchaseInput{ListingID: "l1", PlanID: "vip", UserID: "seller"})

		require.True(t, result.Success, result.Error)
		assert.Equal(t, "vip", f.listings.get("l1").PromotionType)
	})

	t.Run("MissingBillingProfile", func(t *testing.T) {
		l := approvedListing("l1", "other")
		f := newPromotionFixture(l)

		result := f.uc.Purchase(ctx, PurchaseInput{ListingID: "l1", PlanID: "standard", UserID: "other"})

		assert.False(t, result.Success)
		assert.Equal(t, errors.CodeBadRequest, result.Code)
		assert.False(t, f.listings.get("l1").Promoted)
	})

	t.Run("InvoiceFailureKeepsPromotion", func(t *testing.T) {
		f := newPromotionFixture(approvedListing("l1", "seller"))
		f.invoices.createErr = errors.Internal("Failed to create invoice", nil)
		f.publisher.On("Publish", mock.Anything, service.EventPromotionPurchase, mock.Anything).Return(nil).Once()

		result := f.uc.Purchase(ctx, PurchaseInput{ListingID: "l1", PlanID: "standard", UserID: "seller"})

		assert.True(t, result.Success)
		assert.Nil(t, result.Invoice)
		assert.True(t, f.listings.get("l1").IsPromoted(f.now))
		assert.Equal(t, 1, f.recorder.failures["promotion.invoice"])
		f.mailer.AssertNotCalled(t, "SendInvoice", mock.Anything, mock.Anything)
		f.publisher.AssertExpectations(t)
	})

	t.Run("SoldListingCannotBePromoted", func(t *testing.T) {
		l := approvedListing("l1", "seller")
		l.Sold = true
		f := newPromotionFixture(l)

		result := f.uc.Purchase(ctx, PurchaseInput{ListingID: "l1", PlanID: "standard", UserID: "seller"})

		assert.False(t, result.Success)
		assert.Equal(t, errors.CodeConflict, result.Code)
	})
}

func TestPromotionUseCase_ExpireIfNeeded(t *testing.T) {
	ctx := context.Background()
	end := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	newPromoted := func() *entity.Listing {
		l := approvedListing("l1", "seller")
		e := end
		l.Promoted, l.PromotionType, l.PromotionEnd = true, "standard", &e
		return l
	}

	t.Run("JustBeforeEnd", func(t *testing.T) {
		f := newPromotionFixture(newPromoted())
		f.uc.now = fixedClock(end.Add(-time.Nanosecond))
		l, _ := f.listings.GetByID(ctx, "l1")

		changed, err := f.uc.ExpireIfNeeded(ctx, l)

		require.NoError(t, err)
		assert.False(t, changed)
		assert.True(t, f.listings.get("l1").Promoted)
	})

	t.Run("AtEnd", func(t *testing.T) {
		f := newPromotionFixture(newPromoted())
		f.uc.now = fixedClock(end)
		l, _ := f.listings.GetByID(ctx, "l1")

		changed, err := f.uc.ExpireIfNeeded(ctx, l)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.False(t, l.Promoted)
		assert.False(t, f.listings.get("l1").Promoted)
	})
}

func TestPromotionUseCase_ExpireAll(t *testing.T) {
	ctx := context.Background()
	past := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	future := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	expired := approvedListing("expired", "seller")
	expired.Promoted, expired.PromotionEnd = true, &past
	running := approvedListing("running", "seller")
	running.Promoted, running.PromotionEnd = true, &future
	f := newPromotionFixture(expired, running, approvedListing("plain", "seller"))

	count, err := f.uc.ExpireAll(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.False(t, f.listings.get("expired").Promoted)
	assert.True(t, f.listings.get("running").Promoted)
}

func TestPromotionUseCase_Status(t *testing.T) {
	ctx := context.Background()
	l := approvedListing("l1", "seller")
	end := time.Date(2026, 3, 11, 15, 30, 0, 0, time.UTC)
	l.Promoted, l.PromotionType, l.PromotionEnd = true, "premium", &end
	f := newPromotionFixture(l)

	status, err := f.uc.Status(ctx, "l1")

	require.NoError(t, err)
	assert.True(t, status.Promoted)
	assert.Equal(t, &entity.Remaining{Days: 2, Hours: 3, Minutes: 30}, status.Remaining)
}
