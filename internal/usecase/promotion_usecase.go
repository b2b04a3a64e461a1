package usecase

import (
	"context"
	"time"

	"targ/internal/domain/entity"
	"targ/internal/domain/repository"
	"targ/internal/domain/service"
	"targ/pkg/errors"
	"targ/pkg/logger"
)

type PromotionUseCase struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	invoices    *InvoiceUseCase
	cache       service.ListingCache
	publisher   service.EventPublisher
	pusher      service.Pusher
	recorder    Recorder
	now         func() time.Time
}

func NewPromotionUseCase(
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	invoices *InvoiceUseCase,
	cache service.ListingCache,
	publisher service.EventPublisher,
	pusher service.Pusher,
	recorder Recorder,
) *PromotionUseCase {
	return &PromotionUseCase{
		listingRepo: listingRepo,
		userRepo:    userRepo,
		invoices:    invoices,
		cache:       cache,
		publisher:   publisher,
		pusher:      pusher,
		recorder:    recorderOrNop(recorder),
		now:         time.Now,
	}
}

type PurchaseInput struct {
	ListingID string
	PlanID    string
	UserID    string
	// Billing overrides the profile saved on the user.
	Billing *entity.BillingProfile
}

// PurchaseResult reports the outcome of a purchase. On failure Err carries the typed
// error and Error/Code its public form.
type PurchaseResult struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Code    string          `json:"code,omitempty"`
	Invoice *entity.Invoice `json:"invoice,omitempty"`
	Listing *entity.Listing `json:"listing,omitempty"`
	Err     error           `json:"-"`
}

func failed(err error) *PurchaseResult {
	appErr := errors.As(err)
	return &PurchaseResult{Error: appErr.Message, Code: appErr.Code, Err: err}
}

func (uc *PromotionUseCase) Plans() []entity.PromotionPlan {
	return entity.PromotionPlans
}

// Purchase promotes a listing for the plan's duration. The promotion write is atomic and
// re-checks the conflict; the invoice is issued afterwards and its failure does not undo
// the promotion.
func (uc *PromotionUseCase) Purchase(ctx context.Context, in PurchaseInput) *PurchaseResult {
	plan, ok := entity.FindPromotionPlan(in.PlanID)
	if !ok {
		return failed(errors.BadRequest("Unknown promotion plan", nil))
	}

	listing, err := uc.listingRepo.GetByID(ctx, in.ListingID)
	if err != nil {
		return failed(err)
	}
	if !listing.OwnedBy(in.UserID) {
		return failed(errors.Forbidden("You can only promote your own listings", nil))
	}
	if !listing.IsActive() {
		return failed(errors.Conflict("Only active listings can be promoted", nil))
	}

	start := uc.now()
	if listing.IsPromoted(start) {
		return failed(errors.Conflict("Listing is already promoted", nil))
	}

	billing := in.Billing
	if billing == nil {
		if user, err := uc.userRepo.GetByID(ctx, in.UserID); err == nil {
			billing = user.BillingProfile
		}
	}
	if err := validateBilling(billing); err != nil {
		return failed(err)
	}

	promoted, err := uc.listingRepo.ApplyPromotion(ctx, listing.ID, plan.ID, start, start.Add(plan.Duration()))
	if err != nil {
		return failed(err)
	}
	uc.cache.Invalidate(ctx, promoted.ID)
	uc.recorder.PromotionPurchased(plan.ID)
	logger.Info("Listing %s promoted with plan %s until %s", promoted.ID, plan.ID, promoted.PromotionEnd.Format(time.RFC3339))

	result := &PurchaseResult{Success: true, Listing: promoted}

	invoice, err := uc.invoices.GenerateForPromotion(ctx, in.UserID, promoted, plan, billing, start)
	if err != nil {
		bestEffort(uc.recorder, "promotion.invoice", promoted.ID, err)
	} else {
		result.Invoice = invoice
	}

	if uc.publisher != nil {
		err := uc.publisher.Publish(ctx, service.EventPromotionPurchase, map[string]interface{}{
			"listing_id": promoted.ID,
			"seller_id":  in.UserID,
			"plan_id":    plan.ID,
			"ends_at":    promoted.PromotionEnd,
		})
		bestEffort(uc.recorder, "promotion.publish", promoted.ID, err)
	}
	if uc.pusher != nil {
		uc.pusher.Push(in.UserID, service.PushPromotionActivated, entity.NewPromotionStatus(promoted, start))
	}

	return result
}

func (uc *PromotionUseCase) Status(ctx context.Context, listingID string) (*entity.PromotionStatus, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	return entity.NewPromotionStatus(listing, uc.now()), nil
}

// ExpireIfNeeded clears the promoted flag of a listing observed past its end. It
// reports whether the listing changed.
func (uc *PromotionUseCase) ExpireIfNeeded(ctx context.Context, listing *entity.Listing) (bool, error) {
	if !listing.PromotionExpired(uc.now()) {
		return false, nil
	}
	if err := uc.listingRepo.ClearPromotion(ctx, listing.ID); err != nil {
		return false, err
	}
	listing.Promoted = false
	uc.cache.Invalidate(ctx, listing.ID)
	return true, nil
}

// ExpireAll clears every lapsed promotion. It runs only when an admin asks for it.
func (uc *PromotionUseCase) ExpireAll(ctx context.Context) (int, error) {
	listings, err := uc.listingRepo.ListPromoted(ctx)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, l := range listings {
		changed, err := uc.ExpireIfNeeded(ctx, l)
		if err != nil {
			logger.Warn("Failed to expire promotion of %s: %v", l.ID, err)
			continue
		}
		if changed {
			expired++
		}
	}
	logger.Info("Promotion sweep cleared %d of %d promoted listings", expired, len(listings))
	return expired, nil
}
