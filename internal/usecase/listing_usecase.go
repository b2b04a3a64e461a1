package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"targ/internal/domain/discovery"
	"targ/internal/domain/entity"
	"targ/internal/domain/repository"
	"targ/internal/domain/service"
	"targ/pkg/errors"
	"targ/pkg/logger"
)

const maxListingImages = 10

type ListingUseCase struct {
	listingRepo      repository.ListingRepository
	userRepo         repository.UserRepository
	favoriteRepo     repository.FavoriteRepository
	conversationRepo repository.ConversationRepository
	invoiceRepo      repository.InvoiceRepository
	uploadRepo       repository.UploadRepository
	reviews          *ReviewUseCase
	notifications    *NotificationUseCase
	promotions       *PromotionUseCase
	storage          service.FileUploadService
	cache            service.ListingCache
	publisher        service.EventPublisher
	recorder         Recorder
	now              func() time.Time
}

func NewListingUseCase(
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	favoriteRepo repository.FavoriteRepository,
	conversationRepo repository.ConversationRepository,
	invoiceRepo repository.InvoiceRepository,
	uploadRepo repository.UploadRepository,
	reviews *ReviewUseCase,
	notifications *NotificationUseCase,
	promotions *PromotionUseCase,
	storage service.FileUploadService,
	cache service.ListingCache,
	publisher service.EventPublisher,
	recorder Recorder,
) *ListingUseCase {
	return &ListingUseCase{
		listingRepo:      listingRepo,
		userRepo:         userRepo,
		favoriteRepo:     favoriteRepo,
		conversationRepo: conversationRepo,
		invoiceRepo:      invoiceRepo,
		uploadRepo:       uploadRepo,
		reviews:          reviews,
		notifications:    notifications,
		promotions:       promotions,
		storage:          storage,
		cache:            cache,
		publisher:        publisher,
		recorder:         recorderOrNop(recorder),
		now:              time.Now,
	}
}

type CreateListingInput struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Subcategory string            `json:"subcategory"`
	Attributes  map[string]string `json:"attributes"`
	Price       float64           `json:"price"`
	Currency    entity.Currency   `json:"currency"`
	Negotiable  bool              `json:"negotiable"`
	Condition   string            `json:"condition"`
	Images      []string          `json:"images"`
	Location    string            `json:"location"`
}

// UpdateListingInput is a partial update; nil fields are left untouched.
type UpdateListingInput struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Category    *string           `json:"category"`
	Subcategory *string           `json:"subcategory"`
	Attributes  map[string]string `json:"attributes"`
	Price       *float64          `json:"price"`
	Currency    *entity.Currency  `json:"currency"`
	Negotiable  *bool             `json:"negotiable"`
	Condition   *string           `json:"condition"`
	Images      []string          `json:"images"`
	Location    *string           `json:"location"`
}

type MarkSoldInput struct {
	BuyerID string `json:"buyer_id"`
	// Rating of the buyer, 1-5. Zero means no review.
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ListingDetail is a listing as shown on its own page.
type ListingDetail struct {
	*entity.Listing
	Seller     *entity.PublicProfile   `json:"seller,omitempty"`
	IsFavorite bool                    `json:"is_favorite"`
	IsOwner    bool                    `json:"is_owner"`
	Promotion  *entity.PromotionStatus `json:"promotion"`
}

func validateListing(l *entity.Listing) error {
	switch {
	case strings.TrimSpace(l.Title) == "":
		return errors.BadRequest("Title is required", nil)
	case strings.TrimSpace(l.Category) == "":
		return errors.BadRequest("Category is required", nil)
	case strings.TrimSpace(l.Location) == "":
		return errors.BadRequest("Location is required", nil)
	case l.Price < 0:
		return errors.BadRequest("Price cannot be negative", nil)
	case !l.Currency.Valid():
		return errors.BadRequest("Currency must be EUR or RON", nil)
	case len(l.Images) > maxListingImages:
		return errors.BadRequest(fmt.Sprintf("A listing can have at most %d images", maxListingImages), nil)
	}
	return nil
}

// Create stores a new listing awaiting moderation.
func (uc *ListingUseCase) Create(ctx context.Context, sellerID string, input CreateListingInput) (*entity.Listing, error) {
	now := uc.now()
	listing := &entity.Listing{
		SellerID:    sellerID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    discovery.CanonicalCategory(input.Category),
		Subcategory: strings.TrimSpace(input.Subcategory),
		Attributes:  input.Attributes,
		Price:       input.Price,
		Currency:    input.Currency,
		Negotiable:  input.Negotiable,
		Condition:   input.Condition,
		Images:      input.Images,
		Location:    strings.TrimSpace(input.Location),
		Status:      entity.ListingStatusPending,
		PublishedAt: now,
		UpdatedAt:   now,
	}
	if listing.Images == nil {
		listing.Images = []string{}
	}
	if err := validateListing(listing); err != nil {
		return nil, err
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}
	logger.Info("Listing %s created by %s", listing.ID, sellerID)
	return listing, nil
}

// load reads through the cache.
func (uc *ListingUseCase) load(ctx context.Context, id string) (*entity.Listing, error) {
	if listing, ok := uc.cache.Get(ctx, id); ok {
		return listing, nil
	}
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.cache.Set(ctx, listing)
	return listing, nil
}

func (uc *ListingUseCase) owned(ctx context.Context, id, sellerID string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !listing.OwnedBy(sellerID) {
		return nil, errors.Forbidden("You can only modify your own listings", nil)
	}
	return listing, nil
}

// Get loads a listing for its page. Pending and rejected listings are visible only to
// their seller. The seller profile and the viewer's favorite state are optional and
// loaded concurrently.
func (uc *ListingUseCase) Get(ctx context.Context, id, viewerID string) (*ListingDetail, error) {
	listing, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}

	isOwner := listing.OwnedBy(viewerID)
	if !isOwner && listing.Status != entity.ListingStatusApproved && listing.Status != "" {
		return nil, errors.NotFound("Listing", nil)
	}

	detail := &ListingDetail{Listing: listing, IsOwner: isOwner}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		seller, err := uc.userRepo.GetByID(gctx, listing.SellerID)
		if err != nil {
			logger.Warn("Seller %s of listing %s unavailable: %v", listing.SellerID, listing.ID, err)
			return nil
		}
		detail.Seller = seller.Public()
		return nil
	})
	if viewerID != "" && !isOwner {
		g.Go(func() error {
			favorite, err := uc.favoriteRepo.Exists(gctx, viewerID, listing.ID)
			if err != nil {
				logger.Warn("Favorite state of %s for %s unavailable: %v", listing.ID, viewerID, err)
				return nil
			}
			detail.IsFavorite = favorite
			return nil
		})
	}
	if !isOwner {
		g.Go(func() error {
			err := uc.listingRepo.IncrementViews(gctx, listing.ID)
			if err == nil {
				uc.cache.Invalidate(ctx, listing.ID)
			}
			bestEffort(uc.recorder, "listing.views", listing.ID, err)
			return nil
		})
	}
	_ = g.Wait()

	if !isOwner {
		listing.Views++
	}
	if uc.promotions != nil {
		if _, err := uc.promotions.ExpireIfNeeded(ctx, listing); err != nil {
			bestEffort(uc.recorder, "listing.expire_promotion", listing.ID, err)
		}
	}
	detail.Promotion = entity.NewPromotionStatus(listing, uc.now())
	return detail, nil
}

// List pages through approved listings with a cursor.
func (uc *ListingUseCase) List(ctx context.Context, query repository.ListingQuery) (*repository.ListingPage, error) {
	query.Filters.Status = entity.ListingStatusApproved
	if query.Filters.Category != "" {
		query.Filters.Category = discovery.CanonicalCategory(query.Filters.Category)
	}
	return uc.listingRepo.List(ctx, query)
}

// ListPending pages through listings waiting for moderation.
func (uc *ListingUseCase) ListPending(ctx context.Context, pageSize int, cursor string) (*repository.ListingPage, error) {
	return uc.listingRepo.List(ctx, repository.ListingQuery{
		Filters:  repository.ListingFilter{Status: entity.ListingStatusPending},
		PageSize: pageSize,
		Cursor:   cursor,
	})
}

// Search runs the discovery pipeline over every active listing.
func (uc *ListingUseCase) Search(ctx context.Context, query discovery.Query) (discovery.Page[discovery.Card], error) {
	listings, err := uc.listingRepo.ListActive(ctx)
	if err != nil {
		return discovery.Page[discovery.Card]{}, err
	}
	return discovery.Run(listings, query, uc.now()), nil
}

// ListBySeller returns the seller's listings. Inactive ones are included only when the
// seller asks for their own.
func (uc *ListingUseCase) ListBySeller(ctx context.Context, sellerID, viewerID string) ([]*entity.Listing, error) {
	return uc.listingRepo.ListBySeller(ctx, sellerID, sellerID == viewerID)
}

func (uc *ListingUseCase) Update(ctx context.Context, id, sellerID string, input UpdateListingInput) (*entity.Listing, error) {
	listing, err := uc.owned(ctx, id, sellerID)
	if err != nil {
		return nil, err
	}
	if listing.Sold {
		return nil, errors.Conflict("Sold listings cannot be edited", nil)
	}

	next := *listing
	fields := make(map[string]interface{})
	if input.Title != nil {
		next.Title = strings.TrimSpace(*input.Title)
		fields["title"] = next.Title
	}
	if input.Description != nil {
		next.Description = strings.TrimSpace(*input.Description)
		fields["description"] = next.Description
	}
	if input.Category != nil {
		next.Category = discovery.CanonicalCategory(*input.Category)
		fields["category"] = next.Category
	}
	if input.Subcategory != nil {
		next.Subcategory = strings.TrimSpace(*input.Subcategory)
		fields["subcategory"] = next.Subcategory
	}
	if input.Attributes != nil {
		next.Attributes = input.Attributes
		fields["attributes"] = next.Attributes
	}
	if input.Price != nil {
		next.Price = *input.Price
		fields["price"] = next.Price
	}
	if input.Currency != nil {
		next.Currency = *input.Currency
		fields["currency"] = next.Currency
	}
	if input.Negotiable != nil {
		next.Negotiable = *input.Negotiable
		fields["negotiable"] = next.Negotiable
	}
	if input.Condition != nil {
		next.Condition = *input.Condition
		fields["condition"] = next.Condition
	}
	if input.Images != nil {
		next.Images = input.Images
		fields["images"] = next.Images
	}
	if input.Location != nil {
		next.Location = strings.TrimSpace(*input.Location)
		fields["location"] = next.Location
	}
	if len(fields) == 0 {
		return listing, nil
	}
	if err := validateListing(&next); err != nil {
		return nil, err
	}

	next.UpdatedAt = uc.now()
	err = uc.cache.Optimistic(ctx, &next, func(ctx context.Context) error {
		return uc.listingRepo.Update(ctx, id, fields)
	})
	if err != nil {
		return nil, err
	}
	return &next, nil
}

// Delete removes a listing. Listings that a conversation or an invoice points at are
// only hidden, so that history keeps resolving.
func (uc *ListingUseCase) Delete(ctx context.Context, id, sellerID string) error {
	listing, err := uc.owned(ctx, id, sellerID)
	if err != nil {
		return err
	}

	var inConversation, invoiced bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		inConversation, err = uc.conversationRepo.ExistsForListing(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		invoiced, err = uc.invoiceRepo.ExistsForListing(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	defer uc.cache.Invalidate(ctx, id)

	if inConversation || invoiced {
		logger.Info("Listing %s is referenced, hiding it instead of deleting", id)
		return uc.listingRepo.SoftDelete(ctx, id)
	}

	if err := uc.listingRepo.Delete(ctx, id); err != nil {
		return err
	}
	if uc.storage != nil {
		for _, image := range listing.Images {
			bestEffort(uc.recorder, "listing.delete_image", id, uc.storage.DeleteFile(ctx, image))
			if uc.uploadRepo != nil {
				bestEffort(uc.recorder, "listing.forget_upload", id, uc.uploadRepo.DeleteByURL(ctx, image))
			}
		}
	}
	return nil
}

// MarkSold closes the sale and optionally reviews the buyer. When the review cannot be
// stored the sale is reverted so the seller can retry both together.
func (uc *ListingUseCase) MarkSold(ctx context.Context, id, sellerID string, input MarkSoldInput) (*entity.Listing, error) {
	listing, err := uc.owned(ctx, id, sellerID)
	if err != nil {
		return nil, err
	}
	if listing.Sold {
		return nil, errors.Conflict("Listing is already sold", nil)
	}
	if input.BuyerID == sellerID {
		return nil, errors.BadRequest("You cannot sell to yourself", nil)
	}
	withReview := input.Rating != 0
	if withReview && input.BuyerID == "" {
		return nil, errors.BadRequest("A buyer is required to leave a review", nil)
	}

	soldAt := uc.now()
	err = uc.listingRepo.Update(ctx, id, map[string]interface{}{
		"sold":     true,
		"soldAt":   soldAt,
		"buyerId":  input.BuyerID,
		"promoted": false,
	})
	if err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, id)

	if withReview {
		review := &entity.Review{
			ListingID:  id,
			ReviewerID: sellerID,
			TargetID:   input.BuyerID,
			Type:       entity.ReviewOfBuyer,
			Rating:     input.Rating,
			Comment:    strings.TrimSpace(input.Comment),
		}
		if err := uc.reviews.Create(ctx, review); err != nil {
			revertErr := uc.listingRepo.Update(ctx, id, map[string]interface{}{
				"sold":     false,
				"soldAt":   nil,
				"buyerId":  "",
				"promoted": listing.Promoted,
			})
			if revertErr != nil {
				logger.Error("Failed to revert sale of listing %s: %v", id, revertErr)
			}
			return nil, err
		}
	}

	listing.Sold = true
	listing.SoldAt = &soldAt
	listing.BuyerID = input.BuyerID
	listing.Promoted = false

	if uc.publisher != nil {
		err := uc.publisher.Publish(ctx, service.EventListingSold, map[string]interface{}{
			"listing_id": id,
			"seller_id":  sellerID,
			"buyer_id":   input.BuyerID,
			"sold_at":    soldAt,
		})
		bestEffort(uc.recorder, "listing.publish_sold", id, err)
	}
	return listing, nil
}

// Moderate approves or rejects a pending listing and tells the seller.
func (uc *ListingUseCase) Moderate(ctx context.Context, adminID, id string, approve bool, reason string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.Status != entity.ListingStatusPending {
		return nil, errors.Conflict("Only pending listings can be moderated", nil)
	}

	reason = strings.TrimSpace(reason)
	status := entity.ListingStatusApproved
	notification := &entity.Notification{
		UserID:  listing.SellerID,
		Type:    entity.NotificationListingApproved,
		Title:   "Anunț aprobat",
		Message: fmt.Sprintf("Anunțul %q este acum public.", listing.Title),
		Link:    "/listings/" + listing.ID,
	}
	if !approve {
		if reason == "" {
			return nil, errors.BadRequest("A reason is required to reject a listing", nil)
		}
		status = entity.ListingStatusRejected
		notification.Type = entity.NotificationListingRejected
		notification.Title = "Anunț respins"
		notification.Message = fmt.Sprintf("Anunțul %q a fost respins: %s", listing.Title, reason)
	} else {
		reason = ""
	}

	err = uc.listingRepo.Update(ctx, id, map[string]interface{}{
		"status":          status,
		"rejectionReason": reason,
	})
	if err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, id)
	listing.Status = status
	listing.RejectionReason = reason
	logger.Info("Listing %s moderated by %s: %s", id, adminID, status)

	if uc.notifications != nil {
		notification.Metadata = &entity.NotificationMetadata{
			ListingID:    listing.ID,
			ListingTitle: listing.Title,
			ListingImage: listing.CoverImage(),
		}
		bestEffort(uc.recorder, "listing.notify_moderation", id, uc.notifications.Notify(ctx, notification))
	}
	if uc.publisher != nil {
		err := uc.publisher.Publish(ctx, service.EventListingModerated, map[string]interface{}{
			"listing_id": id,
			"admin_id":   adminID,
			"status":     status,
		})
		bestEffort(uc.recorder, "listing.publish_moderation", id, err)
	}
	return listing, nil
}

// UploadImage stores a listing photo under the seller's folder and records the upload.
func (uc *ListingUseCase) UploadImage(ctx context.Context, sellerID string, file io.Reader, contentType string, size int64) (string, error) {
	if uc.storage == nil {
		return "", errors.Internal("Image storage is not configured", nil)
	}
	url, err := uc.storage.UploadFile(ctx, file, contentType, "listings/"+sellerID)
	if err != nil {
		return "", err
	}

	if uc.uploadRepo != nil {
		err := uc.uploadRepo.Create(ctx, &entity.Upload{
			URL:         url,
			UploadedBy:  sellerID,
			ContentType: contentType,
			Size:        size,
			CreatedAt:   uc.now(),
		})
		bestEffort(uc.recorder, "listing.record_upload", sellerID, err)
	}
	return url, nil
}

// ListUploads pages through the images a seller uploaded, newest first.
func (uc *ListingUseCase) ListUploads(ctx context.Context, sellerID string, page, pageSize int) ([]*entity.Upload, int64, error) {
	if uc.uploadRepo == nil {
		return []*entity.Upload{}, 0, nil
	}
	return uc.uploadRepo.ListByUploader(ctx, sellerID, pageSize, (page-1)*pageSize)
}
