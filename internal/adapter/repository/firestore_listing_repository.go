package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"targ/internal/domain/discovery"
	"targ/internal/domain/entity"
	"targ/internal/domain/repository"
	"targ/pkg/errors"
)

const (
	defaultListingPageSize = 20
	listingScanBatch       = 50
)

type firestoreListingRepository struct {
	client *firestore.Client
}

func NewFirestoreListingRepository(client *firestore.Client) repository.ListingRepository {
	return &firestoreListingRepository{
		client: client,
	}
}

func (r *firestoreListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	if listing.ID == "" {
		listing.ID = r.client.Collection(listingsCollection).NewDoc().ID
	}

	now := time.Now()
	if listing.PublishedAt.IsZero() {
		listing.PublishedAt = now
	}
	listing.UpdatedAt = now

	_, err := r.client.Collection(listingsCollection).Doc(listing.ID).Set(ctx, listing)
	if err != nil {
		return errors.Internal("Failed to create listing", err)
	}
	return nil
}

func (r *firestoreListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	doc, err := r.client.Collection(listingsCollection).Doc(id).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("Listing", err)
		}
		return nil, errors.Internal("Failed to get listing", err)
	}

	var listing entity.Listing
	if err := doc.DataTo(&listing); err != nil {
		return nil, errors.Internal("Failed to parse listing data", err)
	}
	if listing.DeletedAt != nil {
		return nil, errors.NotFound("Listing", nil)
	}
	listing.ID = doc.Ref.ID

	return &listing, nil
}

// List pages through listings newest first. Equality filters run in Firestore; the
// search query, price bounds, status and soft deletes are checked in memory, so the
// scan keeps reading batches until the page is full or the collection is exhausted.
func (r *firestoreListingRepository) List(ctx context.Context, query repository.ListingQuery) (*repository.ListingPage, error) {
	f := query.Filters
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = defaultListingPageSize
	}

	q := r.client.Collection(listingsCollection).Query
	if f.Category != "" {
		q = q.Where("category", "==", discovery.CanonicalCategory(f.Category))
	}
	if f.Subcategory != "" {
		q = q.Where("subcategory", "==", f.Subcategory)
	}
	if f.Location != "" {
		q = q.Where("location", "==", f.Location)
	}
	if f.Condition != "" {
		q = q.Where("condition", "==", f.Condition)
	}
	if f.SellerID != "" {
		q = q.Where("sellerId", "==", f.SellerID)
	}
	if f.ExcludeSold {
		q = q.Where("sold", "==", false)
	}
	q = q.OrderBy("publishedAt", firestore.Desc)

	fetch := func(ctx context.Context, after string, limit int) ([]*entity.Listing, error) {
		batch := q.Limit(limit)
		if after != "" {
			snap, err := r.client.Collection(listingsCollection).Doc(after).Get(ctx)
			if err != nil {
				if IsNotFound(err) {
					return nil, errors.BadRequest("Invalid cursor", err)
				}
				return nil, errors.Internal("Failed to resolve cursor", err)
			}
			batch = batch.StartAfter(snap)
		}

		docs, err := batch.Documents(ctx).GetAll()
		if err != nil {
			return nil, errors.Internal("Failed to list listings", err)
		}
		listings := make([]*entity.Listing, 0, len(docs))
		for _, doc := range docs {
			var listing entity.Listing
			if err := doc.DataTo(&listing); err != nil {
				return nil, errors.Internal("Failed to parse listing data", err)
			}
			listing.ID = doc.Ref.ID
			listings = append(listings, &listing)
		}
		return listings, nil
	}

	inMemory := discovery.Filter{
		Query:    f.SearchQuery,
		MinPrice: f.MinPrice,
		MaxPrice: f.MaxPrice,
	}
	keep := func(l *entity.Listing) bool {
		return matchesStoredFilter(l, f) && discovery.Matches(l, inMemory)
	}

	return scanListings(ctx, fetch, keep, pageSize, query.Cursor)
}

// listingBatch returns up to limit listings stored after the listing with id after.
type listingBatch func(ctx context.Context, after string, limit int) ([]*entity.Listing, error)

// scanListings fills a page from successive batches. It reads one match past the page
// so HasMore is only set when another listing really follows NextCursor.
func scanListings(ctx context.Context, fetch listingBatch, keep func(*entity.Listing) bool, pageSize int, cursor string) (*repository.ListingPage, error) {
	page := &repository.ListingPage{Listings: make([]*entity.Listing, 0, pageSize)}
	for {
		batch, err := fetch(ctx, cursor, listingScanBatch)
		if err != nil {
			return nil, err
		}

		for _, listing := range batch {
			cursor = listing.ID
			if !keep(listing) {
				continue
			}
			if len(page.Listings) == pageSize {
				page.HasMore = true
				page.NextCursor = page.Listings[pageSize-1].ID
				return page, nil
			}
			page.Listings = append(page.Listings, listing)
		}

		if len(batch) < listingScanBatch {
			return page, nil
		}
	}
}

func matchesStoredFilter(l *entity.Listing, f repository.ListingFilter) bool {
	if l.DeletedAt != nil {
		return false
	}
	switch f.Status {
	case "":
		return true
	case entity.ListingStatusApproved:
		return l.Status == entity.ListingStatusApproved || l.Status == ""
	default:
		return l.Status == f.Status
	}
}

func (r *firestoreListingRepository) ListActive(ctx context.Context) ([]*entity.Listing, error) {
	docs, err := r.client.Collection(listingsCollection).Where("sold", "==", false).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list active listings", err)
	}

	listings := make([]*entity.Listing, 0, len(docs))
	for _, doc := range docs {
		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return nil, errors.Internal("Failed to parse listing data", err)
		}
		listing.ID = doc.Ref.ID
		if listing.IsActive() {
			listings = append(listings, &listing)
		}
	}

	now := time.Now()
	sort.SliceStable(listings, func(i, j int) bool {
		pi, pj := listings[i].IsPromoted(now), listings[j].IsPromoted(now)
		if pi != pj {
			return pi
		}
		return listings[i].PublishedAt.After(listings[j].PublishedAt)
	})

	return listings, nil
}

func (r *firestoreListingRepository) ListBySeller(ctx context.Context, sellerID string, includeInactive bool) ([]*entity.Listing, error) {
	iter := r.client.Collection(listingsCollection).
		Where("sellerId", "==", sellerID).
		OrderBy("publishedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var listings []*entity.Listing
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list seller listings", err)
		}

		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return nil, errors.Internal("Failed to parse listing data", err)
		}
		listing.ID = doc.Ref.ID
		if listing.DeletedAt != nil || (!includeInactive && !listing.IsActive()) {
			continue
		}
		listings = append(listings, &listing)
	}

	return listings, nil
}

func (r *firestoreListingRepository) ListPromoted(ctx context.Context) ([]*entity.Listing, error) {
	docs, err := r.client.Collection(listingsCollection).Where("promoted", "==", true).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list promoted listings", err)
	}

	listings := make([]*entity.Listing, 0, len(docs))
	for _, doc := range docs {
		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return nil, errors.Internal("Failed to parse listing data", err)
		}
		listing.ID = doc.Ref.ID
		listings = append(listings, &listing)
	}
	return listings, nil
}

func (r *firestoreListingRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	withTimestamp := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		withTimestamp[k] = v
	}
	withTimestamp["updatedAt"] = time.Now()

	_, err := r.client.Collection(listingsCollection).Doc(id).Update(ctx, toUpdates(withTimestamp))
	if err != nil {
		if IsNotFound(err) {
			return errors.NotFound("Listing", err)
		}
		return errors.Internal("Failed to update listing", err)
	}
	return nil
}

func (r *firestoreListingRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(listingsCollection).Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete listing", err)
	}
	return nil
}

func (r *firestoreListingRepository) SoftDelete(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.client.Collection(listingsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "deletedAt", Value: now},
		{Path: "promoted", Value: false},
		{Path: "updatedAt", Value: now},
	})
	if err != nil {
		return errors.Internal("Failed to soft delete listing", err)
	}
	return nil
}

// IncrementViews uses a server-side increment so concurrent views are never lost.
func (r *firestoreListingRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.client.Collection(listingsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "views", Value: firestore.Increment(1)},
	})
	if err != nil {
		return errors.Internal("Failed to increment listing views", err)
	}
	return nil
}

func (r *firestoreListingRepository) ApplyPromotion(ctx context.Context, id, planID string, start, end time.Time) (*entity.Listing, error) {
	ref := r.client.Collection(listingsCollection).Doc(id)
	var promoted entity.Listing

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if IsNotFound(err) {
				return errors.NotFound("Listing", err)
			}
			return err
		}

		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return err
		}
		if listing.DeletedAt != nil {
			return errors.NotFound("Listing", nil)
		}
		if listing.IsPromoted(start) {
			return errors.Conflict("Listing is already promoted", nil)
		}

		listing.ID = doc.Ref.ID
		listing.Promoted = true
		listing.PromotionType = planID
		listing.PromotionStart = &start
		listing.PromotionEnd = &end
		listing.UpdatedAt = start
		promoted = listing

		return tx.Update(ref, []firestore.Update{
			{Path: "promoted", Value: true},
			{Path: "promotionType", Value: planID},
			{Path: "promotionStart", Value: start},
			{Path: "promotionEnd", Value: end},
			{Path: "updatedAt", Value: start},
		})
	})
	if err != nil {
		return nil, passThrough(err, "Failed to promote listing")
	}

	return &promoted, nil
}

func (r *firestoreListingRepository) ClearPromotion(ctx context.Context, id string) error {
	_, err := r.client.Collection(listingsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "promoted", Value: false},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if IsNotFound(err) {
			return errors.NotFound("Listing", err)
		}
		return errors.Internal("Failed to clear promotion", err)
	}
	return nil
}
