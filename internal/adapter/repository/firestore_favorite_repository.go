package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"targ/internal/domain/entity"
	"targ/internal/domain/repository"
	"targ/pkg/errors"
)

type firestoreFavoriteRepository struct {
	client *firestore.Client
}

func NewFirestoreFavoriteRepository(client *firestore.Client) repository.FavoriteRepository {
	return &firestoreFavoriteRepository{client: client}
}

func (r *firestoreFavoriteRepository) Exists(ctx context.Context, userID, listingID string) (bool, error) {
	doc, err := r.client.Collection(favoritesCollection).Doc(entity.FavoriteID(userID, listingID)).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, errors.Internal("Failed to check favorite", err)
	}
	return doc.Exists(), nil
}

func (r *firestoreFavoriteRepository) Create(ctx context.Context, favorite *entity.Favorite) error {
	favorite.ID = entity.FavoriteID(favorite.UserID, favorite.ListingID)
	if favorite.CreatedAt.IsZero() {
		favorite.CreatedAt = time.Now()
	}

	_, err := r.client.Collection(favoritesCollection).Doc(favorite.ID).Set(ctx, favorite)
	if err != nil {
		return errors.Internal("Failed to add favorite", err)
	}
	return nil
}

func (r *firestoreFavoriteRepository) Delete(ctx context.Context, userID, listingID string) error {
	_, err := r.client.Collection(favoritesCollection).Doc(entity.FavoriteID(userID, listingID)).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to remove favorite", err)
	}
	return nil
}

func (r *firestoreFavoriteRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Favorite, int64, error) {
	docs, err := r.client.Collection(favoritesCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list favorites", err)
	}

	start, end := pageBounds(len(docs), limit, offset)
	favorites := make([]*entity.Favorite, 0, end-start)
	for _, doc := range docs[start:end] {
		var favorite entity.Favorite
		if err := doc.DataTo(&favorite); err != nil {
			return nil, 0, errors.Internal("Failed to parse favorite data", err)
		}
		favorites = append(favorites, &favorite)
	}

	return favorites, int64(len(docs)), nil
}

func (r *firestoreFavoriteRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	count, err := countQuery(ctx, r.client.Collection(favoritesCollection).Where("userId", "==", userID))
	if err != nil {
		return 0, errors.Internal("Failed to count favorites", err)
	}
	return count, nil
}
