package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"targ/internal/domain/entity"
	"targ/internal/domain/repository"
	"targ/pkg/errors"
)

type FavoriteUseCase struct {
	favoriteRepo repository.FavoriteRepository
	listingRepo  repository.ListingRepository
	recorder     Recorder
	now          func() time.Time
}

func NewFavoriteUseCase(favoriteRepo repository.FavoriteRepository, listingRepo repository.ListingRepository, recorder Recorder) *FavoriteUseCase {
	return &FavoriteUseCase{
		favoriteRepo: favoriteRepo,
		listingRepo:  listingRepo,
		recorder:     recorderOrNop(recorder),
		now:          time.Now,
	}
}

// Toggle flips the favorite state of (user, listing) and returns the new state.
func (uc *FavoriteUseCase) Toggle(ctx context.Context, userID, listingID string) (bool, error) {
	exists, err := uc.favoriteRepo.Exists(ctx, userID, listingID)
	if err != nil {
		return false, err
	}

	if exists {
		if err := uc.favoriteRepo.Delete(ctx, userID, listingID); err != nil {
			return false, err
		}
		uc.recorder.FavoriteToggled(false)
		return false, nil
	}

	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return false, err
	}
	if listing.OwnedBy(userID) {
		return false, errors.BadRequest("You cannot favorite your own listing", nil)
	}

	err = uc.favoriteRepo.Create(ctx, &entity.Favorite{
		UserID:    userID,
		ListingID: listingID,
		CreatedAt: uc.now(),
	})
	if err != nil {
		return false, err
	}
	uc.recorder.FavoriteToggled(true)
	return true, nil
}

func (uc *FavoriteUseCase) IsFavorite(ctx context.Context, userID, listingID string) (bool, error) {
	return uc.favoriteRepo.Exists(ctx, userID, listingID)
}

func (uc *FavoriteUseCase) Count(ctx context.Context, userID string) (int64, error) {
	return uc.favoriteRepo.CountByUser(ctx, userID)
}

// ListForUser joins a page of favorites with their listings. Listings that are gone or
// no longer active are left out of the page.
func (uc *FavoriteUseCase) ListForUser(ctx context.Context, userID string, page, pageSize int) ([]*entity.FavoriteWithListing, int64, error) {
	favorites, total, err := uc.favoriteRepo.ListByUser(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}

	listings := make([]*entity.Listing, len(favorites))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, f := range favorites {
		i, f := i, f
		g.Go(func() error {
			l, err := uc.listingRepo.GetByID(gctx, f.ListingID)
			if err != nil {
				if errors.IsNotFound(err) {
					return nil
				}
				return err
			}
			listings[i] = l
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	result := make([]*entity.FavoriteWithListing, 0, len(favorites))
	for i, f := range favorites {
		if listings[i] == nil || !listings[i].IsActive() {
			continue
		}
		result = append(result, &entity.FavoriteWithListing{Favorite: *f, Listing: listings[i]})
	}
	return result, total, nil
}
