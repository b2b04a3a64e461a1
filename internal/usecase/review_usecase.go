package usecase

import (
	"context"
	"time"

	"targ/internal/domain/entity"
	"targ/internal/domain/repository"
	"targ/pkg/errors"
)

type ReviewUseCase struct {
	reviewRepo repository.ReviewRepository
	userRepo   repository.UserRepository
	recorder   Recorder
	now        func() time.Time
}

func NewReviewUseCase(reviewRepo repository.ReviewRepository, userRepo repository.UserRepository, recorder Recorder) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
		recorder:   recorderOrNop(recorder),
		now:        time.Now,
	}
}

// Create stores the review and folds it into the target's rating. The rating update is
// best-effort.
func (uc *ReviewUseCase) Create(ctx context.Context, review *entity.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return errors.BadRequest("Rating must be between 1 and 5", nil)
	}
	if review.ReviewerID == review.TargetID {
		return errors.BadRequest("You cannot review yourself", nil)
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = uc.now()
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return err
	}

	bestEffort(uc.recorder, "review.rating", review.TargetID, uc.applyRating(ctx, review))
	return nil
}

func (uc *ReviewUseCase) applyRating(ctx context.Context, review *entity.Review) error {
	target, err := uc.userRepo.GetByID(ctx, review.TargetID)
	if err != nil {
		return err
	}

	fields := make(map[string]interface{}, 2)
	switch review.Type {
	case entity.ReviewOfBuyer:
		rating, count := foldRating(target.BuyerRating, target.BuyerReviewCount, review.Rating)
		fields["buyerRating"], fields["buyerReviewCount"] = rating, count
	default:
		rating, count := foldRating(target.SellerRating, target.SellerReviewCount, review.Rating)
		fields["sellerRating"], fields["sellerReviewCount"] = rating, count
	}
	return uc.userRepo.UpdateFields(ctx, review.TargetID, fields)
}

// foldRating adds one rating to a running average.
func foldRating(average float64, count, rating int) (float64, int) {
	total := average*float64(count) + float64(rating)
	count++
	return total / float64(count), count
}

func (uc *ReviewUseCase) ListForUser(ctx context.Context, userID string, page, pageSize int) ([]*entity.Review, int64, error) {
	offset := (page - 1) * pageSize
	return uc.reviewRepo.ListByTarget(ctx, userID, pageSize, offset)
}
