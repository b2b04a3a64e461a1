package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"targ/internal/domain/entity"
	"targ/pkg/errors"
)

func TestFoldRating(t *testing.T) {
	avg, count := foldRating(0, 0, 4)
	assert.Equal(t, 4.0, avg)
	assert.Equal(t, 1, count)

	avg, count = foldRating(4, 1, 5)
	assert.Equal(t, 4.5, avg)
	assert.Equal(t, 2, count)
}

func TestReviewUseCase_Create(t *testing.T) {
	ctx := context.Background()
	reviews := &memReviews{}
	users := newMemUsers(&entity.User{ID: "seller", SellerRating: 4, SellerReviewCount: 1})
	recorder := newCountingRecorder()
	uc := NewReviewUseCase(reviews, users, recorder)

	err := uc.Create(ctx, &entity.Review{ReviewerID: "buyer", TargetID: "seller", Type: entity.ReviewOfSeller, Rating: 0})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	err = uc.Create(ctx, &entity.Review{ReviewerID: "seller", TargetID: "seller", Type: entity.ReviewOfSeller, Rating: 5})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	require.NoError(t, uc.Create(ctx, &entity.Review{ReviewerID: "buyer", TargetID: "seller", Type: entity.ReviewOfSeller, Rating: 5}))
	seller, _ := users.GetByID(ctx, "seller")
	assert.Equal(t, 4.5, seller.SellerRating)
	assert.Equal(t, 2, seller.SellerReviewCount)

	require.NoError(t, uc.Create(ctx, &entity.Review{ReviewerID: "buyer", TargetID: "ghost", Type: entity.ReviewOfSeller, Rating: 3}))
	assert.Equal(t, 1, recorder.failures["review.rating"])

	listed, total, err := uc.ListForUser(ctx, "seller", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, listed, 1)
}
