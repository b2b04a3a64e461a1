package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func promotedUntil(end time.Time) *Listing {
	start := end.Add(-7 * 24 * time.Hour)
	return &Listing{Promoted: true, PromotionStart: &start, PromotionEnd: &end}
}

func TestIsActive(t *testing.T) {
	deleted := time.Now()
	tests := []struct {
		name    string
		listing Listing
		want    bool
	}{
		{"approved", Listing{Status: ListingStatusApproved}, true},
		{"legacy without status", Listing{}, true},
		{"pending", Listing{Status: ListingStatusPending}, false},
		{"rejected", Listing{Status: ListingStatusRejected}, false},
		{"sold", Listing{Status: ListingStatusApproved, Sold: true}, false},
		{"deleted", Listing{Status: ListingStatusApproved, DeletedAt: &deleted}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.listing.IsActive())
		})
	}
}

func TestPromotionExpiryBoundary(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	expired := promotedUntil(now.Add(-time.Second))
	assert.False(t, expired.IsPromoted(now))
	assert.Nil(t, expired.PromotionRemaining(now))
	assert.True(t, expired.PromotionExpired(now))

	atBoundary := promotedUntil(now)
	assert.False(t, atBoundary.IsPromoted(now))
	assert.Nil(t, atBoundary.PromotionRemaining(now))

	oneHour := promotedUntil(now.Add(time.Hour))
	assert.True(t, oneHour.IsPromoted(now))
	assert.Equal(t, &Remaining{Days: 0, Hours: 1, Minutes: 0}, oneHour.PromotionRemaining(now))

	justUnder := promotedUntil(now.Add(59*time.Minute + 30*time.Second))
	assert.Equal(t, &Remaining{Days: 0, Hours: 0, Minutes: 59}, justUnder.PromotionRemaining(now))
}

func TestPromotionRemainingDecomposition(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := promotedUntil(now.Add(3*24*time.Hour + 5*time.Hour + 17*time.Minute + 45*time.Second))

	assert.Equal(t, &Remaining{Days: 3, Hours: 5, Minutes: 17}, l.PromotionRemaining(now))
}

func TestPromotionFlagOff(t *testing.T) {
	now := time.Now()
	l := promotedUntil(now.Add(time.Hour))
	l.Promoted = false

	assert.False(t, l.IsPromoted(now))
	assert.Nil(t, l.PromotionRemaining(now))
	assert.False(t, l.PromotionExpired(now))
}

func TestCoverImage(t *testing.T) {
	assert.Equal(t, "", (&Listing{}).CoverImage())
	assert.Equal(t, "a.jpg", (&Listing{Images: []string{"a.jpg", "b.jpg"}}).CoverImage())
}
