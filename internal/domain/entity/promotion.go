package entity

import "time"

type PromotionPlan struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	DurationDays int      `json:"duration_days"`
	Price        float64  `json:"price"`
	Currency     Currency `json:"currency"`
}

func (p PromotionPlan) Duration() time.Duration {
	return time.Duration(p.DurationDays) * 24 * time.Hour
}

// PromotionPlans is the fixed catalog offered to sellers.
var PromotionPlans = []PromotionPlan{
	{ID: "standard", Name: "Standard", DurationDays: 7, Price: 19, Currency: CurrencyRON},
	{ID: "premium", Name: "Premium", DurationDays: 14, Price: 35, Currency: CurrencyRON},
	{ID: "vip", Name: "VIP", DurationDays: 30, Price: 60, Currency: CurrencyRON},
}

func FindPromotionPlan(id string) (PromotionPlan, bool) {
	for _, p := range PromotionPlans {
		if p.ID == id {
			return p, true
		}
	}
	return PromotionPlan{}, false
}

type PromotionStatus struct {
	ListingID string     `json:"listing_id"`
	Promoted  bool       `json:"promoted"`
	Type      string     `json:"type,omitempty"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	Remaining *Remaining `json:"remaining"`
}

// NewPromotionStatus describes the promotion of l as seen at now. A flag left set past
// its end reads as not promoted.
func NewPromotionStatus(l *Listing, now time.Time) *PromotionStatus {
	s := &PromotionStatus{ListingID: l.ID}
	if l.IsPromoted(now) {
		s.Promoted = true
		s.Type = l.PromotionType
		s.EndsAt = l.PromotionEnd
		s.Remaining = l.PromotionRemaining(now)
	}
	return s
}
