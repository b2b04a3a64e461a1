package usecase

import (
	"time"

	"targ/pkg/logger"
)

// RateLimiter throttles an action per subject.
type RateLimiter interface {
	Allow(subject, action string) (bool, time.Duration)
}

// Recorder receives business counters.
type Recorder interface {
	FavoriteToggled(favorited bool)
	PromotionPurchased(planID string)
	ReportFiled()
	InvoiceIssued()
	MessageSent()
	BestEffortFailed(step string)
}

// Identity is the caller as asserted by a verified ID token.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}

type nopRecorder struct{}

func (nopRecorder) FavoriteToggled(bool) {}
func (nopRecorder) PromotionPurchased(string) {}
func (nopRecorder) ReportFiled() {}
func (nopRecorder) InvoiceIssued() {}
func (nopRecorder) MessageSent() {}
func (nopRecorder) BestEffortFailed(string) {}

type allowAll struct{}

func (allowAll) Allow(string, string) (bool, time.Duration) { return true, 0 }

func recorderOrNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}

// bestEffort logs and counts a secondary step that failed without failing the caller.
func bestEffort(r Recorder, step, resourceID string, err error) {
	if err == nil {
		return
	}
	logger.LogBestEffort(step, resourceID, err)
	r.BestEffortFailed(step)
}
