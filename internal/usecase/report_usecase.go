package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"targ/internal/domain/entity"
	"targ/internal/domain/repository"
	"targ/internal/domain/service"
	"targ/pkg/errors"
	"targ/pkg/logger"
)

const (
	actionFileReport = "file_report"
	maxReportDetails = 1000
)

type ReportUseCase struct {
	reportRepo    repository.ReportRepository
	listingRepo   repository.ListingRepository
	notifications *NotificationUseCase
	publisher     service.EventPublisher
	limiter       RateLimiter
	recorder      Recorder
	now           func() time.Time
}

func NewReportUseCase(
	reportRepo repository.ReportRepository,
	listingRepo repository.ListingRepository,
	notifications *NotificationUseCase,
	publisher service.EventPublisher,
	limiter RateLimiter,
	recorder Recorder,
) *ReportUseCase {
	if limiter == nil {
		limiter = allowAll{}
	}
	return &ReportUseCase{
		reportRepo:    reportRepo,
		listingRepo:   listingRepo,
		notifications: notifications,
		publisher:     publisher,
		limiter:       limiter,
		recorder:      recorderOrNop(recorder),
		now:           time.Now,
	}
}

type FileReportInput struct {
	ReporterID string
	ListingID  string
	Reason     entity.ReportReason
	Details    string
}

// File stores the report and tells the seller about it. The seller notification and the
// moderation event are secondary: their failure is logged and the report still stands.
func (uc *ReportUseCase) File(ctx context.Context, in FileReportInput) (*entity.Report, error) {
	if !in.Reason.Valid() {
		return nil, errors.BadRequest("Unknown report reason", nil)
	}
	details := strings.TrimSpace(in.Details)
	if len([]rune(details)) > maxReportDetails {
		return nil, errors.BadRequest(fmt.Sprintf("Details cannot exceed %d characters", maxReportDetails), nil)
	}

	listing, err := uc.listingRepo.GetByID(ctx, in.ListingID)
	if err != nil {
		return nil, err
	}
	if listing.OwnedBy(in.ReporterID) {
		return nil, errors.BadRequest("You cannot report your own listing", nil)
	}

	if ok, wait := uc.limiter.Allow(in.ReporterID, actionFileReport); !ok {
		return nil, errors.TooManyRequests(fmt.Sprintf("Too many reports, retry in %s", wait.Round(time.Second)))
	}

	report := &entity.Report{
		ListingID:  listing.ID,
		SellerID:   listing.SellerID,
		ReporterID: in.ReporterID,
		Reason:     in.Reason,
		Details:    details,
		Status:     entity.ReportStatusPending,
		CreatedAt:  uc.now(),
	}
	if err := uc.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	uc.recorder.ReportFiled()
	logger.Info("Listing %s reported for %s", listing.ID, report.Reason)

	if uc.notifications != nil {
		err := uc.notifications.Notify(ctx, &entity.Notification{
			UserID:  listing.SellerID,
			Type:    entity.NotificationReport,
			Title:   "Anunț raportat",
			Message: fmt.Sprintf("Anunțul %q a fost raportat și va fi verificat de un moderator.", listing.Title),
			Link:    "/listings/" + listing.ID,
			Metadata: &entity.NotificationMetadata{
				ListingID:    listing.ID,
				ListingTitle: listing.Title,
				ListingImage: listing.CoverImage(),
				ReportID:     report.ID,
			},
		})
		bestEffort(uc.recorder, "report.notify", report.ID, err)
	}

	if uc.publisher != nil {
		err := uc.publisher.Publish(ctx, service.EventListingReported, map[string]interface{}{
			"report_id":  report.ID,
			"listing_id": listing.ID,
			"seller_id":  listing.SellerID,
			"reason":     report.Reason,
		})
		bestEffort(uc.recorder, "report.publish", report.ID, err)
	}

	return report, nil
}

func (uc *ReportUseCase) List(ctx context.Context, status entity.ReportStatus) ([]*entity.Report, error) {
	return uc.reportRepo.List(ctx, status)
}

// Resolve closes a pending report as resolved or dismissed.
func (uc *ReportUseCase) Resolve(ctx context.Context, adminID, id string, status entity.ReportStatus) (*entity.Report, error) {
	if status != entity.ReportStatusResolved && status != entity.ReportStatusDismissed {
		return nil, errors.BadRequest("Status must be resolved or dismissed", nil)
	}

	report, err := uc.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.Status != entity.ReportStatusPending {
		return nil, errors.Conflict("Report is already closed", nil)
	}

	now := uc.now()
	report.Status = status
	report.ResolvedAt = &now
	report.ResolvedBy = adminID
	if err := uc.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}
