package entity

import "time"

type ReportReason string

const (
	ReportReasonFraud         ReportReason = "fraud"
	ReportReasonSpam          ReportReason = "spam"
	ReportReasonProhibited    ReportReason = "prohibited"
	ReportReasonWrongCategory ReportReason = "wrong_category"
	ReportReasonOffensive     ReportReason = "offensive"
	ReportReasonOther         ReportReason = "other"
)

func (r ReportReason) Valid() bool {
	switch r {
	case ReportReasonFraud, ReportReasonSpam, ReportReasonProhibited,
		ReportReasonWrongCategory, ReportReasonOffensive, ReportReasonOther:
		return true
	}
	return false
}

type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

type Report struct {
	ID         string       `json:"id" firestore:"id"`
	ListingID  string       `json:"listing_id" firestore:"listingId"`
	SellerID   string       `json:"seller_id" firestore:"sellerId"`
	ReporterID string       `json:"reporter_id" firestore:"reporterId"`
	Reason     ReportReason `json:"reason" firestore:"reason"`
	Details    string       `json:"details,omitempty" firestore:"details,omitempty"`
	Status     ReportStatus `json:"status" firestore:"status"`
	CreatedAt  time.Time    `json:"created_at" firestore:"createdAt"`
	ResolvedAt *time.Time   `json:"resolved_at,omitempty" firestore:"resolvedAt,omitempty"`
	ResolvedBy string       `json:"resolved_by,omitempty" firestore:"resolvedBy,omitempty"`
}
