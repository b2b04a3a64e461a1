package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"targ/internal/domain/entity"
	"targ/internal/domain/repository"
	"targ/pkg/errors"
)

type firestoreReportRepository struct {
	client *firestore.Client
}

func NewFirestoreReportRepository(client *firestore.Client) repository.ReportRepository {
	return &firestoreReportRepository{client: client}
}

func (r *firestoreReportRepository) Create(ctx context.Context, report *entity.Report) error {
	if report.ID == "" {
		report.ID = r.client.Collection(reportsCollection).NewDoc().ID
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}

	_, err := r.client.Collection(reportsCollection).Doc(report.ID).Set(ctx, report)
	if err != nil {
		return errors.Internal("Failed to create report", err)
	}
	return nil
}

func (r *firestoreReportRepository) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	doc, err := r.client.Collection(reportsCollection).Doc(id).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("Report", err)
		}
		return nil, errors.Internal("Failed to get report", err)
	}

	var report entity.Report
	if err := doc.DataTo(&report); err != nil {
		return nil, errors.Internal("Failed to parse report data", err)
	}
	return &report, nil
}

func (r *firestoreReportRepository) List(ctx context.Context, status entity.ReportStatus) ([]*entity.Report, error) {
	q := r.client.Collection(reportsCollection).Query
	if status != "" {
		q = q.Where("status", "==", status)
	}

	docs, err := q.OrderBy("createdAt", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list reports", err)
	}

	reports := make([]*entity.Report, 0, len(docs))
	for _, doc := range docs {
		var report entity.Report
		if err := doc.DataTo(&report); err != nil {
			return nil, errors.Internal("Failed to parse report data", err)
		}
		reports = append(reports, &report)
	}
	return reports, nil
}

func (r *firestoreReportRepository) Update(ctx context.Context, report *entity.Report) error {
	_, err := r.client.Collection(reportsCollection).Doc(report.ID).Set(ctx, report)
	if err != nil {
		return errors.Internal("Failed to update report", err)
	}
	return nil
}
