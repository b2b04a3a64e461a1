package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"targ/internal/domain/entity"
	"targ/internal/domain/repository"
	"targ/pkg/errors"
	"targ/pkg/logger"
)

type firestoreUploadRepository struct {
	client *firestore.Client
}

func NewFirestoreUploadRepository(client *firestore.Client) repository.UploadRepository {
	return &firestoreUploadRepository{
		client: client,
	}
}

func (r *firestoreUploadRepository) Create(ctx context.Context, upload *entity.Upload) error {
	if upload.ID == "" {
		upload.ID = uuid.New().String()
	}
	if upload.CreatedAt.IsZero() {
		upload.CreatedAt = time.Now()
	}

	_, err := r.client.Collection(uploadsCollection).Doc(upload.ID).Set(ctx, upload)
	if err != nil {
		return errors.Internal("Failed to record upload", err)
	}
	return nil
}

func (r *firestoreUploadRepository) ListByUploader(ctx context.Context, userID string, limit, offset int) ([]*entity.Upload, int64, error) {
	query := r.client.Collection(uploadsCollection).Where("uploadedBy", "==", userID)

	total, err := countQuery(ctx, query)
	if err != nil {
		return nil, 0, errors.Internal("Failed to count uploads", err)
	}

	query = query.OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list uploads", err)
	}

	uploads := make([]*entity.Upload, 0, len(docs))
	for _, doc := range docs {
		var upload entity.Upload
		if err := doc.DataTo(&upload); err != nil {
			logger.Error("Failed to parse upload %s: %v", doc.Ref.ID, err)
			continue
		}
		uploads = append(uploads, &upload)
	}

	return uploads, total, nil
}

// DeleteByURL forgets every record of the URL. A URL that was never recorded is not an error.
func (r *firestoreUploadRepository) DeleteByURL(ctx context.Context, url string) error {
	docs, err := r.client.Collection(uploadsCollection).Where("url", "==", url).Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to query uploads", err)
	}

	for _, doc := range docs {
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return errors.Internal("Failed to delete upload record", err)
		}
	}
	return nil
}
