package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"targ/internal/domain/entity"
	"targ/internal/domain/repository"
	"targ/pkg/errors"
)

type firestoreNotificationRepository struct {
	client *firestore.Client
}

func NewFirestoreNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &firestoreNotificationRepository{client: client}
}

func (r *firestoreNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	ref := r.client.Collection(notificationsCollection).NewDoc()
	if notification.ID != "" {
		ref = r.client.Collection(notificationsCollection).Doc(notification.ID)
	}
	notification.ID = ref.ID
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	if _, err := ref.Set(ctx, notification); err != nil {
		return errors.Internal("Failed to create notification", err)
	}
	return nil
}

func (r *firestoreNotificationRepository) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	doc, err := r.client.Collection(notificationsCollection).Doc(id).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("Notification", err)
		}
		return nil, errors.Internal("Failed to get notification", err)
	}

	var notification entity.Notification
	if err := doc.DataTo(&notification); err != nil {
		return nil, errors.Internal("Failed to parse notification data", err)
	}
	return &notification, nil
}

func (r *firestoreNotificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, int64, error) {
	q := r.client.Collection(notificationsCollection).Where("userId", "==", userID)
	if unreadOnly {
		q = q.Where("read", "==", false)
	}

	docs, err := q.OrderBy("createdAt", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list notifications", err)
	}

	start, end := pageBounds(len(docs), limit, offset)
	notifications := make([]*entity.Notification, 0, end-start)
	for _, doc := range docs[start:end] {
		var notification entity.Notification
		if err := doc.DataTo(&notification); err != nil {
			return nil, 0, errors.Internal("Failed to parse notification data", err)
		}
		notifications = append(notifications, &notification)
	}

	return notifications, int64(len(docs)), nil
}

func (r *firestoreNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	q := r.client.Collection(notificationsCollection).Where("userId", "==", userID).Where("read", "==", false)
	count, err := countQuery(ctx, q)
	if err != nil {
		return 0, errors.Internal("Failed to count notifications", err)
	}
	return count, nil
}

func (r *firestoreNotificationRepository) MarkRead(ctx context.Context, id string) error {
	_, err := r.client.Collection(notificationsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "read", Value: true},
	})
	if err != nil {
		if IsNotFound(err) {
			return errors.NotFound("Notification", err)
		}
		return errors.Internal("Failed to mark notification read", err)
	}
	return nil
}

func (r *firestoreNotificationRepository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	docs, err := r.client.Collection(notificationsCollection).
		Where("userId", "==", userID).
		Where("read", "==", false).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to list unread notifications", err)
	}
	if len(docs) == 0 {
		return 0, nil
	}

	bw := r.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(docs))
	for _, doc := range docs {
		job, err := bw.Update(doc.Ref, []firestore.Update{{Path: "read", Value: true}})
		if err != nil {
			bw.End()
			return 0, errors.Internal("Failed to queue notification update", err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	updated := 0
	for _, job := range jobs {
		if _, err := job.Results(); err == nil {
			updated++
		}
	}
	return updated, nil
}

func (r *firestoreNotificationRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(notificationsCollection).Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete notification", err)
	}
	return nil
}
