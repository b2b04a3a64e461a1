package repository

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"targ/pkg/errors"
)

const (
	listingsCollection      = "listings"
	favoritesCollection     = "favorites"
	conversationsCollection = "conversations"
	messagesCollection      = "messages"
	notificationsCollection = "notifications"
	invoicesCollection      = "invoices"
	reportsCollection       = "reports"
	reviewsCollection       = "reviews"
	uploadsCollection       = "uploads"
	usersCollection         = "users"
)

func IsNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}

// passThrough keeps AppErrors returned from inside a transaction and wraps anything else.
func passThrough(err error, message string) error {
	if appErr, ok := err.(*errors.AppError); ok {
		return appErr
	}
	return errors.Internal(message, err)
}

// toUpdates converts a field map to firestore updates in a stable order.
func toUpdates(fields map[string]interface{}) []firestore.Update {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	updates := make([]firestore.Update, 0, len(keys))
	for _, k := range keys {
		updates = append(updates, firestore.Update{Path: k, Value: fields[k]})
	}
	return updates
}

// pageBounds clamps an offset/limit window to total. A non-positive limit means no limit.
func pageBounds(total, limit, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		return total, total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return offset, end
}

func countQuery(ctx context.Context, q firestore.Query) (int64, error) {
	result, err := q.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, err
	}
	value, ok := result["all"].(*firestorepb.Value)
	if !ok {
		return 0, nil
	}
	return value.GetIntegerValue(), nil
}
