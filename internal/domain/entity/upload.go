package entity

import (
	"time"
)

// Upload records an image a user stored in the bucket.
type Upload struct {
	ID          string    `json:"id" firestore:"id"`
	URL         string    `json:"url" firestore:"url"`
	UploadedBy  string    `json:"uploaded_by" firestore:"uploadedBy"`
	ContentType string    `json:"content_type" firestore:"contentType"`
	Size        int64     `json:"size" firestore:"size"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}
