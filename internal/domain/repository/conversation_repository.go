package repository

import (
	"context"

	"targ/internal/domain/entity"
)

type ConversationRepository interface {
	// Create fails with a conflict when the conversation already exists.
	Create(ctx context.Context, conversation *entity.Conversation) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Conversation, error)
	ExistsForListing(ctx context.Context, listingID string) (bool, error)

	// AddMessage stores the message and, in the same batch, updates the conversation's
	// last message and increments the recipient's unread counter.
	AddMessage(ctx context.Context, message *entity.Message, recipientID string) error
	ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error)
	// MarkRead resets the reader's counter and flags messages from the counterpart read.
	MarkRead(ctx context.Context, conversationID, readerID string) error
}
