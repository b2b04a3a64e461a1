package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"targ/internal/domain/entity"
	"targ/internal/domain/repository"
	"targ/pkg/errors"
	"targ/pkg/logger"
)

type firestoreConversationRepository struct {
	client *firestore.Client
}

func NewFirestoreConversationRepository(client *firestore.Client) repository.ConversationRepository {
	return &firestoreConversationRepository{
		client: client,
	}
}

func (r *firestoreConversationRepository) conversations() *firestore.CollectionRef {
	return r.client.Collection(conversationsCollection)
}

func (r *firestoreConversationRepository) messages(conversationID string) *firestore.CollectionRef {
	return r.conversations().Doc(conversationID).Collection(messagesCollection)
}

func (r *firestoreConversationRepository) Create(ctx context.Context, conversation *entity.Conversation) error {
	now := time.Now()
	conversation.CreatedAt = now
	conversation.UpdatedAt = now
	if conversation.LastMessageAt.IsZero() {
		conversation.LastMessageAt = now
	}
	if conversation.UnreadCount == nil {
		conversation.UnreadCount = make(map[string]int, len(conversation.Participants))
		for _, p := range conversation.Participants {
			conversation.UnreadCount[p] = 0
		}
	}

	_, err := r.conversations().Doc(conversation.ID).Create(ctx, conversation)
	if err != nil {
		if isAlreadyExists(err) {
			return errors.Conflict("Conversation already exists", err)
		}
		return errors.Internal("Failed to create conversation", err)
	}
	return nil
}

func (r *firestoreConversationRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	doc, err := r.conversations().Doc(id).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("Conversation", err)
		}
		return nil, errors.Internal("Failed to get conversation", err)
	}

	var conversation entity.Conversation
	if err := doc.DataTo(&conversation); err != nil {
		return nil, errors.Internal("Failed to parse conversation data", err)
	}
	return &conversation, nil
}

func (r *firestoreConversationRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	iter := r.conversations().
		Where("participants", "array-contains", userID).
		OrderBy("lastMessageAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var conversations []*entity.Conversation
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list conversations", err)
		}

		var conversation entity.Conversation
		if err := doc.DataTo(&conversation); err != nil {
			logger.Warn("Skipping malformed conversation %s: %v", doc.Ref.ID, err)
			continue
		}
		conversations = append(conversations, &conversation)
	}

	return conversations, nil
}

func (r *firestoreConversationRepository) ExistsForListing(ctx context.Context, listingID string) (bool, error) {
	docs, err := r.conversations().Where("listingId", "==", listingID).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return false, errors.Internal("Failed to check conversations for listing", err)
	}
	return len(docs) > 0, nil
}

func (r *firestoreConversationRepository) AddMessage(ctx context.Context, message *entity.Message, recipientID string) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	conversationRef := r.conversations().Doc(message.ConversationID)
	messageRef := r.messages(message.ConversationID).Doc(message.ID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(messageRef, message); err != nil {
			return err
		}
		return tx.Update(conversationRef, []firestore.Update{
			{Path: "lastMessage", Value: message.Text},
			{Path: "lastSenderId", Value: message.SenderID},
			{Path: "lastMessageAt", Value: message.CreatedAt},
			{Path: "updatedAt", Value: message.CreatedAt},
			{FieldPath: firestore.FieldPath{"unreadCount", recipientID}, Value: firestore.Increment(1)},
		})
	})
	if err != nil {
		if IsNotFound(err) {
			return errors.NotFound("Conversation", err)
		}
		return errors.Internal("Failed to send message", err)
	}
	return nil
}

func (r *firestoreConversationRepository) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	docs, err := r.messages(conversationID).OrderBy("createdAt", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list messages", err)
	}

	start, end := pageBounds(len(docs), limit, offset)
	messages := make([]*entity.Message, 0, end-start)
	for _, doc := range docs[start:end] {
		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, 0, errors.Internal("Failed to parse message data", err)
		}
		messages = append(messages, &message)
	}

	return messages, int64(len(docs)), nil
}

func (r *firestoreConversationRepository) MarkRead(ctx context.Context, conversationID, readerID string) error {
	conversationRef := r.conversations().Doc(conversationID)
	unread := r.messages(conversationID).Where("read", "==", false)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docs, err := tx.Documents(unread).GetAll()
		if err != nil {
			return err
		}

		for _, doc := range docs {
			senderID, _ := doc.Data()["senderId"].(string)
			if senderID == readerID {
				continue
			}
			if err := tx.Update(doc.Ref, []firestore.Update{{Path: "read", Value: true}}); err != nil {
				return err
			}
		}

		return tx.Update(conversationRef, []firestore.Update{
			{FieldPath: firestore.FieldPath{"unreadCount", readerID}, Value: 0},
		})
	})
	if err != nil {
		if IsNotFound(err) {
			return errors.NotFound("Conversation", err)
		}
		return errors.Internal("Failed to mark conversation read", err)
	}
	return nil
}
