package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"targ/internal/domain/entity"
	"targ/internal/domain/repository"
	"targ/internal/domain/service"
	"targ/pkg/errors"
)

const (
	maxMessageLength = 2000

	actionSendMessage       = "send_message"
	actionStartConversation = "start_conversation"
)

type ConversationUseCase struct {
	conversationRepo repository.ConversationRepository
	listingRepo      repository.ListingRepository
	userRepo         repository.UserRepository
	notifications    *NotificationUseCase
	pusher           service.Pusher
	limiter          RateLimiter
	recorder         Recorder
	now              func() time.Time
}

func NewConversationUseCase(
	conversationRepo repository.ConversationRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	notifications *NotificationUseCase,
	pusher service.Pusher,
	limiter RateLimiter,
	recorder Recorder,
) *ConversationUseCase {
	if limiter == nil {
		limiter = allowAll{}
	}
	return &ConversationUseCase{
		conversationRepo: conversationRepo,
		listingRepo:      listingRepo,
		userRepo:         userRepo,
		notifications:    notifications,
		pusher:           pusher,
		limiter:          limiter,
		recorder:         recorderOrNop(recorder),
		now:              time.Now,
	}
}

func cleanMessage(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.BadRequest("Message cannot be empty", nil)
	}
	if utf8.RuneCountInString(text) > maxMessageLength {
		return "", errors.BadRequest(fmt.Sprintf("Message cannot exceed %d characters", maxMessageLength), nil)
	}
	return text, nil
}

func (uc *ConversationUseCase) throttle(userID, action string) error {
	if ok, wait := uc.limiter.Allow(userID, action); !ok {
		return errors.TooManyRequests(fmt.Sprintf("Too many requests, retry in %s", wait.Round(time.Second)))
	}
	return nil
}

func (uc *ConversationUseCase) participant(ctx context.Context, userID string) entity.Participant {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return entity.Participant{DisplayName: "Utilizator"}
	}
	return entity.Participant{DisplayName: user.DisplayName, PhotoURL: user.PhotoURL}
}

// Start opens the conversation between the caller and the seller of a listing, or reuses
// the existing one, and sends the first message.
func (uc *ConversationUseCase) Start(ctx context.Context, userID, listingID, text string) (*entity.Conversation, *entity.Message, error) {
	text, err := cleanMessage(text)
	if err != nil {
		return nil, nil, err
	}

	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, nil, err
	}
	if listing.OwnedBy(userID) {
		return nil, nil, errors.BadRequest("You cannot start a conversation about your own listing", nil)
	}

	id := entity.ConversationID(listing.ID, userID, listing.SellerID)
	conversation, err := uc.conversationRepo.GetByID(ctx, id)
	if err != nil && !errors.IsNotFound(err) {
		return nil, nil, err
	}

	if conversation == nil {
		if err := uc.throttle(userID, actionStartConversation); err != nil {
			return nil, nil, err
		}

		conversation = &entity.Conversation{
			ID:           id,
			Participants: []string{userID, listing.SellerID},
			Profiles: map[string]entity.Participant{
				userID:           uc.participant(ctx, userID),
				listing.SellerID: uc.participant(ctx, listing.SellerID),
			},
			ListingID:    listing.ID,
			ListingTitle: listing.Title,
			ListingImage: listing.CoverImage(),
		}
		err := uc.conversationRepo.Create(ctx, conversation)
		if err != nil && !errors.Is(err, errors.CodeConflict) {
			return nil, nil, err
		}
		if err != nil {
			// Lost a race with the other side opening the same conversation.
			if conversation, err = uc.conversationRepo.GetByID(ctx, id); err != nil {
				return nil, nil, err
			}
		} else if uc.notifications != nil {
			nerr := uc.notifications.Notify(ctx, &entity.Notification{
				UserID:  listing.SellerID,
				Type:    entity.NotificationMessage,
				Title:   "Mesaj nou",
				Message: fmt.Sprintf("%s te-a contactat despre %q", conversation.Profiles[userID].DisplayName, listing.Title),
				Link:    "/conversations/" + conversation.ID,
				Metadata: &entity.NotificationMetadata{
					ListingID:    listing.ID,
					ListingTitle: listing.Title,
					ListingImage: listing.CoverImage(),
				},
			})
			bestEffort(uc.recorder, "conversation.notify", conversation.ID, nerr)
		}
	}

	message, err := uc.deliver(ctx, conversation, userID, text)
	if err != nil {
		return nil, nil, err
	}
	return conversation, message, nil
}

func (uc *ConversationUseCase) Send(ctx context.Context, userID, conversationID, text string) (*entity.Message, error) {
	text, err := cleanMessage(text)
	if err != nil {
		return nil, err
	}

	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant in this conversation", nil)
	}

	return uc.deliver(ctx, conversation, userID, text)
}

func (uc *ConversationUseCase) deliver(ctx context.Context, conversation *entity.Conversation, senderID, text string) (*entity.Message, error) {
	if err := uc.throttle(senderID, actionSendMessage); err != nil {
		return nil, err
	}

	recipientID := conversation.Counterpart(senderID)
	message := &entity.Message{
		ConversationID: conversation.ID,
		SenderID:       senderID,
		Text:           text,
		CreatedAt:      uc.now(),
	}
	if err := uc.conversationRepo.AddMessage(ctx, message, recipientID); err != nil {
		return nil, err
	}
	uc.recorder.MessageSent()

	conversation.LastMessage = text
	conversation.LastSenderID = senderID
	conversation.LastMessageAt = message.CreatedAt
	if conversation.UnreadCount == nil {
		conversation.UnreadCount = make(map[string]int)
	}
	conversation.UnreadCount[recipientID]++

	if uc.pusher != nil && recipientID != "" {
		uc.pusher.Push(recipientID, service.PushMessageNew, message)
	}
	return message, nil
}

func (uc *ConversationUseCase) List(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	return uc.conversationRepo.ListByUser(ctx, userID)
}

func (uc *ConversationUseCase) Get(ctx context.Context, userID, conversationID string) (*entity.Conversation, error) {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant in this conversation", nil)
	}
	return conversation, nil
}

func (uc *ConversationUseCase) Messages(ctx context.Context, userID, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	if _, err := uc.Get(ctx, userID, conversationID); err != nil {
		return nil, 0, err
	}
	return uc.conversationRepo.ListMessages(ctx, conversationID, limit, offset)
}

// MarkRead clears the caller's unread counter and tells the other side.
func (uc *ConversationUseCase) MarkRead(ctx context.Context, userID, conversationID string) error {
	conversation, err := uc.Get(ctx, userID, conversationID)
	if err != nil {
		return err
	}
	if err := uc.conversationRepo.MarkRead(ctx, conversationID, userID); err != nil {
		return err
	}

	if counterpart := conversation.Counterpart(userID); uc.pusher != nil && counterpart != "" {
		uc.pusher.Push(counterpart, service.PushConversationRead, map[string]string{
			"conversation_id": conversationID,
			"reader_id":       userID,
		})
	}
	return nil
}

func (uc *ConversationUseCase) UnreadTotal(ctx context.Context, userID string) (int, error) {
	conversations, err := uc.conversationRepo.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, c := range conversations {
		total += c.UnreadCount[userID]
	}
	return total, nil
}
