package entity

import (
	"sort"
	"strings"
	"time"
)

type Participant struct {
	DisplayName string `json:"display_name" firestore:"displayName"`
	PhotoURL    string `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`
}

type Conversation struct {
	ID           string                 `json:"id" firestore:"id"`
	Participants []string               `json:"participants" firestore:"participants"`
	Profiles     map[string]Participant `json:"profiles" firestore:"profiles"`

	ListingID    string `json:"listing_id,omitempty" firestore:"listingId,omitempty"`
	ListingTitle string `json:"listing_title,omitempty" firestore:"listingTitle,omitempty"`
	ListingImage string `json:"listing_image,omitempty" firestore:"listingImage,omitempty"`

	LastMessage   string         `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastSenderID  string         `json:"last_sender_id,omitempty" firestore:"lastSenderId,omitempty"`
	LastMessageAt time.Time      `json:"last_message_at" firestore:"lastMessageAt"`
	UnreadCount   map[string]int `json:"unread_count" firestore:"unreadCount"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// ConversationID is stable for a pair of users talking about one listing, whichever side
// opens it first.
func ConversationID(listingID, userA, userB string) string {
	pair := []string{userA, userB}
	sort.Strings(pair)
	return strings.Join([]string{listingID, pair[0], pair[1]}, "_")
}

func (c *Conversation) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// Counterpart returns the other participant, or "" when userID is not part of it.
func (c *Conversation) Counterpart(userID string) string {
	if !c.HasParticipant(userID) {
		return ""
	}
	for _, p := range c.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}
