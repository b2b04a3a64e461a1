package discovery

import (
	"time"
	"unicode/utf8"

	"targ/internal/domain/entity"
)

type View string

const (
	ViewGrid View = "grid"
	ViewList View = "list"
)

func ParseView(s string) View {
	if View(s) == ViewList {
		return ViewList
	}
	return ViewGrid
}

const excerptLength = 160

// Card is the presentation shape of one listing. List rows carry the extra fields.
type Card struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Price          float64           `json:"price"`
	Currency       entity.Currency   `json:"currency"`
	FormattedPrice string            `json:"formatted_price"`
	CoverImage     string            `json:"cover_image,omitempty"`
	Location       string            `json:"location"`
	Promoted       bool              `json:"promoted"`
	Remaining      *entity.Remaining `json:"promotion_remaining,omitempty"`

	Excerpt     string     `json:"excerpt,omitempty"`
	Condition   string     `json:"condition,omitempty"`
	Negotiable  *bool      `json:"negotiable,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

func Present(listings []*entity.Listing, view View, now time.Time) []Card {
	cards := make([]Card, 0, len(listings))
	for _, l := range listings {
		card := Card{
			ID:             l.ID,
			Title:          l.Title,
			Price:          l.Price,
			Currency:       l.Currency,
			FormattedPrice: FormatPrice(l.Price, l.Currency),
			CoverImage:     l.CoverImage(),
			Location:       l.Location,
			Promoted:       l.IsPromoted(now),
		}
		if card.Promoted {
			card.Remaining = l.PromotionRemaining(now)
		}
		if view == ViewList {
			negotiable := l.Negotiable
			published := l.PublishedAt
			card.Excerpt = excerpt(l.Description, excerptLength)
			card.Condition = l.Condition
			card.Negotiable = &negotiable
			card.PublishedAt = &published
		}
		cards = append(cards, card)
	}
	return cards
}

func excerpt(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "…"
}
