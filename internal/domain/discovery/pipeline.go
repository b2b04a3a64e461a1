package discovery

import (
	"time"

	"targ/internal/domain/entity"
)

type Query struct {
	Filter   Filter
	Sort     SortOrder
	Page     int
	PageSize int
	View     View
}

// Run filters, sorts, pages and presents listings in that order.
func Run(listings []*entity.Listing, q Query, now time.Time) Page[Card] {
	matched := Apply(listings, q.Filter)
	ordered := Sort(matched, q.Sort)
	page := Paginate(ordered, q.Page, q.PageSize)

	return Page[Card]{
		Items:      Present(page.Items, q.View, now),
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	}
}
