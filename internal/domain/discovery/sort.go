package discovery

import (
	"sort"

	"targ/internal/domain/entity"
)

type SortOrder string

const (
	SortRelevant  SortOrder = "relevant"
	SortNewest    SortOrder = "newest"
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
)

func ParseSortOrder(s string) SortOrder {
	switch SortOrder(s) {
	case SortNewest, SortPriceAsc, SortPriceDesc:
		return SortOrder(s)
	}
	return SortRelevant
}

// Sort orders listings. SortRelevant returns the input slice untouched; the other orders
// return a sorted copy. Prices are compared as plain numbers whatever their currency.
func Sort(listings []*entity.Listing, order SortOrder) []*entity.Listing {
	var less func(a, b *entity.Listing) bool
	switch order {
	case SortNewest:
		// Zero PublishedAt is the earliest possible time, so it sorts last.
		less = func(a, b *entity.Listing) bool { return a.PublishedAt.After(b.PublishedAt) }
	case SortPriceAsc:
		less = func(a, b *entity.Listing) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b *entity.Listing) bool { return a.Price > b.Price }
	default:
		return listings
	}

	sorted := make([]*entity.Listing, len(listings))
	copy(sorted, listings)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return sorted
}
