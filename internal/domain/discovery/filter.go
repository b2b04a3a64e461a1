package discovery

import (
	"strings"

	"targ/internal/domain/entity"
)

// Filter holds user-supplied filter values. Zero values mean "match everything" for
// that dimension.
type Filter struct {
	Query       string
	Category    []string
	Subcategory string
	Location    string
	MinPrice    *float64
	MaxPrice    *float64
	Currency    entity.Currency
	Condition   []string
	Negotiable  *bool
}

func (f Filter) IsEmpty() bool {
	return strings.TrimSpace(f.Query) == "" && len(f.Category) == 0 && f.Subcategory == "" &&
		f.Location == "" && f.MinPrice == nil && f.MaxPrice == nil && f.Currency == "" &&
		len(f.Condition) == 0 && f.Negotiable == nil
}

// Apply returns the listings matching every predicate, preserving input order.
func Apply(listings []*entity.Listing, f Filter) []*entity.Listing {
	out := make([]*entity.Listing, 0, len(listings))
	for _, l := range listings {
		if Matches(l, f) {
			out = append(out, l)
		}
	}
	return out
}

func Matches(l *entity.Listing, f Filter) bool {
	return matchText(l, f.Query) &&
		matchCurrency(l, f.Currency) &&
		matchPrice(l, f) &&
		MatchLocation(l.Location, f.Location) &&
		matchCondition(l, f.Condition) &&
		matchCategory(l, f.Category) &&
		matchSubcategory(l, f.Subcategory) &&
		matchNegotiable(l, f.Negotiable)
}

// matchText is an AND of substrings: every whitespace token of the query must occur in
// title, description or location.
func matchText(l *entity.Listing, query string) bool {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return true
	}
	haystack := strings.ToLower(l.Title + " " + l.Description + " " + strings.ReplaceAll(l.Location, ",", " "))
	for _, token := range tokens {
		if !strings.Contains(haystack, token) {
			return false
		}
	}
	return true
}

// matchCurrency excludes listings priced in a currency other than the selected one.
func matchCurrency(l *entity.Listing, currency entity.Currency) bool {
	if currency == "" {
		return true
	}
	return strings.EqualFold(string(l.Currency), string(currency))
}

// matchPrice never compares across currencies: with a currency selected, bounds apply
// only to listings in that currency.
func matchPrice(l *entity.Listing, f Filter) bool {
	if f.Currency != "" && !strings.EqualFold(string(l.Currency), string(f.Currency)) {
		return true
	}
	if f.MinPrice != nil && l.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && l.Price > *f.MaxPrice {
		return false
	}
	return true
}

func normalizeLocation(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func splitLocation(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = normalizeLocation(parts[i])
	}
	return parts
}

// MatchLocation accepts an exact match of the whole "city, county" string or, when both
// sides carry a county, an exact match of the city. Substrings never match, so a county
// alone does not select every city inside it.
func MatchLocation(candidate, search string) bool {
	if strings.TrimSpace(search) == "" {
		return true
	}
	if normalizeLocation(candidate) == normalizeLocation(search) {
		return true
	}
	searchParts := splitLocation(search)
	candidateParts := splitLocation(candidate)
	if len(searchParts) < 2 || len(candidateParts) < 2 {
		return false
	}
	return searchParts[0] != "" && searchParts[0] == candidateParts[0]
}

func matchCondition(l *entity.Listing, conditions []string) bool {
	if len(conditions) == 0 {
		return true
	}
	for _, c := range conditions {
		if strings.EqualFold(strings.TrimSpace(c), strings.TrimSpace(l.Condition)) {
			return true
		}
	}
	return false
}

func matchCategory(l *entity.Listing, categories []string) bool {
	if len(categories) == 0 {
		return true
	}
	stored := CanonicalCategory(l.Category)
	for _, c := range categories {
		if strings.EqualFold(CanonicalCategory(c), stored) {
			return true
		}
	}
	return false
}

func matchSubcategory(l *entity.Listing, subcategory string) bool {
	if subcategory == "" {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(subcategory), strings.TrimSpace(l.Subcategory))
}

func matchNegotiable(l *entity.Listing, negotiable *bool) bool {
	if negotiable == nil {
		return true
	}
	return l.Negotiable == *negotiable
}
