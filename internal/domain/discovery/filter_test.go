package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"targ/internal/domain/entity"
)

func ptr[T any](v T) *T { return &v }

func TestTextQueryRequiresEveryToken(t *testing.T) {
	audi := &entity.Listing{Title: "Bara fata audi a5", Location: "Slatina, Olt"}
	bmw := &entity.Listing{Title: "Bara fata bmw", Location: "Slatina, Olt"}

	f := Filter{Query: "bara audi"}
	assert.True(t, Matches(audi, f))
	assert.False(t, Matches(bmw, f))
}

func TestTextQuerySearchesDescriptionAndLocation(t *testing.T) {
	l := &entity.Listing{Title: "Bicicleta", Description: "Cadru aluminiu", Location: "Slatina,Olt"}

	assert.True(t, Matches(l, Filter{Query: "ALUMINIU"}))
	assert.True(t, Matches(l, Filter{Query: "bicicleta olt"}))
	assert.True(t, Matches(l, Filter{Query: "  "}))
	assert.False(t, Matches(l, Filter{Query: "bicicleta carbon"}))
}

func TestCurrencyScopedPriceFilter(t *testing.T) {
	eur := &entity.Listing{Price: 100, Currency: entity.CurrencyEUR}
	ron := &entity.Listing{Price: 100, Currency: entity.CurrencyRON}
	cheapRon := &entity.Listing{Price: 30, Currency: entity.CurrencyRON}

	f := Filter{MinPrice: ptr(50.0), Currency: entity.CurrencyRON}

	// Excluded by the currency, not by comparing 100 EUR against 50 RON.
	assert.False(t, Matches(eur, f))
	assert.True(t, Matches(ron, f))
	assert.False(t, Matches(cheapRon, f))
	assert.True(t, matchPrice(eur, f), "price bounds are not compared across currencies")
}

func TestPriceBoundsWithoutCurrencyApplyToAll(t *testing.T) {
	f := Filter{MinPrice: ptr(50.0), MaxPrice: ptr(200.0)}

	assert.True(t, Matches(&entity.Listing{Price: 50, Currency: entity.CurrencyEUR}, f))
	assert.True(t, Matches(&entity.Listing{Price: 200, Currency: entity.CurrencyRON}, f))
	assert.False(t, Matches(&entity.Listing{Price: 201, Currency: entity.CurrencyRON}, f))
	assert.False(t, Matches(&entity.Listing{Price: 49.99, Currency: entity.CurrencyEUR}, f))
}

func TestMatchLocation(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		search    string
		want      bool
	}{
		{"exact city and county", "Slatina, Olt", "Slatina, Olt", true},
		{"other city same county", "Balș, Olt", "Slatina, Olt", false},
		{"case and spacing", "slatina ,  OLT", "Slatina, Olt", true},
		{"same city different county spelling", "Slatina, jud. Olt", "Slatina, Olt", true},
		{"county only does not match cities", "Slatina, Olt", "Olt", false},
		{"city only does not match by substring", "Slatina, Olt", "Slatina", false},
		{"whole value equal without comma", "Bucuresti", "Bucuresti", true},
		{"no search", "Slatina, Olt", "", true},
		{"partial city", "Slatina, Olt", "Slat, Olt", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchLocation(tt.candidate, tt.search))
		})
	}
}

func TestCategorySynonyms(t *testing.T) {
	l := &entity.Listing{Category: "Auto moto"}

	assert.True(t, Matches(l, Filter{Category: []string{"auto-moto"}}))
	assert.True(t, Matches(l, Filter{Category: []string{"Auto moto"}}))
	assert.True(t, Matches(l, Filter{Category: []string{"imobiliare", "auto-moto"}}))
	assert.False(t, Matches(l, Filter{Category: []string{"imobiliare"}}))
}

func TestConditionIsCaseInsensitiveOr(t *testing.T) {
	l := &entity.Listing{Condition: "Utilizat"}

	assert.True(t, Matches(l, Filter{Condition: []string{"nou", "utilizat"}}))
	assert.False(t, Matches(l, Filter{Condition: []string{"nou"}}))
}

func TestSubcategoryAndNegotiable(t *testing.T) {
	l := &entity.Listing{Subcategory: "Autoturisme", Negotiable: true}

	assert.True(t, Matches(l, Filter{Subcategory: "autoturisme", Negotiable: ptr(true)}))
	assert.False(t, Matches(l, Filter{Negotiable: ptr(false)}))
	assert.False(t, Matches(l, Filter{Subcategory: "Motociclete"}))
}

func TestEmptyFilterMatchesEverything(t *testing.T) {
	f := Filter{}
	assert.True(t, f.IsEmpty())
	assert.True(t, Matches(&entity.Listing{}, f))
}

func TestApplyPreservesOrder(t *testing.T) {
	a := &entity.Listing{ID: "a", Title: "audi"}
	b := &entity.Listing{ID: "b", Title: "bmw"}
	c := &entity.Listing{ID: "c", Title: "audi q5"}

	got := Apply([]*entity.Listing{a, b, c}, Filter{Query: "audi"})
	assert.Equal(t, []*entity.Listing{a, c}, got)
}
