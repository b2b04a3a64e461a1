package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBillingProfileMissingFields(t *testing.T) {
	personal := BillingProfile{Type: BillingPersonal, Name: "Ana Pop", Email: "ana@example.ro", Address: "Str. Lipscani 1", City: "Slatina"}
	assert.Empty(t, personal.MissingFields())

	business := BillingProfile{Type: BillingBusiness, CompanyName: "Auto Olt SRL", Email: "x@y.ro", Address: "Str. A 2", City: "Slatina"}
	assert.Equal(t, []string{"tax_id", "registration_number"}, business.MissingFields())

	assert.Equal(t, []string{"type"}, (&BillingProfile{}).MissingFields())
}

func TestFindPromotionPlan(t *testing.T) {
	plan, ok := FindPromotionPlan("premium")
	assert.True(t, ok)
	assert.Equal(t, 14, plan.DurationDays)

	_, ok = FindPromotionPlan("gold")
	assert.False(t, ok)
}

func TestConversationID(t *testing.T) {
	assert.Equal(t, ConversationID("l1", "bob", "ana"), ConversationID("l1", "ana", "bob"))
	assert.Equal(t, "l1_ana_bob", ConversationID("l1", "bob", "ana"))

	c := Conversation{Participants: []string{"ana", "bob"}}
	assert.Equal(t, "bob", c.Counterpart("ana"))
	assert.Equal(t, "", c.Counterpart("eve"))
}
