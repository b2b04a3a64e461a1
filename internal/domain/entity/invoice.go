package entity

import (
	"strings"
	"time"
)

type InvoiceStatus string

const (
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusPaid, InvoiceStatusPending, InvoiceStatusCancelled:
		return true
	}
	return false
}

type BillingType string

const (
	BillingPersonal BillingType = "personal"
	BillingBusiness BillingType = "business"
)

type BillingProfile struct {
	Type    BillingType `json:"type" firestore:"type"`
	Name    string      `json:"name" firestore:"name"`
	Email   string      `json:"email" firestore:"email"`
	Address string      `json:"address" firestore:"address"`
	City    string      `json:"city" firestore:"city"`
	County  string      `json:"county" firestore:"county"`

	CompanyName        string `json:"company_name,omitempty" firestore:"companyName,omitempty"`
	TaxID              string `json:"tax_id,omitempty" firestore:"taxId,omitempty"`
	RegistrationNumber string `json:"registration_number,omitempty" firestore:"registrationNumber,omitempty"`
}

// MissingFields lists the required fields that are blank for the profile type.
func (b *BillingProfile) MissingFields() []string {
	var missing []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}

	switch b.Type {
	case BillingPersonal:
		check("name", b.Name)
	case BillingBusiness:
		check("company_name", b.CompanyName)
		check("tax_id", b.TaxID)
		check("registration_number", b.RegistrationNumber)
	default:
		return []string{"type"}
	}
	check("email", b.Email)
	check("address", b.Address)
	check("city", b.City)
	return missing
}

type InvoiceLineItem struct {
	Description string  `json:"description" firestore:"description"`
	ListingID   string  `json:"listing_id" firestore:"listingId"`
	PlanID      string  `json:"plan_id" firestore:"planId"`
	Quantity    int     `json:"quantity" firestore:"quantity"`
	UnitPrice   float64 `json:"unit_price" firestore:"unitPrice"`
	Amount      float64 `json:"amount" firestore:"amount"`
}

// Invoice is immutable after creation except for Status. ListingID duplicates the line item
// reference so invoices can be queried by listing.
type Invoice struct {
	ID        string            `json:"id" firestore:"id"`
	Number    string            `json:"number" firestore:"number"`
	UserID    string            `json:"user_id" firestore:"userId"`
	ListingID string            `json:"listing_id" firestore:"listingId"`
	Items     []InvoiceLineItem `json:"items" firestore:"items"`
	Currency  Currency          `json:"currency" firestore:"currency"`
	Subtotal  float64           `json:"subtotal" firestore:"subtotal"`
	VATRate   float64           `json:"vat_rate" firestore:"vatRate"`
	VAT       float64           `json:"vat" firestore:"vat"`
	Total     float64           `json:"total" firestore:"total"`
	Status    InvoiceStatus     `json:"status" firestore:"status"`
	Billing   BillingProfile    `json:"billing" firestore:"billing"`
	IssuedAt  time.Time         `json:"issued_at" firestore:"issuedAt"`
	DueAt     time.Time         `json:"due_at" firestore:"dueAt"`
}
