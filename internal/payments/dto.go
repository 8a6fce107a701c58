package payments

import "github.com/shopspring/decimal"

// BillingAddress mirrors the payment sheet address shape.
type BillingAddress struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// BillingDetails carries the payer identity required for INR processing.
type BillingDetails struct {
	Name    string          `json:"name"`
	Email   string          `json:"email,omitempty"`
	Phone   string          `json:"phone,omitempty"`
	Address *BillingAddress `json:"address,omitempty"`
}

// CreateIntentInput is the validated create-intent payload.
type CreateIntentInput struct {
	Amount         decimal.Decimal
	Currency       string
	Description    string
	Metadata       map[string]string
	BillingDetails *BillingDetails
	UserEmail      string
	UserID         string
}

// NormalizedBilling is the billing block echoed back for sheet initialization,
// with defaults applied.
type NormalizedBilling struct {
	Name    string         `json:"name"`
	Address BillingAddress `json:"address"`
	Email   string         `json:"email"`
	Phone   string         `json:"phone"`
}

// IntentResult is returned from CreateIntent.
type IntentResult struct {
	ClientSecret    string            `json:"clientSecret"`
	PaymentIntentID string            `json:"paymentIntentId"`
	BillingDetails  NormalizedBilling `json:"billingDetails"`
}

// Confirmation reports a verified successful payment.
type Confirmation struct {
	ID       string          `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Status   string          `json:"status"`
}

// IntentStatus is the read-only view returned by GetIntent.
type IntentStatus struct {
	ID       string          `json:"id"`
	Status   string          `json:"status"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}
