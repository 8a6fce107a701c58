package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
)

// BillingAddress mirrors the server address shape.
type BillingAddress struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// BillingDetails is the payer block sent with create-intent.
type BillingDetails struct {
	Name    string          `json:"name"`
	Email   string          `json:"email,omitempty"`
	Phone   string          `json:"phone,omitempty"`
	Address *BillingAddress `json:"address,omitempty"`
}

// CreateIntentRequest is the create-intent payload.
type CreateIntentRequest struct {
	Amount         decimal.Decimal   `json:"amount"`
	Currency       string            `json:"currency,omitempty"`
	Description    string            `json:"description,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	BillingDetails *BillingDetails   `json:"billingDetails"`
}

// PaymentIntent is the server's create-intent response.
type PaymentIntent struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
	BillingDetails  struct {
		Name    string         `json:"name"`
		Address BillingAddress `json:"address"`
		Email   string         `json:"email"`
		Phone   string         `json:"phone"`
	} `json:"billingDetails"`
}

// Confirmation is the verified-payment response.
type Confirmation struct {
	ID       string          `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Status   string          `json:"status"`
}

// IntentStatus is the read-only intent view.
type IntentStatus struct {
	ID       string          `json:"id"`
	Status   string          `json:"status"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// UserProfile is the authenticated shopper's profile.
type UserProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// Product is a catalog entry as served by the API.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Currency    string `json:"currency"`
	Image       string `json:"image,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	Stock       int    `json:"stock"`
}

// CreatePaymentIntent provisions a payment intent for the current user.
func (c *Client) CreatePaymentIntent(ctx context.Context, req CreateIntentRequest) (*PaymentIntent, error) {
	raw, err := c.Request(ctx, "/api/payment/create-intent", http.MethodPost, req, true)
	if err != nil {
		return nil, err
	}
	return decodeInto[PaymentIntent](raw)
}

// ConfirmPayment verifies the intent reached the succeeded state server-side.
func (c *Client) ConfirmPayment(ctx context.Context, paymentIntentID string) (*Confirmation, error) {
	payload := map[string]string{"paymentIntentId": paymentIntentID}
	raw, err := c.Request(ctx, "/api/payment/confirm", http.MethodPost, payload, true)
	if err != nil {
		return nil, err
	}
	return decodeInto[Confirmation](raw)
}

// GetPaymentIntent fetches the provider-side status of an intent.
func (c *Client) GetPaymentIntent(ctx context.Context, paymentIntentID string) (*IntentStatus, error) {
	raw, err := c.Request(ctx, "/api/payment/intent/"+paymentIntentID, http.MethodGet, nil, true)
	if err != nil {
		return nil, err
	}
	return decodeInto[IntentStatus](raw)
}

// CurrentUser fetches the profile used for checkout prefill.
func (c *Client) CurrentUser(ctx context.Context) (*UserProfile, error) {
	raw, err := c.Request(ctx, "/api/auth/me", http.MethodGet, nil, true)
	if err != nil {
		return nil, err
	}
	return decodeInto[UserProfile](raw)
}

// Products lists the catalog.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	raw, err := c.Request(ctx, "/api/products", http.MethodGet, nil, false)
	if err != nil {
		return nil, err
	}
	var items []Product
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &APIError{Kind: KindMalformedResponse, Message: "malformed JSON response", cause: err}
	}
	return items, nil
}

func decodeInto[T any](raw json.RawMessage) (*T, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &APIError{Kind: KindMalformedResponse, Message: "malformed JSON response", cause: err}
	}
	return &out, nil
}
