package payments

import "context"

// ProviderIntent is the provider-agnostic view of a payment intent.
type ProviderIntent struct {
	ID           string
	ClientSecret string
	Status       string
	// AmountMinor is in the smallest currency unit (paise for INR).
	AmountMinor int64
	Currency    string
}

// CreateProviderIntentParams carries everything the provider needs to open an
// intent.
type CreateProviderIntentParams struct {
	AmountMinor int64
	Currency    string
	Description string
	Metadata    map[string]string
}

// Provider abstracts the payment processor so the service can be tested
// without network calls.
type Provider interface {
	CreateIntent(ctx context.Context, params CreateProviderIntentParams) (*ProviderIntent, error)
	RetrieveIntent(ctx context.Context, id string) (*ProviderIntent, error)
}
