package payments

import (
	"context"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/paymentintent"

	pkgstripe "github.com/freshkart/freshkart-backend/pkg/stripe"
)

type stripeProvider struct{}

// NewStripeProvider wraps the initialized Stripe client as a Provider.
func NewStripeProvider(api *pkgstripe.Client) Provider {
	if api == nil {
		return nil
	}
	return &stripeProvider{}
}

func (p *stripeProvider) CreateIntent(ctx context.Context, params CreateProviderIntentParams) (*ProviderIntent, error) {
	req := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(params.AmountMinor),
		Currency:    stripe.String(params.Currency),
		Description: stripe.String(params.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	req.Context = ctx
	for key, value := range params.Metadata {
		req.AddMetadata(key, value)
	}

	intent, err := paymentintent.New(req)
	if err != nil {
		return nil, err
	}
	return fromStripeIntent(intent), nil
}

func (p *stripeProvider) RetrieveIntent(ctx context.Context, id string) (*ProviderIntent, error) {
	req := &stripe.PaymentIntentParams{}
	req.Context = ctx

	intent, err := paymentintent.Get(id, req)
	if err != nil {
		return nil, err
	}
	return fromStripeIntent(intent), nil
}

func fromStripeIntent(intent *stripe.PaymentIntent) *ProviderIntent {
	if intent == nil {
		return nil
	}
	return &ProviderIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       string(intent.Status),
		AmountMinor:  intent.Amount,
		Currency:     string(intent.Currency),
	}
}
