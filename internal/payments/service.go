package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/freshkart/freshkart-backend/pkg/config"
	pkgerrors "github.com/freshkart/freshkart-backend/pkg/errors"
	"github.com/freshkart/freshkart-backend/pkg/metrics"
)

const succeededStatus = "succeeded"

var hundred = decimal.NewFromInt(100)

var requiredAddressFields = []string{"line1", "city", "state", "postal_code", "country"}

// Service exposes the payment intent lifecycle.
type Service interface {
	CreateIntent(ctx context.Context, input CreateIntentInput) (*IntentResult, error)
	ConfirmPayment(ctx context.Context, paymentIntentID string) (*Confirmation, error)
	GetIntent(ctx context.Context, paymentIntentID string) (*IntentStatus, error)
}

type service struct {
	provider   Provider
	cfg        config.PaymentsConfig
	production bool
	metrics    *metrics.PaymentMetrics
}

// ServiceParams bundles the payment service dependencies. Provider may be nil
// when the processor key is not configured; operations then fail with a
// dependency error instead of crashing the process.
type ServiceParams struct {
	Provider   Provider
	Config     config.PaymentsConfig
	Production bool
	Metrics    *metrics.PaymentMetrics
}

// NewService constructs the payment service.
func NewService(params ServiceParams) Service {
	return &service{
		provider:   params.Provider,
		cfg:        params.Config,
		production: params.Production,
		metrics:    params.Metrics,
	}
}

func (s *service) CreateIntent(ctx context.Context, input CreateIntentInput) (*IntentResult, error) {
	if err := validateCreateIntent(input); err != nil {
		s.metrics.IncFailed("validation")
		return nil, err
	}
	if s.provider == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "payment provider is not configured")
	}

	billing := normalizeBilling(input)
	currency := strings.ToLower(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = s.cfg.DefaultCurrency
	}

	// Paise conversion: round half away from zero, so 199.999 becomes 20000.
	amountMinor := input.Amount.Mul(hundred).Round(0).IntPart()

	description := strings.TrimSpace(input.Description)
	if description == "" {
		description = buildDescription(input.Metadata, input.Amount)
	}

	metadata := map[string]string{
		"userId":      input.UserID,
		"userName":    billing.Name,
		"userAddress": foldAddress(billing.Address),
	}
	for key, value := range input.Metadata {
		metadata[key] = value
	}

	intent, err := s.provider.CreateIntent(ctx, CreateProviderIntentParams{
		AmountMinor: amountMinor,
		Currency:    currency,
		Description: description,
		Metadata:    metadata,
	})
	if err != nil {
		s.metrics.IncFailed("provider")
		return nil, s.providerError(err, "create payment intent")
	}

	s.metrics.IncCreated()
	return &IntentResult{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		BillingDetails:  billing,
	}, nil
}

func (s *service) ConfirmPayment(ctx context.Context, paymentIntentID string) (*Confirmation, error) {
	id := strings.TrimSpace(paymentIntentID)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment intent id is required")
	}
	if s.provider == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "payment provider is not configured")
	}

	intent, err := s.provider.RetrieveIntent(ctx, id)
	if err != nil {
		s.metrics.IncFailed("confirm")
		return nil, s.providerError(err, "retrieve payment intent")
	}

	if intent.Status != succeededStatus {
		s.metrics.IncFailed("status")
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("payment not completed. Status: %s", intent.Status)).
			WithDetails(map[string]any{"status": intent.Status})
	}

	s.metrics.IncConfirmed()
	return &Confirmation{
		ID:       intent.ID,
		Amount:   decimal.NewFromInt(intent.AmountMinor).Div(hundred),
		Currency: intent.Currency,
		Status:   intent.Status,
	}, nil
}

func (s *service) GetIntent(ctx context.Context, paymentIntentID string) (*IntentStatus, error) {
	id := strings.TrimSpace(paymentIntentID)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment intent id is required")
	}
	if s.provider == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "payment provider is not configured")
	}

	intent, err := s.provider.RetrieveIntent(ctx, id)
	if err != nil {
		return nil, s.providerError(err, "retrieve payment intent")
	}

	return &IntentStatus{
		ID:       intent.ID,
		Status:   intent.Status,
		Amount:   decimal.NewFromInt(intent.AmountMinor).Div(hundred),
		Currency: intent.Currency,
	}, nil
}

// validateCreateIntent enforces the INR compliance checks in a fixed order:
// amount, billing presence, name, address presence, then address fields.
func validateCreateIntent(input CreateIntentInput) error {
	if !input.Amount.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid amount. Amount must be greater than 0")
	}
	billing := input.BillingDetails
	if billing == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "billing details are required")
	}
	if strings.TrimSpace(billing.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "billing name is required")
	}
	if billing.Address == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "billing address is required")
	}

	values := map[string]string{
		"line1":       billing.Address.Line1,
		"city":        billing.Address.City,
		"state":       billing.Address.State,
		"postal_code": billing.Address.PostalCode,
		"country":     billing.Address.Country,
	}
	var missing []string
	for _, field := range requiredAddressFields {
		if strings.TrimSpace(values[field]) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("missing or empty required address fields: %s", strings.Join(missing, ", "))).
			WithDetails(map[string]any{"missing_fields": missing})
	}
	return nil
}

func normalizeBilling(input CreateIntentInput) NormalizedBilling {
	billing := input.BillingDetails
	addr := billing.Address

	country := strings.TrimSpace(addr.Country)
	if country == "" {
		country = "IN"
	}
	email := billing.Email
	if email == "" {
		email = input.UserEmail
	}

	return NormalizedBilling{
		Name: billing.Name,
		Address: BillingAddress{
			Line1:      addr.Line1,
			Line2:      addr.Line2,
			City:       addr.City,
			State:      addr.State,
			PostalCode: addr.PostalCode,
			Country:    country,
		},
		Email: email,
		Phone: billing.Phone,
	}
}

// buildDescription derives the mandated payment description from the order
// items metadata, falling back to a generic amount line.
func buildDescription(metadata map[string]string, amount decimal.Decimal) string {
	if raw, ok := metadata["orderItems"]; ok {
		var items []struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal([]byte(raw), &items); err == nil && len(items) > 0 {
			names := make([]string, 0, 3)
			for i, item := range items {
				if i == 3 {
					break
				}
				name := item.Name
				if name == "" {
					name = "Item"
				}
				names = append(names, name)
			}
			joined := strings.Join(names, ", ")
			if len(items) > 3 {
				return fmt.Sprintf("Order: %s and %d more item(s)", joined, len(items)-3)
			}
			return fmt.Sprintf("Order: %s", joined)
		}
	}
	return fmt.Sprintf("Payment for order - ₹%s", amount.StringFixed(2))
}

func foldAddress(addr BillingAddress) string {
	return fmt.Sprintf("%s, %s, %s %s", addr.Line1, addr.City, addr.State, addr.PostalCode)
}

func (s *service) providerError(err error, action string) error {
	wrapped := pkgerrors.Wrap(pkgerrors.CodeProvider, err, "failed to "+action)
	if !s.production {
		return wrapped.WithDetails(map[string]any{"error": err.Error()})
	}
	return wrapped
}
