package payments

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/freshkart/freshkart-backend/pkg/config"
	pkgerrors "github.com/freshkart/freshkart-backend/pkg/errors"
)

type stubProvider struct {
	createParams *CreateProviderIntentParams
	createResult *ProviderIntent
	createErr    error

	retrieved      []string
	retrieveResult *ProviderIntent
	retrieveErr    error
}

func (s *stubProvider) CreateIntent(ctx context.Context, params CreateProviderIntentParams) (*ProviderIntent, error) {
	s.createParams = &params
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.createResult != nil {
		return s.createResult, nil
	}
	return &ProviderIntent{
		ID:           "pi_test_1",
		ClientSecret: "pi_test_1_secret",
		Status:       "requires_payment_method",
		AmountMinor:  params.AmountMinor,
		Currency:     params.Currency,
	}, nil
}

func (s *stubProvider) RetrieveIntent(ctx context.Context, id string) (*ProviderIntent, error) {
	s.retrieved = append(s.retrieved, id)
	if s.retrieveErr != nil {
		return nil, s.retrieveErr
	}
	return s.retrieveResult, nil
}

var paymentsConfig = config.PaymentsConfig{
	DefaultCurrency: "inr",
	DefaultCountry:  "IN",
	MerchantName:    "FreshKart",
}

func newService(provider Provider) Service {
	return NewService(ServiceParams{
		Provider: provider,
		Config:   paymentsConfig,
	})
}

func validInput() CreateIntentInput {
	return CreateIntentInput{
		Amount:    decimal.RequireFromString("145.00"),
		UserID:    "user-1",
		UserEmail: "shopper@example.com",
		BillingDetails: &BillingDetails{
			Name: "Asha Rao",
			Address: &BillingAddress{
				Line1:      "12 MG Road",
				City:       "Bengaluru",
				State:      "Karnataka",
				PostalCode: "560001",
				Country:    "IN",
			},
		},
	}
}

func TestCreateIntentSucceedsWithValidBilling(t *testing.T) {
	provider := &stubProvider{}
	svc := newService(provider)

	result, err := svc.CreateIntent(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	if result.ClientSecret == "" {
		t.Fatal("expected non-empty client secret")
	}
	if result.PaymentIntentID != "pi_test_1" {
		t.Fatalf("unexpected intent id %q", result.PaymentIntentID)
	}
	if provider.createParams.AmountMinor != 14500 {
		t.Fatalf("expected 14500 paise, got %d", provider.createParams.AmountMinor)
	}
	if provider.createParams.Currency != "inr" {
		t.Fatalf("expected inr, got %q", provider.createParams.Currency)
	}
}

func TestCreateIntentValidationOrder(t *testing.T) {
	svc := newService(&stubProvider{})
	ctx := context.Background()

	cases := []struct {
		name    string
		mutate  func(*CreateIntentInput)
		message string
	}{
		{"zero amount", func(in *CreateIntentInput) { in.Amount = decimal.Zero }, "greater than 0"},
		{"negative amount", func(in *CreateIntentInput) { in.Amount = decimal.NewFromInt(-5) }, "greater than 0"},
		{"missing billing", func(in *CreateIntentInput) { in.BillingDetails = nil }, "billing details are required"},
		{"blank name", func(in *CreateIntentInput) { in.BillingDetails.Name = "   " }, "billing name is required"},
		{"missing address", func(in *CreateIntentInput) { in.BillingDetails.Address = nil }, "billing address is required"},
	}

	for _, tc := range cases {
		input := validInput()
		tc.mutate(&input)
		_, err := svc.CreateIntent(ctx, input)
		if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
		if !strings.Contains(err.Error(), tc.message) {
			t.Fatalf("%s: expected message containing %q, got %v", tc.name, tc.message, err)
		}
	}
}

func TestCreateIntentEnumeratesMissingAddressFields(t *testing.T) {
	svc := newService(&stubProvider{})

	input := validInput()
	input.BillingDetails.Address.City = " "
	input.BillingDetails.Address.PostalCode = ""

	_, err := svc.CreateIntent(context.Background(), input)
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "city, postal_code") {
		t.Fatalf("expected missing fields enumerated in order, got %v", err)
	}
}

func TestCreateIntentRoundsHalfAwayFromZero(t *testing.T) {
	provider := &stubProvider{}
	svc := newService(provider)

	input := validInput()
	input.Amount = decimal.RequireFromString("199.999")

	if _, err := svc.CreateIntent(context.Background(), input); err != nil {
		t.Fatalf("create intent: %v", err)
	}
	if provider.createParams.AmountMinor != 20000 {
		t.Fatalf("expected 20000 paise, got %d", provider.createParams.AmountMinor)
	}
}

func TestCreateIntentDescriptionFromOrderItems(t *testing.T) {
	provider := &stubProvider{}
	svc := newService(provider)

	input := validInput()
	input.Metadata = map[string]string{
		"orderItems": `[{"name":"Red Apple"},{"name":"Milk 1L"},{"name":"Cookies"},{"name":"Jeans"},{"name":"Orange"}]`,
	}

	if _, err := svc.CreateIntent(context.Background(), input); err != nil {
		t.Fatalf("create intent: %v", err)
	}
	want := "Order: Red Apple, Milk 1L, Cookies and 2 more item(s)"
	if provider.createParams.Description != want {
		t.Fatalf("expected %q, got %q", want, provider.createParams.Description)
	}
}

func TestCreateIntentDescriptionShortList(t *testing.T) {
	provider := &stubProvider{}
	svc := newService(provider)

	input := validInput()
	input.Metadata = map[string]string{"orderItems": `[{"name":"Red Apple"},{"name":""}]`}

	if _, err := svc.CreateIntent(context.Background(), input); err != nil {
		t.Fatalf("create intent: %v", err)
	}
	if provider.createParams.Description != "Order: Red Apple, Item" {
		t.Fatalf("unexpected description %q", provider.createParams.Description)
	}
}

func TestCreateIntentDescriptionFallback(t *testing.T) {
	provider := &stubProvider{}
	svc := newService(provider)

	input := validInput()
	input.Metadata = map[string]string{"orderItems": "not-json"}

	if _, err := svc.CreateIntent(context.Background(), input); err != nil {
		t.Fatalf("create intent: %v", err)
	}
	if provider.createParams.Description != "Payment for order - ₹145.00" {
		t.Fatalf("unexpected fallback description %q", provider.createParams.Description)
	}
}

func TestCreateIntentBillingDefaults(t *testing.T) {
	provider := &stubProvider{}
	svc := newService(provider)

	input := validInput()
	input.BillingDetails.Address.Country = ""
	input.BillingDetails.Email = ""

	result, err := svc.CreateIntent(context.Background(), input)
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	if result.BillingDetails.Address.Country != "IN" {
		t.Fatalf("expected country defaulted to IN, got %q", result.BillingDetails.Address.Country)
	}
	if result.BillingDetails.Email != "shopper@example.com" {
		t.Fatalf("expected email fallback to account email, got %q", result.BillingDetails.Email)
	}
	if provider.createParams.Metadata["userAddress"] != "12 MG Road, Bengaluru, Karnataka 560001" {
		t.Fatalf("unexpected folded address %q", provider.createParams.Metadata["userAddress"])
	}
	if provider.createParams.Metadata["userId"] != "user-1" {
		t.Fatalf("expected user id in metadata, got %q", provider.createParams.Metadata["userId"])
	}
}

func TestCreateIntentProviderFailure(t *testing.T) {
	provider := &stubProvider{createErr: errors.New("stripe down")}
	svc := newService(provider)

	_, err := svc.CreateIntent(context.Background(), validInput())
	if !pkgerrors.HasCode(err, pkgerrors.CodeProvider) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestCreateIntentWithoutProvider(t *testing.T) {
	svc := newService(nil)

	_, err := svc.CreateIntent(context.Background(), validInput())
	if !pkgerrors.HasCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestConfirmPaymentRequiresID(t *testing.T) {
	svc := newService(&stubProvider{})

	_, err := svc.ConfirmPayment(context.Background(), "  ")
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestConfirmPaymentRejectsNonSucceeded(t *testing.T) {
	provider := &stubProvider{retrieveResult: &ProviderIntent{
		ID:     "pi_1",
		Status: "requires_payment_method",
	}}
	svc := newService(provider)

	_, err := svc.ConfirmPayment(context.Background(), "pi_1")
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "requires_payment_method") {
		t.Fatalf("expected status echoed, got %v", err)
	}
}

func TestConfirmPaymentSucceeded(t *testing.T) {
	provider := &stubProvider{retrieveResult: &ProviderIntent{
		ID:          "pi_1",
		Status:      "succeeded",
		AmountMinor: 14500,
		Currency:    "inr",
	}}
	svc := newService(provider)

	confirmation, err := svc.ConfirmPayment(context.Background(), "pi_1")
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !confirmation.Amount.Equal(decimal.RequireFromString("145")) {
		t.Fatalf("expected amount 145, got %s", confirmation.Amount)
	}
	if confirmation.Status != "succeeded" {
		t.Fatalf("unexpected status %q", confirmation.Status)
	}
}

func TestGetIntentIsReadOnlyPassThrough(t *testing.T) {
	provider := &stubProvider{retrieveResult: &ProviderIntent{
		ID:          "pi_9",
		Status:      "processing",
		AmountMinor: 9900,
		Currency:    "inr",
	}}
	svc := newService(provider)

	first, err := svc.GetIntent(context.Background(), "pi_9")
	if err != nil {
		t.Fatalf("get intent: %v", err)
	}
	second, err := svc.GetIntent(context.Background(), "pi_9")
	if err != nil {
		t.Fatalf("get intent again: %v", err)
	}
	if first.Status != second.Status || !first.Amount.Equal(second.Amount) || first.Currency != second.Currency {
		t.Fatalf("expected identical reads, got %+v vs %+v", first, second)
	}
	if len(provider.retrieved) != 2 {
		t.Fatalf("expected 2 retrieves, got %d", len(provider.retrieved))
	}
}
