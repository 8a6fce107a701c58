// Package checkout drives the client-side payment flow as an explicit state
// machine. The payment UI itself is a native concern hidden behind the
// SheetPresenter interface.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/freshkart/freshkart-backend/internal/client/gateway"
	"github.com/freshkart/freshkart-backend/internal/client/state"
	"github.com/freshkart/freshkart-backend/pkg/notify"
)

// State names the checkout phases.
type State string

const (
	StateCollecting         State = "collecting"
	StateValidating         State = "validating"
	StateInitializingIntent State = "initializing_intent"
	StateReady              State = "ready"
	StatePresenting         State = "presenting"
	StateConfirming         State = "confirming"
	StateDone               State = "done"
)

// ErrPaymentNotReady is returned when Pay is invoked and the flow cannot
// reach the Ready state even after re-running initialization.
var ErrPaymentNotReady = errors.New("payment not ready")

// SheetOutcome is what the native payment sheet reported.
type SheetOutcome int

const (
	OutcomeCompleted SheetOutcome = iota
	OutcomeCanceled
	OutcomeFailed
)

// SheetPresenter abstracts the native payment sheet SDK.
type SheetPresenter interface {
	Init(ctx context.Context, clientSecret string, billing gateway.BillingDetails) error
	Present(ctx context.Context) (SheetOutcome, error)
}

// BillingForm is what the shopper filled in.
type BillingForm struct {
	Name       string
	Email      string
	Phone      string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// ValidationError lists the billing fields that are missing or empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing or empty required billing fields: " + strings.Join(e.Missing, ", ")
}

// Result reports a finished checkout. ConfirmationWarning is set when the
// charge succeeded but server-side verification could not complete; that is
// never a payment failure.
type Result struct {
	Order               state.Order
	ConfirmationWarning string
}

type api interface {
	CreatePaymentIntent(ctx context.Context, req gateway.CreateIntentRequest) (*gateway.PaymentIntent, error)
	ConfirmPayment(ctx context.Context, paymentIntentID string) (*gateway.Confirmation, error)
	CurrentUser(ctx context.Context) (*gateway.UserProfile, error)
}

type appState interface {
	Cart() []state.CartItem
	ClearCart() error
	AddOrder(order state.Order) error
	Location() (state.Location, bool)
}

// Orchestrator walks one checkout through the state machine. It is not safe
// for concurrent use; a checkout is a single user flow.
type Orchestrator struct {
	api       api
	store     appState
	presenter SheetPresenter
	notifier  notify.Notifier

	state    State
	form     BillingForm
	intentID string
	secret   string
	total    decimal.Decimal
}

// Params bundles the orchestrator dependencies.
type Params struct {
	API       api
	Store     appState
	Presenter SheetPresenter
	Notifier  notify.Notifier
}

// NewOrchestrator starts a checkout in the Collecting state.
func NewOrchestrator(params Params) (*Orchestrator, error) {
	if params.API == nil {
		return nil, fmt.Errorf("api client is required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("app state is required")
	}
	if params.Presenter == nil {
		return nil, fmt.Errorf("sheet presenter is required")
	}
	return &Orchestrator{
		api:       params.API,
		store:     params.Store,
		presenter: params.Presenter,
		notifier:  params.Notifier,
		state:     StateCollecting,
	}, nil
}

// State returns the current phase.
func (o *Orchestrator) State() State {
	return o.state
}

// Prefill seeds the billing form from the profile endpoint and the saved
// location. Both sources are best-effort; failures leave the form untouched.
func (o *Orchestrator) Prefill(ctx context.Context) {
	if profile, err := o.api.CurrentUser(ctx); err == nil && profile != nil {
		if o.form.Name == "" {
			o.form.Name = profile.Name
		}
		if o.form.Email == "" {
			o.form.Email = profile.Email
		}
		if o.form.Phone == "" {
			o.form.Phone = profile.Phone
		}
	}

	if loc, ok := o.store.Location(); ok {
		parts := state.ParseAddress(loc.Address)
		if o.form.Line1 == "" {
			o.form.Line1 = parts.Line1
		}
		if o.form.City == "" {
			o.form.City = parts.City
		}
		if o.form.State == "" {
			o.form.State = parts.State
		}
	}
}

// SetBilling replaces the billing form and rewinds to Collecting.
func (o *Orchestrator) SetBilling(form BillingForm) {
	o.form = form
	o.state = StateCollecting
	o.intentID = ""
	o.secret = ""
}

// Form returns the current billing form.
func (o *Orchestrator) Form() BillingForm {
	return o.form
}

// Initialize validates the form, creates the payment intent, and primes the
// sheet. Success lands in Ready; any failure rewinds to Collecting.
func (o *Orchestrator) Initialize(ctx context.Context) error {
	o.state = StateValidating
	if err := o.validate(); err != nil {
		o.state = StateCollecting
		return err
	}

	o.state = StateInitializingIntent
	total, err := CartTotal(o.store.Cart())
	if err != nil {
		o.state = StateCollecting
		return fmt.Errorf("computing cart total: %w", err)
	}

	billing := o.billingDetails()
	intent, err := o.api.CreatePaymentIntent(ctx, gateway.CreateIntentRequest{
		Amount:         total,
		Metadata:       orderItemsMetadata(o.store.Cart()),
		BillingDetails: &billing,
	})
	if err != nil {
		o.state = StateCollecting
		return err
	}

	if err := o.presenter.Init(ctx, intent.ClientSecret, billing); err != nil {
		o.state = StateCollecting
		return fmt.Errorf("initializing payment sheet: %w", err)
	}

	o.intentID = intent.PaymentIntentID
	o.secret = intent.ClientSecret
	o.total = total
	o.state = StateReady
	return nil
}

// Pay presents the sheet and settles the outcome. Called before the flow is
// Ready it re-runs initialization synchronously first.
func (o *Orchestrator) Pay(ctx context.Context) (*Result, error) {
	if o.state != StateReady {
		if err := o.Initialize(ctx); err != nil {
			return nil, err
		}
		if o.state != StateReady {
			return nil, ErrPaymentNotReady
		}
	}

	o.state = StatePresenting
	outcome, err := o.presenter.Present(ctx)
	if err != nil && outcome != OutcomeFailed {
		outcome = OutcomeFailed
	}

	switch outcome {
	case OutcomeCanceled:
		// User backed out: no error, nothing recorded.
		o.state = StateReady
		return nil, nil
	case OutcomeFailed:
		o.state = StateReady
		if err == nil {
			err = errors.New("payment failed")
		}
		return nil, err
	}

	return o.settle(ctx)
}

// settle runs after the sheet reported success. The charge has gone through,
// so from here on nothing is ever surfaced as a payment failure.
func (o *Orchestrator) settle(ctx context.Context) (*Result, error) {
	o.state = StateConfirming

	warning := ""
	intentID := o.intentID
	if intentID == "" {
		warning = "payment completed but intent id was missing; order recorded without payment linkage"
	} else if _, err := o.api.ConfirmPayment(ctx, intentID); err != nil {
		warning = fmt.Sprintf("payment completed but confirmation could not be verified: %v", err)
	}

	// Total was computed and validated during initialization; the sheet
	// charged exactly that amount.
	total := o.total

	order := state.Order{
		ID:              state.NewOrderID(),
		Items:           o.store.Cart(),
		Total:           total.StringFixed(2),
		Status:          state.OrderStatusCompleted,
		PaymentIntentID: intentID,
		BillingDetails:  storedBilling(o.billingDetails()),
	}

	if err := o.store.AddOrder(order); err != nil {
		return nil, fmt.Errorf("recording order: %w", err)
	}
	if err := o.store.ClearCart(); err != nil {
		return nil, fmt.Errorf("clearing cart: %w", err)
	}
	if o.notifier != nil {
		_ = o.notifier.Notify(ctx, notify.OrderConfirmed(order.ID, total))
	}

	o.state = StateDone
	return &Result{Order: order, ConfirmationWarning: warning}, nil
}

func (o *Orchestrator) validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"name", o.form.Name},
		{"line1", o.form.Line1},
		{"city", o.form.City},
		{"state", o.form.State},
		{"postal_code", o.form.PostalCode},
	}

	missing := []string{}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

func (o *Orchestrator) billingDetails() gateway.BillingDetails {
	country := strings.TrimSpace(o.form.Country)
	if country == "" {
		country = "IN"
	}
	return gateway.BillingDetails{
		Name:  strings.TrimSpace(o.form.Name),
		Email: strings.TrimSpace(o.form.Email),
		Phone: strings.TrimSpace(o.form.Phone),
		Address: &gateway.BillingAddress{
			Line1:      strings.TrimSpace(o.form.Line1),
			Line2:      strings.TrimSpace(o.form.Line2),
			City:       strings.TrimSpace(o.form.City),
			State:      strings.TrimSpace(o.form.State),
			PostalCode: strings.TrimSpace(o.form.PostalCode),
			Country:    country,
		},
	}
}

func storedBilling(billing gateway.BillingDetails) *state.BillingDetails {
	out := &state.BillingDetails{
		Name:  billing.Name,
		Email: billing.Email,
		Phone: billing.Phone,
	}
	if billing.Address != nil {
		out.Address = &state.BillingAddress{
			Line1:      billing.Address.Line1,
			Line2:      billing.Address.Line2,
			City:       billing.Address.City,
			State:      billing.Address.State,
			PostalCode: billing.Address.PostalCode,
			Country:    billing.Address.Country,
		}
	}
	return out
}

func orderItemsMetadata(items []state.CartItem) map[string]string {
	if len(items) == 0 {
		return nil
	}
	type orderItem struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	}
	list := make([]orderItem, 0, len(items))
	for _, item := range items {
		list = append(list, orderItem{Name: item.Name, Quantity: item.Quantity})
	}
	payload, err := json.Marshal(list)
	if err != nil {
		return nil
	}
	return map[string]string{"orderItems": string(payload)}
}
