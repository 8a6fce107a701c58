package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/freshkart/freshkart-backend/api/middleware"
	"github.com/freshkart/freshkart-backend/api/responses"
	"github.com/freshkart/freshkart-backend/api/validators"
	"github.com/freshkart/freshkart-backend/internal/payments"
	"github.com/freshkart/freshkart-backend/pkg/errors"
	"github.com/freshkart/freshkart-backend/pkg/logger"
)

type paymentService interface {
	CreateIntent(ctx context.Context, input payments.CreateIntentInput) (*payments.IntentResult, error)
	ConfirmPayment(ctx context.Context, paymentIntentID string) (*payments.Confirmation, error)
	GetIntent(ctx context.Context, paymentIntentID string) (*payments.IntentStatus, error)
}

type createIntentRequest struct {
	Amount         decimal.Decimal          `json:"amount"`
	Currency       string                   `json:"currency" validate:"omitempty,len=3"`
	Description    string                   `json:"description" validate:"omitempty,max=1000"`
	Metadata       map[string]string        `json:"metadata"`
	BillingDetails *payments.BillingDetails `json:"billingDetails"`
}

type confirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
}

// PaymentCreateIntent provisions a payment intent for the authenticated shopper.
func PaymentCreateIntent(svc paymentService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeInternal, "payment service unavailable"))
			return
		}

		var body createIntentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CreateIntent(r.Context(), payments.CreateIntentInput{
			Amount:         body.Amount,
			Currency:       body.Currency,
			Description:    body.Description,
			Metadata:       body.Metadata,
			BillingDetails: body.BillingDetails,
			UserID:         middleware.UserIDFromContext(r.Context()),
			UserEmail:      middleware.UserEmailFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// PaymentConfirm verifies a payment intent reached the succeeded state.
func PaymentConfirm(svc paymentService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeInternal, "payment service unavailable"))
			return
		}

		var body confirmPaymentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		confirmation, err := svc.ConfirmPayment(r.Context(), body.PaymentIntentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, confirmation)
	}
}

// PaymentGetIntent reports the provider-side status of an intent.
func PaymentGetIntent(svc paymentService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeInternal, "payment service unavailable"))
			return
		}

		status, err := svc.GetIntent(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, status)
	}
}
