package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/kiranakart/backend/api/responses"
	"github.com/kiranakart/backend/api/validators"
	payment "github.com/kiranakart/backend/internal/payments"
	pkgerrors "github.com/kiranakart/backend/pkg/errors"
	"github.com/kiranakart/backend/pkg/logger"
)

type createPaymentOrderRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

type verifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

type verifyPaymentResponse struct {
	Verified bool `json:"verified"`
}

// PaymentCreateOrder opens a provider order for the client payment widget.
func PaymentCreateOrder(svc payment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		var body createPaymentOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.CreateOrder(r.Context(), body.Amount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, session)
	}
}

// PaymentVerify recomputes the callback signature and reports the outcome.
// Both the verify-payment and verify-signature routes share this handler.
func PaymentVerify(svc payment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		var body verifyPaymentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		verified, err := svc.VerifyPayment(r.Context(), payment.VerifyInput{
			OrderID:   body.RazorpayOrderID,
			PaymentID: body.RazorpayPaymentID,
			Signature: body.RazorpaySignature,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, verifyPaymentResponse{Verified: verified})
	}
}
