package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kiranakart/backend/pkg/config"
	pkgerrors "github.com/kiranakart/backend/pkg/errors"
	"github.com/kiranakart/backend/pkg/razorpay"
)

const defaultCurrency = "INR"

// Service manages provider-side payment sessions for the checkout flow.
type Service interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal) (*SessionDTO, error)
	VerifyPayment(ctx context.Context, input VerifyInput) (bool, error)
}

// SessionDTO is the provider order handed to the payment widget on the
// client. KeyID is the publishable half of the credential pair.
type SessionDTO struct {
	OrderID     string `json:"order_id"`
	AmountPaise int64  `json:"amount"`
	Currency    string `json:"currency"`
	Receipt     string `json:"receipt"`
	KeyID       string `json:"key_id"`
}

// VerifyInput carries the callback triple returned by the payment widget.
type VerifyInput struct {
	OrderID   string
	PaymentID string
	Signature string
}

type orderCreator interface {
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*razorpay.ProviderOrder, error)
}

type service struct {
	provider orderCreator
	cfg      config.RazorpayConfig
}

// NewService constructs the payment session manager.
func NewService(provider orderCreator, cfg config.RazorpayConfig) (Service, error) {
	if provider == nil {
		return nil, fmt.Errorf("payment provider required")
	}
	return &service{provider: provider, cfg: cfg}, nil
}

// CreateOrder registers a provider order for the rupee amount. The provider
// bills in paise, so the amount is scaled to minor units before the call.
func (s *service) CreateOrder(ctx context.Context, amount decimal.Decimal) (*SessionDTO, error) {
	if !amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be greater than zero")
	}

	paise := amount.Mul(decimal.NewFromInt(100)).IntPart()
	receipt := fmt.Sprintf("rcpt_%s", uuid.NewString())

	order, err := s.provider.CreateOrder(ctx, paise, defaultCurrency, receipt)
	if err != nil {
		return nil, err
	}
	return &SessionDTO{
		OrderID:     order.OrderID,
		AmountPaise: order.AmountPaise,
		Currency:    order.Currency,
		Receipt:     order.Receipt,
		KeyID:       s.cfg.KeyID,
	}, nil
}

// VerifyPayment checks the callback signature. A mismatch is a clean false,
// not an error; callers decide whether that aborts their flow.
func (s *service) VerifyPayment(ctx context.Context, input VerifyInput) (bool, error) {
	if input.OrderID == "" || input.PaymentID == "" || input.Signature == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "order id, payment id and signature are required")
	}
	return razorpay.VerifySignature(input.OrderID, input.PaymentID, input.Signature, s.cfg.KeySecret), nil
}
