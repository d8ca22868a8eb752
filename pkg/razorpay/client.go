package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	razorpaysdk "github.com/razorpay/razorpay-go"

	pkgerrors "github.com/kiranakart/backend/pkg/errors"
	"github.com/kiranakart/backend/pkg/config"
)

var errCredentialsRequired = errors.New("razorpay key id and secret are required")

// orderCreator matches the SDK's order resource so tests can substitute it.
type orderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// Client wraps the Razorpay SDK surface used by the payment session manager.
type Client struct {
	orders orderCreator
}

// NewClient builds a provider client from the configured credentials.
func NewClient(cfg config.RazorpayConfig) (*Client, error) {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, errCredentialsRequired
	}
	sdk := razorpaysdk.NewClient(cfg.KeyID, cfg.KeySecret)
	return &Client{orders: sdk.Order}, nil
}

// NewClientWithOrders wires a custom order resource; used by tests.
func NewClientWithOrders(orders orderCreator) *Client {
	return &Client{orders: orders}
}

// ProviderOrder is the provider-side order handed to the payment widget.
type ProviderOrder struct {
	OrderID     string
	AmountPaise int64
	Currency    string
	Receipt     string
}

// CreateOrder registers a provider order for the given amount in minor
// currency units. The SDK call is synchronous; ctx only gates entry.
func (c *Client) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*ProviderOrder, error) {
	if c == nil || c.orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "razorpay client not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment order")
	}
	if amountPaise <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}

	body, err := c.orders.Create(map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment order")
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("missing order id in %v", body), "create payment order")
	}

	return &ProviderOrder{
		OrderID:     orderID,
		AmountPaise: amountPaise,
		Currency:    currency,
		Receipt:     receipt,
	}, nil
}

// VerifySignature recomputes HMAC-SHA256 over "<orderID>|<paymentID>" with the
// shared key secret and compares it to the supplied hex signature in constant
// time. This is the only trust boundary between the untrusted payment
// callback and committing a paid order.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	if orderID == "" || paymentID == "" || signature == "" || secret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
