package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kiranakart/backend/internal/availability"
	"github.com/kiranakart/backend/internal/geocode"
	payment "github.com/kiranakart/backend/internal/payments"
	"github.com/kiranakart/backend/pkg/db/models"
	"github.com/kiranakart/backend/pkg/enums"
	pkgerrors "github.com/kiranakart/backend/pkg/errors"
	"github.com/kiranakart/backend/pkg/logger"
	"github.com/kiranakart/backend/pkg/metrics"
)

// Flat delivery charge below the free-shipping threshold.
var (
	flatShippingFee       = decimal.NewFromInt(40)
	freeShippingThreshold = decimal.NewFromInt(499)
)

// Service is the order placement orchestrator plus the retrieval and admin
// status surface.
type Service interface {
	Place(ctx context.Context, userID uuid.UUID, input PlaceInput) (*DTO, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]DTO, error)
	ListAll(ctx context.Context) ([]DTO, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, input StatusUpdateInput) (*DTO, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartStore interface {
	ListWithProducts(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type availabilityChecker interface {
	Check(ctx context.Context, productIDs []uuid.UUID, lat, lon float64) (*availability.Result, error)
}

type signatureVerifier interface {
	VerifyPayment(ctx context.Context, input payment.VerifyInput) (bool, error)
}

type pincodeResolver interface {
	Resolve(ctx context.Context, pincode, country string) (*geocode.Result, error)
}

type service struct {
	repo     *Repository
	tx       txRunner
	cart     cartStore
	checker  availabilityChecker
	verifier signatureVerifier
	resolver pincodeResolver
	metrics  *metrics.WorkflowMetrics
	logg     *logger.Logger
}

// ServiceParams bundles the dependencies of the orchestrator.
type ServiceParams struct {
	Repo     *Repository
	Tx       txRunner
	Cart     cartStore
	Checker  availabilityChecker
	Verifier signatureVerifier
	Resolver pincodeResolver
	Metrics  *metrics.WorkflowMetrics
	Logger   *logger.Logger
}

// NewService constructs the order service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Cart == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if params.Checker == nil {
		return nil, fmt.Errorf("availability checker required")
	}
	if params.Verifier == nil {
		return nil, fmt.Errorf("payment verifier required")
	}
	if params.Resolver == nil {
		return nil, fmt.Errorf("pincode resolver required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     params.Repo,
		tx:       params.Tx,
		cart:     params.Cart,
		checker:  params.Checker,
		verifier: params.Verifier,
		resolver: params.Resolver,
		metrics:  params.Metrics,
		logg:     params.Logger,
	}, nil
}

// Place runs the placement workflow: resolve the shipping address, check
// deliverability, verify the payment signature for prepaid methods, then
// persist the header and lines in one transaction. The cart is cleared only
// after the commit; a failed clear is logged and swallowed since the order
// already exists.
func (s *service) Place(ctx context.Context, userID uuid.UUID, input PlaceInput) (*DTO, error) {
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}

	snapshot := formatShippingAddress(input.Address)
	if snapshot == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a shipping address is required")
	}

	items, err := s.cart.ListWithProducts(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	lat, lon := input.Address.Latitude, input.Address.Longitude
	if lat == 0 && lon == 0 {
		if input.Address.Pincode == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "coordinates or a pincode are required")
		}
		coords, err := s.resolver.Resolve(ctx, input.Address.Pincode, input.Address.Country)
		if err != nil {
			return nil, err
		}
		lat, lon = coords.Latitude, coords.Longitude
	}

	productIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}
	check, err := s.checker.Check(ctx, productIDs, lat, lon)
	if err != nil {
		return nil, err
	}
	if !check.Deliverable {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "some items cannot be delivered to this address").
			WithDetails(map[string]any{"undeliverable_product_ids": check.UndeliverableProduct})
	}

	if input.PaymentMethod.RequiresVerification() {
		if input.Payment == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment details are required for prepaid orders")
		}
		verified, err := s.verifier.VerifyPayment(ctx, payment.VerifyInput{
			OrderID:   input.Payment.RazorpayOrderID,
			PaymentID: input.Payment.RazorpayPaymentID,
			Signature: input.Payment.RazorpaySignature,
		})
		if err != nil {
			return nil, err
		}
		if !verified {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "payment signature verification failed")
		}
	}

	subtotal := decimal.Zero
	lines := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Product == nil {
			return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart references a missing product")
		}
		subtotal = subtotal.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		lines = append(lines, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.Price,
		})
	}
	shippingFee := flatShippingFee
	if subtotal.GreaterThanOrEqual(freeShippingThreshold) {
		shippingFee = decimal.Zero
	}

	o := &models.Order{
		UserID:          userID,
		Subtotal:        subtotal,
		ShippingFee:     shippingFee,
		Total:           subtotal.Add(shippingFee),
		ShippingAddress: snapshot,
		PaymentMethod:   input.PaymentMethod,
		Status:          enums.OrderStatusPending,
	}
	if input.Payment != nil {
		o.RazorpayOrderID = &input.Payment.RazorpayOrderID
		o.RazorpayPaymentID = &input.Payment.RazorpayPaymentID
		o.RazorpaySignature = &input.Payment.RazorpaySignature
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.CreateOrder(ctx, o); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
		}
		for i := range lines {
			lines[i].OrderID = o.ID
		}
		if err := txRepo.CreateItems(ctx, lines); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order items")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	o.Items = lines

	if err := s.cart.Clear(ctx, userID); err != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{"order_id": o.ID.String(), "error": err.Error()})
		s.logg.Warn(ctx, "failed to clear cart after order placement")
	}
	s.metrics.OrderPlaced(input.PaymentMethod.String())

	return toDTO(o), nil
}

// ListByUser returns the user's order history, newest first.
func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]DTO, error) {
	orders, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	return toDTOs(orders), nil
}

// ListAll returns every order for the admin console.
func (s *service) ListAll(ctx context.Context) ([]DTO, error) {
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	return toDTOs(orders), nil
}

// UpdateStatus applies an admin lifecycle transition.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, input StatusUpdateInput) (*DTO, error) {
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	var notes *string
	if input.AdminNotes != "" {
		notes = &input.AdminNotes
	}
	rows, err := s.repo.UpdateStatus(ctx, orderID, input.Status, notes)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order status")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	return toDTO(o), nil
}

func toDTOs(orders []models.Order) []DTO {
	out := make([]DTO, 0, len(orders))
	for i := range orders {
		out = append(out, *toDTO(&orders[i]))
	}
	return out
}
