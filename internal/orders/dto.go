package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kiranakart/backend/pkg/db/models"
	"github.com/kiranakart/backend/pkg/enums"
)

// ShippingAddressInput carries either structured fields or a pre-formatted
// fallback from reverse geocoding. Coordinates are optional; when absent the
// pincode is resolved.
type ShippingAddressInput struct {
	HouseNo          string  `json:"house_no" validate:"omitempty,max=60"`
	Street           string  `json:"street" validate:"omitempty,max=120"`
	Locality         string  `json:"locality" validate:"omitempty,max=120"`
	Area             string  `json:"area" validate:"omitempty,max=120"`
	City             string  `json:"city" validate:"omitempty,max=80"`
	State            string  `json:"state" validate:"omitempty,max=80"`
	Pincode          string  `json:"pincode" validate:"omitempty,len=6,numeric"`
	Country          string  `json:"country" validate:"omitempty,max=60"`
	Landmark         string  `json:"landmark" validate:"omitempty,max=120"`
	FormattedAddress string  `json:"formatted_address" validate:"omitempty,max=400"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
}

// PaymentDetails is the provider callback triple attached to prepaid orders.
type PaymentDetails struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

// PlaceInput is the validated order placement payload.
type PlaceInput struct {
	Address       ShippingAddressInput `json:"address"`
	PaymentMethod enums.PaymentMethod  `json:"payment_method" validate:"required"`
	Payment       *PaymentDetails      `json:"payment,omitempty"`
}

// StatusUpdateInput mutates the admin-owned order lifecycle fields.
type StatusUpdateInput struct {
	Status     enums.OrderStatus `json:"status" validate:"required"`
	AdminNotes string            `json:"admin_notes" validate:"omitempty,max=500"`
}

// ItemDTO is one order line with its frozen unit price.
type ItemDTO struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// DTO is the order shape returned to clients.
type DTO struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ShippingFee     decimal.Decimal `json:"shipping_fee"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress string          `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	Status          string          `json:"status"`
	AdminNotes      *string         `json:"admin_notes,omitempty"`
	Items           []ItemDTO       `json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
}

func toDTO(o *models.Order) *DTO {
	dto := &DTO{
		ID:              o.ID,
		UserID:          o.UserID,
		Subtotal:        o.Subtotal,
		ShippingFee:     o.ShippingFee,
		Total:           o.Total,
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod.String(),
		Status:          o.Status.String(),
		AdminNotes:      o.AdminNotes,
		Items:           make([]ItemDTO, 0, len(o.Items)),
		CreatedAt:       o.CreatedAt,
	}
	for _, item := range o.Items {
		dto.Items = append(dto.Items, ItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return dto
}
