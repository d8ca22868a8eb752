package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kiranakart/backend/pkg/db/models"
)

// ItemDTO is one flattened cart line returned to clients.
type ItemDTO struct {
	CartItemID  uuid.UUID       `json:"cart_item_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Subcategory *string         `json:"subcategory,omitempty"`
	ImageURL    *string         `json:"image_url,omitempty"`
	Quantity    int             `json:"quantity"`
	AddedAt     time.Time       `json:"added_at"`
}

// ListDTO is the full cart payload with the precomputed subtotal.
type ListDTO struct {
	Items    []ItemDTO       `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

func toItemDTO(item models.CartItem) ItemDTO {
	dto := ItemDTO{
		CartItemID: item.ID,
		ProductID:  item.ProductID,
		Quantity:   item.Quantity,
		AddedAt:    item.AddedAt,
	}
	if item.Product != nil {
		dto.Name = item.Product.Name
		dto.Price = item.Product.Price
		dto.Category = item.Product.Category
		dto.Subcategory = item.Product.Subcategory
		dto.ImageURL = item.Product.ImageURL
	}
	return dto
}
