package product

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kiranakart/backend/pkg/db/models"
	pkgerrors "github.com/kiranakart/backend/pkg/errors"
)

// DTO is the catalog product shape returned to clients.
type DTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Subcategory *string         `json:"subcategory,omitempty"`
	Rating      float64         `json:"rating"`
	ImageURL    *string         `json:"image_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Service exposes catalog reads.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*DTO, error)
	List(ctx context.Context, category string) ([]DTO, error)
}

type service struct {
	repo *Repository
}

// NewService constructs a catalog read service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*DTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	return toDTO(product), nil
}

func (s *service) List(ctx context.Context, category string) ([]DTO, error) {
	products, err := s.repo.List(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}
	out := make([]DTO, 0, len(products))
	for i := range products {
		out = append(out, *toDTO(&products[i]))
	}
	return out, nil
}

func toDTO(product *models.Product) *DTO {
	return &DTO{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Category:    product.Category,
		Subcategory: product.Subcategory,
		Rating:      product.Rating,
		ImageURL:    product.ImageURL,
		CreatedAt:   product.CreatedAt,
	}
}
