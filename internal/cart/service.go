package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kiranakart/backend/pkg/db"
	"github.com/kiranakart/backend/pkg/db/models"
	pkgerrors "github.com/kiranakart/backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes cart mutations and reads for the signed-in user.
type Service interface {
	Add(ctx context.Context, userID, productID uuid.UUID, qty int) error
	UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, qty int) error
	Remove(ctx context.Context, userID, itemID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) (*ListDTO, error)
}

type service struct {
	repo     *Repository
	tx       txRunner
	products productLoader
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo *Repository, tx txRunner, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, tx: tx, products: products}, nil
}

// Add merges qty into the user's cart. Adding a product already in the cart
// bumps its quantity instead of creating a second line. The bump and the
// fallback insert run in one transaction so two concurrent adds cannot both
// insert.
func (s *service) Add(ctx context.Context, userID, productID uuid.UUID, qty int) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if pkgerrors.As(err) != nil {
			return err
		}
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		rows, err := txRepo.IncrementQuantity(ctx, userID, productID, qty)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "merging cart line")
		}
		if rows > 0 {
			return nil
		}

		item := &models.CartItem{UserID: userID, ProductID: productID, Quantity: qty}
		if err := txRepo.Insert(ctx, item); err != nil {
			if db.IsUniqueViolation(err, "") {
				// lost the insert race, fold into the winner's line
				if _, err := txRepo.IncrementQuantity(ctx, userID, productID, qty); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "merging cart line")
				}
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating cart line")
		}
		return nil
	})
}

// UpdateQuantity overwrites a line's quantity. Zero or negative quantities
// are rejected; removal is an explicit separate operation.
func (s *service) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, qty int) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	rows, err := s.repo.SetQuantity(ctx, userID, itemID, qty)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating cart line")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return nil
}

// Remove deletes a single line from the user's cart.
func (s *service) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	rows, err := s.repo.Delete(ctx, userID, itemID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "removing cart line")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return nil
}

// Clear empties the user's cart. Clearing an empty cart is a no-op.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Clear(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart")
	}
	return nil
}

// List returns the cart with product details and the running subtotal.
func (s *service) List(ctx context.Context, userID uuid.UUID) (*ListDTO, error) {
	items, err := s.repo.ListWithProducts(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}

	out := &ListDTO{Items: make([]ItemDTO, 0, len(items)), Subtotal: decimal.Zero}
	for _, item := range items {
		dto := toItemDTO(item)
		out.Items = append(out.Items, dto)
		out.Subtotal = out.Subtotal.Add(dto.Price.Mul(decimal.NewFromInt(int64(dto.Quantity))))
	}
	return out, nil
}
