package warehouse

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kiranakart/backend/pkg/db/models"
)

// Repository persists warehouses and their stocking rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the warehouse.
func (r *Repository) Create(ctx context.Context, wh *models.Warehouse) error {
	return r.db.WithContext(ctx).Create(wh).Error
}

// Save persists all fields of an existing warehouse.
func (r *Repository) Save(ctx context.Context, wh *models.Warehouse) error {
	return r.db.WithContext(ctx).Save(wh).Error
}

// FindByID loads one warehouse; (nil, nil) when missing.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	var wh models.Warehouse
	err := r.db.WithContext(ctx).First(&wh, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wh, nil
}

// List returns every warehouse, name-sorted.
func (r *Repository) List(ctx context.Context) ([]models.Warehouse, error) {
	var whs []models.Warehouse
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&whs).Error; err != nil {
		return nil, err
	}
	return whs, nil
}

// Delete removes the warehouse and, through the FK cascade, its stocking
// rows. Reports rows touched.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Warehouse{})
	return res.RowsAffected, res.Error
}

// CreateStocking maps a product into the warehouse.
func (r *Repository) CreateStocking(ctx context.Context, row *models.ProductWarehouse) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// DeleteStocking unmaps a product from the warehouse. Reports rows touched.
func (r *Repository) DeleteStocking(ctx context.Context, productID, warehouseID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		Delete(&models.ProductWarehouse{})
	return res.RowsAffected, res.Error
}

// ListStockedProducts returns the products mapped into the warehouse.
func (r *Repository) ListStockedProducts(ctx context.Context, warehouseID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Table("products p").
		Select("p.*").
		Joins("JOIN product_warehouses pw ON pw.product_id = p.id").
		Where("pw.warehouse_id = ?", warehouseID).
		Order("p.name ASC").
		Scan(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
