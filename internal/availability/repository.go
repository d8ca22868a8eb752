package availability

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockedWarehouse is one (product, warehouse coordinate) pair from the
// stocking join.
type StockedWarehouse struct {
	ProductID uuid.UUID
	Latitude  float64
	Longitude float64
}

// Repository reads the product-to-warehouse stocking join.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindStockedWarehouses returns the warehouse coordinates stocking each of
// the given products. Products with no stocking rows are absent from the
// result.
func (r *Repository) FindStockedWarehouses(ctx context.Context, productIDs []uuid.UUID) ([]StockedWarehouse, error) {
	var rows []StockedWarehouse
	err := r.db.WithContext(ctx).
		Table("product_warehouses pw").
		Select("pw.product_id AS product_id, w.latitude AS latitude, w.longitude AS longitude").
		Joins("JOIN warehouses w ON w.id = pw.warehouse_id").
		Where("pw.product_id IN ?", productIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
