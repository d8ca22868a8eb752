package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Warehouse is a fulfillment location. Stock is modeled through
// ProductWarehouse rows rather than a jsonb column so the availability
// checker can collapse the join in one query.
type Warehouse struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null;uniqueIndex"`
	Address   string    `gorm:"column:address;not null"`
	Pincode   string    `gorm:"column:pincode;not null"`
	Latitude  float64   `gorm:"column:latitude;not null"`
	Longitude float64   `gorm:"column:longitude;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (w *Warehouse) BeforeCreate(*gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// ProductWarehouse maps a product to a warehouse stocking it.
type ProductWarehouse struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_product_warehouse"`
	WarehouseID uuid.UUID `gorm:"column:warehouse_id;type:uuid;not null;uniqueIndex:idx_product_warehouse"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (pw *ProductWarehouse) BeforeCreate(*gorm.DB) error {
	if pw.ID == uuid.Nil {
		pw.ID = uuid.New()
	}
	return nil
}
