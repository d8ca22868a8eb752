package availability

import (
	"context"
	"testing"

	"github.com/kiranakart/backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=private"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Product{}, &models.Warehouse{}, &models.ProductWarehouse{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return conn
}

func TestFindStockedWarehousesJoinsCoordinates(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	warehouse := &models.Warehouse{Name: "blr-central", Address: "1 Main Rd", Pincode: "560001", Latitude: 12.97, Longitude: 77.59}
	if err := conn.Create(warehouse).Error; err != nil {
		t.Fatalf("create warehouse: %v", err)
	}
	stocked := uuid.New()
	unstocked := uuid.New()
	if err := conn.Create(&models.ProductWarehouse{ProductID: stocked, WarehouseID: warehouse.ID}).Error; err != nil {
		t.Fatalf("create mapping: %v", err)
	}

	rows, err := repo.FindStockedWarehouses(ctx, []uuid.UUID{stocked, unstocked})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one stocking row, got %d", len(rows))
	}
	if rows[0].ProductID != stocked {
		t.Fatalf("unexpected product %s", rows[0].ProductID)
	}
	if rows[0].Latitude != 12.97 || rows[0].Longitude != 77.59 {
		t.Fatalf("unexpected coordinates %+v", rows[0])
	}
}
