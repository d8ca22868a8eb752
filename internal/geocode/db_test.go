package geocode

import (
	"testing"

	"github.com/kiranakart/backend/pkg/db/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=private"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.PincodeLocation{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return conn
}
