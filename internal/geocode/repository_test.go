package geocode

import (
	"context"
	"testing"

	"github.com/kiranakart/backend/pkg/db/models"
)

func TestRepositoryFindByPincodeMissReturnsNil(t *testing.T) {
	repo := NewRepository(openTestDB(t))

	loc, err := repo.FindByPincode(context.Background(), "560001")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if loc != nil {
		t.Fatalf("expected nil on cache miss, got %+v", loc)
	}
}

func TestRepositoryInsertIgnoresDuplicatePincode(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	first := &models.PincodeLocation{Pincode: "560001", Latitude: 12.97, Longitude: 77.59}
	if err := repo.Insert(ctx, first); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// a concurrent resolver racing on the same pincode must not fail
	second := &models.PincodeLocation{Pincode: "560001", Latitude: 99, Longitude: 99}
	if err := repo.Insert(ctx, second); err != nil {
		t.Fatalf("duplicate insert should be ignored: %v", err)
	}

	loc, err := repo.FindByPincode(ctx, "560001")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if loc == nil {
		t.Fatal("expected cached row")
	}
	if loc.Latitude != 12.97 || loc.Longitude != 77.59 {
		t.Fatalf("first writer should win, got %+v", loc)
	}
}
