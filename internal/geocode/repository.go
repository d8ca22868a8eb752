package geocode

import (
	"context"
	"errors"

	"github.com/kiranakart/backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists cached pincode coordinates.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByPincode loads the cached coordinate for the pincode. A miss returns
// (nil, nil), not an error.
func (r *Repository) FindByPincode(ctx context.Context, pincode string) (*models.PincodeLocation, error) {
	var loc models.PincodeLocation
	err := r.db.WithContext(ctx).First(&loc, "pincode = ?", pincode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// Insert stores a resolved coordinate. Concurrent resolvers may race on the
// same pincode; the conflicting insert is silently dropped so the first
// writer wins.
func (r *Repository) Insert(ctx context.Context, loc *models.PincodeLocation) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pincode"}},
			DoNothing: true,
		}).
		Create(loc).Error
}
