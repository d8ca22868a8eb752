package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PincodeLocation caches geocoder results per postal code. Rows are
// append-only: once a pincode resolves, the stored coordinate is never
// updated. Concurrent misses may both attempt the insert; writers use
// insert-or-ignore so the duplicate is benign.
type PincodeLocation struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Pincode   string    `gorm:"column:pincode;not null;uniqueIndex"`
	Latitude  float64   `gorm:"column:latitude;not null"`
	Longitude float64   `gorm:"column:longitude;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (p *PincodeLocation) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
