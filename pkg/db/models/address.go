package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address is a saved shipping address. AddressName is unique per owner and at
// most one row per owner carries IsDefault (enforced by a partial unique
// index). Coordinates are filled by the geocode resolver before the row is
// persisted; an address without coordinates is never stored.
type Address struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;index;uniqueIndex:idx_addresses_user_name"`
	AddressName string    `gorm:"column:address_name;not null;uniqueIndex:idx_addresses_user_name"`
	HouseNo     string    `gorm:"column:house_no"`
	Street      string    `gorm:"column:street"`
	Locality    string    `gorm:"column:locality"`
	Area        string    `gorm:"column:area"`
	City        string    `gorm:"column:city;not null"`
	State       string    `gorm:"column:state;not null"`
	Pincode     string    `gorm:"column:pincode;not null"`
	Country     string    `gorm:"column:country;not null;default:'India'"`
	Landmark    *string   `gorm:"column:landmark"`
	Latitude    float64   `gorm:"column:latitude;not null"`
	Longitude   float64   `gorm:"column:longitude;not null"`
	IsDefault   bool      `gorm:"column:is_default;not null;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (a *Address) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
