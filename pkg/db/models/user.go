package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kiranakart/backend/pkg/enums"
)

// User represents the canonical business identity.
type User struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	Name         string             `gorm:"column:name;not null"`
	Email        string             `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string             `gorm:"column:password_hash;not null"`
	Phone        *string            `gorm:"column:phone"`
	Role         enums.UserRole     `gorm:"column:role;not null;default:'business'"`
	BusinessType enums.BusinessType `gorm:"column:business_type;not null;default:'retailer'"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
