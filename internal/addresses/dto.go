package address

import (
	"time"

	"github.com/google/uuid"

	"github.com/kiranakart/backend/pkg/db/models"
)

// Input is the validated payload to create or replace an address.
type Input struct {
	AddressName string `json:"address_name" validate:"required,min=1,max=60"`
	HouseNo     string `json:"house_no" validate:"omitempty,max=60"`
	Street      string `json:"street" validate:"omitempty,max=120"`
	Locality    string `json:"locality" validate:"omitempty,max=120"`
	Area        string `json:"area" validate:"omitempty,max=120"`
	City        string `json:"city" validate:"required,max=80"`
	State       string `json:"state" validate:"required,max=80"`
	Pincode     string `json:"pincode" validate:"required,len=6,numeric"`
	Country     string `json:"country" validate:"omitempty,max=60"`
	Landmark    string `json:"landmark" validate:"omitempty,max=120"`
	IsDefault   bool   `json:"is_default"`
}

// DTO is the address shape returned to clients.
type DTO struct {
	ID          uuid.UUID `json:"id"`
	AddressName string    `json:"address_name"`
	HouseNo     string    `json:"house_no,omitempty"`
	Street      string    `json:"street,omitempty"`
	Locality    string    `json:"locality,omitempty"`
	Area        string    `json:"area,omitempty"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Pincode     string    `json:"pincode"`
	Country     string    `json:"country"`
	Landmark    *string   `json:"landmark,omitempty"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	IsDefault   bool      `json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
}

func toDTO(addr *models.Address) *DTO {
	return &DTO{
		ID:          addr.ID,
		AddressName: addr.AddressName,
		HouseNo:     addr.HouseNo,
		Street:      addr.Street,
		Locality:    addr.Locality,
		Area:        addr.Area,
		City:        addr.City,
		State:       addr.State,
		Pincode:     addr.Pincode,
		Country:     addr.Country,
		Landmark:    addr.Landmark,
		Latitude:    addr.Latitude,
		Longitude:   addr.Longitude,
		IsDefault:   addr.IsDefault,
		CreatedAt:   addr.CreatedAt,
	}
}
