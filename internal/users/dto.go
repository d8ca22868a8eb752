package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/kiranakart/backend/pkg/db/models"
)

// UserDTO is the public shape of a business account. The password hash
// never leaves the persistence layer.
type UserDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone,omitempty"`
	Role         string    `json:"role"`
	BusinessType string    `json:"business_type"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToDTO maps the model onto the public shape.
func ToDTO(user *models.User) *UserDTO {
	return &UserDTO{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Phone:        user.Phone,
		Role:         user.Role.String(),
		BusinessType: user.BusinessType.String(),
		CreatedAt:    user.CreatedAt,
	}
}
