package auth

import (
	"github.com/kiranakart/backend/internal/users"
)

// SignupRequest is the validated signup payload.
type SignupRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=120"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8,max=128"`
	Phone        string `json:"phone" validate:"omitempty,min=7,max=20"`
	BusinessType string `json:"business_type" validate:"omitempty,oneof=retailer wholesaler distributor"`
}

// LoginRequest is the validated login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResult bundles the minted cookie token with the public user shape.
type SessionResult struct {
	Token string         `json:"-"`
	User  *users.UserDTO `json:"user"`
}
