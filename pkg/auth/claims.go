package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kiranakart/backend/pkg/enums"
)

// SessionTokenPayload captures the data available when minting the cookie JWT.
type SessionTokenPayload struct {
	UserID uuid.UUID
	Role   enums.UserRole
	JTI    string
}

// SessionTokenClaims represents the typed JWT carried in the session cookie.
type SessionTokenClaims struct {
	UserID uuid.UUID      `json:"user_id"`
	Role   enums.UserRole `json:"role"`
	jwt.RegisteredClaims
}
