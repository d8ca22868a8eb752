package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kiranakart/backend/pkg/config"
	"github.com/kiranakart/backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "kiranakart-test",
		ExpirationMinutes: 10080,
	}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	token, err := MintSessionToken(cfg, time.Now(), SessionTokenPayload{
		UserID: userID,
		Role:   enums.RoleBusiness,
	})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	claims, err := ParseSessionToken(cfg, token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("user id mismatch: %s", claims.UserID)
	}
	if claims.Role != enums.RoleBusiness {
		t.Fatalf("role mismatch: %s", claims.Role)
	}
	if claims.ID == "" {
		t.Fatal("expected generated jti")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 7*24*time.Hour-time.Minute || ttl > 7*24*time.Hour+time.Minute {
		t.Fatalf("unexpected ttl %s", ttl)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintSessionToken(cfg, time.Now(), SessionTokenPayload{
		UserID: uuid.New(),
		Role:   enums.RoleBusiness,
	})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	other := cfg
	other.Secret = "different"
	if _, err := ParseSessionToken(other, token); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintSessionToken(cfg, time.Now().Add(-8*24*time.Hour), SessionTokenPayload{
		UserID: uuid.New(),
		Role:   enums.RoleBusiness,
	})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if _, err := ParseSessionToken(cfg, token); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestMintRejectsInvalidRole(t *testing.T) {
	cfg := testJWTConfig()
	if _, err := MintSessionToken(cfg, time.Now(), SessionTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRole("root"),
	}); err == nil {
		t.Fatal("expected role validation error")
	}
}
