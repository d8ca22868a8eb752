package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kiranakart/backend/internal/users"
	pkgauth "github.com/kiranakart/backend/pkg/auth"
	"github.com/kiranakart/backend/pkg/config"
	"github.com/kiranakart/backend/pkg/db/models"
	pkgerrors "github.com/kiranakart/backend/pkg/errors"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "kiranakart",
		ExpirationMinutes: 10080,
		CookieName:        "kk_session",
	}
}

func newTestService(t *testing.T) Service {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=private"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	svc, err := NewService(ServiceParams{
		UserRepo:  users.NewRepository(conn),
		JWTConfig: testJWTConfig(),
		PasswordConfig: config.PasswordConfig{
			ArgonMemoryKB:    8192,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestSignupThenLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	signed, err := svc.Signup(ctx, SignupRequest{
		Name:     "Asha Stores",
		Email:    "Asha@Example.com",
		Password: "correct horse battery",
		Phone:    "9876543210",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if signed.Token == "" {
		t.Fatal("expected session token on signup")
	}
	if signed.User.Email != "asha@example.com" {
		t.Fatalf("expected lowercased email, got %q", signed.User.Email)
	}
	if signed.User.BusinessType != "retailer" {
		t.Fatalf("expected default business type, got %q", signed.User.BusinessType)
	}

	logged, err := svc.Login(ctx, LoginRequest{Email: "asha@example.com", Password: "correct horse battery"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgauth.ParseSessionToken(testJWTConfig(), logged.Token)
	if err != nil {
		t.Fatalf("parse session token: %v", err)
	}
	if claims.UserID != signed.User.ID {
		t.Fatalf("token user mismatch: %s vs %s", claims.UserID, signed.User.ID)
	}
	if until := time.Until(claims.ExpiresAt.Time); until < 6*24*time.Hour {
		t.Fatalf("expected a 7-day session, expires in %s", until)
	}
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	req := SignupRequest{Name: "Asha Stores", Email: "asha@example.com", Password: "correct horse battery"}

	if _, err := svc.Signup(ctx, req); err != nil {
		t.Fatalf("signup: %v", err)
	}

	_, err := svc.Signup(ctx, req)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, SignupRequest{Name: "Asha Stores", Email: "asha@example.com", Password: "correct horse battery"}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	_, err := svc.Login(ctx, LoginRequest{Email: "asha@example.com", Password: "wrong"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownEmailSameMessage(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if typed.Message() != invalidCredentialsMessage {
		t.Fatalf("unknown email must not leak, got %q", typed.Message())
	}
}

func TestSignupRejectsInvalidBusinessType(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Signup(context.Background(), SignupRequest{
		Name:         "Asha Stores",
		Email:        "asha@example.com",
		Password:     "correct horse battery",
		BusinessType: "franchise",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMeUnknownUserNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Me(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
