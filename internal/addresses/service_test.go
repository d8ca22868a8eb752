package address

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kiranakart/backend/internal/geocode"
	"github.com/kiranakart/backend/pkg/db"
	"github.com/kiranakart/backend/pkg/db/models"
	pkgerrors "github.com/kiranakart/backend/pkg/errors"
)

type stubResolver struct {
	resolveFn func(ctx context.Context, pincode, country string) (*geocode.Result, error)
	calls     int
}

func (s *stubResolver) Resolve(ctx context.Context, pincode, country string) (*geocode.Result, error) {
	s.calls++
	if s.resolveFn != nil {
		return s.resolveFn(ctx, pincode, country)
	}
	return &geocode.Result{Latitude: 12.97, Longitude: 77.59}, nil
}

func newTestService(t *testing.T, resolver *stubResolver) (Service, *gorm.DB) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=private"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Address{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	svc, err := NewService(NewRepository(conn), db.NewFromConn(conn), resolver)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, conn
}

func validInput(name string) Input {
	return Input{
		AddressName: name,
		HouseNo:     "12",
		Street:      "MG Road",
		City:        "Bengaluru",
		State:       "Karnataka",
		Pincode:     "560001",
	}
}

func countDefaults(t *testing.T, conn *gorm.DB, userID uuid.UUID) int64 {
	t.Helper()
	var count int64
	if err := conn.Model(&models.Address{}).Where("user_id = ? AND is_default", userID).Count(&count).Error; err != nil {
		t.Fatalf("count defaults: %v", err)
	}
	return count
}

func TestCreateFirstAddressBecomesDefault(t *testing.T) {
	resolver := &stubResolver{}
	svc, _ := newTestService(t, resolver)
	userID := uuid.New()

	dto, err := svc.Create(context.Background(), userID, validInput("home"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !dto.IsDefault {
		t.Fatal("first address must become the default")
	}
	if dto.Latitude != 12.97 || dto.Longitude != 77.59 {
		t.Fatalf("expected geocoded coordinates, got %+v", dto)
	}
	if dto.Country != "India" {
		t.Fatalf("expected country fallback, got %q", dto.Country)
	}
}

func TestCreateDuplicateNameConflicts(t *testing.T) {
	svc, _ := newTestService(t, &stubResolver{})
	userID := uuid.New()
	ctx := context.Background()

	if _, err := svc.Create(ctx, userID, validInput("home")); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.Create(ctx, userID, validInput("home"))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateDuplicateNameSkipsGeocoder(t *testing.T) {
	resolver := &stubResolver{}
	svc, _ := newTestService(t, resolver)
	userID := uuid.New()
	ctx := context.Background()

	if _, err := svc.Create(ctx, userID, validInput("home")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, userID, validInput("home")); err == nil {
		t.Fatal("expected conflict")
	}
	if resolver.calls != 1 {
		t.Fatalf("duplicate label must be rejected before resolving, got %d calls", resolver.calls)
	}
}

func TestCreateSameNameDifferentUsersAllowed(t *testing.T) {
	svc, _ := newTestService(t, &stubResolver{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, uuid.New(), validInput("home")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, uuid.New(), validInput("home")); err != nil {
		t.Fatalf("second user create: %v", err)
	}
}

func TestSwitchingDefaultKeepsExactlyOne(t *testing.T) {
	svc, conn := newTestService(t, &stubResolver{})
	userID := uuid.New()
	ctx := context.Background()

	if _, err := svc.Create(ctx, userID, validInput("home")); err != nil {
		t.Fatalf("create home: %v", err)
	}
	office := validInput("office")
	office.IsDefault = true
	officeDTO, err := svc.Create(ctx, userID, office)
	if err != nil {
		t.Fatalf("create office: %v", err)
	}

	if got := countDefaults(t, conn, userID); got != 1 {
		t.Fatalf("expected exactly one default, got %d", got)
	}

	list, err := svc.List(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list[0].ID != officeDTO.ID || !list[0].IsDefault {
		t.Fatalf("expected office first as default, got %+v", list[0])
	}
}

func TestCreateAbortsWhenGeocodingFails(t *testing.T) {
	resolver := &stubResolver{
		resolveFn: func(context.Context, string, string) (*geocode.Result, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no coordinates found for pincode")
		},
	}
	svc, conn := newTestService(t, resolver)
	userID := uuid.New()

	_, err := svc.Create(context.Background(), userID, validInput("home"))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	var count int64
	conn.Model(&models.Address{}).Where("user_id = ?", userID).Count(&count)
	if count != 0 {
		t.Fatal("unresolvable address must not be stored")
	}
}

func TestUpdateReResolvesOnlyWhenPincodeChanges(t *testing.T) {
	resolver := &stubResolver{}
	svc, _ := newTestService(t, resolver)
	userID := uuid.New()
	ctx := context.Background()

	dto, err := svc.Create(ctx, userID, validInput("home"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resolver.calls != 1 {
		t.Fatalf("expected one resolve on create, got %d", resolver.calls)
	}

	renamed := validInput("home sweet home")
	if _, err := svc.Update(ctx, userID, dto.ID, renamed); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if resolver.calls != 1 {
		t.Fatalf("rename must not re-geocode, got %d calls", resolver.calls)
	}

	moved := validInput("home sweet home")
	moved.Pincode = "110001"
	updated, err := svc.Update(ctx, userID, dto.ID, moved)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if resolver.calls != 2 {
		t.Fatalf("pincode change must re-geocode, got %d calls", resolver.calls)
	}
	if updated.Pincode != "110001" {
		t.Fatalf("expected new pincode, got %q", updated.Pincode)
	}
}

func TestUpdateKeepsDefaultFlag(t *testing.T) {
	svc, conn := newTestService(t, &stubResolver{})
	userID := uuid.New()
	ctx := context.Background()

	dto, err := svc.Create(ctx, userID, validInput("home"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	edit := validInput("home")
	edit.IsDefault = false
	updated, err := svc.Update(ctx, userID, dto.ID, edit)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.IsDefault {
		t.Fatal("editing the only default must not demote it")
	}
	if got := countDefaults(t, conn, userID); got != 1 {
		t.Fatalf("expected one default, got %d", got)
	}
}

func TestUpdateForeignAddressNotFound(t *testing.T) {
	svc, _ := newTestService(t, &stubResolver{})
	ctx := context.Background()

	dto, err := svc.Create(ctx, uuid.New(), validInput("home"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Update(ctx, uuid.New(), dto.ID, validInput("hijack"))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign address, got %v", err)
	}
}

func TestDeleteAddress(t *testing.T) {
	svc, _ := newTestService(t, &stubResolver{})
	userID := uuid.New()
	ctx := context.Background()

	dto, err := svc.Create(ctx, userID, validInput("home"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, userID, dto.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	err = svc.Delete(ctx, userID, dto.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
