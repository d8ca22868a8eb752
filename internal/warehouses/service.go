package warehouse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kiranakart/backend/internal/geocode"
	"github.com/kiranakart/backend/pkg/db"
	"github.com/kiranakart/backend/pkg/db/models"
	pkgerrors "github.com/kiranakart/backend/pkg/errors"
)

// Input is the validated payload to create or replace a warehouse. When the
// coordinates are omitted they are resolved from the pincode.
type Input struct {
	Name      string  `json:"name" validate:"required,min=2,max=120"`
	Address   string  `json:"address" validate:"required,max=240"`
	Pincode   string  `json:"pincode" validate:"required,len=6,numeric"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DTO is the warehouse shape returned to clients.
type DTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Pincode   string    `json:"pincode"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

type pincodeResolver interface {
	Resolve(ctx context.Context, pincode, country string) (*geocode.Result, error)
}

// Service manages fulfillment locations and their stocked products.
type Service interface {
	Create(ctx context.Context, input Input) (*DTO, error)
	Update(ctx context.Context, id uuid.UUID, input Input) (*DTO, error)
	Get(ctx context.Context, id uuid.UUID) (*DTO, error)
	List(ctx context.Context) ([]DTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	StockProduct(ctx context.Context, productID, warehouseID uuid.UUID) error
	UnstockProduct(ctx context.Context, productID, warehouseID uuid.UUID) error
	StockedProducts(ctx context.Context, warehouseID uuid.UUID) ([]models.Product, error)
}

type service struct {
	repo     *Repository
	resolver pincodeResolver
}

// NewService builds a warehouse service backed by the provided stack.
func NewService(repo *Repository, resolver pincodeResolver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("warehouse repository required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("pincode resolver required")
	}
	return &service{repo: repo, resolver: resolver}, nil
}

// Create registers a warehouse. Names are unique across the fleet.
func (s *service) Create(ctx context.Context, input Input) (*DTO, error) {
	wh := &models.Warehouse{
		Name:      strings.TrimSpace(input.Name),
		Address:   strings.TrimSpace(input.Address),
		Pincode:   strings.TrimSpace(input.Pincode),
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
	}
	if err := s.fillCoordinates(ctx, wh); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, wh); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a warehouse with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating warehouse")
	}
	return toDTO(wh), nil
}

// Update replaces the warehouse fields, re-resolving coordinates when the
// pincode changed and none were supplied.
func (s *service) Update(ctx context.Context, id uuid.UUID, input Input) (*DTO, error) {
	wh, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading warehouse")
	}
	if wh == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "warehouse not found")
	}

	pincode := strings.TrimSpace(input.Pincode)
	if input.Latitude == 0 && input.Longitude == 0 && pincode == wh.Pincode {
		input.Latitude = wh.Latitude
		input.Longitude = wh.Longitude
	}

	wh.Name = strings.TrimSpace(input.Name)
	wh.Address = strings.TrimSpace(input.Address)
	wh.Pincode = pincode
	wh.Latitude = input.Latitude
	wh.Longitude = input.Longitude
	if err := s.fillCoordinates(ctx, wh); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, wh); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a warehouse with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating warehouse")
	}
	return toDTO(wh), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*DTO, error) {
	wh, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading warehouse")
	}
	if wh == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "warehouse not found")
	}
	return toDTO(wh), nil
}

func (s *service) List(ctx context.Context) ([]DTO, error) {
	whs, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing warehouses")
	}
	out := make([]DTO, 0, len(whs))
	for i := range whs {
		out = append(out, *toDTO(&whs[i]))
	}
	return out, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting warehouse")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "warehouse not found")
	}
	return nil
}

// StockProduct maps a product into the warehouse. Mapping the same pair
// twice is a conflict, not a silent no-op, so fleet tooling notices drift.
func (s *service) StockProduct(ctx context.Context, productID, warehouseID uuid.UUID) error {
	wh, err := s.repo.FindByID(ctx, warehouseID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading warehouse")
	}
	if wh == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "warehouse not found")
	}

	row := &models.ProductWarehouse{ProductID: productID, WarehouseID: warehouseID}
	if err := s.repo.CreateStocking(ctx, row); err != nil {
		if db.IsUniqueViolation(err, "") {
			return pkgerrors.New(pkgerrors.CodeConflict, "product is already stocked in this warehouse")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "stocking product")
	}
	return nil
}

func (s *service) UnstockProduct(ctx context.Context, productID, warehouseID uuid.UUID) error {
	rows, err := s.repo.DeleteStocking(ctx, productID, warehouseID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unstocking product")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product is not stocked in this warehouse")
	}
	return nil
}

func (s *service) StockedProducts(ctx context.Context, warehouseID uuid.UUID) ([]models.Product, error) {
	products, err := s.repo.ListStockedProducts(ctx, warehouseID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing stocked products")
	}
	return products, nil
}

func (s *service) fillCoordinates(ctx context.Context, wh *models.Warehouse) error {
	if wh.Latitude != 0 || wh.Longitude != 0 {
		return nil
	}
	coords, err := s.resolver.Resolve(ctx, wh.Pincode, "India")
	if err != nil {
		return err
	}
	wh.Latitude = coords.Latitude
	wh.Longitude = coords.Longitude
	return nil
}

func toDTO(wh *models.Warehouse) *DTO {
	return &DTO{
		ID:        wh.ID,
		Name:      wh.Name,
		Address:   wh.Address,
		Pincode:   wh.Pincode,
		Latitude:  wh.Latitude,
		Longitude: wh.Longitude,
		CreatedAt: wh.CreatedAt,
	}
}
