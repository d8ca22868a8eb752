package address

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kiranakart/backend/internal/geocode"
	"github.com/kiranakart/backend/pkg/db"
	"github.com/kiranakart/backend/pkg/db/models"
	pkgerrors "github.com/kiranakart/backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type pincodeResolver interface {
	Resolve(ctx context.Context, pincode, country string) (*geocode.Result, error)
}

// Service manages the user's saved shipping addresses.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input Input) (*DTO, error)
	Update(ctx context.Context, userID, addressID uuid.UUID, input Input) (*DTO, error)
	List(ctx context.Context, userID uuid.UUID) ([]DTO, error)
	Get(ctx context.Context, userID, addressID uuid.UUID) (*DTO, error)
	Delete(ctx context.Context, userID, addressID uuid.UUID) error
}

type service struct {
	repo     *Repository
	tx       txRunner
	resolver pincodeResolver
}

// NewService builds an address service backed by the provided stack.
func NewService(repo *Repository, tx txRunner, resolver pincodeResolver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("address repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("pincode resolver required")
	}
	return &service{repo: repo, tx: tx, resolver: resolver}, nil
}

// Create geocodes and persists a new address. The first address a user saves
// becomes the default regardless of the flag. Setting the default clears any
// previous default in the same transaction, so exactly one default survives
// concurrent switches.
func (s *service) Create(ctx context.Context, userID uuid.UUID, input Input) (*DTO, error) {
	addr := modelFromInput(userID, input)

	// reject duplicate labels before spending a geocoder call; the unique
	// index inside the transaction still catches concurrent inserts
	taken, err := s.repo.NameExists(ctx, userID, addr.AddressName)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking address name")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "an address with this name already exists")
	}

	coords, err := s.resolver.Resolve(ctx, addr.Pincode, addr.Country)
	if err != nil {
		return nil, err
	}
	addr.Latitude = coords.Latitude
	addr.Longitude = coords.Longitude

	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting addresses")
	}
	if count == 0 {
		addr.IsDefault = true
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if addr.IsDefault {
			if err := txRepo.ClearDefault(ctx, userID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing default address")
			}
		}
		if err := txRepo.Create(ctx, addr); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "an address with this name already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating address")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDTO(addr), nil
}

// Update replaces the address fields. The pincode is re-geocoded only when it
// actually changed; editing the label or the landmark keeps the stored
// coordinates.
func (s *service) Update(ctx context.Context, userID, addressID uuid.UUID, input Input) (*DTO, error) {
	addr, err := s.repo.FindByID(ctx, userID, addressID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading address")
	}
	if addr == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
	}

	wasDefault := addr.IsDefault
	updated := modelFromInput(userID, input)
	updated.ID = addr.ID
	updated.CreatedAt = addr.CreatedAt
	updated.Latitude = addr.Latitude
	updated.Longitude = addr.Longitude

	if updated.Pincode != addr.Pincode {
		coords, err := s.resolver.Resolve(ctx, updated.Pincode, updated.Country)
		if err != nil {
			return nil, err
		}
		updated.Latitude = coords.Latitude
		updated.Longitude = coords.Longitude
	}

	// an update may promote an address to default but never silently demote
	// the last one
	if wasDefault {
		updated.IsDefault = true
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if updated.IsDefault && !wasDefault {
			if err := txRepo.ClearDefault(ctx, userID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing default address")
			}
		}
		if err := txRepo.Save(ctx, updated); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "an address with this name already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating address")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDTO(updated), nil
}

// List returns the user's addresses, default first.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]DTO, error) {
	addrs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing addresses")
	}
	out := make([]DTO, 0, len(addrs))
	for i := range addrs {
		out = append(out, *toDTO(&addrs[i]))
	}
	return out, nil
}

// Get loads one of the user's addresses.
func (s *service) Get(ctx context.Context, userID, addressID uuid.UUID) (*DTO, error) {
	addr, err := s.repo.FindByID(ctx, userID, addressID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading address")
	}
	if addr == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
	}
	return toDTO(addr), nil
}

// Delete removes the user's address.
func (s *service) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	rows, err := s.repo.Delete(ctx, userID, addressID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting address")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
	}
	return nil
}

func modelFromInput(userID uuid.UUID, input Input) *models.Address {
	country := strings.TrimSpace(input.Country)
	if country == "" {
		country = "India"
	}
	addr := &models.Address{
		UserID:      userID,
		AddressName: strings.TrimSpace(input.AddressName),
		HouseNo:     strings.TrimSpace(input.HouseNo),
		Street:      strings.TrimSpace(input.Street),
		Locality:    strings.TrimSpace(input.Locality),
		Area:        strings.TrimSpace(input.Area),
		City:        strings.TrimSpace(input.City),
		State:       strings.TrimSpace(input.State),
		Pincode:     strings.TrimSpace(input.Pincode),
		Country:     country,
		IsDefault:   input.IsDefault,
	}
	if landmark := strings.TrimSpace(input.Landmark); landmark != "" {
		addr.Landmark = &landmark
	}
	return addr
}
