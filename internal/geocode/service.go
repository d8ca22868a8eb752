package geocode

import (
	"context"
	"fmt"
	"strings"

	"github.com/kiranakart/backend/pkg/db/models"
	pkgerrors "github.com/kiranakart/backend/pkg/errors"
	"github.com/kiranakart/backend/pkg/logger"
	"github.com/kiranakart/backend/pkg/metrics"
	"github.com/kiranakart/backend/pkg/nominatim"
)

// Service resolves a pincode to coordinates, consulting the cache table
// before the external geocoder.
type Service interface {
	Resolve(ctx context.Context, pincode, country string) (*Result, error)
}

// Result is a resolved coordinate. FromCache reports whether the lookup was
// answered without a provider call.
type Result struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	FromCache bool    `json:"-"`
}

type placeSearcher interface {
	Search(ctx context.Context, query string) (*nominatim.Place, error)
}

type cacheStore interface {
	FindByPincode(ctx context.Context, pincode string) (*models.PincodeLocation, error)
	Insert(ctx context.Context, loc *models.PincodeLocation) error
}

type service struct {
	cache    cacheStore
	provider placeSearcher
	metrics  *metrics.WorkflowMetrics
	logg     *logger.Logger
}

// NewService constructs the pincode resolver.
func NewService(cache cacheStore, provider placeSearcher, wm *metrics.WorkflowMetrics, logg *logger.Logger) (Service, error) {
	if cache == nil {
		return nil, fmt.Errorf("geocode cache repository required")
	}
	if provider == nil {
		return nil, fmt.Errorf("geocode provider required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{cache: cache, provider: provider, metrics: wm, logg: logg}, nil
}

// Resolve returns the coordinate for the pincode. Cache hits never touch the
// provider. On a miss the provider result is written back with
// insert-or-ignore; a failed write is logged and the coordinate is still
// returned, since the caller only needs the value.
func (s *service) Resolve(ctx context.Context, pincode, country string) (*Result, error) {
	pincode = strings.TrimSpace(pincode)
	if pincode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pincode is required")
	}
	if country == "" {
		country = "India"
	}

	cached, err := s.cache.FindByPincode(ctx, pincode)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cached pincode")
	}
	if cached != nil {
		s.metrics.GeocodeCacheHit()
		return &Result{Latitude: cached.Latitude, Longitude: cached.Longitude, FromCache: true}, nil
	}
	s.metrics.GeocodeCacheMiss()

	place, err := s.provider.Search(ctx, fmt.Sprintf("%s, %s", pincode, country))
	if err != nil {
		s.metrics.GeocodeProviderError()
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "geocoding pincode")
	}
	if place == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no coordinates found for pincode")
	}

	loc := &models.PincodeLocation{
		Pincode:   pincode,
		Latitude:  place.Latitude,
		Longitude: place.Longitude,
	}
	if err := s.cache.Insert(ctx, loc); err != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{"pincode": pincode, "error": err.Error()})
		s.logg.Warn(ctx, "failed to cache pincode coordinates")
	}

	return &Result{Latitude: place.Latitude, Longitude: place.Longitude}, nil
}
