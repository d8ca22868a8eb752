package availability

import (
	"context"
	"fmt"
	"time"

	pkgerrors "github.com/kiranakart/backend/pkg/errors"
	"github.com/kiranakart/backend/pkg/metrics"
	"github.com/google/uuid"
)

// ServiceRadiusKM is the delivery radius around a warehouse. A product is
// deliverable to a coordinate when at least one stocking warehouse lies
// within this distance.
const ServiceRadiusKM = 15.0

// Service answers whether a set of products can be delivered to a coordinate.
type Service interface {
	Check(ctx context.Context, productIDs []uuid.UUID, lat, lon float64) (*Result, error)
}

// Result reports the outcome of one availability check. Deliverable is true
// only when every requested product has a warehouse in range.
type Result struct {
	Deliverable          bool        `json:"deliverable"`
	UndeliverableProduct []uuid.UUID `json:"undeliverable_product_ids,omitempty"`
}

type stockReader interface {
	FindStockedWarehouses(ctx context.Context, productIDs []uuid.UUID) ([]StockedWarehouse, error)
}

type service struct {
	repo    stockReader
	metrics *metrics.WorkflowMetrics
}

// NewService constructs the availability checker.
func NewService(repo stockReader, wm *metrics.WorkflowMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("availability repository required")
	}
	return &service{repo: repo, metrics: wm}, nil
}

// Check evaluates deliverability product by product. A product stocked by no
// warehouse at all is undeliverable, same as one whose warehouses are all out
// of range.
func (s *service) Check(ctx context.Context, productIDs []uuid.UUID, lat, lon float64) (*Result, error) {
	if len(productIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one product is required")
	}
	if lat == 0 && lon == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery coordinates are required")
	}
	start := time.Now()
	defer func() { s.metrics.ObserveAvailabilityCheck(time.Since(start)) }()

	rows, err := s.repo.FindStockedWarehouses(ctx, productIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading stocking warehouses")
	}

	inRange := make(map[uuid.UUID]bool, len(productIDs))
	for _, row := range rows {
		if inRange[row.ProductID] {
			continue
		}
		if HaversineKM(lat, lon, row.Latitude, row.Longitude) <= ServiceRadiusKM {
			inRange[row.ProductID] = true
		}
	}

	result := &Result{Deliverable: true}
	for _, id := range productIDs {
		if !inRange[id] {
			result.Deliverable = false
			result.UndeliverableProduct = append(result.UndeliverableProduct, id)
		}
	}
	return result, nil
}
