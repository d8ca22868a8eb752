package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/kiranakart/backend/api/responses"
	"github.com/kiranakart/backend/api/validators"
	"github.com/kiranakart/backend/internal/availability"
	pkgerrors "github.com/kiranakart/backend/pkg/errors"
	"github.com/kiranakart/backend/pkg/logger"
)

type availabilityCheckRequest struct {
	Items []availabilityItemPayload `json:"items" validate:"required,min=1,dive"`
	Lat   float64                   `json:"lat" validate:"required"`
	Lon   float64                   `json:"lon" validate:"required"`
}

type availabilityItemPayload struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

// AvailabilityCheck reports whether every cart item has an in-range warehouse.
func AvailabilityCheck(svc availability.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "availability service unavailable"))
			return
		}

		var body availabilityCheckRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ids := make([]uuid.UUID, len(body.Items))
		for i, item := range body.Items {
			ids[i] = item.ProductID
		}

		result, err := svc.Check(r.Context(), ids, body.Lat, body.Lon)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
