package controllers

import (
	"net/http"

	"github.com/kiranakart/backend/api/responses"
	"github.com/kiranakart/backend/internal/geocode"
	pkgerrors "github.com/kiranakart/backend/pkg/errors"
	"github.com/kiranakart/backend/pkg/logger"
)

type coordinatesResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	FromCache bool    `json:"from_cache"`
}

// LocationCoordinates exposes the pincode resolver directly.
func LocationCoordinates(svc geocode.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "geocode service unavailable"))
			return
		}

		pincode := r.URL.Query().Get("pincode")
		country := r.URL.Query().Get("country")

		result, err := svc.Resolve(r.Context(), pincode, country)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, coordinatesResponse{
			Latitude:  result.Latitude,
			Longitude: result.Longitude,
			FromCache: result.FromCache,
		})
	}
}
