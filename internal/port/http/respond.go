package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Abdulsamad25/apartment-rentals/internal/domain/entity"
	"github.com/Abdulsamad25/apartment-rentals/internal/service"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps domain errors onto HTTP statuses: validation
// failures are 400, not-found 404, double submits 409, everything else
// 500.
func respondError(w http.ResponseWriter, err error) {
	var vErr *entity.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: vErr.Error()})
	case errors.Is(err, entity.ErrInvalidAdjustment), errors.Is(err, entity.ErrEndBeforeStart):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, entity.ErrApartmentNotFound), errors.Is(err, entity.ErrRentalNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrCheckoutInFlight):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrApartmentUnavailable), errors.Is(err, service.ErrPaymentNotSuccessful):
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}
