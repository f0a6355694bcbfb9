package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Abdulsamad25/apartment-rentals/internal/domain/entity"
	"github.com/Abdulsamad25/apartment-rentals/internal/platform/logger"
	"github.com/Abdulsamad25/apartment-rentals/internal/service"
)

// RentalHandler serves the tenant's bookings and their lifecycle.
type RentalHandler struct {
	rentals *service.RentalService
	logger  logger.Logger
}

func NewRentalHandler(rentals *service.RentalService, log logger.Logger) *RentalHandler {
	return &RentalHandler{rentals: rentals, logger: log}
}

func (h *RentalHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.rentals.List())
}

func (h *RentalHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rental, err := h.rentals.GetByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

type adjustRequest struct {
	Amount    int    `json:"amount"`
	Unit      string `json:"unit"`
	Direction string `json:"direction"`
}

// HandleAdjust shifts the rental's end date: direction "add" renews,
// "subtract" shortens. The service rejects shifts landing before the
// start date.
func (h *RentalHandler) HandleAdjust(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req adjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Errorf("RentalHandler.HandleAdjust: invalid request body for %s: %v", id, err)
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	rental, err := h.rentals.AdjustEndDate(r.Context(), id, req.Amount,
		entity.AdjustUnit(req.Unit), entity.AdjustDirection(req.Direction))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

// HandleCancel runs the cancel saga: the booking goes away and the
// apartment returns to the available pool.
func (h *RentalHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.rentals.CancelBooking(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RentalHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	h.rentals.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
