package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Abdulsamad25/apartment-rentals/internal/platform/logger"
	"github.com/Abdulsamad25/apartment-rentals/internal/port/http/middleware"
	"github.com/Abdulsamad25/apartment-rentals/internal/service"
)

// BookingHandler serves the payment-backed checkout flow. The caller's
// email and name come from the token claims set by the auth middleware.
type BookingHandler struct {
	bookings *service.BookingService
	logger   logger.Logger
}

func NewBookingHandler(bookings *service.BookingService, log logger.Logger) *BookingHandler {
	return &BookingHandler{bookings: bookings, logger: log}
}

type checkoutResponse struct {
	AuthorizationURL string `json:"authorizationUrl"`
	Reference        string `json:"reference"`
}

// HandleCheckout initializes a payment session for the apartment and
// returns the gateway's authorization URL.
func (h *BookingHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	email, _ := r.Context().Value(middleware.UserEmailCtxKey).(string)
	name, _ := r.Context().Value(middleware.UserNameCtxKey).(string)
	if email == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "an email address is required for checkout"})
		return
	}

	session, err := h.bookings.Checkout(r.Context(), id, email, name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, checkoutResponse{
		AuthorizationURL: session.AuthorizationURL,
		Reference:        session.Reference,
	})
}

type confirmRequest struct {
	Reference string `json:"reference"`
}

// HandleConfirm verifies the payment reference and, on success, creates
// the rental and takes the apartment off the market.
func (h *BookingHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Reference == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "payment reference is required"})
		return
	}
	email, _ := r.Context().Value(middleware.UserEmailCtxKey).(string)

	rental, err := h.bookings.ConfirmBooking(r.Context(), id, req.Reference, email)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rental)
}

// HandleCancelCheckout releases the in-flight checkout without booking.
func (h *BookingHandler) HandleCancelCheckout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.bookings.CancelCheckout(id)
	w.WriteHeader(http.StatusNoContent)
}
