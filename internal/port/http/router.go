package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Abdulsamad25/apartment-rentals/internal/platform/logger"
	"github.com/Abdulsamad25/apartment-rentals/internal/port/http/middleware"
	"github.com/Abdulsamad25/apartment-rentals/internal/service"
)

// RouterDeps carries everything the HTTP surface needs.
type RouterDeps struct {
	Catalog  *service.CatalogService
	Saved    *service.SavedService
	Rentals  *service.RentalService
	Bookings *service.BookingService
	Photos   *service.PhotoService

	JWTSecret string
	PageSize  int
	Logger    logger.Logger
}

// NewRouter wires all handlers onto one chi mux. Catalog reads are
// public; everything that mutates state sits behind the bearer token,
// and catalog mutations additionally require the admin role.
func NewRouter(deps RouterDeps) *chi.Mux {
	catalogH := NewCatalogHandler(deps.Catalog, deps.Photos, deps.PageSize, deps.Logger)
	savedH := NewSavedHandler(deps.Saved, deps.Catalog, deps.Logger)
	rentalH := NewRentalHandler(deps.Rentals, deps.Logger)
	bookingH := NewBookingHandler(deps.Bookings, deps.Logger)

	mux := chi.NewRouter()
	mux.Use(chimw.Recoverer)
	mux.Use(middleware.Logging(deps.Logger))

	mux.Get("/health", healthHandler(deps))

	// Public catalog reads.
	mux.Get("/api/apartments", catalogH.HandleSearch)
	mux.Get("/api/apartments/meta", catalogH.HandleMeta)
	mux.Get("/api/apartments/{id}", catalogH.HandleGetByID)

	// Authenticated tenant routes.
	mux.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(deps.JWTSecret))

		r.Get("/api/saved", savedH.HandleList)
		r.Post("/api/saved/{id}", savedH.HandleSave)
		r.Post("/api/saved/{id}/toggle", savedH.HandleToggle)
		r.Delete("/api/saved/{id}", savedH.HandleRemove)
		r.Delete("/api/saved", savedH.HandleClear)

		r.Get("/api/rentals", rentalH.HandleList)
		r.Get("/api/rentals/{id}", rentalH.HandleGetByID)
		r.Patch("/api/rentals/{id}/end-date", rentalH.HandleAdjust)
		r.Delete("/api/rentals/{id}", rentalH.HandleCancel)

		r.Post("/api/bookings/{id}/checkout", bookingH.HandleCheckout)
		r.Post("/api/bookings/{id}/confirm", bookingH.HandleConfirm)
		r.Post("/api/bookings/{id}/cancel", bookingH.HandleCancelCheckout)
	})

	// Admin-only catalog mutations.
	mux.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(deps.JWTSecret))
		r.Use(middleware.RequireRole("admin"))

		r.Post("/api/apartments", catalogH.HandleCreate)
		r.Put("/api/apartments/{id}", catalogH.HandleUpdate)
		r.Delete("/api/apartments/{id}", catalogH.HandleDelete)
		r.Patch("/api/apartments/{id}/price", catalogH.HandleUpdatePrice)
		r.Patch("/api/apartments/{id}/availability", catalogH.HandleToggleAvailability)
		r.Post("/api/apartments/{id}/photo", catalogH.HandleUploadPhoto)
		r.Delete("/api/rentals", rentalH.HandleClear)
	})

	return mux
}

// healthHandler reports liveness plus whether any store's latest
// snapshot write failed. Degraded persistence is still a 200; callers
// read the flags.
func healthHandler(deps RouterDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"status": "ok",
			"persistence": map[string]bool{
				"apartmentsSaveFailed": deps.Catalog.SaveFailed(),
				"savedSaveFailed":      deps.Saved.SaveFailed(),
				"rentalsSaveFailed":    deps.Rentals.SaveFailed(),
			},
		})
	}
}
