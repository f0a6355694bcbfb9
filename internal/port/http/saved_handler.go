package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Abdulsamad25/apartment-rentals/internal/platform/logger"
	"github.com/Abdulsamad25/apartment-rentals/internal/service"
)

// SavedHandler serves the bookmarked-apartments set.
type SavedHandler struct {
	saved   *service.SavedService
	catalog *service.CatalogService
	logger  logger.Logger
}

func NewSavedHandler(saved *service.SavedService, catalog *service.CatalogService, log logger.Logger) *SavedHandler {
	return &SavedHandler{saved: saved, catalog: catalog, logger: log}
}

func (h *SavedHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.saved.List())
}

func (h *SavedHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	apt, err := h.catalog.GetByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	h.saved.Save(r.Context(), *apt)
	respondJSON(w, http.StatusOK, map[string]bool{"saved": true})
}

// HandleToggle flips the saved state and reports the new one.
func (h *SavedHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	apt, err := h.catalog.GetByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	h.saved.Toggle(r.Context(), *apt)
	respondJSON(w, http.StatusOK, map[string]bool{"saved": h.saved.IsSaved(id)})
}

func (h *SavedHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.saved.Remove(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *SavedHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	h.saved.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
