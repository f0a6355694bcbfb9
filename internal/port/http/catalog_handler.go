package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Abdulsamad25/apartment-rentals/internal/domain/entity"
	"github.com/Abdulsamad25/apartment-rentals/internal/listing"
	"github.com/Abdulsamad25/apartment-rentals/internal/platform/logger"
	"github.com/Abdulsamad25/apartment-rentals/internal/service"
)

// CatalogHandler serves the apartment catalog: the public search and
// detail endpoints plus the admin-only mutations.
type CatalogHandler struct {
	catalog  *service.CatalogService
	photos   *service.PhotoService
	pageSize int
	logger   logger.Logger
}

func NewCatalogHandler(catalog *service.CatalogService, photos *service.PhotoService, pageSize int, log logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, photos: photos, pageSize: pageSize, logger: log}
}

type searchResponse struct {
	Apartments []entity.Apartment `json:"apartments"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
	Total      int                `json:"total"`
}

// HandleSearch runs the listing pipeline over the live catalog. All
// filter parameters come from the query string; absent ones fall back to
// the pipeline defaults.
func (h *CatalogHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	minPrice, _ := strconv.ParseFloat(q.Get("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(q.Get("max_price"), 64)

	filter := listing.Filter{
		Availability: listing.Availability(q.Get("filter")),
		Search:       q.Get("q"),
		Type:         q.Get("type"),
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
		Amenity:      q.Get("amenity"),
		SortBy:       listing.SortKey(q.Get("sort")),
		Page:         page,
		PageSize:     h.pageSize,
	}

	result := listing.Search(h.catalog.Apartments(), filter)
	if page < 1 {
		page = 1
	}
	if result.TotalPages > 0 && page > result.TotalPages {
		page = result.TotalPages
	}
	respondJSON(w, http.StatusOK, searchResponse{
		Apartments: result.Page,
		Page:       page,
		TotalPages: result.TotalPages,
		Total:      result.Total,
	})
}

type metaResponse struct {
	MinPrice  float64  `json:"minPrice"`
	MaxPrice  float64  `json:"maxPrice"`
	Types     []string `json:"types"`
	Amenities []string `json:"amenities"`
}

// HandleMeta returns the live bounds the search UI builds its filter
// controls from.
func (h *CatalogHandler) HandleMeta(w http.ResponseWriter, r *http.Request) {
	catalog := h.catalog.Apartments()
	minPrice, maxPrice := listing.PriceBounds(catalog)
	respondJSON(w, http.StatusOK, metaResponse{
		MinPrice:  minPrice,
		MaxPrice:  maxPrice,
		Types:     listing.Types(catalog),
		Amenities: listing.Amenities(catalog),
	})
}

func (h *CatalogHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	apt, err := h.catalog.GetByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, apt)
}

func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input entity.Apartment
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Errorf("CatalogHandler.HandleCreate: invalid request body: %v", err)
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	apt, err := h.catalog.Add(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, apt)
}

func (h *CatalogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var input entity.Apartment
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Errorf("CatalogHandler.HandleUpdate: invalid request body for %s: %v", id, err)
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.catalog.Update(r.Context(), id, input); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *CatalogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.catalog.Delete(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

type updatePriceRequest struct {
	Price float64 `json:"price"`
}

func (h *CatalogHandler) HandleUpdatePrice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req updatePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.catalog.UpdatePrice(r.Context(), id, req.Price); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

type toggleAvailabilityRequest struct {
	Available bool `json:"available"`
}

func (h *CatalogHandler) HandleToggleAvailability(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req toggleAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	h.catalog.ToggleAvailability(r.Context(), id, req.Available)
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

const maxPhotoSize = 10 << 20 // 10 MiB

// HandleUploadPhoto stores a multipart photo and points the apartment's
// image at the resulting URL.
func (h *CatalogHandler) HandleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	if h.photos == nil {
		respondJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "photo storage is not configured"})
		return
	}
	id := chi.URLParam(r, "id")
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "photo file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize))
	if err != nil {
		h.logger.Errorf("CatalogHandler.HandleUploadPhoto: failed to read file for %s: %v", id, err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to read photo"})
		return
	}

	url, err := h.photos.UploadPhoto(r.Context(), id, header.Filename, data)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"imageUrl": url})
}
