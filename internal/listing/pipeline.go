// Package listing holds the pure filter/sort/paginate pipeline applied to
// the catalog for display. It owns no state; callers pass the live
// catalog and a Filter and get back one page of results.
package listing

import (
	"sort"
	"strings"

	"github.com/Abdulsamad25/apartment-rentals/internal/domain/entity"
)

const DefaultPageSize = 6

type Availability string

const (
	BucketAvailable Availability = "available"
	BucketRented    Availability = "rented"
)

type SortKey string

const (
	SortNone     SortKey = ""
	SortPrice    SortKey = "price"
	SortRating   SortKey = "rating"
	SortLocation SortKey = "location"
)

type Filter struct {
	Availability Availability
	Search       string
	Type         string
	MinPrice     float64
	MaxPrice     float64 // 0 means unbounded
	Amenity      string
	SortBy       SortKey
	Page         int
	PageSize     int
}

type Result struct {
	Page       []entity.Apartment
	TotalPages int
	Total      int
}

// Search runs the pipeline: availability bucket, text match, type match,
// price range, amenity membership, then sort, then paginate. Filters are
// commutative; the sort must happen before the page is sliced.
func Search(catalog []entity.Apartment, f Filter) Result {
	bucket := f.Availability
	if bucket == "" {
		bucket = BucketAvailable
	}
	search := strings.ToLower(f.Search)

	filtered := make([]entity.Apartment, 0, len(catalog))
	for _, apt := range catalog {
		if apt.Available != (bucket == BucketAvailable) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(apt.Name), search) &&
			!strings.Contains(strings.ToLower(apt.Location), search) {
			continue
		}
		if f.Type != "" && apt.Type != f.Type {
			continue
		}
		if apt.Price < f.MinPrice {
			continue
		}
		if f.MaxPrice > 0 && apt.Price > f.MaxPrice {
			continue
		}
		if f.Amenity != "" && !hasAmenity(apt.Amenities, f.Amenity) {
			continue
		}
		filtered = append(filtered, apt)
	}

	switch f.SortBy {
	case SortPrice:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case SortRating:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Rating > filtered[j].Rating })
	case SortLocation:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Location < filtered[j].Location })
	}

	pageSize := f.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		return Result{Page: []entity.Apartment{}, TotalPages: 0, Total: 0}
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	return Result{Page: filtered[start:end], TotalPages: totalPages, Total: total}
}

func hasAmenity(amenities []string, want string) bool {
	for _, a := range amenities {
		if a == want {
			return true
		}
	}
	return false
}

// PriceBounds returns the catalog's live min and max price for the UI
// range control, (0, 0) when the catalog is empty.
func PriceBounds(catalog []entity.Apartment) (min, max float64) {
	if len(catalog) == 0 {
		return 0, 0
	}
	min, max = catalog[0].Price, catalog[0].Price
	for _, apt := range catalog[1:] {
		if apt.Price < min {
			min = apt.Price
		}
		if apt.Price > max {
			max = apt.Price
		}
	}
	return min, max
}

// Types returns the distinct apartment types in first-seen order.
func Types(catalog []entity.Apartment) []string {
	return distinct(catalog, func(a entity.Apartment) []string { return []string{a.Type} })
}

// Amenities returns the distinct amenities in first-seen order.
func Amenities(catalog []entity.Apartment) []string {
	return distinct(catalog, func(a entity.Apartment) []string { return a.Amenities })
}

func distinct(catalog []entity.Apartment, pick func(entity.Apartment) []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, apt := range catalog {
		for _, v := range pick(apt) {
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
