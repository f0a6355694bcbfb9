package entity

import (
	"errors"
	"strings"
)

// Apartment is a catalog record. JSON tags match the persisted snapshot
// format, which mirrors what the web client stores.
type Apartment struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Price       float64  `json:"price"`
	ImageURL    string   `json:"imageUrl"`
	Available   bool     `json:"available"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	Area        string   `json:"area"`
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"`
	Amenities   []string `json:"amenities"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
}

const placeholderImageURL = "https://via.placeholder.com/600x400"

var ErrApartmentNotFound = errors.New("apartment not found")

// ValidationError carries every failed check so the caller can surface
// them together, the way the admin form shows a joined message.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

// ValidateApartmentInput checks the fields required for both create and
// update. A nil return means the input is acceptable.
func ValidateApartmentInput(a Apartment) error {
	var msgs []string
	if strings.TrimSpace(a.Name) == "" {
		msgs = append(msgs, "Name is required")
	}
	if strings.TrimSpace(a.Location) == "" {
		msgs = append(msgs, "Location is required")
	}
	if a.Price <= 0 {
		msgs = append(msgs, "Valid price is required")
	}
	if a.Bedrooms <= 0 {
		msgs = append(msgs, "Valid number of bedrooms is required")
	}
	if a.Bathrooms <= 0 {
		msgs = append(msgs, "Valid number of bathrooms is required")
	}
	if len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}

// ApplyCreateDefaults fills the fields a new record gets when the caller
// leaves them unset.
func (a *Apartment) ApplyCreateDefaults() {
	if a.ImageURL == "" {
		a.ImageURL = placeholderImageURL
	}
	a.Rating = 4.0
	a.Reviews = 0
	if a.Amenities == nil {
		a.Amenities = []string{"WiFi", "AC"}
	}
}

// Merge overlays the non-zero fields of in onto a, preserving everything
// the update left out. Availability is not merged here; it is owned by
// the catalog's ToggleAvailability operation.
func (a *Apartment) Merge(in Apartment) {
	if in.Name != "" {
		a.Name = in.Name
	}
	if in.Location != "" {
		a.Location = in.Location
	}
	if in.Price > 0 {
		a.Price = in.Price
	}
	if in.ImageURL != "" {
		a.ImageURL = in.ImageURL
	}
	if in.Bedrooms > 0 {
		a.Bedrooms = in.Bedrooms
	}
	if in.Bathrooms > 0 {
		a.Bathrooms = in.Bathrooms
	}
	if in.Area != "" {
		a.Area = in.Area
	}
	if in.Rating > 0 {
		a.Rating = in.Rating
	}
	if in.Reviews > 0 {
		a.Reviews = in.Reviews
	}
	if in.Amenities != nil {
		a.Amenities = in.Amenities
	}
	if in.Type != "" {
		a.Type = in.Type
	}
	if in.Description != "" {
		a.Description = in.Description
	}
}
