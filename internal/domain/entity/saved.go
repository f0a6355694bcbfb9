package entity

// SavedApartment is a bookmark: a copy of the apartment at save time plus
// the day it was saved (YYYY-MM-DD). The saved set is keyed by apartment
// id, at most one entry per id.
type SavedApartment struct {
	Apartment
	SavedDate string `json:"savedDate"`
}
