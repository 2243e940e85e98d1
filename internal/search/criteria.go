package search

import "github.com/spec-kit/realty-service/internal/domain"

// Criteria captures the sparse optional filters of a property search.
// Every field is independently optional; a nil field imposes no constraint.
// Callers are expected to have validated the semantic types at the HTTP
// boundary before building a Criteria.
type Criteria struct {
	Query         *string
	ListingType   *domain.ListingType
	PropertyTypes []domain.PropertyType
	MinPrice      *float64
	MaxPrice      *float64
	City          *string
	State         *string
	MinBedrooms   *int
	MinBathrooms  *int
	MinSquareFeet *float64
	MaxSquareFeet *float64
	Furnished     *bool
	PetFriendly   *bool
	Featured      *bool
	SortBy        string
	SortOrder     string
	Limit         int
	Offset        int
}

// Bounds applies pagination defaults and caps. Limit at or below zero takes
// the default, anything above max is clamped, negative offsets become zero.
type Bounds struct {
	DefaultLimit int
	MaxLimit     int
}

// Normalize returns limit and offset with defaults and caps applied.
func (b Bounds) Normalize(limit, offset int) (int, int) {
	if b.DefaultLimit <= 0 {
		b.DefaultLimit = 20
	}
	if b.MaxLimit <= 0 {
		b.MaxLimit = 100
	}
	if limit <= 0 {
		limit = b.DefaultLimit
	}
	if limit > b.MaxLimit {
		limit = b.MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
