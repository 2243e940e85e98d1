package domain

import "time"

// ListingType distinguishes sale and rental listings.
type ListingType string

const (
	ListingTypeSale ListingType = "sale"
	ListingTypeRent ListingType = "rent"
)

// PropertyType enumerates supported property categories.
type PropertyType string

const (
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeCondo      PropertyType = "condo"
	PropertyTypeTownhouse  PropertyType = "townhouse"
	PropertyTypeLand       PropertyType = "land"
	PropertyTypeCommercial PropertyType = "commercial"
)

// PropertyStatus enumerates listing lifecycle states. Only active and
// pending listings are publicly searchable.
type PropertyStatus string

const (
	PropertyStatusDraft   PropertyStatus = "draft"
	PropertyStatusActive  PropertyStatus = "active"
	PropertyStatusPending PropertyStatus = "pending"
	PropertyStatusSold    PropertyStatus = "sold"
	PropertyStatusRented  PropertyStatus = "rented"
)

// PublicStatuses lists the statuses visible to search.
func PublicStatuses() []PropertyStatus {
	return []PropertyStatus{PropertyStatusActive, PropertyStatusPending}
}

// Property is the aggregate for listings.
type Property struct {
	ID            string
	AgentID       string
	Title         string
	Description   string
	ListingType   ListingType
	PropertyType  PropertyType
	Status        PropertyStatus
	Price         float64
	Bedrooms      int
	Bathrooms     int
	SquareFootage float64
	Address       string
	City          string
	State         string
	ZipCode       string
	Furnished     bool
	PetFriendly   bool
	Featured      bool
	ViewCount     int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidListingType reports whether the value is a known listing type.
func ValidListingType(v ListingType) bool {
	return v == ListingTypeSale || v == ListingTypeRent
}

// ValidPropertyType reports whether the value is a known property type.
func ValidPropertyType(v PropertyType) bool {
	switch v {
	case PropertyTypeHouse, PropertyTypeApartment, PropertyTypeCondo,
		PropertyTypeTownhouse, PropertyTypeLand, PropertyTypeCommercial:
		return true
	}
	return false
}
