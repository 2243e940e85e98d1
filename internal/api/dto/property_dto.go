package dto

import (
	"time"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/search"
)

// PropertyRequest payload for create and update.
type PropertyRequest struct {
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	ListingType   domain.ListingType    `json:"listing_type"`
	PropertyType  domain.PropertyType   `json:"property_type"`
	Status        domain.PropertyStatus `json:"status"`
	Price         float64               `json:"price"`
	Bedrooms      int                   `json:"bedrooms"`
	Bathrooms     int                   `json:"bathrooms"`
	SquareFootage float64               `json:"square_footage"`
	Address       string                `json:"address"`
	City          string                `json:"city"`
	State         string                `json:"state"`
	ZipCode       string                `json:"zip_code"`
	Furnished     bool                  `json:"furnished"`
	PetFriendly   bool                  `json:"pet_friendly"`
	Featured      bool                  `json:"featured"`
}

// PropertyResponse is the serialized listing.
type PropertyResponse struct {
	ID            string                `json:"id"`
	AgentID       string                `json:"agent_id"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	ListingType   domain.ListingType    `json:"listing_type"`
	PropertyType  domain.PropertyType   `json:"property_type"`
	Status        domain.PropertyStatus `json:"status"`
	Price         float64               `json:"price"`
	Bedrooms      int                   `json:"bedrooms"`
	Bathrooms     int                   `json:"bathrooms"`
	SquareFootage float64               `json:"square_footage"`
	Address       string                `json:"address"`
	City          string                `json:"city"`
	State         string                `json:"state"`
	ZipCode       string                `json:"zip_code"`
	Furnished     bool                  `json:"furnished"`
	PetFriendly   bool                  `json:"pet_friendly"`
	Featured      bool                  `json:"featured"`
	ViewCount     int64                 `json:"view_count"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// SearchResponse is the paged search envelope.
type SearchResponse struct {
	Data       []PropertyResponse `json:"data"`
	Pagination search.PageMeta    `json:"pagination"`
}

// FromProperty maps a domain listing to its response shape.
func FromProperty(p *domain.Property) PropertyResponse {
	return PropertyResponse{
		ID:            p.ID,
		AgentID:       p.AgentID,
		Title:         p.Title,
		Description:   p.Description,
		ListingType:   p.ListingType,
		PropertyType:  p.PropertyType,
		Status:        p.Status,
		Price:         p.Price,
		Bedrooms:      p.Bedrooms,
		Bathrooms:     p.Bathrooms,
		SquareFootage: p.SquareFootage,
		Address:       p.Address,
		City:          p.City,
		State:         p.State,
		ZipCode:       p.ZipCode,
		Furnished:     p.Furnished,
		PetFriendly:   p.PetFriendly,
		Featured:      p.Featured,
		ViewCount:     p.ViewCount,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// FromProperties maps a slice of listings.
func FromProperties(properties []domain.Property) []PropertyResponse {
	items := make([]PropertyResponse, 0, len(properties))
	for i := range properties {
		items = append(items, FromProperty(&properties[i]))
	}
	return items
}
