package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/repository"
	"github.com/spec-kit/realty-service/internal/search"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// FavoriteService manages seeker saved properties.
type FavoriteService struct {
	favorites  repository.FavoriteRepository
	properties repository.PropertyRepository
	bounds     search.Bounds
}

// NewFavoriteService builds the service.
func NewFavoriteService(favorites repository.FavoriteRepository, properties repository.PropertyRepository, bounds search.Bounds) *FavoriteService {
	return &FavoriteService{favorites: favorites, properties: properties, bounds: bounds}
}

// Add saves a property for the seeker. Adding twice is a no-op.
func (s *FavoriteService) Add(ctx context.Context, seekerID, propertyID string) error {
	if _, err := s.properties.GetByID(ctx, propertyID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("property", nil)
		}
		return err
	}
	return s.favorites.Add(ctx, seekerID, propertyID)
}

// Remove deletes a saved property.
func (s *FavoriteService) Remove(ctx context.Context, seekerID, propertyID string) error {
	if err := s.favorites.Remove(ctx, seekerID, propertyID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("favorite", nil)
		}
		return err
	}
	return nil
}

// List returns the seeker's saved properties.
func (s *FavoriteService) List(ctx context.Context, seekerID string, limit, offset int) ([]domain.Property, error) {
	limit, offset = s.bounds.Normalize(limit, offset)
	return s.favorites.ListBySeeker(ctx, seekerID, limit, offset)
}
