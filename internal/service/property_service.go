package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/events"
	"github.com/spec-kit/realty-service/internal/repository"
	"github.com/spec-kit/realty-service/internal/search"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// PropertyCreateInput carries validated fields for a new listing.
type PropertyCreateInput struct {
	Title         string
	Description   string
	ListingType   domain.ListingType
	PropertyType  domain.PropertyType
	Status        domain.PropertyStatus
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
}

// PropertyService orchestrates listing CRUD and search.
type PropertyService struct {
	properties repository.PropertyRepository
	dispatcher events.Dispatcher
	bounds     search.Bounds
	logger     *zap.Logger
}

// NewPropertyService builds the service.
func NewPropertyService(properties repository.PropertyRepository, dispatcher events.Dispatcher, bounds search.Bounds, logger *zap.Logger) *PropertyService {
	return &PropertyService{
		properties: properties,
		dispatcher: dispatcher,
		bounds:     bounds,
		logger:     logger,
	}
}

// Search runs a public listing search. Criteria arrive already validated
// from the boundary; only pagination bounds are normalized here.
func (s *PropertyService) Search(ctx context.Context, criteria search.Criteria) ([]domain.Property, search.PageMeta, error) {
	criteria.Limit, criteria.Offset = s.bounds.Normalize(criteria.Limit, criteria.Offset)

	rows, total, err := s.properties.Search(ctx, criteria)
	if err != nil {
		return nil, search.PageMeta{}, apperrors.NewInternalError(err)
	}
	return rows, search.NewPageMeta(total, criteria.Limit, criteria.Offset), nil
}

// GetPublic returns a publicly visible listing and bumps its view count.
// The increment is best-effort; a failed bump never fails the read.
func (s *PropertyService) GetPublic(ctx context.Context, id string) (*domain.Property, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("property", nil)
		}
		return nil, err
	}

	visible := false
	for _, status := range domain.PublicStatuses() {
		if property.Status == status {
			visible = true
			break
		}
	}
	if !visible {
		return nil, apperrors.NewNotFound("property", nil)
	}

	if err := s.properties.IncrementViewCount(ctx, id); err != nil {
		s.logger.Warn("view count increment failed", zap.String("property_id", id), zap.Error(err))
	} else {
		property.ViewCount++
	}
	return property, nil
}

// Create persists a new listing owned by the agent.
func (s *PropertyService) Create(ctx context.Context, agentID string, input PropertyCreateInput) (*domain.Property, error) {
	status := input.Status
	if status == "" {
		status = domain.PropertyStatusActive
	}
	property := &domain.Property{
		AgentID:       agentID,
		Title:         input.Title,
		Description:   input.Description,
		ListingType:   input.ListingType,
		PropertyType:  input.PropertyType,
		Status:        status,
		Price:         input.Price,
		Bedrooms:      input.Bedrooms,
		Bathrooms:     input.Bathrooms,
		SquareFootage: input.SquareFootage,
		Address:       input.Address,
		City:          input.City,
		State:         input.State,
		ZipCode:       input.ZipCode,
		Furnished:     input.Furnished,
		PetFriendly:   input.PetFriendly,
		Featured:      input.Featured,
	}
	if err := s.properties.Create(ctx, property); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventPropertyCreated, agentID, events.PropertyCreatedPayload{
		PropertyID:  property.ID,
		AgentID:     agentID,
		ListingType: property.ListingType,
		Title:       property.Title,
	})
	return property, nil
}

// Update mutates a listing after confirming ownership.
func (s *PropertyService) Update(ctx context.Context, agentID, propertyID string, input PropertyCreateInput) (*domain.Property, error) {
	property, err := s.ownedProperty(ctx, agentID, propertyID)
	if err != nil {
		return nil, err
	}

	property.Title = input.Title
	property.Description = input.Description
	property.ListingType = input.ListingType
	property.PropertyType = input.PropertyType
	if input.Status != "" {
		property.Status = input.Status
	}
	property.Price = input.Price
	property.Bedrooms = input.Bedrooms
	property.Bathrooms = input.Bathrooms
	property.SquareFootage = input.SquareFootage
	property.Address = input.Address
	property.City = input.City
	property.State = input.State
	property.ZipCode = input.ZipCode
	property.Furnished = input.Furnished
	property.PetFriendly = input.PetFriendly
	property.Featured = input.Featured

	if err := s.properties.Update(ctx, property); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventPropertyUpdated, agentID, events.PropertyCreatedPayload{
		PropertyID:  property.ID,
		AgentID:     agentID,
		ListingType: property.ListingType,
		Title:       property.Title,
	})
	return property, nil
}

// Delete removes a listing after confirming ownership.
func (s *PropertyService) Delete(ctx context.Context, agentID, propertyID string) error {
	if _, err := s.ownedProperty(ctx, agentID, propertyID); err != nil {
		return err
	}
	return s.properties.Delete(ctx, propertyID)
}

// ListForAgent returns the agent's own listings regardless of status.
func (s *PropertyService) ListForAgent(ctx context.Context, agentID string, limit, offset int) ([]domain.Property, error) {
	limit, offset = s.bounds.Normalize(limit, offset)
	return s.properties.ListByAgent(ctx, agentID, limit, offset)
}

func (s *PropertyService) ownedProperty(ctx context.Context, agentID, propertyID string) (*domain.Property, error) {
	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("property", nil)
		}
		return nil, err
	}
	if property.AgentID != agentID {
		return nil, apperrors.NewForbidden("listing belongs to another agent")
	}
	return property, nil
}

func (s *PropertyService) publish(ctx context.Context, eventType events.EventType, agentID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     events.Actor{Kind: domain.SubjectKindAgent, SubjectID: agentID},
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
