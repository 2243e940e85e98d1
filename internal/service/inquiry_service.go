package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/events"
	"github.com/spec-kit/realty-service/internal/repository"
	"github.com/spec-kit/realty-service/internal/search"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// InquiryService handles seeker inquiries on listings.
type InquiryService struct {
	inquiries  repository.InquiryRepository
	properties repository.PropertyRepository
	dispatcher events.Dispatcher
	bounds     search.Bounds
}

// NewInquiryService builds the service.
func NewInquiryService(inquiries repository.InquiryRepository, properties repository.PropertyRepository, dispatcher events.Dispatcher, bounds search.Bounds) *InquiryService {
	return &InquiryService{inquiries: inquiries, properties: properties, dispatcher: dispatcher, bounds: bounds}
}

// Create records an inquiry against a publicly visible listing. Hidden
// listings answer NOT_FOUND, matching the public detail endpoint.
func (s *InquiryService) Create(ctx context.Context, seekerID, propertyID, message string) (*domain.Inquiry, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apperrors.NewValidationError("message required", nil)
	}

	property, err := s.properties.GetByID(ctx, propertyID)
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

	inquiry := &domain.Inquiry{
		ReferenceKey: "INQ-" + uuid.NewString()[:8],
		PropertyID:   propertyID,
		SeekerID:     seekerID,
		Message:      message,
		Status:       domain.InquiryStatusNew,
	}
	if err := s.inquiries.Create(ctx, inquiry); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventInquiryCreated,
			Actor:     events.Actor{Kind: domain.SubjectKindSeeker, SubjectID: seekerID},
			Timestamp: time.Now(),
			Payload: events.InquiryCreatedPayload{
				InquiryID:    inquiry.ID,
				ReferenceKey: inquiry.ReferenceKey,
				PropertyID:   propertyID,
				AgentID:      property.AgentID,
				SeekerID:     seekerID,
			},
		})
	}
	return inquiry, nil
}

// ListForSeeker returns the seeker's own inquiries.
func (s *InquiryService) ListForSeeker(ctx context.Context, seekerID string, limit, offset int) ([]domain.Inquiry, error) {
	limit, offset = s.bounds.Normalize(limit, offset)
	return s.inquiries.ListBySeeker(ctx, seekerID, limit, offset)
}

// ListForAgent returns inquiries made against the agent's listings.
func (s *InquiryService) ListForAgent(ctx context.Context, agentID string, limit, offset int) ([]domain.Inquiry, error) {
	limit, offset = s.bounds.Normalize(limit, offset)
	return s.inquiries.ListByAgent(ctx, agentID, limit, offset)
}

// MarkReplied transitions an inquiry once the listing agent responds. Only
// the agent owning the underlying listing may transition it.
func (s *InquiryService) MarkReplied(ctx context.Context, agentID, inquiryID string) error {
	inquiry, err := s.inquiries.GetByID(ctx, inquiryID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("inquiry", nil)
		}
		return err
	}
	property, err := s.properties.GetByID(ctx, inquiry.PropertyID)
	if err != nil {
		return err
	}
	if property.AgentID != agentID {
		return apperrors.NewForbidden("inquiry belongs to another agent's listing")
	}
	return s.inquiries.UpdateStatus(ctx, inquiryID, domain.InquiryStatusReplied)
}
