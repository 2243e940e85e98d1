package events

import (
	"time"

	"github.com/spec-kit/realty-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPropertyCreated EventType = "property_created"
	EventPropertyUpdated EventType = "property_updated"
	EventInquiryCreated  EventType = "inquiry_created"
	EventAgentApproved   EventType = "agent_approved"
	EventAgentSuspended  EventType = "agent_suspended"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Kind      domain.SubjectKind `json:"kind"`
	SubjectID string             `json:"subject_id"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// PropertyCreatedPayload payload.
type PropertyCreatedPayload struct {
	PropertyID  string             `json:"property_id"`
	AgentID     string             `json:"agent_id"`
	ListingType domain.ListingType `json:"listing_type"`
	Title       string             `json:"title"`
}

// InquiryCreatedPayload payload.
type InquiryCreatedPayload struct {
	InquiryID    string `json:"inquiry_id"`
	ReferenceKey string `json:"reference_key"`
	PropertyID   string `json:"property_id"`
	AgentID      string `json:"agent_id"`
	SeekerID     string `json:"seeker_id"`
}

// AgentStatusPayload payload for approval and suspension events.
type AgentStatusPayload struct {
	AgentID       string             `json:"agent_id"`
	Approved      bool               `json:"approved"`
	AccountStatus domain.AgentStatus `json:"account_status"`
}
