package domain

import "time"

// InquiryStatus enumerates inquiry lifecycle states.
type InquiryStatus string

const (
	InquiryStatusNew     InquiryStatus = "new"
	InquiryStatusReplied InquiryStatus = "replied"
	InquiryStatusClosed  InquiryStatus = "closed"
)

// Inquiry is a seeker's message to a listing agent about a property.
type Inquiry struct {
	ID           string
	ReferenceKey string
	PropertyID   string
	SeekerID     string
	Message      string
	Status       InquiryStatus
	CreatedAt    time.Time
}
