package dto

import (
	"time"

	"github.com/spec-kit/realty-service/internal/domain"
)

// CreateInquiryRequest payload.
type CreateInquiryRequest struct {
	Message string `json:"message"`
}

// InquiryResponse is the serialized inquiry.
type InquiryResponse struct {
	ID           string               `json:"id"`
	ReferenceKey string               `json:"reference_key"`
	PropertyID   string               `json:"property_id"`
	SeekerID     string               `json:"seeker_id"`
	Message      string               `json:"message"`
	Status       domain.InquiryStatus `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
}

// FromInquiry maps a domain inquiry to its response shape.
func FromInquiry(i *domain.Inquiry) InquiryResponse {
	return InquiryResponse{
		ID:           i.ID,
		ReferenceKey: i.ReferenceKey,
		PropertyID:   i.PropertyID,
		SeekerID:     i.SeekerID,
		Message:      i.Message,
		Status:       i.Status,
		CreatedAt:    i.CreatedAt,
	}
}

// FromInquiries maps a slice of inquiries.
func FromInquiries(inquiries []domain.Inquiry) []InquiryResponse {
	items := make([]InquiryResponse, 0, len(inquiries))
	for i := range inquiries {
		items = append(items, FromInquiry(&inquiries[i]))
	}
	return items
}
