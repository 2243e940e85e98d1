package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/api/dto"
	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/service"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// EngagementHandler covers seeker inquiries and favorites plus the agent
// inbox.
type EngagementHandler struct {
	inquiries *service.InquiryService
	favorites *service.FavoriteService
}

// NewEngagementHandler constructs handler.
func NewEngagementHandler(inquiries *service.InquiryService, favorites *service.FavoriteService) *EngagementHandler {
	return &EngagementHandler{inquiries: inquiries, favorites: favorites}
}

// CreateInquiry POST /properties/:id/inquiries.
func (h *EngagementHandler) CreateInquiry(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Seeker == nil {
		return apperrors.NewUnauthorized("seeker required")
	}
	var req dto.CreateInquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	inquiry, err := h.inquiries.Create(c.Context(), principal.Seeker.ID, c.Params("id"), req.Message)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromInquiry(inquiry)})
}

// ListSeekerInquiries GET /seekers/me/inquiries.
func (h *EngagementHandler) ListSeekerInquiries(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Seeker == nil {
		return apperrors.NewUnauthorized("seeker required")
	}
	limit, offset, err := parsePagination(c)
	if err != nil {
		return err
	}
	inquiries, err := h.inquiries.ListForSeeker(c.Context(), principal.Seeker.ID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromInquiries(inquiries)})
}

// ListAgentInquiries GET /agents/me/inquiries.
func (h *EngagementHandler) ListAgentInquiries(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Agent == nil {
		return apperrors.NewUnauthorized("agent required")
	}
	limit, offset, err := parsePagination(c)
	if err != nil {
		return err
	}
	inquiries, err := h.inquiries.ListForAgent(c.Context(), principal.Agent.ID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromInquiries(inquiries)})
}

// MarkInquiryReplied POST /agents/me/inquiries/:id/reply.
func (h *EngagementHandler) MarkInquiryReplied(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Agent == nil {
		return apperrors.NewUnauthorized("agent required")
	}
	if err := h.inquiries.MarkReplied(c.Context(), principal.Agent.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"replied": true}})
}

// AddFavorite PUT /seekers/me/favorites/:propertyID.
func (h *EngagementHandler) AddFavorite(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Seeker == nil {
		return apperrors.NewUnauthorized("seeker required")
	}
	if err := h.favorites.Add(c.Context(), principal.Seeker.ID, c.Params("propertyID")); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"saved": true}})
}

// RemoveFavorite DELETE /seekers/me/favorites/:propertyID.
func (h *EngagementHandler) RemoveFavorite(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Seeker == nil {
		return apperrors.NewUnauthorized("seeker required")
	}
	if err := h.favorites.Remove(c.Context(), principal.Seeker.ID, c.Params("propertyID")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListFavorites GET /seekers/me/favorites.
func (h *EngagementHandler) ListFavorites(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Seeker == nil {
		return apperrors.NewUnauthorized("seeker required")
	}
	limit, offset, err := parsePagination(c)
	if err != nil {
		return err
	}
	properties, err := h.favorites.List(c.Context(), principal.Seeker.ID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromProperties(properties)})
}
