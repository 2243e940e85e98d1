package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/repository"
	"github.com/spec-kit/realty-service/internal/service"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// AdminHandler exposes agent review endpoints.
type AdminHandler struct {
	service *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{service: adminService}
}

// ListAgents GET /admin/agents.
func (h *AdminHandler) ListAgents(c *fiber.Ctx) error {
	filter := repository.AgentFilter{}
	if val := c.Query("approved"); val != "" {
		approved, err := strconv.ParseBool(val)
		if err != nil {
			return apperrors.NewValidationError("invalid approved", fiber.Map{"approved": val})
		}
		filter.Approved = &approved
	}
	limit, offset, err := parsePagination(c)
	if err != nil {
		return err
	}
	filter.Limit = limit
	filter.Offset = offset

	agents, err := h.service.ListAgents(c.Context(), filter)
	if err != nil {
		return err
	}

	items := make([]fiber.Map, 0, len(agents))
	for _, agent := range agents {
		items = append(items, fiber.Map{
			"id":             agent.ID,
			"name":           agent.Name,
			"email":          agent.Email,
			"agency":         agent.Agency,
			"approved":       agent.Approved,
			"account_status": agent.AccountStatus,
			"created_at":     agent.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// ApproveAgent POST /admin/agents/:id/approve.
func (h *AdminHandler) ApproveAgent(c *fiber.Ctx) error {
	return h.transition(c, h.service.ApproveAgent)
}

// SuspendAgent POST /admin/agents/:id/suspend.
func (h *AdminHandler) SuspendAgent(c *fiber.Ctx) error {
	return h.transition(c, h.service.SuspendAgent)
}

// ReinstateAgent POST /admin/agents/:id/reinstate.
func (h *AdminHandler) ReinstateAgent(c *fiber.Ctx) error {
	return h.transition(c, h.service.ReinstateAgent)
}

func (h *AdminHandler) transition(c *fiber.Ctx, fn func(ctx context.Context, adminID, agentID string) (*domain.Agent, error)) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Admin == nil {
		return apperrors.NewUnauthorized("admin required")
	}
	agent, err := fn(c.Context(), principal.Admin.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"id":             agent.ID,
		"approved":       agent.Approved,
		"account_status": agent.AccountStatus,
	}})
}
