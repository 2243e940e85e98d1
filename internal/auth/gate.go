package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/domain"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// RequireSeeker ensures a seeker is authenticated.
func RequireSeeker() fiber.Handler {
	return requireKind(domain.SubjectKindSeeker)
}

// RequireAgent ensures an agent is authenticated, regardless of approval.
func RequireAgent() fiber.Handler {
	return requireKind(domain.SubjectKindAgent)
}

// RequireAdmin ensures an administrator is authenticated.
func RequireAdmin() fiber.Handler {
	return requireKind(domain.SubjectKindAdmin)
}

// RequireApprovedAgent gates elevated agent routes (creating or mutating
// listings). Kind is checked before status: status fields are only
// meaningful once kind is confirmed. Approval is checked before suspension
// so the two rejections carry distinct codes.
func RequireApprovedAgent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.Kind != domain.SubjectKindAgent || principal.Agent == nil {
			return apperrors.NewForbidden("agent access required")
		}
		if !principal.Agent.Approved {
			return apperrors.NewAgentNotApproved()
		}
		if principal.Agent.AccountStatus != domain.AgentStatusActive {
			return apperrors.NewAgentSuspended()
		}
		return c.Next()
	}
}

// RequireAnyPrincipal ensures the caller is authenticated as any kind.
func RequireAnyPrincipal() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

func requireKind(kind domain.SubjectKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.Kind != kind {
			return apperrors.NewForbidden(string(kind) + " access required")
		}
		return c.Next()
	}
}
