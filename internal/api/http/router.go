package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/api/http/handlers"
	"github.com/spec-kit/realty-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Properties     *handlers.PropertiesHandler
	Engagement     *handlers.EngagementHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/seekers/register", cfg.Auth.RegisterSeeker)
	authGroup.Post("/seekers/login", cfg.Auth.LoginSeeker)
	authGroup.Post("/agents/register", cfg.Auth.RegisterAgent)
	authGroup.Post("/agents/login", cfg.Auth.LoginAgent)
	authGroup.Post("/admins/login", cfg.Auth.LoginAdmin)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, auth.RequireAnyPrincipal(), cfg.Auth.ChangePassword)

	// public search and detail
	app.Get("/properties", cfg.Properties.Search)
	app.Get("/properties/:id", cfg.Properties.Get)

	// listing management, approved active agents only. Registered as
	// explicit routes: a /properties group would attach the agent gate as
	// prefix middleware and swallow the seeker inquiry route below.
	app.Post("/properties", cfg.AuthMiddleware.Handle, auth.RequireApprovedAgent(), cfg.Properties.Create)
	app.Put("/properties/:id", cfg.AuthMiddleware.Handle, auth.RequireApprovedAgent(), cfg.Properties.Update)
	app.Delete("/properties/:id", cfg.AuthMiddleware.Handle, auth.RequireApprovedAgent(), cfg.Properties.Delete)

	agents := app.Group("/agents/me", cfg.AuthMiddleware.Handle, auth.RequireAgent())
	agents.Get("/properties", cfg.Properties.ListMine)
	agents.Get("/inquiries", cfg.Engagement.ListAgentInquiries)
	agents.Post("/inquiries/:id/reply", cfg.Engagement.MarkInquiryReplied)

	seekers := app.Group("/seekers/me", cfg.AuthMiddleware.Handle, auth.RequireSeeker())
	seekers.Get("/inquiries", cfg.Engagement.ListSeekerInquiries)
	seekers.Get("/favorites", cfg.Engagement.ListFavorites)
	seekers.Put("/favorites/:propertyID", cfg.Engagement.AddFavorite)
	seekers.Delete("/favorites/:propertyID", cfg.Engagement.RemoveFavorite)

	app.Post("/properties/:id/inquiries", cfg.AuthMiddleware.Handle, auth.RequireSeeker(), cfg.Engagement.CreateInquiry)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/agents", cfg.Admin.ListAgents)
	admin.Post("/agents/:id/approve", cfg.Admin.ApproveAgent)
	admin.Post("/agents/:id/suspend", cfg.Admin.SuspendAgent)
	admin.Post("/agents/:id/reinstate", cfg.Admin.ReinstateAgent)
}
