package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/observability"
	"github.com/spec-kit/realty-service/internal/repository"
)

const testSecret = "auth-flow-test-secret"

type fakeSeekerRepo struct {
	seekers map[string]*domain.Seeker
	lookups int
}

func (f *fakeSeekerRepo) Create(ctx context.Context, s *domain.Seeker) error { return nil }
func (f *fakeSeekerRepo) Update(ctx context.Context, s *domain.Seeker) error { return nil }

func (f *fakeSeekerRepo) GetByID(ctx context.Context, id string) (*domain.Seeker, error) {
	f.lookups++
	if s, ok := f.seekers[id]; ok {
		return s, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeSeekerRepo) GetByEmail(ctx context.Context, email string) (*domain.Seeker, error) {
	for _, s := range f.seekers {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeAgentRepo struct {
	agents map[string]*domain.Agent
}

func (f *fakeAgentRepo) Create(ctx context.Context, a *domain.Agent) error { return nil }
func (f *fakeAgentRepo) Update(ctx context.Context, a *domain.Agent) error { return nil }

func (f *fakeAgentRepo) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	if a, ok := f.agents[id]; ok {
		return a, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAgentRepo) GetByEmail(ctx context.Context, email string) (*domain.Agent, error) {
	for _, a := range f.agents {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAgentRepo) List(ctx context.Context, filter repository.AgentFilter) ([]domain.Agent, error) {
	out := make([]domain.Agent, 0, len(f.agents))
	for _, a := range f.agents {
		out = append(out, *a)
	}
	return out, nil
}

type fakeAdminRepo struct {
	admins map[string]*domain.Admin
}

func (f *fakeAdminRepo) Update(ctx context.Context, a *domain.Admin) error {
	f.admins[a.ID] = a
	return nil
}

func (f *fakeAdminRepo) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	if a, ok := f.admins[id]; ok {
		return a, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	for _, a := range f.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type authFixture struct {
	app     *fiber.App
	tokens  *auth.TokenManager
	seekers *fakeSeekerRepo
	agents  *fakeAgentRepo
	admins  *fakeAdminRepo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	seekers := &fakeSeekerRepo{seekers: map[string]*domain.Seeker{
		"seeker-1": {ID: "seeker-1", Name: "Sam", Email: "sam@example.com"},
	}}
	agents := &fakeAgentRepo{agents: map[string]*domain.Agent{
		"agent-approved": {ID: "agent-approved", Email: "a@example.com", Approved: true, AccountStatus: domain.AgentStatusActive},
		"agent-pending":  {ID: "agent-pending", Email: "p@example.com", Approved: false, AccountStatus: domain.AgentStatusActive},
		"agent-frozen":   {ID: "agent-frozen", Email: "f@example.com", Approved: true, AccountStatus: domain.AgentStatusSuspended},
	}}
	admins := &fakeAdminRepo{admins: map[string]*domain.Admin{
		"admin-1": {ID: "admin-1", Email: "root@example.com", Role: domain.AdminRoleAdmin},
	}}

	tokens := auth.NewTokenManager(testSecret, 0, 0, 0)
	resolver := auth.NewPrincipalResolver(seekers, agents, admins)
	middleware := auth.NewAuthMiddleware(tokens, resolver)

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)

	app.Get("/listings/mine", middleware.Handle, auth.RequireApprovedAgent(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/favorites", middleware.Handle, auth.RequireSeeker(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/admin/agents", middleware.Handle, auth.RequireAdmin(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	return &authFixture{app: app, tokens: tokens, seekers: seekers, agents: agents, admins: admins}
}

func (f *authFixture) get(t *testing.T, path, bearer string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := f.app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func (f *authFixture) issue(t *testing.T, subjectID string, kind domain.SubjectKind) string {
	t.Helper()
	token, _, err := f.tokens.Issue(subjectID, kind)
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}
	return token
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decoding error body %q: %v", body, err)
	}
	return payload.Error.Code
}

func expiredToken(t *testing.T, subjectID string, kind domain.SubjectKind) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  subjectID,
		"kind": string(kind),
		"exp":  time.Now().Add(-time.Hour).Unix(),
		"iat":  time.Now().Add(-2 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing expired token: %v", err)
	}
	return token
}

func TestMissingCredentialIsUnauthorized(t *testing.T) {
	f := newAuthFixture(t)

	resp := f.get(t, "/favorites", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if code := errorCode(t, resp); code != "UNAUTHORIZED" {
		t.Fatalf("code = %q, want UNAUTHORIZED", code)
	}
}

func TestMalformedAuthorizationHeaderIsUnauthorized(t *testing.T) {
	f := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/favorites", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	resp, err := f.app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestExpiredTokenRejectedWithoutLookup(t *testing.T) {
	f := newAuthFixture(t)

	resp := f.get(t, "/favorites", expiredToken(t, "seeker-1", domain.SubjectKindSeeker))
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	if code := errorCode(t, resp); code != "AUTH_TOKEN_INVALID" {
		t.Fatalf("code = %q, want AUTH_TOKEN_INVALID", code)
	}
	if f.seekers.lookups != 0 {
		t.Fatalf("expired token must be rejected before storage, saw %d lookups", f.seekers.lookups)
	}
}

func TestGarbageTokenIsAuthTokenInvalid(t *testing.T) {
	f := newAuthFixture(t)

	resp := f.get(t, "/favorites", "not.a.jwt")
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	if code := errorCode(t, resp); code != "AUTH_TOKEN_INVALID" {
		t.Fatalf("code = %q, want AUTH_TOKEN_INVALID", code)
	}
}

func TestDeletedAccountTokenIsAuthTokenInvalid(t *testing.T) {
	f := newAuthFixture(t)

	resp := f.get(t, "/favorites", f.issue(t, "seeker-gone", domain.SubjectKindSeeker))
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	if code := errorCode(t, resp); code != "AUTH_TOKEN_INVALID" {
		t.Fatalf("code = %q, want AUTH_TOKEN_INVALID", code)
	}
}

func TestSeekerTokenOnAgentRouteIsForbidden(t *testing.T) {
	f := newAuthFixture(t)

	resp := f.get(t, "/listings/mine", f.issue(t, "seeker-1", domain.SubjectKindSeeker))
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	if code := errorCode(t, resp); code != "FORBIDDEN" {
		t.Fatalf("code = %q, want FORBIDDEN", code)
	}
}

func TestUnapprovedAgentRejectedBeforeSuspensionCheck(t *testing.T) {
	f := newAuthFixture(t)

	resp := f.get(t, "/listings/mine", f.issue(t, "agent-pending", domain.SubjectKindAgent))
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	if code := errorCode(t, resp); code != "AGENT_NOT_APPROVED" {
		t.Fatalf("code = %q, want AGENT_NOT_APPROVED", code)
	}
}

func TestSuspendedAgentIsAgentSuspended(t *testing.T) {
	f := newAuthFixture(t)

	resp := f.get(t, "/listings/mine", f.issue(t, "agent-frozen", domain.SubjectKindAgent))
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	if code := errorCode(t, resp); code != "AGENT_SUSPENDED" {
		t.Fatalf("code = %q, want AGENT_SUSPENDED", code)
	}
}

func TestApprovedActiveAgentPassesGate(t *testing.T) {
	f := newAuthFixture(t)

	resp := f.get(t, "/listings/mine", f.issue(t, "agent-approved", domain.SubjectKindAgent))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestAdminTokenPassesAdminGateOnly(t *testing.T) {
	f := newAuthFixture(t)
	token := f.issue(t, "admin-1", domain.SubjectKindAdmin)

	resp := f.get(t, "/admin/agents", token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin route status = %d, want 200", resp.StatusCode)
	}

	resp = f.get(t, "/favorites", token)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("seeker route status = %d, want 403", resp.StatusCode)
	}
	if code := errorCode(t, resp); code != "FORBIDDEN" {
		t.Fatalf("code = %q, want FORBIDDEN", code)
	}
}
