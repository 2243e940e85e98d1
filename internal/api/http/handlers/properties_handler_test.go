package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	httpapi "github.com/spec-kit/realty-service/internal/api/http"
	"github.com/spec-kit/realty-service/internal/api/http/handlers"
	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/observability"
	"github.com/spec-kit/realty-service/internal/search"
	"github.com/spec-kit/realty-service/internal/service"
)

// fakePropertyRepo serves canned listings and records the criteria the
// handler compiled from the query string.
type fakePropertyRepo struct {
	rows         []domain.Property
	lastCriteria search.Criteria
	viewBumps    map[string]int
}

func newFakePropertyRepo(rows []domain.Property) *fakePropertyRepo {
	return &fakePropertyRepo{rows: rows, viewBumps: map[string]int{}}
}

func (f *fakePropertyRepo) Create(ctx context.Context, p *domain.Property) error { return nil }
func (f *fakePropertyRepo) Update(ctx context.Context, p *domain.Property) error { return nil }
func (f *fakePropertyRepo) Delete(ctx context.Context, id string) error          { return nil }

func (f *fakePropertyRepo) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			row := f.rows[i]
			return &row, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakePropertyRepo) ListByAgent(ctx context.Context, agentID string, limit, offset int) ([]domain.Property, error) {
	var out []domain.Property
	for _, p := range f.rows {
		if p.AgentID == agentID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePropertyRepo) Search(ctx context.Context, criteria search.Criteria) ([]domain.Property, int64, error) {
	f.lastCriteria = criteria
	total := int64(len(f.rows))
	start := criteria.Offset
	if start > len(f.rows) {
		start = len(f.rows)
	}
	end := start + criteria.Limit
	if end > len(f.rows) {
		end = len(f.rows)
	}
	return f.rows[start:end], total, nil
}

func (f *fakePropertyRepo) IncrementViewCount(ctx context.Context, id string) error {
	f.viewBumps[id]++
	return nil
}

func cannedListings(n int) []domain.Property {
	rows := make([]domain.Property, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, domain.Property{
			ID:           fmt.Sprintf("prop-%02d", i),
			AgentID:      "agent-1",
			Title:        fmt.Sprintf("Listing %d", i),
			ListingType:  domain.ListingTypeSale,
			PropertyType: domain.PropertyTypeHouse,
			Status:       domain.PropertyStatusActive,
			Price:        200000 + float64(i)*1000,
			City:         "Austin",
			State:        "TX",
		})
	}
	return rows
}

func newSearchApp(repo *fakePropertyRepo) *fiber.App {
	svc := service.NewPropertyService(repo, nil, search.Bounds{DefaultLimit: 20, MaxLimit: 100}, zap.NewNop())
	handler := handlers.NewPropertiesHandler(svc)

	app := fiber.New()
	httpapi.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	app.Get("/properties", handler.Search)
	app.Get("/properties/:id", handler.Get)
	return app
}

type searchEnvelope struct {
	Data       []json.RawMessage `json:"data"`
	Pagination search.PageMeta   `json:"pagination"`
}

func doSearch(t *testing.T, app *fiber.App, target string) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return resp, body
}

func TestSearchPagesResults(t *testing.T) {
	repo := newFakePropertyRepo(cannedListings(25))
	app := newSearchApp(repo)

	resp, body := doSearch(t, app, "/properties?limit=10")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}

	var envelope searchEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(envelope.Data) != 10 {
		t.Fatalf("page size = %d, want 10", len(envelope.Data))
	}
	if envelope.Pagination.Total != 25 {
		t.Fatalf("total = %d, want 25", envelope.Pagination.Total)
	}
	if !envelope.Pagination.HasMore {
		t.Fatal("has_more should be true with 25 rows and limit 10")
	}
}

func TestSearchAppliesDefaultLimit(t *testing.T) {
	repo := newFakePropertyRepo(cannedListings(5))
	app := newSearchApp(repo)

	resp, body := doSearch(t, app, "/properties")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	if repo.lastCriteria.Limit != 20 || repo.lastCriteria.Offset != 0 {
		t.Fatalf("criteria bounds = %d/%d, want 20/0", repo.lastCriteria.Limit, repo.lastCriteria.Offset)
	}

	var envelope searchEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if envelope.Pagination.HasMore {
		t.Fatal("has_more should be false when all rows fit one page")
	}
}

func TestSearchMapsQueryParametersOntoCriteria(t *testing.T) {
	repo := newFakePropertyRepo(cannedListings(3))
	app := newSearchApp(repo)

	target := "/properties?city=Austin&state=tx&min_price=300000&max_price=600000" +
		"&listing_type=sale&property_type=house&property_type=condo" +
		"&bedrooms=3&furnished=true&sort_by=price&sort_order=asc"
	resp, body := doSearch(t, app, target)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}

	got := repo.lastCriteria
	if got.City == nil || *got.City != "Austin" {
		t.Fatalf("city = %v, want Austin", got.City)
	}
	if got.State == nil || *got.State != "tx" {
		t.Fatalf("state = %v, want tx", got.State)
	}
	if got.MinPrice == nil || *got.MinPrice != 300000 {
		t.Fatalf("min_price = %v, want 300000", got.MinPrice)
	}
	if got.MaxPrice == nil || *got.MaxPrice != 600000 {
		t.Fatalf("max_price = %v, want 600000", got.MaxPrice)
	}
	if got.ListingType == nil || *got.ListingType != domain.ListingTypeSale {
		t.Fatalf("listing_type = %v, want sale", got.ListingType)
	}
	wantTypes := []domain.PropertyType{domain.PropertyTypeHouse, domain.PropertyTypeCondo}
	if len(got.PropertyTypes) != len(wantTypes) {
		t.Fatalf("property_types = %v, want %v", got.PropertyTypes, wantTypes)
	}
	for i, pt := range wantTypes {
		if got.PropertyTypes[i] != pt {
			t.Fatalf("property_types[%d] = %v, want %v", i, got.PropertyTypes[i], pt)
		}
	}
	if got.MinBedrooms == nil || *got.MinBedrooms != 3 {
		t.Fatalf("bedrooms = %v, want 3", got.MinBedrooms)
	}
	if got.Furnished == nil || !*got.Furnished {
		t.Fatalf("furnished = %v, want true", got.Furnished)
	}
	if got.SortBy != "price" || got.SortOrder != "asc" {
		t.Fatalf("sort = %q/%q, want price/asc", got.SortBy, got.SortOrder)
	}
}

func TestSearchRejectsMalformedParameters(t *testing.T) {
	repo := newFakePropertyRepo(cannedListings(1))
	app := newSearchApp(repo)

	cases := []struct {
		name   string
		target string
	}{
		{"non-numeric min_price", "/properties?min_price=cheap"},
		{"non-numeric bedrooms", "/properties?bedrooms=many"},
		{"non-boolean furnished", "/properties?furnished=kinda"},
		{"unknown listing_type", "/properties?listing_type=lease"},
		{"unknown property_type", "/properties?property_type=castle"},
		{"non-numeric limit", "/properties?limit=ten"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := doSearch(t, app, tc.target)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400, body %s", resp.StatusCode, body)
			}
			var payload struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.Unmarshal(body, &payload); err != nil {
				t.Fatalf("decoding error body %q: %v", body, err)
			}
			if payload.Error.Code != "VALIDATION_FAILED" {
				t.Fatalf("code = %q, want VALIDATION_FAILED", payload.Error.Code)
			}
		})
	}
}

func TestGetPublicListingBumpsViewCount(t *testing.T) {
	repo := newFakePropertyRepo(cannedListings(2))
	app := newSearchApp(repo)

	resp, body := doSearch(t, app, "/properties/prop-00")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	if repo.viewBumps["prop-00"] != 1 {
		t.Fatalf("view bumps = %d, want 1", repo.viewBumps["prop-00"])
	}
}

func TestGetHiddenListingIsNotFound(t *testing.T) {
	rows := cannedListings(1)
	rows[0].Status = domain.PropertyStatusDraft
	repo := newFakePropertyRepo(rows)
	app := newSearchApp(repo)

	resp, body := doSearch(t, app, "/properties/prop-00")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body %s", resp.StatusCode, body)
	}
	if repo.viewBumps["prop-00"] != 0 {
		t.Fatal("hidden listing must not accrue views")
	}
}
