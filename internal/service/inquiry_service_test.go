package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/search"
)

type memPropertyRepo struct {
	byID map[string]*domain.Property
}

func newMemPropertyRepo(rows ...*domain.Property) *memPropertyRepo {
	repo := &memPropertyRepo{byID: map[string]*domain.Property{}}
	for _, row := range rows {
		repo.byID[row.ID] = row
	}
	return repo
}

func (m *memPropertyRepo) Create(ctx context.Context, p *domain.Property) error {
	p.ID = uuid.NewString()
	m.byID[p.ID] = p
	return nil
}

func (m *memPropertyRepo) Update(ctx context.Context, p *domain.Property) error {
	m.byID[p.ID] = p
	return nil
}

func (m *memPropertyRepo) Delete(ctx context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

func (m *memPropertyRepo) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	if p, ok := m.byID[id]; ok {
		return p, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memPropertyRepo) ListByAgent(ctx context.Context, agentID string, limit, offset int) ([]domain.Property, error) {
	var out []domain.Property
	for _, p := range m.byID {
		if p.AgentID == agentID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memPropertyRepo) Search(ctx context.Context, criteria search.Criteria) ([]domain.Property, int64, error) {
	out := make([]domain.Property, 0, len(m.byID))
	for _, p := range m.byID {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (m *memPropertyRepo) IncrementViewCount(ctx context.Context, id string) error {
	if p, ok := m.byID[id]; ok {
		p.ViewCount++
	}
	return nil
}

type memInquiryRepo struct {
	byID       map[string]*domain.Inquiry
	lastLimit  int
	lastOffset int
}

func newMemInquiryRepo() *memInquiryRepo {
	return &memInquiryRepo{byID: map[string]*domain.Inquiry{}}
}

func (m *memInquiryRepo) Create(ctx context.Context, inq *domain.Inquiry) error {
	inq.ID = uuid.NewString()
	m.byID[inq.ID] = inq
	return nil
}

func (m *memInquiryRepo) GetByID(ctx context.Context, id string) (*domain.Inquiry, error) {
	if inq, ok := m.byID[id]; ok {
		return inq, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memInquiryRepo) ListBySeeker(ctx context.Context, seekerID string, limit, offset int) ([]domain.Inquiry, error) {
	m.lastLimit, m.lastOffset = limit, offset
	var out []domain.Inquiry
	for _, inq := range m.byID {
		if inq.SeekerID == seekerID {
			out = append(out, *inq)
		}
	}
	return out, nil
}

func (m *memInquiryRepo) ListByAgent(ctx context.Context, agentID string, limit, offset int) ([]domain.Inquiry, error) {
	return nil, nil
}

func (m *memInquiryRepo) UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) error {
	if inq, ok := m.byID[id]; ok {
		inq.Status = status
		return nil
	}
	return pgx.ErrNoRows
}

func newTestInquiryService(properties *memPropertyRepo) (*InquiryService, *memInquiryRepo) {
	inquiries := newMemInquiryRepo()
	svc := NewInquiryService(inquiries, properties, nil, search.Bounds{DefaultLimit: 20, MaxLimit: 100})
	return svc, inquiries
}

func TestCreateInquiryOnPublicListing(t *testing.T) {
	properties := newMemPropertyRepo(
		&domain.Property{ID: "prop-1", AgentID: "agent-1", Status: domain.PropertyStatusActive},
		&domain.Property{ID: "prop-2", AgentID: "agent-1", Status: domain.PropertyStatusPending},
	)
	svc, inquiries := newTestInquiryService(properties)
	ctx := context.Background()

	for _, propertyID := range []string{"prop-1", "prop-2"} {
		inquiry, err := svc.Create(ctx, "seeker-1", propertyID, "Is this still available?")
		if err != nil {
			t.Fatalf("create on %s: %v", propertyID, err)
		}
		if inquiry.Status != domain.InquiryStatusNew {
			t.Fatalf("status = %q, want new", inquiry.Status)
		}
		if inquiry.ReferenceKey == "" {
			t.Fatal("inquiry missing reference key")
		}
	}
	if len(inquiries.byID) != 2 {
		t.Fatalf("persisted %d inquiries, want 2", len(inquiries.byID))
	}
}

func TestCreateInquiryOnHiddenListingIsNotFound(t *testing.T) {
	hidden := []domain.PropertyStatus{
		domain.PropertyStatusDraft,
		domain.PropertyStatusSold,
		domain.PropertyStatusRented,
	}
	for _, status := range hidden {
		t.Run(string(status), func(t *testing.T) {
			properties := newMemPropertyRepo(
				&domain.Property{ID: "prop-1", AgentID: "agent-1", Status: status},
			)
			svc, inquiries := newTestInquiryService(properties)

			_, err := svc.Create(context.Background(), "seeker-1", "prop-1", "hello")
			if err == nil {
				t.Fatal("hidden listing should not accept inquiries")
			}
			if code := domainCode(t, err); code != "NOT_FOUND" {
				t.Fatalf("code = %q, want NOT_FOUND", code)
			}
			if len(inquiries.byID) != 0 {
				t.Fatal("no inquiry should be persisted")
			}
		})
	}
}

func TestCreateInquiryBlankMessageRejected(t *testing.T) {
	properties := newMemPropertyRepo(
		&domain.Property{ID: "prop-1", AgentID: "agent-1", Status: domain.PropertyStatusActive},
	)
	svc, _ := newTestInquiryService(properties)

	_, err := svc.Create(context.Background(), "seeker-1", "prop-1", "   ")
	if err == nil {
		t.Fatal("blank message should be rejected")
	}
	if code := domainCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("code = %q, want VALIDATION_FAILED", code)
	}
}

func TestMarkRepliedEnforcesListingOwnership(t *testing.T) {
	properties := newMemPropertyRepo(
		&domain.Property{ID: "prop-1", AgentID: "agent-1", Status: domain.PropertyStatusActive},
	)
	svc, inquiries := newTestInquiryService(properties)
	ctx := context.Background()

	inquiry, err := svc.Create(ctx, "seeker-1", "prop-1", "hello")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = svc.MarkReplied(ctx, "agent-2", inquiry.ID)
	if err == nil {
		t.Fatal("foreign agent should not transition the inquiry")
	}
	if code := domainCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("code = %q, want FORBIDDEN", code)
	}

	if err := svc.MarkReplied(ctx, "agent-1", inquiry.ID); err != nil {
		t.Fatalf("owner reply: %v", err)
	}
	if got := inquiries.byID[inquiry.ID].Status; got != domain.InquiryStatusReplied {
		t.Fatalf("status = %q, want replied", got)
	}
}

func TestListBoundsNormalized(t *testing.T) {
	properties := newMemPropertyRepo()
	svc, inquiries := newTestInquiryService(properties)
	ctx := context.Background()

	if _, err := svc.ListForSeeker(ctx, "seeker-1", -5, -10); err != nil {
		t.Fatalf("list: %v", err)
	}
	if inquiries.lastLimit != 20 || inquiries.lastOffset != 0 {
		t.Fatalf("repo saw %d/%d, want defaults 20/0", inquiries.lastLimit, inquiries.lastOffset)
	}

	if _, err := svc.ListForSeeker(ctx, "seeker-1", 5000, 0); err != nil {
		t.Fatalf("list: %v", err)
	}
	if inquiries.lastLimit != 100 {
		t.Fatalf("repo saw limit %d, want cap 100", inquiries.lastLimit)
	}
}
