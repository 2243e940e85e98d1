package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/realty-service/internal/domain"
)

// InquiryRepository persists seeker inquiries about listings.
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *domain.Inquiry) error
	GetByID(ctx context.Context, id string) (*domain.Inquiry, error)
	ListBySeeker(ctx context.Context, seekerID string, limit, offset int) ([]domain.Inquiry, error)
	ListByAgent(ctx context.Context, agentID string, limit, offset int) ([]domain.Inquiry, error)
	UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) error
}

type inquiryRepository struct {
	pool *pgxpool.Pool
}

// NewInquiryRepository instantiates the repository.
func NewInquiryRepository(pool *pgxpool.Pool) InquiryRepository {
	return &inquiryRepository{pool: pool}
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	const query = `
        INSERT INTO inquiries (reference_key, property_id, seeker_id, message, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		inquiry.ReferenceKey,
		inquiry.PropertyID,
		inquiry.SeekerID,
		inquiry.Message,
		inquiry.Status,
	).Scan(&inquiry.ID, &inquiry.CreatedAt)
}

func (r *inquiryRepository) GetByID(ctx context.Context, id string) (*domain.Inquiry, error) {
	const query = `
        SELECT id, reference_key, property_id, seeker_id, message, status, created_at
        FROM inquiries WHERE id=$1`
	var inquiry domain.Inquiry
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&inquiry.ID,
		&inquiry.ReferenceKey,
		&inquiry.PropertyID,
		&inquiry.SeekerID,
		&inquiry.Message,
		&inquiry.Status,
		&inquiry.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (r *inquiryRepository) ListBySeeker(ctx context.Context, seekerID string, limit, offset int) ([]domain.Inquiry, error) {
	const query = `
        SELECT id, reference_key, property_id, seeker_id, message, status, created_at
        FROM inquiries WHERE seeker_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, seekerID, limit, offset)
}

func (r *inquiryRepository) ListByAgent(ctx context.Context, agentID string, limit, offset int) ([]domain.Inquiry, error) {
	const query = `
        SELECT i.id, i.reference_key, i.property_id, i.seeker_id, i.message, i.status, i.created_at
        FROM inquiries i
        JOIN properties p ON p.id = i.property_id
        WHERE p.agent_id=$1 ORDER BY i.created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, agentID, limit, offset)
}

func (r *inquiryRepository) UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE inquiries SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *inquiryRepository) list(ctx context.Context, query, subjectID string, limit, offset int) ([]domain.Inquiry, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, query, subjectID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Inquiry
	for rows.Next() {
		var inquiry domain.Inquiry
		if err := rows.Scan(
			&inquiry.ID,
			&inquiry.ReferenceKey,
			&inquiry.PropertyID,
			&inquiry.SeekerID,
			&inquiry.Message,
			&inquiry.Status,
			&inquiry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, inquiry)
	}
	return result, rows.Err()
}
