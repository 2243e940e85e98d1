package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/realty-service/internal/domain"
)

// SeekerRepository defines persistence access for property seekers.
type SeekerRepository interface {
	Create(ctx context.Context, seeker *domain.Seeker) error
	Update(ctx context.Context, seeker *domain.Seeker) error
	GetByID(ctx context.Context, id string) (*domain.Seeker, error)
	GetByEmail(ctx context.Context, email string) (*domain.Seeker, error)
}

type seekerRepository struct {
	pool *pgxpool.Pool
}

// NewSeekerRepository returns a Postgres-backed implementation.
func NewSeekerRepository(pool *pgxpool.Pool) SeekerRepository {
	return &seekerRepository{pool: pool}
}

func (r *seekerRepository) Create(ctx context.Context, seeker *domain.Seeker) error {
	const query = `
        INSERT INTO seekers (name, email, password_hash, email_verified)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		seeker.Name,
		seeker.Email,
		seeker.PasswordHash,
		seeker.EmailVerified,
	).Scan(&seeker.ID, &seeker.CreatedAt, &seeker.UpdatedAt)
}

func (r *seekerRepository) Update(ctx context.Context, seeker *domain.Seeker) error {
	const query = `
        UPDATE seekers SET name=$1, email=$2, password_hash=$3, email_verified=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		seeker.Name,
		seeker.Email,
		seeker.PasswordHash,
		seeker.EmailVerified,
		seeker.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *seekerRepository) GetByID(ctx context.Context, id string) (*domain.Seeker, error) {
	const query = `
        SELECT id, name, email, password_hash, email_verified, created_at, updated_at
        FROM seekers WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *seekerRepository) GetByEmail(ctx context.Context, email string) (*domain.Seeker, error) {
	const query = `
        SELECT id, name, email, password_hash, email_verified, created_at, updated_at
        FROM seekers WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *seekerRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Seeker, error) {
	var seeker domain.Seeker
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&seeker.ID,
		&seeker.Name,
		&seeker.Email,
		&seeker.PasswordHash,
		&seeker.EmailVerified,
		&seeker.CreatedAt,
		&seeker.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &seeker, nil
}
