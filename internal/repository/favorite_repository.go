package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/realty-service/internal/domain"
)

// FavoriteRepository persists seeker saved-property links.
type FavoriteRepository interface {
	Add(ctx context.Context, seekerID, propertyID string) error
	Remove(ctx context.Context, seekerID, propertyID string) error
	ListBySeeker(ctx context.Context, seekerID string, limit, offset int) ([]domain.Property, error)
	Exists(ctx context.Context, seekerID, propertyID string) (bool, error)
}

type favoriteRepository struct {
	pool *pgxpool.Pool
}

// NewFavoriteRepository instantiates the repository.
func NewFavoriteRepository(pool *pgxpool.Pool) FavoriteRepository {
	return &favoriteRepository{pool: pool}
}

func (r *favoriteRepository) Add(ctx context.Context, seekerID, propertyID string) error {
	const query = `
        INSERT INTO favorites (seeker_id, property_id)
        VALUES ($1,$2)
        ON CONFLICT (seeker_id, property_id) DO NOTHING`
	_, err := r.pool.Exec(ctx, query, seekerID, propertyID)
	return err
}

func (r *favoriteRepository) Remove(ctx context.Context, seekerID, propertyID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM favorites WHERE seeker_id=$1 AND property_id=$2`, seekerID, propertyID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *favoriteRepository) ListBySeeker(ctx context.Context, seekerID string, limit, offset int) ([]domain.Property, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT p.id, p.agent_id, p.title, p.description, p.listing_type, p.property_type, p.status,
               p.price, p.bedrooms, p.bathrooms, p.square_footage, p.address, p.city, p.state, p.zip_code,
               p.furnished, p.pet_friendly, p.featured, p.view_count, p.created_at, p.updated_at
        FROM favorites f
        JOIN properties p ON p.id = f.property_id
        WHERE f.seeker_id=$1 ORDER BY f.created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, seekerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProperties(rows)
}

func (r *favoriteRepository) Exists(ctx context.Context, seekerID, propertyID string) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM favorites WHERE seeker_id=$1 AND property_id=$2)`,
		seekerID, propertyID,
	).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
