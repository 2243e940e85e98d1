package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/search"
)

const propertyColumns = `id, agent_id, title, description, listing_type, property_type, status,
               price, bedrooms, bathrooms, square_footage, address, city, state, zip_code,
               furnished, pet_friendly, featured, view_count, created_at, updated_at`

// PropertyRepository encapsulates listing persistence.
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error
	Update(ctx context.Context, property *domain.Property) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	ListByAgent(ctx context.Context, agentID string, limit, offset int) ([]domain.Property, error)
	Search(ctx context.Context, criteria search.Criteria) ([]domain.Property, int64, error)
	IncrementViewCount(ctx context.Context, id string) error
}

type propertyRepository struct {
	pool *pgxpool.Pool
}

// NewPropertyRepository instantiates the repository.
func NewPropertyRepository(pool *pgxpool.Pool) PropertyRepository {
	return &propertyRepository{pool: pool}
}

func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) error {
	const query = `
        INSERT INTO properties (agent_id, title, description, listing_type, property_type, status,
                                price, bedrooms, bathrooms, square_footage, address, city, state, zip_code,
                                furnished, pet_friendly, featured)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
        RETURNING id, view_count, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		property.AgentID,
		property.Title,
		property.Description,
		property.ListingType,
		property.PropertyType,
		property.Status,
		property.Price,
		property.Bedrooms,
		property.Bathrooms,
		property.SquareFootage,
		property.Address,
		property.City,
		property.State,
		property.ZipCode,
		property.Furnished,
		property.PetFriendly,
		property.Featured,
	).Scan(&property.ID, &property.ViewCount, &property.CreatedAt, &property.UpdatedAt)
}

func (r *propertyRepository) Update(ctx context.Context, property *domain.Property) error {
	const query = `
        UPDATE properties SET title=$1, description=$2, listing_type=$3, property_type=$4, status=$5,
            price=$6, bedrooms=$7, bathrooms=$8, square_footage=$9, address=$10, city=$11, state=$12,
            zip_code=$13, furnished=$14, pet_friendly=$15, featured=$16, updated_at=NOW()
        WHERE id=$17`
	cmd, err := r.pool.Exec(ctx, query,
		property.Title,
		property.Description,
		property.ListingType,
		property.PropertyType,
		property.Status,
		property.Price,
		property.Bedrooms,
		property.Bathrooms,
		property.SquareFootage,
		property.Address,
		property.City,
		property.State,
		property.ZipCode,
		property.Furnished,
		property.PetFriendly,
		property.Featured,
		property.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM properties WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM properties WHERE id=$1`, propertyColumns)
	var property domain.Property
	if err := r.pool.QueryRow(ctx, query, id).Scan(propertyFields(&property)...); err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) ListByAgent(ctx context.Context, agentID string, limit, offset int) ([]domain.Property, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf(`SELECT %s FROM properties WHERE agent_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		propertyColumns)

	rows, err := r.pool.Query(ctx, query, agentID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProperties(rows)
}

// Search executes the compiled predicate as two statements sharing one
// WHERE clause: a count over all matches and the bounded page. The two run
// as separate round trips, so the total may lag concurrent writes slightly.
func (r *propertyRepository) Search(ctx context.Context, criteria search.Criteria) ([]domain.Property, int64, error) {
	pred := search.Compile(criteria)
	orderBy := search.OrderBy(criteria.SortBy, criteria.SortOrder)
	queries := search.Paginate(propertyColumns, "properties", pred, orderBy, criteria.Limit, criteria.Offset)

	var total int64
	if err := r.pool.QueryRow(ctx, queries.Count.SQL, queries.Count.Args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, queries.Page.SQL, queries.Page.Args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result, err := scanProperties(rows)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *propertyRepository) IncrementViewCount(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE properties SET view_count = view_count + 1 WHERE id=$1`, id)
	return err
}

func propertyFields(p *domain.Property) []any {
	return []any{
		&p.ID,
		&p.AgentID,
		&p.Title,
		&p.Description,
		&p.ListingType,
		&p.PropertyType,
		&p.Status,
		&p.Price,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.SquareFootage,
		&p.Address,
		&p.City,
		&p.State,
		&p.ZipCode,
		&p.Furnished,
		&p.PetFriendly,
		&p.Featured,
		&p.ViewCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	}
}

func scanProperties(rows pgx.Rows) ([]domain.Property, error) {
	var result []domain.Property
	for rows.Next() {
		var property domain.Property
		if err := rows.Scan(propertyFields(&property)...); err != nil {
			return nil, err
		}
		result = append(result, property)
	}
	return result, rows.Err()
}
