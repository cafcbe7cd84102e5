package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oatside/gala/gala-backend/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = `id, event_id, name, type, created_at`

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(&c.ID, &c.EventID, &c.Name, &c.Type, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a single category
func (r *CategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (event_id, name, type)
		VALUES ($1, $2, $3)
		RETURNING `+categoryColumns,
		category.EventID, category.Name, string(category.Type),
	)
	return scanCategory(row)
}

// CreateMany inserts a batch of categories in one transaction. The batch is
// all-or-nothing within itself, but callers creating an event first get no
// cross-call rollback: a failure here leaves the event without categories.
func (r *CategoryRepository) CreateMany(categories []*domain.Category) ([]*domain.Category, error) {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	created := make([]*domain.Category, 0, len(categories))
	for _, category := range categories {
		row := tx.QueryRow(ctx, `
			INSERT INTO categories (event_id, name, type)
			VALUES ($1, $2, $3)
			RETURNING `+categoryColumns,
			category.EventID, category.Name, string(category.Type),
		)
		c, err := scanCategory(row)
		if err != nil {
			return nil, err
		}
		created = append(created, c)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a category by id
func (r *CategoryRepository) GetByID(id uuid.UUID) (*domain.Category, error) {
	ctx := context.Background()
	category, err := scanCategory(r.pool.QueryRow(ctx, `
		SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// GetByEvent retrieves all categories for an event in creation order
func (r *CategoryRepository) GetByEvent(eventID uuid.UUID) ([]*domain.Category, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+categoryColumns+` FROM categories
		WHERE event_id = $1 ORDER BY created_at, id`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// Delete removes a category. Entries referencing it keep existing with a null
// category_id (ON DELETE SET NULL) and classify as Unclassified from then on.
func (r *CategoryRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}
