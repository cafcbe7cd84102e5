package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oatside/gala/gala-backend/internal/domain"
)

// EventRepository implements domain.EventRepository using PostgreSQL
type EventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumns = `id, name, allocated_budget, venue, start_date, end_date, status, created_at, updated_at`

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var (
		e      domain.Event
		budget pgtype.Numeric
		venue  pgtype.Text
		start  pgtype.Date
		end    pgtype.Date
	)
	err := row.Scan(&e.ID, &e.Name, &budget, &venue, &start, &end, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.AllocatedBudget = numericToDecimal(budget)
	e.Venue = textToPtr(venue)
	e.StartDate = dateToPtr(start)
	e.EndDate = dateToPtr(end)
	return &e, nil
}

// Create inserts a new event
func (r *EventRepository) Create(event *domain.Event) (*domain.Event, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO events (name, allocated_budget, venue, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+eventColumns,
		event.Name,
		decimalToNumeric(event.AllocatedBudget),
		ptrToText(event.Venue),
		ptrToDate(event.StartDate),
		ptrToDate(event.EndDate),
		string(event.Status),
	)
	return scanEvent(row)
}

// GetByID retrieves an event by id
func (r *EventRepository) GetByID(id uuid.UUID) (*domain.Event, error) {
	ctx := context.Background()
	event, err := scanEvent(r.pool.QueryRow(ctx, `
		SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// GetAll retrieves all events, newest first
func (r *EventRepository) GetAll() ([]*domain.Event, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+` FROM events ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// GetAllWithTotals retrieves all events, newest first, with income and
// expense sums rolled up per event. Entries without a category join to no
// type and fall out of both sums.
func (r *EventRepository) GetAllWithTotals() ([]*domain.EventWithTotals, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT e.id, e.name, e.allocated_budget, e.venue, e.start_date, e.end_date,
			e.status, e.created_at, e.updated_at,
			COALESCE(SUM(b.amount) FILTER (WHERE c.type = 'Income'), 0),
			COALESCE(SUM(b.amount) FILTER (WHERE c.type = 'Expense'), 0)
		FROM events e
		LEFT JOIN budget_entries b ON b.event_id = e.id
		LEFT JOIN categories c ON c.id = b.category_id
		GROUP BY e.id
		ORDER BY e.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.EventWithTotals
	for rows.Next() {
		var (
			et      domain.EventWithTotals
			budget  pgtype.Numeric
			venue   pgtype.Text
			start   pgtype.Date
			end     pgtype.Date
			income  pgtype.Numeric
			expense pgtype.Numeric
		)
		err := rows.Scan(&et.ID, &et.Name, &budget, &venue, &start, &end,
			&et.Status, &et.CreatedAt, &et.UpdatedAt, &income, &expense)
		if err != nil {
			return nil, err
		}
		et.AllocatedBudget = numericToDecimal(budget)
		et.Venue = textToPtr(venue)
		et.StartDate = dateToPtr(start)
		et.EndDate = dateToPtr(end)
		et.TotalIncome = numericToDecimal(income)
		et.TotalExpenses = numericToDecimal(expense)
		events = append(events, &et)
	}
	return events, rows.Err()
}

// Update applies the non-nil fields of update to the event
func (r *EventRepository) Update(id uuid.UUID, update *domain.EventUpdate) (*domain.Event, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE events SET
			name = COALESCE($2, name),
			allocated_budget = COALESCE($3, allocated_budget),
			venue = COALESCE($4, venue),
			start_date = COALESCE($5, start_date),
			end_date = COALESCE($6, end_date),
			status = COALESCE($7, status),
			updated_at = now()
		WHERE id = $1
		RETURNING `+eventColumns,
		id,
		update.Name,
		updateBudget(update),
		ptrToText(update.Venue),
		ptrToDate(update.StartDate),
		ptrToDate(update.EndDate),
		updateStatus(update),
	)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// Delete removes an event; categories and entries cascade at the schema level
func (r *EventRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func updateBudget(update *domain.EventUpdate) pgtype.Numeric {
	if update.AllocatedBudget == nil {
		return pgtype.Numeric{}
	}
	return decimalToNumeric(*update.AllocatedBudget)
}

func updateStatus(update *domain.EventUpdate) pgtype.Text {
	if update.Status == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: string(*update.Status), Valid: true}
}
