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

// BudgetEntryRepository implements domain.BudgetEntryRepository using PostgreSQL
type BudgetEntryRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetEntryRepository creates a new BudgetEntryRepository
func NewBudgetEntryRepository(pool *pgxpool.Pool) *BudgetEntryRepository {
	return &BudgetEntryRepository{pool: pool}
}

const entryColumns = `id, event_id, category_id, item_name, amount, payment_method,
	receipt_url, receipt_filename, to_be_reimbursed, reimbursement_source,
	reimbursement_status, entry_date, created_at, updated_at`

func scanEntry(row pgx.Row) (*domain.BudgetEntry, error) {
	var (
		e          domain.BudgetEntry
		categoryID pgtype.UUID
		amount     pgtype.Numeric
		payment    pgtype.Text
		receipt    pgtype.Text
		filename   pgtype.Text
		source     pgtype.Text
		entryDate  pgtype.Date
	)
	err := row.Scan(&e.ID, &e.EventID, &categoryID, &e.ItemName, &amount, &payment,
		&receipt, &filename, &e.ToBeReimbursed, &source,
		&e.ReimbursementStatus, &entryDate, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if categoryID.Valid {
		id := uuid.UUID(categoryID.Bytes)
		e.CategoryID = &id
	}
	e.Amount = numericToDecimal(amount)
	e.PaymentMethod = textToPtr(payment)
	e.ReceiptURL = textToPtr(receipt)
	e.ReceiptFilename = textToPtr(filename)
	e.ReimbursementSource = textToPtr(source)
	e.EntryDate = entryDate.Time
	return &e, nil
}

// Create inserts a new budget entry
func (r *BudgetEntryRepository) Create(entry *domain.BudgetEntry) (*domain.BudgetEntry, error) {
	ctx := context.Background()

	var categoryID pgtype.UUID
	if entry.CategoryID != nil {
		categoryID = pgtype.UUID{Bytes: *entry.CategoryID, Valid: true}
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO budget_entries (
			event_id, category_id, item_name, amount, payment_method,
			receipt_url, receipt_filename, to_be_reimbursed,
			reimbursement_source, reimbursement_status, entry_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+entryColumns,
		entry.EventID,
		categoryID,
		entry.ItemName,
		decimalToNumeric(entry.Amount),
		ptrToText(entry.PaymentMethod),
		ptrToText(entry.ReceiptURL),
		ptrToText(entry.ReceiptFilename),
		entry.ToBeReimbursed,
		ptrToText(entry.ReimbursementSource),
		string(entry.ReimbursementStatus),
		pgtype.Date{Time: entry.EntryDate, Valid: true},
	)
	return scanEntry(row)
}

// GetByID retrieves a budget entry by id
func (r *BudgetEntryRepository) GetByID(id uuid.UUID) (*domain.BudgetEntry, error) {
	ctx := context.Background()
	entry, err := scanEntry(r.pool.QueryRow(ctx, `
		SELECT `+entryColumns+` FROM budget_entries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

// GetByEvent retrieves all entries for an event, newest entry date first.
// This is the snapshot order the view engine receives; filtering and sorting
// happen in memory on top of it.
func (r *BudgetEntryRepository) GetByEvent(eventID uuid.UUID) ([]*domain.BudgetEntry, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+` FROM budget_entries
		WHERE event_id = $1 ORDER BY entry_date DESC, created_at DESC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.BudgetEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// UpdateField applies a validated single-field update
func (r *BudgetEntryRepository) UpdateField(update *domain.EntryFieldUpdate) (*domain.BudgetEntry, error) {
	ctx := context.Background()

	var query string
	var value any
	switch update.Field {
	case domain.EntryFieldAmount:
		query = `UPDATE budget_entries SET amount = $2, updated_at = now() WHERE id = $1 RETURNING ` + entryColumns
		value = decimalToNumeric(*update.Amount)
	case domain.EntryFieldItemName:
		query = `UPDATE budget_entries SET item_name = $2, updated_at = now() WHERE id = $1 RETURNING ` + entryColumns
		value = *update.Text
	case domain.EntryFieldPaymentMethod:
		query = `UPDATE budget_entries SET payment_method = $2, updated_at = now() WHERE id = $1 RETURNING ` + entryColumns
		value = *update.Text
	case domain.EntryFieldEntryDate:
		query = `UPDATE budget_entries SET entry_date = $2, updated_at = now() WHERE id = $1 RETURNING ` + entryColumns
		value = pgtype.Date{Time: *update.Date, Valid: true}
	default:
		return nil, domain.ErrInvalidEntryField
	}

	entry, err := scanEntry(r.pool.QueryRow(ctx, query, update.EntryID, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

// SetReceipt stores or clears the receipt url/filename pair
func (r *BudgetEntryRepository) SetReceipt(id uuid.UUID, receipt *domain.ReceiptRef) (*domain.BudgetEntry, error) {
	ctx := context.Background()

	var url, filename pgtype.Text
	if receipt != nil {
		url = pgtype.Text{String: receipt.URL, Valid: true}
		filename = pgtype.Text{String: receipt.Filename, Valid: true}
	}

	entry, err := scanEntry(r.pool.QueryRow(ctx, `
		UPDATE budget_entries
		SET receipt_url = $2, receipt_filename = $3, updated_at = now()
		WHERE id = $1
		RETURNING `+entryColumns, id, url, filename))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

// ToggleReimbursement flips the reimbursement status between pending and completed
func (r *BudgetEntryRepository) ToggleReimbursement(id uuid.UUID) (*domain.BudgetEntry, error) {
	ctx := context.Background()
	entry, err := scanEntry(r.pool.QueryRow(ctx, `
		UPDATE budget_entries
		SET reimbursement_status = CASE reimbursement_status
			WHEN 'pending' THEN 'completed'
			ELSE 'pending'
		END,
		updated_at = now()
		WHERE id = $1
		RETURNING `+entryColumns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

// Delete removes a budget entry
func (r *BudgetEntryRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM budget_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}
