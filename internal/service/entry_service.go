package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oatside/gala/gala-backend/internal/budget"
	"github.com/oatside/gala/gala-backend/internal/domain"
)

// EntryService handles budget entry business logic
type EntryService struct {
	entryRepo    domain.BudgetEntryRepository
	categoryRepo domain.CategoryRepository
	eventRepo    domain.EventRepository
	publisher    RefreshPublisher
}

// NewEntryService creates a new EntryService
func NewEntryService(entryRepo domain.BudgetEntryRepository, categoryRepo domain.CategoryRepository, eventRepo domain.EventRepository, publisher RefreshPublisher) *EntryService {
	return &EntryService{
		entryRepo:    entryRepo,
		categoryRepo: categoryRepo,
		eventRepo:    eventRepo,
		publisher:    publisher,
	}
}

// CreateEntryInput holds the input for creating a budget entry
type CreateEntryInput struct {
	CategoryID          uuid.UUID
	ItemName            string
	Amount              decimal.Decimal
	PaymentMethod       *string
	Receipt             *domain.ReceiptRef
	ToBeReimbursed      bool
	ReimbursementSource *string
	ReimbursementStatus domain.ReimbursementStatus
	EntryDate           time.Time
}

// CreateEntry creates a new budget entry with validation. The referenced
// category must exist under the same event. Reimbursement source and status
// only stick when the entry is flagged; unflagged entries always store
// pending with no source. A zero entry date defaults to today.
func (s *EntryService) CreateEntry(eventID uuid.UUID, input CreateEntryInput) (*domain.BudgetEntry, error) {
	itemName := strings.TrimSpace(input.ItemName)
	if itemName == "" {
		return nil, domain.ErrNameRequired
	}
	if len(itemName) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	if input.Amount.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}

	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, domain.ErrCategoryRequired
	}
	if category.EventID != eventID {
		return nil, domain.ErrCategoryRequired
	}

	entry := &domain.BudgetEntry{
		EventID:             eventID,
		CategoryID:          &input.CategoryID,
		ItemName:            itemName,
		Amount:              input.Amount,
		PaymentMethod:       input.PaymentMethod,
		ToBeReimbursed:      input.ToBeReimbursed,
		ReimbursementStatus: domain.ReimbursementPending,
		EntryDate:           input.EntryDate,
	}
	if input.Receipt != nil {
		url := input.Receipt.URL
		filename := input.Receipt.Filename
		entry.ReceiptURL = &url
		entry.ReceiptFilename = &filename
	}
	if input.ToBeReimbursed {
		entry.ReimbursementSource = input.ReimbursementSource
		if input.ReimbursementStatus == domain.ReimbursementCompleted {
			entry.ReimbursementStatus = domain.ReimbursementCompleted
		}
	}
	if entry.EntryDate.IsZero() {
		entry.EntryDate = time.Now()
	}

	created, err := s.entryRepo.Create(entry)
	if err != nil {
		return nil, err
	}
	s.publisher.PublishRefresh(eventID, ResourceEntry)
	return created, nil
}

// ListEntries returns the event's entries filtered and sorted per the view
// state. The snapshot is re-derived on every call; nothing is cached across
// requests.
func (s *EntryService) ListEntries(eventID uuid.UUID, state budget.ViewState) ([]*domain.BudgetEntry, error) {
	if _, err := s.eventRepo.GetByID(eventID); err != nil {
		return nil, err
	}
	entries, err := s.entryRepo.GetByEvent(eventID)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.GetByEvent(eventID)
	if err != nil {
		return nil, err
	}
	return budget.ApplyView(entries, categories, state), nil
}

// UpdateEntryField applies a single-field inline edit. The raw text goes
// through the same validation the table editor uses: amounts must parse as
// decimals, dates as YYYY-MM-DD, everything else passes through as-is.
func (s *EntryService) UpdateEntryField(id uuid.UUID, field domain.EntryField, raw string) (*domain.BudgetEntry, error) {
	update, err := budget.ParseFieldValue(id, field, raw)
	if err != nil {
		return nil, err
	}
	entry, err := s.entryRepo.UpdateField(update)
	if err != nil {
		return nil, err
	}
	s.publisher.PublishRefresh(entry.EventID, ResourceEntry)
	return entry, nil
}

// ToggleReimbursement flips an entry's reimbursement status between pending
// and completed. Only entries flagged to_be_reimbursed have a status to flip.
func (s *EntryService) ToggleReimbursement(id uuid.UUID) (*domain.BudgetEntry, error) {
	entry, err := s.entryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !entry.ToBeReimbursed {
		return nil, domain.ErrInvalidInput
	}
	toggled, err := s.entryRepo.ToggleReimbursement(id)
	if err != nil {
		return nil, err
	}
	s.publisher.PublishRefresh(toggled.EventID, ResourceEntry)
	return toggled, nil
}

// DeleteEntry permanently deletes a budget entry
func (s *EntryService) DeleteEntry(id uuid.UUID) error {
	entry, err := s.entryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.entryRepo.Delete(id); err != nil {
		return err
	}
	s.publisher.PublishRefresh(entry.EventID, ResourceEntry)
	return nil
}
