package testutil

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oatside/gala/gala-backend/internal/domain"
)

// MockEventRepository is a mock implementation of domain.EventRepository
type MockEventRepository struct {
	Events   map[uuid.UUID]*domain.Event
	Order    []uuid.UUID
	Totals   map[uuid.UUID]domain.EventWithTotals
	CreateFn func(event *domain.Event) (*domain.Event, error)
	UpdateFn func(id uuid.UUID, update *domain.EventUpdate) (*domain.Event, error)
}

// NewMockEventRepository creates a new MockEventRepository
func NewMockEventRepository() *MockEventRepository {
	return &MockEventRepository{
		Events: make(map[uuid.UUID]*domain.Event),
		Totals: make(map[uuid.UUID]domain.EventWithTotals),
	}
}

// Create stores a new event
func (m *MockEventRepository) Create(event *domain.Event) (*domain.Event, error) {
	if m.CreateFn != nil {
		return m.CreateFn(event)
	}
	event.ID = uuid.New()
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	m.Events[event.ID] = event
	m.Order = append(m.Order, event.ID)
	return event, nil
}

// GetByID retrieves an event by ID
func (m *MockEventRepository) GetByID(id uuid.UUID) (*domain.Event, error) {
	if event, ok := m.Events[id]; ok {
		return event, nil
	}
	return nil, domain.ErrEventNotFound
}

// GetAll retrieves all events in insertion order
func (m *MockEventRepository) GetAll() ([]*domain.Event, error) {
	events := make([]*domain.Event, 0, len(m.Order))
	for _, id := range m.Order {
		if event, ok := m.Events[id]; ok {
			events = append(events, event)
		}
	}
	return events, nil
}

// GetAllWithTotals retrieves all events in insertion order with rollups taken
// from the Totals map (zero when absent)
func (m *MockEventRepository) GetAllWithTotals() ([]*domain.EventWithTotals, error) {
	events := make([]*domain.EventWithTotals, 0, len(m.Order))
	for _, id := range m.Order {
		event, ok := m.Events[id]
		if !ok {
			continue
		}
		et := &domain.EventWithTotals{Event: *event}
		if totals, ok := m.Totals[id]; ok {
			et.TotalIncome = totals.TotalIncome
			et.TotalExpenses = totals.TotalExpenses
		}
		events = append(events, et)
	}
	return events, nil
}

// Update applies set fields of the update to a stored event
func (m *MockEventRepository) Update(id uuid.UUID, update *domain.EventUpdate) (*domain.Event, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(id, update)
	}
	event, ok := m.Events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	if update.Name != nil {
		event.Name = *update.Name
	}
	if update.AllocatedBudget != nil {
		event.AllocatedBudget = *update.AllocatedBudget
	}
	if update.Venue != nil {
		event.Venue = update.Venue
	}
	if update.StartDate != nil {
		event.StartDate = update.StartDate
	}
	if update.EndDate != nil {
		event.EndDate = update.EndDate
	}
	if update.Status != nil {
		event.Status = *update.Status
	}
	event.UpdatedAt = time.Now()
	return event, nil
}

// Delete removes an event
func (m *MockEventRepository) Delete(id uuid.UUID) error {
	if _, ok := m.Events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(m.Events, id)
	return nil
}

// AddEvent adds an event to the mock repository (helper for tests)
func (m *MockEventRepository) AddEvent(event *domain.Event) {
	m.Events[event.ID] = event
	m.Order = append(m.Order, event.ID)
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[uuid.UUID]*domain.Category
	Order      []uuid.UUID
	CreateFn   func(category *domain.Category) (*domain.Category, error)
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[uuid.UUID]*domain.Category),
	}
}

// Create stores a new category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	if m.CreateFn != nil {
		return m.CreateFn(category)
	}
	category.ID = uuid.New()
	category.CreatedAt = time.Now()
	m.Categories[category.ID] = category
	m.Order = append(m.Order, category.ID)
	return category, nil
}

// CreateMany stores a batch of categories
func (m *MockCategoryRepository) CreateMany(categories []*domain.Category) ([]*domain.Category, error) {
	created := make([]*domain.Category, 0, len(categories))
	for _, category := range categories {
		c, err := m.Create(category)
		if err != nil {
			return nil, err
		}
		created = append(created, c)
	}
	return created, nil
}

// GetByID retrieves a category by ID
func (m *MockCategoryRepository) GetByID(id uuid.UUID) (*domain.Category, error) {
	if category, ok := m.Categories[id]; ok {
		return category, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetByEvent retrieves all categories under an event in insertion order
func (m *MockCategoryRepository) GetByEvent(eventID uuid.UUID) ([]*domain.Category, error) {
	categories := make([]*domain.Category, 0)
	for _, id := range m.Order {
		if category, ok := m.Categories[id]; ok && category.EventID == eventID {
			categories = append(categories, category)
		}
	}
	return categories, nil
}

// Delete removes a category
func (m *MockCategoryRepository) Delete(id uuid.UUID) error {
	if _, ok := m.Categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(category *domain.Category) {
	m.Categories[category.ID] = category
	m.Order = append(m.Order, category.ID)
}

// MockBudgetEntryRepository is a mock implementation of domain.BudgetEntryRepository
type MockBudgetEntryRepository struct {
	Entries      map[uuid.UUID]*domain.BudgetEntry
	Order        []uuid.UUID
	CreateFn     func(entry *domain.BudgetEntry) (*domain.BudgetEntry, error)
	SetReceiptFn func(id uuid.UUID, receipt *domain.ReceiptRef) (*domain.BudgetEntry, error)
}

// NewMockBudgetEntryRepository creates a new MockBudgetEntryRepository
func NewMockBudgetEntryRepository() *MockBudgetEntryRepository {
	return &MockBudgetEntryRepository{
		Entries: make(map[uuid.UUID]*domain.BudgetEntry),
	}
}

// Create stores a new entry
func (m *MockBudgetEntryRepository) Create(entry *domain.BudgetEntry) (*domain.BudgetEntry, error) {
	if m.CreateFn != nil {
		return m.CreateFn(entry)
	}
	entry.ID = uuid.New()
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	m.Entries[entry.ID] = entry
	m.Order = append(m.Order, entry.ID)
	return entry, nil
}

// GetByID retrieves an entry by ID
func (m *MockBudgetEntryRepository) GetByID(id uuid.UUID) (*domain.BudgetEntry, error) {
	if entry, ok := m.Entries[id]; ok {
		return entry, nil
	}
	return nil, domain.ErrEntryNotFound
}

// GetByEvent retrieves all entries under an event in insertion order
func (m *MockBudgetEntryRepository) GetByEvent(eventID uuid.UUID) ([]*domain.BudgetEntry, error) {
	entries := make([]*domain.BudgetEntry, 0)
	for _, id := range m.Order {
		if entry, ok := m.Entries[id]; ok && entry.EventID == eventID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// UpdateField applies the single-field update to a stored entry
func (m *MockBudgetEntryRepository) UpdateField(update *domain.EntryFieldUpdate) (*domain.BudgetEntry, error) {
	entry, ok := m.Entries[update.EntryID]
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	switch update.Field {
	case domain.EntryFieldItemName:
		entry.ItemName = *update.Text
	case domain.EntryFieldAmount:
		entry.Amount = *update.Amount
	case domain.EntryFieldPaymentMethod:
		entry.PaymentMethod = update.Text
	case domain.EntryFieldEntryDate:
		entry.EntryDate = *update.Date
	default:
		return nil, domain.ErrInvalidEntryField
	}
	entry.UpdatedAt = time.Now()
	return entry, nil
}

// SetReceipt attaches or clears an entry's receipt reference
func (m *MockBudgetEntryRepository) SetReceipt(id uuid.UUID, receipt *domain.ReceiptRef) (*domain.BudgetEntry, error) {
	if m.SetReceiptFn != nil {
		return m.SetReceiptFn(id, receipt)
	}
	entry, ok := m.Entries[id]
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	if receipt == nil {
		entry.ReceiptURL = nil
		entry.ReceiptFilename = nil
	} else {
		url := receipt.URL
		filename := receipt.Filename
		entry.ReceiptURL = &url
		entry.ReceiptFilename = &filename
	}
	entry.UpdatedAt = time.Now()
	return entry, nil
}

// ToggleReimbursement flips the reimbursement status of a stored entry
func (m *MockBudgetEntryRepository) ToggleReimbursement(id uuid.UUID) (*domain.BudgetEntry, error) {
	entry, ok := m.Entries[id]
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	if entry.ReimbursementStatus == domain.ReimbursementPending {
		entry.ReimbursementStatus = domain.ReimbursementCompleted
	} else {
		entry.ReimbursementStatus = domain.ReimbursementPending
	}
	entry.UpdatedAt = time.Now()
	return entry, nil
}

// Delete removes an entry
func (m *MockBudgetEntryRepository) Delete(id uuid.UUID) error {
	if _, ok := m.Entries[id]; !ok {
		return domain.ErrEntryNotFound
	}
	delete(m.Entries, id)
	return nil
}

// AddEntry adds an entry to the mock repository (helper for tests)
func (m *MockBudgetEntryRepository) AddEntry(entry *domain.BudgetEntry) {
	m.Entries[entry.ID] = entry
	m.Order = append(m.Order, entry.ID)
}

// MockReceiptStore is an in-memory implementation of storage.ReceiptStore
type MockReceiptStore struct {
	Objects  map[string][]byte
	UploadFn func(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	mu       sync.Mutex
}

// NewMockReceiptStore creates a new MockReceiptStore
func NewMockReceiptStore() *MockReceiptStore {
	return &MockReceiptStore{
		Objects: make(map[string][]byte),
	}
}

// Upload stores the object in memory and returns its public URL
func (m *MockReceiptStore) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	if m.UploadFn != nil {
		return m.UploadFn(ctx, objectPath, data, contentType, size)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(data); err != nil {
		return "", err
	}
	m.mu.Lock()
	m.Objects[objectPath] = buf.Bytes()
	m.mu.Unlock()
	return m.PublicURL(objectPath), nil
}

// Delete removes an object
func (m *MockReceiptStore) Delete(ctx context.Context, objectPath string) error {
	m.mu.Lock()
	delete(m.Objects, objectPath)
	m.mu.Unlock()
	return nil
}

// PublicURL returns a deterministic URL for an object
func (m *MockReceiptStore) PublicURL(objectPath string) string {
	return "https://receipts.test/" + objectPath
}

// RefreshCall records one PublishRefresh invocation
type RefreshCall struct {
	EventID  uuid.UUID
	Resource string
}

// RecordingPublisher captures refresh notices for assertions
type RecordingPublisher struct {
	Calls []RefreshCall
	mu    sync.Mutex
}

// PublishRefresh records the call
func (p *RecordingPublisher) PublishRefresh(eventID uuid.UUID, resource string) {
	p.mu.Lock()
	p.Calls = append(p.Calls, RefreshCall{EventID: eventID, Resource: resource})
	p.mu.Unlock()
}

// Published reports whether a notice for the event and resource was recorded
func (p *RecordingPublisher) Published(eventID uuid.UUID, resource string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, call := range p.Calls {
		if call.EventID == eventID && call.Resource == resource {
			return true
		}
	}
	return false
}
