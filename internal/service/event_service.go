package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oatside/gala/gala-backend/internal/domain"
)

// EventService handles event business logic
type EventService struct {
	eventRepo          domain.EventRepository
	publisher          RefreshPublisher
	deleteConfirmation string
}

// NewEventService creates a new EventService
func NewEventService(eventRepo domain.EventRepository, publisher RefreshPublisher, deleteConfirmation string) *EventService {
	return &EventService{
		eventRepo:          eventRepo,
		publisher:          publisher,
		deleteConfirmation: deleteConfirmation,
	}
}

// CreateEventInput holds the input for creating an event
type CreateEventInput struct {
	Name            string
	AllocatedBudget decimal.Decimal
	Venue           *string
	StartDate       *time.Time
	EndDate         *time.Time
}

// CreateEvent creates a new event with validation. New events start Active.
func (s *EventService) CreateEvent(input CreateEventInput) (*domain.Event, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	if input.AllocatedBudget.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}

	event := &domain.Event{
		Name:            name,
		AllocatedBudget: input.AllocatedBudget,
		Venue:           input.Venue,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		Status:          domain.EventStatusActive,
	}
	return s.eventRepo.Create(event)
}

// GetEvents retrieves all events with their income and expense rollups for
// the index page.
func (s *EventService) GetEvents() ([]*domain.EventWithTotals, error) {
	return s.eventRepo.GetAllWithTotals()
}

// GetEvent retrieves an event by id
func (s *EventService) GetEvent(id uuid.UUID) (*domain.Event, error) {
	return s.eventRepo.GetByID(id)
}

// UpdateEvent applies a settings update to an event
func (s *EventService) UpdateEvent(id uuid.UUID, update *domain.EventUpdate) (*domain.Event, error) {
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, domain.ErrNameRequired
		}
		if len(name) > domain.MaxNameLength {
			return nil, domain.ErrNameTooLong
		}
		update.Name = &name
	}
	if update.AllocatedBudget != nil && update.AllocatedBudget.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}
	if update.Status != nil && !domain.ValidEventStatus(*update.Status) {
		return nil, domain.ErrInvalidStatus
	}

	event, err := s.eventRepo.Update(id, update)
	if err != nil {
		return nil, err
	}
	s.publisher.PublishRefresh(event.ID, ResourceEvent)
	return event, nil
}

// DeleteEvent permanently deletes an event after checking the confirmation
// phrase. The phrase is a speed bump against accidental clicks, not an auth
// mechanism: the whole API sits behind the auth middleware. Categories and
// entries go with the event (schema-level cascade).
func (s *EventService) DeleteEvent(id uuid.UUID, confirmation string) error {
	if confirmation != s.deleteConfirmation {
		return domain.ErrWrongConfirmation
	}
	if err := s.eventRepo.Delete(id); err != nil {
		return err
	}
	s.publisher.PublishRefresh(id, ResourceEvent)
	return nil
}
