package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EventStatus string

const (
	EventStatusActive    EventStatus = "Active"
	EventStatusCompleted EventStatus = "Completed"
	EventStatusOnHold    EventStatus = "On Hold"
	EventStatusCancelled EventStatus = "Cancelled"
)

// ValidEventStatus reports whether s is one of the known event statuses.
func ValidEventStatus(s EventStatus) bool {
	switch s {
	case EventStatusActive, EventStatusCompleted, EventStatusOnHold, EventStatusCancelled:
		return true
	}
	return false
}

type Event struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	AllocatedBudget decimal.Decimal `json:"allocatedBudget"`
	Venue           *string         `json:"venue,omitempty"`
	StartDate       *time.Time      `json:"startDate,omitempty"`
	EndDate         *time.Time      `json:"endDate,omitempty"`
	Status          EventStatus     `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// EventUpdate carries the mutable event fields for a settings update.
// Nil pointers leave the stored value unchanged.
type EventUpdate struct {
	Name            *string
	AllocatedBudget *decimal.Decimal
	Venue           *string
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *EventStatus
}

// EventWithTotals is an event with its classified amounts rolled up for the
// index page. Entries whose category is missing count toward neither total.
type EventWithTotals struct {
	Event
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
}

type EventRepository interface {
	Create(event *Event) (*Event, error)
	GetByID(id uuid.UUID) (*Event, error)
	GetAll() ([]*Event, error)
	GetAllWithTotals() ([]*EventWithTotals, error)
	Update(id uuid.UUID, update *EventUpdate) (*Event, error)
	Delete(id uuid.UUID) error
}
