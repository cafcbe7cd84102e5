package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/oatside/gala/gala-backend/internal/domain"
	"github.com/oatside/gala/gala-backend/internal/service"
)

const dateLayout = "2006-01-02"

// EventHandler handles event-related HTTP requests
type EventHandler struct {
	eventService *service.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// CreateEventRequest represents the create event request body
type CreateEventRequest struct {
	Name            string  `json:"name"`
	AllocatedBudget string  `json:"allocatedBudget,omitempty"`
	Venue           *string `json:"venue,omitempty"`
	StartDate       *string `json:"startDate,omitempty"`
	EndDate         *string `json:"endDate,omitempty"`
}

// UpdateEventRequest represents the update event request body.
// Absent fields are left unchanged.
type UpdateEventRequest struct {
	Name            *string `json:"name,omitempty"`
	AllocatedBudget *string `json:"allocatedBudget,omitempty"`
	Venue           *string `json:"venue,omitempty"`
	StartDate       *string `json:"startDate,omitempty"`
	EndDate         *string `json:"endDate,omitempty"`
	Status          *string `json:"status,omitempty"`
}

// DeleteEventRequest carries the typed confirmation phrase
type DeleteEventRequest struct {
	Confirmation string `json:"confirmation"`
}

// EventResponse represents an event in API responses
type EventResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	AllocatedBudget string  `json:"allocatedBudget"`
	Venue           *string `json:"venue,omitempty"`
	StartDate       *string `json:"startDate,omitempty"`
	EndDate         *string `json:"endDate,omitempty"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// EventListItemResponse is an event on the index page, carrying the income
// and expense rollups shown alongside the allocated budget.
type EventListItemResponse struct {
	EventResponse
	TotalIncome   string `json:"totalIncome"`
	TotalExpenses string `json:"totalExpenses"`
}

// CreateEvent handles POST /api/v1/events
func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	budget := decimal.Zero
	if req.AllocatedBudget != "" {
		var err error
		budget, err = decimal.NewFromString(req.AllocatedBudget)
		if err != nil {
			return NewValidationError(c, "Invalid allocated budget", []ValidationError{
				{Field: "allocatedBudget", Message: "Must be a valid decimal number"},
			})
		}
	}

	startDate, err := parseDatePtr(req.StartDate)
	if err != nil {
		return NewValidationError(c, "Invalid start date", []ValidationError{
			{Field: "startDate", Message: "Must be a date in YYYY-MM-DD format"},
		})
	}
	endDate, err := parseDatePtr(req.EndDate)
	if err != nil {
		return NewValidationError(c, "Invalid end date", []ValidationError{
			{Field: "endDate", Message: "Must be a date in YYYY-MM-DD format"},
		})
	}

	input := service.CreateEventInput{
		Name:            req.Name,
		AllocatedBudget: budget,
		Venue:           req.Venue,
		StartDate:       startDate,
		EndDate:         endDate,
	}

	event, err := h.eventService.CreateEvent(input)
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		if errors.Is(err, domain.ErrNameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name must be 255 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrNegativeAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "allocatedBudget", Message: "Budget must not be negative"},
			})
		}
		log.Error().Err(err).Msg("Failed to create event")
		return NewInternalError(c, "Failed to create event")
	}

	log.Info().Str("event_id", event.ID.String()).Str("name", event.Name).Msg("Event created")

	return c.JSON(http.StatusCreated, toEventResponse(event))
}

// GetEvents handles GET /api/v1/events
func (h *EventHandler) GetEvents(c echo.Context) error {
	events, err := h.eventService.GetEvents()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get events")
		return NewInternalError(c, "Failed to get events")
	}

	response := make([]EventListItemResponse, len(events))
	for i, event := range events {
		response[i] = EventListItemResponse{
			EventResponse: toEventResponse(&event.Event),
			TotalIncome:   event.TotalIncome.StringFixed(2),
			TotalExpenses: event.TotalExpenses.StringFixed(2),
		}
	}
	return c.JSON(http.StatusOK, response)
}

// GetEvent handles GET /api/v1/events/:id
func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid event ID", nil)
	}

	event, err := h.eventService.GetEvent(id)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return NewNotFoundError(c, "Event not found")
		}
		log.Error().Err(err).Str("event_id", id.String()).Msg("Failed to get event")
		return NewInternalError(c, "Failed to get event")
	}

	return c.JSON(http.StatusOK, toEventResponse(event))
}

// UpdateEvent handles PUT /api/v1/events/:id
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid event ID", nil)
	}

	var req UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	update := &domain.EventUpdate{
		Name:  req.Name,
		Venue: req.Venue,
	}

	if req.AllocatedBudget != nil {
		budget, err := decimal.NewFromString(*req.AllocatedBudget)
		if err != nil {
			return NewValidationError(c, "Invalid allocated budget", []ValidationError{
				{Field: "allocatedBudget", Message: "Must be a valid decimal number"},
			})
		}
		update.AllocatedBudget = &budget
	}
	if req.StartDate != nil {
		startDate, err := parseDatePtr(req.StartDate)
		if err != nil {
			return NewValidationError(c, "Invalid start date", []ValidationError{
				{Field: "startDate", Message: "Must be a date in YYYY-MM-DD format"},
			})
		}
		update.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDatePtr(req.EndDate)
		if err != nil {
			return NewValidationError(c, "Invalid end date", []ValidationError{
				{Field: "endDate", Message: "Must be a date in YYYY-MM-DD format"},
			})
		}
		update.EndDate = endDate
	}
	if req.Status != nil {
		status := domain.EventStatus(*req.Status)
		update.Status = &status
	}

	event, err := h.eventService.UpdateEvent(id, update)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return NewNotFoundError(c, "Event not found")
		}
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		if errors.Is(err, domain.ErrNameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name must be 255 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrNegativeAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "allocatedBudget", Message: "Budget must not be negative"},
			})
		}
		if errors.Is(err, domain.ErrInvalidStatus) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "status", Message: "Status must be one of: Active, Completed, On Hold, Cancelled"},
			})
		}
		log.Error().Err(err).Str("event_id", id.String()).Msg("Failed to update event")
		return NewInternalError(c, "Failed to update event")
	}

	log.Info().Str("event_id", event.ID.String()).Msg("Event updated")
	return c.JSON(http.StatusOK, toEventResponse(event))
}

// DeleteEvent handles DELETE /api/v1/events/:id. The request must carry the
// configured confirmation phrase; everything under the event goes with it.
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid event ID", nil)
	}

	var req DeleteEventRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if err := h.eventService.DeleteEvent(id, req.Confirmation); err != nil {
		if errors.Is(err, domain.ErrWrongConfirmation) {
			return NewForbiddenError(c, "Incorrect confirmation phrase")
		}
		if errors.Is(err, domain.ErrEventNotFound) {
			return NewNotFoundError(c, "Event not found")
		}
		log.Error().Err(err).Str("event_id", id.String()).Msg("Failed to delete event")
		return NewInternalError(c, "Failed to delete event")
	}

	log.Info().Str("event_id", id.String()).Msg("Event deleted")
	return c.NoContent(http.StatusNoContent)
}

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// Helper function to convert domain.Event to EventResponse
func toEventResponse(event *domain.Event) EventResponse {
	return EventResponse{
		ID:              event.ID.String(),
		Name:            event.Name,
		AllocatedBudget: event.AllocatedBudget.StringFixed(2),
		Venue:           event.Venue,
		StartDate:       formatDatePtr(event.StartDate),
		EndDate:         formatDatePtr(event.EndDate),
		Status:          string(event.Status),
		CreatedAt:       event.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       event.UpdatedAt.Format(time.RFC3339),
	}
}
