package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/oatside/gala/gala-backend/internal/budget"
	"github.com/oatside/gala/gala-backend/internal/domain"
	"github.com/oatside/gala/gala-backend/internal/service"
)

// EntryHandler handles budget entry HTTP requests
type EntryHandler struct {
	entryService *service.EntryService
}

// NewEntryHandler creates a new EntryHandler
func NewEntryHandler(entryService *service.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// CreateEntryRequest represents the create entry request body
type CreateEntryRequest struct {
	CategoryID          string  `json:"categoryId"`
	ItemName            string  `json:"itemName"`
	Amount              string  `json:"amount"`
	PaymentMethod       *string `json:"paymentMethod,omitempty"`
	ReceiptURL          *string `json:"receiptUrl,omitempty"`
	ReceiptFilename     *string `json:"receiptFilename,omitempty"`
	ToBeReimbursed      bool    `json:"toBeReimbursed"`
	ReimbursementSource *string `json:"reimbursementSource,omitempty"`
	ReimbursementStatus string  `json:"reimbursementStatus,omitempty"`
	EntryDate           string  `json:"entryDate,omitempty"`
}

// UpdateEntryFieldRequest is a single-field inline edit
type UpdateEntryFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// EntryResponse represents a budget entry in API responses
type EntryResponse struct {
	ID                  string  `json:"id"`
	EventID             string  `json:"eventId"`
	CategoryID          *string `json:"categoryId,omitempty"`
	ItemName            string  `json:"itemName"`
	Amount              string  `json:"amount"`
	PaymentMethod       *string `json:"paymentMethod,omitempty"`
	ReceiptURL          *string `json:"receiptUrl,omitempty"`
	ReceiptFilename     *string `json:"receiptFilename,omitempty"`
	ToBeReimbursed      bool    `json:"toBeReimbursed"`
	ReimbursementSource *string `json:"reimbursementSource,omitempty"`
	ReimbursementStatus string  `json:"reimbursementStatus"`
	EntryDate           string  `json:"entryDate"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

// CreateEntry handles POST /api/v1/events/:id/entries
func (h *EntryHandler) CreateEntry(c echo.Context) error {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid event ID", nil)
	}

	var req CreateEntryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "categoryId", Message: "Category is required"},
		})
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	var entryDate time.Time
	if req.EntryDate != "" {
		entryDate, err = time.Parse(dateLayout, req.EntryDate)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "entryDate", Message: "Must be a date in YYYY-MM-DD format"},
			})
		}
	}

	input := service.CreateEntryInput{
		CategoryID:          categoryID,
		ItemName:            req.ItemName,
		Amount:              amount,
		PaymentMethod:       req.PaymentMethod,
		ToBeReimbursed:      req.ToBeReimbursed,
		ReimbursementSource: req.ReimbursementSource,
		ReimbursementStatus: domain.ReimbursementStatus(req.ReimbursementStatus),
		EntryDate:           entryDate,
	}
	if req.ReceiptURL != nil && req.ReceiptFilename != nil {
		input.Receipt = &domain.ReceiptRef{URL: *req.ReceiptURL, Filename: *req.ReceiptFilename}
	}

	entry, err := h.entryService.CreateEntry(eventID, input)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return NewNotFoundError(c, "Event not found")
		}
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "itemName", Message: "Item name is required"},
			})
		}
		if errors.Is(err, domain.ErrNameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "itemName", Message: "Item name must be 255 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrNegativeAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount must not be negative"},
			})
		}
		if errors.Is(err, domain.ErrCategoryRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "categoryId", Message: "Category must belong to the event"},
			})
		}
		log.Error().Err(err).Str("event_id", eventID.String()).Msg("Failed to create entry")
		return NewInternalError(c, "Failed to create entry")
	}

	log.Info().Str("event_id", eventID.String()).Str("entry_id", entry.ID.String()).Msg("Entry created")
	return c.JSON(http.StatusCreated, toEntryResponse(entry))
}

// GetEntries handles GET /api/v1/events/:id/entries. Query params mirror the
// table controls: search, category (id or "all"), type ("Income", "Expense"
// or "all"), sort and direction. Defaults show everything, newest first.
func (h *EntryHandler) GetEntries(c echo.Context) error {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid event ID", nil)
	}

	state := budget.DefaultViewState()
	state = state.WithSearch(c.QueryParam("search"))
	if v := c.QueryParam("category"); v != "" {
		state = state.WithCategoryFilter(v)
	}
	if v := c.QueryParam("type"); v != "" {
		state = state.WithTypeFilter(v)
	}
	if v := c.QueryParam("sort"); v != "" {
		field := budget.SortField(v)
		if !budget.ValidSortField(field) {
			return NewValidationError(c, "Invalid sort field", []ValidationError{
				{Field: "sort", Message: "Must be one of: entry_date, amount, item_name, category_name"},
			})
		}
		state.SortBy = field
	}
	if v := c.QueryParam("direction"); v != "" {
		switch budget.SortDirection(v) {
		case budget.SortAscending, budget.SortDescending:
			state.Direction = budget.SortDirection(v)
		default:
			return NewValidationError(c, "Invalid sort direction", []ValidationError{
				{Field: "direction", Message: "Must be asc or desc"},
			})
		}
	}

	entries, err := h.entryService.ListEntries(eventID, state)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return NewNotFoundError(c, "Event not found")
		}
		log.Error().Err(err).Str("event_id", eventID.String()).Msg("Failed to get entries")
		return NewInternalError(c, "Failed to get entries")
	}

	response := make([]EntryResponse, len(entries))
	for i, entry := range entries {
		response[i] = toEntryResponse(entry)
	}
	return c.JSON(http.StatusOK, response)
}

// UpdateEntryField handles PATCH /api/v1/entries/:id. One field per call,
// matching the table's inline edit commit.
func (h *EntryHandler) UpdateEntryField(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid entry ID", nil)
	}

	var req UpdateEntryFieldRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	entry, err := h.entryService.UpdateEntryField(id, domain.EntryField(req.Field), req.Value)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return NewNotFoundError(c, "Entry not found")
		}
		if errors.Is(err, domain.ErrInvalidEntryField) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "field", Message: "Must be one of: item_name, amount, payment_method, entry_date"},
			})
		}
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "value", Message: "Must be a valid decimal number"},
			})
		}
		if errors.Is(err, domain.ErrInvalidDate) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "value", Message: "Must be a date in YYYY-MM-DD format"},
			})
		}
		log.Error().Err(err).Str("entry_id", id.String()).Msg("Failed to update entry field")
		return NewInternalError(c, "Failed to update entry")
	}

	log.Info().Str("entry_id", id.String()).Str("field", req.Field).Msg("Entry field updated")
	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

// ToggleReimbursement handles PATCH /api/v1/entries/:id/toggle-reimbursement
func (h *EntryHandler) ToggleReimbursement(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid entry ID", nil)
	}

	entry, err := h.entryService.ToggleReimbursement(id)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return NewNotFoundError(c, "Entry not found")
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Entry is not flagged for reimbursement", nil)
		}
		log.Error().Err(err).Str("entry_id", id.String()).Msg("Failed to toggle reimbursement")
		return NewInternalError(c, "Failed to toggle reimbursement")
	}

	log.Info().Str("entry_id", id.String()).Str("status", string(entry.ReimbursementStatus)).Msg("Reimbursement toggled")
	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

// DeleteEntry handles DELETE /api/v1/entries/:id
func (h *EntryHandler) DeleteEntry(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid entry ID", nil)
	}

	if err := h.entryService.DeleteEntry(id); err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return NewNotFoundError(c, "Entry not found")
		}
		log.Error().Err(err).Str("entry_id", id.String()).Msg("Failed to delete entry")
		return NewInternalError(c, "Failed to delete entry")
	}

	log.Info().Str("entry_id", id.String()).Msg("Entry deleted")
	return c.NoContent(http.StatusNoContent)
}

// Helper function to convert domain.BudgetEntry to EntryResponse
func toEntryResponse(entry *domain.BudgetEntry) EntryResponse {
	resp := EntryResponse{
		ID:                  entry.ID.String(),
		EventID:             entry.EventID.String(),
		ItemName:            entry.ItemName,
		Amount:              entry.Amount.StringFixed(2),
		PaymentMethod:       entry.PaymentMethod,
		ReceiptURL:          entry.ReceiptURL,
		ReceiptFilename:     entry.ReceiptFilename,
		ToBeReimbursed:      entry.ToBeReimbursed,
		ReimbursementSource: entry.ReimbursementSource,
		ReimbursementStatus: string(entry.ReimbursementStatus),
		EntryDate:           entry.EntryDate.Format(dateLayout),
		CreatedAt:           entry.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           entry.UpdatedAt.Format(time.RFC3339),
	}
	if entry.CategoryID != nil {
		categoryID := entry.CategoryID.String()
		resp.CategoryID = &categoryID
	}
	return resp
}
