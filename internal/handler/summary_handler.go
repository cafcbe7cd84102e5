package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/oatside/gala/gala-backend/internal/domain"
	"github.com/oatside/gala/gala-backend/internal/service"
)

// SummaryHandler handles event summary HTTP requests
type SummaryHandler struct {
	summaryService *service.SummaryService
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(summaryService *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// SummaryResponse is the derived financial overview for one event
type SummaryResponse struct {
	TotalIncome    string                 `json:"totalIncome"`
	TotalExpenses  string                 `json:"totalExpenses"`
	OnhandCash     string                 `json:"onhandCash"`
	LeftToSpend    string                 `json:"leftToSpend"`
	EndingBalance  string                 `json:"endingBalance"`
	EntryCount     int                    `json:"entryCount"`
	IncomeCount    int                    `json:"incomeCount"`
	ExpenseCount   int                    `json:"expenseCount"`
	Reimbursements ReimbursementsResponse `json:"reimbursements"`
	Distribution   []SliceResponse        `json:"distribution"`
}

// ReimbursementsResponse counts flagged entries by status
type ReimbursementsResponse struct {
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

// SliceResponse is one bucket of the expense pie chart
type SliceResponse struct {
	CategoryName string `json:"categoryName"`
	Amount       string `json:"amount"`
	Color        string `json:"color"`
}

// GetSummary handles GET /api/v1/events/:id/summary
func (h *SummaryHandler) GetSummary(c echo.Context) error {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid event ID", nil)
	}

	summary, err := h.summaryService.GetSummary(eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return NewNotFoundError(c, "Event not found")
		}
		log.Error().Err(err).Str("event_id", eventID.String()).Msg("Failed to get summary")
		return NewInternalError(c, "Failed to get summary")
	}

	return c.JSON(http.StatusOK, toSummaryResponse(summary))
}

// Helper function to convert domain.EventSummary to SummaryResponse
func toSummaryResponse(summary *domain.EventSummary) SummaryResponse {
	distribution := make([]SliceResponse, len(summary.Distribution))
	for i, slice := range summary.Distribution {
		distribution[i] = SliceResponse{
			CategoryName: slice.CategoryName,
			Amount:       slice.Amount.StringFixed(2),
			Color:        slice.Color,
		}
	}

	return SummaryResponse{
		TotalIncome:   summary.TotalIncome.StringFixed(2),
		TotalExpenses: summary.TotalExpenses.StringFixed(2),
		OnhandCash:    summary.OnhandCash.StringFixed(2),
		LeftToSpend:   summary.LeftToSpend.StringFixed(2),
		EndingBalance: summary.EndingBalance.StringFixed(2),
		EntryCount:    summary.EntryCount,
		IncomeCount:   summary.IncomeCount,
		ExpenseCount:  summary.ExpenseCount,
		Reimbursements: ReimbursementsResponse{
			Pending:   summary.Reimbursements.Pending,
			Completed: summary.Reimbursements.Completed,
		},
		Distribution: distribution,
	}
}
