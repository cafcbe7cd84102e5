package service

import (
	"github.com/google/uuid"

	"github.com/oatside/gala/gala-backend/internal/budget"
	"github.com/oatside/gala/gala-backend/internal/domain"
)

// SummaryService derives the dashboard overview for an event
type SummaryService struct {
	entryRepo    domain.BudgetEntryRepository
	categoryRepo domain.CategoryRepository
	eventRepo    domain.EventRepository
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(entryRepo domain.BudgetEntryRepository, categoryRepo domain.CategoryRepository, eventRepo domain.EventRepository) *SummaryService {
	return &SummaryService{
		entryRepo:    entryRepo,
		categoryRepo: categoryRepo,
		eventRepo:    eventRepo,
	}
}

// GetSummary computes the full financial summary for an event from the
// current snapshot: totals, entry counts, reimbursement tallies, and the
// expense distribution for the chart.
func (s *SummaryService) GetSummary(eventID uuid.UUID) (*domain.EventSummary, error) {
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
	return budget.Summarize(entries, categories), nil
}
