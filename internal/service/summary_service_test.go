package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oatside/gala/gala-backend/internal/domain"
	"github.com/oatside/gala/gala-backend/internal/testutil"
)

func TestGetSummary(t *testing.T) {
	entryRepo := testutil.NewMockBudgetEntryRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	eventRepo := testutil.NewMockEventRepository()
	summaryService := NewSummaryService(entryRepo, categoryRepo, eventRepo)

	event := &domain.Event{ID: uuid.New(), Name: "Gala"}
	eventRepo.AddEvent(event)

	income := &domain.Category{ID: uuid.New(), EventID: event.ID, Name: "Sponsorship", Type: domain.CategoryTypeIncome}
	food := &domain.Category{ID: uuid.New(), EventID: event.ID, Name: "Food", Type: domain.CategoryTypeExpense}
	categoryRepo.AddCategory(income)
	categoryRepo.AddCategory(food)

	entryRepo.AddEntry(&domain.BudgetEntry{
		ID: uuid.New(), EventID: event.ID, CategoryID: &income.ID,
		ItemName: "Main sponsor", Amount: decimal.NewFromInt(1000),
	})
	entryRepo.AddEntry(&domain.BudgetEntry{
		ID: uuid.New(), EventID: event.ID, CategoryID: &food.ID,
		ItemName: "Catering", Amount: decimal.NewFromInt(300),
		ToBeReimbursed: true, ReimbursementStatus: domain.ReimbursementPending,
	})
	entryRepo.AddEntry(&domain.BudgetEntry{
		ID: uuid.New(), EventID: event.ID, CategoryID: &food.ID,
		ItemName: "Snacks", Amount: decimal.NewFromInt(200),
	})

	summary, err := summaryService.GetSummary(event.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !summary.TotalIncome.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Expected income 1000, got %s", summary.TotalIncome)
	}
	if !summary.TotalExpenses.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Expected expenses 500, got %s", summary.TotalExpenses)
	}
	if !summary.LeftToSpend.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Expected left to spend 500, got %s", summary.LeftToSpend)
	}
	if summary.EntryCount != 3 {
		t.Errorf("Expected 3 entries, got %d", summary.EntryCount)
	}
	if summary.Reimbursements.Pending != 1 || summary.Reimbursements.Completed != 0 {
		t.Errorf("Expected 1 pending reimbursement, got %+v", summary.Reimbursements)
	}
	if len(summary.Distribution) != 1 {
		t.Fatalf("Expected 1 expense slice, got %d", len(summary.Distribution))
	}
	if summary.Distribution[0].CategoryName != "Food" || !summary.Distribution[0].Amount.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Expected Food slice of 500, got %+v", summary.Distribution[0])
	}
}

func TestGetSummary_EmptyEvent(t *testing.T) {
	entryRepo := testutil.NewMockBudgetEntryRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	eventRepo := testutil.NewMockEventRepository()
	summaryService := NewSummaryService(entryRepo, categoryRepo, eventRepo)

	event := &domain.Event{ID: uuid.New(), Name: "Gala"}
	eventRepo.AddEvent(event)

	summary, err := summaryService.GetSummary(event.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !summary.TotalIncome.IsZero() || !summary.TotalExpenses.IsZero() {
		t.Error("Expected zero totals for an empty event")
	}
	if len(summary.Distribution) != 0 {
		t.Errorf("Expected empty distribution, got %d slices", len(summary.Distribution))
	}
}

func TestGetSummary_EventNotFound(t *testing.T) {
	entryRepo := testutil.NewMockBudgetEntryRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	eventRepo := testutil.NewMockEventRepository()
	summaryService := NewSummaryService(entryRepo, categoryRepo, eventRepo)

	_, err := summaryService.GetSummary(uuid.New())
	if !errors.Is(err, domain.ErrEventNotFound) {
		t.Errorf("Expected ErrEventNotFound, got %v", err)
	}
}
