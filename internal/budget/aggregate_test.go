package budget

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oatside/gala/gala-backend/internal/domain"
)

func category(eventID uuid.UUID, name string, t domain.CategoryType) *domain.Category {
	return &domain.Category{ID: uuid.New(), EventID: eventID, Name: name, Type: t}
}

func entry(eventID uuid.UUID, categoryID *uuid.UUID, name string, amount string) *domain.BudgetEntry {
	return &domain.BudgetEntry{
		ID:         uuid.New(),
		EventID:    eventID,
		CategoryID: categoryID,
		ItemName:   name,
		Amount:     decimal.RequireFromString(amount),
	}
}

func TestClassify(t *testing.T) {
	eventID := uuid.New()
	income := category(eventID, "Sponsorship", domain.CategoryTypeIncome)
	expense := category(eventID, "Venue", domain.CategoryTypeExpense)
	idx := IndexCategories([]*domain.Category{income, expense})

	missing := uuid.New()
	tests := []struct {
		name       string
		categoryID *uuid.UUID
		want       Classification
	}{
		{"income category", &income.ID, ClassIncome},
		{"expense category", &expense.ID, ClassExpense},
		{"deleted category id", &missing, ClassUnclassified},
		{"no category reference", nil, ClassUnclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := idx.Classify(entry(eventID, tt.categoryID, "x", "1"))
			if got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeTotals(t *testing.T) {
	eventID := uuid.New()
	income := category(eventID, "Tickets", domain.CategoryTypeIncome)
	expense := category(eventID, "Food", domain.CategoryTypeExpense)
	idx := IndexCategories([]*domain.Category{income, expense})

	entries := []*domain.BudgetEntry{
		entry(eventID, &income.ID, "Ticket sales", "1000"),
		entry(eventID, &expense.ID, "Catering", "300"),
		entry(eventID, &expense.ID, "Snacks", "200"),
	}

	totals := ComputeTotals(entries, idx)

	if !totals.TotalIncome.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("TotalIncome = %s, want 1000", totals.TotalIncome)
	}
	if !totals.TotalExpenses.Equal(decimal.NewFromInt(500)) {
		t.Errorf("TotalExpenses = %s, want 500", totals.TotalExpenses)
	}
	if !totals.OnhandCash.Equal(totals.TotalIncome) {
		t.Errorf("OnhandCash = %s, want TotalIncome %s", totals.OnhandCash, totals.TotalIncome)
	}
	if !totals.LeftToSpend.Equal(decimal.NewFromInt(500)) {
		t.Errorf("LeftToSpend = %s, want 500", totals.LeftToSpend)
	}
	if !totals.EndingBalance.Equal(totals.LeftToSpend) {
		t.Errorf("EndingBalance = %s, want LeftToSpend %s", totals.EndingBalance, totals.LeftToSpend)
	}
}

func TestComputeTotals_NegativeLeftToSpend(t *testing.T) {
	eventID := uuid.New()
	expense := category(eventID, "Venue", domain.CategoryTypeExpense)
	idx := IndexCategories([]*domain.Category{expense})

	totals := ComputeTotals([]*domain.BudgetEntry{
		entry(eventID, &expense.ID, "Hall rental", "2500.75"),
	}, idx)

	if !totals.LeftToSpend.Equal(decimal.RequireFromString("-2500.75")) {
		t.Errorf("LeftToSpend = %s, want -2500.75", totals.LeftToSpend)
	}
}

func TestComputeTotals_UnclassifiedExcluded(t *testing.T) {
	eventID := uuid.New()
	income := category(eventID, "Tickets", domain.CategoryTypeIncome)
	idx := IndexCategories([]*domain.Category{income})

	deleted := uuid.New()
	entries := []*domain.BudgetEntry{
		entry(eventID, &income.ID, "Ticket sales", "400"),
		entry(eventID, &deleted, "Orphaned", "9999"),
		entry(eventID, nil, "No category", "123.45"),
	}

	totals := ComputeTotals(entries, idx)
	if !totals.TotalIncome.Equal(decimal.NewFromInt(400)) {
		t.Errorf("TotalIncome = %s, want 400", totals.TotalIncome)
	}
	if !totals.TotalExpenses.IsZero() {
		t.Errorf("TotalExpenses = %s, want 0", totals.TotalExpenses)
	}
}

func TestComputeTotals_DecimalAccumulation(t *testing.T) {
	// 0.1 added ten times must be exactly 1, not a float approximation.
	eventID := uuid.New()
	income := category(eventID, "Donations", domain.CategoryTypeIncome)
	idx := IndexCategories([]*domain.Category{income})

	var entries []*domain.BudgetEntry
	for i := 0; i < 10; i++ {
		entries = append(entries, entry(eventID, &income.ID, "Donation", "0.1"))
	}

	totals := ComputeTotals(entries, idx)
	if !totals.TotalIncome.Equal(decimal.NewFromInt(1)) {
		t.Errorf("TotalIncome = %s, want exactly 1", totals.TotalIncome)
	}
}

func TestCountReimbursements(t *testing.T) {
	eventID := uuid.New()

	flagged := func(status domain.ReimbursementStatus) *domain.BudgetEntry {
		e := entry(eventID, nil, "x", "1")
		e.ToBeReimbursed = true
		e.ReimbursementStatus = status
		return e
	}
	unflagged := entry(eventID, nil, "y", "1")
	// Stale status from a prior flagged state must not be counted.
	unflagged.ReimbursementStatus = domain.ReimbursementCompleted

	tally := CountReimbursements([]*domain.BudgetEntry{
		flagged(domain.ReimbursementPending),
		flagged(domain.ReimbursementPending),
		flagged(domain.ReimbursementCompleted),
		unflagged,
	})

	if tally.Pending != 2 {
		t.Errorf("Pending = %d, want 2", tally.Pending)
	}
	if tally.Completed != 1 {
		t.Errorf("Completed = %d, want 1", tally.Completed)
	}
}

func TestBuildExpenseDistribution_MergesByName(t *testing.T) {
	eventID := uuid.New()
	food1 := category(eventID, "Food", domain.CategoryTypeExpense)
	food2 := category(eventID, "Food", domain.CategoryTypeExpense)
	idx := IndexCategories([]*domain.Category{food1, food2})

	slices := BuildExpenseDistribution([]*domain.BudgetEntry{
		entry(eventID, &food1.ID, "Lunch", "100"),
		entry(eventID, &food2.ID, "Dinner", "50"),
	}, idx)

	if len(slices) != 1 {
		t.Fatalf("got %d slices, want 1", len(slices))
	}
	if slices[0].CategoryName != "Food" {
		t.Errorf("CategoryName = %q, want Food", slices[0].CategoryName)
	}
	if !slices[0].Amount.Equal(decimal.NewFromInt(150)) {
		t.Errorf("Amount = %s, want 150", slices[0].Amount)
	}
}

func TestBuildExpenseDistribution_OrderAndColors(t *testing.T) {
	eventID := uuid.New()
	venue := category(eventID, "Venue", domain.CategoryTypeExpense)
	food := category(eventID, "Food", domain.CategoryTypeExpense)
	decor := category(eventID, "Decorations", domain.CategoryTypeExpense)
	tickets := category(eventID, "Tickets", domain.CategoryTypeIncome)
	idx := IndexCategories([]*domain.Category{venue, food, decor, tickets})

	slices := BuildExpenseDistribution([]*domain.BudgetEntry{
		entry(eventID, &food.ID, "Catering", "200"),
		entry(eventID, &venue.ID, "Hall", "800"),
		entry(eventID, &decor.ID, "Balloons", "200"),
		entry(eventID, &tickets.ID, "Sales", "5000"), // income, excluded
	}, idx)

	if len(slices) != 3 {
		t.Fatalf("got %d slices, want 3", len(slices))
	}
	if slices[0].CategoryName != "Venue" {
		t.Errorf("slices[0] = %q, want Venue", slices[0].CategoryName)
	}
	// Tied amounts keep first-encountered order: Food before Decorations.
	if slices[1].CategoryName != "Food" || slices[2].CategoryName != "Decorations" {
		t.Errorf("tie order = %q, %q; want Food, Decorations", slices[1].CategoryName, slices[2].CategoryName)
	}
	for i, s := range slices {
		if s.Color != chartPalette[i%len(chartPalette)] {
			t.Errorf("slices[%d].Color = %q, want %q", i, s.Color, chartPalette[i%len(chartPalette)])
		}
	}
}

func TestBuildExpenseDistribution_TotalMatchesExpenses(t *testing.T) {
	eventID := uuid.New()
	venue := category(eventID, "Venue", domain.CategoryTypeExpense)
	food := category(eventID, "Food", domain.CategoryTypeExpense)
	income := category(eventID, "Tickets", domain.CategoryTypeIncome)
	idx := IndexCategories([]*domain.Category{venue, food, income})

	entries := []*domain.BudgetEntry{
		entry(eventID, &venue.ID, "Hall", "1234.56"),
		entry(eventID, &food.ID, "Catering", "0.44"),
		entry(eventID, &food.ID, "Drinks", "65.01"),
		entry(eventID, &income.ID, "Sales", "9000"),
	}

	totals := ComputeTotals(entries, idx)
	sum := decimal.Zero
	for _, s := range BuildExpenseDistribution(entries, idx) {
		sum = sum.Add(s.Amount)
	}
	if !sum.Equal(totals.TotalExpenses) {
		t.Errorf("distribution sum = %s, want TotalExpenses %s", sum, totals.TotalExpenses)
	}
}

func TestBuildExpenseDistribution_Empty(t *testing.T) {
	eventID := uuid.New()
	income := category(eventID, "Tickets", domain.CategoryTypeIncome)
	idx := IndexCategories([]*domain.Category{income})

	slices := BuildExpenseDistribution([]*domain.BudgetEntry{
		entry(eventID, &income.ID, "Sales", "100"),
	}, idx)
	if len(slices) != 0 {
		t.Errorf("got %d slices, want 0", len(slices))
	}
}

func TestSummarize(t *testing.T) {
	eventID := uuid.New()
	income := category(eventID, "Tickets", domain.CategoryTypeIncome)
	expense := category(eventID, "Food", domain.CategoryTypeExpense)
	categories := []*domain.Category{income, expense}

	reimbursable := entry(eventID, &expense.ID, "Supplies", "75")
	reimbursable.ToBeReimbursed = true
	reimbursable.ReimbursementStatus = domain.ReimbursementPending

	deleted := uuid.New()
	entries := []*domain.BudgetEntry{
		entry(eventID, &income.ID, "Sales", "500"),
		entry(eventID, &expense.ID, "Catering", "125"),
		reimbursable,
		entry(eventID, &deleted, "Orphaned", "40"),
	}

	summary := Summarize(entries, categories)

	if summary.EntryCount != 4 {
		t.Errorf("EntryCount = %d, want 4", summary.EntryCount)
	}
	if summary.IncomeCount != 1 || summary.ExpenseCount != 2 {
		t.Errorf("counts = %d income, %d expense; want 1, 2", summary.IncomeCount, summary.ExpenseCount)
	}
	if !summary.TotalExpenses.Equal(decimal.NewFromInt(200)) {
		t.Errorf("TotalExpenses = %s, want 200", summary.TotalExpenses)
	}
	if summary.Reimbursements.Pending != 1 || summary.Reimbursements.Completed != 0 {
		t.Errorf("Reimbursements = %+v, want 1 pending", summary.Reimbursements)
	}
	if len(summary.Distribution) != 1 {
		t.Errorf("Distribution len = %d, want 1", len(summary.Distribution))
	}
}
