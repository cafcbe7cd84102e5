// Package budget holds the pure derivation logic behind the event dashboard:
// entry classification, financial totals, reimbursement tallies, the expense
// distribution feeding the pie chart, and the table view engine. Nothing in
// this package performs I/O; callers pass in the current (entries, categories)
// snapshot and dispatch any resulting mutations themselves.
package budget

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oatside/gala/gala-backend/internal/domain"
)

// Classification is the derived income/expense label of an entry, resolved
// through its category. Entries whose category is gone are Unclassified and
// silently excluded from every total and type filter.
type Classification string

const (
	ClassIncome       Classification = "Income"
	ClassExpense      Classification = "Expense"
	ClassUnclassified Classification = "Unclassified"
)

// chartPalette is the fixed 8-color rose palette the dashboard cycles
// through, indexed by a slice's position in the sorted distribution.
var chartPalette = [8]string{
	"#fda4af",
	"#fb7185",
	"#f87171",
	"#f43f5e",
	"#ef4444",
	"#e11d48",
	"#dc2626",
	"#be123c",
}

// CategoryIndex is a category lookup keyed by id.
type CategoryIndex map[uuid.UUID]*domain.Category

// IndexCategories builds a CategoryIndex from a category list.
func IndexCategories(categories []*domain.Category) CategoryIndex {
	idx := make(CategoryIndex, len(categories))
	for _, c := range categories {
		idx[c.ID] = c
	}
	return idx
}

// Classify resolves the entry's classification through its category.
func (idx CategoryIndex) Classify(entry *domain.BudgetEntry) Classification {
	if entry.CategoryID == nil {
		return ClassUnclassified
	}
	category, ok := idx[*entry.CategoryID]
	if !ok {
		return ClassUnclassified
	}
	switch category.Type {
	case domain.CategoryTypeIncome:
		return ClassIncome
	case domain.CategoryTypeExpense:
		return ClassExpense
	}
	return ClassUnclassified
}

// categoryName returns the entry's category name, or "" when the category
// is missing.
func (idx CategoryIndex) categoryName(entry *domain.BudgetEntry) string {
	if entry.CategoryID == nil {
		return ""
	}
	if category, ok := idx[*entry.CategoryID]; ok {
		return category.Name
	}
	return ""
}

// Totals are the scalar financial metrics for one event.
type Totals struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	OnhandCash    decimal.Decimal
	LeftToSpend   decimal.Decimal
	EndingBalance decimal.Decimal
}

// ComputeTotals sums entries into the dashboard metrics. Income received is
// cash on hand, so OnhandCash is TotalIncome. EndingBalance and LeftToSpend
// are currently the same number; they stay separate outputs because the UI
// shows them as separate cards.
func ComputeTotals(entries []*domain.BudgetEntry, idx CategoryIndex) Totals {
	income := decimal.Zero
	expenses := decimal.Zero
	for _, entry := range entries {
		switch idx.Classify(entry) {
		case ClassIncome:
			income = income.Add(entry.Amount)
		case ClassExpense:
			expenses = expenses.Add(entry.Amount)
		}
	}
	left := income.Sub(expenses)
	return Totals{
		TotalIncome:   income,
		TotalExpenses: expenses,
		OnhandCash:    income,
		LeftToSpend:   left,
		EndingBalance: left,
	}
}

// CountReimbursements tallies entries flagged to_be_reimbursed by status.
// Unflagged entries are skipped entirely, whatever their stored status says.
func CountReimbursements(entries []*domain.BudgetEntry) domain.ReimbursementTally {
	var tally domain.ReimbursementTally
	for _, entry := range entries {
		if !entry.ToBeReimbursed {
			continue
		}
		switch entry.ReimbursementStatus {
		case domain.ReimbursementPending:
			tally.Pending++
		case domain.ReimbursementCompleted:
			tally.Completed++
		}
	}
	return tally
}

// CountByClass returns the number of entries per classification bucket.
func CountByClass(entries []*domain.BudgetEntry, idx CategoryIndex) (income, expense int) {
	for _, entry := range entries {
		switch idx.Classify(entry) {
		case ClassIncome:
			income++
		case ClassExpense:
			expense++
		}
	}
	return income, expense
}

// BuildExpenseDistribution groups expense entries by category name, sums
// their amounts, and orders the buckets by amount descending (ties keep
// first-encountered order). Colors cycle through the fixed palette by final
// position. Returns an empty slice when no expense entries exist.
//
// Grouping is by name, not id: two categories that share a display name merge
// into one bucket. That matches the chart's observed behavior and is kept
// deliberately, ambiguous as it is.
func BuildExpenseDistribution(entries []*domain.BudgetEntry, idx CategoryIndex) []domain.ExpenseSlice {
	sums := make(map[string]decimal.Decimal)
	var order []string
	for _, entry := range entries {
		if idx.Classify(entry) != ClassExpense {
			continue
		}
		name := idx.categoryName(entry)
		if _, seen := sums[name]; !seen {
			order = append(order, name)
		}
		sums[name] = sums[name].Add(entry.Amount)
	}

	slices := make([]domain.ExpenseSlice, 0, len(order))
	for _, name := range order {
		slices = append(slices, domain.ExpenseSlice{CategoryName: name, Amount: sums[name]})
	}
	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Amount.GreaterThan(slices[j].Amount)
	})
	for i := range slices {
		slices[i].Color = chartPalette[i%len(chartPalette)]
	}
	return slices
}

// Summarize assembles the full event summary from one snapshot.
func Summarize(entries []*domain.BudgetEntry, categories []*domain.Category) *domain.EventSummary {
	idx := IndexCategories(categories)
	totals := ComputeTotals(entries, idx)
	incomeCount, expenseCount := CountByClass(entries, idx)
	return &domain.EventSummary{
		TotalIncome:    totals.TotalIncome,
		TotalExpenses:  totals.TotalExpenses,
		OnhandCash:     totals.OnhandCash,
		LeftToSpend:    totals.LeftToSpend,
		EndingBalance:  totals.EndingBalance,
		EntryCount:     len(entries),
		IncomeCount:    incomeCount,
		ExpenseCount:   expenseCount,
		Reimbursements: CountReimbursements(entries),
		Distribution:   BuildExpenseDistribution(entries, idx),
	}
}
