package domain

import "github.com/shopspring/decimal"

// EventSummary is the derived financial overview for a single event.
// OnhandCash is total income by definition: there is no separate cash ledger.
// EndingBalance currently equals LeftToSpend; the two stay separate fields
// because the dashboard renders them as distinct cards and product may yet
// make them diverge.
type EventSummary struct {
	TotalIncome    decimal.Decimal    `json:"totalIncome"`
	TotalExpenses  decimal.Decimal    `json:"totalExpenses"`
	OnhandCash     decimal.Decimal    `json:"onhandCash"`
	LeftToSpend    decimal.Decimal    `json:"leftToSpend"`
	EndingBalance  decimal.Decimal    `json:"endingBalance"`
	EntryCount     int                `json:"entryCount"`
	IncomeCount    int                `json:"incomeCount"`
	ExpenseCount   int                `json:"expenseCount"`
	Reimbursements ReimbursementTally `json:"reimbursements"`
	Distribution   []ExpenseSlice     `json:"distribution"`
}

// ReimbursementTally counts entries flagged for reimbursement by status.
// Entries without the flag are not counted at all.
type ReimbursementTally struct {
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

// ExpenseSlice is one bucket of the expense pie chart: expense entries
// grouped by category name, ordered by summed amount descending.
type ExpenseSlice struct {
	CategoryName string          `json:"categoryName"`
	Amount       decimal.Decimal `json:"amount"`
	Color        string          `json:"color"`
}
