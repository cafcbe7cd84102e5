package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReimbursementStatus tracks an expense that a third party owes back.
type ReimbursementStatus string

const (
	ReimbursementPending   ReimbursementStatus = "pending"
	ReimbursementCompleted ReimbursementStatus = "completed"
)

// BudgetEntry is a single dated income or expense record. Whether it counts
// as income or expense is never stored here: it is resolved at read time from
// the referenced category's type. CategoryID is nil once the category has
// been deleted, which leaves the entry unclassified.
type BudgetEntry struct {
	ID                  uuid.UUID           `json:"id"`
	EventID             uuid.UUID           `json:"eventId"`
	CategoryID          *uuid.UUID          `json:"categoryId,omitempty"`
	ItemName            string              `json:"itemName"`
	Amount              decimal.Decimal     `json:"amount"`
	PaymentMethod       *string             `json:"paymentMethod,omitempty"`
	ReceiptURL          *string             `json:"receiptUrl,omitempty"`
	ReceiptFilename     *string             `json:"receiptFilename,omitempty"`
	ToBeReimbursed      bool                `json:"toBeReimbursed"`
	ReimbursementSource *string             `json:"reimbursementSource,omitempty"`
	ReimbursementStatus ReimbursementStatus `json:"reimbursementStatus"`
	EntryDate           time.Time           `json:"entryDate"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

// EntryFieldUpdate is a validated single-field mutation produced by the
// inline edit flow.
type EntryFieldUpdate struct {
	EntryID uuid.UUID
	Field   EntryField
	// Exactly one of the following is set, matching Field.
	Amount        *decimal.Decimal
	Text          *string
	Date          *time.Time
}

// EntryField names the columns the table exposes for inline editing.
type EntryField string

const (
	EntryFieldItemName      EntryField = "item_name"
	EntryFieldAmount        EntryField = "amount"
	EntryFieldPaymentMethod EntryField = "payment_method"
	EntryFieldEntryDate     EntryField = "entry_date"
)

// ValidEntryField reports whether f is editable inline.
func ValidEntryField(f EntryField) bool {
	switch f {
	case EntryFieldItemName, EntryFieldAmount, EntryFieldPaymentMethod, EntryFieldEntryDate:
		return true
	}
	return false
}

// ReceiptRef pairs the stored receipt URL with the original filename. The
// two travel together: both present or both absent.
type ReceiptRef struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

type BudgetEntryRepository interface {
	Create(entry *BudgetEntry) (*BudgetEntry, error)
	GetByID(id uuid.UUID) (*BudgetEntry, error)
	GetByEvent(eventID uuid.UUID) ([]*BudgetEntry, error)
	UpdateField(update *EntryFieldUpdate) (*BudgetEntry, error)
	SetReceipt(id uuid.UUID, receipt *ReceiptRef) (*BudgetEntry, error)
	ToggleReimbursement(id uuid.UUID) (*BudgetEntry, error)
	Delete(id uuid.UUID) error
}
