package budget

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oatside/gala/gala-backend/internal/domain"
)

// entryDateLayout is the wire format of entry dates (date only, no time).
const entryDateLayout = "2006-01-02"

// EditorState is the phase of the inline-edit state machine.
type EditorState string

const (
	EditorIdle       EditorState = "idle"
	EditorEditing    EditorState = "editing"
	EditorCommitting EditorState = "committing"
)

// Locus identifies the single cell open for editing: at most one
// (entry, field) pair at a time.
type Locus struct {
	EntryID uuid.UUID
	Field   domain.EntryField
}

// Editor is the inline-edit state machine over the entries table. Starting a
// new edit while another is open abandons the previous buffer without
// ceremony; that is the table's intended last-writer-wins behavior, made an
// explicit transition here instead of a side effect of state replacement.
//
// Editor is a value type: transitions return, they do not mutate in place.
type Editor struct {
	State  EditorState
	Locus  Locus
	Buffer string
}

// NewEditor returns an idle editor.
func NewEditor() Editor {
	return Editor{State: EditorIdle}
}

// BeginEdit opens (entryID, field) for editing, seeding the buffer with the
// cell's current value. Any previously open edit is dropped unsaved.
func (e Editor) BeginEdit(entryID uuid.UUID, field domain.EntryField, currentValue string) (Editor, error) {
	if !domain.ValidEntryField(field) {
		return e, domain.ErrInvalidEntryField
	}
	return Editor{
		State:  EditorEditing,
		Locus:  Locus{EntryID: entryID, Field: field},
		Buffer: currentValue,
	}, nil
}

// SetBuffer replaces the edit buffer text. No-op when idle.
func (e Editor) SetBuffer(text string) Editor {
	if e.State != EditorEditing {
		return e
	}
	e.Buffer = text
	return e
}

// Cancel abandons the open edit.
func (e Editor) Cancel() Editor {
	return NewEditor()
}

// Commit validates the buffer and produces the field update to dispatch.
// Amounts must parse as a decimal number; a parse failure returns
// domain.ErrInvalidAmount and leaves the editor in Editing with the locus
// open, so the user can fix the text. Entry dates must be YYYY-MM-DD. All
// other fields pass through as raw text with no further validation, which is
// deliberately permissive.
//
// On success the editor moves to Committing; the caller dispatches the
// update, triggers a re-fetch, and calls Done.
func (e Editor) Commit() (Editor, *domain.EntryFieldUpdate, error) {
	if e.State != EditorEditing {
		return e, nil, domain.ErrInvalidInput
	}

	update := &domain.EntryFieldUpdate{EntryID: e.Locus.EntryID, Field: e.Locus.Field}
	switch e.Locus.Field {
	case domain.EntryFieldAmount:
		amount, err := decimal.NewFromString(strings.TrimSpace(e.Buffer))
		if err != nil {
			return e, nil, domain.ErrInvalidAmount
		}
		update.Amount = &amount
	case domain.EntryFieldEntryDate:
		date, err := time.Parse(entryDateLayout, strings.TrimSpace(e.Buffer))
		if err != nil {
			return e, nil, domain.ErrInvalidDate
		}
		update.Date = &date
	default:
		text := e.Buffer
		update.Text = &text
	}

	e.State = EditorCommitting
	e.Buffer = ""
	return e, update, nil
}

// Done closes the committing edit after dispatch resolves (either way: the
// view is refreshed from the store, not patched locally).
func (e Editor) Done() Editor {
	return NewEditor()
}

// ToggleReimbursement flips a reimbursement status between pending and
// completed. It is dispatched immediately, not gated behind the edit locus.
func ToggleReimbursement(current domain.ReimbursementStatus) domain.ReimbursementStatus {
	if current == domain.ReimbursementPending {
		return domain.ReimbursementCompleted
	}
	return domain.ReimbursementPending
}

// ParseFieldValue validates a raw single-field edit value outside the FSM,
// for callers that receive the field and text directly (the PATCH endpoint).
// Same rules as Commit.
func ParseFieldValue(entryID uuid.UUID, field domain.EntryField, raw string) (*domain.EntryFieldUpdate, error) {
	if !domain.ValidEntryField(field) {
		return nil, domain.ErrInvalidEntryField
	}
	editor, err := NewEditor().BeginEdit(entryID, field, raw)
	if err != nil {
		return nil, err
	}
	_, update, err := editor.Commit()
	if err != nil {
		return nil, err
	}
	return update, nil
}
