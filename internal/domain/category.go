package domain

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType classifies the entries assigned to a category. The type is
// fixed at creation: there is no update path, only create and delete.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "Income"
	CategoryTypeExpense CategoryType = "Expense"
)

// ValidCategoryType reports whether t is a known category type.
func ValidCategoryType(t CategoryType) bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

type Category struct {
	ID        uuid.UUID    `json:"id"`
	EventID   uuid.UUID    `json:"eventId"`
	Name      string       `json:"name"`
	Type      CategoryType `json:"type"`
	CreatedAt time.Time    `json:"createdAt"`
}

type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	CreateMany(categories []*Category) ([]*Category, error)
	GetByID(id uuid.UUID) (*Category, error)
	GetByEvent(eventID uuid.UUID) ([]*Category, error)
	Delete(id uuid.UUID) error
}
