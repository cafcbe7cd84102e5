package budget

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/oatside/gala/gala-backend/internal/domain"
)

// SortField names the sortable columns of the entries table.
type SortField string

const (
	SortByEntryDate    SortField = "entry_date"
	SortByAmount       SortField = "amount"
	SortByItemName     SortField = "item_name"
	SortByCategoryName SortField = "category_name"
)

// ValidSortField reports whether f is a sortable column.
func ValidSortField(f SortField) bool {
	switch f {
	case SortByEntryDate, SortByAmount, SortByItemName, SortByCategoryName:
		return true
	}
	return false
}

type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// FilterAll is the category/type filter value that matches every entry.
const FilterAll = "all"

// ViewState is the immutable view configuration of the entries table. The
// zero value is not useful; start from DefaultViewState and derive new states
// through the With*/ToggleSort helpers.
type ViewState struct {
	Search         string
	CategoryFilter string // category id or FilterAll
	TypeFilter     string // "Income", "Expense" or FilterAll
	SortBy         SortField
	Direction      SortDirection
}

// DefaultViewState matches the table's initial render: everything visible,
// newest entries first.
func DefaultViewState() ViewState {
	return ViewState{
		CategoryFilter: FilterAll,
		TypeFilter:     FilterAll,
		SortBy:         SortByEntryDate,
		Direction:      SortDescending,
	}
}

// WithSearch returns a copy of s with the search term replaced.
func (s ViewState) WithSearch(term string) ViewState {
	s.Search = term
	return s
}

// WithCategoryFilter returns a copy of s filtered to one category id, or to
// FilterAll.
func (s ViewState) WithCategoryFilter(categoryID string) ViewState {
	s.CategoryFilter = categoryID
	return s
}

// WithTypeFilter returns a copy of s filtered to one classification, or to
// FilterAll.
func (s ViewState) WithTypeFilter(t string) ViewState {
	s.TypeFilter = t
	return s
}

// ToggleSort returns a copy of s sorted by field. Selecting the current sort
// field flips the direction; selecting a new field resets to ascending.
func (s ViewState) ToggleSort(field SortField) ViewState {
	if s.SortBy == field {
		if s.Direction == SortAscending {
			s.Direction = SortDescending
		} else {
			s.Direction = SortAscending
		}
		return s
	}
	s.SortBy = field
	s.Direction = SortAscending
	return s
}

// FilterEntries returns the entries passing all of the view's predicates:
// case-insensitive substring match of the search term against item name or
// category name (either suffices), exact category id match unless the filter
// is FilterAll, and classification match unless the type filter is FilterAll.
// Entries with a missing category match no specific category or type filter;
// they only survive when both filters are FilterAll and the search matches
// the item name alone. Input order is preserved.
func FilterEntries(entries []*domain.BudgetEntry, idx CategoryIndex, state ViewState) []*domain.BudgetEntry {
	search := strings.ToLower(state.Search)
	filtered := make([]*domain.BudgetEntry, 0, len(entries))
	for _, entry := range entries {
		name := idx.categoryName(entry)

		matchesSearch := strings.Contains(strings.ToLower(entry.ItemName), search) ||
			(name != "" && strings.Contains(strings.ToLower(name), search))
		if !matchesSearch {
			continue
		}

		if state.CategoryFilter != FilterAll {
			want, err := uuid.Parse(state.CategoryFilter)
			if err != nil || entry.CategoryID == nil || *entry.CategoryID != want {
				continue
			}
		}

		if state.TypeFilter != FilterAll && string(idx.Classify(entry)) != state.TypeFilter {
			continue
		}

		filtered = append(filtered, entry)
	}
	return filtered
}

// SortEntries orders entries by the view's sort field and direction. The sort
// is stable: entries with equal keys keep their relative order. Dates compare
// as calendar dates, amounts numerically, names case-insensitively; a missing
// category name sorts as the empty string. The input slice is not modified.
func SortEntries(entries []*domain.BudgetEntry, idx CategoryIndex, state ViewState) []*domain.BudgetEntry {
	sorted := make([]*domain.BudgetEntry, len(entries))
	copy(sorted, entries)

	less := func(a, b *domain.BudgetEntry) bool {
		switch state.SortBy {
		case SortByAmount:
			return a.Amount.LessThan(b.Amount)
		case SortByItemName:
			return strings.ToLower(a.ItemName) < strings.ToLower(b.ItemName)
		case SortByCategoryName:
			return strings.ToLower(idx.categoryName(a)) < strings.ToLower(idx.categoryName(b))
		default:
			return a.EntryDate.Before(b.EntryDate)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if state.Direction == SortDescending {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// ApplyView filters and sorts one snapshot per the view state.
func ApplyView(entries []*domain.BudgetEntry, categories []*domain.Category, state ViewState) []*domain.BudgetEntry {
	idx := IndexCategories(categories)
	return SortEntries(FilterEntries(entries, idx, state), idx, state)
}
