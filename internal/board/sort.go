package board

import (
	"slices"
	"strings"

	"github.com/twiced-technology-gmbh/tasklist/internal/todo"
)

// Sort fields. SortDefault keeps the display order from todo.Sorted.
const (
	SortDefault = "default"
	SortTitle   = "title"
	SortTag     = "tag"
)

// ListOptions controls how items are listed.
type ListOptions struct {
	Filter  FilterOptions
	SortBy  string
	Reverse bool
	Limit   int
}

// List returns the visible items of s after filtering, sorting and limiting.
func List(s todo.State, opts ListOptions) []todo.Item {
	items := Filter(todo.Visible(s), opts.Filter)
	Sort(items, opts.SortBy, opts.Reverse)
	if opts.Limit > 0 && len(items) > opts.Limit {
		items = items[:opts.Limit]
	}
	return items
}

// Sort orders items in place by field. Ties keep their current order.
func Sort(items []todo.Item, field string, reverse bool) {
	cmpFn := func(a, b todo.Item) int { return 0 }
	switch field {
	case SortTitle:
		cmpFn = func(a, b todo.Item) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	case SortTag:
		cmpFn = func(a, b todo.Item) int {
			return compareTags(a, b)
		}
	}
	if reverse {
		slices.Reverse(items)
		inner := cmpFn
		cmpFn = func(a, b todo.Item) int { return -inner(a, b) }
	}
	slices.SortStableFunc(items, cmpFn)
}

// compareTags orders by tag title ignoring case, untagged items last.
func compareTags(a, b todo.Item) int {
	switch {
	case !a.HasTag() && !b.HasTag():
		return 0
	case !a.HasTag():
		return 1
	case !b.HasTag():
		return -1
	}
	return strings.Compare(strings.ToLower(a.Tag.Title), strings.ToLower(b.Tag.Title))
}

// ValidSortFields returns the accepted --sort values.
func ValidSortFields() []string {
	return []string{SortDefault, SortTitle, SortTag}
}
