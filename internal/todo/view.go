package todo

import (
	"slices"
	"strings"
)

// Sorted returns a copy of items with done items moved below open ones.
// Relative order within each group is kept.
func Sorted(items []Item) []Item {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b Item) int {
		switch {
		case a.Done == b.Done:
			return 0
		case a.Done:
			return 1
		default:
			return -1
		}
	})
	return out
}

// Visible returns the items a list view should show: the filtered snapshot
// when a filter is active, otherwise all items in display order.
func Visible(s State) []Item {
	if s.FilterActive() {
		return slices.Clone(s.FilteredItems)
	}
	return Sorted(s.Items)
}

// MatchesSearch reports whether query occurs in the item's title, details or
// tag title, ignoring case.
func MatchesSearch(it Item, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(it.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(it.Details), q) {
		return true
	}
	return it.Tag != nil && strings.Contains(strings.ToLower(it.Tag.Title), q)
}

// Search returns the items matching query, preserving order. An empty query
// matches everything.
func Search(items []Item, query string) []Item {
	if query == "" {
		return slices.Clone(items)
	}
	var out []Item
	for _, it := range items {
		if MatchesSearch(it, query) {
			out = append(out, it)
		}
	}
	return out
}
