package board

import (
	"strings"

	"github.com/twiced-technology-gmbh/tasklist/internal/todo"
)

// Status filter values.
const (
	StatusAll  = "all"
	StatusOpen = statusOpen
	StatusDone = statusDone
)

// FilterOptions narrows a list of items. Zero values match everything.
type FilterOptions struct {
	Status string // all, open or done
	Tag    string // case-insensitive tag title
	Search string // case-insensitive substring of title, details or tag
}

// Filter returns the items matching all criteria, preserving order.
func Filter(items []todo.Item, opts FilterOptions) []todo.Item {
	out := make([]todo.Item, 0, len(items))
	for _, it := range items {
		if matches(it, opts) {
			out = append(out, it)
		}
	}
	return out
}

func matches(it todo.Item, opts FilterOptions) bool {
	switch opts.Status {
	case StatusOpen:
		if it.Done {
			return false
		}
	case StatusDone:
		if !it.Done {
			return false
		}
	}
	if opts.Tag != "" && (!it.HasTag() || !strings.EqualFold(it.Tag.Title, opts.Tag)) {
		return false
	}
	if opts.Search != "" && !todo.MatchesSearch(it, opts.Search) {
		return false
	}
	return true
}

// ValidStatuses returns the accepted --status values.
func ValidStatuses() []string {
	return []string{StatusAll, StatusOpen, StatusDone}
}
