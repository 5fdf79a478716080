package board

import (
	"slices"
	"strings"

	"github.com/twiced-technology-gmbh/tasklist/internal/todo"
)

// Group field names.
const (
	FieldTag    = "tag"
	FieldStatus = "status"
)

const (
	statusOpen = "open"
	statusDone = "done"
)

// Group is a set of items sharing a key.
type Group struct {
	Key   string      `json:"key"`
	Items []todo.Item `json:"items"`
}

// GroupBy splits items by field, preserving item order inside each group.
// Tag groups are matched ignoring case and sorted by key with the untagged
// group last; status groups list open before done.
func GroupBy(items []todo.Item, field string) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, it := range items {
		key := groupKey(it, field)
		fold := strings.ToLower(key)
		i, ok := index[fold]
		if !ok {
			i = len(groups)
			index[fold] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Items = append(groups[i].Items, it)
	}

	switch field {
	case FieldStatus:
		slices.SortStableFunc(groups, func(a, b Group) int {
			return strings.Compare(statusOrder(a.Key), statusOrder(b.Key))
		})
	case FieldTag:
		slices.SortStableFunc(groups, func(a, b Group) int {
			switch {
			case a.Key == Untagged:
				return 1
			case b.Key == Untagged:
				return -1
			}
			return strings.Compare(strings.ToLower(a.Key), strings.ToLower(b.Key))
		})
	}
	return groups
}

func groupKey(it todo.Item, field string) string {
	switch field {
	case FieldStatus:
		if it.Done {
			return statusDone
		}
		return statusOpen
	case FieldTag:
		if !it.HasTag() {
			return Untagged
		}
		return it.Tag.Title
	default:
		return "(all)"
	}
}

func statusOrder(key string) string {
	if key == statusOpen {
		return "0"
	}
	return "1"
}

// ValidGroupByFields returns the valid --group-by field names.
func ValidGroupByFields() []string {
	return []string{FieldTag, FieldStatus}
}
