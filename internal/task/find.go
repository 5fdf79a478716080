// Package task resolves the item references users type on the command line
// and builds the structured errors commands report for bad input.
package task

import (
	"strconv"
	"strings"

	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/todo"
)

// minPrefixLen is the shortest ID prefix accepted as a reference.
const minPrefixLen = 4

// Resolve finds the item a reference names within the visible list.
//
// A reference is matched in order as: a full item ID; a 1-based position in
// the visible list, written "3" or "#3"; a unique ID prefix of at least four
// characters. Positions and prefixes only see visible items, full IDs see
// every item.
func Resolve(s todo.State, ref string) (todo.Item, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return todo.Item{}, ValidateRef(ref)
	}

	if it, ok := s.Find(ref); ok {
		return it, nil
	}

	visible := todo.Visible(s)
	if n, ok := parsePosition(ref); ok {
		if n < 1 || n > len(visible) {
			return todo.Item{}, NotFound(ref).WithDetails(map[string]any{
				"ref":     ref,
				"visible": len(visible),
			})
		}
		return visible[n-1], nil
	}

	if len(ref) < minPrefixLen {
		return todo.Item{}, NotFound(ref)
	}
	var matches []todo.Item
	for _, it := range s.Items {
		if strings.HasPrefix(it.ID, ref) {
			matches = append(matches, it)
		}
	}
	switch len(matches) {
	case 0:
		return todo.Item{}, NotFound(ref)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.ID
		}
		return todo.Item{}, clierr.Newf(clierr.AmbiguousRef, "reference %q matches %d items", ref, len(matches)).
			WithDetails(map[string]any{"ref": ref, "matches": ids})
	}
}

// ResolveAll resolves a comma-separated list of references, dropping
// duplicates.
func ResolveAll(s todo.State, refs string) ([]todo.Item, error) {
	seen := make(map[string]bool)
	var items []todo.Item
	for _, r := range strings.Split(refs, ",") {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		it, err := Resolve(s, r)
		if err != nil {
			return nil, err
		}
		if !seen[it.ID] {
			seen[it.ID] = true
			items = append(items, it)
		}
	}
	if len(items) == 0 {
		return nil, clierr.New(clierr.InvalidRef, "no item references provided")
	}
	return items, nil
}

func parsePosition(ref string) (int, bool) {
	digits := strings.TrimPrefix(ref, "#")
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}
