// Package board computes summaries and list views over the task-list state.
package board

import (
	"strings"

	"github.com/twiced-technology-gmbh/tasklist/internal/todo"
)

// Untagged is the group key for items without a tag.
const Untagged = "(untagged)"

// TagSummary holds counts for one tag.
type TagSummary struct {
	Tag   string `json:"tag"`
	Open  int    `json:"open"`
	Done  int    `json:"done"`
	Total int    `json:"total"`
}

// Overview is the aggregate view of a task list.
type Overview struct {
	Total        int          `json:"total"`
	Open         int          `json:"open"`
	Done         int          `json:"done"`
	FilterActive bool         `json:"filter_active"`
	FilterTag    string       `json:"filter_tag,omitempty"`
	Filtered     int          `json:"filtered"`
	Tags         []TagSummary `json:"tags"`
}

// Summary computes an overview of s. Tags are grouped ignoring case; each
// group is labelled with the spelling seen first.
func Summary(s todo.State) Overview {
	ov := Overview{
		Total:        len(s.Items),
		FilterActive: s.FilterActive(),
		Filtered:     len(s.FilteredItems),
		FilterTag:    filterTag(s),
	}
	for _, it := range s.Items {
		if it.Done {
			ov.Done++
		} else {
			ov.Open++
		}
	}
	for _, g := range GroupBy(s.Items, FieldTag) {
		ts := TagSummary{Tag: g.Key, Total: len(g.Items)}
		for _, it := range g.Items {
			if it.Done {
				ts.Done++
			} else {
				ts.Open++
			}
		}
		ov.Tags = append(ov.Tags, ts)
	}
	if ov.Tags == nil {
		ov.Tags = []TagSummary{}
	}
	return ov
}

// filterTag recovers the tag the snapshot was filtered by. All snapshot items
// share it up to case.
func filterTag(s todo.State) string {
	if !s.FilterActive() {
		return ""
	}
	return strings.ToLower(s.FilteredItems[0].TagTitle())
}

// Numbered pairs an item with its 1-based position in the visible list.
// Pos is 0 for items the visible list does not show.
type Numbered struct {
	Pos int `json:"pos"`
	todo.Item
}

// Number attaches visible-list positions to items.
func Number(s todo.State, items []todo.Item) []Numbered {
	pos := make(map[string]int)
	for i, it := range todo.Visible(s) {
		if _, seen := pos[it.ID]; !seen {
			pos[it.ID] = i + 1
		}
	}
	out := make([]Numbered, len(items))
	for i, it := range items {
		out[i] = Numbered{Pos: pos[it.ID], Item: it}
	}
	return out
}
