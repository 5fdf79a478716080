package board

import (
	"slices"
	"testing"

	"github.com/twiced-technology-gmbh/tasklist/internal/todo"
)

func tagged(id, title, tag string, done bool) todo.Item {
	it := todo.Item{ID: id, Title: title, Done: done}
	if tag != "-" {
		it.Tag = &todo.Tag{ID: "t" + id, Title: tag}
	}
	return it
}

func sample() todo.State {
	return todo.State{
		Items: []todo.Item{
			tagged("1", "Write report", "Work", false),
			tagged("2", "buy milk", "home", true),
			tagged("3", "Call Bob", "work", true),
			tagged("4", "Nap", "-", false),
		},
		FilteredItems: []todo.Item{},
	}
}

func TestSummary(t *testing.T) {
	ov := Summary(sample())

	if ov.Total != 4 || ov.Open != 2 || ov.Done != 2 {
		t.Errorf("totals = %d/%d/%d, want 4/2/2", ov.Total, ov.Open, ov.Done)
	}
	if ov.FilterActive {
		t.Error("FilterActive = true, want false")
	}
	want := []TagSummary{
		{Tag: "home", Done: 1, Total: 1},
		{Tag: "Work", Open: 1, Done: 1, Total: 2},
		{Tag: Untagged, Open: 1, Total: 1},
	}
	if len(ov.Tags) != len(want) {
		t.Fatalf("Tags = %+v, want %+v", ov.Tags, want)
	}
	for i := range want {
		if ov.Tags[i] != want[i] {
			t.Errorf("Tags[%d] = %+v, want %+v", i, ov.Tags[i], want[i])
		}
	}
}

func TestSummary_Filter(t *testing.T) {
	s := sample()
	s.FilteredItems = []todo.Item{s.Items[0], s.Items[2]}

	ov := Summary(s)

	if !ov.FilterActive || ov.Filtered != 2 || ov.FilterTag != "work" {
		t.Errorf("filter = %v/%d/%q, want true/2/work", ov.FilterActive, ov.Filtered, ov.FilterTag)
	}
}

func TestSummary_Empty(t *testing.T) {
	ov := Summary(todo.NewState())
	if ov.Total != 0 || ov.Tags == nil {
		t.Errorf("Summary(empty) = %+v, want zero totals and non-nil tags", ov)
	}
}

func TestGroupBy_Status(t *testing.T) {
	groups := GroupBy(sample().Items, FieldStatus)

	if len(groups) != 2 || groups[0].Key != "open" || groups[1].Key != "done" {
		t.Fatalf("groups = %+v, want [open done]", groups)
	}
	if len(groups[0].Items) != 2 || groups[0].Items[0].ID != "1" {
		t.Errorf("open group = %+v", groups[0].Items)
	}
}

func TestFilter(t *testing.T) {
	items := sample().Items

	tests := []struct {
		name string
		opts FilterOptions
		want []string
	}{
		{"all", FilterOptions{}, []string{"1", "2", "3", "4"}},
		{"open", FilterOptions{Status: StatusOpen}, []string{"1", "4"}},
		{"done", FilterOptions{Status: StatusDone}, []string{"2", "3"}},
		{"tag ignores case", FilterOptions{Tag: "WORK"}, []string{"1", "3"}},
		{"search", FilterOptions{Search: "MILK"}, []string{"2"}},
		{"combined", FilterOptions{Status: StatusDone, Tag: "work"}, []string{"3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(items, tt.opts))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Filter = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestList(t *testing.T) {
	s := sample()

	tests := []struct {
		name string
		opts ListOptions
		want []string
	}{
		{"display order", ListOptions{}, []string{"1", "4", "2", "3"}},
		{"title", ListOptions{SortBy: SortTitle}, []string{"2", "3", "4", "1"}},
		{"title reversed", ListOptions{SortBy: SortTitle, Reverse: true}, []string{"1", "4", "3", "2"}},
		{"tag", ListOptions{SortBy: SortTag}, []string{"2", "1", "3", "4"}},
		{"limit", ListOptions{Limit: 2}, []string{"1", "4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(List(s, tt.opts))
			if !slices.Equal(got, tt.want) {
				t.Errorf("List = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestList_UsesFilterSnapshot(t *testing.T) {
	s := sample()
	s.FilteredItems = []todo.Item{s.Items[2]}

	if got := ids(List(s, ListOptions{})); !slices.Equal(got, []string{"3"}) {
		t.Errorf("List = %v, want [3]", got)
	}
}

func ids(items []todo.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestNumber(t *testing.T) {
	s := sample()
	got := Number(s, []todo.Item{s.Items[2], s.Items[3]})

	if got[0].Pos != 4 || got[1].Pos != 2 {
		t.Errorf("positions = %d, %d; want 4, 2", got[0].Pos, got[1].Pos)
	}

	s.FilteredItems = []todo.Item{s.Items[0]}
	if got := Number(s, s.Items[1:2]); got[0].Pos != 0 {
		t.Errorf("hidden item pos = %d, want 0", got[0].Pos)
	}
}
