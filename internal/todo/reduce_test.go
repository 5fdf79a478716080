package todo

import (
	"errors"
	"fmt"
	"testing"
)

// seqReducer returns a reducer whose IDs are id-1, id-2, ...
func seqReducer() *Reducer {
	n := 0
	return &Reducer{NewID: func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}}
}

func mustReduce(t *testing.T, r *Reducer, s State, actions ...Action) State {
	t.Helper()
	for _, a := range actions {
		var err error
		s, err = r.Reduce(s, a)
		if err != nil {
			t.Fatalf("Reduce(%s): %v", a.Type(), err)
		}
	}
	return s
}

func titles(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func TestReduce_AddToEmpty(t *testing.T) {
	s := mustReduce(t, seqReducer(), NewState(), Add{Title: "Buy milk"})

	if len(s.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(s.Items))
	}
	got := s.Items[0]
	if got.Title != "Buy milk" || got.Done || got.Tag != nil || got.ID == "" {
		t.Errorf("item = %+v, want title Buy milk, not done, no tag, generated id", got)
	}
	if len(s.FilteredItems) != 0 {
		t.Errorf("FilteredItems = %v, want empty", s.FilteredItems)
	}
}

func TestReduce_AddPrepends(t *testing.T) {
	s := mustReduce(t, seqReducer(), NewState(), Add{Title: "A"}, Add{Title: "B"})

	if got := titles(s.Items); len(got) != 2 || got[0] != "B" || got[1] != "A" {
		t.Errorf("titles = %v, want [B A]", got)
	}
}

func TestReduce_AddManyUniqueIDs(t *testing.T) {
	const n = 50
	s := NewState()
	var err error
	for i := range n {
		s, err = Reduce(s, Add{Title: fmt.Sprintf("task %d", i)})
		if err != nil {
			t.Fatalf("Reduce: %v", err)
		}
	}

	if len(s.Items) != n {
		t.Fatalf("len(Items) = %d, want %d", len(s.Items), n)
	}
	seen := make(map[string]bool, n)
	for i, it := range s.Items {
		if seen[it.ID] {
			t.Errorf("duplicate id %q", it.ID)
		}
		seen[it.ID] = true
		if want := fmt.Sprintf("task %d", n-1-i); it.Title != want {
			t.Errorf("Items[%d].Title = %q, want %q", i, it.Title, want)
		}
	}
}

func TestReduce_AddRegeneratesCollidingID(t *testing.T) {
	ids := []string{"x", "x", "", "y"}
	r := &Reducer{NewID: func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}}

	s := mustReduce(t, r, NewState(), Add{Title: "first"}, Add{Title: "second"})

	if s.Items[0].ID != "y" || s.Items[1].ID != "x" {
		t.Errorf("ids = [%s %s], want [y x]", s.Items[0].ID, s.Items[1].ID)
	}
}

func TestReduce_IDGeneratorExhausted(t *testing.T) {
	s := mustReduce(t, &Reducer{NewID: func() string { return "x" }}, NewState(), Add{Title: "first"})

	tests := []struct {
		name  string
		newID func() string
		a     Action
	}{
		{"add with taken id", func() string { return "x" }, Add{Title: "second"}},
		{"add with empty id", func() string { return "" }, Add{Title: "second"}},
		{"tag with empty id", func() string { return "" }, AddTag{TodoID: "x", Tag: "work"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			r := &Reducer{NewID: func() string {
				calls++
				return tt.newID()
			}}
			got, err := r.Reduce(s, tt.a)
			if !errors.Is(err, ErrIDExhausted) {
				t.Fatalf("err = %v, want ErrIDExhausted", err)
			}
			if calls != maxIDAttempts {
				t.Errorf("NewID called %d times, want %d", calls, maxIDAttempts)
			}
			if len(got.Items) != 1 || got.Items[0].Tag != nil {
				t.Errorf("state changed: %+v", got.Items)
			}
		})
	}
}

func TestReduce_AddOverridesDone(t *testing.T) {
	s := mustReduce(t, seqReducer(), NewState(), Add{Title: "already", Details: "d", Done: true})

	if !s.Items[0].Done || s.Items[0].Details != "d" {
		t.Errorf("item = %+v, want done with details", s.Items[0])
	}
}

func TestReduce_AddBlankTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		before := mustReduce(t, seqReducer(), NewState(), Add{Title: "keep"})
		after, err := seqReducer().Reduce(before, Add{Title: title})
		if !errors.Is(err, ErrTitleRequired) {
			t.Errorf("Add(%q) err = %v, want ErrTitleRequired", title, err)
		}
		if !after.Equal(before) {
			t.Errorf("Add(%q) changed state", title)
		}
	}
}

func TestReduce_DeleteIdempotent(t *testing.T) {
	r := seqReducer()
	s := mustReduce(t, r, NewState(), Add{Title: "A"}, Add{Title: "B"})
	id := s.Items[1].ID

	once := mustReduce(t, r, s, Delete{ID: id})
	twice := mustReduce(t, r, once, Delete{ID: id})

	if got := titles(once.Items); len(got) != 1 || got[0] != "B" {
		t.Errorf("after delete titles = %v, want [B]", got)
	}
	if !twice.Equal(once) {
		t.Error("second delete changed state")
	}
}

func TestReduce_DeleteKeepsStaleFilter(t *testing.T) {
	r := seqReducer()
	s := mustReduce(t, r, NewState(), Add{Title: "A"})
	id := s.Items[0].ID
	s = mustReduce(t, r, s, AddTag{TodoID: id, Tag: "work"}, FilterByTag{Tag: "work"}, Delete{ID: id})

	if len(s.Items) != 0 {
		t.Errorf("Items = %v, want empty", s.Items)
	}
	if len(s.FilteredItems) != 1 || s.FilteredItems[0].ID != id {
		t.Errorf("FilteredItems = %v, want stale snapshot of %s", s.FilteredItems, id)
	}
}

func TestReduce_ToggleDoneInvolution(t *testing.T) {
	r := seqReducer()
	s := mustReduce(t, r, NewState(), Add{Title: "A"}, Add{Title: "B"}, Add{Title: "C"})
	id := s.Items[1].ID

	once := mustReduce(t, r, s, ToggleDone{ID: id})
	if !once.Items[1].Done || once.Items[1].ID != id {
		t.Fatalf("Items[1] = %+v, want toggled in place", once.Items[1])
	}
	twice := mustReduce(t, r, once, ToggleDone{ID: id})
	if !twice.Equal(s) {
		t.Error("toggling twice did not restore original state")
	}
}

func TestReduce_MissingIDIsNoOp(t *testing.T) {
	r := seqReducer()
	s := mustReduce(t, r, NewState(), Add{Title: "A"})

	tests := []struct {
		name   string
		action Action
	}{
		{"delete", Delete{ID: "nope"}},
		{"toggleDone", ToggleDone{ID: "nope"}},
		{"addTag", AddTag{TodoID: "nope", Tag: "x"}},
		{"edit", Edit{ID: "nope", Title: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Reduce(s, tt.action)
			if err != nil {
				t.Fatalf("err = %v, want nil", err)
			}
			if !got.Equal(s) {
				t.Errorf("state changed: %+v", got)
			}
		})
	}
}

func TestReduce_FilterByTagCaseInsensitive(t *testing.T) {
	r := seqReducer()
	s := mustReduce(t, r, NewState(), Add{Title: "A"}, Add{Title: "B"}, Add{Title: "C"})
	s = mustReduce(t, r, s,
		AddTag{TodoID: s.Items[0].ID, Tag: "Work"},
		AddTag{TodoID: s.Items[2].ID, Tag: "work"},
	)

	lower := mustReduce(t, r, s, FilterByTag{Tag: "work"})
	upper := mustReduce(t, r, s, FilterByTag{Tag: "WORK"})

	if got := titles(lower.FilteredItems); len(got) != 2 || got[0] != "C" || got[1] != "A" {
		t.Errorf("filtered titles = %v, want [C A]", got)
	}
	if !lower.Equal(upper) {
		t.Error("filterByTag results differ by case")
	}
}

func TestReduce_FilterEmptyTag(t *testing.T) {
	r := seqReducer()
	s := mustReduce(t, r, NewState(), Add{Title: "untagged"}, Add{Title: "blank tag"}, Add{Title: "tagged"})
	s = mustReduce(t, r, s,
		AddTag{TodoID: s.Items[0].ID, Tag: "home"},
		AddTag{TodoID: s.Items[1].ID, Tag: ""},
	)

	s = mustReduce(t, r, s, FilterByTag{Tag: ""})

	if got := titles(s.FilteredItems); len(got) != 1 || got[0] != "blank tag" {
		t.Errorf("filtered titles = %v, want [blank tag]", got)
	}
}

func TestReduce_ResetFilter(t *testing.T) {
	r := seqReducer()
	s := mustReduce(t, r, NewState(), Add{Title: "A"})
	s = mustReduce(t, r, s, AddTag{TodoID: s.Items[0].ID, Tag: "x"}, FilterByTag{Tag: "x"})
	if !s.FilterActive() {
		t.Fatal("filter not active after filterByTag")
	}

	s = mustReduce(t, r, s, ResetFilter{})

	if s.FilteredItems == nil || len(s.FilteredItems) != 0 {
		t.Errorf("FilteredItems = %#v, want empty non-nil slice", s.FilteredItems)
	}
}

func TestReduce_AddTagScenario(t *testing.T) {
	r := seqReducer()
	s := mustReduce(t, r, NewState(), Add{Title: "X"}, Add{Title: "other"})
	x := s.Items[1]

	s = mustReduce(t, r, s, AddTag{TodoID: x.ID, Tag: "urgent"}, FilterByTag{Tag: "urgent"})

	if len(s.FilteredItems) != 1 {
		t.Fatalf("FilteredItems = %v, want one item", s.FilteredItems)
	}
	got := s.FilteredItems[0]
	if got.ID != x.ID || got.TagTitle() != "urgent" {
		t.Errorf("filtered = %+v, want %s tagged urgent", got, x.ID)
	}
}

func TestReduce_AddTagPreservesTagID(t *testing.T) {
	r := seqReducer()
	s := mustReduce(t, r, NewState(), Add{Title: "A"})
	id := s.Items[0].ID

	s = mustReduce(t, r, s, AddTag{TodoID: id, Tag: "first"})
	tagID := s.Items[0].Tag.ID
	if tagID == "" {
		t.Fatal("new tag has empty id")
	}
	s = mustReduce(t, r, s, AddTag{TodoID: id, Tag: "second"})

	if s.Items[0].Tag.ID != tagID || s.Items[0].Tag.Title != "second" {
		t.Errorf("tag = %+v, want id %s title second", *s.Items[0].Tag, tagID)
	}
}

func TestReduce_Edit(t *testing.T) {
	r := seqReducer()
	s := mustReduce(t, r, NewState(), Add{Title: "A"}, Add{Title: "B"})
	id := s.Items[1].ID
	s = mustReduce(t, r, s, AddTag{TodoID: id, Tag: "keep"})

	s = mustReduce(t, r, s, Edit{ID: id, Title: "A2", Details: "more", Done: true})

	got := s.Items[1]
	if got.Title != "A2" || got.Details != "more" || !got.Done || got.TagTitle() != "keep" {
		t.Errorf("edited = %+v", got)
	}

	if _, err := r.Reduce(s, Edit{ID: id, Title: " "}); !errors.Is(err, ErrTitleRequired) {
		t.Errorf("blank edit err = %v, want ErrTitleRequired", err)
	}
}

func TestReduce_NilActionFails(t *testing.T) {
	s := mustReduce(t, seqReducer(), NewState(), Add{Title: "A"})
	before := s.Clone()

	got, err := Reduce(s, nil)

	if !errors.Is(err, ErrUnknownAction) {
		t.Errorf("err = %v, want ErrUnknownAction", err)
	}
	if !got.Equal(before) || !s.Equal(before) {
		t.Error("state changed on unknown action")
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	r := seqReducer()
	s := mustReduce(t, r, NewState(), Add{Title: "A"}, Add{Title: "B"})
	s = mustReduce(t, r, s, AddTag{TodoID: s.Items[0].ID, Tag: "t"})
	snapshot := s.Clone()

	actions := []Action{
		Add{Title: "C"},
		Delete{ID: s.Items[0].ID},
		ToggleDone{ID: s.Items[0].ID},
		FilterByTag{Tag: "t"},
		ResetFilter{},
		AddTag{TodoID: s.Items[0].ID, Tag: "changed"},
		Edit{ID: s.Items[1].ID, Title: "edited"},
		LoadState{State: NewState()},
	}
	for _, a := range actions {
		if _, err := r.Reduce(s, a); err != nil {
			t.Fatalf("Reduce(%s): %v", a.Type(), err)
		}
		if !s.Equal(snapshot) {
			t.Fatalf("%s mutated its input", a.Type())
		}
	}
}

func TestReduce_LoadStateVerbatim(t *testing.T) {
	loaded := State{
		Items: []Item{
			{ID: "dup", Title: "one"},
			{ID: "dup", Title: "two", Tag: &Tag{ID: "t", Title: "x"}},
		},
		FilteredItems: []Item{{ID: "gone", Title: "stale"}},
	}

	got := mustReduce(t, seqReducer(), NewState(), LoadState{State: loaded})

	if !got.Equal(loaded) {
		t.Errorf("loaded state = %+v, want %+v", got, loaded)
	}
}
