package task

import (
	"errors"
	"testing"

	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/todo"
)

func state() todo.State {
	return todo.State{
		Items: []todo.Item{
			{ID: "aaaa1111", Title: "first", Done: true},
			{ID: "aaaa2222", Title: "second"},
			{ID: "bbbb3333", Title: "third", Tag: &todo.Tag{ID: "t", Title: "x"}},
		},
		FilteredItems: []todo.Item{},
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		ref    string
		wantID string
	}{
		{"aaaa1111", "aaaa1111"},
		{"1", "aaaa2222"}, // done items sink in the visible list
		{"#3", "aaaa1111"},
		{"bbbb", "bbbb3333"},
		{"aaaa2", "aaaa2222"},
		{" 2 ", "bbbb3333"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			it, err := Resolve(state(), tt.ref)
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tt.ref, err)
			}
			if it.ID != tt.wantID {
				t.Errorf("Resolve(%q) = %s, want %s", tt.ref, it.ID, tt.wantID)
			}
		})
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		ref  string
		code string
	}{
		{"", clierr.InvalidRef},
		{"0", clierr.TodoNotFound},
		{"#9", clierr.TodoNotFound},
		{"aaaa", clierr.AmbiguousRef},
		{"abc", clierr.TodoNotFound},
		{"zzzzzz", clierr.TodoNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			_, err := Resolve(state(), tt.ref)
			ce, ok := clierr.As(err)
			if !ok {
				t.Fatalf("Resolve(%q) err = %v, want *clierr.Error", tt.ref, err)
			}
			if ce.Code != tt.code {
				t.Errorf("code = %s, want %s", ce.Code, tt.code)
			}
		})
	}
}

func TestResolve_PositionUsesFilter(t *testing.T) {
	s := state()
	s.FilteredItems = []todo.Item{s.Items[2]}

	it, err := Resolve(s, "1")
	if err != nil {
		t.Fatal(err)
	}
	if it.ID != "bbbb3333" {
		t.Errorf("Resolve(1) = %s, want bbbb3333", it.ID)
	}
}

func TestResolveAll(t *testing.T) {
	items, err := ResolveAll(state(), "1, aaaa2222,#3")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].ID != "aaaa2222" || items[1].ID != "aaaa1111" {
		t.Errorf("ResolveAll = %+v, want [aaaa2222 aaaa1111]", items)
	}

	if _, err := ResolveAll(state(), " , "); err == nil {
		t.Error("ResolveAll(empty) succeeded, want error")
	}
}

func TestFromDispatch(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{todo.ErrTitleRequired, clierr.InvalidInput},
		{todo.ErrUnknownAction, clierr.UnknownAction},
		{todo.ErrMalformedAction, clierr.MalformedAction},
		{todo.ErrIDExhausted, clierr.InternalError},
		{errors.New("disk full"), clierr.StorageError},
		{clierr.New(clierr.NoChanges, "x"), clierr.NoChanges},
	}
	for _, tt := range tests {
		ce, ok := clierr.As(FromDispatch(tt.err))
		if !ok || ce.Code != tt.code {
			t.Errorf("FromDispatch(%v) = %v, want code %s", tt.err, ce, tt.code)
		}
	}
	if FromDispatch(nil) != nil {
		t.Error("FromDispatch(nil) != nil")
	}
}
