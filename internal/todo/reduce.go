package todo

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Sentinel errors returned by Reduce. State is unchanged whenever one is returned.
var (
	ErrUnknownAction = errors.New("unknown action")
	ErrTitleRequired = errors.New("title is required")
	ErrIDExhausted   = errors.New("no unused id after retries")
)

// maxIDAttempts bounds how many IDs uniqueID draws before giving up.
const maxIDAttempts = 64

// Reducer applies actions to states. NewID generates item and tag IDs; when
// nil, random UUIDs are used. Empty or already used IDs are redrawn up to
// maxIDAttempts times before Reduce fails with ErrIDExhausted.
type Reducer struct {
	NewID func() string
}

var defaultReducer = &Reducer{}

// Reduce applies a to s using random UUIDs for new IDs.
func Reduce(s State, a Action) (State, error) {
	return defaultReducer.Reduce(s, a)
}

// Reduce returns the state that results from applying a to s. It never
// mutates s: callers may keep s as history.
//
// Actions addressing an ID that is not in s.Items are no-ops.
func (r *Reducer) Reduce(s State, a Action) (State, error) {
	if a == nil {
		return s, ErrUnknownAction
	}
	return a.reduce(r, s)
}

func (r *Reducer) newID() string {
	if r.NewID != nil {
		return r.NewID()
	}
	return uuid.NewString()
}

// uniqueID draws IDs until one is not taken by an item in s.
func (r *Reducer) uniqueID(s State) (string, error) {
	for range maxIDAttempts {
		id := r.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}

// tagID draws a non-empty tag ID.
func (r *Reducer) tagID() (string, error) {
	for range maxIDAttempts {
		if id := r.newID(); id != "" {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}

func (a LoadState) reduce(_ *Reducer, _ State) (State, error) {
	return a.State.Clone(), nil
}

func (a Add) reduce(r *Reducer, s State) (State, error) {
	if strings.TrimSpace(a.Title) == "" {
		return s, ErrTitleRequired
	}
	id, err := r.uniqueID(s)
	if err != nil {
		return s, err
	}
	item := Item{
		ID:      id,
		Title:   a.Title,
		Details: a.Details,
		Done:    a.Done,
	}
	items := make([]Item, 0, len(s.Items)+1)
	items = append(items, item)
	items = append(items, s.Items...)
	s.Items = items
	return s, nil
}

func (a Delete) reduce(_ *Reducer, s State) (State, error) {
	if s.indexOf(a.ID) < 0 {
		return s, nil
	}
	items := make([]Item, 0, len(s.Items))
	for _, it := range s.Items {
		if it.ID != a.ID {
			items = append(items, it)
		}
	}
	s.Items = items
	return s, nil
}

func (a ToggleDone) reduce(_ *Reducer, s State) (State, error) {
	return updateItem(s, a.ID, func(it *Item) { it.Done = !it.Done }), nil
}

func (a FilterByTag) reduce(_ *Reducer, s State) (State, error) {
	filtered := make([]Item, 0)
	for _, it := range s.Items {
		if it.Tag != nil && strings.EqualFold(it.Tag.Title, a.Tag) {
			filtered = append(filtered, it)
		}
	}
	s.FilteredItems = filtered
	return s, nil
}

func (ResetFilter) reduce(_ *Reducer, s State) (State, error) {
	s.FilteredItems = []Item{}
	return s, nil
}

func (a AddTag) reduce(r *Reducer, s State) (State, error) {
	if s.indexOf(a.TodoID) < 0 {
		return s, nil
	}
	tag := Tag{Title: a.Tag}
	if cur := s.Items[s.indexOf(a.TodoID)].Tag; cur != nil {
		tag.ID = cur.ID
	} else {
		id, err := r.tagID()
		if err != nil {
			return s, err
		}
		tag.ID = id
	}
	return updateItem(s, a.TodoID, func(it *Item) { it.Tag = &tag }), nil
}

func (a Edit) reduce(_ *Reducer, s State) (State, error) {
	if strings.TrimSpace(a.Title) == "" {
		return s, ErrTitleRequired
	}
	return updateItem(s, a.ID, func(it *Item) {
		it.Title = a.Title
		it.Details = a.Details
		it.Done = a.Done
	}), nil
}

// updateItem returns s with fn applied to a copy of the item with id, keeping
// its position. s is returned unchanged when no item matches.
func updateItem(s State, id string, fn func(*Item)) State {
	idx := s.indexOf(id)
	if idx < 0 {
		return s
	}
	items := make([]Item, len(s.Items))
	copy(items, s.Items)
	it := items[idx].clone()
	fn(&it)
	items[idx] = it
	s.Items = items
	return s
}
