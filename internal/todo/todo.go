// Package todo holds the task-list data model and the reducer that mutates it.
package todo

import "slices"

// Tag is a label attached to an item. Only its title is ever edited; the ID
// stays stable so renderers can key on it.
type Tag struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Item is a single to-do entry.
type Item struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Details string `json:"details,omitempty"`
	Done    bool   `json:"done"`
	Tag     *Tag   `json:"tag,omitempty"`
}

// HasTag reports whether a tag has been assigned to the item.
func (it Item) HasTag() bool { return it.Tag != nil }

// TagTitle returns the tag title, or "" when the item is untagged.
func (it Item) TagTitle() string {
	if it.Tag == nil {
		return ""
	}
	return it.Tag.Title
}

// clone returns a copy of the item that shares no memory with it.
func (it Item) clone() Item {
	if it.Tag != nil {
		tag := *it.Tag
		it.Tag = &tag
	}
	return it
}

// State is the complete task-list state.
//
// FilteredItems is a snapshot taken when the last tag filter ran. It is not
// recomputed when Items changes afterwards, and an empty slice means no filter
// is active.
type State struct {
	Items         []Item `json:"todoItems"`
	FilteredItems []Item `json:"filteredTodoItems"`
}

// NewState returns the default empty state.
func NewState() State {
	return State{Items: []Item{}, FilteredItems: []Item{}}
}

// FilterActive reports whether the filtered view is in effect.
func (s State) FilterActive() bool { return len(s.FilteredItems) > 0 }

// Find returns the item with the given ID.
func (s State) Find(id string) (Item, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Item{}, false
	}
	return s.Items[i], true
}

func (s State) indexOf(id string) int {
	return slices.IndexFunc(s.Items, func(it Item) bool { return it.ID == id })
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	return State{Items: cloneItems(s.Items), FilteredItems: cloneItems(s.FilteredItems)}
}

// Equal reports structural equality. Nil and empty slices compare equal.
func (s State) Equal(other State) bool {
	return slices.EqualFunc(s.Items, other.Items, Item.Equal) &&
		slices.EqualFunc(s.FilteredItems, other.FilteredItems, Item.Equal)
}

// Equal reports whether two items hold the same values.
func (it Item) Equal(other Item) bool {
	if it.ID != other.ID || it.Title != other.Title || it.Details != other.Details || it.Done != other.Done {
		return false
	}
	if it.Tag == nil || other.Tag == nil {
		return it.Tag == nil && other.Tag == nil
	}
	return *it.Tag == *other.Tag
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it.clone()
	}
	return out
}
