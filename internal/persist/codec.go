package persist

import (
	"encoding/json"
	"fmt"

	"github.com/twiced-technology-gmbh/tasklist/internal/todo"
)

// DefaultKey is the storage key the state snapshot lives under.
const DefaultKey = "todoListState"

// Encode renders s as the persisted JSON snapshot. Empty lists are written as
// [] rather than null.
func Encode(s todo.State) ([]byte, error) {
	if s.Items == nil {
		s.Items = []todo.Item{}
	}
	if s.FilteredItems == nil {
		s.FilteredItems = []todo.Item{}
	}
	return json.Marshal(s)
}

// Decode parses a persisted snapshot. A document that is not a JSON object is
// rejected; missing lists decode as empty.
func Decode(data []byte) (todo.State, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return todo.State{}, fmt.Errorf("decoding state: %w", err)
	}
	if raw == nil {
		return todo.State{}, fmt.Errorf("decoding state: not an object")
	}

	var s todo.State
	if err := json.Unmarshal(data, &s); err != nil {
		return todo.State{}, fmt.Errorf("decoding state: %w", err)
	}
	if s.Items == nil {
		s.Items = []todo.Item{}
	}
	if s.FilteredItems == nil {
		s.FilteredItems = []todo.Item{}
	}
	return s, nil
}
