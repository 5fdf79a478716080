package todo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedAction is returned when an envelope or its payload cannot be parsed.
var ErrMalformedAction = errors.New("malformed action")

// Envelope is the wire form of an action: {"type": "...", "data": {...}}.
type Envelope struct {
	Type ActionType      `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// itemPayload wraps add and edit payloads the way the dispatch envelope nests
// them: {"todoItem": {...}}. The bare item object is accepted too.
type itemPayload[T any] struct {
	TodoItem T `json:"todoItem"`
}

// DecodeAction parses a dispatch envelope into a typed action.
func DecodeAction(data []byte) (Action, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedAction, err)
	}

	switch env.Type {
	case TypeLoadState:
		st, err := decodePayload[State](env)
		if err != nil {
			return nil, err
		}
		return LoadState{State: st}, nil
	case TypeAdd:
		return decodeItem[Add](env)
	case TypeEdit:
		return decodeItem[Edit](env)
	case TypeDelete:
		return decodeAction[Delete](env)
	case TypeToggleDone:
		return decodeAction[ToggleDone](env)
	case TypeFilterByTag:
		return decodeAction[FilterByTag](env)
	case TypeResetFilter:
		return ResetFilter{}, nil
	case TypeAddTag:
		return decodeAction[AddTag](env)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, env.Type)
	}
}

func decodeAction[T Action](env Envelope) (Action, error) {
	v, err := decodePayload[T](env)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// decodeItem reads the item under "todoItem", or the whole payload when that
// key is absent.
func decodeItem[T Action](env Envelope) (Action, error) {
	p, err := decodePayload[itemPayload[json.RawMessage]](env)
	if err != nil {
		return nil, err
	}
	if p.TodoItem == nil {
		return decodeAction[T](env)
	}
	return decodeAction[T](Envelope{Type: env.Type, Data: p.TodoItem})
}

func decodePayload[T any](env Envelope) (T, error) {
	var v T
	raw := bytes.TrimSpace(env.Data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return v, fmt.Errorf("%w: %s: missing data", ErrMalformedAction, env.Type)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("%w: %s: %w", ErrMalformedAction, env.Type, err)
	}
	return v, nil
}

// EncodeAction renders a as a dispatch envelope.
func EncodeAction(a Action) ([]byte, error) {
	if a == nil {
		return nil, ErrUnknownAction
	}

	var payload any
	switch a := a.(type) {
	case LoadState:
		payload = a.State
	case Add:
		payload = itemPayload[Add]{TodoItem: a}
	case Edit:
		payload = itemPayload[Edit]{TodoItem: a}
	case ResetFilter:
		payload = nil
	default:
		payload = a
	}

	env := Envelope{Type: a.Type()}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding %s payload: %w", a.Type(), err)
		}
		env.Data = raw
	}
	return json.Marshal(env)
}
