package todo

// ActionType names an action on the wire.
type ActionType string

// Action types, in the spelling used by the dispatch envelope.
const (
	TypeLoadState   ActionType = "loadState"
	TypeAdd         ActionType = "add"
	TypeDelete      ActionType = "delete"
	TypeToggleDone  ActionType = "toggleDone"
	TypeFilterByTag ActionType = "filterByTag"
	TypeResetFilter ActionType = "resetFilter"
	TypeAddTag      ActionType = "addTag"
	TypeEdit        ActionType = "edit"
)

// Action is a state transition request. The set of actions is closed: every
// variant lives in this package and carries its own reduce step.
type Action interface {
	Type() ActionType
	reduce(r *Reducer, s State) (State, error)
}

// LoadState replaces the whole state with a previously persisted one.
// The payload is installed as-is, without validation.
type LoadState struct {
	State State
}

// Add prepends a new item. Title must not be blank.
type Add struct {
	Title   string `json:"title"`
	Details string `json:"details,omitempty"`
	Done    bool   `json:"done,omitempty"`
}

// Delete removes the item with ID.
type Delete struct {
	ID string `json:"id"`
}

// ToggleDone flips the done flag of the item with ID.
type ToggleDone struct {
	ID string `json:"id"`
}

// FilterByTag snapshots the items whose tag title matches Tag, ignoring case.
type FilterByTag struct {
	Tag string `json:"tag"`
}

// ResetFilter clears the filtered view.
type ResetFilter struct{}

// AddTag sets the tag title of the item with TodoID, creating the tag if needed.
type AddTag struct {
	TodoID string `json:"todoId"`
	Tag    string `json:"tag"`
}

// Edit replaces the title, details and done flag of the item with ID.
// The tag is left untouched.
type Edit struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Details string `json:"details,omitempty"`
	Done    bool   `json:"done"`
}

// Type implements Action.
func (LoadState) Type() ActionType { return TypeLoadState }

// Type implements Action.
func (Add) Type() ActionType { return TypeAdd }

// Type implements Action.
func (Delete) Type() ActionType { return TypeDelete }

// Type implements Action.
func (ToggleDone) Type() ActionType { return TypeToggleDone }

// Type implements Action.
func (FilterByTag) Type() ActionType { return TypeFilterByTag }

// Type implements Action.
func (ResetFilter) Type() ActionType { return TypeResetFilter }

// Type implements Action.
func (AddTag) Type() ActionType { return TypeAddTag }

// Type implements Action.
func (Edit) Type() ActionType { return TypeEdit }

// TargetID returns the item ID an action addresses, or "" for actions that
// address the whole list.
func TargetID(a Action) string {
	switch a := a.(type) {
	case Delete:
		return a.ID
	case ToggleDone:
		return a.ID
	case AddTag:
		return a.TodoID
	case Edit:
		return a.ID
	default:
		return ""
	}
}
