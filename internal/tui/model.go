// Package tui implements the interactive terminal list for tasklist.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/tasklist/internal/store"
	"github.com/twiced-technology-gmbh/tasklist/internal/todo"
)

// view represents the current screen state.
type view int

const (
	viewList view = iota
	viewInput
	viewConfirmDelete
	viewDetail
)

// prompt identifies what the text input is collecting.
type prompt int

const (
	promptAddTitle prompt = iota
	promptAddDetails
	promptEditTitle
	promptEditDetails
	promptTag
	promptFilter
)

const (
	keyEsc       = "esc"
	titleLimit   = 200
	detailsLimit = 2000
)

// Options configures a List.
type Options struct {
	// DetailLines is the number of detail preview lines under each item.
	DetailLines int
	// Markdown renders details as markdown in the detail view.
	Markdown bool
	// Reload re-reads durable storage after an external change. It is
	// called when a ReloadMsg arrives.
	Reload func() error
}

// List is the top-level bubbletea model.
type List struct {
	store *store.Store
	opts  Options

	items     []todo.Item // visible items, in display order
	cursor    int
	scrollOff int
	view      view
	width     int
	height    int
	err       error

	input  textinput.Model
	prompt prompt
	// draft holds the add/edit values collected so far.
	draft todo.Item

	deleteID    string
	deleteTitle string
}

// New creates a List model over st.
func New(st *store.Store, opts Options) *List {
	ti := textinput.New()
	ti.CharLimit = titleLimit
	l := &List{store: st, opts: opts, input: ti}
	l.refresh()
	return l
}

// Init implements tea.Model.
func (l *List) Init() tea.Cmd { return nil }

// ReloadMsg is sent by the storage watcher to trigger a reload.
type ReloadMsg struct{}

// Update implements tea.Model.
func (l *List) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return l.handleKey(msg)
	case tea.WindowSizeMsg:
		l.width = msg.Width
		l.height = msg.Height
		l.input.Width = max(msg.Width-12, 10) //nolint:mnd // prompt label and padding
		l.ensureVisible()
		return l, nil
	case ReloadMsg:
		if l.opts.Reload != nil {
			if err := l.opts.Reload(); err != nil {
				l.err = err
			}
		}
		l.refresh()
		return l, nil
	}
	return l, nil
}

func (l *List) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return l, tea.Quit
	}

	switch l.view {
	case viewInput:
		return l.handleInputKey(msg)
	case viewConfirmDelete:
		return l.handleDeleteKey(msg)
	case viewDetail:
		l.view = viewList
		return l, nil
	default:
		return l.handleListKey(msg)
	}
}

func (l *List) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		return l, tea.Quit
	case key.Matches(msg, keys.up):
		if l.cursor > 0 {
			l.cursor--
			l.ensureVisible()
		}
	case key.Matches(msg, keys.down):
		if l.cursor < len(l.items)-1 {
			l.cursor++
			l.ensureVisible()
		}
	case key.Matches(msg, keys.top):
		l.cursor = 0
		l.ensureVisible()
	case key.Matches(msg, keys.bottom):
		l.cursor = max(len(l.items)-1, 0)
		l.ensureVisible()
	case key.Matches(msg, keys.toggle):
		if it, ok := l.selected(); ok {
			l.dispatch(todo.ToggleDone{ID: it.ID})
		}
	case key.Matches(msg, keys.add):
		l.draft = todo.Item{}
		return l, l.startInput(promptAddTitle, "")
	case key.Matches(msg, keys.edit):
		if it, ok := l.selected(); ok {
			l.draft = it
			return l, l.startInput(promptEditTitle, it.Title)
		}
	case key.Matches(msg, keys.tag):
		if it, ok := l.selected(); ok {
			l.draft = it
			return l, l.startInput(promptTag, it.TagTitle())
		}
	case key.Matches(msg, keys.filter):
		initial := ""
		if it, ok := l.selected(); ok {
			initial = it.TagTitle()
		}
		return l, l.startInput(promptFilter, initial)
	case key.Matches(msg, keys.reset):
		l.dispatch(todo.ResetFilter{})
	case key.Matches(msg, keys.del):
		if it, ok := l.selected(); ok {
			l.deleteID = it.ID
			l.deleteTitle = it.Title
			l.view = viewConfirmDelete
		}
	case key.Matches(msg, keys.open):
		if _, ok := l.selected(); ok {
			l.view = viewDetail
		}
	}
	return l, nil
}

func (l *List) startInput(p prompt, initial string) tea.Cmd {
	l.prompt = p
	l.view = viewInput
	l.input.CharLimit = titleLimit
	if p == promptAddDetails || p == promptEditDetails {
		l.input.CharLimit = detailsLimit
	}
	l.input.SetValue(initial)
	l.input.CursorEnd()
	return l.input.Focus()
}

func (l *List) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		l.input.Blur()
		l.view = viewList
		return l, nil
	case "enter":
		return l, l.submitInput()
	}
	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return l, cmd
}

// submitInput consumes the current input value and either advances to the
// next prompt or dispatches the finished action.
func (l *List) submitInput() tea.Cmd {
	value := l.input.Value()

	switch l.prompt {
	case promptAddTitle, promptEditTitle:
		if strings.TrimSpace(value) == "" {
			l.err = todo.ErrTitleRequired
			return nil
		}
		l.draft.Title = value
		next := promptAddDetails
		if l.prompt == promptEditTitle {
			next = promptEditDetails
		}
		return l.startInput(next, l.draft.Details)
	case promptAddDetails:
		l.draft.Details = value
		l.finishInput()
		if l.dispatch(todo.Add{Title: l.draft.Title, Details: l.draft.Details}) {
			l.cursor = l.indexOfNewest()
			l.ensureVisible()
		}
	case promptEditDetails:
		l.draft.Details = value
		l.finishInput()
		l.dispatch(todo.Edit{ID: l.draft.ID, Title: l.draft.Title, Details: l.draft.Details, Done: l.draft.Done})
	case promptTag:
		l.finishInput()
		l.dispatch(todo.AddTag{TodoID: l.draft.ID, Tag: strings.TrimSpace(value)})
	case promptFilter:
		l.finishInput()
		tag := strings.TrimSpace(value)
		if tag == "" {
			l.dispatch(todo.ResetFilter{})
		} else {
			l.dispatch(todo.FilterByTag{Tag: tag})
		}
		l.cursor = 0
		l.scrollOff = 0
	}
	return nil
}

func (l *List) finishInput() {
	l.input.Blur()
	l.view = viewList
}

func (l *List) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		l.dispatch(todo.Delete{ID: l.deleteID})
		l.view = viewList
	case "n", "N", keyEsc, "q":
		l.view = viewList
	}
	return l, nil
}

// dispatch applies a to the store and refreshes the list. It reports whether
// the store accepted the action.
func (l *List) dispatch(a todo.Action) bool {
	err := l.store.Dispatch(a)
	l.refresh()
	if err != nil {
		l.err = fmt.Errorf("%s: %w", a.Type(), err)
		return false
	}
	l.err = nil
	return true
}

// refresh rebuilds the visible list from the store, keeping the cursor on
// the same item where possible.
func (l *List) refresh() {
	var selectedID string
	if it, ok := l.selected(); ok {
		selectedID = it.ID
	}

	l.items = todo.Visible(l.store.State())

	if selectedID != "" {
		for i, it := range l.items {
			if it.ID == selectedID {
				l.cursor = i
				break
			}
		}
	}
	l.clampCursor()
}

func (l *List) indexOfNewest() int {
	st := l.store.State()
	if len(st.Items) == 0 {
		return 0
	}
	newest := st.Items[0].ID
	for i, it := range l.items {
		if it.ID == newest {
			return i
		}
	}
	return l.cursor
}

func (l *List) selected() (todo.Item, bool) {
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return todo.Item{}, false
	}
	return l.items[l.cursor], true
}

func (l *List) clampCursor() {
	if l.cursor >= len(l.items) {
		l.cursor = len(l.items) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.ensureVisible()
}

// ensureVisible adjusts the scroll offset so the cursor row is on screen.
func (l *List) ensureVisible() {
	rows := l.visibleRows()
	switch {
	case l.cursor < l.scrollOff:
		l.scrollOff = l.cursor
	case l.cursor >= l.scrollOff+rows:
		l.scrollOff = l.cursor - rows + 1
	}
	if l.scrollOff < 0 {
		l.scrollOff = 0
	}
}

// visibleRows is the number of items that fit between the header and the
// status bar.
func (l *List) visibleRows() int {
	if l.height == 0 {
		return max(len(l.items), 1)
	}
	avail := l.height - l.chromeHeight()
	rows := avail / l.itemHeight()
	return max(rows, 1)
}

func (l *List) itemHeight() int {
	return 1 + l.opts.DetailLines
}

const (
	headerChrome = 2 // title line + blank line
	footerChrome = 2 // blank line + status bar
	errorChrome  = 1
)

func (l *List) chromeHeight() int {
	h := headerChrome + footerChrome
	if l.err != nil {
		h += errorChrome
	}
	return h
}
