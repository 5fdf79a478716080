// Package activity keeps an append-only JSONL record of dispatched actions.
package activity

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/twiced-technology-gmbh/tasklist/internal/store"
	"github.com/twiced-technology-gmbh/tasklist/internal/todo"
)

const (
	// FileName is the log file created inside the data directory.
	FileName   = "activity.jsonl"
	fileMode   = 0o600
	maxEntries = 10000
)

// Entry is one logged action.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	TodoID    string    `json:"todo_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Log appends entries to <dir>/activity.jsonl, keeping at most MaxEntries.
type Log struct {
	path       string
	MaxEntries int
	now        func() time.Time
}

// New returns a log stored in dir.
func New(dir string) *Log {
	return &Log{path: filepath.Join(dir, FileName), MaxEntries: maxEntries, now: time.Now}
}

// Path returns the log file path.
func (l *Log) Path() string { return l.path }

// Append writes e and truncates the oldest entries when the log is over its
// limit. Truncation failures are ignored.
func (l *Log) Append(e Entry) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileMode) //nolint:gosec // path inside data dir
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshaling activity entry: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing activity entry: %w", err)
	}

	_ = l.truncate()
	return nil
}

func (l *Log) truncate() error {
	lines, err := l.lines()
	if err != nil {
		return err
	}
	limit := l.MaxEntries
	if limit <= 0 {
		limit = maxEntries
	}
	if len(lines) <= limit {
		return nil
	}

	var buf strings.Builder
	for _, line := range lines[len(lines)-limit:] {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return os.WriteFile(l.path, []byte(buf.String()), fileMode)
}

func (l *Log) lines() ([]string, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

// Read returns the newest n entries, oldest first. n <= 0 returns all.
// Lines that fail to parse are skipped; a missing log reads as empty.
func (l *Log) Read(n int) ([]Entry, error) {
	lines, err := l.lines()
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading activity log: %w", err)
	}
	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		var e Entry
		if json.Unmarshal([]byte(line), &e) == nil {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// Listener returns a store listener that records every transition except
// loadState. It never reports an error, so logging cannot fail a dispatch.
func (l *Log) Listener() store.Listener {
	return func(c store.Change) error {
		if c.Action.Type() == todo.TypeLoadState {
			return nil
		}
		_ = l.Append(Entry{
			Timestamp: l.now(),
			Action:    string(c.Action.Type()),
			TodoID:    changedID(c),
			Detail:    Describe(c),
		})
		return nil
	}
}

// changedID returns the item an action touched. For add it is the new
// item at the head of the list.
func changedID(c store.Change) string {
	if c.Action.Type() == todo.TypeAdd && len(c.Next.Items) > 0 {
		return c.Next.Items[0].ID
	}
	return todo.TargetID(c.Action)
}

// Describe renders a short human summary of a change.
func Describe(c store.Change) string {
	switch a := c.Action.(type) {
	case todo.Add:
		return fmt.Sprintf("added %q", a.Title)
	case todo.Delete:
		if it, ok := c.Prev.Find(a.ID); ok {
			return fmt.Sprintf("deleted %q", it.Title)
		}
		return "delete: no such item"
	case todo.ToggleDone:
		it, ok := c.Next.Find(a.ID)
		switch {
		case !ok:
			return "toggle: no such item"
		case it.Done:
			return fmt.Sprintf("completed %q", it.Title)
		default:
			return fmt.Sprintf("reopened %q", it.Title)
		}
	case todo.AddTag:
		return fmt.Sprintf("tagged %q", a.Tag)
	case todo.Edit:
		return fmt.Sprintf("edited %q", a.Title)
	case todo.FilterByTag:
		return fmt.Sprintf("filtered by %q (%d items)", a.Tag, len(c.Next.FilteredItems))
	case todo.ResetFilter:
		return "filter cleared"
	default:
		return ""
	}
}
