// Package persist mirrors the store's state into durable storage and restores
// it at startup.
package persist

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/twiced-technology-gmbh/tasklist/internal/kv"
	"github.com/twiced-technology-gmbh/tasklist/internal/store"
	"github.com/twiced-technology-gmbh/tasklist/internal/todo"
)

// LoadResult reports what Load found in storage.
type LoadResult int

const (
	// LoadEmpty means nothing was stored under the key.
	LoadEmpty LoadResult = iota
	// LoadRestored means the stored snapshot was dispatched as loadState.
	LoadRestored
	// LoadCorrupt means the stored blob could not be parsed and was skipped.
	LoadCorrupt
)

func (r LoadResult) String() string {
	switch r {
	case LoadEmpty:
		return "empty"
	case LoadRestored:
		return "restored"
	case LoadCorrupt:
		return "corrupt"
	default:
		return fmt.Sprintf("LoadResult(%d)", int(r))
	}
}

// Bridge connects a store to a kv.Store key.
type Bridge struct {
	kv  kv.Store
	key string
	log *slog.Logger

	mu   sync.Mutex
	last []byte // blob most recently written or read
}

// New returns a bridge persisting under key. An empty key means DefaultKey;
// a nil logger discards.
func New(s kv.Store, key string, log *slog.Logger) *Bridge {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Bridge{kv: s, key: key, log: log}
}

// Key returns the storage key.
func (b *Bridge) Key() string { return b.key }

// Load restores the stored snapshot into st. A corrupt blob is logged and
// skipped so st keeps its state; only read failures are returned.
func (b *Bridge) Load(st *store.Store) (LoadResult, error) {
	data, err := b.kv.Get(b.key)
	if errors.Is(err, kv.ErrNotFound) {
		return LoadEmpty, nil
	}
	if err != nil {
		return LoadEmpty, fmt.Errorf("loading state: %w", err)
	}

	b.remember(data)

	s, err := Decode(data)
	if err != nil {
		b.log.Warn("discarding unreadable saved state", "key", b.key, "bytes", len(data), "error", err)
		return LoadCorrupt, nil
	}
	if err := st.Dispatch(todo.LoadState{State: s}); err != nil {
		return LoadRestored, err
	}
	b.log.Debug("restored state", "key", b.key, "items", len(s.Items))
	return LoadRestored, nil
}

// Save writes s under the bridge key.
func (b *Bridge) Save(s todo.State) error {
	data, err := Encode(s)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := b.kv.Set(b.key, data); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	b.remember(data)
	return nil
}

// Listener returns a store listener that saves every new state.
func (b *Bridge) Listener() store.Listener {
	return func(c store.Change) error {
		return b.Save(c.Next)
	}
}

// Attach loads the stored snapshot into st, then subscribes Save so every
// later transition is written through.
func (b *Bridge) Attach(st *store.Store) (LoadResult, error) {
	res, err := b.Load(st)
	if err != nil {
		return res, err
	}
	st.Subscribe(b.Listener())
	return res, nil
}

// Reload re-reads storage after an external change and dispatches loadState
// when the blob differs from the last one this bridge saw. It reports whether
// the store changed.
func (b *Bridge) Reload(st *store.Store) (bool, error) {
	data, err := b.kv.Get(b.key)
	if errors.Is(err, kv.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reloading state: %w", err)
	}
	if !b.changed(data) {
		return false, nil
	}

	s, err := Decode(data)
	if err != nil {
		b.log.Warn("ignoring unreadable saved state", "key", b.key, "bytes", len(data), "error", err)
		return false, nil
	}
	if err := st.Dispatch(todo.LoadState{State: s}); err != nil {
		return true, err
	}
	return true, nil
}

func (b *Bridge) remember(data []byte) {
	b.mu.Lock()
	b.last = bytes.Clone(data)
	b.mu.Unlock()
}

// changed records data as seen and reports whether it differs from the
// previous blob.
func (b *Bridge) changed(data []byte) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if bytes.Equal(b.last, data) {
		return false
	}
	b.last = bytes.Clone(data)
	return true
}
