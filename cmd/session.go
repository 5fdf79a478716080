package cmd

import (
	"path/filepath"

	"github.com/twiced-technology-gmbh/tasklist/internal/activity"
	"github.com/twiced-technology-gmbh/tasklist/internal/board"
	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/config"
	"github.com/twiced-technology-gmbh/tasklist/internal/filelock"
	"github.com/twiced-technology-gmbh/tasklist/internal/kv"
	"github.com/twiced-technology-gmbh/tasklist/internal/persist"
	"github.com/twiced-technology-gmbh/tasklist/internal/store"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
	"github.com/twiced-technology-gmbh/tasklist/internal/todo"
)

// sessionLockName serializes whole commands that read, change and write the
// list. It is separate from the file backend's own per-operation lock.
const sessionLockName = ".session.lock"

// session is an opened task list: config, storage, store and the listeners
// that keep storage and the activity log current.
type session struct {
	cfg    *config.Config
	kv     kv.Store
	store  *store.Store
	bridge *persist.Bridge
	lock   *filelock.Lock
}

// openSession loads the config and restores the stored list. A writing
// session holds the session lock until close, so concurrent commands cannot
// lose each other's changes.
func openSession(write bool) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return openSessionWith(cfg, write)
}

func openSessionWith(cfg *config.Config, write bool) (*session, error) {
	s := &session{cfg: cfg}

	if write {
		l, err := filelock.Exclusive(filepath.Join(cfg.Dir(), sessionLockName))
		if err != nil {
			return nil, clierr.Wrap(clierr.StorageError, "acquiring lock", err)
		}
		s.lock = l
	}

	kvs, err := kv.Open(cfg.Storage.Backend, cfg.StoragePath())
	if err != nil {
		s.close()
		return nil, clierr.Wrap(clierr.StorageError, "opening storage", err)
	}
	s.kv = kvs

	s.store = store.New(todo.NewState())
	s.bridge = persist.New(kvs, cfg.StorageKey(), logger)
	res, err := s.bridge.Attach(s.store)
	if err != nil {
		s.close()
		return nil, clierr.Wrap(clierr.StorageError, "loading task list", err)
	}
	logger.Debug("opened task list",
		"dir", cfg.Dir(), "backend", cfg.Storage.Backend, "path", kvs.Path(), "load", res)

	if cfg.ActivityLogEnabled() {
		s.store.Subscribe(activity.New(cfg.Dir()).Listener())
	}
	return s, nil
}

// close releases storage and the session lock. It is safe to call twice.
func (s *session) close() {
	if s.kv != nil {
		if err := s.kv.Close(); err != nil {
			logger.Warn("closing storage", "error", err)
		}
		s.kv = nil
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil {
			logger.Warn("releasing lock", "error", err)
		}
		s.lock = nil
	}
}

func (s *session) state() todo.State { return s.store.State() }

// dispatch applies a and converts failures to CLI errors.
func (s *session) dispatch(a todo.Action) error {
	err := s.store.Dispatch(a)
	if err != nil {
		logger.Debug("dispatch failed", "action", a, "error", err)
	}
	return task.FromDispatch(err)
}

// resolve finds the item ref names.
func (s *session) resolve(ref string) (todo.Item, error) {
	return task.Resolve(s.state(), ref)
}

// numbered returns it with its current visible-list position.
func (s *session) numbered(it todo.Item) board.Numbered {
	return board.Number(s.state(), []todo.Item{it})[0]
}

// current re-reads an item after a dispatch.
func (s *session) current(id string) (todo.Item, error) {
	it, ok := s.state().Find(id)
	if !ok {
		return todo.Item{}, task.NotFound(id)
	}
	return it, nil
}

// withSession opens a session, runs fn and closes it.
func withSession(write bool, fn func(*session) error) error {
	s, err := openSession(write)
	if err != nil {
		return err
	}
	defer s.close()
	return fn(s)
}
