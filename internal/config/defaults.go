// Package config handles tasklist configuration and data directory discovery.
package config

const (
	// DefaultDir is the per-project data directory name.
	DefaultDir = ".tasklist"
	// AppName names the fallback directory under the user config dir.
	AppName = "tasklist"

	// ConfigFileName is the name of the config file within the data directory.
	ConfigFileName = "config.yml"

	// DefaultBackend is the storage backend for new configs.
	DefaultBackend = "file"
	// DefaultKey is the storage key the state snapshot is kept under.
	DefaultKey = "todoListState"
	// DefaultSQLiteFile is the database file name used when storage.path is unset.
	DefaultSQLiteFile = "tasklist.db"
	// DefaultDetailLines is the number of detail preview lines in the TUI list.
	DefaultDetailLines = 1

	// CurrentVersion is the current config schema version.
	CurrentVersion = 2
)

// Backends lists the accepted storage.backend values.
var Backends = []string{"file", "sqlite"}
