// Package cmd implements the tasklist CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/config"
	"github.com/twiced-technology-gmbh/tasklist/internal/output"
	"github.com/twiced-technology-gmbh/tasklist/internal/todo"
)

// version is set at build time via ldflags.
var version = "dev"

// EnvDir names the environment variable that selects the data directory.
const EnvDir = "TASKLIST_DIR"

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagDir     string
	flagNoColor bool
	flagVerbose bool
)

// logger receives diagnostics on stderr. It is replaced in PersistentPreRun
// once --verbose is known.
var logger = slog.New(slog.DiscardHandler)

var rootCmd = &cobra.Command{
	Use:   "tasklist",
	Short: "Keep a task list in the terminal",
	Long: `tasklist manages a list of to-do items with optional tags and details.
Run tasklist with no arguments to open the interactive list, or use the
subcommands to script it.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
		logger = newLogger(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to the tasklist data directory (env "+EnvDir+")")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "log debug diagnostics to stderr")
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	if outputFormat() == output.FormatJSON {
		os.Exit(output.JSONError(os.Stdout, err))
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	if cliErr, ok := clierr.As(err); ok {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// resolveDir returns the data directory: --dir, then $TASKLIST_DIR, then a
// .tasklist directory found walking up from the working directory, then the
// per-user directory.
func resolveDir() (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}
	if dir := os.Getenv(EnvDir); dir != "" {
		return dir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	dir, err := config.FindDir(cwd)
	if err == nil {
		return dir, nil
	}

	return config.UserDir()
}

// loadConfig finds and loads the config. The per-user directory is created
// with defaults on first use; any other missing directory is an error.
func loadConfig() (*config.Config, error) {
	dir, err := resolveDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dir)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, config.ErrInvalid) {
		return nil, clierr.Wrap(clierr.InvalidConfig, "loading config", err)
	}
	if !errors.Is(err, config.ErrNotFound) {
		return nil, err
	}

	userDir, userErr := config.UserDir()
	if userErr != nil || dir != userDir {
		return nil, clierr.New(clierr.DataDirNotFound, err.Error()).
			WithDetails(map[string]any{"dir": dir})
	}
	logger.Debug("creating user data directory", "dir", userDir)
	return config.Init(userDir)
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// runBatch applies fn to each item and reports per-item results. Returns a
// SilentError with exit code 1 if any operation failed (after outputting
// results).
func runBatch(items []todo.Item, fn func(todo.Item) error) error {
	results := make([]output.BatchResult, 0, len(items))
	for _, it := range items {
		res := output.BatchResult{ID: it.ID, OK: true}
		if err := fn(it); err != nil {
			res = res.Fail(err)
		}
		results = append(results, res)
	}
	return reportBatch(results)
}

func reportBatch(results []output.BatchResult) error {
	if outputFormat() == output.FormatJSON {
		if err := output.JSON(os.Stdout, results); err != nil {
			return err
		}
	} else {
		output.BatchSummary(os.Stdout, os.Stderr, results)
	}

	if output.Failed(results) > 0 {
		return &clierr.SilentError{Code: 1}
	}
	return nil
}
