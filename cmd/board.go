package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/board"
	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/output"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
	"github.com/twiced-technology-gmbh/tasklist/internal/todo"
	"github.com/twiced-technology-gmbh/tasklist/internal/watcher"
)

var flagWatch bool

var boardCmd = &cobra.Command{
	Use:     "board",
	Aliases: []string{"summary"},
	Short:   "Show task list summary",
	Long: `Displays a summary of the task list: open and done counts, the active filter,
and counts per tag.

Use --watch to keep the display live-updating. The summary re-renders whenever
the stored list changes (e.g., from the interactive list in another terminal).
Press Ctrl+C to stop.`,
	RunE: runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)
	boardCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "live-update the summary on storage changes")
	boardCmd.Flags().String("group-by", "", "list visible items grouped by field ("+strings.Join(board.ValidGroupByFields(), ", ")+")")
}

func runBoard(cmd *cobra.Command, _ []string) error {
	groupBy, _ := cmd.Flags().GetString("group-by")
	if groupBy != "" {
		if err := task.ValidateOneOf(clierr.InvalidGroupBy, "group-by", groupBy, board.ValidGroupByFields()); err != nil {
			return err
		}
	}

	return withSession(false, func(s *session) error {
		if err := renderBoard(s.state(), groupBy); err != nil {
			return err
		}
		if !flagWatch {
			return nil
		}
		return watchBoard(s, groupBy)
	})
}

func renderBoard(st todo.State, groupBy string) error {
	if groupBy != "" {
		return outputGroupedList(st, board.GroupBy(todo.Visible(st), groupBy))
	}

	summary := board.Summary(st)

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, summary)
	case output.FormatCompact:
		output.OverviewCompact(os.Stdout, summary)
	default:
		output.OverviewTable(os.Stdout, summary)
	}
	return nil
}

func watchBoard(s *session, groupBy string) error {
	path := s.kv.Path()
	if path == "" {
		return clierr.New(clierr.InvalidConfig, "--watch needs a storage backend on disk")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := watcher.New([]string{path}, func() {
		changed, reloadErr := s.bridge.Reload(s.store)
		if reloadErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: reloading task list: %v\n", reloadErr)
			return
		}
		if !changed {
			return
		}
		clearScreen()
		if renderErr := renderBoard(s.state(), groupBy); renderErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: rendering summary: %v\n", renderErr)
		}
	})
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer w.Close()

	fmt.Fprintln(os.Stderr, "Watching for changes... (Ctrl+C to stop)")

	w.Run(ctx, func(watchErr error) {
		logger.Warn("file watcher", "error", watchErr)
	})

	return nil
}

// clearScreen sends ANSI escape codes to clear the terminal and move the
// cursor to the top-left corner.
func clearScreen() {
	fmt.Fprint(os.Stdout, "\033[2J\033[H")
}
