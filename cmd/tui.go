package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/tui"
	"github.com/twiced-technology-gmbh/tasklist/internal/watcher"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive list",
	Long: `Opens a full-screen view of the list. Changes made in the view are saved
as they happen, and edits from other commands are picked up when the data
file changes on disk.

The view does not hold the session lock. A command that writes while the view
is open, before its reload has landed, is overwritten by the view's next
change: the last writer wins.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.close()

	model := tui.New(s.store, tui.Options{
		DetailLines: s.cfg.TUI.DetailLines,
		Markdown:    s.cfg.TUI.Markdown,
		Reload: func() error {
			_, err := s.bridge.Reload(s.store)
			return err
		},
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go startTUIWatcher(ctx, s.kv.Path(), p)

	_, err = p.Run()
	return err
}

func startTUIWatcher(ctx context.Context, path string, p *tea.Program) {
	if path == "" {
		return
	}
	w, err := watcher.New([]string{path}, func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		logger.Debug("live reload disabled", "error", err)
		return // non-fatal: TUI works without live refresh
	}
	defer w.Close()
	w.Run(ctx, nil)
}
