package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/board"
	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/output"
	"github.com/twiced-technology-gmbh/tasklist/internal/todo"
)

var filterCmd = &cobra.Command{
	Use:   "filter [TAG]",
	Short: "Filter the list by tag",
	Long: `Snapshots the items tagged TAG (ignoring case) into the filtered view that
list, show and the interactive list display. The snapshot does not follow later
edits; run filter again to refresh it. Use --reset to clear the filter.

Without arguments, prints the current filter.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().Bool("reset", false, "clear the active filter")
	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	reset, _ := cmd.Flags().GetBool("reset")
	if reset && len(args) > 0 {
		return clierr.New(clierr.InvalidInput, "cannot combine a tag with --reset")
	}

	write := reset || len(args) > 0
	return withSession(write, func(s *session) error {
		switch {
		case reset:
			if err := s.dispatch(todo.ResetFilter{}); err != nil {
				return err
			}
		case len(args) > 0:
			if err := s.dispatch(todo.FilterByTag{Tag: args[0]}); err != nil {
				return err
			}
		}

		ov := board.Summary(s.state())
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, map[string]any{
				"filter_active": ov.FilterActive,
				"filter_tag":    ov.FilterTag,
				"filtered":      ov.Filtered,
			})
		}
		switch {
		case ov.FilterActive:
			output.Messagef(os.Stdout, "Filter: %s (%d items)", ov.FilterTag, ov.Filtered)
		case len(args) > 0:
			output.Messagef(os.Stdout, "No items tagged %q; showing all items", args[0])
		default:
			output.Messagef(os.Stdout, "No filter active")
		}
		return nil
	})
}
