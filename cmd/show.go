package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/output"
)

var showCmd = &cobra.Command{
	Use:   "show REF",
	Short: "Show item details",
	Long: `Displays a single item including its details, rendered as markdown unless
tui.markdown is off. REF is a position (3 or #3), an ID, or an ID prefix.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	return withSession(false, func(s *session) error {
		it, err := s.resolve(args[0])
		if err != nil {
			return err
		}
		n := s.numbered(it)

		switch outputFormat() {
		case output.FormatJSON:
			return output.JSON(os.Stdout, n)
		case output.FormatCompact:
			output.ItemDetailCompact(os.Stdout, n)
		default:
			output.ItemDetail(os.Stdout, n, s.cfg.TUI.Markdown)
		}
		return nil
	})
}
