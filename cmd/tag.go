package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/output"
	"github.com/twiced-technology-gmbh/tasklist/internal/todo"
)

var tagCmd = &cobra.Command{
	Use:   "tag REF TAG",
	Short: "Set an item's tag",
	Long: `Sets the tag of an item. An item has at most one tag; tagging an item that
already has one renames it and keeps its tag ID.`,
	Args: cobra.ExactArgs(2), //nolint:mnd // ref and tag
	RunE: runTag,
}

func init() {
	rootCmd.AddCommand(tagCmd)
}

func runTag(_ *cobra.Command, args []string) error {
	tag := strings.TrimSpace(args[1])
	if tag == "" {
		return clierr.New(clierr.InvalidInput, "tag must not be blank")
	}

	return withSession(true, func(s *session) error {
		it, err := s.resolve(args[0])
		if err != nil {
			return err
		}
		if err := s.dispatch(todo.AddTag{TodoID: it.ID, Tag: tag}); err != nil {
			return err
		}
		updated, err := s.current(it.ID)
		if err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, s.numbered(updated))
		}
		output.Messagef(os.Stdout, "Tagged %q: %s", updated.Tag.Title, updated.Title)
		return nil
	})
}
