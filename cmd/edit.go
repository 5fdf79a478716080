package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/output"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
	"github.com/twiced-technology-gmbh/tasklist/internal/todo"
)

var editCmd = &cobra.Command{
	Use:   "edit REF",
	Short: "Edit an item",
	Long: `Changes the title, details or done flag of an item. Only specified fields
are changed; the tag is kept (use "tasklist tag" to change it).`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().String("details", "", "new details (replaces existing details)")
	editCmd.Flags().StringP("append-details", "a", "", "append a paragraph to the details")
	editCmd.Flags().Bool("done", false, "mark the item done")
	editCmd.Flags().Bool("open", false, "mark the item open")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	return withSession(true, func(s *session) error {
		it, err := s.resolve(args[0])
		if err != nil {
			return err
		}

		edit, err := applyEditFlags(cmd, it)
		if err != nil {
			return err
		}
		if err := s.dispatch(edit); err != nil {
			return err
		}

		updated, err := s.current(it.ID)
		if err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, s.numbered(updated))
		}
		output.Messagef(os.Stdout, "Updated %s: %s", output.ShortID(updated.ID), updated.Title)
		return nil
	})
}

// applyEditFlags builds the edit action for it from the command flags.
// Returns NO_CHANGES when no flag was given.
func applyEditFlags(cmd *cobra.Command, it todo.Item) (todo.Edit, error) {
	edit := todo.Edit{ID: it.ID, Title: it.Title, Details: it.Details, Done: it.Done}
	changed := false

	if cmd.Flags().Changed("title") {
		v, _ := cmd.Flags().GetString("title")
		if err := task.ValidateTitle(v); err != nil {
			return edit, err
		}
		edit.Title = v
		changed = true
	}

	detailsSet := cmd.Flags().Changed("details")
	appendSet := cmd.Flags().Changed("append-details")
	if detailsSet && appendSet {
		return edit, clierr.New(clierr.InvalidInput, "cannot use --details and --append-details together")
	}
	if detailsSet {
		edit.Details, _ = cmd.Flags().GetString("details")
		changed = true
	}
	if appendSet {
		v, _ := cmd.Flags().GetString("append-details")
		edit.Details = appendDetails(edit.Details, v)
		changed = true
	}

	done, _ := cmd.Flags().GetBool("done")
	open, _ := cmd.Flags().GetBool("open")
	if done && open {
		return edit, clierr.New(clierr.InvalidInput, "cannot use --done and --open together")
	}
	if done || open {
		edit.Done = done
		changed = true
	}

	if !changed {
		return edit, clierr.New(clierr.NoChanges, "no changes specified")
	}
	return edit, nil
}

// appendDetails adds text to existing details as a new paragraph.
func appendDetails(existing, text string) string {
	if existing == "" {
		return text
	}
	return strings.TrimRight(existing, "\n") + "\n\n" + text
}
