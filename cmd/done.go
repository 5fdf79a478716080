package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/output"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
	"github.com/twiced-technology-gmbh/tasklist/internal/todo"
)

var doneCmd = &cobra.Command{
	Use:     "done REF[,REF,...]",
	Aliases: []string{"toggle"},
	Short:   "Toggle items between open and done",
	Long: `Flips the done flag of each referenced item. Multiple references can be
given as a comma-separated list; they are all resolved before any is toggled.`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(_ *cobra.Command, args []string) error {
	return withSession(true, func(s *session) error {
		items, err := task.ResolveAll(s.state(), args[0])
		if err != nil {
			return err
		}

		toggle := func(it todo.Item) error {
			return s.dispatch(todo.ToggleDone{ID: it.ID})
		}

		if len(items) > 1 {
			return runBatch(items, toggle)
		}

		if err := toggle(items[0]); err != nil {
			return err
		}
		it, err := s.current(items[0].ID)
		if err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, s.numbered(it))
		}
		verb := "Reopened"
		if it.Done {
			verb = "Completed"
		}
		output.Messagef(os.Stdout, "%s: %s", verb, it.Title)
		return nil
	})
}
