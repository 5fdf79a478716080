package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/output"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
	"github.com/twiced-technology-gmbh/tasklist/internal/todo"
)

var deleteCmd = &cobra.Command{
	Use:     "delete REF[,REF,...]",
	Aliases: []string{"rm"},
	Short:   "Delete an item",
	Long: `Removes an item from the list. Prompts for confirmation in interactive mode.
Multiple references can be provided as a comma-separated list (requires --yes).
A filtered view still shows deleted items until the filter is reset or re-run.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	yes, _ := cmd.Flags().GetBool("yes")

	return withSession(true, func(s *session) error {
		items, err := task.ResolveAll(s.state(), args[0])
		if err != nil {
			return err
		}

		del := func(it todo.Item) error {
			return s.dispatch(todo.Delete{ID: it.ID})
		}

		if len(items) > 1 {
			if !yes {
				return clierr.New(clierr.ConfirmationReq, "batch delete requires --yes")
			}
			return runBatch(items, del)
		}

		it := items[0]
		if !yes {
			ok, err := confirm(fmt.Sprintf("Delete %q?", it.Title))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(os.Stderr, "Canceled.")
				return nil
			}
		}

		if err := del(it); err != nil {
			return err
		}

		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, map[string]any{
				"status": "deleted",
				"id":     it.ID,
				"title":  it.Title,
			})
		}
		output.Messagef(os.Stdout, "Deleted: %s", it.Title)
		return nil
	})
}

// confirm asks a yes/no question on stderr. It refuses to guess when stdin
// is not a terminal.
func confirm(question string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) { //nolint:gosec // fd fits in int
		return false, clierr.New(clierr.ConfirmationReq,
			"cannot prompt for confirmation (not a terminal); use --yes")
	}
	fmt.Fprintf(os.Stderr, "%s [y/N] ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes", nil
}
