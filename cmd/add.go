package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/output"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
	"github.com/twiced-technology-gmbh/tasklist/internal/todo"
)

var addCmd = &cobra.Command{
	Use:     "add [TITLE]",
	Aliases: []string{"create", "new"},
	Short:   "Add an item",
	Long: `Adds a new item to the top of the list.

Title can be provided as a positional argument or via --title flag.
Details can be provided via --details (alias --body) and are shown as markdown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().String("title", "", "item title (alternative to positional argument)")
	addCmd.Flags().String("details", "", "item details (markdown)")
	addCmd.Flags().String("tag", "", "tag the new item")
	addCmd.Flags().Bool("done", false, "add the item already completed")
	addCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "body", "description":
			name = "details"
		}
		return pflag.NormalizedName(name)
	})
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	title, err := resolveAddTitle(cmd, args)
	if err != nil {
		return err
	}
	details, _ := cmd.Flags().GetString("details")
	done, _ := cmd.Flags().GetBool("done")
	tag, _ := cmd.Flags().GetString("tag")

	return withSession(true, func(s *session) error {
		if err := s.dispatch(todo.Add{Title: title, Details: details, Done: done}); err != nil {
			return err
		}
		id := s.state().Items[0].ID
		if tag != "" {
			if err := s.dispatch(todo.AddTag{TodoID: id, Tag: tag}); err != nil {
				return err
			}
		}
		it, err := s.current(id)
		if err != nil {
			return err
		}

		n := s.numbered(it)
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, n)
		}
		output.Messagef(os.Stdout, "Added #%d: %s", n.Pos, n.Title)
		output.Messagef(os.Stdout, "  ID: %s", n.ID)
		if n.HasTag() {
			output.Messagef(os.Stdout, "  Tag: %s", n.Tag.Title)
		}
		return nil
	})
}

// resolveAddTitle returns the title from either the positional arg or --title flag.
func resolveAddTitle(cmd *cobra.Command, args []string) (string, error) {
	flagTitle, _ := cmd.Flags().GetString("title")
	hasPositional := len(args) > 0
	hasFlag := flagTitle != ""

	switch {
	case hasPositional && hasFlag:
		return "", clierr.New(clierr.InvalidInput,
			"title provided both as argument and --title flag; use one or the other")
	case hasPositional:
		return args[0], task.ValidateTitle(args[0])
	case hasFlag:
		return flagTitle, task.ValidateTitle(flagTitle)
	default:
		return "", clierr.New(clierr.InvalidInput, "title is required: provide it as an argument or with --title")
	}
}
