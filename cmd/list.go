package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/board"
	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/output"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
	"github.com/twiced-technology-gmbh/tasklist/internal/todo"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List items",
	Long: `Lists the visible items: the filtered snapshot while a tag filter is active,
otherwise every item. Open items come first.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().String("status", board.StatusAll, "filter by status ("+strings.Join(board.ValidStatuses(), ", ")+")")
	listCmd.Flags().String("tag", "", "filter by tag (case-insensitive)")
	listCmd.Flags().StringP("search", "s", "", "search items by title, details, or tag (case-insensitive)")
	listCmd.Flags().String("sort", board.SortDefault, "sort field ("+strings.Join(board.ValidSortFields(), ", ")+")")
	listCmd.Flags().BoolP("reverse", "r", false, "reverse sort order")
	listCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	listCmd.Flags().String("group-by", "", "group results by field ("+strings.Join(board.ValidGroupByFields(), ", ")+")")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	status, _ := cmd.Flags().GetString("status")
	tag, _ := cmd.Flags().GetString("tag")
	search, _ := cmd.Flags().GetString("search")
	sortBy, _ := cmd.Flags().GetString("sort")
	reverse, _ := cmd.Flags().GetBool("reverse")
	limit, _ := cmd.Flags().GetInt("limit")
	groupBy, _ := cmd.Flags().GetString("group-by")

	if err := task.ValidateOneOf(clierr.InvalidStatus, "status", status, board.ValidStatuses()); err != nil {
		return err
	}
	if err := task.ValidateOneOf(clierr.InvalidSort, "sort", sortBy, board.ValidSortFields()); err != nil {
		return err
	}
	if groupBy != "" {
		if err := task.ValidateOneOf(clierr.InvalidGroupBy, "group-by", groupBy, board.ValidGroupByFields()); err != nil {
			return err
		}
	}
	if limit < 0 {
		return clierr.Newf(clierr.InvalidInput, "--limit must not be negative, got %d", limit)
	}

	opts := board.ListOptions{
		Filter:  board.FilterOptions{Status: status, Tag: tag, Search: search},
		SortBy:  sortBy,
		Reverse: reverse,
		Limit:   limit,
	}

	return withSession(false, func(s *session) error {
		st := s.state()
		items := board.List(st, opts)
		if groupBy != "" {
			return outputGroupedList(st, board.GroupBy(items, groupBy))
		}
		return outputItemList(board.Number(st, items))
	})
}

func outputGroupedList(st todo.State, groups []board.Group) error {
	number := func(g board.Group) []board.Numbered { return board.Number(st, g.Items) }

	switch outputFormat() {
	case output.FormatJSON:
		type jsonGroup struct {
			Key   string           `json:"key"`
			Items []board.Numbered `json:"items"`
		}
		out := make([]jsonGroup, len(groups))
		for i, g := range groups {
			out[i] = jsonGroup{Key: g.Key, Items: number(g)}
		}
		return output.JSON(os.Stdout, out)
	case output.FormatCompact:
		output.GroupedCompact(os.Stdout, groups, number)
	default:
		output.GroupedTable(os.Stdout, groups, number)
	}
	return nil
}

func outputItemList(items []board.Numbered) error {
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, items)
	case output.FormatCompact:
		output.ItemCompact(os.Stdout, items)
	default:
		output.ItemTable(os.Stdout, items)
	}
	return nil
}
