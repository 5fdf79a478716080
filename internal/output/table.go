package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/twiced-technology-gmbh/tasklist/internal/activity"
	"github.com/twiced-technology-gmbh/tasklist/internal/board"
)

const (
	shortIDLen    = 8
	maxTitleWidth = 50
	maxTagWidth   = 24
	detailWidth   = 80
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	openStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	tagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	filterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)

	markdownStyle = "auto"
)

// DisableColor strips all styling from table output.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	doneStyle = lipgloss.NewStyle()
	openStyle = lipgloss.NewStyle()
	tagStyle = lipgloss.NewStyle()
	filterStyle = lipgloss.NewStyle()
	markdownStyle = "notty"
}

// ItemTable renders items as a formatted table.
func ItemTable(w io.Writer, items []board.Numbered) {
	if len(items) == 0 {
		fmt.Fprintln(os.Stderr, "No items found.")
		return
	}

	const pad = 2
	posW, titleW, tagW := 3, 5, 3
	for _, n := range items {
		posW = max(posW, len(posLabel(n.Pos))+pad)
		titleW = max(titleW, min(lipgloss.Width(n.Title)+pad, maxTitleWidth))
		tagW = max(tagW, min(lipgloss.Width(n.TagTitle())+pad, maxTagWidth))
	}
	idW := shortIDLen + pad

	header := fmt.Sprintf("%-*s %-*s %-4s %-*s %s",
		posW, "#", idW, "ID", "DONE", titleW, "TITLE", "TAG")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for _, n := range items {
		tag := dimStyle.Render("--")
		if n.HasTag() {
			tag = tagStyle.Render(Truncate(n.Tag.Title, maxTagWidth-pad))
		}
		row := fmt.Sprintf("%s %s %s %s %s",
			padRight(posLabel(n.Pos), posW),
			padRight(dimStyle.Render(ShortID(n.ID)), idW),
			padRight(styledCheckbox(n.Done), 4), //nolint:mnd // DONE column width
			padRight(Truncate(n.Title, maxTitleWidth-pad), titleW),
			tag)
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// ItemDetail renders a single item with full detail. Details are rendered
// as markdown when markdown is set.
func ItemDetail(w io.Writer, n board.Numbered, markdown bool) {
	titleLine := fmt.Sprintf("%s %s", posLabel(n.Pos), n.Title)
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", lipgloss.Width(titleLine)))

	printField(w, "ID", n.ID)
	printField(w, "Done", styledCheckbox(n.Done))
	if n.HasTag() {
		printField(w, "Tag", tagStyle.Render(n.Tag.Title))
	} else {
		printField(w, "Tag", dimStyle.Render("--"))
	}

	if n.Details != "" {
		fmt.Fprintln(w)
		if markdown {
			fmt.Fprintln(w, Markdown(n.Details, detailWidth))
		} else {
			fmt.Fprintln(w, n.Details)
		}
	}
}

// Markdown renders md for a terminal of the given width. The source is
// returned unchanged if rendering fails.
func Markdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(markdownStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

// OverviewTable renders a summary as a small dashboard.
func OverviewTable(w io.Writer, ov board.Overview) {
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render("Task list"))
	fmt.Fprintf(w, "Total: %d items (%s open, %s done)\n",
		ov.Total, openStyle.Render(fmt.Sprint(ov.Open)), doneStyle.Render(fmt.Sprint(ov.Done)))
	if ov.FilterActive {
		fmt.Fprintf(w, "Filter: %s (%d items)\n", filterStyle.Render(ov.FilterTag), ov.Filtered)
	}
	if len(ov.Tags) == 0 {
		return
	}

	fmt.Fprintln(w)
	const tagColW = 20
	header := fmt.Sprintf("%-*s %6s %6s %6s", tagColW, "TAG", "OPEN", "DONE", "TOTAL")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, ts := range ov.Tags {
		label := tagStyle.Render(Truncate(ts.Tag, tagColW))
		if ts.Tag == board.Untagged {
			label = dimStyle.Render(ts.Tag)
		}
		fmt.Fprintf(w, "%s %6d %6d %6d\n", padRight(label, tagColW), ts.Open, ts.Done, ts.Total)
	}
}

// GroupedTable renders one item table per group.
func GroupedTable(w io.Writer, groups []board.Group, number func(board.Group) []board.Numbered) {
	if len(groups) == 0 {
		fmt.Fprintln(os.Stderr, "No items found.")
		return
	}
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%s (%d)", g.Key, len(g.Items))))
		ItemTable(w, number(g))
	}
}

// ActivityTable renders activity entries as a table.
func ActivityTable(w io.Writer, entries []activity.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No activity recorded.")
		return
	}
	header := fmt.Sprintf("%-19s %-12s %-*s %s", "TIME", "ACTION", shortIDLen, "ITEM", "DETAIL")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, e := range entries {
		id := dimStyle.Render("--")
		if e.TodoID != "" {
			id = ShortID(e.TodoID)
		}
		fmt.Fprintf(w, "%s %-12s %s %s\n",
			dimStyle.Render(e.Timestamp.Local().Format("2006-01-02 15:04:05")),
			e.Action, padRight(id, shortIDLen), e.Detail)
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

// ShortID abbreviates an item ID for display.
func ShortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// Truncate shortens s to at most width display cells, ending in "...".
func Truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	const ellipsis = "..."
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+len(ellipsis) > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + ellipsis
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-8s %s\n", label+":", value)
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func posLabel(pos int) string {
	if pos == 0 {
		return "-"
	}
	return fmt.Sprintf("#%d", pos)
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func styledCheckbox(done bool) string {
	if done {
		return doneStyle.Render(checkbox(done))
	}
	return openStyle.Render(checkbox(done))
}
