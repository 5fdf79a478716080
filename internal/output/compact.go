package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/twiced-technology-gmbh/tasklist/internal/activity"
	"github.com/twiced-technology-gmbh/tasklist/internal/board"
)

// ItemCompact renders items in one-line-per-record compact format.
func ItemCompact(w io.Writer, items []board.Numbered) {
	if len(items) == 0 {
		fmt.Fprintln(os.Stderr, "No items found.")
		return
	}
	for _, n := range items {
		fmt.Fprintln(w, formatItemLine(n))
	}
}

// ItemDetailCompact renders a single item with its details indented below.
func ItemDetailCompact(w io.Writer, n board.Numbered) {
	fmt.Fprintln(w, formatItemLine(n))
	if n.Details != "" {
		for _, line := range strings.Split(n.Details, "\n") {
			fmt.Fprintln(w, "  "+line)
		}
	}
}

// OverviewCompact renders a summary in compact format.
func OverviewCompact(w io.Writer, ov board.Overview) {
	fmt.Fprintf(w, "%d items (%d open, %d done)\n", ov.Total, ov.Open, ov.Done)
	if ov.FilterActive {
		fmt.Fprintf(w, "  filter: %s (%d items)\n", ov.FilterTag, ov.Filtered)
	}
	if len(ov.Tags) > 0 {
		parts := make([]string, 0, len(ov.Tags))
		for _, ts := range ov.Tags {
			parts = append(parts, ts.Tag+"="+strconv.Itoa(ts.Open)+"/"+strconv.Itoa(ts.Total))
		}
		fmt.Fprintln(w, "Tags: "+strings.Join(parts, " "))
	}
}

// GroupedCompact renders groups as a header line followed by item lines.
func GroupedCompact(w io.Writer, groups []board.Group, number func(board.Group) []board.Numbered) {
	for _, g := range groups {
		fmt.Fprintf(w, "%s (%d)\n", g.Key, len(g.Items))
		for _, n := range number(g) {
			fmt.Fprintln(w, "  "+formatItemLine(n))
		}
	}
}

// ActivityCompact renders activity entries one per line.
func ActivityCompact(w io.Writer, entries []activity.Entry) {
	for _, e := range entries {
		line := e.Timestamp.Format("2006-01-02T15:04:05") + " " + e.Action
		if e.TodoID != "" {
			line += " " + ShortID(e.TodoID)
		}
		if e.Detail != "" {
			line += " " + e.Detail
		}
		fmt.Fprintln(w, line)
	}
}

// formatItemLine builds the one-line representation of an item.
func formatItemLine(n board.Numbered) string {
	line := posLabel(n.Pos) + " " + checkbox(n.Done) + " " + n.Title
	if n.HasTag() {
		line += " (" + n.Tag.Title + ")"
	}
	return line + " id:" + ShortID(n.ID)
}
