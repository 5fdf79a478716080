package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/tasklist/internal/output"
	"github.com/twiced-technology-gmbh/tasklist/internal/todo"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))

	filterBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("214")).
				Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	itemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true)
	tagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2) //nolint:mnd // dialog padding
)

// View implements tea.Model.
func (l *List) View() string {
	if l.width == 0 {
		return "Loading..."
	}

	switch l.view {
	case viewConfirmDelete:
		return l.viewDeleteConfirm()
	case viewDetail:
		return l.viewDetail()
	case viewInput:
		return l.viewList() + "\n" + l.viewPrompt()
	default:
		return l.viewList()
	}
}

func (l *List) viewList() string {
	parts := []string{l.renderHeader(), ""}

	if len(l.items) == 0 {
		parts = append(parts, dimStyle.Render("  Nothing to do. Press a to add an item."))
	} else {
		end := min(l.scrollOff+l.visibleRows(), len(l.items))
		for i := l.scrollOff; i < end; i++ {
			parts = append(parts, l.renderItem(i, l.items[i]))
		}
	}

	body := strings.Join(parts, "\n")
	if l.height > 0 {
		target := l.height - footerChrome
		if l.err != nil {
			target -= errorChrome
		}
		if n := strings.Count(body, "\n") + 1; n < target {
			body += strings.Repeat("\n", target-n)
		}
	}
	return body + "\n\n" + l.renderStatusBar()
}

func (l *List) renderHeader() string {
	st := l.store.State()
	done := 0
	for _, it := range st.Items {
		if it.Done {
			done++
		}
	}
	header := titleStyle.Render(fmt.Sprintf("Tasks %d/%d done", done, len(st.Items)))
	if st.FilterActive() {
		header += " " + filterBadgeStyle.Render(fmt.Sprintf("filter: %s (%d)",
			strings.ToLower(st.FilteredItems[0].TagTitle()), len(st.FilteredItems)))
	}
	return header
}

func (l *List) renderItem(idx int, it todo.Item) string {
	marker := "  "
	if idx == l.cursor {
		marker = cursorStyle.Render("> ")
	}
	box := "[ ]"
	style := itemStyle
	if it.Done {
		box = "[x]"
		style = doneStyle
	}

	tag := ""
	if it.HasTag() {
		tag = " " + tagStyle.Render("#"+it.Tag.Title)
	}
	const chrome = 8 // marker, checkbox, spacing
	titleWidth := l.width - chrome - lipgloss.Width(tag)
	line := marker + box + " " + style.Render(truncate(it.Title, titleWidth)) + tag

	lines := []string{line}
	if l.opts.DetailLines > 0 {
		preview := detailPreview(it.Details, l.opts.DetailLines)
		for i := range l.opts.DetailLines {
			text := ""
			if i < len(preview) {
				text = truncate(preview[i], l.width-chrome)
			}
			lines = append(lines, "      "+dimStyle.Render(text))
		}
	}
	return strings.Join(lines, "\n")
}

func (l *List) renderStatusBar() string {
	var help []string
	for _, b := range keys.shortHelp() {
		h := b.Help()
		help = append(help, h.Key+":"+h.Desc)
	}
	status := statusBarStyle.Render(truncate(" "+strings.Join(help, " "), l.width))

	if l.err != nil {
		errStr := errorStyle.Render(truncate("Error: "+l.err.Error(), l.width))
		return errStr + "\n" + status
	}
	return status
}

func (l *List) viewPrompt() string {
	labels := map[prompt]string{
		promptAddTitle:    "New item",
		promptAddDetails:  "Details",
		promptEditTitle:   "Title",
		promptEditDetails: "Details",
		promptTag:         "Tag",
		promptFilter:      "Filter tag",
	}
	return titleStyle.Render(labels[l.prompt]+": ") + l.input.View() + "\n" +
		dimStyle.Render("enter:confirm  esc:cancel")
}

func (l *List) viewDeleteConfirm() string {
	content := errorStyle.Render("Delete item?") + "\n\n" +
		"  " + l.deleteTitle + "\n\n" +
		dimStyle.Render("y:yes  n:no")
	return dialogStyle.Render(content)
}

func (l *List) viewDetail() string {
	it, ok := l.selected()
	if !ok {
		return ""
	}
	box := "[ ]"
	if it.Done {
		box = "[x]"
	}
	parts := []string{titleStyle.Render(box + " " + it.Title)}
	if it.HasTag() {
		parts = append(parts, tagStyle.Render("#"+it.Tag.Title))
	}
	parts = append(parts, dimStyle.Render(it.ID), "")

	switch {
	case it.Details == "":
		parts = append(parts, dimStyle.Render("(no details)"))
	case l.opts.Markdown:
		parts = append(parts, output.Markdown(it.Details, max(l.width-4, 20))) //nolint:mnd // margin
	default:
		parts = append(parts, it.Details)
	}
	parts = append(parts, "", dimStyle.Render("any key: back"))
	return strings.Join(parts, "\n")
}

// detailPreview returns up to n non-empty lines of details.
func detailPreview(details string, n int) []string {
	var out []string
	for _, line := range strings.Split(details, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == n {
			break
		}
	}
	return out
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	return output.Truncate(s, maxLen)
}
