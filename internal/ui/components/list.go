package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/eduval/eduval/internal/ui/theme"
)

// List is a vertical selection over pre-rendered rows. Rows may span
// several lines.
type List struct {
	Rows     []string
	Selected int
}

// Update handles up/down navigation.
func (l List) Update(msg tea.Msg) (List, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return l, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if l.Selected > 0 {
			l.Selected--
		}
	case "down", "j":
		if l.Selected < len(l.Rows)-1 {
			l.Selected++
		}
	}
	return l, nil
}

// Clamp keeps the selection inside the rows after they change.
func (l *List) Clamp() {
	if l.Selected >= len(l.Rows) {
		l.Selected = len(l.Rows) - 1
	}
	if l.Selected < 0 {
		l.Selected = 0
	}
}

// View renders the rows that fit in height, keeping the selection visible.
func (l List) View(width, height int) string {
	if len(l.Rows) == 0 || height <= 0 {
		return ""
	}

	rendered := make([]string, len(l.Rows))
	for i, row := range l.Rows {
		style := theme.Unselected.Width(width - 4)
		marker := "  "
		if i == l.Selected {
			style = theme.Selected.Width(width - 4)
			marker = "▸ "
		}
		rendered[i] = indent(marker, style.Render(row))
	}

	// Scroll so the selected row ends inside the window.
	start := 0
	for {
		used := 0
		for i := start; i <= l.Selected; i++ {
			used += lipgloss.Height(rendered[i])
		}
		if used <= height || start == l.Selected {
			break
		}
		start++
	}

	var b strings.Builder
	used := 0
	for i := start; i < len(rendered); i++ {
		h := lipgloss.Height(rendered[i])
		if used+h > height && i > l.Selected {
			break
		}
		if i > start {
			b.WriteString("\n")
		}
		b.WriteString(rendered[i])
		used += h
	}
	return b.String()
}

func indent(marker, block string) string {
	lines := strings.Split(block, "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = marker + lines[i]
		} else {
			lines[i] = "  " + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
