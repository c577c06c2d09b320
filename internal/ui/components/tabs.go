package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/eduval/eduval/internal/ui/theme"
)

// Tab is one entry of a Tabs bar.
type Tab struct {
	Label string
	// Badge is shown after the label, e.g. a score or a busy marker.
	Badge string
}

// Tabs is a horizontal, wrapping tab bar.
type Tabs struct {
	Items    []Tab
	Selected int
}

// Next selects the following tab, wrapping around.
func (t *Tabs) Next() {
	if len(t.Items) > 0 {
		t.Selected = (t.Selected + 1) % len(t.Items)
	}
}

// Prev selects the previous tab, wrapping around.
func (t *Tabs) Prev() {
	if len(t.Items) > 0 {
		t.Selected = (t.Selected - 1 + len(t.Items)) % len(t.Items)
	}
}

// View renders the bar.
func (t Tabs) View(width int) string {
	parts := make([]string, 0, len(t.Items))
	for i, it := range t.Items {
		label := it.Label
		if it.Badge != "" {
			label += " " + it.Badge
		}
		if i == t.Selected {
			parts = append(parts, theme.TabActive.Render(label))
		} else {
			parts = append(parts, theme.TabInactive.Render(label))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if lipgloss.Width(bar) > width {
		bar = strings.Join(parts, "\n")
	}
	return bar
}
