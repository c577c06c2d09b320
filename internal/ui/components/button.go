package components

import (
	"github.com/eduval/eduval/internal/ui/theme"
)

// Button is a focusable action label.
type Button struct {
	Label   string
	Focused bool
	Enabled bool
}

// View renders the button.
func (b Button) View() string {
	label := "▸ " + b.Label
	switch {
	case !b.Enabled:
		return theme.ButtonInactive.Foreground(theme.TextDim).Render(label)
	case b.Focused:
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
