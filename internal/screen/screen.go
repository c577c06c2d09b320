// Package screen defines the contract between the router and the views
// of the terminal editor.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/eduval/eduval/internal/ui/layout"
)

// Screen is one view on the router stack.
type Screen interface {
	Init() tea.Cmd

	// Update handles a message and returns the updated screen.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area, excluding header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// ScoreProvider is implemented by screens that show a live score in the
// header.
type ScoreProvider interface {
	HeaderScore() string
}

// Capturing is implemented by screens that are editing text. While it
// reports true the app leaves esc and q to the screen.
type Capturing interface {
	Capturing() bool
}

// Background marks messages that report finished background work. The
// app delivers them to every screen on the stack, not just the top one.
type Background interface {
	Background()
}
