package components

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/eduval/eduval/internal/ui/theme"
)

// ToastDuration is how long a notification stays visible.
const ToastDuration = 3 * time.Second

// ToastExpiredMsg hides the toast with the given sequence number.
type ToastExpiredMsg struct {
	Seq int
}

// Toast is a transient notification line. A newer toast replaces the
// current one and restarts the timer.
type Toast struct {
	Text    string
	IsError bool
	seq     int
}

// Show sets the text and returns the command that expires it.
func (t *Toast) Show(text string, isError bool) tea.Cmd {
	t.seq++
	t.Text = text
	t.IsError = isError
	seq := t.seq
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{Seq: seq}
	})
}

// Expire clears the toast if msg belongs to the current one.
func (t *Toast) Expire(msg ToastExpiredMsg) {
	if msg.Seq == t.seq {
		t.Text = ""
	}
}

// Visible reports whether there is something to show.
func (t Toast) Visible() bool {
	return t.Text != ""
}

// View renders the toast, or "" when hidden.
func (t Toast) View() string {
	if t.Text == "" {
		return ""
	}
	if t.IsError {
		return theme.ToastError.Render("✗ " + t.Text)
	}
	return theme.ToastSuccess.Render("✓ " + t.Text)
}

// NotifyMsg asks the app to show a toast.
type NotifyMsg struct {
	Text    string
	IsError bool
}

// Notify returns a command emitting NotifyMsg.
func Notify(text string, isError bool) tea.Cmd {
	return func() tea.Msg { return NotifyMsg{Text: text, IsError: isError} }
}
