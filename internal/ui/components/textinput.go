package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/eduval/eduval/internal/ui/theme"
)

// Field is a labeled single-line input.
type Field struct {
	Label       string
	Model       textinput.Model
	NumericOnly bool
}

// NewField creates a field. Suggestions, when given, are cycled with
// up/down, accepted with ctrl+y and hinted in the placeholder. Tab is left
// to the enclosing form.
func NewField(label, value string, numericOnly bool, suggestions []string) Field {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 500
	ti.SetWidth(60)
	ti.SetValue(value)
	ti.CursorEnd()
	if len(suggestions) > 0 {
		ti.ShowSuggestions = true
		ti.KeyMap.AcceptSuggestion = key.NewBinding(key.WithKeys("ctrl+y"))
		ti.SetSuggestions(suggestions)
		ti.Placeholder = strings.Join(suggestions[:min(3, len(suggestions))], ", ") + "…"
	}
	return Field{Label: label, Model: ti, NumericOnly: numericOnly}
}

// Focus focuses the field.
func (f *Field) Focus() tea.Cmd {
	return f.Model.Focus()
}

// Blur removes focus.
func (f *Field) Blur() {
	f.Model.Blur()
}

// Update handles key input. Numeric fields accept digits, one dot and a
// leading minus so that validation can report negatives.
func (f Field) Update(msg tea.Msg) (Field, tea.Cmd) {
	if f.NumericOnly {
		if kmsg, ok := msg.(tea.KeyPressMsg); ok {
			key := kmsg.String()
			if len(key) == 1 && !strings.ContainsAny(key, "0123456789.-") {
				return f, nil
			}
		}
	}

	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

// View renders label and input.
func (f Field) View() string {
	label := theme.Label.Render(f.Label + ":")
	if f.Model.Focused() {
		label = theme.Selected.Render(f.Label + ":")
	}
	return label + " " + f.Model.View()
}

// Value returns the trimmed input.
func (f Field) Value() string {
	return strings.TrimSpace(f.Model.Value())
}
