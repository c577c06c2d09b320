// Package generate is the form that collects level, subject and topic
// before an AI generation.
package generate

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	gen "github.com/eduval/eduval/internal/generate"
	"github.com/eduval/eduval/internal/i18n"
	"github.com/eduval/eduval/internal/instrument"
	"github.com/eduval/eduval/internal/router"
	"github.com/eduval/eduval/internal/screen"
	"github.com/eduval/eduval/internal/ui/components"
	"github.com/eduval/eduval/internal/ui/layout"
	"github.com/eduval/eduval/internal/ui/theme"
	"github.com/eduval/eduval/internal/workbench"
)

// SubmitMsg is handed back to the screen below when the form is sent.
type SubmitMsg struct {
	Kind   instrument.Kind
	Params gen.Params
}

const (
	fieldLevel = iota
	fieldSubject
	fieldTopic
	focusButton
)

// Form is the generation form for one kind.
type Form struct {
	kind    instrument.Kind
	cat     *i18n.Catalog
	fields  []components.Field
	focus   int
	warning string
}

var (
	_ screen.Screen          = (*Form)(nil)
	_ screen.KeyHintProvider = (*Form)(nil)
	_ screen.Capturing       = (*Form)(nil)
)

// New creates the form prefilled with prev.
func New(kind instrument.Kind, cat *i18n.Catalog, prev gen.Params) *Form {
	f := &Form{
		kind: kind,
		cat:  cat,
		fields: []components.Field{
			components.NewField(cat.T("ui.level"), prev.Level, false, cat.Levels()),
			components.NewField(cat.T("ui.subject"), prev.Subject, false, cat.Subjects()),
			components.NewField(cat.T("ui.topic"), prev.Topic, false, nil),
		},
	}
	return f
}

func (f *Form) Init() tea.Cmd {
	return f.fields[0].Focus()
}

func (f *Form) Title() string {
	return f.cat.T("ui.generate_title") + " · " + f.cat.KindLabel(f.kind)
}

// Capturing is always true: every key belongs to the form.
func (f *Form) Capturing() bool { return true }

func (f *Form) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: f.cat.T("hint.next")},
		{Key: "Enter", Description: f.cat.T("hint.confirm")},
		{Key: "Ctrl+Y", Description: f.cat.T("hint.accept-suggestion")},
		{Key: "Esc", Description: f.cat.T("hint.cancel")},
	}
}

// Params returns the current field values.
func (f *Form) Params() gen.Params {
	return gen.Params{
		Level:   f.fields[fieldLevel].Value(),
		Subject: f.fields[fieldSubject].Value(),
		Topic:   f.fields[fieldTopic].Value(),
	}
}

func (f *Form) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if f.focus < focusButton {
			var cmd tea.Cmd
			f.fields[f.focus], cmd = f.fields[f.focus].Update(msg)
			return f, cmd
		}
		return f, nil
	}

	switch kmsg.String() {
	case "esc":
		return f, router.Pop(nil)
	case "tab":
		return f, f.move(1)
	case "shift+tab":
		return f, f.move(-1)
	case "enter":
		if f.focus < focusButton {
			return f, f.move(1)
		}
		return f, f.submit()
	}

	if f.focus < focusButton {
		var cmd tea.Cmd
		f.fields[f.focus], cmd = f.fields[f.focus].Update(msg)
		return f, cmd
	}
	return f, nil
}

func (f *Form) move(delta int) tea.Cmd {
	if f.focus < focusButton {
		f.fields[f.focus].Blur()
	}
	f.focus = (f.focus + delta + focusButton + 1) % (focusButton + 1)
	if f.focus < focusButton {
		return f.fields[f.focus].Focus()
	}
	return nil
}

func (f *Form) submit() tea.Cmd {
	p := f.Params()
	if p.Level == "" || p.Subject == "" || p.Topic == "" {
		f.warning = f.cat.T(workbench.NotifyMissingParams)
		return nil
	}
	return router.Pop(SubmitMsg{Kind: f.kind, Params: p})
}

func (f *Form) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(f.Title()) + "\n\n")
	for _, field := range f.fields {
		b.WriteString(field.View() + "\n\n")
	}
	b.WriteString(components.Button{
		Label:   f.cat.T("ui.generate_title"),
		Focused: f.focus == focusButton,
		Enabled: true,
	}.View())
	if f.warning != "" {
		b.WriteString("\n\n" + theme.ToastError.Render(f.warning))
	}
	return theme.Card.Width(min(width-2, 90)).Render(b.String())
}
