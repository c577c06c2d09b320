// Package app is the root Bubble Tea model of the terminal editor.
package app

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/eduval/eduval/internal/i18n"
	"github.com/eduval/eduval/internal/router"
	"github.com/eduval/eduval/internal/screen"
	"github.com/eduval/eduval/internal/screens/editor"
	"github.com/eduval/eduval/internal/ui/components"
	"github.com/eduval/eduval/internal/ui/layout"
	"github.com/eduval/eduval/internal/workbench"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	cat    *i18n.Catalog
	toast  *components.Toast
	width  int
	height int
}

func newAppModel(ctx context.Context, wb *workbench.Workbench, cat *i18n.Catalog) AppModel {
	return AppModel{
		router: router.New(editor.New(ctx, wb, cat)),
		cat:    cat,
		toast:  &components.Toast{},
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.Capturing)
	return ok && c.Capturing()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case components.NotifyMsg:
		return m, m.toast.Show(msg.Text, msg.IsError)

	case components.ToastExpiredMsg:
		m.toast.Expire(msg)
		return m, nil

	case screen.Background:
		return m, m.router.Broadcast(msg)

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", "q":
			if m.capturing() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop(nil)
			}
			if msg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil
		}
	}

	return m, m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the whole frame for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	score := ""
	if sp, ok := active.(screen.ScoreProvider); ok {
		score = sp.HeaderScore()
	}
	header := layout.RenderHeader(active.Title(), m.cat.T("ui.score"), score, m.width)

	hints := []layout.KeyHint{{Key: "Esc", Description: m.cat.T("hint.back")}, {Key: "Ctrl+C", Description: m.cat.T("hint.quit")}}
	if kp, ok := active.(screen.KeyHintProvider); ok {
		hints = kp.KeyHints()
	}
	footer := layout.RenderFooter(hints, m.width)

	overlay := ""
	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if m.toast.Visible() {
		overlay = m.toast.View()
		contentHeight -= lipgloss.Height(overlay)
	}
	contentHeight = max(0, contentHeight)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, overlay, footer, m.width, m.height)
}

// Run starts the terminal editor and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, wb *workbench.Workbench, cat *i18n.Catalog, log *zap.Logger) error {
	log.Info("starting terminal editor", zap.String("lang", cat.Lang()))
	p := tea.NewProgram(newAppModel(ctx, wb, cat), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		log.Error("terminal editor stopped", zap.Error(err))
		return err
	}
	return nil
}
