// Package editor is the main screen of the terminal editor: one tab per
// instrument kind, the element list of the active instrument and its
// live score.
package editor

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/eduval/eduval/internal/generate"
	"github.com/eduval/eduval/internal/i18n"
	"github.com/eduval/eduval/internal/instrument"
	"github.com/eduval/eduval/internal/router"
	"github.com/eduval/eduval/internal/screen"
	genscreen "github.com/eduval/eduval/internal/screens/generate"
	"github.com/eduval/eduval/internal/ui/components"
	"github.com/eduval/eduval/internal/ui/layout"
	"github.com/eduval/eduval/internal/ui/theme"
	"github.com/eduval/eduval/internal/workbench"
)

// editState is an open inline edit of one field.
type editState struct {
	kind  instrument.Kind
	id    string // empty for header fields
	field string
	input components.Field
}

// Editor is the workbench screen.
type Editor struct {
	ctx context.Context
	wb  *workbench.Workbench
	cat *i18n.Catalog

	tabs     components.Tabs
	selected map[instrument.Kind]int
	params   map[instrument.Kind]generate.Params
	pending  map[instrument.Kind]bool
	edit     *editState
}

var (
	_ screen.Screen          = (*Editor)(nil)
	_ screen.KeyHintProvider = (*Editor)(nil)
	_ screen.ScoreProvider   = (*Editor)(nil)
	_ screen.Capturing       = (*Editor)(nil)
)

// New creates the editor. ctx bounds background generations.
func New(ctx context.Context, wb *workbench.Workbench, cat *i18n.Catalog) *Editor {
	e := &Editor{
		ctx:      ctx,
		wb:       wb,
		cat:      cat,
		selected: make(map[instrument.Kind]int),
		params:   make(map[instrument.Kind]generate.Params),
		pending:  make(map[instrument.Kind]bool),
	}
	for _, k := range instrument.Kinds {
		e.tabs.Items = append(e.tabs.Items, components.Tab{Label: cat.KindLabel(k)})
	}
	return e
}

func (e *Editor) Init() tea.Cmd { return nil }

func (e *Editor) Title() string {
	return e.cat.KindLabel(e.kind())
}

// Capturing reports whether an inline edit is open.
func (e *Editor) Capturing() bool { return e.edit != nil }

// HeaderScore returns the score of the active instrument.
func (e *Editor) HeaderScore() string {
	s, err := e.wb.Score(e.kind())
	if err != nil {
		return instrument.Sentinel
	}
	return s.String()
}

func (e *Editor) kind() instrument.Kind {
	return instrument.Kinds[e.tabs.Selected]
}

func (e *Editor) busy(k instrument.Kind) bool {
	return e.pending[k] || e.wb.InFlight(k)
}

// selectedID returns the ID of the selected element of the active kind.
func (e *Editor) selectedID() (instrument.Instrument, string, bool) {
	inst, ok := e.wb.Get(e.kind())
	if !ok {
		return nil, "", false
	}
	ids := inst.IDs()
	if len(ids) == 0 {
		return inst, "", false
	}
	i := min(e.selected[e.kind()], len(ids)-1)
	return inst, ids[i], true
}

// noSelection reports why there is no element to act on: an empty slot
// is an error, an instrument without elements is not.
func (e *Editor) noSelection(inst instrument.Instrument) tea.Cmd {
	if inst == nil {
		return e.notify(workbench.ErrSlotEmpty)
	}
	return nil
}

func (e *Editor) notify(err error) tea.Cmd {
	n := workbench.NotificationFor(err)
	return components.Notify(e.cat.T(n.MessageID), n.Level == workbench.LevelError)
}

func (e *Editor) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case genscreen.SubmitMsg:
		return e, e.startGeneration(msg.Kind, msg.Params)
	case generatedMsg:
		delete(e.pending, msg.Kind)
		if msg.Err == nil {
			e.selected[msg.Kind] = 0
		}
		return e, e.notify(msg.Err)
	case tea.KeyPressMsg:
		if e.edit != nil {
			return e, e.updateEdit(msg)
		}
		return e, e.handleKey(msg)
	}
	if e.edit != nil {
		var cmd tea.Cmd
		e.edit.input, cmd = e.edit.input.Update(msg)
		return e, cmd
	}
	return e, nil
}

func (e *Editor) startGeneration(kind instrument.Kind, p generate.Params) tea.Cmd {
	if e.busy(kind) {
		return e.notify(workbench.ErrGenerationInFlight)
	}
	e.params[kind] = p
	e.pending[kind] = true
	ctx, wb := e.ctx, e.wb
	return func() tea.Msg {
		_, err := wb.Generate(ctx, kind, p)
		return generatedMsg{Kind: kind, Err: err}
	}
}

func (e *Editor) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	kind := e.kind()

	switch key {
	case "tab", "right", "l":
		e.tabs.Next()
		return nil
	case "shift+tab", "left", "h":
		e.tabs.Prev()
		return nil
	case "up", "k":
		if e.selected[kind] > 0 {
			e.selected[kind]--
		}
		return nil
	case "down", "j":
		if inst, ok := e.wb.Get(kind); ok && e.selected[kind] < len(inst.IDs())-1 {
			e.selected[kind]++
		}
		return nil
	case "m":
		if _, err := e.wb.CreateManual(kind); err != nil {
			return e.notify(err)
		}
		e.selected[kind] = 0
		return components.Notify(e.cat.T(workbench.NotifyCreated), false)
	case "g":
		if e.busy(kind) {
			return e.notify(workbench.ErrGenerationInFlight)
		}
		return router.Push(genscreen.New(kind, e.cat, e.formDefaults(kind)))
	case "a":
		inst, _, err := e.wb.AppendBlank(kind)
		if err != nil {
			return e.notify(err)
		}
		e.selected[kind] = len(inst.IDs()) - 1
		return nil
	case "x", "delete":
		cur, id, ok := e.selectedID()
		if !ok {
			return e.noSelection(cur)
		}
		inst, err := e.wb.Remove(kind, id)
		if err != nil {
			return e.notify(err)
		}
		e.selected[kind] = max(0, min(e.selected[kind], len(inst.IDs())-1))
		return nil
	case "space":
		if kind == instrument.KindChecklist {
			return e.setSelected(func(inst instrument.Instrument, id string) (instrument.Instrument, error) {
				return inst.(instrument.Checklist).Toggle(id), nil
			})
		}
		return nil
	case "c":
		if kind == instrument.KindExam {
			return e.setSelected(func(inst instrument.Instrument, id string) (instrument.Instrument, error) {
				exam := inst.(instrument.Exam)
				return exam.Update(id, func(q *instrument.Question) { q.Type = nextQuestionType(q.Type) }), nil
			})
		}
		return nil
	}

	if n, err := strconv.Atoi(key); err == nil && len(key) == 1 {
		return e.setDigit(kind, n)
	}
	if mf, ok := metaFields[key]; ok {
		return e.openMetaEdit(kind, mf)
	}
	if key == "L" && kind == instrument.KindRubric {
		return e.openLevelEdit()
	}
	if ef, ok := elementFields[kind][key]; ok {
		return e.openElementEdit(kind, ef)
	}
	return nil
}

// formDefaults prefills the generation form from the last request or the
// current header.
func (e *Editor) formDefaults(kind instrument.Kind) generate.Params {
	if p, ok := e.params[kind]; ok {
		return p
	}
	var p generate.Params
	if inst, ok := e.wb.Get(kind); ok {
		m := inst.Meta()
		if m.Subject != e.wb.Placeholders().Subject {
			p.Subject = m.Subject
		}
		if m.Level != e.wb.Placeholders().Level {
			p.Level = m.Level
		}
	}
	return p
}

// setDigit selects a rubric level (0-4) or a rating value (0-5).
func (e *Editor) setDigit(kind instrument.Kind, n int) tea.Cmd {
	var field string
	switch kind {
	case instrument.KindRubric:
		field = "selected"
	case instrument.KindRatingScale:
		field = "value"
	default:
		return nil
	}
	inst, id, ok := e.selectedID()
	if !ok {
		return e.noSelection(inst)
	}
	if _, err := e.wb.SetField(kind, id, field, strconv.Itoa(n)); err != nil {
		return e.notify(err)
	}
	return nil
}

func (e *Editor) setSelected(fn func(instrument.Instrument, string) (instrument.Instrument, error)) tea.Cmd {
	inst, id, ok := e.selectedID()
	if !ok {
		return e.noSelection(inst)
	}
	_, err := e.wb.Apply(e.kind(), func(cur instrument.Instrument) (instrument.Instrument, error) {
		return fn(cur, id)
	})
	if err != nil {
		return e.notify(err)
	}
	return nil
}

func (e *Editor) openMetaEdit(kind instrument.Kind, mf fieldKey) tea.Cmd {
	inst, ok := e.wb.Get(kind)
	if !ok {
		return e.notify(workbench.ErrSlotEmpty)
	}
	e.edit = &editState{
		kind:  kind,
		field: mf.field,
		input: components.NewField(e.cat.T(mf.label), metaValue(inst.Meta(), mf.field), false, nil),
	}
	return e.edit.input.Focus()
}

func (e *Editor) openElementEdit(kind instrument.Kind, ef fieldKey) tea.Cmd {
	inst, id, ok := e.selectedID()
	if !ok {
		return e.noSelection(inst)
	}
	e.edit = &editState{
		kind:  kind,
		id:    id,
		field: ef.field,
		input: components.NewField(e.cat.T(ef.label), currentValue(inst, id, ef.field), ef.numeric, nil),
	}
	return e.edit.input.Focus()
}

// openLevelEdit edits the description of the selected level, or of the
// top level when none is selected.
func (e *Editor) openLevelEdit() tea.Cmd {
	inst, id, ok := e.selectedID()
	if !ok {
		return e.noSelection(inst)
	}
	c, _ := inst.(instrument.Rubric).Criterion(id)
	level := c.SelectedLevel
	if level == 0 {
		level = instrument.MaxLevel
	}
	field := levelField(level)
	e.edit = &editState{
		kind:  instrument.KindRubric,
		id:    id,
		field: field,
		input: components.NewField(fmt.Sprintf("%s %d", e.cat.T("ui.level"), level), currentValue(inst, id, field), false, nil),
	}
	return e.edit.input.Focus()
}

func (e *Editor) updateEdit(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		e.edit = nil
		return nil
	case "enter":
		ed := e.edit
		e.edit = nil
		value := ed.input.Value()
		var err error
		if ed.id == "" {
			_, err = e.wb.Apply(ed.kind, func(cur instrument.Instrument) (instrument.Instrument, error) {
				return cur.WithMeta(withMetaValue(cur.Meta(), ed.field, value)), nil
			})
		} else {
			_, err = e.wb.SetField(ed.kind, ed.id, ed.field, value)
		}
		if err != nil {
			return e.notify(err)
		}
		return nil
	}
	var cmd tea.Cmd
	e.edit.input, cmd = e.edit.input.Update(msg)
	return cmd
}

func (e *Editor) KeyHints() []layout.KeyHint {
	if e.edit != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: e.cat.T("hint.save")},
			{Key: "Esc", Description: e.cat.T("hint.cancel")},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Tab", Description: e.cat.T("hint.kind")},
		{Key: "↑↓", Description: e.cat.T("hint.select")},
		{Key: "m", Description: e.cat.T("hint.new")},
		{Key: "g", Description: e.cat.T("hint.generate")},
		{Key: "a/x", Description: e.cat.T("hint.add-remove")},
		{Key: "e", Description: e.cat.T("hint.edit")},
		{Key: "t", Description: e.cat.T("hint.title")},
	}
	switch e.kind() {
	case instrument.KindRubric:
		hints = append(hints, layout.KeyHint{Key: "0-4", Description: e.cat.T("hint.level")}, layout.KeyHint{Key: "w", Description: e.cat.T("hint.weight")})
	case instrument.KindChecklist:
		hints = append(hints, layout.KeyHint{Key: "Space", Description: e.cat.T("hint.check")})
	case instrument.KindRatingScale:
		hints = append(hints, layout.KeyHint{Key: "0-5", Description: e.cat.T("hint.rate")})
	case instrument.KindObservationGuide:
		hints = append(hints, layout.KeyHint{Key: "n", Description: e.cat.T("hint.notes")})
	case instrument.KindExam:
		hints = append(hints, layout.KeyHint{Key: "w/o", Description: e.cat.T("hint.points-obtained")})
	}
	return append(hints, layout.KeyHint{Key: "q", Description: e.cat.T("hint.quit")})
}

func (e *Editor) View(width, height int) string {
	snap := e.wb.Snapshot()
	for i, k := range instrument.Kinds {
		badge := ""
		switch {
		case e.busy(k):
			badge = "…"
		case snap[k] != nil:
			badge = snap[k].Score().String()
		}
		e.tabs.Items[i].Badge = badge
	}

	var b strings.Builder
	b.WriteString(e.tabs.View(width) + "\n\n")

	kind := e.kind()
	inst := snap[kind]
	if e.busy(kind) {
		b.WriteString(theme.Busy.Render(e.cat.T("ui.generating")) + "\n\n")
	}
	if inst == nil {
		b.WriteString(theme.Body.Render(e.cat.T("ui.empty")) + "\n")
		b.WriteString(theme.Hint.Render(e.cat.T("ui.empty_hint")))
		return b.String()
	}

	m := inst.Meta()
	b.WriteString(theme.Title.Render(m.Title) + "\n")
	var meta []string
	if m.Subject != "" {
		meta = append(meta, e.cat.T("ui.subject")+": "+m.Subject)
	}
	if m.Level != "" {
		meta = append(meta, e.cat.T("ui.level")+": "+m.Level)
	}
	meta = append(meta, e.cat.T("ui.student")+": "+m.Student)
	b.WriteString(theme.Subtitle.Render(strings.Join(meta, "  ·  ")) + "\n")
	if m.Description != "" && !layout.IsCompactWidth(width) {
		b.WriteString(theme.Hint.Render(m.Description) + "\n")
	}
	b.WriteString(components.ScoreBar{Label: e.cat.T("ui.score"), Score: inst.Score(), Width: min(width, 70)}.View() + "\n\n")

	if e.edit != nil {
		b.WriteString(theme.ActiveCard.Width(min(width-2, 90)).Render(e.edit.input.View()) + "\n\n")
	}

	list := components.List{Rows: rows(inst, e.cat), Selected: e.selected[kind]}
	list.Clamp()
	used := lipgloss.Height(b.String())
	b.WriteString(list.View(width, height-used))
	return b.String()
}
