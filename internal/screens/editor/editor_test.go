package editor

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/eduval/eduval/internal/generate"
	"github.com/eduval/eduval/internal/i18n"
	"github.com/eduval/eduval/internal/instrument"
	"github.com/eduval/eduval/internal/llm"
	"github.com/eduval/eduval/internal/router"
	genscreen "github.com/eduval/eduval/internal/screens/generate"
	"github.com/eduval/eduval/internal/ui/components"
	"github.com/eduval/eduval/internal/workbench"
)

func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	}
	r := []rune(key)[0]
	return tea.KeyPressMsg{Code: r, Text: key}
}

func newEditor(t *testing.T, mock *llm.MockProvider) (*Editor, *workbench.Workbench) {
	t.Helper()
	cat := i18n.MustNew("en")
	gen := generate.NewGenerator(mock, generate.NewBuilder(cat), generate.Config{}, zaptest.NewLogger(t))
	wb := workbench.New(gen, cat.Placeholders(), zaptest.NewLogger(t))
	return New(context.Background(), wb, cat), wb
}

func press(e *Editor, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = e.Update(keyPress(k))
	}
	return cmd
}

func typeText(e *Editor, s string) {
	for _, r := range s {
		e.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func notification(t *testing.T, cmd tea.Cmd) components.NotifyMsg {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(components.NotifyMsg)
	require.True(t, ok, "expected a notification")
	return msg
}

// selectKind moves the tab bar to kind.
func selectKind(e *Editor, kind instrument.Kind) {
	for e.kind() != kind {
		e.tabs.Next()
	}
}

func TestCreateManualAndDuplicate(t *testing.T) {
	e, wb := newEditor(t, llm.NewMockProvider())

	n := notification(t, press(e, "m"))
	assert.False(t, n.IsError)
	_, ok := wb.Get(instrument.KindRubric)
	assert.True(t, ok)

	n = notification(t, press(e, "m"))
	assert.True(t, n.IsError)
	assert.Equal(t, "An instrument of this kind already exists.", n.Text)
}

func TestEditOnEmptySlot(t *testing.T) {
	e, _ := newEditor(t, llm.NewMockProvider())

	n := notification(t, press(e, "a"))
	assert.True(t, n.IsError)
	assert.Equal(t, "Create or generate the instrument first.", n.Text)
	assert.False(t, e.Capturing())
}

func TestRubricLevelsDriveScore(t *testing.T) {
	e, wb := newEditor(t, llm.NewMockProvider())
	press(e, "m")
	assert.Equal(t, instrument.Sentinel, e.HeaderScore())

	press(e, "4")
	rubric, _ := wb.Get(instrument.KindRubric)
	c, _ := rubric.(instrument.Rubric).Criterion(rubric.IDs()[0])
	assert.Equal(t, 4, c.SelectedLevel)
	assert.NotEqual(t, instrument.Sentinel, e.HeaderScore())

	n := notification(t, press(e, "9"))
	assert.True(t, n.IsError)
}

func TestChecklistToggle(t *testing.T) {
	e, wb := newEditor(t, llm.NewMockProvider())
	selectKind(e, instrument.KindChecklist)
	press(e, "m", "a")

	press(e, "space")
	assert.Equal(t, "5.00", e.HeaderScore())

	inst, _ := wb.Get(instrument.KindChecklist)
	assert.Len(t, inst.IDs(), 2)
}

func TestInlineEdit(t *testing.T) {
	e, wb := newEditor(t, llm.NewMockProvider())
	selectKind(e, instrument.KindExam)
	press(e, "m", "w")
	require.True(t, e.Capturing())

	// clear the prefilled value
	for range 5 {
		e.Update(tea.KeyPressMsg{Code: tea.KeyBackspace})
	}
	typeText(e, "6x")
	press(e, "enter")
	assert.False(t, e.Capturing())

	inst, _ := wb.Get(instrument.KindExam)
	assert.Equal(t, 6.0, inst.(instrument.Exam).TotalPoints())
}

func TestInlineEditCancel(t *testing.T) {
	e, wb := newEditor(t, llm.NewMockProvider())
	press(e, "m", "t")
	typeText(e, " draft")
	press(e, "esc")

	inst, _ := wb.Get(instrument.KindRubric)
	assert.NotContains(t, inst.Meta().Title, "draft")
}

func TestGenerateFlow(t *testing.T) {
	reply := `{"title":"Fractions","items":["Simplifies","Compares"]}`
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(reply)})
	e, wb := newEditor(t, mock)
	selectKind(e, instrument.KindChecklist)

	cmd := press(e, "g")
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &genscreen.Form{}, push.Screen)

	p := generate.Params{Level: "Grade 7", Subject: "Mathematics", Topic: "fractions"}
	_, cmd = e.Update(genscreen.SubmitMsg{Kind: instrument.KindChecklist, Params: p})
	require.NotNil(t, cmd)
	assert.Contains(t, e.View(100, 40), "Generating")

	n := notification(t, press(e, "g"))
	assert.True(t, n.IsError)

	done := cmd()
	_, cmd = e.Update(done)
	n = notification(t, cmd)
	assert.False(t, n.IsError)
	assert.Equal(t, "Instrument generated successfully!", n.Text)

	inst, ok := wb.Get(instrument.KindChecklist)
	require.True(t, ok)
	assert.Equal(t, "Fractions", inst.Meta().Title)
	assert.Equal(t, p, e.formDefaults(instrument.KindChecklist))
}

func TestGenerateFailure(t *testing.T) {
	e, wb := newEditor(t, llm.NewMockProvider())

	p := generate.Params{Level: "Grade 7", Subject: "Mathematics", Topic: "fractions"}
	_, cmd := e.Update(genscreen.SubmitMsg{Kind: instrument.KindRubric, Params: p})
	_, cmd = e.Update(cmd())
	n := notification(t, cmd)
	assert.True(t, n.IsError)

	_, ok := wb.Get(instrument.KindRubric)
	assert.False(t, ok)
}

func TestViewShowsBadgesAndRows(t *testing.T) {
	e, _ := newEditor(t, llm.NewMockProvider())
	assert.Contains(t, e.View(100, 40), "No active instrument.")

	press(e, "m", "a", "down")
	view := e.View(100, 40)
	assert.Equal(t, 2, strings.Count(view, "New criterion"), view)
}

func TestKeyHintsFollowLanguage(t *testing.T) {
	cat := i18n.MustNew("es")
	wb := workbench.New(nil, cat.Placeholders(), zaptest.NewLogger(t))
	e := New(context.Background(), wb, cat)

	var descs []string
	for _, h := range e.KeyHints() {
		descs = append(descs, h.Description)
	}
	assert.Contains(t, descs, "Generar")
	assert.Contains(t, descs, "Peso")
	assert.Contains(t, descs, "Salir")
	assert.NotContains(t, descs, "Quit")
	for _, d := range descs {
		assert.False(t, strings.HasPrefix(d, "hint."), "untranslated hint %q", d)
	}
}
