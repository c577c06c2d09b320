package mcptools

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/eduval/eduval/internal/generate"
	"github.com/eduval/eduval/internal/i18n"
	"github.com/eduval/eduval/internal/instrument"
	"github.com/eduval/eduval/internal/llm"
	"github.com/eduval/eduval/internal/workbench"
)

func newBench(t *testing.T, responses ...llm.MockResponse) (*workbench.Workbench, *i18n.Catalog) {
	t.Helper()
	cat := i18n.MustNew("en")
	log := zaptest.NewLogger(t)
	gen := generate.NewGenerator(llm.NewMockProvider(responses...), generate.NewBuilder(cat), generate.Config{}, log)
	return workbench.New(gen, cat.Placeholders(), log), cat
}

func makeReq(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(r *mcp.CallToolResult) string {
	if r == nil {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func call(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	res, err := h(context.Background(), makeReq(args))
	require.NoError(t, err)
	return res
}

var addedID = regexp.MustCompile(`added element (\S+)`)

func TestDefinitions(t *testing.T) {
	wb, cat := newBench(t)
	tests := []struct {
		def  mcp.Tool
		name string
	}{
		{NewCreateTool(wb, cat).Definition(), "instrument_create"},
		{NewGenerateTool(wb, cat).Definition(), "instrument_generate"},
		{NewShowTool(wb, cat).Definition(), "instrument_show"},
		{NewScoreTool(wb, cat).Definition(), "instrument_score"},
		{NewAddElementTool(wb, cat).Definition(), "instrument_add_element"},
		{NewUpdateElementTool(wb, cat).Definition(), "instrument_update_element"},
		{NewRemoveElementTool(wb, cat).Definition(), "instrument_remove_element"},
		{NewSetMetaTool(wb, cat).Definition(), "instrument_set_meta"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.def.Name)
		assert.Contains(t, tt.def.InputSchema.Required, "kind", tt.name)
	}
}

func TestExamEditing(t *testing.T) {
	wb, cat := newBench(t)
	kind := map[string]any{"kind": "exam"}

	res := call(t, NewScoreTool(wb, cat).Handle, kind)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), "Create or generate the instrument first.")

	res = call(t, NewCreateTool(wb, cat).Handle, kind)
	require.False(t, res.IsError, resultText(res))
	assert.Contains(t, resultText(res), "Instrument created.")

	res = call(t, NewAddElementTool(wb, cat).Handle, kind)
	require.False(t, res.IsError)
	m := addedID.FindStringSubmatch(resultText(res))
	require.Len(t, m, 2)
	id := m[1]

	for field, value := range map[string]string{"points": "4", "obtained": "3"} {
		res = call(t, NewUpdateElementTool(wb, cat).Handle,
			map[string]any{"kind": "exam", "id": id, "field": field, "value": value})
		require.False(t, res.IsError, resultText(res))
	}

	// The blank question is worth one point and ungraded.
	res = call(t, NewScoreTool(wb, cat).Handle, kind)
	assert.Equal(t, "Score: 6.00", resultText(res))

	res = call(t, NewUpdateElementTool(wb, cat).Handle,
		map[string]any{"kind": "exam", "id": id, "field": "points", "value": "-1"})
	assert.True(t, res.IsError)

	res = call(t, NewRemoveElementTool(wb, cat).Handle, map[string]any{"kind": "exam", "id": id})
	require.False(t, res.IsError)
	assert.NotContains(t, resultText(res), id)
}

func TestSetMetaChangesOnlyPassedFields(t *testing.T) {
	wb, cat := newBench(t)
	call(t, NewCreateTool(wb, cat).Handle, map[string]any{"kind": "rubric"})

	res := call(t, NewSetMetaTool(wb, cat).Handle, map[string]any{"kind": "rubric", "student": "Ana"})
	require.False(t, res.IsError)

	inst, ok := wb.Get(instrument.KindRubric)
	require.True(t, ok)
	assert.Equal(t, "Ana", inst.Meta().Student)
	assert.Equal(t, "New Rubric", inst.Meta().Title)
}

func TestShowIncludesEnvelope(t *testing.T) {
	wb, cat := newBench(t)
	call(t, NewCreateTool(wb, cat).Handle, map[string]any{"kind": "checklist"})

	text := resultText(call(t, NewShowTool(wb, cat).Handle, map[string]any{"kind": "checklist"}))
	body := text[strings.Index(text, "{"):]
	got, err := instrument.Unmarshal([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, instrument.KindChecklist, got.Kind())
}

func TestGenerate(t *testing.T) {
	wb, cat := newBench(t, llm.MockResponse{
		Content: json.RawMessage(`{"title":"Fractions","items":["Simplifies","Compares"]}`),
	})
	tool := NewGenerateTool(wb, cat)

	res := call(t, tool.Handle, map[string]any{"kind": "checklist", "level": "Grade 7", "subject": "Mathematics"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), "Please fill in")

	res = call(t, tool.Handle, map[string]any{
		"kind": "checklist", "level": "Grade 7", "subject": "Mathematics", "topic": "fractions",
	})
	require.False(t, res.IsError, resultText(res))
	assert.Contains(t, resultText(res), "Simplifies")
}

func TestUnknownKind(t *testing.T) {
	wb, cat := newBench(t)
	res := call(t, NewShowTool(wb, cat).Handle, map[string]any{"kind": "poster"})
	assert.True(t, res.IsError)
}
