package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/eduval/eduval/internal/i18n"
	"github.com/eduval/eduval/internal/workbench"
)

// ShowTool handles instrument_show.
type ShowTool struct {
	wb  *workbench.Workbench
	cat *i18n.Catalog
}

// NewShowTool creates a ShowTool.
func NewShowTool(wb *workbench.Workbench, cat *i18n.Catalog) *ShowTool {
	return &ShowTool{wb: wb, cat: cat}
}

// Definition returns the MCP tool definition for instrument_show.
func (t *ShowTool) Definition() mcp.Tool {
	return mcp.NewTool("instrument_show",
		mcp.WithDescription("Show the current instrument of a kind as JSON, including element IDs needed by the edit tools."),
		withKind(),
	)
}

// Handle processes the instrument_show tool call.
func (t *ShowTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := kindArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	inst, ok := t.wb.Get(kind)
	if !ok {
		return errorResult(t.cat, workbench.ErrSlotEmpty), nil
	}
	return instrumentResult(t.cat, inst, ""), nil
}

// ScoreTool handles instrument_score.
type ScoreTool struct {
	wb  *workbench.Workbench
	cat *i18n.Catalog
}

// NewScoreTool creates a ScoreTool.
func NewScoreTool(wb *workbench.Workbench, cat *i18n.Catalog) *ScoreTool {
	return &ScoreTool{wb: wb, cat: cat}
}

// Definition returns the MCP tool definition for instrument_score.
func (t *ScoreTool) Definition() mcp.Tool {
	return mcp.NewTool("instrument_score",
		mcp.WithDescription("Return the current score (0-10, two decimals) of an instrument, or '—' when it cannot be computed."),
		withKind(),
	)
}

// Handle processes the instrument_score tool call.
func (t *ScoreTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := kindArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s, err := t.wb.Score(kind)
	if err != nil {
		return errorResult(t.cat, err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s: %s", t.cat.T("ui.score"), s)), nil
}
