package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/eduval/eduval/internal/i18n"
	"github.com/eduval/eduval/internal/instrument"
	"github.com/eduval/eduval/internal/workbench"
)

// SetMetaTool handles instrument_set_meta.
type SetMetaTool struct {
	wb  *workbench.Workbench
	cat *i18n.Catalog
}

// NewSetMetaTool creates a SetMetaTool.
func NewSetMetaTool(wb *workbench.Workbench, cat *i18n.Catalog) *SetMetaTool {
	return &SetMetaTool{wb: wb, cat: cat}
}

// Definition returns the MCP tool definition for instrument_set_meta.
func (t *SetMetaTool) Definition() mcp.Tool {
	return mcp.NewTool("instrument_set_meta",
		mcp.WithDescription("Change header fields. Only the fields passed are changed."),
		withKind(),
		mcp.WithString("title", mcp.Description("Instrument title")),
		mcp.WithString("subject", mcp.Description("Subject")),
		mcp.WithString("level", mcp.Description("Educational level")),
		mcp.WithString("description", mcp.Description("Description, or instructions for exams")),
		mcp.WithString("student", mcp.Description("Student being assessed")),
	)
}

// Handle processes the instrument_set_meta tool call.
func (t *SetMetaTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := kindArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	inst, err := t.wb.Apply(kind, func(cur instrument.Instrument) (instrument.Instrument, error) {
		m := cur.Meta()
		for key, dst := range map[string]*string{
			"title":       &m.Title,
			"subject":     &m.Subject,
			"level":       &m.Level,
			"description": &m.Description,
			"student":     &m.Student,
		} {
			if v, ok := stringArg(req, key); ok {
				*dst = v
			}
		}
		return cur.WithMeta(m), nil
	})
	if err != nil {
		return errorResult(t.cat, err), nil
	}
	return instrumentResult(t.cat, inst, ""), nil
}
