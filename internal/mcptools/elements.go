package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/eduval/eduval/internal/i18n"
	"github.com/eduval/eduval/internal/instrument"
	"github.com/eduval/eduval/internal/workbench"
)

// AddElementTool handles instrument_add_element.
type AddElementTool struct {
	wb  *workbench.Workbench
	cat *i18n.Catalog
}

// NewAddElementTool creates an AddElementTool.
func NewAddElementTool(wb *workbench.Workbench, cat *i18n.Catalog) *AddElementTool {
	return &AddElementTool{wb: wb, cat: cat}
}

// Definition returns the MCP tool definition for instrument_add_element.
func (t *AddElementTool) Definition() mcp.Tool {
	return mcp.NewTool("instrument_add_element",
		mcp.WithDescription("Append a default element (criterion, item, aspect or question) and return its ID."),
		withKind(),
	)
}

// Handle processes the instrument_add_element tool call.
func (t *AddElementTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := kindArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	inst, id, err := t.wb.AppendBlank(kind)
	if err != nil {
		return errorResult(t.cat, err), nil
	}
	return instrumentResult(t.cat, inst, "added element "+id), nil
}

// UpdateElementTool handles instrument_update_element.
type UpdateElementTool struct {
	wb  *workbench.Workbench
	cat *i18n.Catalog
}

// NewUpdateElementTool creates an UpdateElementTool.
func NewUpdateElementTool(wb *workbench.Workbench, cat *i18n.Catalog) *UpdateElementTool {
	return &UpdateElementTool{wb: wb, cat: cat}
}

func fieldHelp() string {
	var sb strings.Builder
	for _, k := range instrument.Kinds {
		fmt.Fprintf(&sb, "%s: %s. ", k, strings.Join(instrument.Fields(k), ", "))
	}
	return strings.TrimSpace(sb.String())
}

// Definition returns the MCP tool definition for instrument_update_element.
func (t *UpdateElementTool) Definition() mcp.Tool {
	return mcp.NewTool("instrument_update_element",
		mcp.WithDescription("Set one field of one element from its text form. "+
			"Rubric 'selected' takes 0-4, rating 'value' 0-5, exam 'obtained' a number or empty to clear."),
		withKind(),
		mcp.WithString("id", mcp.Required(), mcp.Description("Element ID from instrument_show")),
		mcp.WithString("field", mcp.Required(), mcp.Description("Field per kind. "+fieldHelp())),
		mcp.WithString("value", mcp.Required(), mcp.Description("New value as text")),
	)
}

// Handle processes the instrument_update_element tool call.
func (t *UpdateElementTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := kindArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	id := req.GetString("id", "")
	field := req.GetString("field", "")
	if id == "" || field == "" {
		return mcp.NewToolResultError("'id' and 'field' are required"), nil
	}
	value, _ := stringArg(req, "value")

	inst, err := t.wb.SetField(kind, id, field, value)
	if err != nil {
		return errorResult(t.cat, err), nil
	}
	return instrumentResult(t.cat, inst, ""), nil
}

// RemoveElementTool handles instrument_remove_element.
type RemoveElementTool struct {
	wb  *workbench.Workbench
	cat *i18n.Catalog
}

// NewRemoveElementTool creates a RemoveElementTool.
func NewRemoveElementTool(wb *workbench.Workbench, cat *i18n.Catalog) *RemoveElementTool {
	return &RemoveElementTool{wb: wb, cat: cat}
}

// Definition returns the MCP tool definition for instrument_remove_element.
func (t *RemoveElementTool) Definition() mcp.Tool {
	return mcp.NewTool("instrument_remove_element",
		mcp.WithDescription("Remove one element by ID. Unknown IDs leave the instrument unchanged."),
		withKind(),
		mcp.WithString("id", mcp.Required(), mcp.Description("Element ID from instrument_show")),
	)
}

// Handle processes the instrument_remove_element tool call.
func (t *RemoveElementTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := kindArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	inst, err := t.wb.Remove(kind, req.GetString("id", ""))
	if err != nil {
		return errorResult(t.cat, err), nil
	}
	return instrumentResult(t.cat, inst, ""), nil
}
