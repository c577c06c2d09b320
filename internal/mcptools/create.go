package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/eduval/eduval/internal/generate"
	"github.com/eduval/eduval/internal/i18n"
	"github.com/eduval/eduval/internal/workbench"
)

// CreateTool handles instrument_create.
type CreateTool struct {
	wb  *workbench.Workbench
	cat *i18n.Catalog
}

// NewCreateTool creates a CreateTool.
func NewCreateTool(wb *workbench.Workbench, cat *i18n.Catalog) *CreateTool {
	return &CreateTool{wb: wb, cat: cat}
}

// Definition returns the MCP tool definition for instrument_create.
func (t *CreateTool) Definition() mcp.Tool {
	return mcp.NewTool("instrument_create",
		mcp.WithDescription("Create a blank instrument of the given kind with one placeholder element. "+
			"Fails if one already exists; use instrument_generate to replace it."),
		withKind(),
	)
}

// Handle processes the instrument_create tool call.
func (t *CreateTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := kindArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	inst, err := t.wb.CreateManual(kind)
	if err != nil {
		return errorResult(t.cat, err), nil
	}
	return instrumentResult(t.cat, inst, t.cat.T(workbench.NotifyCreated)), nil
}

// GenerateTool handles instrument_generate.
type GenerateTool struct {
	wb  *workbench.Workbench
	cat *i18n.Catalog
}

// NewGenerateTool creates a GenerateTool.
func NewGenerateTool(wb *workbench.Workbench, cat *i18n.Catalog) *GenerateTool {
	return &GenerateTool{wb: wb, cat: cat}
}

// Definition returns the MCP tool definition for instrument_generate.
func (t *GenerateTool) Definition() mcp.Tool {
	return mcp.NewTool("instrument_generate",
		mcp.WithDescription("Generate an instrument with the configured AI provider and replace the current one of that kind. "+
			"On failure the current instrument is kept."),
		withKind(),
		mcp.WithString("level", mcp.Required(), mcp.Description("Educational level, e.g. 'Grade 7'")),
		mcp.WithString("subject", mcp.Required(), mcp.Description("Subject, e.g. 'Mathematics'")),
		mcp.WithString("topic", mcp.Required(), mcp.Description("What the instrument assesses")),
	)
}

// Handle processes the instrument_generate tool call.
func (t *GenerateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := kindArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	inst, err := t.wb.Generate(ctx, kind, generate.Params{
		Level:   req.GetString("level", ""),
		Subject: req.GetString("subject", ""),
		Topic:   req.GetString("topic", ""),
	})
	if err != nil {
		return errorResult(t.cat, err), nil
	}
	return instrumentResult(t.cat, inst, t.cat.T(workbench.NotifyGenerated)), nil
}
