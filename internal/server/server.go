// Package server wires the MCP tools around a workbench.
package server

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/eduval/eduval/internal/i18n"
	"github.com/eduval/eduval/internal/mcptools"
	"github.com/eduval/eduval/internal/workbench"
)

const instructions = `eduval edits classroom assessment instruments: rubric, checklist,
rating-scale, observation-guide and exam. There is at most one instrument of
each kind. Create one with instrument_create or instrument_generate, inspect it
with instrument_show to learn element IDs, then edit it with
instrument_add_element, instrument_update_element, instrument_remove_element and
instrument_set_meta. Scores are on a 0-10 scale.`

// New creates the MCP server with every instrument tool registered.
func New(wb *workbench.Workbench, cat *i18n.Catalog, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"eduval",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	create := mcptools.NewCreateTool(wb, cat)
	s.AddTool(create.Definition(), create.Handle)

	gen := mcptools.NewGenerateTool(wb, cat)
	s.AddTool(gen.Definition(), gen.Handle)

	show := mcptools.NewShowTool(wb, cat)
	s.AddTool(show.Definition(), show.Handle)

	score := mcptools.NewScoreTool(wb, cat)
	s.AddTool(score.Definition(), score.Handle)

	add := mcptools.NewAddElementTool(wb, cat)
	s.AddTool(add.Definition(), add.Handle)

	update := mcptools.NewUpdateElementTool(wb, cat)
	s.AddTool(update.Definition(), update.Handle)

	remove := mcptools.NewRemoveElementTool(wb, cat)
	s.AddTool(remove.Definition(), remove.Handle)

	meta := mcptools.NewSetMetaTool(wb, cat)
	s.AddTool(meta.Definition(), meta.Handle)

	return s
}

// Serve runs s over stdio until stdin closes.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
