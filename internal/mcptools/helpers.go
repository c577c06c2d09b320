// Package mcptools provides MCP tool handlers that let an AI assistant
// drive the instrument workbench.
//
// Each tool is a struct holding the workbench, with Definition returning
// the mcp.Tool schema and Handle processing a call. Failures are reported
// as tool errors rather than protocol errors.
package mcptools

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/eduval/eduval/internal/i18n"
	"github.com/eduval/eduval/internal/instrument"
	"github.com/eduval/eduval/internal/workbench"
)

func kindNames() []string {
	names := make([]string, len(instrument.Kinds))
	for i, k := range instrument.Kinds {
		names[i] = string(k)
	}
	return names
}

// withKind is the shared "kind" parameter.
func withKind() mcp.ToolOption {
	return mcp.WithString("kind",
		mcp.Required(),
		mcp.Enum(kindNames()...),
		mcp.Description("Instrument kind: "+strings.Join(kindNames(), ", ")),
	)
}

func kindArg(req mcp.CallToolRequest) (instrument.Kind, error) {
	return instrument.ParseKind(req.GetString("kind", ""))
}

// stringArg reports whether key was passed at all, so empty strings can
// be told apart from absent ones.
func stringArg(req mcp.CallToolRequest, key string) (string, bool) {
	v, ok := req.GetArguments()[key].(string)
	return v, ok
}

// errorResult renders err with its localized notification.
func errorResult(cat *i18n.Catalog, err error) *mcp.CallToolResult {
	msg := cat.T(workbench.NotificationFor(err).MessageID)
	return mcp.NewToolResultError(fmt.Sprintf("%s (%v)", msg, err))
}

// instrumentResult renders the instrument as its JSON envelope preceded
// by a one-line summary.
func instrumentResult(cat *i18n.Catalog, inst instrument.Instrument, extra string) *mcp.CallToolResult {
	data, err := instrument.Marshal(inst)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding instrument: %v", err))
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %q, %d elements, %s: %s\n",
		cat.KindLabel(inst.Kind()), inst.Meta().Title, len(inst.IDs()), cat.T("ui.score"), inst.Score())
	if extra != "" {
		sb.WriteString(extra + "\n")
	}
	sb.WriteString("\n")
	sb.Write(data)
	return mcp.NewToolResultText(sb.String())
}
