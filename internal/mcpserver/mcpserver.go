// Package mcpserver exposes the journey tools over the Model Context Protocol.
package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/comigor/journey-go/internal/logger"
	"github.com/comigor/journey-go/pkg/tools"
)

// New creates an MCP server with every tool of mgr registered.
func New(mgr *tools.ToolManager, version string) *server.MCPServer {
	s := server.NewMCPServer("journey", version, server.WithToolCapabilities(false))
	for _, t := range mgr.List() {
		tool, handler := Adapt(t)
		s.AddTool(tool, handler)
		logger.L.Debug("registered MCP tool", "tool", t.Name())
	}
	return s
}

// Adapt turns a tool into its MCP definition and handler. Tool failures are
// reported to the client as error results, not protocol errors.
func Adapt(t tools.Tool) (mcp.Tool, server.ToolHandlerFunc) {
	opts := []mcp.ToolOption{mcp.WithDescription(t.Description())}
	for _, p := range t.Params() {
		propOpts := []mcp.PropertyOption{mcp.Description(p.Description)}
		if p.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		opts = append(opts, mcp.WithString(p.Name, propOpts...))
	}

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		out, err := t.Run(ctx, req.GetArguments())
		if err != nil {
			logger.L.Warn("MCP tool failed", "tool", t.Name(), "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(out), nil
	}
	return mcp.NewTool(t.Name(), opts...), handler
}
