package core

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// Tool is an MCP tool: its schema and the handler serving it.
type Tool interface {
	Handle() mcp.Tool
	Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
}
