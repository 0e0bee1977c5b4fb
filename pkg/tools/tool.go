// Package tools provides shared building blocks for MCP tools
package tools

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// Standard errors for consistent error handling
var (
	ErrInvalidParams    = errors.New("invalid parameters")
	ErrExternalAPIError = errors.New("external API error")
	ErrInternalError    = errors.New("internal server error")
)

// BaseTool provides common functionality for all tools
type BaseTool struct {
	name   string
	handle mcp.Tool
}

// NewBaseTool creates a new BaseTool with the given handle
func NewBaseTool(handle mcp.Tool) *BaseTool {
	return &BaseTool{
		name:   handle.Name,
		handle: handle,
	}
}

// Handle returns the MCP Tool definition
func (b *BaseTool) Handle() mcp.Tool {
	return b.handle
}

// Name returns the name of the tool
func (b *BaseTool) Name() string {
	return b.name
}

// WrapError wraps a sentinel error with the cause
func WrapError(sentinel error, cause error) error {
	return fmt.Errorf("%w: %v", sentinel, cause)
}

// NewErrorResult creates a standard error result
func NewErrorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(err.Error())
}

// NewJSONResult marshals v into a text result
func NewJSONResult(v any) *mcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return NewErrorResult(WrapError(ErrInternalError, err))
	}
	return mcp.NewToolResultText(string(data))
}
