// Package middleware provides middleware components for wrapping MCP tool handlers
package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handler is the signature shared by every tool handler.
type Handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// Middleware wraps a Handler.
type Middleware func(Handler) Handler

// Chain applies mws so that the first one is the outermost.
func Chain(handler Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}
	return handler
}

// Logging records every tool call with its duration and outcome.
func Logging(logger *log.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			logger.Debug("tool call", "tool", request.Params.Name, "arguments", request.Params.Arguments)

			result, err := next(ctx, request)

			keyvals := []any{"tool", request.Params.Name, "duration", time.Since(start)}
			switch {
			case err != nil:
				logger.Error("tool failed", append(keyvals, "error", err)...)
			case result != nil && result.IsError:
				logger.Warn("tool returned error result", keyvals...)
			default:
				logger.Info("tool completed", keyvals...)
			}

			return result, err
		}
	}
}

// Recover turns a panicking handler into an error result.
func Recover(logger *log.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, request mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("tool panicked", "tool", request.Params.Name, "panic", r)
					result = mcp.NewToolResultError(fmt.Sprintf("internal_error: tool %s failed", request.Params.Name))
					err = nil
				}
			}()

			return next(ctx, request)
		}
	}
}
