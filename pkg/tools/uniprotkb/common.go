package uniprotkb

import (
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/theapemachine/mcp-server-uniprot/core"
	"github.com/theapemachine/mcp-server-uniprot/pkg/tools"
	"github.com/theapemachine/mcp-server-uniprot/pkg/uniprot"
)

// RegisterTools returns every UniProtKB tool backed by service.
func RegisterTools(service *Service) []core.Tool {
	return []core.Tool{
		NewFetchByAccessionTool(service),
		NewSearchTool(service),
		NewFetchSequencesTool(service),
		NewFetchFeaturesTool(service),
	}
}

// failureResult turns an error from a Service call into an MCP error result.
func failureResult(err error) *mcp.CallToolResult {
	if errors.Is(err, tools.ErrInvalidParams) {
		return tools.NewErrorResult(err)
	}

	if failure, ok := uniprot.AsFailure(err); ok {
		return tools.NewErrorResult(fmt.Errorf(
			"%w: %v (kind=%s status=%d retryable=%t)",
			tools.ErrExternalAPIError, failure, failure.Kind, failure.StatusCode, failure.Retryable(),
		))
	}

	return tools.NewErrorResult(tools.WrapError(tools.ErrInternalError, err))
}
