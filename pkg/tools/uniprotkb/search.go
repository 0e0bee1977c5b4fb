package uniprotkb

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/theapemachine/mcp-server-uniprot/core"
	"github.com/theapemachine/mcp-server-uniprot/pkg/tools"
	"github.com/theapemachine/mcp-server-uniprot/pkg/tools/utils"
)

// SearchTool runs UniProtKB queries.
type SearchTool struct {
	*tools.BaseTool
	service *Service
}

// NewSearchTool creates the search_proteins tool.
func NewSearchTool(service *Service) core.Tool {
	return &SearchTool{
		BaseTool: tools.NewBaseTool(mcp.NewTool(
			"search_proteins",
			mcp.WithDescription("Search UniProtKB and return matching entries. The query uses UniProt query syntax, e.g. 'insulin AND organism_id:9606'."),
			mcp.WithString(
				"query",
				mcp.Required(),
				mcp.Description("The UniProt search query."),
			),
			mcp.WithNumber(
				"size",
				mcp.Description("Optional. Maximum number of results (default 10, max 500)."),
			),
			mcp.WithString(
				"fields",
				mcp.Description("Optional. Comma separated UniProt return fields. Defaults to "+DefaultSearchFields+"."),
			),
		)),
		service: service,
	}
}

// Handler executes the tool.
func (t *SearchTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := utils.GetRequiredStringParam(request, "query")
	if err != nil {
		return utils.HandleParameterError(err), nil
	}

	size, err := utils.GetOptionalIntParam(request, "size")
	if err != nil {
		return utils.HandleParameterError(err), nil
	}

	fields, err := utils.GetOptionalStringParam(request, "fields")
	if err != nil {
		return utils.HandleParameterError(err), nil
	}

	results, err := t.service.Search(ctx, query, size, fields)
	if err != nil {
		return failureResult(err), nil
	}

	return tools.NewJSONResult(results), nil
}
