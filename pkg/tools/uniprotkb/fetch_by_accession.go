package uniprotkb

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/theapemachine/mcp-server-uniprot/core"
	"github.com/theapemachine/mcp-server-uniprot/pkg/tools"
	"github.com/theapemachine/mcp-server-uniprot/pkg/tools/utils"
)

// FetchByAccessionTool retrieves a single UniProtKB entry.
type FetchByAccessionTool struct {
	*tools.BaseTool
	service *Service
}

// NewFetchByAccessionTool creates the fetch_by_accession tool.
func NewFetchByAccessionTool(service *Service) core.Tool {
	return &FetchByAccessionTool{
		BaseTool: tools.NewBaseTool(mcp.NewTool(
			"fetch_by_accession",
			mcp.WithDescription("Get the full UniProtKB entry for a protein accession (e.g. P01308)."),
			mcp.WithString(
				"accession",
				mcp.Required(),
				mcp.Description("The UniProtKB accession of the entry."),
			),
			mcp.WithString(
				"format",
				mcp.Description("Optional. Response format: json (default), fasta, txt, xml or gff."),
				mcp.Enum("json", "fasta", "txt", "xml", "gff"),
			),
		)),
		service: service,
	}
}

// Handler executes the tool.
func (t *FetchByAccessionTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accession, err := utils.GetRequiredStringParam(request, "accession")
	if err != nil {
		return utils.HandleParameterError(err), nil
	}

	format, err := utils.GetOptionalStringParam(request, "format")
	if err != nil {
		return utils.HandleParameterError(err), nil
	}

	entry, err := t.service.FetchByAccession(ctx, accession, format)
	if err != nil {
		return failureResult(err), nil
	}

	return tools.NewJSONResult(entry), nil
}
