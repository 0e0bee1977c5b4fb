package uniprotkb

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/theapemachine/mcp-server-uniprot/core"
	"github.com/theapemachine/mcp-server-uniprot/pkg/tools"
	"github.com/theapemachine/mcp-server-uniprot/pkg/tools/utils"
)

// FetchSequencesTool downloads protein sequences in FASTA and returns them keyed by accession.
type FetchSequencesTool struct {
	*tools.BaseTool
	service *Service
}

// NewFetchSequencesTool creates the fetch_sequences tool.
func NewFetchSequencesTool(service *Service) core.Tool {
	return &FetchSequencesTool{
		BaseTool: tools.NewBaseTool(mcp.NewTool(
			"fetch_sequences",
			mcp.WithDescription("Get amino acid sequences for one or more UniProtKB accessions, keyed by accession."),
			mcp.WithString(
				"accessions",
				mcp.Required(),
				mcp.Description("Comma separated UniProtKB accessions, e.g. P01308,P69905."),
			),
		)),
		service: service,
	}
}

// Handler executes the tool.
func (t *FetchSequencesTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accessions, err := utils.GetRequiredStringParam(request, "accessions")
	if err != nil {
		return utils.HandleParameterError(err), nil
	}

	if len(SplitAccessions(accessions)) == 0 {
		return utils.HandleParameterError(errors.New("parameter 'accessions' must name at least one accession")), nil
	}

	sequences, err := t.service.FetchSequences(ctx, accessions)
	if err != nil {
		return failureResult(err), nil
	}

	return tools.NewJSONResult(sequences), nil
}
