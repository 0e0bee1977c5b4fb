package uniprotkb

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/theapemachine/mcp-server-uniprot/core"
	"github.com/theapemachine/mcp-server-uniprot/pkg/tools"
	"github.com/theapemachine/mcp-server-uniprot/pkg/tools/utils"
)

// FetchFeaturesTool lists the annotated sequence features of an entry.
type FetchFeaturesTool struct {
	*tools.BaseTool
	service *Service
}

// NewFetchFeaturesTool creates the fetch_features tool.
func NewFetchFeaturesTool(service *Service) core.Tool {
	return &FetchFeaturesTool{
		BaseTool: tools.NewBaseTool(mcp.NewTool(
			"fetch_features",
			mcp.WithDescription("Get the sequence features (domains, sites, variants, PTMs...) of a UniProtKB entry."),
			mcp.WithString(
				"accession",
				mcp.Required(),
				mcp.Description("The UniProtKB accession of the entry."),
			),
			mcp.WithString(
				"feature_type",
				mcp.Description("Optional. Feature category to keep, e.g. DOMAIN_AND_SITES or PTM. Defaults to all."),
			),
		)),
		service: service,
	}
}

// Handler executes the tool.
func (t *FetchFeaturesTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accession, err := utils.GetRequiredStringParam(request, "accession")
	if err != nil {
		return utils.HandleParameterError(err), nil
	}

	featureType, err := utils.GetOptionalStringParam(request, "feature_type")
	if err != nil {
		return utils.HandleParameterError(err), nil
	}

	features, err := t.service.FetchFeatures(ctx, accession, featureType)
	if err != nil {
		return failureResult(err), nil
	}

	return tools.NewJSONResult(features), nil
}
