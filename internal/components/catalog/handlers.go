// Package catalog provides data catalog summary and lineage tools for the
// Purview MCP server.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SecuringTheRealm/str-mcp-purview/internal/config"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/logger"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/purview"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/tools"
)

// defaultLineageDepth bounds lineage traversal when no depth is given.
const defaultLineageDepth = 3

// CatalogClient is the subset of the catalog client used by these tools.
type CatalogClient interface {
	GetAssetStatistics(ctx context.Context) (*purview.CatalogSummary, error)
	GetLineage(ctx context.Context, entityID string, depth int) (*purview.LineageGraph, error)
}

// GetDataCatalogSummaryHandler returns a handler for the
// get_data_catalog_summary tool.
func GetDataCatalogSummaryHandler(client CatalogClient, cfg *config.ConfigData) tools.ResourceHandler {
	return tools.ResourceHandlerFunc(func(ctx context.Context, params map[string]interface{}, _ *config.ConfigData) (string, error) {
		if client == nil {
			return "", fmt.Errorf("purview catalog client not initialized correctly")
		}

		summary, err := client.GetAssetStatistics(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to fetch data catalog summary: %v", err)
		}

		resultJSON, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal catalog summary to JSON: %v", err)
		}

		return string(resultJSON), nil
	})
}

// GetDataLineageHandler returns a handler for the get_data_lineage tool.
func GetDataLineageHandler(client CatalogClient, cfg *config.ConfigData) tools.ResourceHandler {
	return tools.ResourceHandlerFunc(func(ctx context.Context, params map[string]interface{}, _ *config.ConfigData) (string, error) {
		if client == nil {
			return "", fmt.Errorf("purview catalog client not initialized correctly")
		}

		entityID, ok := params["entity_id"].(string)
		if !ok || entityID == "" {
			return "", fmt.Errorf("missing or invalid entity_id parameter")
		}

		depth := defaultLineageDepth
		if depthParam, ok := params["depth"].(float64); ok && depthParam > 0 {
			depth = int(depthParam)
		}

		logger.Debugf("Fetching lineage for entity %s with depth %d", entityID, depth)

		graph, err := client.GetLineage(ctx, entityID, depth)
		if err != nil {
			return "", fmt.Errorf("failed to fetch lineage: %v", err)
		}

		resultJSON, err := json.MarshalIndent(graph, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal lineage graph to JSON: %v", err)
		}

		return string(resultJSON), nil
	})
}
