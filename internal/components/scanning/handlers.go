// Package scanning provides data source scan tools for the Purview MCP
// server.
package scanning

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SecuringTheRealm/str-mcp-purview/internal/config"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/logger"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/purview"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/tools"
)

// ScanClient is the subset of the scanning client used by the scan tools.
type ScanClient interface {
	RunScan(ctx context.Context, dataSourceName, scanLevel string) (*purview.ScanRun, error)
}

// scanResult is the payload returned by scan_data_source.
type scanResult struct {
	Message     string           `json:"message"`
	ScanDetails *purview.ScanRun `json:"scan_details"`
}

// GetScanDataSourceHandler returns a handler for the scan_data_source tool.
func GetScanDataSourceHandler(client ScanClient, cfg *config.ConfigData) tools.ResourceHandler {
	return tools.ResourceHandlerFunc(func(ctx context.Context, params map[string]interface{}, _ *config.ConfigData) (string, error) {
		if client == nil {
			return "", fmt.Errorf("purview scanning client not initialized correctly")
		}

		dataSourceName, ok := params["data_source_name"].(string)
		if !ok || dataSourceName == "" {
			return "", fmt.Errorf("missing or invalid data_source_name parameter")
		}

		scanLevel := purview.ScanLevelIncremental
		if levelParam, ok := params["scan_level"].(string); ok && levelParam != "" {
			scanLevel = levelParam
		}
		if !purview.IsValidScanLevel(scanLevel) {
			return "", fmt.Errorf("invalid scan_level '%s', must be one of: %s, %s",
				scanLevel, purview.ScanLevelIncremental, purview.ScanLevelFull)
		}

		logger.Debugf("Initiating %s scan on data source: %s", scanLevel, dataSourceName)

		run, err := client.RunScan(ctx, dataSourceName, scanLevel)
		if err != nil {
			return "", fmt.Errorf("failed to initiate scan: %v", err)
		}

		result := scanResult{
			Message:     fmt.Sprintf("%s scan initiated on %s", scanLevel, dataSourceName),
			ScanDetails: run,
		}

		resultJSON, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal scan result to JSON: %v", err)
		}

		return string(resultJSON), nil
	})
}
