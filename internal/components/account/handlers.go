// Package account provides account administration tools for the Purview
// MCP server.
package account

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/purview/armpurview"

	"github.com/SecuringTheRealm/str-mcp-purview/internal/config"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/tools"
)

// AccountsAPI is the subset of the ARM accounts client used by these tools.
type AccountsAPI interface {
	Get(ctx context.Context, resourceGroupName string, accountName string, options *armpurview.AccountsClientGetOptions) (armpurview.AccountsClientGetResponse, error)
}

// AccountPropertiesAPI is the data-plane account client used when no
// subscription is configured for the management plane.
type AccountPropertiesAPI interface {
	GetAccountProperties(ctx context.Context) (map[string]interface{}, error)
}

// GetAccountInfoHandler returns a handler for the get_account_info tool.
// The ARM view is preferred; without a subscription the handler falls back
// to the account's own data-plane properties endpoint.
func GetAccountInfoHandler(management AccountsAPI, dataPlane AccountPropertiesAPI, cfg *config.ConfigData) tools.ResourceHandler {
	return tools.ResourceHandlerFunc(func(ctx context.Context, params map[string]interface{}, cfg *config.ConfigData) (string, error) {
		if management == nil && dataPlane == nil {
			return "", fmt.Errorf("purview management client not initialized correctly")
		}

		if management != nil {
			if cfg.Purview.ResourceGroup == "" {
				return "", fmt.Errorf("AZURE_RESOURCE_GROUP must be set to query the management plane")
			}

			resp, err := management.Get(ctx, cfg.Purview.ResourceGroup, cfg.Purview.AccountName, nil)
			if err != nil {
				return "", fmt.Errorf("failed to get purview account %s: %v", cfg.Purview.AccountName, err)
			}

			resultJSON, err := json.MarshalIndent(resp.Account, "", "  ")
			if err != nil {
				return "", fmt.Errorf("failed to marshal account to JSON: %v", err)
			}
			return string(resultJSON), nil
		}

		properties, err := dataPlane.GetAccountProperties(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to get purview account properties: %v", err)
		}

		resultJSON, err := json.MarshalIndent(properties, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal account properties to JSON: %v", err)
		}
		return string(resultJSON), nil
	})
}
