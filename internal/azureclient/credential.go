// Package azureclient provides Azure credential resolution and the Purview
// client set used by the MCP server.
package azureclient

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/SecuringTheRealm/str-mcp-purview/internal/config"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/logger"
)

// ResolveCredential selects the credential used for all Purview clients.
// When tenant ID, client ID and client secret are all configured an
// explicit service-principal credential is used; otherwise the default
// chain (environment, workload identity, managed identity, CLI) applies.
func ResolveCredential(cfg *config.ConfigData) (azcore.TokenCredential, error) {
	if cfg.Purview.HasServicePrincipal() {
		logger.Debugf("Using client secret credential for tenant %s", cfg.Purview.TenantID)
		cred, err := azidentity.NewClientSecretCredential(
			cfg.Purview.TenantID,
			cfg.Purview.ClientID,
			cfg.Purview.ClientSecret,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create client secret credential: %v", err)
		}
		return cred, nil
	}

	logger.Debugf("Using default Azure credential chain")
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create credential: %v", err)
	}
	return cred, nil
}
