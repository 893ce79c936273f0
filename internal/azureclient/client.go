package azureclient

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/purview/armpurview"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/security/armsecurity"

	"github.com/SecuringTheRealm/str-mcp-purview/internal/config"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/purview"
)

// PurviewClients holds one client handle per Purview sub-API. The set is
// built once at startup and is read-only for the lifetime of the server.
type PurviewClients struct {
	Catalog    *purview.CatalogClient
	Scanning   *purview.ScanningClient
	Account    *purview.AccountClient
	Management *armpurview.AccountsClient
	Security   *armsecurity.AlertsClient

	credential azcore.TokenCredential
}

// NewPurviewClients resolves a credential and constructs the full client
// set for the configured account.
func NewPurviewClients(cfg *config.ConfigData) (*PurviewClients, error) {
	if cfg.Purview.Endpoint == "" {
		return nil, fmt.Errorf("purview endpoint is not configured (set PURVIEW_ENDPOINT or PURVIEW_ACCOUNT_NAME)")
	}

	credential, err := ResolveCredential(cfg)
	if err != nil {
		return nil, err
	}

	catalogClient, err := purview.NewCatalogClient(cfg.Purview.Endpoint, credential)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog client: %v", err)
	}

	scanningClient, err := purview.NewScanningClient(cfg.Purview.Endpoint, credential)
	if err != nil {
		return nil, fmt.Errorf("failed to create scanning client: %v", err)
	}

	accountClient, err := purview.NewAccountClient(cfg.Purview.Endpoint, credential)
	if err != nil {
		return nil, fmt.Errorf("failed to create account client: %v", err)
	}

	clients := &PurviewClients{
		Catalog:    catalogClient,
		Scanning:   scanningClient,
		Account:    accountClient,
		credential: credential,
	}

	// Control-plane clients need a subscription; without one the data-plane
	// tools still work.
	if cfg.Purview.SubscriptionID != "" {
		managementClient, err := armpurview.NewAccountsClient(cfg.Purview.SubscriptionID, credential, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create management client for subscription %s: %v", cfg.Purview.SubscriptionID, err)
		}
		clients.Management = managementClient

		securityClient, err := armsecurity.NewAlertsClient(cfg.Purview.SubscriptionID, credential, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create security client for subscription %s: %v", cfg.Purview.SubscriptionID, err)
		}
		clients.Security = securityClient
	}

	return clients, nil
}

// Credential returns the resolved token credential shared by all clients.
func (c *PurviewClients) Credential() azcore.TokenCredential {
	return c.credential
}
