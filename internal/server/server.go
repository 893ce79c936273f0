// Package server assembles the Purview MCP server from its components.
package server

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/security/armsecurity"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/SecuringTheRealm/str-mcp-purview/internal/azureclient"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/components"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/components/account"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/components/audit"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/components/catalog"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/components/scanning"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/config"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/logger"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/resources"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/tools"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/version"
)

// Service represents the Purview MCP service.
type Service struct {
	cfg       *config.ConfigData
	mcpServer *server.MCPServer
	clients   *azureclient.PurviewClients
}

// NewService creates a new service instance.
func NewService(cfg *config.ConfigData) *Service {
	return &Service{
		cfg: cfg,
	}
}

// Initialize initializes the service: validates the component selection,
// builds the Azure clients, and registers all tools and resources.
func (s *Service) Initialize() error {
	var enabled []string
	for name := range s.cfg.EnabledComponents {
		enabled = append(enabled, name)
	}
	if _, invalid, err := components.ValidateComponents(enabled); err != nil {
		return fmt.Errorf("invalid component configuration (%v): %v", invalid, err)
	}

	s.mcpServer = server.NewMCPServer(
		"Purview MCP",
		version.GetVersion(),
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithLogging(),
	)

	// Client construction failures are not fatal: the server stays up and
	// every tool reports an initialization error instead.
	clients, err := azureclient.NewPurviewClients(s.cfg)
	if err != nil {
		logger.Errorf("Failed to initialize Purview clients: %v", err)
	} else {
		s.clients = clients
	}

	s.registerComponents()
	s.registerResources()

	return nil
}

// registerComponents registers the tools of every enabled component. Client
// handles are passed as explicitly typed nil interfaces when unavailable so
// that handlers can detect the missing client.
func (s *Service) registerComponents() {
	if s.cfg.IsComponentEnabled("audit") {
		var auditAPI audit.AuditLogClient
		if s.clients != nil && s.clients.Catalog != nil {
			auditAPI = s.clients.Catalog
		}
		s.addTool(audit.RegisterAuditLogsTool(), audit.GetAuditLogsHandler(auditAPI, s.cfg))
		s.addTool(audit.RegisterSensitivityLabelChangesTool(), audit.GetSensitivityLabelChangesHandler(auditAPI, s.cfg))

		var securityAPI *armsecurity.AlertsClient
		if s.clients != nil {
			securityAPI = s.clients.Security
		}
		s.addTool(audit.RegisterSecurityAlertsTool(), audit.GetSecurityAlertsHandler(securityAPI, s.cfg))
		logger.Infof("Registered audit component tools")
	}

	if s.cfg.IsComponentEnabled("scanning") {
		var scanAPI scanning.ScanClient
		if s.clients != nil && s.clients.Scanning != nil {
			scanAPI = s.clients.Scanning
		}
		s.addTool(scanning.RegisterScanDataSourceTool(), scanning.GetScanDataSourceHandler(scanAPI, s.cfg))
		logger.Infof("Registered scanning component tools")
	}

	if s.cfg.IsComponentEnabled("catalog") {
		var catalogAPI catalog.CatalogClient
		if s.clients != nil && s.clients.Catalog != nil {
			catalogAPI = s.clients.Catalog
		}
		s.addTool(catalog.RegisterDataCatalogSummaryTool(), catalog.GetDataCatalogSummaryHandler(catalogAPI, s.cfg))
		s.addTool(catalog.RegisterDataLineageTool(), catalog.GetDataLineageHandler(catalogAPI, s.cfg))
		logger.Infof("Registered catalog component tools")
	}

	if s.cfg.IsComponentEnabled("account") {
		var accountsAPI account.AccountsAPI
		if s.clients != nil && s.clients.Management != nil {
			accountsAPI = s.clients.Management
		}
		var propertiesAPI account.AccountPropertiesAPI
		if s.clients != nil && s.clients.Account != nil {
			propertiesAPI = s.clients.Account
		}
		s.addTool(account.RegisterAccountInfoTool(), account.GetAccountInfoHandler(accountsAPI, propertiesAPI, s.cfg))
		logger.Infof("Registered account component tools")
	}
}

// registerResources registers the informational documents.
func (s *Service) registerResources() {
	var catalogAPI resources.CatalogClient
	if s.clients != nil && s.clients.Catalog != nil {
		catalogAPI = s.clients.Catalog
	}
	provider := resources.NewProvider(s.cfg, catalogAPI)

	s.mcpServer.AddResource(resources.RegisterOverviewResource(), provider.Handler())
	s.mcpServer.AddResource(resources.RegisterEmailSensitivityGuideResource(), provider.Handler())
}

func (s *Service) addTool(tool mcp.Tool, handler tools.ResourceHandler) {
	s.mcpServer.AddTool(tool, tools.CreateResourceHandler(handler, s.cfg))
}

// Run starts the service with the configured transport.
func (s *Service) Run() error {
	logger.Infof("Purview MCP version: %s", version.GetVersion())

	// Start the server
	switch s.cfg.Transport {
	case "stdio":
		logger.Infof("Listening for requests on STDIO...")
		return server.ServeStdio(s.mcpServer)
	case "sse":
		addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
		sse := server.NewSSEServer(s.mcpServer)
		logger.Infof("SSE server listening on %s", addr)
		return sse.Start(addr)
	case "streamable-http":
		addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
		streamableServer := server.NewStreamableHTTPServer(s.mcpServer)
		logger.Infof("Streamable HTTP server listening on %s", addr)
		return streamableServer.Start(addr)
	default:
		return fmt.Errorf("invalid transport type: %s (must be 'stdio', 'sse' or 'streamable-http')", s.cfg.Transport)
	}
}
