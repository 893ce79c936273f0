// Package config provides configuration handling for the Purview MCP server.
package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/SecuringTheRealm/str-mcp-purview/internal/logger"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/telemetry"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/version"
)

// PurviewConfig holds the Azure Purview connection settings. It is populated
// once at startup from the environment and treated as read-only afterwards.
type PurviewConfig struct {
	// Purview account name, e.g. "contoso-purview"
	AccountName string
	// Data-plane endpoint, e.g. "https://contoso-purview.purview.azure.com"
	Endpoint string
	// Azure subscription hosting the account
	SubscriptionID string
	// Resource group containing the account
	ResourceGroup string
	// Service principal credentials (optional; DefaultAzureCredential is
	// used when any of the three is missing)
	TenantID     string
	ClientID     string
	ClientSecret string
}

// HasServicePrincipal reports whether explicit client-secret credentials
// are fully specified.
func (p *PurviewConfig) HasServicePrincipal() bool {
	return p.TenantID != "" && p.ClientID != "" && p.ClientSecret != ""
}

// ConfigData holds the global configuration.
type ConfigData struct {
	// Purview connection settings
	Purview PurviewConfig

	// Outbound API call timeout in seconds
	Timeout int

	// Command-line specific options
	Transport string
	Host      string
	Port      int

	// Map of enabled components (empty means all components are enabled)
	EnabledComponents map[string]bool

	// Verbose logging
	Verbose bool

	// OTLP endpoint for OpenTelemetry traces
	OTLPEndpoint string

	// Telemetry service
	TelemetryService *telemetry.Service
}

// NewConfig creates and returns a new configuration instance.
func NewConfig() *ConfigData {
	return &ConfigData{
		Timeout:           60,
		Transport:         "stdio",
		Host:              "127.0.0.1",
		Port:              8000,
		EnabledComponents: make(map[string]bool),
	}
}

// ParseFlags parses command line arguments and updates the configuration.
func (cfg *ConfigData) ParseFlags() {
	// Server configuration
	flag.StringVar(&cfg.Transport, "transport", "stdio", "Transport mechanism to use (stdio, sse or streamable-http)")
	flag.StringVar(&cfg.Host, "host", "127.0.0.1", "Host to listen for the server (only used with transport sse or streamable-http)")
	flag.IntVar(&cfg.Port, "port", 8000, "Port to listen for the server (only used with transport sse or streamable-http)")
	flag.IntVar(&cfg.Timeout, "timeout", 60, "Timeout for Purview API calls in seconds, default is 60s")

	// Component settings
	components := flag.String("components", "",
		"Comma-separated list of components to enable (audit, scanning, catalog, account). Empty enables all components.")

	// Logging settings
	flag.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose logging")

	// OTLP settings
	flag.StringVar(&cfg.OTLPEndpoint, "otlp-endpoint", "", "OTLP endpoint for OpenTelemetry traces (e.g. localhost:4317)")

	// Custom help handling
	var showHelp bool
	flag.BoolVarP(&showHelp, "help", "h", false, "Show help message")

	// Version flag
	showVersion := flag.Bool("version", false, "Show version information and exit")

	// Parse flags and handle errors properly
	err := flag.CommandLine.Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("\nUsage of %s:\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Handle help manually with proper exit code
	if showHelp {
		fmt.Printf("Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(0)
	}

	// Handle version flag
	if *showVersion {
		cfg.PrintVersion()
		os.Exit(0)
	}

	// Parse enabled components
	if *components != "" {
		for _, comp := range strings.Split(*components, ",") {
			if name := strings.TrimSpace(strings.ToLower(comp)); name != "" {
				cfg.EnabledComponents[name] = true
			}
		}
	}

	// Load Purview connection settings from environment variables
	cfg.LoadPurviewFromEnv()

	logger.SetVerbose(cfg.Verbose)
}

// LoadPurviewFromEnv loads Purview connection settings from environment
// variables. The endpoint is derived from the account name when not set
// explicitly.
func (cfg *ConfigData) LoadPurviewFromEnv() {
	cfg.Purview = PurviewConfig{
		AccountName:    os.Getenv("PURVIEW_ACCOUNT_NAME"),
		Endpoint:       os.Getenv("PURVIEW_ENDPOINT"),
		SubscriptionID: os.Getenv("AZURE_SUBSCRIPTION_ID"),
		ResourceGroup:  os.Getenv("AZURE_RESOURCE_GROUP"),
		TenantID:       os.Getenv("AZURE_TENANT_ID"),
		ClientID:       os.Getenv("AZURE_CLIENT_ID"),
		ClientSecret:   os.Getenv("AZURE_CLIENT_SECRET"),
	}

	if cfg.Purview.Endpoint == "" && cfg.Purview.AccountName != "" {
		cfg.Purview.Endpoint = fmt.Sprintf("https://%s.purview.azure.com", cfg.Purview.AccountName)
	}
	cfg.Purview.Endpoint = strings.TrimSuffix(cfg.Purview.Endpoint, "/")
}

// IsComponentEnabled checks whether the named component is enabled. An
// empty component map enables everything.
func (cfg *ConfigData) IsComponentEnabled(name string) bool {
	if len(cfg.EnabledComponents) == 0 {
		return true
	}
	return cfg.EnabledComponents[strings.TrimSpace(strings.ToLower(name))]
}

// APITimeout returns the outbound call timeout as a duration.
func (cfg *ConfigData) APITimeout() time.Duration {
	return time.Duration(cfg.Timeout) * time.Second
}

// InitializeTelemetry initializes the telemetry service.
func (cfg *ConfigData) InitializeTelemetry(ctx context.Context, serviceName, serviceVersion string) {
	telemetryConfig := telemetry.NewConfig(serviceName, serviceVersion)

	// Override OTLP endpoint from CLI if provided
	if cfg.OTLPEndpoint != "" {
		telemetryConfig.SetOTLPEndpoint(cfg.OTLPEndpoint)
	}

	cfg.TelemetryService = telemetry.NewService(telemetryConfig)
	if err := cfg.TelemetryService.Initialize(ctx); err != nil {
		logger.Errorf("Failed to initialize telemetry: %v", err)
		// Continue without telemetry - this is not a fatal error
	}

	cfg.TelemetryService.TrackServiceStartup(ctx)
}

// PrintVersion prints version information.
func (cfg *ConfigData) PrintVersion() {
	versionInfo := version.GetVersionInfo()
	fmt.Printf("purview-mcp version %s\n", versionInfo["version"])
	fmt.Printf("Git commit: %s\n", versionInfo["gitCommit"])
	fmt.Printf("Git tree state: %s\n", versionInfo["gitTreeState"])
	fmt.Printf("Go version: %s\n", versionInfo["goVersion"])
	fmt.Printf("Platform: %s\n", versionInfo["platform"])
}
