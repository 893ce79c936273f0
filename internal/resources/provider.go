// Package resources serves the informational documents the Purview MCP
// server exposes alongside its tools.
package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/SecuringTheRealm/str-mcp-purview/internal/config"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/purview"
)

const (
	// OverviewURI addresses the account overview document.
	OverviewURI = "purview://overview"
	// EmailSensitivityGuideURI addresses the sensitivity label guide.
	EmailSensitivityGuideURI = "purview://email-sensitivity-guide"

	uriScheme = "purview://"
)

// CatalogClient is the subset of the catalog client the overview needs.
type CatalogClient interface {
	GetAssetStatistics(ctx context.Context) (*purview.CatalogSummary, error)
}

// Provider resolves resource URIs to document contents.
type Provider struct {
	cfg     *config.ConfigData
	catalog CatalogClient
}

// NewProvider creates a resource provider. The catalog client may be nil, in
// which case the overview reports that live statistics are unavailable.
func NewProvider(cfg *config.ConfigData, catalog CatalogClient) *Provider {
	return &Provider{cfg: cfg, catalog: catalog}
}

// RegisterOverviewResource returns the resource descriptor for the account
// overview document.
func RegisterOverviewResource() mcp.Resource {
	return mcp.NewResource(
		OverviewURI,
		"Purview Account Overview",
		mcp.WithResourceDescription("Overview of the configured Purview account, its data estate, and the available tools"),
		mcp.WithMIMEType("text/markdown"),
	)
}

// RegisterEmailSensitivityGuideResource returns the resource descriptor for
// the email sensitivity label guide.
func RegisterEmailSensitivityGuideResource() mcp.Resource {
	return mcp.NewResource(
		EmailSensitivityGuideURI,
		"Email Sensitivity Label Guide",
		mcp.WithResourceDescription("Guidance on email sensitivity labels and how to monitor changes to them"),
		mcp.WithMIMEType("text/markdown"),
	)
}

// Read resolves a resource URI to its markdown content. Unknown paths and
// non-purview schemes are rejected.
func (p *Provider) Read(ctx context.Context, uri string) (string, error) {
	if !strings.HasPrefix(uri, uriScheme) {
		return "", fmt.Errorf("unsupported scheme in resource URI: %s", uri)
	}

	switch uri {
	case OverviewURI:
		return p.overview(ctx), nil
	case EmailSensitivityGuideURI:
		return emailSensitivityGuide, nil
	default:
		return "", fmt.Errorf("resource not found: %s", uri)
	}
}

// Handler adapts Read to the mcp-go resource handler signature, returning the
// document as a single text content item.
func (p *Provider) Handler() func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		content, err := p.Read(ctx, req.Params.URI)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     content,
			},
		}, nil
	}
}

func (p *Provider) overview(ctx context.Context) string {
	summary := "Catalog statistics unavailable: purview catalog client not initialized correctly"
	if p.catalog != nil {
		stats, err := p.catalog.GetAssetStatistics(ctx)
		if err != nil {
			summary = fmt.Sprintf("Catalog statistics unavailable: %v", err)
		} else if encoded, err := json.MarshalIndent(stats, "", "  "); err == nil {
			summary = "```json\n" + string(encoded) + "\n```"
		}
	}

	var b strings.Builder
	b.WriteString("# Microsoft Purview Overview\n\n")
	b.WriteString("## Account Information\n")
	fmt.Fprintf(&b, "- **Account Name:** %s\n", p.cfg.Purview.AccountName)
	fmt.Fprintf(&b, "- **Endpoint:** %s\n", p.cfg.Purview.Endpoint)
	fmt.Fprintf(&b, "- **Subscription ID:** %s\n", p.cfg.Purview.SubscriptionID)
	fmt.Fprintf(&b, "- **Resource Group:** %s\n", p.cfg.Purview.ResourceGroup)
	b.WriteString("\n## Data Estate Summary\n")
	b.WriteString(summary)
	b.WriteString("\n\n## Recent Activity\n")
	b.WriteString("Recent audit logs can be fetched using the `get_audit_logs` tool.\n")
	b.WriteString("\n## Available Tools\n")
	b.WriteString("- `get_audit_logs`: Retrieve audit logs for a specified time period\n")
	b.WriteString("- `get_sensitivity_label_changes`: Get a report of sensitivity label changes\n")
	b.WriteString("- `scan_data_source`: Trigger a scan on a specific data source\n")
	b.WriteString("- `get_data_catalog_summary`: Get summary statistics for the data catalog\n")
	b.WriteString("- `get_data_lineage`: Get lineage information for a specific entity\n")
	return b.String()
}

const emailSensitivityGuide = `# Email Sensitivity Label Guide

## Overview
Sensitivity labels help protect sensitive content from unauthorized access.
When applied to emails, these labels can enforce encryption, watermarking,
and other protection measures.

## Common Labels
1. **Public** - Information freely available outside the organization
2. **General** - Non-sensitive internal information
3. **Confidential** - Sensitive information, limited distribution
4. **Highly Confidential** - Extremely sensitive information, strictly controlled

## Monitoring Label Changes
To monitor changes to sensitivity labels:
- Use the ` + "`get_sensitivity_label_changes`" + ` tool to get reports on label changes
- Investigate unexpected changes to ensure compliance
- Review audit logs regularly using the ` + "`get_audit_logs`" + ` tool

## Best Practices
- Regularly audit sensitivity label usage
- Ensure labels are applied consistently
- Train users on proper label application
- Monitor for potential misuse or data leakage
`
