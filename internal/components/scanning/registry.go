package scanning

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Scanning-related tool registrations

// RegisterScanDataSourceTool registers the scan_data_source tool
func RegisterScanDataSourceTool() mcp.Tool {
	return mcp.NewTool(
		"scan_data_source",
		mcp.WithDescription("Initiate a scan on a Purview data source. The call is fire-and-forget: it returns the submitted run descriptor without waiting for completion."),
		mcp.WithTitleAnnotation("Scan Data Source"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithString("data_source_name",
			mcp.Description("Name of the registered data source to scan"),
			mcp.Required(),
		),
		mcp.WithString("scan_level",
			mcp.Description("Type of scan: Incremental or Full (default: Incremental)"),
		),
	)
}
