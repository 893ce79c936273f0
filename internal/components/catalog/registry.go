package catalog

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Catalog-related tool registrations

// RegisterDataCatalogSummaryTool registers the get_data_catalog_summary tool
func RegisterDataCatalogSummaryTool() mcp.Tool {
	return mcp.NewTool(
		"get_data_catalog_summary",
		mcp.WithDescription("Get a summary of the data catalog: total asset count, counts by entity type and counts by sensitivity label."),
		mcp.WithTitleAnnotation("Get Data Catalog Summary"),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// RegisterDataLineageTool registers the get_data_lineage tool
func RegisterDataLineageTool() mcp.Tool {
	return mcp.NewTool(
		"get_data_lineage",
		mcp.WithDescription("Get the upstream/downstream lineage graph for a cataloged entity, bounded by traversal depth."),
		mcp.WithTitleAnnotation("Get Data Lineage"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("entity_id",
			mcp.Description("GUID of the entity to retrieve lineage for"),
			mcp.Required(),
		),
		mcp.WithNumber("depth",
			mcp.Description("Depth of the lineage graph to retrieve (default: 3)"),
		),
	)
}
