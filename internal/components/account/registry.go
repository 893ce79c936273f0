package account

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Account-related tool registrations

// RegisterAccountInfoTool registers the get_account_info tool
func RegisterAccountInfoTool() mcp.Tool {
	return mcp.NewTool(
		"get_account_info",
		mcp.WithDescription("Get the Azure Resource Manager view of the configured Purview account, including provisioning state, endpoints, and managed resources."),
		mcp.WithTitleAnnotation("Get Purview Account Info"),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}
