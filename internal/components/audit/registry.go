package audit

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Audit-related tool registrations

// RegisterAuditLogsTool registers the get_audit_logs tool
func RegisterAuditLogsTool() mcp.Tool {
	return mcp.NewTool(
		"get_audit_logs",
		mcp.WithDescription("Retrieve Purview audit logs for the specified time period. Timestamps are ISO 8601 (YYYY-MM-DDTHH:MM:SS); entries before start_time are never returned."),
		mcp.WithTitleAnnotation("Get Audit Logs"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("start_time",
			mcp.Description("Start time in ISO format (YYYY-MM-DDTHH:MM:SS)"),
			mcp.Required(),
		),
		mcp.WithString("end_time",
			mcp.Description("End time in ISO format (YYYY-MM-DDTHH:MM:SS), defaults to current time"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of log entries to return (default: 100)"),
		),
	)
}

// RegisterSensitivityLabelChangesTool registers the get_sensitivity_label_changes tool
func RegisterSensitivityLabelChangesTool() mcp.Tool {
	return mcp.NewTool(
		"get_sensitivity_label_changes",
		mcp.WithDescription("Get a report of sensitivity label changes in the specified time period, grouped by resource type."),
		mcp.WithTitleAnnotation("Get Sensitivity Label Changes"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("start_time",
			mcp.Description("Start time in ISO format (YYYY-MM-DDTHH:MM:SS)"),
			mcp.Required(),
		),
		mcp.WithString("end_time",
			mcp.Description("End time in ISO format (YYYY-MM-DDTHH:MM:SS), defaults to current time"),
		),
	)
}

// RegisterSecurityAlertsTool registers the get_security_alerts tool
func RegisterSecurityAlertsTool() mcp.Tool {
	return mcp.NewTool(
		"get_security_alerts",
		mcp.WithDescription("List Microsoft Defender for Cloud security alerts for the configured subscription."),
		mcp.WithTitleAnnotation("Get Security Alerts"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of alerts to return (default: 50)"),
		),
	)
}
