// Package audit provides audit log, sensitivity label and security alert
// tools for the Purview MCP server.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/security/armsecurity"

	"github.com/SecuringTheRealm/str-mcp-purview/internal/config"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/logger"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/purview"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/tools"
)

// labelChangeQueryLimit is the internal audit query limit used when
// building a sensitivity label change report.
const labelChangeQueryLimit = 1000

// defaultAuditLogLimit bounds get_audit_logs when no limit is given.
const defaultAuditLogLimit = 100

// AuditLogClient is the subset of the catalog client used by the audit
// tools.
type AuditLogClient interface {
	QueryAuditLogs(ctx context.Context, query purview.AuditQuery) ([]purview.AuditEntry, error)
}

// ParseISOTime parses an ISO 8601 timestamp with or without a timezone
// suffix. Zone-less timestamps are interpreted as UTC.
func ParseISOTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02T15:04:05", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ISO timestamp %q", value)
	}
	return t.UTC(), nil
}

// parseTimeWindow extracts start_time/end_time from the params, defaulting
// end_time to the current time.
func parseTimeWindow(params map[string]interface{}) (start, end time.Time, err error) {
	startParam, ok := params["start_time"].(string)
	if !ok || startParam == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("missing or invalid start_time parameter")
	}
	start, err = ParseISOTime(startParam)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	end = time.Now().UTC()
	if endParam, ok := params["end_time"].(string); ok && endParam != "" {
		end, err = ParseISOTime(endParam)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end_time %s precedes start_time %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	return start, end, nil
}

// queryWindow fetches audit entries for a window and enforces the window
// and limit locally: timestamps are normalized to RFC3339 UTC, entries
// outside [start, end] are dropped, and at most limit entries survive.
// Entries whose timestamps cannot be parsed are dropped rather than
// returned with an unresolved stamp.
func queryWindow(ctx context.Context, client AuditLogClient, start, end time.Time, limit int) ([]purview.AuditEntry, error) {
	entries, err := client.QueryAuditLogs(ctx, purview.AuditQuery{
		StartTime: start,
		EndTime:   end,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve audit logs: %v", err)
	}

	filtered := make([]purview.AuditEntry, 0, len(entries))
	for _, entry := range entries {
		ts, err := ParseISOTime(entry.Timestamp)
		if err != nil {
			logger.Warnf("Dropping audit entry with unparseable timestamp %q", entry.Timestamp)
			continue
		}
		if ts.Before(start) || ts.After(end) {
			continue
		}
		entry.Timestamp = ts.UTC().Format(time.RFC3339)
		filtered = append(filtered, entry)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp < filtered[j].Timestamp
	})

	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}

	return filtered, nil
}

// GetAuditLogsHandler returns a handler for the get_audit_logs tool.
func GetAuditLogsHandler(client AuditLogClient, cfg *config.ConfigData) tools.ResourceHandler {
	return tools.ResourceHandlerFunc(func(ctx context.Context, params map[string]interface{}, _ *config.ConfigData) (string, error) {
		if client == nil {
			return "", fmt.Errorf("purview catalog client not initialized correctly")
		}

		start, end, err := parseTimeWindow(params)
		if err != nil {
			return "", err
		}

		limit := defaultAuditLogLimit
		if limitParam, ok := params["limit"].(float64); ok && limitParam > 0 {
			limit = int(limitParam)
		}

		logger.Debugf("Fetching audit logs from %s to %s (limit %d)",
			start.Format(time.RFC3339), end.Format(time.RFC3339), limit)

		entries, err := queryWindow(ctx, client, start, end, limit)
		if err != nil {
			return "", err
		}

		resultJSON, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal audit logs to JSON: %v", err)
		}

		return string(resultJSON), nil
	})
}

// GetSensitivityLabelChangesHandler returns a handler for the
// get_sensitivity_label_changes tool.
func GetSensitivityLabelChangesHandler(client AuditLogClient, cfg *config.ConfigData) tools.ResourceHandler {
	return tools.ResourceHandlerFunc(func(ctx context.Context, params map[string]interface{}, _ *config.ConfigData) (string, error) {
		if client == nil {
			return "", fmt.Errorf("purview catalog client not initialized correctly")
		}

		start, end, err := parseTimeWindow(params)
		if err != nil {
			return "", err
		}

		entries, err := queryWindow(ctx, client, start, end, labelChangeQueryLimit)
		if err != nil {
			return "", err
		}

		report := BuildLabelChangeReport(entries, start, end)

		resultJSON, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal label change report to JSON: %v", err)
		}

		return string(resultJSON), nil
	})
}

// BuildLabelChangeReport filters entries down to sensitivity label changes
// and groups them by resource type. Every filtered entry lands in exactly
// one group.
func BuildLabelChangeReport(entries []purview.AuditEntry, start, end time.Time) *purview.LabelChangeReport {
	report := &purview.LabelChangeReport{
		ChangesByResource: make(map[string][]purview.AuditEntry),
		TimePeriod: purview.TimePeriod{
			Start: start.UTC().Format(time.RFC3339),
			End:   end.UTC().Format(time.RFC3339),
		},
	}

	for _, entry := range entries {
		if entry.Action != purview.ActionModifySensitivityLabel {
			continue
		}
		resourceType := entry.ResourceType
		if resourceType == "" {
			resourceType = "Unknown"
		}
		report.ChangesByResource[resourceType] = append(report.ChangesByResource[resourceType], entry)
		report.TotalChanges++
	}

	return report
}

// GetSecurityAlertsHandler returns a handler for the get_security_alerts
// tool.
func GetSecurityAlertsHandler(client *armsecurity.AlertsClient, cfg *config.ConfigData) tools.ResourceHandler {
	return tools.ResourceHandlerFunc(func(ctx context.Context, params map[string]interface{}, _ *config.ConfigData) (string, error) {
		if client == nil {
			return "", fmt.Errorf("purview security client not initialized correctly")
		}

		limit := 50
		if limitParam, ok := params["limit"].(float64); ok && limitParam > 0 {
			limit = int(limitParam)
		}

		type alertSummary struct {
			Name          string `json:"name"`
			DisplayName   string `json:"displayName,omitempty"`
			Severity      string `json:"severity,omitempty"`
			Status        string `json:"status,omitempty"`
			TimeGenerated string `json:"timeGenerated,omitempty"`
		}

		var alerts []alertSummary
		pager := client.NewListPager(nil)

		for pager.More() && len(alerts) < limit {
			page, err := pager.NextPage(ctx)
			if err != nil {
				return "", fmt.Errorf("failed to get next page of security alerts: %v", err)
			}

			for _, alert := range page.Value {
				if alert == nil || len(alerts) >= limit {
					continue
				}
				summary := alertSummary{}
				if alert.Name != nil {
					summary.Name = *alert.Name
				}
				if props := alert.Properties; props != nil {
					if props.AlertDisplayName != nil {
						summary.DisplayName = *props.AlertDisplayName
					}
					if props.Severity != nil {
						summary.Severity = string(*props.Severity)
					}
					if props.Status != nil {
						summary.Status = string(*props.Status)
					}
					if props.TimeGeneratedUTC != nil {
						summary.TimeGenerated = props.TimeGeneratedUTC.UTC().Format(time.RFC3339)
					}
				}
				alerts = append(alerts, summary)
			}
		}

		resultJSON, err := json.MarshalIndent(alerts, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal security alerts to JSON: %v", err)
		}

		return string(resultJSON), nil
	})
}
