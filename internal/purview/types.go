package purview

import (
	"time"
)

// ActionModifySensitivityLabel is the audit action recorded when a
// sensitivity label is changed on an asset.
const ActionModifySensitivityLabel = "ModifySensitivityLabel"

// AuditEntry represents a single Purview audit log entry.
type AuditEntry struct {
	Timestamp     string `json:"timestamp"`
	UserPrincipal string `json:"userPrincipal"`
	Action        string `json:"action"`
	ResourceType  string `json:"resourceType"`
	ResourceName  string `json:"resourceName"`
	OldLabel      string `json:"oldLabel,omitempty"`
	NewLabel      string `json:"newLabel,omitempty"`
}

// AuditQuery describes a time-windowed audit log query.
type AuditQuery struct {
	StartTime time.Time
	EndTime   time.Time
	Limit     int
}

// TimePeriod describes the window a report covers.
type TimePeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// LabelChangeReport groups sensitivity label changes by resource type.
type LabelChangeReport struct {
	TotalChanges      int                     `json:"total_changes"`
	ChangesByResource map[string][]AuditEntry `json:"changes_by_resource"`
	TimePeriod        TimePeriod              `json:"time_period"`
}

// ScanRun describes a triggered scan job.
type ScanRun struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	DataSource string `json:"dataSource"`
	ScanLevel  string `json:"scanLevel"`
	StartTime  string `json:"startTime"`
}

// CatalogSummary holds aggregate statistics for the data catalog.
type CatalogSummary struct {
	TotalAssets             int            `json:"total_assets"`
	ByType                  map[string]int `json:"by_type"`
	SensitivityDistribution map[string]int `json:"sensitivity_distribution"`
	LastUpdated             string         `json:"last_updated"`
}

// LineageNode is a single entity in a lineage graph.
type LineageNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// LineageEdge is a directed data-flow relationship between two nodes.
type LineageEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

// LineageGraph is the upstream/downstream lineage of one entity. The node
// set always contains the requested entity, and every edge references only
// nodes present in the node set.
type LineageGraph struct {
	EntityID   string        `json:"entity_id"`
	EntityName string        `json:"entity_name"`
	EntityType string        `json:"entity_type"`
	Nodes      []LineageNode `json:"nodes"`
	Edges      []LineageEdge `json:"edges"`
}
