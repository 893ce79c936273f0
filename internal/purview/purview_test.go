package purview_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SecuringTheRealm/str-mcp-purview/internal/azureclient"
	"github.com/SecuringTheRealm/str-mcp-purview/internal/purview"
)

func TestIsValidScanLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected bool
	}{
		{"valid incremental", purview.ScanLevelIncremental, true},
		{"valid full", purview.ScanLevelFull, true},
		{"invalid empty", "", false},
		{"invalid unknown", "Deep", false},
		{"invalid case", "incremental", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := purview.IsValidScanLevel(tt.level); got != tt.expected {
				t.Errorf("IsValidScanLevel(%q) = %v, want %v", tt.level, got, tt.expected)
			}
		})
	}
}

func TestNormalizeLineageAddsMissingEntityNode(t *testing.T) {
	graph := &purview.LineageGraph{
		EntityID: "entity-1",
		Nodes: []purview.LineageNode{
			{ID: "node-a", Name: "RawData", Type: "Blob"},
		},
		Edges: []purview.LineageEdge{
			{Source: "node-a", Target: "entity-1", Label: "flow"},
		},
	}

	normalized := purview.NormalizeLineage(graph)

	ids := make(map[string]bool)
	for _, node := range normalized.Nodes {
		ids[node.ID] = true
	}
	assert.True(t, ids["entity-1"], "requested entity must be present in the node set")
	assert.Len(t, normalized.Edges, 1)
}

func TestNormalizeLineageDropsDanglingEdges(t *testing.T) {
	graph := &purview.LineageGraph{
		EntityID: "entity-1",
		Nodes: []purview.LineageNode{
			{ID: "entity-1", Name: "SalesData", Type: "Table"},
			{ID: "node-a", Name: "RawData", Type: "Blob"},
		},
		Edges: []purview.LineageEdge{
			{Source: "node-a", Target: "entity-1", Label: "flow"},
			{Source: "ghost", Target: "entity-1", Label: "flow"},
			{Source: "entity-1", Target: "ghost", Label: "flow"},
		},
	}

	normalized := purview.NormalizeLineage(graph)

	require.Len(t, normalized.Edges, 1)
	assert.Equal(t, "node-a", normalized.Edges[0].Source)
	assert.Equal(t, "entity-1", normalized.Edges[0].Target)
}

func TestQueryAuditLogs(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"value": []purview.AuditEntry{
				{
					Timestamp:     "2025-04-13T10:30:00Z",
					UserPrincipal: "user@example.com",
					Action:        "ViewAsset",
					ResourceType:  "Table",
					ResourceName:  "CustomersTable",
				},
			},
		})
	}))
	defer srv.Close()

	client, err := purview.NewCatalogClient(srv.URL, azureclient.NewStaticTokenCredential("test-token"))
	require.NoError(t, err)

	start := time.Date(2025, 4, 13, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	entries, err := client.QueryAuditLogs(context.Background(), purview.AuditQuery{
		StartTime: start,
		EndTime:   end,
		Limit:     100,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "2025-04-13T00:00:00Z", gotBody["startTime"])
	assert.Equal(t, float64(100), gotBody["limit"])
	require.Len(t, entries, 1)
	assert.Equal(t, "ViewAsset", entries[0].Action)
}

func TestGetAssetStatistics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"@search.count": 1250,
			"@search.facets": {
				"entityType": [
					{"value": "azure_sql_table", "count": 450},
					{"value": "azure_blob_path", "count": 800}
				],
				"label": [
					{"value": "Confidential", "count": 300},
					{"value": "Public", "count": 500}
				]
			}
		}`))
	}))
	defer srv.Close()

	client, err := purview.NewCatalogClient(srv.URL, azureclient.NewStaticTokenCredential("test-token"))
	require.NoError(t, err)

	summary, err := client.GetAssetStatistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1250, summary.TotalAssets)
	assert.Equal(t, 450, summary.ByType["azure_sql_table"])
	assert.Equal(t, 300, summary.SensitivityDistribution["Confidential"])
	assert.NotEmpty(t, summary.LastUpdated)
}

func TestGetLineage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"baseEntityGuid": "entity-1",
			"guidEntityMap": {
				"entity-1": {"typeName": "azure_sql_table", "attributes": {"name": "SalesData"}},
				"node-a": {"typeName": "azure_blob_path", "attributes": {"qualifiedName": "raw/sales.csv"}}
			},
			"relations": [
				{"fromEntityId": "node-a", "toEntityId": "entity-1"},
				{"fromEntityId": "entity-1", "toEntityId": "missing-node"}
			]
		}`))
	}))
	defer srv.Close()

	client, err := purview.NewCatalogClient(srv.URL, azureclient.NewStaticTokenCredential("test-token"))
	require.NoError(t, err)

	graph, err := client.GetLineage(context.Background(), "entity-1", 3)
	require.NoError(t, err)

	assert.Equal(t, "entity-1", graph.EntityID)
	assert.Equal(t, "SalesData", graph.EntityName)
	assert.Equal(t, "azure_sql_table", graph.EntityType)

	ids := make(map[string]bool)
	for _, node := range graph.Nodes {
		ids[node.ID] = true
	}
	assert.True(t, ids["entity-1"])
	assert.True(t, ids["node-a"])

	// The edge to the unknown node must have been dropped.
	require.Len(t, graph.Edges, 1)
	assert.Equal(t, "node-a", graph.Edges[0].Source)
	assert.Equal(t, "entity-1", graph.Edges[0].Target)
}

func TestRunScan(t *testing.T) {
	var gotMethod, gotQueryLevel string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQueryLevel = r.URL.Query().Get("scanLevel")
		_, _ = w.Write([]byte(`{"id": "run-42", "status": "Queued"}`))
	}))
	defer srv.Close()

	client, err := purview.NewScanningClient(srv.URL, azureclient.NewStaticTokenCredential("test-token"))
	require.NoError(t, err)

	run, err := client.RunScan(context.Background(), "sales-lake", purview.ScanLevelFull)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "Full", gotQueryLevel)
	assert.Equal(t, "run-42", run.ID)
	assert.Equal(t, "Queued", run.Status)
	assert.Equal(t, "sales-lake", run.DataSource)
	assert.Equal(t, "Full", run.ScanLevel)
	assert.NotEmpty(t, run.StartTime)
}

func TestRunScanValidation(t *testing.T) {
	client, err := purview.NewScanningClient("https://example.purview.azure.com", azureclient.NewStaticTokenCredential("test-token"))
	require.NoError(t, err)

	_, err = client.RunScan(context.Background(), "", purview.ScanLevelFull)
	assert.Error(t, err)

	_, err = client.RunScan(context.Background(), "sales-lake", "Deep")
	assert.Error(t, err)
}

func TestGetAccountProperties(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/account", r.URL.Path)
		_, _ = w.Write([]byte(`{"name": "contoso-purview", "friendlyName": "Contoso Governance"}`))
	}))
	defer srv.Close()

	client, err := purview.NewAccountClient(srv.URL, azureclient.NewStaticTokenCredential("test-token"))
	require.NoError(t, err)

	account, err := client.GetAccountProperties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "contoso-purview", account["name"])
}

func TestClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "forbidden"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	client, err := purview.NewCatalogClient(srv.URL, azureclient.NewStaticTokenCredential("test-token"))
	require.NoError(t, err)

	_, err = client.GetAssetStatistics(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
