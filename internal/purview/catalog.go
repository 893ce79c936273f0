package purview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// CatalogClient talks to the Purview catalog data-plane APIs: audit log
// queries, discovery search and Atlas lineage.
type CatalogClient struct {
	endpoint   string
	credential azcore.TokenCredential
	httpClient *http.Client
}

// NewCatalogClient creates a new catalog client for the given account
// endpoint.
func NewCatalogClient(endpoint string, credential azcore.TokenCredential) (*CatalogClient, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint cannot be empty")
	}

	return &CatalogClient{
		endpoint:   endpoint,
		credential: credential,
		httpClient: newHTTPClient(),
	}, nil
}

// QueryAuditLogs retrieves audit log entries for the given time window,
// bounded by query.Limit.
func (c *CatalogClient) QueryAuditLogs(ctx context.Context, query AuditQuery) ([]AuditEntry, error) {
	apiURL := fmt.Sprintf("%s/audit/api/v1/query", c.endpoint)

	params := url.Values{}
	params.Add("api-version", auditAPIVersion)
	apiURL += "?" + params.Encode()

	requestBody := struct {
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
		Limit     int    `json:"limit"`
	}{
		StartTime: query.StartTime.UTC().Format(time.RFC3339),
		EndTime:   query.EndTime.UTC().Format(time.RFC3339),
		Limit:     query.Limit,
	}

	bodyBytes, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal audit query: %w", err)
	}

	resp, err := makeAuthenticatedRequest(ctx, c.credential, c.httpClient, http.MethodPost, apiURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to call audit query API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("audit query API returned status %d: %s", resp.StatusCode, string(body))
	}

	var auditResponse struct {
		Value []AuditEntry `json:"value"`
	}

	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&auditResponse); err != nil {
		return nil, fmt.Errorf("failed to parse audit query response: %w", err)
	}

	return auditResponse.Value, nil
}

// GetAssetStatistics returns aggregate asset counts by entity type and by
// sensitivity label, computed from discovery-query facets.
func (c *CatalogClient) GetAssetStatistics(ctx context.Context) (*CatalogSummary, error) {
	apiURL := fmt.Sprintf("%s/catalog/api/search/query", c.endpoint)

	params := url.Values{}
	params.Add("api-version", catalogAPIVersion)
	apiURL += "?" + params.Encode()

	requestBody := map[string]interface{}{
		"keywords": "*",
		"limit":    1,
		"facets": []map[string]interface{}{
			{"facet": "entityType", "count": 50},
			{"facet": "label", "count": 50},
		},
	}

	bodyBytes, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	resp, err := makeAuthenticatedRequest(ctx, c.credential, c.httpClient, http.MethodPost, apiURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to call search query API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("search query API returned status %d: %s", resp.StatusCode, string(body))
	}

	var searchResponse struct {
		Count  int `json:"@search.count"`
		Facets map[string][]struct {
			Value string `json:"value"`
			Count int    `json:"count"`
		} `json:"@search.facets"`
	}

	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&searchResponse); err != nil {
		return nil, fmt.Errorf("failed to parse search query response: %w", err)
	}

	summary := &CatalogSummary{
		TotalAssets:             searchResponse.Count,
		ByType:                  make(map[string]int),
		SensitivityDistribution: make(map[string]int),
		LastUpdated:             time.Now().UTC().Format(time.RFC3339),
	}

	for _, facet := range searchResponse.Facets["entityType"] {
		summary.ByType[facet.Value] = facet.Count
	}
	for _, facet := range searchResponse.Facets["label"] {
		summary.SensitivityDistribution[facet.Value] = facet.Count
	}

	return summary, nil
}

// GetLineage retrieves the lineage graph for an entity via the Atlas
// lineage API, bounded by the requested traversal depth.
func (c *CatalogClient) GetLineage(ctx context.Context, entityID string, depth int) (*LineageGraph, error) {
	if entityID == "" {
		return nil, fmt.Errorf("entity ID cannot be empty")
	}

	apiURL := fmt.Sprintf("%s/catalog/api/atlas/v2/lineage/%s", c.endpoint, url.PathEscape(entityID))

	params := url.Values{}
	params.Add("depth", fmt.Sprintf("%d", depth))
	params.Add("direction", "BOTH")
	apiURL += "?" + params.Encode()

	resp, err := makeAuthenticatedRequest(ctx, c.credential, c.httpClient, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call lineage API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("lineage API returned status %d: %s", resp.StatusCode, string(body))
	}

	var lineageResponse struct {
		BaseEntityGuid string `json:"baseEntityGuid"`
		GuidEntityMap  map[string]struct {
			TypeName   string                 `json:"typeName"`
			Attributes map[string]interface{} `json:"attributes"`
		} `json:"guidEntityMap"`
		Relations []struct {
			FromEntityID string `json:"fromEntityId"`
			ToEntityID   string `json:"toEntityId"`
		} `json:"relations"`
	}

	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&lineageResponse); err != nil {
		return nil, fmt.Errorf("failed to parse lineage response: %w", err)
	}

	graph := &LineageGraph{EntityID: entityID}

	for guid, entity := range lineageResponse.GuidEntityMap {
		name := guid
		if n, ok := entity.Attributes["name"].(string); ok && n != "" {
			name = n
		} else if qn, ok := entity.Attributes["qualifiedName"].(string); ok && qn != "" {
			name = qn
		}
		graph.Nodes = append(graph.Nodes, LineageNode{
			ID:   guid,
			Name: name,
			Type: entity.TypeName,
		})
		if guid == entityID {
			graph.EntityName = name
			graph.EntityType = entity.TypeName
		}
	}

	for _, rel := range lineageResponse.Relations {
		graph.Edges = append(graph.Edges, LineageEdge{
			Source: rel.FromEntityID,
			Target: rel.ToEntityID,
			Label:  "flow",
		})
	}

	return NormalizeLineage(graph), nil
}

// NormalizeLineage enforces the lineage graph contract: the requested
// entity is always present in the node set, and edges whose endpoints are
// not in the node set are dropped.
func NormalizeLineage(graph *LineageGraph) *LineageGraph {
	known := make(map[string]bool, len(graph.Nodes))
	for _, node := range graph.Nodes {
		known[node.ID] = true
	}

	if !known[graph.EntityID] {
		graph.Nodes = append(graph.Nodes, LineageNode{
			ID:   graph.EntityID,
			Name: graph.EntityName,
			Type: graph.EntityType,
		})
		known[graph.EntityID] = true
	}

	kept := graph.Edges[:0]
	for _, edge := range graph.Edges {
		if known[edge.Source] && known[edge.Target] {
			kept = append(kept, edge)
		}
	}
	graph.Edges = kept

	return graph
}
