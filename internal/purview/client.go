// Package purview provides data-plane REST clients for Microsoft Purview
// (catalog, scanning and account APIs).
package purview

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

// dataPlaneScope is the OAuth scope for all Purview data-plane APIs.
const dataPlaneScope = "https://purview.azure.net/.default"

const (
	catalogAPIVersion  = "2022-08-01-preview"
	scanningAPIVersion = "2022-02-01-preview"
	accountAPIVersion  = "2019-11-01-preview"
	auditAPIVersion    = "2023-09-01-preview"
)

// makeAuthenticatedRequest issues an HTTP request against a Purview
// data-plane endpoint with a bearer token from the credential.
func makeAuthenticatedRequest(ctx context.Context, credential azcore.TokenCredential, httpClient *http.Client, method, url string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	tokenRequestOptions := policy.TokenRequestOptions{
		Scopes: []string{dataPlaneScope},
	}

	token, err := credential.GetToken(ctx, tokenRequestOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to get access token: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token.Token)
	req.Header.Set("Content-Type", "application/json")

	return httpClient.Do(req)
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}
