package purview

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// AccountClient talks to the Purview account data-plane API.
type AccountClient struct {
	endpoint   string
	credential azcore.TokenCredential
	httpClient *http.Client
}

// NewAccountClient creates a new account client for the given account
// endpoint.
func NewAccountClient(endpoint string, credential azcore.TokenCredential) (*AccountClient, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint cannot be empty")
	}

	return &AccountClient{
		endpoint:   endpoint,
		credential: credential,
		httpClient: newHTTPClient(),
	}, nil
}

// GetAccountProperties retrieves the account resource as reported by the
// data plane.
func (c *AccountClient) GetAccountProperties(ctx context.Context) (map[string]interface{}, error) {
	apiURL := fmt.Sprintf("%s/account", c.endpoint)

	params := url.Values{}
	params.Add("api-version", accountAPIVersion)
	apiURL += "?" + params.Encode()

	resp, err := makeAuthenticatedRequest(ctx, c.credential, c.httpClient, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call account API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("account API returned status %d: %s", resp.StatusCode, string(body))
	}

	var account map[string]interface{}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&account); err != nil {
		return nil, fmt.Errorf("failed to parse account response: %w", err)
	}

	return account, nil
}
