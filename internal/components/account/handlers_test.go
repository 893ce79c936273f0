package account

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/purview/armpurview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SecuringTheRealm/str-mcp-purview/internal/config"
)

type fakeAccountsAPI struct {
	account armpurview.Account
	err     error

	gotResourceGroup string
	gotAccountName   string
}

func (f *fakeAccountsAPI) Get(ctx context.Context, resourceGroupName string, accountName string, options *armpurview.AccountsClientGetOptions) (armpurview.AccountsClientGetResponse, error) {
	f.gotResourceGroup = resourceGroupName
	f.gotAccountName = accountName
	if f.err != nil {
		return armpurview.AccountsClientGetResponse{}, f.err
	}
	return armpurview.AccountsClientGetResponse{Account: f.account}, nil
}

type fakePropertiesAPI struct {
	properties map[string]interface{}
	err        error
}

func (f *fakePropertiesAPI) GetAccountProperties(ctx context.Context) (map[string]interface{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.properties, nil
}

func testConfig() *config.ConfigData {
	cfg := config.NewConfig()
	cfg.Purview.AccountName = "contoso-purview"
	cfg.Purview.ResourceGroup = "governance-rg"
	return cfg
}

func TestGetAccountInfoHandlerNotInitialized(t *testing.T) {
	cfg := testConfig()
	handler := GetAccountInfoHandler(nil, nil, cfg)

	_, err := handler.Handle(context.Background(), map[string]interface{}{}, cfg)
	require.Error(t, err)
	assert.Equal(t, "purview management client not initialized correctly", err.Error())
}

func TestGetAccountInfoHandlerMissingResourceGroup(t *testing.T) {
	cfg := testConfig()
	cfg.Purview.ResourceGroup = ""
	handler := GetAccountInfoHandler(&fakeAccountsAPI{}, nil, cfg)

	_, err := handler.Handle(context.Background(), map[string]interface{}{}, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AZURE_RESOURCE_GROUP")
}

func TestGetAccountInfoHandlerManagementPlane(t *testing.T) {
	cfg := testConfig()
	fake := &fakeAccountsAPI{
		account: armpurview.Account{
			Name:     to.Ptr("contoso-purview"),
			Location: to.Ptr("westeurope"),
			Properties: &armpurview.AccountProperties{
				ProvisioningState: to.Ptr(armpurview.ProvisioningStateSucceeded),
			},
		},
	}
	handler := GetAccountInfoHandler(fake, nil, cfg)

	result, err := handler.Handle(context.Background(), map[string]interface{}{}, cfg)
	require.NoError(t, err)

	assert.Equal(t, "governance-rg", fake.gotResourceGroup)
	assert.Equal(t, "contoso-purview", fake.gotAccountName)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(result), &decoded))
	assert.Equal(t, "contoso-purview", decoded["name"])
	assert.Equal(t, "westeurope", decoded["location"])
}

func TestGetAccountInfoHandlerDataPlaneFallback(t *testing.T) {
	cfg := testConfig()
	fake := &fakePropertiesAPI{
		properties: map[string]interface{}{
			"name":     "contoso-purview",
			"location": "westeurope",
		},
	}
	handler := GetAccountInfoHandler(nil, fake, cfg)

	result, err := handler.Handle(context.Background(), map[string]interface{}{}, cfg)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(result), &decoded))
	assert.Equal(t, "contoso-purview", decoded["name"])
}

func TestGetAccountInfoHandlerLookupFailure(t *testing.T) {
	cfg := testConfig()
	handler := GetAccountInfoHandler(&fakeAccountsAPI{err: fmt.Errorf("status 404")}, nil, cfg)

	_, err := handler.Handle(context.Background(), map[string]interface{}{}, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get purview account contoso-purview")
}

func TestGetAccountInfoHandlerDataPlaneFailure(t *testing.T) {
	cfg := testConfig()
	handler := GetAccountInfoHandler(nil, &fakePropertiesAPI{err: fmt.Errorf("status 403")}, cfg)

	_, err := handler.Handle(context.Background(), map[string]interface{}{}, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get purview account properties")
}
