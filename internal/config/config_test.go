package config

import (
	"testing"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Transport != "stdio" {
		t.Errorf("expected default transport 'stdio', got %s", cfg.Transport)
	}
	if cfg.Port != 8000 {
		t.Errorf("expected default port 8000, got %d", cfg.Port)
	}
	if cfg.Timeout != 60 {
		t.Errorf("expected default timeout 60, got %d", cfg.Timeout)
	}
	if len(cfg.EnabledComponents) != 0 {
		t.Errorf("expected no components enabled explicitly, got %v", cfg.EnabledComponents)
	}
}

func TestLoadPurviewFromEnv(t *testing.T) {
	t.Setenv("PURVIEW_ACCOUNT_NAME", "contoso-purview")
	t.Setenv("PURVIEW_ENDPOINT", "")
	t.Setenv("AZURE_SUBSCRIPTION_ID", "00000000-0000-0000-0000-000000000001")
	t.Setenv("AZURE_RESOURCE_GROUP", "rg-governance")
	t.Setenv("AZURE_TENANT_ID", "")
	t.Setenv("AZURE_CLIENT_ID", "")
	t.Setenv("AZURE_CLIENT_SECRET", "")

	cfg := NewConfig()
	cfg.LoadPurviewFromEnv()

	if cfg.Purview.AccountName != "contoso-purview" {
		t.Errorf("expected account name 'contoso-purview', got %s", cfg.Purview.AccountName)
	}
	// Endpoint should be derived from the account name
	if cfg.Purview.Endpoint != "https://contoso-purview.purview.azure.com" {
		t.Errorf("unexpected derived endpoint: %s", cfg.Purview.Endpoint)
	}
	if cfg.Purview.HasServicePrincipal() {
		t.Error("expected no service principal without tenant/client/secret")
	}
}

func TestLoadPurviewFromEnvExplicitEndpoint(t *testing.T) {
	t.Setenv("PURVIEW_ACCOUNT_NAME", "contoso-purview")
	t.Setenv("PURVIEW_ENDPOINT", "https://custom.purview.azure.com/")
	t.Setenv("AZURE_SUBSCRIPTION_ID", "")
	t.Setenv("AZURE_RESOURCE_GROUP", "")
	t.Setenv("AZURE_TENANT_ID", "tenant")
	t.Setenv("AZURE_CLIENT_ID", "client")
	t.Setenv("AZURE_CLIENT_SECRET", "secret")

	cfg := NewConfig()
	cfg.LoadPurviewFromEnv()

	// Trailing slash should be trimmed
	if cfg.Purview.Endpoint != "https://custom.purview.azure.com" {
		t.Errorf("unexpected endpoint: %s", cfg.Purview.Endpoint)
	}
	if !cfg.Purview.HasServicePrincipal() {
		t.Error("expected service principal with tenant/client/secret set")
	}
}

func TestHasServicePrincipalPartial(t *testing.T) {
	tests := []struct {
		name     string
		purview  PurviewConfig
		expected bool
	}{
		{"all set", PurviewConfig{TenantID: "t", ClientID: "c", ClientSecret: "s"}, true},
		{"missing tenant", PurviewConfig{ClientID: "c", ClientSecret: "s"}, false},
		{"missing client id", PurviewConfig{TenantID: "t", ClientSecret: "s"}, false},
		{"missing secret", PurviewConfig{TenantID: "t", ClientID: "c"}, false},
		{"none set", PurviewConfig{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.purview.HasServicePrincipal(); got != tt.expected {
				t.Errorf("HasServicePrincipal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsComponentEnabled(t *testing.T) {
	cfg := NewConfig()

	// Empty map enables everything
	if !cfg.IsComponentEnabled("audit") {
		t.Error("expected all components enabled by default")
	}

	cfg.EnabledComponents["audit"] = true
	if !cfg.IsComponentEnabled("audit") {
		t.Error("expected audit to be enabled")
	}
	if !cfg.IsComponentEnabled("  AUDIT  ") {
		t.Error("expected component lookup to normalize case and whitespace")
	}
	if cfg.IsComponentEnabled("catalog") {
		t.Error("expected catalog to be disabled when not listed")
	}
}
