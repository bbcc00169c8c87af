package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTenant(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
		t.Fatalf("write tenant: %v", err)
	}
}

func TestLoadTenantExpandsSecrets(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ACME_CRM_PASSWORD", "hunter2")
	writeTenant(t, dir, "acme.yaml", `
name: Acme
crm_url: https://crm.acme.test/admin/
username: agent
password: ${ACME_CRM_PASSWORD}
`)
	writeTenant(t, dir, "notes.txt", "ignored")

	cfg := &Config{TenantsDir: dir, Tenants: make(map[string]*TenantConfig)}
	if err := cfg.loadTenantConfigs(); err != nil {
		t.Fatalf("load: %v", err)
	}

	tenant, ok := cfg.Tenant("acme")
	if !ok {
		t.Fatalf("expected tenant id derived from file name, got %v", cfg.Tenants)
	}
	if tenant.Password != "hunter2" {
		t.Fatalf("expected expanded password, got %q", tenant.Password)
	}
	if tenant.CRMURL != "https://crm.acme.test/admin" {
		t.Fatalf("expected trailing slash trimmed, got %q", tenant.CRMURL)
	}

	creds, err := tenant.Credentials()
	if err != nil {
		t.Fatalf("credentials: %v", err)
	}
	if creds.Username != "agent" || creds.BaseURL != tenant.CRMURL {
		t.Fatalf("unexpected credentials %+v", creds)
	}
}

func TestCredentialsReportMissingFields(t *testing.T) {
	tenant := &TenantConfig{ID: "bare", CRMURL: "https://crm.test"}
	_, err := tenant.Credentials()
	if err == nil {
		t.Fatalf("expected error")
	}
	if err.Error() != "tenant bare missing username, password" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestMissingTenantsDirIsNotAnError(t *testing.T) {
	cfg := &Config{TenantsDir: filepath.Join(t.TempDir(), "absent"), Tenants: make(map[string]*TenantConfig)}
	if err := cfg.loadTenantConfigs(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("BRIDGE_TEST_BOOL", "false")
	t.Setenv("BRIDGE_TEST_DURATION", "90")
	t.Setenv("BRIDGE_TEST_DURATION_STR", "2m")

	if getEnvBool("BRIDGE_TEST_BOOL", true) {
		t.Fatalf("expected false")
	}
	if got := getEnvDuration("BRIDGE_TEST_DURATION", time.Second); got != 90*time.Second {
		t.Fatalf("expected seconds fallback, got %v", got)
	}
	if got := getEnvDuration("BRIDGE_TEST_DURATION_STR", time.Second); got != 2*time.Minute {
		t.Fatalf("got %v", got)
	}
	if got := getEnvDuration("BRIDGE_TEST_UNSET", 5*time.Second); got != 5*time.Second {
		t.Fatalf("got %v", got)
	}
}
