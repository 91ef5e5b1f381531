package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

// chdirTemp runs the test from an empty directory so no stray duocast.yaml
// or .env is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Transports.HTTP.Port != 8080 || !cfg.Transports.HTTP.Enabled {
		t.Errorf("http = %+v", cfg.Transports.HTTP)
	}
	if cfg.Server.HealthPort != 8081 {
		t.Errorf("health port = %d", cfg.Server.HealthPort)
	}
	if cfg.OpenAI.Deployment != "gpt-4o" || cfg.OpenAI.APIVersion != "2024-08-01-preview" {
		t.Errorf("openai = %+v", cfg.OpenAI)
	}
	if cfg.Extract.Timeout != 60*time.Second {
		t.Errorf("extract timeout = %v", cfg.Extract.Timeout)
	}
	if cfg.Generation.DefaultTitle != "AI in Action" {
		t.Errorf("default title = %q", cfg.Generation.DefaultTitle)
	}
	if len(cfg.Access.AuthorizedTenants) != 0 {
		t.Errorf("tenants = %v", cfg.Access.AuthorizedTenants)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}
}

func TestLoadEnvAliases(t *testing.T) {
	chdirTemp(t)
	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://example.openai.azure.com")
	t.Setenv("AZURE_OPENAI_KEY", "k1")
	t.Setenv("AZURE_SPEECH_REGION", "westeurope")
	t.Setenv("ENTRA_AUTHORIZED_TENANTS", "t1, t2,,")
	t.Setenv("DEBUG_MODE", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OpenAI.Endpoint != "https://example.openai.azure.com" || cfg.OpenAI.APIKey != "k1" {
		t.Errorf("openai = %+v", cfg.OpenAI)
	}
	if cfg.Speech.Region != "westeurope" {
		t.Errorf("speech region = %q", cfg.Speech.Region)
	}
	if !slices.Equal(cfg.Access.AuthorizedTenants, []string{"t1", "t2"}) {
		t.Errorf("tenants = %v", cfg.Access.AuthorizedTenants)
	}
	if !cfg.Debug || cfg.Logging.Level != "debug" {
		t.Errorf("debug = %v, level = %q", cfg.Debug, cfg.Logging.Level)
	}
}

func TestLoadPrefixedEnvWins(t *testing.T) {
	chdirTemp(t)
	t.Setenv("DUOCAST_SPEECH_REGION", "eastus")
	t.Setenv("AZURE_SPEECH_REGION", "westeurope")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Speech.Region != "eastus" {
		t.Errorf("speech region = %q, want eastus", cfg.Speech.Region)
	}
}

func TestLoadFileAndEnvRef(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("MY_SPEECH_KEY", "secret")

	path := filepath.Join(dir, "custom.yaml")
	yaml := `
transports:
  http:
    port: 9090
speech:
  key: ${MY_SPEECH_KEY}
  region: northeurope
access:
  authorized_tenants: [a, b]
logging:
  format: text
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Transports.HTTP.Port != 9090 {
		t.Errorf("port = %d", cfg.Transports.HTTP.Port)
	}
	if cfg.Speech.Key != "secret" {
		t.Errorf("speech key = %q", cfg.Speech.Key)
	}
	if !slices.Equal(cfg.Access.AuthorizedTenants, []string{"a", "b"}) {
		t.Errorf("tenants = %v", cfg.Access.AuthorizedTenants)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("format = %q", cfg.Logging.Format)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("AZURE_SPEECH_KEY=from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("AZURE_SPEECH_KEY") })

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Speech.Key != "from-dotenv" {
		t.Errorf("speech key = %q", cfg.Speech.Key)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() on empty config succeeded")
	}

	cfg.OpenAI.Endpoint = "https://x"
	cfg.Speech.Region = "eastus"
	cfg.Speech.ResourceID = "/subscriptions/x"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}
