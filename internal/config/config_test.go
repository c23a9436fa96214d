package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Pipeline.MaxConcurrent != 3 {
		t.Errorf("expected default max_concurrent 3, got %d", cfg.Pipeline.MaxConcurrent)
	}

	if cfg.Pipeline.RetryAttempts != 3 {
		t.Errorf("expected default retry_attempts 3, got %d", cfg.Pipeline.RetryAttempts)
	}

	if cfg.Timeouts.Capability != 90*time.Second {
		t.Errorf("expected capability timeout 90s, got %v", cfg.Timeouts.Capability)
	}

	if cfg.Culture.DefaultRegion != "default_rural" {
		t.Errorf("expected default region 'default_rural', got %q", cfg.Culture.DefaultRegion)
	}
}

func TestLoadFromPath(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
anthropic:
  model: claude-sonnet-4-20250514
  use_aws_bedrock: true
  aws_region: ap-south-1
pipeline:
  max_concurrent: 5
  retry_attempts: 2
timeouts:
  capability: 30s
session:
  db_path: /tmp/guruai-test.db
culture:
  default_region: punjab_farming
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}

	if cfg.Anthropic.Model != "claude-sonnet-4-20250514" {
		t.Errorf("model = %q", cfg.Anthropic.Model)
	}
	if !cfg.Anthropic.UseAWSBedrock {
		t.Error("expected use_aws_bedrock true")
	}
	if cfg.Anthropic.AWSRegion != "ap-south-1" {
		t.Errorf("aws_region = %q", cfg.Anthropic.AWSRegion)
	}
	if cfg.Pipeline.MaxConcurrent != 5 {
		t.Errorf("max_concurrent = %d", cfg.Pipeline.MaxConcurrent)
	}
	if cfg.Pipeline.RetryAttempts != 2 {
		t.Errorf("retry_attempts = %d", cfg.Pipeline.RetryAttempts)
	}
	if cfg.Timeouts.Capability != 30*time.Second {
		t.Errorf("capability timeout = %v", cfg.Timeouts.Capability)
	}
	if cfg.Session.DBPath != "/tmp/guruai-test.db" {
		t.Errorf("db_path = %q", cfg.Session.DBPath)
	}
	if cfg.Culture.DefaultRegion != "punjab_farming" {
		t.Errorf("default_region = %q", cfg.Culture.DefaultRegion)
	}
}

func TestLoadFromPathPartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
pipeline:
  max_concurrent: 1
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}

	if cfg.Pipeline.MaxConcurrent != 1 {
		t.Errorf("max_concurrent = %d, want 1", cfg.Pipeline.MaxConcurrent)
	}
	if cfg.Pipeline.RetryAttempts != 3 {
		t.Errorf("retry_attempts = %d, want default 3", cfg.Pipeline.RetryAttempts)
	}
	if cfg.Culture.DefaultRegion != "default_rural" {
		t.Errorf("default_region = %q, want default", cfg.Culture.DefaultRegion)
	}
}

func TestExpandEnvInAPIKey(t *testing.T) {
	t.Setenv("GURUAI_TEST_KEY", "sk-ant-test12345678901234")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	content := `
anthropic:
  api_key: ${GURUAI_TEST_KEY}
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Anthropic.APIKey != "sk-ant-test12345678901234" {
		t.Errorf("api_key = %q, want expanded env value", cfg.Anthropic.APIKey)
	}
}

func TestGetAPIKeyPrecedence(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-REDACTED")

	cfg := &Config{Anthropic: AnthropicConfig{APIKey: "sk-ant-REDACTED"}}
	key, err := GetAPIKey(cfg)
	if err != nil {
		t.Fatalf("GetAPIKey: %v", err)
	}
	if key != "sk-ant-REDACTED" {
		t.Errorf("key = %q, want the environment value", key)
	}
}

func TestGetAPIKeyMissing(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	_, err := GetAPIKey(&Config{})
	if err != ErrNoAPIKey {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestValidateAPIKey(t *testing.T) {
	if err := ValidateAPIKey("sk-ant-abcdefghijklmnop"); err != nil {
		t.Errorf("valid key rejected: %v", err)
	}
	if err := ValidateAPIKey(""); err == nil {
		t.Error("empty key accepted")
	}
	if err := ValidateAPIKey("not-a-key"); err == nil {
		t.Error("malformed key accepted")
	}
	if err := ValidateAPIKey("sk-ant-x"); err == nil {
		t.Error("short key accepted")
	}
}

func TestMaskAPIKey(t *testing.T) {
	if got := MaskAPIKey(""); got != "(not set)" {
		t.Errorf("MaskAPIKey(empty) = %q", got)
	}
	masked := MaskAPIKey("sk-ant-REDACTED")
	if masked == "sk-ant-REDACTED" {
		t.Error("key not masked")
	}
	if len(masked) == 0 {
		t.Error("masked key empty")
	}
}
