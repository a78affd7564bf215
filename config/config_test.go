package config

import (
	"os"
	"path/filepath"
	"testing"
)

const configYAML = `
name: flowkit
environment: development
version: 1.2.0
logging:
  level: debug
telemetry:
  enabled: true
`

func writeConfigFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(configYAML), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestApplyDefaults(t *testing.T) {
	var cfg ServiceConfig
	cfg.ApplyDefaults()

	if cfg.Environment != "development" {
		t.Errorf("environment: got %q", cfg.Environment)
	}
	if !cfg.Debug {
		t.Error("development environment must default debug to true")
	}
	if cfg.Telemetry.Endpoint != "localhost:4318" {
		t.Errorf("telemetry endpoint: got %q", cfg.Telemetry.Endpoint)
	}
	if cfg.Telemetry.SampleRate != 1.0 {
		t.Errorf("sample rate: got %v", cfg.Telemetry.SampleRate)
	}
}

func TestValidate(t *testing.T) {
	cfg := ServiceConfig{Name: "flowkit", Environment: "production"}
	cfg.Logging.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Environment = "qa"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown environment")
	}

	cfg = ServiceConfig{Environment: "development"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestLoad_FromFile(t *testing.T) {
	var cfg ServiceConfig
	if err := Load("flowkit", &cfg, writeConfigFile(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Name != "flowkit" || cfg.Version != "1.2.0" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging level: got %q", cfg.Logging.Level)
	}
	if !cfg.Telemetry.Enabled {
		t.Error("telemetry must be enabled")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("ENVIRONMENT", "staging")

	var cfg ServiceConfig
	if err := Load("flowkit", &cfg, writeConfigFile(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Environment != "staging" {
		t.Fatalf("environment variable must override the file, got %q", cfg.Environment)
	}
}

func TestLoad_MissingFileErrors(t *testing.T) {
	var cfg ServiceConfig
	if err := Load("flowkit", &cfg, filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
