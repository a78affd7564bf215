package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != "console" || cfg.Output != "stdout" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !cfg.Timestamp {
		t.Error("timestamp must default to true")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{Level: "debug", Format: "json"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid level")
	}

	cfg = Config{Level: "info", Format: "xml"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid format")
	}
}

func TestLogger_JSONFields(t *testing.T) {
	l := New(&Config{Level: "debug", Format: "json", Output: "stdout"}, "flowkit")
	l = l.WithComponent("engine")

	var buf bytes.Buffer
	zl := l.GetLogger().Output(&buf)
	zl.Info().Interface(FieldRows, 42).Msg("node done")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, buf.String())
	}
	if entry["service"] != "flowkit" {
		t.Errorf("service field: got %v", entry["service"])
	}
	if entry[FieldComponent] != "engine" {
		t.Errorf("component field: got %v", entry[FieldComponent])
	}
	if entry[FieldRows] != 42.0 {
		t.Errorf("rows field: got %v", entry[FieldRows])
	}
	if entry["message"] != "node done" {
		t.Errorf("message: got %v", entry["message"])
	}
}

func TestLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	l := New(&Config{Level: "nope", Format: "json"}, "flowkit")

	var buf bytes.Buffer
	zl := l.GetLogger().Output(&buf)
	zl.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug must be suppressed at info level, got %s", buf.String())
	}
	zl.Info().Msg("visible")
	if buf.Len() == 0 {
		t.Error("info must be logged at info level")
	}
}

func TestFields(t *testing.T) {
	m := Fields("node", "agg-1", FieldRows, 42)
	if m["node"] != "agg-1" || m[FieldRows] != 42 {
		t.Fatalf("unexpected fields: %v", m)
	}

	// A trailing key without a value is dropped.
	m = Fields("a", 1, "dangling")
	if len(m) != 1 || m["a"] != 1 {
		t.Fatalf("unexpected fields: %v", m)
	}
}
