package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewJSONLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "debug", Format: "json", Output: &buf})

	log.Warn().Fields([]any{"path", "missing.csv", "entries", 3}).Msg("catalog source skipped")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if line["message"] != "catalog source skipped" {
		t.Errorf("message = %v", line["message"])
	}
	if line["path"] != "missing.csv" {
		t.Errorf("path = %v", line["path"])
	}
	if line["level"] != "warn" {
		t.Errorf("level = %v", line["level"])
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "warn", Format: "json", Output: &buf})

	log.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("info message written at warn level: %q", buf.String())
	}
}

func TestNewDefaultsUnknownLevelToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "chatty", Format: "json", Output: &buf})

	log.Debug().Msg("hidden")
	log.Info().Msg("shown")
	if !bytes.Contains(buf.Bytes(), []byte("shown")) || bytes.Contains(buf.Bytes(), []byte("hidden")) {
		t.Errorf("unexpected output %q", buf.String())
	}
}
