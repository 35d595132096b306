package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"durazubs/internal/config"
)

func noColor() *bool {
	v := false
	return &v
}

func TestConsoleFormatIncludesComponentSubjectAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf, Color: noColor()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := WithStep(WithRunID(context.Background(), "3f2a9c1e-0000-4000-8000-000000000000"), "clean")
	logger = WithContext(ctx, NewComponentLogger(logger, "merge"))
	logger.Info("track cleaned", String(FieldTrack, "timing"), Int("kept", 12))

	out := buf.String()
	for _, want := range []string{"INFO [merge] Run 3f2a9c1e · timing (clean) – track cleaned", "    - kept: 12"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got %q", want, out)
		}
	}
	if strings.Contains(out, "run_id") {
		t.Fatalf("run id should be folded into the subject, got %q", out)
	}
}

func TestConsoleQuotesAwkwardValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Writer: &buf, Color: noColor()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Warn("block dropped", String("text", ""), Error(errors.New("bad\nline")))
	out := buf.String()
	if !strings.Contains(out, `text: ""`) {
		t.Fatalf("expected empty string quoted, got %q", out)
	}
	if !strings.Contains(out, `error: "bad\nline"`) {
		t.Fatalf("expected error quoted, got %q", out)
	}
}

func TestConsoleColorWrapsLevel(t *testing.T) {
	var buf bytes.Buffer
	color := true
	logger, err := New(Options{Format: "console", Writer: &buf, Color: &color})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Error("boom")
	if !strings.Contains(buf.String(), ansiRed+"ERROR"+ansiReset) {
		t.Fatalf("expected coloured level, got %q", buf.String())
	}
}

func TestJSONFormatUsesShortKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("delta recomputed", Float64("delta", -1.5))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v (%q)", err, buf.String())
	}
	if payload["level"] != "debug" || payload["msg"] != "delta recomputed" {
		t.Fatalf("unexpected payload: %v", payload)
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", payload)
	}
	if payload["delta"] != -1.5 {
		t.Fatalf("expected delta field, got %v", payload["delta"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Writer: &buf, Color: noColor()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewFromConfigMirrorsToFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")
	cfg.Logging.File = true
	cfg.Logging.Level = "info"

	logger, closer, err := NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	logger.Info("run finished", Int("records", 3))
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, LogFileName))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"run finished"`) {
		t.Fatalf("expected JSON record in log file, got %q", data)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewComponentLogger(nil, "merge")
	if logger.Enabled(context.Background(), 100) {
		t.Fatal("nop logger should not be enabled")
	}
	logger.Error("ignored")
}
