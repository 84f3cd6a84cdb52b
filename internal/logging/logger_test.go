package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"tidymux/internal/config"
	"tidymux/internal/logging"
)

func TestConsoleLoggerFormatsComponentAndFile(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithFile(logging.WithRunID(context.Background(), "run-1"), "/movies/film.mkv")
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "cleaner"))
	logger.Info("streams selected", logging.Int("audio_kept", 2), logging.String("note", "two words"))

	line := buf.String()
	for _, want := range []string{" INFO cleaner: [film.mkv] streams selected", "audio_kept=2", `note="two words"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
	if strings.Contains(line, "run-1") {
		t.Fatalf("console output should omit run id, got %q", line)
	}
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", line)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("message with caller")
	if !strings.Contains(buf.String(), "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", buf.String())
	}
}

func TestJSONLoggerUsesStableKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := logging.WithRunID(context.Background(), "run-42")
	logging.WithContext(ctx, logger).Warn("careful")

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, buf.String())
	}
	if payload["msg"] != "careful" || payload["level"] != "warn" {
		t.Fatalf("unexpected payload: %v", payload)
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", payload)
	}
	if payload[logging.FieldRunID] != "run-42" {
		t.Fatalf("expected run id, got %v", payload)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestNewRejectsUnknownValues(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if _, err := logging.New(logging.Options{Level: "chatty"}); err == nil {
		t.Fatal("expected error for unsupported level")
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Format = "json"
	var buf bytes.Buffer
	logger, err := logging.NewFromConfig(&cfg, &buf)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hello")
	if !strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Fatalf("expected json output, got %q", buf.String())
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "token looks odd", "invalid_token",
		logging.String(logging.FieldErrorHint, "use ISO 639 codes"),
	)
	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if payload[logging.FieldEventType] != "invalid_token" {
		t.Fatalf("expected event type, got %v", payload)
	}
	if payload[logging.FieldErrorHint] != "use ISO 639 codes" {
		t.Fatalf("expected caller hint to be preserved, got %v", payload)
	}
	if payload[logging.FieldImpact] == nil {
		t.Fatalf("expected default impact, got %v", payload)
	}
}

func TestNopLogger(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("discarded")
	if logger.Enabled(context.Background(), 0) {
		t.Fatal("nop logger must not be enabled")
	}
	if logging.WithContext(context.Background(), nil) == nil {
		t.Fatal("WithContext must tolerate nil logger")
	}
}

func TestJSONLoggerReportsDurationsInSeconds(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("cleaned file",
		logging.Duration("elapsed", 1500*time.Millisecond+400*time.Microsecond),
		logging.Int64("saved_bytes", 4096),
		logging.Float64("duration_seconds", 5400.5),
	)

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, buf.String())
	}
	if payload["elapsed"] != 1.5 {
		t.Fatalf("expected elapsed in seconds, got %v", payload["elapsed"])
	}
	if payload["saved_bytes"] != float64(4096) || payload["duration_seconds"] != 5400.5 {
		t.Fatalf("unexpected numeric fields: %v", payload)
	}
	ts, _ := payload["ts"].(string)
	if _, err := time.Parse("2006-01-02T15:04:05.000Z07:00", ts); err != nil {
		t.Fatalf("unexpected ts %q: %v", ts, err)
	}
}

func TestConsoleLoggerFormatsValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("stream selection decision",
		logging.Any("languages", []string{"da", "en"}),
		logging.Duration("elapsed", 2*time.Second+345678*time.Microsecond),
		logging.String("empty", ""),
		logging.String("rules", "audio=keep"),
		logging.Bool("dry_run", true),
	)

	line := buf.String()
	for _, want := range []string{"languages=da,en", "elapsed=2.346s", `empty=""`, `rules="audio=keep"`, "dry_run=true"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
}
