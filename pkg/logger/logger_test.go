package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInfoIncludesContextFields(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Output: &buf})

	ctx := logg.WithRequestID(context.Background(), "req-1")
	ctx = logg.WithUserID(ctx, "user-9")
	logg.Info(ctx, "hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid log line: %v", err)
	}
	if entry["request_id"] != "req-1" {
		t.Fatalf("missing request_id in %v", entry)
	}
	if entry["user_id"] != "user-9" {
		t.Fatalf("missing user_id in %v", entry)
	}
	if entry["service"] != "test" {
		t.Fatalf("missing service in %v", entry)
	}
	if entry["message"] != "hello" {
		t.Fatalf("missing message in %v", entry)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Level: zerolog.WarnLevel, Output: &buf})

	logg.Info(context.Background(), "should be dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}

	logg.Warn(context.Background(), "kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("expected warn output, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("debug") != zerolog.DebugLevel {
		t.Fatal("debug not parsed")
	}
	if ParseLevel(" WARN ") != zerolog.WarnLevel {
		t.Fatal("case/space not normalized")
	}
	if ParseLevel("nonsense") != zerolog.InfoLevel {
		t.Fatal("fallback not info")
	}
	if ParseLevel("") != zerolog.InfoLevel {
		t.Fatal("empty not info")
	}
}

func TestErrorAttachesStack(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Output: &buf})

	logg.Error(context.Background(), "failed", context.DeadlineExceeded)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid log line: %v", err)
	}
	if _, ok := entry["stack"]; !ok {
		t.Fatal("expected stack field on error logs")
	}
	if entry["error"] != context.DeadlineExceeded.Error() {
		t.Fatalf("unexpected error field %v", entry["error"])
	}
}
