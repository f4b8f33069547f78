package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/offineeds/oms/internal/identity"
	"github.com/offineeds/oms/internal/obs"
)

func TestLogEvent(t *testing.T) {
	var buf bytes.Buffer
	obs.ConfigureLogger(&buf, "info", false)
	defer obs.ConfigureLogger(nil, "info", false)

	ctx := context.Background()
	ctx = WithRequestID(ctx, "req-123")
	ctx = identity.ContextWithUser(ctx, identity.Identity{ID: "user-42", Email: "admin@x.com"})

	if err := LogEvent(ctx, "access.grant.created", map[string]any{"module_id": 4}); err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}

	line := buf.String()
	if line == "" {
		t.Fatal("expected log output")
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log not valid JSON: %v", err)
	}
	if entry["type"] != "audit" {
		t.Fatalf("unexpected type: %v", entry["type"])
	}
	if entry["event"] != "access.grant.created" {
		t.Fatalf("unexpected event: %v", entry["event"])
	}
	if entry["request_id"] != "req-123" {
		t.Fatalf("unexpected request id: %v", entry["request_id"])
	}
	if entry["user_id"] != "user-42" {
		t.Fatalf("unexpected user id: %v", entry["user_id"])
	}
	if entry["module_id"] != float64(4) {
		t.Fatalf("fields missing or incorrect: %v", entry["module_id"])
	}
}

func TestLogEventRequiresName(t *testing.T) {
	if err := LogEvent(context.Background(), "  ", nil); err == nil {
		t.Fatal("expected an error for empty event name")
	}
}
