// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package logging

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"
)

func TestErrKeyConstant(t *testing.T) {
	if ErrKey != "error" {
		t.Errorf("expected ErrKey to be 'error', got %q", ErrKey)
	}
}

func TestAppendCtx(t *testing.T) {
	// A nil parent context must not panic.
	attr := slog.String("meeting_uid", "meeting-1")
	ctx := AppendCtx(nil, attr)

	if ctx == nil {
		t.Fatal("expected non-nil context")
	}

	attrs, ok := ctx.Value(slogFields).([]slog.Attr)
	if !ok {
		t.Fatal("expected slog attributes in context")
	}
	if len(attrs) != 1 {
		t.Fatalf("expected 1 attribute, got %d", len(attrs))
	}
	if attrs[0].Key != "meeting_uid" {
		t.Errorf("expected key 'meeting_uid', got %q", attrs[0].Key)
	}
	if attrs[0].Value.String() != "meeting-1" {
		t.Errorf("expected value 'meeting-1', got %q", attrs[0].Value.String())
	}
}

func TestAppendCtx_Accumulates(t *testing.T) {
	ctx := context.Background()
	ctx = AppendCtx(ctx, slog.String("executive_uid", "exec-1"))
	ctx = AppendCtx(ctx, slog.String("conflict_uid", "conflict-1"))
	ctx = AppendCtx(ctx, slog.Int("attempt", 2))

	attrs, ok := ctx.Value(slogFields).([]slog.Attr)
	if !ok {
		t.Fatal("expected slog attributes in context")
	}
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}

	expectedKeys := []string{"executive_uid", "conflict_uid", "attempt"}
	for i, expectedKey := range expectedKeys {
		if attrs[i].Key != expectedKey {
			t.Errorf("expected key[%d] %q, got %q", i, expectedKey, attrs[i].Key)
		}
	}
}

func TestAppendCtx_DoesNotMutateParent(t *testing.T) {
	parent := AppendCtx(context.Background(), slog.String("shared", "value"))

	_ = AppendCtx(parent, slog.String("child_only", "value"))

	attrs, ok := parent.Value(slogFields).([]slog.Attr)
	if !ok {
		t.Fatal("expected slog attributes in parent context")
	}
	if len(attrs) != 1 {
		t.Errorf("expected parent to keep 1 attribute, got %d", len(attrs))
	}
}

type testSlogHandler struct {
	handleFunc func(ctx context.Context, r slog.Record) error
}

func (h *testSlogHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }
func (h *testSlogHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.handleFunc(ctx, r)
}
func (h *testSlogHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *testSlogHandler) WithGroup(_ string) slog.Handler      { return h }

func TestContextHandler_Handle(t *testing.T) {
	var captured *slog.Record
	handler := contextHandler{Handler: &testSlogHandler{
		handleFunc: func(_ context.Context, r slog.Record) error {
			captured = &r
			return nil
		},
	}}

	ctx := AppendCtx(context.Background(), slog.String("request_id", "req-1"))

	record := slog.NewRecord(time.Now(), slog.LevelInfo, "test message", 0)
	record.AddAttrs(slog.String("record_key", "record_value"))

	if err := handler.Handle(ctx, record); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if captured == nil {
		t.Fatal("expected record to be captured")
	}

	found := false
	captured.Attrs(func(a slog.Attr) bool {
		if a.Key == "request_id" && a.Value.String() == "req-1" {
			found = true
			return false
		}
		return true
	})
	if !found {
		t.Error("expected context attribute 'request_id' on the record")
	}
}

func TestPriorityCritical(t *testing.T) {
	attr := PriorityCritical()
	if attr.Key != "priority" {
		t.Errorf("expected key 'priority', got %q", attr.Key)
	}
	if attr.Value.String() != "critical" {
		t.Errorf("expected value 'critical', got %q", attr.Value.String())
	}
}

func TestInitStructureLogConfig(t *testing.T) {
	originalLogLevel := os.Getenv("LOG_LEVEL")
	defer func() {
		if originalLogLevel != "" {
			os.Setenv("LOG_LEVEL", originalLogLevel)
		} else {
			os.Unsetenv("LOG_LEVEL")
		}
	}()

	testCases := []struct {
		name     string
		logLevel string
	}{
		{"default level", ""},
		{"debug level", "debug"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"info level", "info"},
		{"unknown level", "tracing"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.logLevel == "" {
				os.Unsetenv("LOG_LEVEL")
			} else {
				os.Setenv("LOG_LEVEL", tc.logLevel)
			}
			if handler := InitStructureLogConfig(); handler == nil {
				t.Error("expected non-nil handler")
			}
		})
	}
}
