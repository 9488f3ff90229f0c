package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestInfoProducesLogfmtWithTimestamp(t *testing.T) {
	buf := new(bytes.Buffer)
	original := Logger()
	ReplaceLogger(slog.New(newHandler(buf)))
	t.Cleanup(func() {
		ReplaceLogger(original)
	})

	Info(context.Background(), "hello", "user", "test")

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatalf("expected log output, got empty string")
	}
	if !strings.Contains(line, "ts=") {
		t.Fatalf("expected timestamp field in log line, got %q", line)
	}
	if !strings.Contains(line, "level=info") {
		t.Fatalf("expected level field in log line, got %q", line)
	}
	if !strings.Contains(line, "msg=hello") {
		t.Fatalf("expected message field in log line, got %q", line)
	}
	if !strings.Contains(line, "user=test") {
		t.Fatalf("expected structured field in log line, got %q", line)
	}
}

func TestRequestIDIsAttached(t *testing.T) {
	buf := new(bytes.Buffer)
	original := Logger()
	ReplaceLogger(slog.New(newHandler(buf)))
	t.Cleanup(func() {
		ReplaceLogger(original)
	})

	ctx := WithRequestID(context.Background(), "req-123")
	Error(ctx, "lookup failed", "foodItemID", 7)

	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, "request_id=req-123") {
		t.Fatalf("expected request id in log line, got %q", line)
	}
	if !strings.Contains(line, "foodItemID=7") {
		t.Fatalf("expected structured field in log line, got %q", line)
	}
	if got := RequestID(ctx); got != "req-123" {
		t.Fatalf("RequestID() = %q, want %q", got, "req-123")
	}
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() {
		_ = SetLevel("info")
	})

	tests := []struct {
		level   string
		wantErr bool
	}{
		{"", false},
		{"DEBUG", false},
		{"warn", false},
		{"error", false},
		{"verbose", true},
	}

	for _, tt := range tests {
		err := SetLevel(tt.level)
		if (err != nil) != tt.wantErr {
			t.Fatalf("SetLevel(%q) error = %v, wantErr %t", tt.level, err, tt.wantErr)
		}
	}
}
