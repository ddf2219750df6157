package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels_WriteExpectedOutput(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()

	tests := []struct {
		level string
		msg   string
		key   string
		val   string
	}{
		{"DEBUG", "dbg", "a", "1"},
		{"INFO", "inf", "b", "2"},
		{"WARN", "wrn", "c", "3"},
		{"ERROR", "err", "d", "4"},
	}

	for _, tc := range tests {
		if !strings.Contains(out, "level="+tc.level) {
			t.Fatalf("expected line with level=%s in output:\n%s", tc.level, out)
		}
		if !strings.Contains(out, "msg="+tc.msg) {
			t.Fatalf("expected line with msg=%q in output:\n%s", tc.msg, out)
		}
		if !strings.Contains(out, tc.key+"="+tc.val) {
			t.Fatalf("expected attribute %s=%s in output:\n%s", tc.key, tc.val, out)
		}
	}
}

func TestSlogLogger_With_AddsAttributes(t *testing.T) {
	log, buf := newTestLogger(t)

	log.With("req_id", "123", "user", "alice").Info(context.Background(), "hello", "k", "v")

	out := buf.String()
	for _, s := range []string{"level=INFO", "msg=hello", "req_id=123", "user=alice", "k=v"} {
		if !strings.Contains(out, s) {
			t.Fatalf("expected %q in output, got:\n%s", s, out)
		}
	}
}

func TestSetup_Formats(t *testing.T) {
	var buf bytes.Buffer
	Setup("json", &buf).Info(context.Background(), "started", "port", 5000)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "started", line["msg"])
	assert.Equal(t, float64(5000), line["port"])

	buf.Reset()
	Setup("text", &buf).Info(context.Background(), "started")
	assert.Contains(t, buf.String(), "msg=started")
}

func TestErrorAttrs(t *testing.T) {
	assert.Nil(t, ErrorAttrs(nil))

	plain := ErrorAttrs(errors.New("boom"))
	assert.Equal(t, []any{"error", "boom"}, plain)

	err := oops.Code("USER_CREATE_FAILED").With("email", "jane@example.com").Errorf("insert failed")
	attrs := ErrorAttrs(err)
	require.Len(t, attrs, 6)
	assert.Equal(t, "code", attrs[2])
	assert.Equal(t, "USER_CREATE_FAILED", attrs[3])
	assert.Equal(t, "context", attrs[4])
	assert.Equal(t, "jane@example.com", attrs[5].(map[string]any)["email"])
}

func TestNop(t *testing.T) {
	Nop().Error(context.TODO(), "ignored", "k", "v")
}
