package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG", "msg=dbg", "a=1",
		"level=INFO", "msg=inf", "b=2",
		"level=WARN", "msg=wrn", "c=3",
		"level=ERROR", "msg=err", "d=4",
	} {
		assert.Contains(t, out, want)
	}
}

func TestSlogLogger_With(t *testing.T) {
	log, buf := newTestLogger(t)

	log.With("request_id", "123", "component", "client").Info(context.Background(), "hello", "k", "v")

	out := buf.String()
	for _, want := range []string{"msg=hello", "request_id=123", "component=client", "k=v"} {
		assert.Contains(t, out, want)
	}
}

func TestNew_Formats(t *testing.T) {
	ctx := context.Background()

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		New(FormatJSON, "info", &buf).Info(ctx, "hello", "k", "v")
		assert.Contains(t, buf.String(), `"msg":"hello"`)
		assert.Contains(t, buf.String(), `"k":"v"`)
	})

	t.Run("text filters below level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(FormatText, "warn", &buf)
		l.Info(ctx, "hidden")
		l.Warn(ctx, "shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "msg=shown")
	})

	t.Run("console", func(t *testing.T) {
		var buf bytes.Buffer
		New(FormatConsole, "debug", &buf).Debug(ctx, "dbg", "user", "alice")
		assert.Contains(t, buf.String(), "dbg")
		assert.Contains(t, buf.String(), "user=alice")
	})
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		l := Nop()
		l.Info(context.TODO(), "ignored")
		l.With("a", 1).Error(context.TODO(), "ignored")
	})
}
