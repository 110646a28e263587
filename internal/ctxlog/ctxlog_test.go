package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	t.Run("falls back to the default logger", func(t *testing.T) {
		assert.Same(t, slog.Default(), FromContext(context.Background()))
	})

	t.Run("returns the embedded logger", func(t *testing.T) {
		// --- Arrange ---
		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

		// --- Act ---
		ctx := WithLogger(context.Background(), logger)

		// --- Assert ---
		assert.Same(t, logger, FromContext(ctx))
	})
}

func TestWith(t *testing.T) {
	// --- Arrange ---
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	// --- Act ---
	ctx = With(ctx, "build_id", "abc")
	FromContext(ctx).Info("Engine cycle assembled.")

	// --- Assert ---
	assert.Contains(t, buf.String(), "build_id=abc")
	assert.Contains(t, buf.String(), `msg="Engine cycle assembled."`)
}
