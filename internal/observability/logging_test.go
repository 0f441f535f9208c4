package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, Attrs(ctx))

	ctx = WithRunID(ctx, "run-1")
	ctx = WithStage(ctx, "render")
	assert.Equal(t, LogContext{RunID: "run-1", Stage: "render"}, extractLogContext(ctx))

	// A later stage replaces the earlier one but keeps the run ID.
	ctx = WithStage(ctx, "expand")
	assert.Equal(t, LogContext{RunID: "run-1", Stage: "expand"}, extractLogContext(ctx))
	assert.Len(t, Attrs(ctx), 2)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := WithStage(WithRunID(context.Background(), "abc"), "index")
	Logger(ctx, base).Info("hello")

	assert.Contains(t, buf.String(), "run_id=abc")
	assert.Contains(t, buf.String(), "stage=index")
	assert.Same(t, base, Logger(context.Background(), base))
}
