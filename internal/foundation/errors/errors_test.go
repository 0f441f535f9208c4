package errors

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError_Error(t *testing.T) {
	err := WrapError(errors.New("boom"), CategoryParse, "parse translation failed").
		Fatal().
		WithLanguage("fr").
		WithChapter("intro").
		Build()

	assert.Equal(t, "[parse:fatal] parse translation failed (chapter=intro, language=fr): boom", err.Error())
	assert.Equal(t, "[config:error] bad", NewError(CategoryConfig, "bad").Build().Error())
}

func TestErrorBuilder(t *testing.T) {
	cause := errors.New("permission denied")
	err := WrapError(cause, CategoryFileSystem, "write document failed").
		Warning().
		WithPath("/docs/en/intro.md").
		WithContext("snippets", []string{"a", "b"}).
		Build()

	assert.Equal(t, CategoryFileSystem, err.Category())
	assert.Equal(t, SeverityWarning, err.Severity())
	assert.Equal(t, "write document failed", err.Message())
	assert.False(t, err.IsFatal())
	assert.ErrorIs(t, err, cause)

	path, ok := err.Context().GetString("path")
	require.True(t, ok)
	assert.Equal(t, "/docs/en/intro.md", path)
	_, ok = err.Context().GetString("snippets")
	assert.False(t, ok, "non-string values are not returned by GetString")
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		builder  *ErrorBuilder
		category ErrorCategory
	}{
		{ConfigError("x"), CategoryConfig},
		{ValidationError("x"), CategoryValidation},
		{NotFoundError("x"), CategoryNotFound},
		{DiscoveryError("x"), CategoryDiscovery},
		{ExpandError("x"), CategoryExpand},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			err := tt.builder.Build()
			assert.Equal(t, tt.category, err.Category())
			assert.True(t, err.IsFatal())
		})
	}
}

func TestDetectionThroughWrapping(t *testing.T) {
	inner := ExpandError("document references undefined snippets").Build()
	wrapped := fmt.Errorf("language en: %w", inner)

	assert.True(t, HasCategory(wrapped, CategoryExpand))
	assert.False(t, HasCategory(wrapped, CategoryRender))
	assert.Equal(t, CategoryExpand, CategoryOf(wrapped))

	plain := errors.New("plain")
	assert.False(t, HasCategory(plain, CategoryExpand))
	assert.Equal(t, CategoryInternal, CategoryOf(plain))

	got, ok := AsClassified(wrapped)
	require.True(t, ok)
	assert.Same(t, inner, got)
}

func TestCategoryExitCodes(t *testing.T) {
	assert.Equal(t, 2, CategoryValidation.ExitCode())
	assert.Equal(t, 7, CategoryConfig.ExitCode())
	assert.Equal(t, 11, CategoryFileSystem.ExitCode())
	assert.Equal(t, 1, ErrorCategory("unknown").ExitCode())

	for _, c := range []ErrorCategory{CategoryDiscovery, CategoryParse, CategoryRender, CategoryExpand} {
		assert.True(t, c.IsContent(), c)
		assert.Equal(t, 9, c.ExitCode(), c)
	}
	assert.False(t, CategoryConfig.IsContent())
}

func TestSeverityLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, SeverityInfo.Level())
	assert.Equal(t, slog.LevelWarn, SeverityWarning.Level())
	assert.Equal(t, slog.LevelError, SeverityError.Level())
	assert.Equal(t, slog.LevelError, SeverityFatal.Level())
}

func TestErrorContext(t *testing.T) {
	ctx := ErrorContext{"section": "hello-world", "chapter": "intro", "count": 2}
	assert.Equal(t, []string{"chapter", "count", "section"}, ctx.Keys())

	attrs := ctx.Attrs()
	require.Len(t, attrs, 3)
	assert.Equal(t, "chapter", attrs[0].Key)
	assert.Equal(t, "intro", attrs[0].Value.String())

	var empty ErrorContext
	assert.Empty(t, empty.Keys())
	_, ok := empty.GetString("x")
	assert.False(t, ok)
}

func TestLogValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	err := WrapError(errors.New("eof"), CategoryRender, "render snippet failed").
		Fatal().
		WithChapter("intro").
		Build()
	logger.Error("run failed", slog.Any("error", err))

	out := buf.String()
	assert.Contains(t, out, "error.category=render")
	assert.Contains(t, out, "error.severity=fatal")
	assert.Contains(t, out, "error.chapter=intro")
	assert.Contains(t, out, "error.cause=eof")
}
