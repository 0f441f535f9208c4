package errors

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestAdapter(verbose bool, logs io.Writer) (*CLIErrorAdapter, *bytes.Buffer, *int) {
	a := NewCLIErrorAdapter(verbose, slog.New(slog.NewTextHandler(logs, nil)))
	out := &bytes.Buffer{}
	code := -1
	a.out = out
	a.exit = func(c int) { code = c }
	return a, out, &code
}

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	a, _, _ := newTestAdapter(false, io.Discard)

	assert.Equal(t, 0, a.ExitCodeFor(nil))
	assert.Equal(t, 1, a.ExitCodeFor(errors.New("plain")))
	assert.Equal(t, 9, a.ExitCodeFor(ExpandError("x").Build()))
	assert.Equal(t, 7, a.ExitCodeFor(ConfigError("x").Build()))
	assert.Equal(t, 4, a.ExitCodeFor(NotFoundError("x").Build()))
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	cause := errors.New("no such file")
	err := WrapError(cause, CategoryFileSystem, "read document failed").
		Fatal().
		WithPath("docs/en/README.md").
		WithLanguage("en").
		Build()

	quiet, _, _ := newTestAdapter(false, io.Discard)
	assert.Equal(t, "Error: read document failed (docs/en/README.md): no such file", quiet.FormatError(err))
	assert.Equal(t, "Error: plain", quiet.FormatError(errors.New("plain")))
	assert.Equal(t, "Internal error occurred (use -v for details)", quiet.FormatError(NewError(CategoryInternal, "nil map").Build()))
	assert.Empty(t, quiet.FormatError(nil))

	content := ExpandError("document references undefined snippets").
		WithPath("docs/fr/README.md").
		WithLanguage("fr").
		Build()
	assert.Equal(t, "Error: document references undefined snippets (docs/fr/README.md) [language fr]", quiet.FormatError(content))

	verbose, _, _ := newTestAdapter(true, io.Discard)
	assert.Equal(t, err.Error(), verbose.FormatError(err))
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var logs bytes.Buffer
	a, out, code := newTestAdapter(false, &logs)

	a.HandleError(DiscoveryError("section has more than one template").WithChapter("intro").Build())

	assert.Equal(t, 9, *code)
	assert.Equal(t, "Error: section has more than one template [chapter intro]\n", out.String())
	assert.Contains(t, logs.String(), "category=discovery")
	assert.Contains(t, logs.String(), "chapter=intro")
}

func TestCLIErrorAdapter_HandleErrorSkipsNonFatalLogs(t *testing.T) {
	var logs bytes.Buffer
	a, out, code := newTestAdapter(false, &logs)

	a.HandleError(NewError(CategoryRuntime, "interrupted").Warning().Build())
	assert.Equal(t, 12, *code)
	assert.Contains(t, out.String(), "interrupted")
	assert.Empty(t, logs.String())

	*code = -1
	a.HandleError(nil)
	assert.Equal(t, -1, *code)
}
