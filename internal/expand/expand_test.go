package expand

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foundationerrors "git.home.luguber.info/inful/snippetdocs/internal/foundation/errors"
	"git.home.luguber.info/inful/snippetdocs/internal/snippets"
	"git.home.luguber.info/inful/snippetdocs/internal/testutil"
)

func newTestExpander(root string, diag io.Writer, opts ...Option) *Expander {
	base := []Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithDiagnostics(diag),
	}
	return New(root, append(base, opts...)...)
}

func TestExpansion(t *testing.T) {
	chapters := map[string]map[string]string{
		"a-chapter": {"hello-world": `print("Hello")`, "shared": "from a"},
		"b-chapter": {"shared": "from b", "outro": "bye"},
	}
	order := []string{"a-chapter", "b-chapter"}

	tests := []struct {
		name    string
		content string
		want    string
		missing []string
	}{
		{
			name:    "substitutes known placeholder",
			content: "Example:\n{{ hello-world }}\n",
			want:    "Example:\n" + `print("Hello")` + "\n",
		},
		{
			name:    "no placeholders unchanged",
			content: "# Title\n\nPlain text.\n",
			want:    "# Title\n\nPlain text.\n",
		},
		{
			name:    "placeholders across chapters",
			content: "{{ hello-world }} and {{outro}}",
			want:    `print("Hello") and bye`,
		},
		{
			name:    "first chapter defining a name wins",
			content: "{{ shared }}",
			want:    "from a",
		},
		{
			name:    "undefined names reported in document order",
			content: "{{ zeta }} {{ hello-world }} {{ alpha }}",
			missing: []string{"zeta", "alpha"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseDocument(tt.content)
			require.NoError(t, err)

			data, missing := doc.Resolve(order, chapters)
			assert.Equal(t, tt.missing, missing)
			if len(missing) > 0 {
				return
			}
			got, err := doc.Render(data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDocument_Placeholders(t *testing.T) {
	doc, err := ParseDocument("{{ a }} text {{ b }} {{ a }}")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, doc.Placeholders())

	doc, err = ParseDocument("nothing here")
	require.NoError(t, err)
	assert.Empty(t, doc.Placeholders())

	_, err = ParseDocument("{{ broken ")
	require.Error(t, err)
}

func TestExpandAll_SnippetTextIsNotReparsed(t *testing.T) {
	tests := []struct {
		name    string
		snippet string
	}{
		{name: "literal braces", snippet: `std.debug.print("{{}}", .{});`},
		{name: "placeholder-like text", snippet: `print("{{ name }}")`},
		{name: "comment-like text", snippet: "{{! keep me }}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := testutil.NewTree(t, map[string]string{
				"en/README.md": "Example:\n{{ hello-world }}\n",
			})
			rendered := snippets.Rendered{}
			rendered.Set("en", "basics", "hello-world", tt.snippet)

			_, err := newTestExpander(root, io.Discard).ExpandAll(rendered)
			require.NoError(t, err)
			assert.Equal(t, "Example:\n"+tt.snippet+"\n", testutil.ReadFile(t, filepath.Join(root, "en", "README.md")))
		})
	}
}

func TestExpandAll_LaterChapterDoesNotExpandEarlierSnippet(t *testing.T) {
	root := testutil.NewTree(t, map[string]string{
		"en/guide.md": "{{ a }}\n{{ b }}\n",
	})
	rendered := snippets.Rendered{}
	rendered.Set("en", "a-ch", "a", "{{ b }}")
	rendered.Set("en", "b-ch", "b", "B")

	_, err := newTestExpander(root, io.Discard).ExpandAll(rendered)
	require.NoError(t, err)
	assert.Equal(t, "{{ b }}\nB\n", testutil.ReadFile(t, filepath.Join(root, "en", "guide.md")))
}

func TestExpandAll_HelloWorldScenario(t *testing.T) {
	root := testutil.NewTree(t, map[string]string{
		"en/README.md": "Example:\n{{ hello-world }}\n",
	})
	rendered := snippets.Rendered{}
	rendered.Set("en", "basics", "hello-world", `print("Hello")`)
	rendered.Set("fr", "basics", "hello-world", `print("Bonjour")`)

	var diag bytes.Buffer
	report, err := newTestExpander(root, &diag).ExpandAll(rendered)
	require.NoError(t, err)

	assert.Equal(t, "Example:\n"+`print("Hello")`+"\n", testutil.ReadFile(t, filepath.Join(root, "en", "README.md")))
	assert.Equal(t, []string{"en"}, report.Languages)
	assert.Equal(t, []string{"fr"}, report.MissingLanguages)
	assert.Equal(t, []string{filepath.Join(root, "en", "README.md")}, report.Documents)
	assert.Contains(t, diag.String(), `no documentation directory for language "fr"`)
}

func TestExpandAll_MultipleChapters(t *testing.T) {
	root := testutil.NewTree(t, map[string]string{
		"en/guide.md": "{{ intro }}\n---\n{{ outro }}\n",
	})
	rendered := snippets.Rendered{}
	rendered.Set("en", "a-chapter", "intro", "first")
	rendered.Set("en", "b-chapter", "outro", "last")

	_, err := newTestExpander(root, io.Discard).ExpandAll(rendered)
	require.NoError(t, err)
	assert.Equal(t, "first\n---\nlast\n", testutil.ReadFile(t, filepath.Join(root, "en", "guide.md")))
}

func TestExpandAll_MissingReferenceIsFatal(t *testing.T) {
	root := testutil.NewTree(t, map[string]string{
		"en/README.md": "{{ hello-world }} {{ missing }}\n",
	})
	rendered := snippets.Rendered{}
	rendered.Set("en", "basics", "hello-world", "hi")

	_, err := newTestExpander(root, io.Discard).ExpandAll(rendered)
	require.Error(t, err)

	ce, ok := foundationerrors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, foundationerrors.CategoryExpand, ce.Category())
	assert.True(t, ce.IsFatal())
	assert.Equal(t, []string{"missing"}, ce.Context()["snippets"])

	// The document is left untouched when expansion fails.
	assert.Equal(t, "{{ hello-world }} {{ missing }}\n", testutil.ReadFile(t, filepath.Join(root, "en", "README.md")))
}

func TestExpandAll_IgnoresNonMarkdownAndSubdirectories(t *testing.T) {
	root := testutil.NewTree(t, map[string]string{
		"en/README.md":        "{{ a }}",
		"en/notes.txt":        "{{ a }}",
		"en/nested/deeper.md": "{{ a }}",
		"en/page.MDX":         "{{ a }}",
	})
	rendered := snippets.Rendered{}
	rendered.Set("en", "c", "a", "A")

	report, err := newTestExpander(root, io.Discard).ExpandAll(rendered)
	require.NoError(t, err)

	assert.Len(t, report.Documents, 2)
	assert.Equal(t, "A", testutil.ReadFile(t, filepath.Join(root, "en", "README.md")))
	assert.Equal(t, "A", testutil.ReadFile(t, filepath.Join(root, "en", "page.MDX")))
	assert.Equal(t, "{{ a }}", testutil.ReadFile(t, filepath.Join(root, "en", "notes.txt")))
	assert.Equal(t, "{{ a }}", testutil.ReadFile(t, filepath.Join(root, "en", "nested", "deeper.md")))
}

func TestExpandAll_OutputRootLeavesSourcesUntouched(t *testing.T) {
	root := testutil.NewTree(t, map[string]string{
		"en/README.md": "{{ a }}",
	})
	out := filepath.Join(t.TempDir(), "site")
	rendered := snippets.Rendered{}
	rendered.Set("en", "c", "a", "A")

	report, err := newTestExpander(root, io.Discard, WithOutputRoot(out)).ExpandAll(rendered)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(out, "en", "README.md")}, report.Documents)
	assert.Equal(t, "A", testutil.ReadFile(t, filepath.Join(out, "en", "README.md")))
	assert.Equal(t, "{{ a }}", testutil.ReadFile(t, filepath.Join(root, "en", "README.md")))
}

func TestExpandAll_DocumentWithoutPlaceholdersRewrittenUnchanged(t *testing.T) {
	content := "# Title\n\n```\nno placeholders\n```\n"
	root := testutil.NewTree(t, map[string]string{"en/plain.md": content})
	rendered := snippets.Rendered{}
	rendered.Set("en", "c", "a", "A")

	_, err := newTestExpander(root, io.Discard).ExpandAll(rendered)
	require.NoError(t, err)
	assert.Equal(t, content, testutil.ReadFile(t, filepath.Join(root, "en", "plain.md")))
}

func TestExpandLanguage_MissingDirectory(t *testing.T) {
	root := t.TempDir()
	_, err := newTestExpander(root, io.Discard).ExpandLanguage("de", map[string]map[string]string{})
	require.ErrorIs(t, err, ErrLanguageDirNotFound)
}
