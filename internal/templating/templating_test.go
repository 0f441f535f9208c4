package templating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		text string
		data map[string]any
		want string
	}{
		{
			name: "simple placeholder",
			text: `print("{{ greeting }}")`,
			data: map[string]any{"greeting": "Hello"},
			want: `print("Hello")`,
		},
		{
			name: "hyphenated name",
			text: "before\n{{ hello-world }}\nafter",
			data: map[string]any{"hello-world": `print("Hello")`},
			want: "before\nprint(\"Hello\")\nafter",
		},
		{
			name: "nested data",
			text: "const {{ names.var }} = {{ value }};",
			data: map[string]any{"names": map[string]any{"var": "x"}, "value": int64(3)},
			want: "const x = 3;",
		},
		{
			name: "no html escaping",
			text: "{{ code }}",
			data: map[string]any{"code": `a < b && "c"`},
			want: `a < b && "c"`,
		},
		{
			name: "no placeholders",
			text: "plain text",
			data: nil,
			want: "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Compile(tt.text)
			require.NoError(t, err)
			got, err := tmpl.Render(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_MissingKeyFails(t *testing.T) {
	tmpl, err := Compile("{{ greeting }}")
	require.NoError(t, err)
	_, err = tmpl.Render(map[string]any{"other": "x"})
	require.Error(t, err)
}

func TestCompile_MalformedFails(t *testing.T) {
	_, err := Compile("{{ greeting ")
	require.Error(t, err)
}

func TestRender_Deterministic(t *testing.T) {
	tmpl, err := Compile(`const {{ a }} = "{{ b }}";`)
	require.NoError(t, err)
	data := map[string]any{"a": "x", "b": "y"}

	first, err := tmpl.Render(data)
	require.NoError(t, err)
	second, err := tmpl.Render(data)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPlaceholders(t *testing.T) {
	tmpl, err := Compile("{{ a }} {{#list}}{{ b }}{{/list}} {{ a }} {{ c-d }}")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c-d"}, tmpl.Placeholders())
}

func TestRender_InsertedTextIsLiteral(t *testing.T) {
	tmpl, err := Compile("x {{ a }} {{ b }} y")
	require.NoError(t, err)

	out, err := tmpl.Render(map[string]any{"a": "{{ other }}", "b": `print("{{}}")`})
	require.NoError(t, err)
	assert.Equal(t, `x {{ other }} print("{{}}") y`, out)
	assert.Equal(t, "x {{ a }} {{ b }} y", tmpl.Source())
}
