package html

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recruitr/internal/core/domain"
	"github.com/custodia-labs/recruitr/internal/core/ports/driven"
)

func TestSupportedFormats(t *testing.T) {
	assert.Equal(t, []domain.Format{domain.FormatHTML}, New().SupportedFormats())
}

func TestNormalise_Resume(t *testing.T) {
	raw := &domain.RawDocument{
		Filename: "jane.html",
		Format:   domain.FormatHTML,
		Content: []byte(`<html><head><title>Jane Doe</title><style>h1{color:red}</style></head>
<body>
  <h1>Jane Doe</h1>
  <p>Email: <a href="mailto:jane@example.com">jane@example.com</a></p>
  <p><a href="https://linkedin.com/in/janedoe">LinkedIn</a></p>
  <h2>Skills</h2>
  <ul><li>Go &amp; Rust</li><li>PostgreSQL</li></ul>
  <script>track()</script>
</body></html>`),
	}

	text, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nEmail: jane@example.com\nLinkedIn (https://linkedin.com/in/janedoe)\nSkills\nGo & Rust\nPostgreSQL", text)
}

func TestNormalise_Empty(t *testing.T) {
	text, err := New().Normalise(context.Background(), &domain.RawDocument{
		Format:  domain.FormatHTML,
		Content: []byte("<html><body><div>  </div></body></html>"),
	})
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestNormalise_NilDocument(t *testing.T) {
	_, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Hello World", "Hello World"},
		{"comments removed", "<p>Keep</p><!-- drop -->", "Keep"},
		{"line breaks", "Line one<br>Line two<br/>Line three", "Line one\nLine two\nLine three"},
		{"entities decoded", "<p>C&#43;&#43; &lt;3 &quot;go&quot;</p>", `C++ <3 "go"`},
		{"spaces collapsed", "<p>a   \t  b&nbsp;c</p>", "a b c"},
		{"anchor without text", `<a href="https://github.com/jane"></a>`, "https://github.com/jane"},
		{"anchor showing target", `<a href="https://github.com/jane">https://github.com/jane</a>`, "https://github.com/jane"},
		{"relative anchor dropped", `<a href="/about">About</a>`, "About"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripHTML(tt.input))
		})
	}
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Normaliser = (*Normaliser)(nil)
}
