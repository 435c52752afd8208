// Package markdown renders post bodies to sanitized HTML and exposes the
// result as a templ component.
package markdown

import (
	"bytes"
	"context"
	"io"
	"strings"
	"unicode"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

const wordsPerMinute = 200

// Renderer converts markdown to HTML and strips anything unsafe from the output.
// It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer returns a Renderer with GitHub-flavored markdown enabled.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		// raw HTML in posts is allowed through; bluemonday removes the dangerous parts
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre", "span", "div")
	return &Renderer{md: md, policy: policy}
}

// Render converts src to sanitized HTML.
func (r *Renderer) Render(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", err
	}
	return r.policy.SanitizeReader(&buf).String(), nil
}

// ReadingMinutes estimates reading time for text, never less than one minute.
func ReadingMinutes(text string) int {
	words := len(strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r)
	}))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Markdown returns a templ.Component that writes html, which must already be
// sanitized by Render.
func Markdown(html string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, html)
		return err
	})
}
