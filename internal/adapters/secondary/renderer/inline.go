package renderer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// InlineRenderer turns a single line of markdown into sanitised HTML.
// Raw HTML in the source is dropped by goldmark and whatever remains is
// filtered through the bluemonday UGC policy.
type InlineRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewInlineRenderer creates an inline markdown renderer
func NewInlineRenderer() *InlineRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
	)

	return &InlineRenderer{
		md:     md,
		policy: bluemonday.UGCPolicy(),
	}
}

// Render converts one line of text. The paragraph goldmark wraps around
// inline content is removed.
func (r *InlineRenderer) Render(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	out := strings.TrimSpace(buf.String())
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") && strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}

	return template.HTML(r.policy.Sanitize(out)), nil // #nosec G203 - sanitised by bluemonday
}
