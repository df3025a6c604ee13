package renderer

import (
	"html/template"
	"strings"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
)

// textFunc renders one line of user text to HTML
type textFunc func(string) (template.HTML, error)

func escapeText(text string) (template.HTML, error) {
	return template.HTML(template.HTMLEscapeString(text)), nil // #nosec G203 - escaped
}

// blockView is a content block prepared for the deck template
type blockView struct {
	Kind     entities.BlockKind
	HTML     template.HTML
	Language string
	Code     string
	Src      string
	Alt      string
}

func viewBlock(block entities.ContentBlock, text textFunc) (blockView, error) {
	view := blockView{Kind: block.Kind()}

	switch b := block.(type) {
	case entities.BulletList:
		html, err := bulletsHTML(b.Items, text)
		if err != nil {
			return view, err
		}
		view.HTML = html
	case entities.Paragraph:
		html, err := text(b.Text)
		if err != nil {
			return view, err
		}
		view.HTML = html
	case entities.CodeBlock:
		view.Language = b.Language
		view.Code = b.Code
	case entities.Image:
		view.Src = b.Src
		view.Alt = b.Alt
	}

	return view, nil
}

// bulletsHTML renders items as nested lists. Every open list keeps one open
// <li> so a deeper item always nests inside its parent item; skipped levels
// get an empty "skip" item to hold the intermediate list.
func bulletsHTML(items []entities.BulletItem, text textFunc) (template.HTML, error) {
	var b strings.Builder
	depth := 0

	for _, item := range items {
		want := item.Level + 1

		for depth > want {
			b.WriteString("</li></ul>")
			depth--
		}
		if depth == want {
			b.WriteString("</li>")
		}
		for depth < want {
			b.WriteString("<ul>")
			depth++
			if depth < want {
				b.WriteString(`<li class="skip">`)
			}
		}

		html, err := text(item.Text)
		if err != nil {
			return "", err
		}
		b.WriteString("<li>")
		b.WriteString(string(html))
	}

	for depth > 0 {
		b.WriteString("</li></ul>")
		depth--
	}

	return template.HTML(b.String()), nil // #nosec G203 - item text is escaped or sanitised
}
