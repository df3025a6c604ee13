package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
)

func TestFormat(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		assert.Equal(t, "", Format(entities.NewDocument()))
	})

	t.Run("every block kind", func(t *testing.T) {
		doc := &entities.Document{
			Title:    "Deck",
			Subtitle: "Sub",
			Slides: []entities.Slide{
				{
					Title: "One",
					Content: entities.Blocks{
						entities.BulletList{Items: []entities.BulletItem{{Text: "a"}, {Text: "b", Level: 1}}},
						entities.Paragraph{Text: "para"},
						entities.CodeBlock{Language: "go", Code: "x := 1"},
						entities.Image{Src: "i.png", Alt: "pic"},
					},
				},
			},
		}

		want := "# Deck\n## Sub\n\n---\n\n" +
			"# One\n\n- a\n  - b\n\npara\n\n```go\nx := 1\n```\n\n![pic](i.png)\n"
		assert.Equal(t, want, Format(doc))
	})

	t.Run("empty code block", func(t *testing.T) {
		doc := &entities.Document{Slides: []entities.Slide{{
			Content: entities.Blocks{entities.CodeBlock{Language: "text"}},
		}}}
		assert.Equal(t, "```text\n```\n", Format(doc))
	})
}

var roundTripOutlines = map[string]string{
	"title and bullets":   "# T\n\n---\n\n# S\n- a\n  - b\n- c",
	"split bullet runs":   "- a\n- b\n\n- c\n---\n* d",
	"code with blanks":    "```python\ndef f():\n\n    return 1\n```\ntext after",
	"trailing blank code": "```\nline\n\n```",
	"unclosed fence":      "```sh\necho hi",
	"images":              "![a](a.png)\n![b](b.png)",
	"no titles":           "one\n---\ntwo\n---\n- three",
	"subtitle only":       "## Sub\n---\n# A\n## not a title",
	"late title block":    "x\n---\n# A\n## B",
	"skipped levels":      "- a\n      - b\n  - c",
	"leading indentation": "   indented paragraph\n\t- tabbed",
}

func TestFormat_RoundTrip(t *testing.T) {
	for name, outline := range roundTripOutlines {
		t.Run(name, func(t *testing.T) {
			first := Parse(outline)
			second := Parse(Format(first))

			require.Equal(t, first, second)
			assert.Equal(t, Format(first), Format(second))
		})
	}
}

func FuzzParse(f *testing.F) {
	for _, outline := range roundTripOutlines {
		f.Add(outline)
		for _, ws := range []string{"\v", "\u00a0", "\t", "\r", "\u3000"} {
			f.Add(strings.ReplaceAll(outline, " ", ws))
			f.Add(strings.ReplaceAll(outline, "\n", ws+"\n"))
		}
	}
	f.Add("# S\n\v- a")
	f.Add("# S\n\u00a0\u00a0- a")
	f.Add("-\u00a0\n*\t\u00a0\n```\nx\r")
	f.Add("#\u00a0a\n---\n![x](a_(b).png)\n![x]()")

	f.Fuzz(func(t *testing.T, outline string) {
		doc := Parse(outline)
		require.NoError(t, doc.Validate())

		for _, slide := range doc.Slides {
			for _, block := range slide.Content {
				switch b := block.(type) {
				case entities.BulletList:
					require.NotEmpty(t, b.Items)
					for _, item := range b.Items {
						require.GreaterOrEqual(t, item.Level, 0)
						require.NotEmpty(t, strings.TrimSpace(item.Text))
					}
				case entities.Paragraph:
					require.NotEmpty(t, strings.TrimSpace(b.Text))
				}
			}
		}

		require.Equal(t, doc, Parse(Format(doc)), "formatted:\n%s", Format(doc))
	})
}
