package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleDocument() *Document {
	return &Document{
		Title:    "Deck",
		Subtitle: "Sub",
		Slides: []Slide{
			{
				Title: "Intro",
				Content: Blocks{
					BulletList{Items: []BulletItem{{Text: "a", Level: 0}, {Text: "b", Level: 1}}},
					Paragraph{Text: "hello <world>"},
					CodeBlock{Language: "python", Code: "print(1)\n\nprint(2)"},
					Image{Src: "img/a.png", Alt: "diagram"},
				},
			},
			{Content: Blocks{}, Duration: 3},
		},
	}
}

func TestBlocks_JSON(t *testing.T) {
	t.Run("wire shape", func(t *testing.T) {
		data, err := json.Marshal(Blocks{
			BulletList{Items: []BulletItem{{Text: "a", Level: 1}}},
			Paragraph{Text: "p"},
			CodeBlock{Language: "go", Code: "x"},
			Image{Src: "s", Alt: "a"},
		})
		require.NoError(t, err)

		assert.JSONEq(t, `[
			{"type":"bullets","items":[{"text":"a","level":1}]},
			{"type":"text","text":"p"},
			{"type":"code","language":"go","code":"x"},
			{"type":"image","src":"s","alt":"a"}
		]`, string(data))
	})

	t.Run("document round trip", func(t *testing.T) {
		doc := sampleDocument()

		data, err := json.Marshal(doc)
		require.NoError(t, err)

		var decoded Document
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, doc, &decoded)
	})

	t.Run("absent titles decode empty", func(t *testing.T) {
		var doc Document
		require.NoError(t, json.Unmarshal([]byte(`{"slides":[{"content":[{"type":"text","text":"x"}]}]}`), &doc))

		assert.Empty(t, doc.Title)
		assert.Empty(t, doc.Subtitle)
		assert.Empty(t, doc.Slides[0].Title)
		assert.Equal(t, Blocks{Paragraph{Text: "x"}}, doc.Slides[0].Content)
	})

	t.Run("code without language", func(t *testing.T) {
		var blocks Blocks
		require.NoError(t, json.Unmarshal([]byte(`[{"type":"code","code":"x"}]`), &blocks))
		assert.Equal(t, Blocks{CodeBlock{Language: "text", Code: "x"}}, blocks)
	})

	t.Run("unknown type", func(t *testing.T) {
		var blocks Blocks
		err := json.Unmarshal([]byte(`[{"type":"video","src":"x"}]`), &blocks)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown block type "video"`)
	})

	t.Run("empty content encodes as list", func(t *testing.T) {
		data, err := json.Marshal(Slide{})
		require.NoError(t, err)
		assert.JSONEq(t, `{"content":[]}`, string(data))
	})
}

func TestBlocks_YAML(t *testing.T) {
	t.Run("document round trip", func(t *testing.T) {
		doc := sampleDocument()

		data, err := yaml.Marshal(doc)
		require.NoError(t, err)

		var decoded Document
		require.NoError(t, yaml.Unmarshal(data, &decoded))
		assert.Equal(t, doc, &decoded)
	})

	t.Run("hand written document", func(t *testing.T) {
		input := `
slides:
  - title: One
    content:
      - type: bullets
        items:
          - text: a
            level: 0
          - text: b
            level: 2
      - type: image
        src: x.png
        alt: ""
`
		var doc Document
		require.NoError(t, yaml.Unmarshal([]byte(input), &doc))

		require.Len(t, doc.Slides, 1)
		assert.Equal(t, "One", doc.Slides[0].Title)
		assert.Equal(t, Blocks{
			BulletList{Items: []BulletItem{{Text: "a"}, {Text: "b", Level: 2}}},
			Image{Src: "x.png"},
		}, doc.Slides[0].Content)
	})

	t.Run("unknown type", func(t *testing.T) {
		var blocks Blocks
		err := yaml.Unmarshal([]byte("- type: table\n"), &blocks)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown block type")
	})
}
