package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
)

func sampleDocument() *entities.Document {
	return &entities.Document{
		Title:    "Quarterly Review",
		Subtitle: "Q3 · numbers",
		Slides: []entities.Slide{
			{
				Title: "Results",
				Content: entities.Blocks{
					entities.BulletList{Items: []entities.BulletItem{
						{Text: "Revenue up", Level: 0},
						{Text: "Costs flat", Level: 1},
					}},
					entities.Paragraph{Text: "Thanks, everyone."},
				},
			},
			{
				Content: entities.Blocks{
					entities.CodeBlock{Language: "go", Code: "func main() {\n\trun()\n}"},
					entities.Image{Src: "chart.png", Alt: "Chart"},
					entities.Image{Src: "logo.png"},
				},
			},
			{},
		},
	}
}

func TestHandoutRenderer_Build(t *testing.T) {
	r := NewHandoutRenderer(nil)

	t.Run("one page per slide plus title page", func(t *testing.T) {
		pdf := r.build(sampleDocument())
		require.NoError(t, pdf.Error())
		assert.Equal(t, 4, pdf.PageCount())
	})

	t.Run("no title page without title block", func(t *testing.T) {
		doc := sampleDocument()
		doc.Title, doc.Subtitle = "", ""

		pdf := r.build(doc)
		require.NoError(t, pdf.Error())
		assert.Equal(t, 3, pdf.PageCount())
	})

	t.Run("empty document still has a page", func(t *testing.T) {
		pdf := r.build(entities.NewDocument())
		require.NoError(t, pdf.Error())
		assert.Equal(t, 1, pdf.PageCount())
	})

	t.Run("long slides flow onto extra pages", func(t *testing.T) {
		items := make([]entities.BulletItem, 80)
		for i := range items {
			items[i] = entities.BulletItem{Text: "point", Level: i % 3}
		}
		doc := &entities.Document{Slides: []entities.Slide{{Content: entities.Blocks{entities.BulletList{Items: items}}}}}

		pdf := r.build(doc)
		require.NoError(t, pdf.Error())
		assert.Greater(t, pdf.PageCount(), 1)
	})
}

func TestHandoutRenderer_Export(t *testing.T) {
	ctx := context.Background()

	t.Run("writes a pdf", func(t *testing.T) {
		dir := t.TempDir()
		out := filepath.Join(dir, "handouts", "deck.pdf")

		require.NoError(t, NewHandoutRenderer(nil).Export(ctx, sampleDocument(), out))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "%PDF-"))

		leftovers, err := filepath.Glob(filepath.Join(dir, "handouts", ".tmp-*"))
		require.NoError(t, err)
		assert.Empty(t, leftovers)
	})

	t.Run("nil document", func(t *testing.T) {
		err := NewHandoutRenderer(nil).Export(ctx, nil, filepath.Join(t.TempDir(), "x.pdf"))
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		out := filepath.Join(t.TempDir(), "x.pdf")
		err := NewHandoutRenderer(nil).Export(cctx, sampleDocument(), out)
		assert.ErrorIs(t, err, context.Canceled)
		assert.NoFileExists(t, out)
	})
}
