package capture

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
)

const sampleDeck = `<!DOCTYPE html>
<html><head><title>t</title></head>
<body><main class="deck">
<section class="slide title-slide" id="slide-1" data-index="0" data-duration="5"><h1>Deck</h1><h2>Sub</h2></section>
<section class="slide" id="slide-2" data-index="1" data-duration="2.5">
<h1>Agenda</h1>
<ul><li>one<ul><li>nested &amp; more</li></ul></li><li>two</li></ul>
<p>closing   words</p>
</section>
<section class="slide" id="slide-3" data-index="2">
<pre><code class="language-go">func main() {
	run()
}
</code></pre>
<figure><img src="a.png" alt="Arch"><figcaption>Arch</figcaption></figure>
</section>
<section class="notes">ignored</section>
</main></body></html>`

func TestParseTimeline(t *testing.T) {
	timeline, err := ParseTimeline(strings.NewReader(sampleDeck))
	require.NoError(t, err)
	require.Len(t, timeline, 3)

	t.Run("title slide", func(t *testing.T) {
		assert.Equal(t, entities.SlideTiming{
			Index:      0,
			Seconds:    5,
			Title:      "Deck",
			TitleSlide: true,
			Lines:      []string{"Sub"},
		}, timeline[0])
	})

	t.Run("bullets and paragraphs", func(t *testing.T) {
		assert.Equal(t, 1, timeline[1].Index)
		assert.Equal(t, 2.5, timeline[1].Seconds)
		assert.Equal(t, "Agenda", timeline[1].Title)
		assert.False(t, timeline[1].TitleSlide)
		assert.Equal(t, []string{"• one", "  • nested & more", "• two", "closing words"}, timeline[1].Lines)
	})

	t.Run("code and images, no duration", func(t *testing.T) {
		assert.Zero(t, timeline[2].Seconds)
		assert.Empty(t, timeline[2].Title)
		assert.Equal(t, []string{"func main() {", "\trun()", "}", "Arch"}, timeline[2].Lines)
	})
}

func TestParseTimeline_Edges(t *testing.T) {
	t.Run("no slides", func(t *testing.T) {
		timeline, err := ParseTimeline(strings.NewReader("<html><body><p>x</p></body></html>"))
		require.NoError(t, err)
		assert.Empty(t, timeline)
	})

	t.Run("invalid durations are ignored", func(t *testing.T) {
		deck := `<section class="slide" data-duration="abc"></section><section class="slide" data-duration="-3"></section>`
		timeline, err := ParseTimeline(strings.NewReader(deck))
		require.NoError(t, err)
		require.Len(t, timeline, 2)
		assert.Zero(t, timeline[0].Seconds)
		assert.Zero(t, timeline[1].Seconds)
	})

	t.Run("class must match a whole token", func(t *testing.T) {
		timeline, err := ParseTimeline(strings.NewReader(`<section class="slideshow"></section>`))
		require.NoError(t, err)
		assert.Empty(t, timeline)
	})
}

func TestReadTimeline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.html")
	require.NoError(t, os.WriteFile(path, []byte(sampleDeck), 0o644))

	timeline, err := ReadTimeline(path)
	require.NoError(t, err)
	assert.Len(t, timeline, 3)

	_, err = ReadTimeline(filepath.Join(t.TempDir(), "missing.html"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	viaPort, err := DeckTimeline{}.ReadTimeline(path)
	require.NoError(t, err)
	assert.Equal(t, timeline, viaPort)
}
