package entities

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Helpers(t *testing.T) {
	doc := NewDocument()

	assert.NotNil(t, doc.Slides)
	assert.Equal(t, 0, doc.SlideCount())
	assert.False(t, doc.HasTitleBlock())

	doc.Subtitle = "sub"
	assert.True(t, doc.HasTitleBlock())

	doc.Slides = append(doc.Slides, Slide{Title: "a"})
	assert.Equal(t, 1, doc.SlideCount())
}

func TestDocument_Normalize(t *testing.T) {
	doc := &Document{Slides: []Slide{{Title: "a"}}}
	doc.Normalize()

	assert.NotNil(t, doc.Slides[0].Content)
	assert.Empty(t, doc.Slides[0].Content)

	empty := &Document{}
	empty.Normalize()
	assert.Equal(t, []Slide{}, empty.Slides)
}

func TestBlock_Kind(t *testing.T) {
	assert.Equal(t, KindBullets, BulletList{}.Kind())
	assert.Equal(t, KindText, Paragraph{}.Kind())
	assert.Equal(t, KindCode, CodeBlock{}.Kind())
	assert.Equal(t, KindImage, Image{}.Kind())
}

func TestSlide_IsEmpty(t *testing.T) {
	assert.True(t, (&Slide{}).IsEmpty())
	assert.False(t, (&Slide{Title: "x"}).IsEmpty())
	assert.False(t, (&Slide{Content: Blocks{Paragraph{Text: "x"}}}).IsEmpty())
}

func TestDocument_Validate(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		doc := &Document{
			Title: "Deck",
			Slides: []Slide{
				{Title: "empty"},
				{Content: Blocks{
					BulletList{Items: []BulletItem{{Text: "a"}, {Text: "b", Level: 3}}},
					Paragraph{Text: "p"},
					CodeBlock{Language: "go"},
					Image{Src: "a.png"},
				}, Duration: 2.5},
			},
		}
		assert.NoError(t, doc.Validate())
	})

	tests := []struct {
		name    string
		slide   Slide
		wantErr string
	}{
		{"empty bullet list", Slide{Content: Blocks{BulletList{}}}, "no items"},
		{"negative level", Slide{Content: Blocks{BulletList{Items: []BulletItem{{Text: "a", Level: -1}}}}}, "negative level"},
		{"blank paragraph", Slide{Content: Blocks{Paragraph{Text: " "}}}, "paragraph is empty"},
		{"code without language", Slide{Content: Blocks{CodeBlock{Code: "x"}}}, "no language"},
		{"image without src", Slide{Content: Blocks{Image{Alt: "a"}}}, "no src"},
		{"nil block", Slide{Content: Blocks{nil}}, "nil block"},
		{"negative duration", Slide{Duration: -1}, "duration"},
		{"duration over an hour", Slide{Duration: 3601}, "duration"},
		{"infinite duration", Slide{Duration: math.Inf(1)}, "duration"},
		{"nan duration", Slide{Duration: math.NaN()}, "duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &Document{Slides: []Slide{{Title: "ok"}, tt.slide}}

			err := doc.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "slide 2")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("reports every slide", func(t *testing.T) {
		doc := &Document{Slides: []Slide{
			{Content: Blocks{Paragraph{}}},
			{Content: Blocks{Image{}}},
		}}

		err := doc.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "slide 1")
		assert.Contains(t, err.Error(), "slide 2")
	})
}

func TestSlideDuration(t *testing.T) {
	assert.Equal(t, 5.0, SlideDuration(Slide{}, 5))
	assert.Equal(t, 2.0, SlideDuration(Slide{Duration: 2}, 5))
	assert.Equal(t, MaxSlideSeconds, SlideDuration(Slide{Duration: 1e300}, 5))
	assert.Equal(t, 5.0, SlideDuration(Slide{Duration: math.NaN()}, 5))
}

func TestClampSeconds(t *testing.T) {
	assert.Equal(t, 2.5, ClampSeconds(2.5))
	assert.Equal(t, MaxSlideSeconds, ClampSeconds(math.Inf(1)))
	assert.Equal(t, MaxSlideSeconds, ClampSeconds(1e300))
	assert.Equal(t, 0.0, ClampSeconds(math.Inf(-1)))
	assert.Equal(t, 0.0, ClampSeconds(math.NaN()))
	assert.Equal(t, 0.0, ClampSeconds(-3))

	assert.True(t, ValidSlideSeconds(0))
	assert.True(t, ValidSlideSeconds(MaxSlideSeconds))
	assert.False(t, ValidSlideSeconds(MaxSlideSeconds+1))
	assert.False(t, ValidSlideSeconds(math.NaN()))
	assert.False(t, ValidSlideSeconds(math.Inf(1)))
}

func TestFrameCount(t *testing.T) {
	tests := []struct {
		seconds float64
		fps     int
		want    int
	}{
		{5, 30, 150},
		{2.5, 24, 60},
		{0.01, 30, 1},
		{0, 30, 1},
		{1.0 / 3.0, 30, 10},
		{math.Inf(1), 30, 108000},
		{1e300, 1, 3600},
		{math.NaN(), 30, 1},
		{math.Inf(-1), 30, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FrameCount(tt.seconds, tt.fps), "%v s at %d fps", tt.seconds, tt.fps)
	}

	assert.Equal(t, 7, TotalFrames([]Frame{{Count: 3}, {Count: 4}}))
}

func TestResolveTimings(t *testing.T) {
	timeline := []SlideTiming{
		{Index: 0, Seconds: 4},
		{Index: 1},
		{Index: 2, Seconds: 1.5},
		{Index: 3},
	}

	tests := []struct {
		name     string
		override []float64
		want     []float64
	}{
		{"markup then default", nil, []float64{4, 5, 1.5, 5}},
		{"override wins", []float64{1, 2, 3, 4}, []float64{1, 2, 3, 4}},
		{"short override", []float64{9}, []float64{9, 5, 1.5, 5}},
		{"zero override falls through", []float64{0, 0, 7}, []float64{4, 5, 7, 5}},
		{"extra overrides ignored", []float64{1, 1, 1, 1, 1, 1}, []float64{1, 1, 1, 1}},
		{"unusable overrides are capped or skipped", []float64{math.NaN(), math.Inf(1), 1e300}, []float64{4, 3600, 3600, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveTimings(timeline, tt.override, 5))
		})
	}

	t.Run("markup durations are capped", func(t *testing.T) {
		got := ResolveTimings([]SlideTiming{{Seconds: math.Inf(1)}, {Seconds: 7200}}, nil, 5)
		assert.Equal(t, []float64{3600, 3600}, got)
	})
}
