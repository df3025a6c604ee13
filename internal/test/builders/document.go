package builders

import (
	"fmt"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
)

// DocumentBuilder helps build Document entities for testing
type DocumentBuilder struct {
	doc *entities.Document
}

// NewDocumentBuilder creates a document builder with a title and no slides
func NewDocumentBuilder() *DocumentBuilder {
	return &DocumentBuilder{
		doc: &entities.Document{
			Title:  "Test Deck",
			Slides: []entities.Slide{},
		},
	}
}

// WithTitle sets the document title
func (b *DocumentBuilder) WithTitle(title string) *DocumentBuilder {
	b.doc.Title = title
	return b
}

// WithSubtitle sets the document subtitle
func (b *DocumentBuilder) WithSubtitle(subtitle string) *DocumentBuilder {
	b.doc.Subtitle = subtitle
	return b
}

// WithoutTitleBlock clears title and subtitle
func (b *DocumentBuilder) WithoutTitleBlock() *DocumentBuilder {
	b.doc.Title = ""
	b.doc.Subtitle = ""
	return b
}

// WithSlide appends a slide
func (b *DocumentBuilder) WithSlide(slide entities.Slide) *DocumentBuilder {
	b.doc.Slides = append(b.doc.Slides, slide)
	return b
}

// WithSlideCount appends count slides with a title and one paragraph each
func (b *DocumentBuilder) WithSlideCount(count int) *DocumentBuilder {
	for i := 0; i < count; i++ {
		n := len(b.doc.Slides) + 1
		b.doc.Slides = append(b.doc.Slides, NewSlideBuilder().
			WithTitle(fmt.Sprintf("Slide %d", n)).
			WithParagraph(fmt.Sprintf("Content of slide %d", n)).
			Build())
	}
	return b
}

// Build returns a copy of the document so the builder can be reused
func (b *DocumentBuilder) Build() *entities.Document {
	slides := make([]entities.Slide, len(b.doc.Slides))
	for i, slide := range b.doc.Slides {
		slides[i] = copySlide(slide)
	}

	return &entities.Document{
		Title:    b.doc.Title,
		Subtitle: b.doc.Subtitle,
		Slides:   slides,
	}
}

// SlideBuilder helps build Slide entities for testing. Consecutive bullets
// join one list, as the parser would produce.
type SlideBuilder struct {
	slide entities.Slide
}

// NewSlideBuilder creates a slide builder for an empty, untitled slide
func NewSlideBuilder() *SlideBuilder {
	return &SlideBuilder{slide: entities.Slide{Content: entities.Blocks{}}}
}

// WithTitle sets the slide title
func (b *SlideBuilder) WithTitle(title string) *SlideBuilder {
	b.slide.Title = title
	return b
}

// WithBullet adds a bullet, extending the list when the previous block is one
func (b *SlideBuilder) WithBullet(text string, level int) *SlideBuilder {
	item := entities.BulletItem{Text: text, Level: level}

	if n := len(b.slide.Content); n > 0 {
		if list, ok := b.slide.Content[n-1].(entities.BulletList); ok {
			list.Items = append(list.Items, item)
			b.slide.Content[n-1] = list
			return b
		}
	}

	b.slide.Content = append(b.slide.Content, entities.BulletList{Items: []entities.BulletItem{item}})
	return b
}

// WithBullets adds top-level bullets
func (b *SlideBuilder) WithBullets(texts ...string) *SlideBuilder {
	for _, text := range texts {
		b.WithBullet(text, 0)
	}
	return b
}

// WithParagraph adds a paragraph
func (b *SlideBuilder) WithParagraph(text string) *SlideBuilder {
	b.slide.Content = append(b.slide.Content, entities.Paragraph{Text: text})
	return b
}

// WithCode adds a code block
func (b *SlideBuilder) WithCode(language, code string) *SlideBuilder {
	b.slide.Content = append(b.slide.Content, entities.CodeBlock{Language: language, Code: code})
	return b
}

// WithImage adds an image
func (b *SlideBuilder) WithImage(src, alt string) *SlideBuilder {
	b.slide.Content = append(b.slide.Content, entities.Image{Src: src, Alt: alt})
	return b
}

// WithDuration sets the capture duration in seconds
func (b *SlideBuilder) WithDuration(seconds float64) *SlideBuilder {
	b.slide.Duration = seconds
	return b
}

// Build returns a copy of the slide
func (b *SlideBuilder) Build() entities.Slide {
	return copySlide(b.slide)
}

// MinimalDocument returns a document with a single bullet slide
func MinimalDocument() *entities.Document {
	return NewDocumentBuilder().
		WithTitle("Minimal").
		WithSlide(NewSlideBuilder().WithTitle("Only").WithBullets("one point").Build()).
		Build()
}

// LargeDocument returns a document with 50 slides
func LargeDocument() *entities.Document {
	return NewDocumentBuilder().
		WithTitle("Large Deck").
		WithSlideCount(50).
		Build()
}

// MixedDocument returns a document using every block kind
func MixedDocument() *entities.Document {
	return NewDocumentBuilder().
		WithTitle("Mixed").
		WithSubtitle("Every block").
		WithSlide(NewSlideBuilder().
			WithTitle("Bullets").
			WithBullet("top", 0).
			WithBullet("nested", 1).
			WithBullet("back", 0).
			Build()).
		WithSlide(NewSlideBuilder().
			WithTitle("Code").
			WithParagraph("A snippet:").
			WithCode("go", "fmt.Println(\"hi\")").
			Build()).
		WithSlide(NewSlideBuilder().
			WithImage("chart.png", "Chart").
			WithDuration(2.5).
			Build()).
		Build()
}

func copySlide(slide entities.Slide) entities.Slide {
	content := make(entities.Blocks, len(slide.Content))
	for i, block := range slide.Content {
		if list, ok := block.(entities.BulletList); ok {
			list.Items = append([]entities.BulletItem{}, list.Items...)
			block = list
		}
		content[i] = block
	}

	slide.Content = content
	return slide
}
