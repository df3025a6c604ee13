package entities

import (
	"errors"
	"fmt"
	"strings"
)

// BlockKind is the wire tag of a content block
type BlockKind string

const (
	KindBullets BlockKind = "bullets"
	KindText    BlockKind = "text"
	KindCode    BlockKind = "code"
	KindImage   BlockKind = "image"
)

// DefaultCodeLanguage is used for fences opened without a language tag
const DefaultCodeLanguage = "text"

// Document is the structured form of one outline
type Document struct {
	// Title is the presentation title from the leading title block
	Title string `yaml:"title,omitempty" json:"title,omitempty"`

	// Subtitle is the presentation subtitle from the leading title block
	Subtitle string `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`

	// Slides are in outline order
	Slides []Slide `yaml:"slides" json:"slides"`
}

// Slide is a single slide of a document
type Slide struct {
	// Title is the first level-1 heading of the slide block, if any
	Title string `yaml:"title,omitempty" json:"title,omitempty"`

	// Content holds the slide body in source order
	Content Blocks `yaml:"content" json:"content"`

	// Duration is an optional capture duration in seconds; 0 means use the default
	Duration float64 `yaml:"duration,omitempty" json:"duration,omitempty"`
}

// ContentBlock is one of BulletList, Paragraph, CodeBlock or Image
type ContentBlock interface {
	Kind() BlockKind
}

// Blocks is an ordered sequence of content blocks
type Blocks []ContentBlock

// BulletItem is one bullet line with its nesting depth
type BulletItem struct {
	Text  string `yaml:"text" json:"text"`
	Level int    `yaml:"level" json:"level"`
}

// BulletList is a run of contiguous bullet lines
type BulletList struct {
	Items []BulletItem
}

// Paragraph is a single line of text
type Paragraph struct {
	Text string
}

// CodeBlock is a fenced code region, newlines preserved
type CodeBlock struct {
	Language string
	Code     string
}

// Image is a full-line image reference
type Image struct {
	Src string
	Alt string
}

func (BulletList) Kind() BlockKind { return KindBullets }
func (Paragraph) Kind() BlockKind  { return KindText }
func (CodeBlock) Kind() BlockKind  { return KindCode }
func (Image) Kind() BlockKind      { return KindImage }

// NewDocument returns an empty document with a non-nil slide list
func NewDocument() *Document {
	return &Document{Slides: []Slide{}}
}

// SlideCount returns the number of content slides
func (d *Document) SlideCount() int {
	return len(d.Slides)
}

// HasTitleBlock reports whether the document carries a title or subtitle
func (d *Document) HasTitleBlock() bool {
	return d.Title != "" || d.Subtitle != ""
}

// Normalize replaces nil slices with empty ones so decoded and parsed documents compare equal
func (d *Document) Normalize() {
	if d.Slides == nil {
		d.Slides = []Slide{}
	}
	for i := range d.Slides {
		if d.Slides[i].Content == nil {
			d.Slides[i].Content = Blocks{}
		}
	}
}

// Validate checks the structural invariants a parsed document always satisfies.
// Hand-edited documents are checked with it before rendering.
func (d *Document) Validate() error {
	var errs []error
	for i, slide := range d.Slides {
		if err := slide.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("slide %d: %w", i+1, err))
		}
	}
	return errors.Join(errs...)
}

// IsEmpty reports whether the slide has neither a title nor content
func (s *Slide) IsEmpty() bool {
	return s.Title == "" && len(s.Content) == 0
}

// Validate checks a single slide
func (s *Slide) Validate() error {
	if !ValidSlideSeconds(s.Duration) {
		return fmt.Errorf("duration must be between 0 and %g seconds", MaxSlideSeconds)
	}

	var errs []error
	for i, block := range s.Content {
		if err := validateBlock(block); err != nil {
			errs = append(errs, fmt.Errorf("block %d: %w", i+1, err))
		}
	}
	return errors.Join(errs...)
}

func validateBlock(block ContentBlock) error {
	switch b := block.(type) {
	case BulletList:
		if len(b.Items) == 0 {
			return errors.New("bullet list has no items")
		}
		for _, item := range b.Items {
			if item.Level < 0 {
				return fmt.Errorf("bullet %q has negative level %d", item.Text, item.Level)
			}
		}
	case Paragraph:
		if strings.TrimSpace(b.Text) == "" {
			return errors.New("paragraph is empty")
		}
	case CodeBlock:
		if b.Language == "" {
			return errors.New("code block has no language")
		}
	case Image:
		if b.Src == "" {
			return errors.New("image has no src")
		}
	case nil:
		return errors.New("nil block")
	default:
		return fmt.Errorf("unknown block kind %q", block.Kind())
	}
	return nil
}
