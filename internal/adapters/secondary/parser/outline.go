package parser

import (
	"strings"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
	"github.com/fredcamaral/slidecast/internal/domain/ports"
)

// OutlineParser implements ports.OutlineParser. The zero value is ready to use
// and safe for concurrent use since parsing keeps no state between calls.
type OutlineParser struct{}

// NewOutlineParser creates a new outline parser
func NewOutlineParser() *OutlineParser {
	return &OutlineParser{}
}

// Parse implements ports.OutlineParser
func (p *OutlineParser) Parse(text string) *entities.Document {
	return Parse(text)
}

// Format implements ports.OutlineFormatter
func (p *OutlineParser) Format(doc *entities.Document) string {
	return Format(doc)
}

// Parse converts outline text into a document. It never fails: constructs that
// do not match a rule fall through to the next one and finally to a paragraph.
func Parse(text string) *entities.Document {
	doc := entities.NewDocument()

	blocks := splitBlocks(splitLines(text))
	if len(blocks) == 0 {
		return doc
	}

	// Only the first block may be a title block
	if title, subtitle, ok := titleBlock(blocks[0]); ok {
		doc.Title = title
		doc.Subtitle = subtitle
		blocks = blocks[1:]
	}

	for _, block := range blocks {
		doc.Slides = append(doc.Slides, parseSlide(newCursor(block)))
	}

	return doc
}

// ParseSlide parses one separator-free block. A block of blank lines yields a
// slide with no title and no content.
func ParseSlide(block string) entities.Slide {
	return parseSlide(newCursor(splitLines(block)))
}

// splitLines cuts text into lines. Carriage returns at the end of a line are
// dropped, which covers \r\n endings and a stray \r before end of input.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}

// splitBlocks cuts lines at separator lines and drops blocks that are blank
func splitBlocks(lines []string) [][]string {
	var blocks [][]string
	var current []string

	flush := func() {
		for _, line := range current {
			if !isBlank(line) {
				blocks = append(blocks, current)
				break
			}
		}
		current = nil
	}

	for _, line := range lines {
		if isSeparator(line) {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return blocks
}

// titleBlock reports whether every non-blank line of the block is a level-1
// or level-2 heading, and if so returns the first of each.
func titleBlock(lines []string) (title, subtitle string, ok bool) {
	var haveTitle, haveSubtitle bool
	for _, line := range lines {
		if isBlank(line) {
			continue
		}
		if !titleLinePattern.MatchString(strings.TrimSpace(line)) {
			return "", "", false
		}
		if text, isH1 := headingText(line); isH1 {
			if !haveTitle {
				title, haveTitle = text, true
			}
			continue
		}
		if text, isH2 := subheadingText(line); isH2 && !haveSubtitle {
			subtitle, haveSubtitle = text, true
		}
	}
	return title, subtitle, true
}

func parseSlide(c *cursor) entities.Slide {
	slide := entities.Slide{Content: entities.Blocks{}}

	// The first non-blank line is the title only if it is a level-1 heading;
	// otherwise it stays unread and is classified as content.
	c.SkipBlank()
	if line, ok := c.Peek(); ok {
		if title, isHeading := headingText(line); isHeading {
			slide.Title = title
			c.Next()
		}
	}

	s := &slideScanner{cur: c, content: slide.Content}
	for s.step() {
	}
	slide.Content = s.content

	return slide
}

// slideScanner holds the per-slide state machine: the cursor plus the
// pending bullet run that has not been emitted yet.
type slideScanner struct {
	cur     *cursor
	pending []entities.BulletItem
	content entities.Blocks
}

// step classifies the line under the cursor, advances past everything the
// matching rule consumes and reports whether any input was left. At end of
// input the pending bullet run is flushed.
func (s *slideScanner) step() bool {
	line, ok := s.cur.Next()
	if !ok {
		s.flushBullets()
		return false
	}

	switch classify(line) {
	case lineBlank:
		s.flushBullets()
	case lineImage:
		s.flushBullets()
		s.emit(imageBlock(line))
	case lineBullet:
		s.pending = append(s.pending, bulletItem(line))
	case lineFence:
		s.flushBullets()
		s.cur.Back()
		s.emit(readFence(s.cur))
	default:
		s.flushBullets()
		s.emit(entities.Paragraph{Text: strings.TrimSpace(line)})
	}
	return true
}

func (s *slideScanner) emit(block entities.ContentBlock) {
	s.content = append(s.content, block)
}

func (s *slideScanner) flushBullets() {
	if len(s.pending) == 0 {
		return
	}
	s.emit(entities.BulletList{Items: s.pending})
	s.pending = nil
}

func imageBlock(line string) entities.Image {
	m := imagePattern.FindStringSubmatch(strings.TrimSpace(line))
	return entities.Image{Alt: m[1], Src: m[2]}
}

func bulletItem(line string) entities.BulletItem {
	indent, text, _ := splitBullet(line)
	return entities.BulletItem{
		Text:  text,
		Level: bulletLevel(indent),
	}
}

// readFence consumes an opening fence, the verbatim body and the closing
// fence if there is one. An unclosed fence runs to the end of the block.
func readFence(c *cursor) entities.CodeBlock {
	opening, _ := c.Next()
	lang := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(opening), fenceMarker))
	if lang == "" {
		lang = entities.DefaultCodeLanguage
	}

	var body []string
	for {
		line, ok := c.Next()
		if !ok || strings.HasPrefix(strings.TrimSpace(line), fenceMarker) {
			break
		}
		body = append(body, line)
	}

	return entities.CodeBlock{Language: lang, Code: strings.Join(body, "\n")}
}

var (
	_ ports.OutlineParser    = (*OutlineParser)(nil)
	_ ports.OutlineFormatter = (*OutlineParser)(nil)
)
