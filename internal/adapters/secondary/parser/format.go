package parser

import (
	"strings"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
)

// Format writes a document back out as outline text. Parsing the result yields
// a document structurally equal to any document Parse produced. Slide durations
// have no outline form and are dropped.
func Format(doc *entities.Document) string {
	var blocks []string

	if doc.HasTitleBlock() {
		var lines []string
		if doc.Title != "" {
			lines = append(lines, "# "+doc.Title)
		}
		if doc.Subtitle != "" {
			lines = append(lines, "## "+doc.Subtitle)
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	for _, slide := range doc.Slides {
		blocks = append(blocks, formatSlide(slide))
	}

	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n"+separatorMarker+"\n\n") + "\n"
}

func formatSlide(slide entities.Slide) string {
	var parts []string
	if slide.Title != "" {
		parts = append(parts, "# "+slide.Title)
	}

	// Blocks are separated by a blank line, which also keeps adjacent bullet
	// lists from merging on re-parse.
	for _, block := range slide.Content {
		parts = append(parts, formatBlock(block))
	}

	return strings.Join(parts, "\n\n")
}

func formatBlock(block entities.ContentBlock) string {
	switch b := block.(type) {
	case entities.BulletList:
		lines := make([]string, 0, len(b.Items))
		for _, item := range b.Items {
			lines = append(lines, strings.Repeat("  ", item.Level)+"- "+item.Text)
		}
		return strings.Join(lines, "\n")
	case entities.Paragraph:
		return b.Text
	case entities.CodeBlock:
		var sb strings.Builder
		sb.WriteString(fenceMarker)
		sb.WriteString(b.Language)
		sb.WriteByte('\n')
		if b.Code != "" {
			sb.WriteString(b.Code)
			sb.WriteByte('\n')
		}
		sb.WriteString(fenceMarker)
		return sb.String()
	case entities.Image:
		return "![" + b.Alt + "](" + b.Src + ")"
	default:
		return ""
	}
}
