package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// fenceMarker opens and closes a verbatim code region
const fenceMarker = "```"

// separatorMarker on a line of its own splits slides
const separatorMarker = "---"

var (
	headingPattern    = regexp.MustCompile(`^#\s+(\S.*)$`)
	subheadingPattern = regexp.MustCompile(`^##\s+(\S.*)$`)
	titleLinePattern  = regexp.MustCompile(`^#{1,2}\s+\S`)
	imagePattern      = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)]+)\)$`)
)

type lineKind int

const (
	lineBlank lineKind = iota
	lineImage
	lineBullet
	lineFence
	lineText
)

func (k lineKind) String() string {
	switch k {
	case lineBlank:
		return "blank"
	case lineImage:
		return "image"
	case lineBullet:
		return "bullet"
	case lineFence:
		return "fence"
	case lineText:
		return "text"
	default:
		return "unknown"
	}
}

// classify applies the content rules in precedence order: image, bullet,
// fence, then text. Bullets are matched on the raw line so indentation survives.
func classify(line string) lineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return lineBlank
	case imagePattern.MatchString(trimmed):
		return lineImage
	case isBullet(line):
		return lineBullet
	case strings.HasPrefix(trimmed, fenceMarker):
		return lineFence
	default:
		return lineText
	}
}

func isSeparator(line string) bool {
	return strings.TrimSpace(line) == separatorMarker
}

// headingText returns the text of a level-1 heading line
func headingText(line string) (string, bool) {
	m := headingPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// subheadingText returns the text of a level-2 heading line
func subheadingText(line string) (string, bool) {
	m := subheadingPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// splitBullet breaks a bullet line into its indent and trimmed text. A bullet
// is any run of leading whitespace, a - or * marker, at least one whitespace
// character and some text. Whitespace is unicode.IsSpace, the same set
// strings.TrimSpace removes.
func splitBullet(line string) (indent, text string, ok bool) {
	rest := strings.TrimLeftFunc(line, unicode.IsSpace)
	if rest == "" || (rest[0] != '-' && rest[0] != '*') {
		return "", "", false
	}

	body := rest[1:]
	afterMarker := strings.TrimLeftFunc(body, unicode.IsSpace)
	if len(afterMarker) == len(body) {
		return "", "", false
	}

	text = strings.TrimSpace(afterMarker)
	if text == "" {
		return "", "", false
	}
	return line[:len(line)-len(rest)], text, true
}

func isBullet(line string) bool {
	_, _, ok := splitBullet(line)
	return ok
}

// bulletLevel is the leading whitespace width in characters halved; a tab
// counts as one
func bulletLevel(indent string) int {
	return utf8.RuneCountInString(indent) / 2
}
