// Package capture turns a rendered deck into video frames and encodes them.
package capture

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
	"github.com/fredcamaral/slidecast/internal/domain/ports"
)

// ReadTimeline reads the slides of a rendered deck file
func ReadTimeline(markupPath string) ([]entities.SlideTiming, error) {
	f, err := os.Open(markupPath) // #nosec G304 - deck path supplied on the command line
	if err != nil {
		return nil, fmt.Errorf("opening deck: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseTimeline(f)
}

// DeckTimeline implements ports.TimelineReader
type DeckTimeline struct{}

// ReadTimeline reads the slides of a rendered deck file
func (DeckTimeline) ReadTimeline(markupPath string) ([]entities.SlideTiming, error) {
	return ReadTimeline(markupPath)
}

// ParseTimeline returns one timing per section.slide element in document
// order. Seconds is 0 when the section carries no usable data-duration.
func ParseTimeline(r io.Reader) ([]entities.SlideTiming, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing deck: %w", err)
	}

	var timeline []entities.SlideTiming
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "section" && hasClass(n, "slide") {
			timeline = append(timeline, readSlide(n, len(timeline)))
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	return timeline, nil
}

func readSlide(section *html.Node, index int) entities.SlideTiming {
	slide := entities.SlideTiming{
		Index:      index,
		TitleSlide: hasClass(section, "title-slide"),
	}

	if v, ok := attr(section, "data-duration"); ok {
		if seconds, err := strconv.ParseFloat(v, 64); err == nil && seconds > 0 {
			slide.Seconds = seconds
		}
	}

	var walk func(n *html.Node, depth int)
	walk = func(n *html.Node, depth int) {
		if n.Type != html.ElementNode {
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				walk(child, depth)
			}
			return
		}

		switch n.Data {
		case "h1":
			if slide.Title == "" {
				slide.Title = textContent(n, false)
				return
			}
			slide.Lines = appendLine(slide.Lines, textContent(n, false))
			return
		case "h2", "p", "figcaption":
			slide.Lines = appendLine(slide.Lines, textContent(n, false))
			return
		case "pre":
			code := strings.TrimRight(rawText(n), "\n")
			if code != "" {
				slide.Lines = append(slide.Lines, strings.Split(code, "\n")...)
			}
			return
		case "ul":
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				walk(child, depth+1)
			}
			return
		case "li":
			if text := textContent(n, true); text != "" {
				slide.Lines = append(slide.Lines, strings.Repeat("  ", max(depth-1, 0))+"• "+text)
			}
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				if child.Type == html.ElementNode && child.Data == "ul" {
					walk(child, depth)
				}
			}
			return
		}

		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child, depth)
		}
	}

	for child := section.FirstChild; child != nil; child = child.NextSibling {
		walk(child, 0)
	}

	return slide
}

func appendLine(lines []string, line string) []string {
	if line == "" {
		return lines
	}
	return append(lines, line)
}

// textContent joins the text below n with single spaces. With skipLists
// set, nested lists are left out.
func textContent(n *html.Node, skipLists bool) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, strings.Fields(t)...)
			}
			return
		}
		if skipLists && n.Type == html.ElementNode && n.Data == "ul" {
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child)
	}
	return strings.Join(parts, " ")
}

// rawText keeps whitespace, for code blocks
func rawText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

var _ ports.TimelineReader = DeckTimeline{}
