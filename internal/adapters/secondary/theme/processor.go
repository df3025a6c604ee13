package theme

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	rootBlockPattern = regexp.MustCompile(`:root\s*\{[^}]*\}`)
	commentPattern   = regexp.MustCompile(`/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`)
	spacePattern     = regexp.MustCompile(`\s+`)
	punctPattern     = regexp.MustCompile(`\s*([{}:;,>])\s*`)
	importPattern    = regexp.MustCompile(`@import\s+["']([^"']+)["'];`)
)

// StyleProcessor prepares a theme stylesheet for embedding in a deck
type StyleProcessor struct {
	minify bool
}

// NewStyleProcessor creates a processor; minify strips comments and whitespace
func NewStyleProcessor(minify bool) *StyleProcessor {
	return &StyleProcessor{minify: minify}
}

// Process applies variable overrides, disables @import (decks are
// self-contained) and optionally minifies.
func (p *StyleProcessor) Process(css string, variables map[string]string) string {
	css = ApplyVariables(css, variables)
	css = importPattern.ReplaceAllStringFunc(css, func(match string) string {
		return "/* " + match + " */"
	})
	if p.minify {
		css = MinifyCSS(css)
	}
	return css
}

// ApplyVariables rewrites `--name: value;` declarations inside :root blocks.
// Variables the stylesheet does not declare are appended to the first block,
// or to a new :root block when there is none.
func ApplyVariables(css string, variables map[string]string) string {
	if len(variables) == 0 {
		return css
	}

	names := make([]string, 0, len(variables))
	for name := range variables {
		names = append(names, strings.TrimPrefix(name, "--"))
	}
	sort.Strings(names)

	lookup := func(name string) string {
		if v, ok := variables[name]; ok {
			return v
		}
		return variables["--"+name]
	}

	declared := make(map[string]bool)
	css = rootBlockPattern.ReplaceAllStringFunc(css, func(block string) string {
		for _, name := range names {
			decl := regexp.MustCompile(`--` + regexp.QuoteMeta(name) + `:\s*[^;]+;`)
			if decl.MatchString(block) {
				declared[name] = true
				block = decl.ReplaceAllLiteralString(block, fmt.Sprintf("--%s: %s;", name, lookup(name)))
			}
		}
		return block
	})

	var missing strings.Builder
	for _, name := range names {
		if !declared[name] {
			fmt.Fprintf(&missing, "  --%s: %s;\n", name, lookup(name))
		}
	}
	if missing.Len() == 0 {
		return css
	}

	if loc := rootBlockPattern.FindStringIndex(css); loc != nil {
		closing := loc[1] - 1
		return css[:closing] + missing.String() + css[closing:]
	}
	return ":root {\n" + missing.String() + "}\n" + css
}

// MinifyCSS removes comments and collapses whitespace
func MinifyCSS(css string) string {
	css = commentPattern.ReplaceAllString(css, "")
	css = spacePattern.ReplaceAllString(css, " ")
	css = punctPattern.ReplaceAllString(css, "$1")
	css = strings.ReplaceAll(css, ";}", "}")
	return strings.TrimSpace(css)
}
