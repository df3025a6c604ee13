// Package renderer turns documents into self-contained HTML decks.
package renderer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strconv"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
	"github.com/fredcamaral/slidecast/internal/domain/ports"
)

// TemplateRenderer implements ports.Renderer using html/template
type TemplateRenderer struct {
	templates *template.Template
	inline    *InlineRenderer
	logger    *slog.Logger
}

// NewTemplateRenderer creates a new deck renderer
func NewTemplateRenderer(logger *slog.Logger) (*TemplateRenderer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	tmpl, err := template.New("deck").Parse(deckTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing deck template: %w", err)
	}

	if _, err := tmpl.New("block").Parse(blockTemplate); err != nil {
		return nil, fmt.Errorf("parsing block template: %w", err)
	}

	return &TemplateRenderer{
		templates: tmpl,
		inline:    NewInlineRenderer(),
		logger:    logger.With("service", "renderer"),
	}, nil
}

type deckView struct {
	Title      string
	Stylesheet template.CSS
	Theme      string
	Transition entities.TransitionConfig
	Slides     []slideView
	Script     scriptConfig
}

type slideView struct {
	ID         string
	Index      int
	Duration   string
	TitleSlide bool
	Title      string
	Subtitle   string
	Blocks     []blockView
}

type scriptConfig struct {
	LiveReload   bool `json:"liveReload"`
	TransitionMs int  `json:"transitionMs"`
	SlideCount   int  `json:"slideCount"`
}

// Render renders a complete deck. A title slide comes first when the
// document has a title or subtitle.
func (r *TemplateRenderer) Render(ctx context.Context, doc *entities.Document, opts entities.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.New("document cannot be nil")
	}

	text := escapeText
	if opts.InlineMarkdown {
		text = r.inline.Render
	}

	view := deckView{
		Title:      deckTitle(doc),
		Transition: opts.Transition,
		Script: scriptConfig{
			LiveReload:   opts.LiveReload,
			TransitionMs: opts.Transition.DurationMs,
		},
	}
	if view.Transition.Style == "" {
		view.Transition.Style = entities.TransitionNone
	}
	if opts.Theme != nil {
		view.Theme = opts.Theme.Name
		view.Stylesheet = template.CSS(opts.Theme.Stylesheet) // #nosec G203 - theme files are trusted local input
	}

	if doc.HasTitleBlock() {
		view.Slides = append(view.Slides, slideView{
			TitleSlide: true,
			Title:      doc.Title,
			Subtitle:   doc.Subtitle,
			Duration:   formatSeconds(opts.DefaultSlideSeconds),
		})
	}

	for i, slide := range doc.Slides {
		sv := slideView{
			Title:    slide.Title,
			Duration: formatSeconds(entities.SlideDuration(slide, opts.DefaultSlideSeconds)),
			Blocks:   make([]blockView, 0, len(slide.Content)),
		}
		for j, block := range slide.Content {
			bv, err := viewBlock(block, text)
			if err != nil {
				return nil, fmt.Errorf("rendering slide %d block %d: %w", i+1, j+1, err)
			}
			sv.Blocks = append(sv.Blocks, bv)
		}
		view.Slides = append(view.Slides, sv)
	}

	for i := range view.Slides {
		view.Slides[i].Index = i
		view.Slides[i].ID = "slide-" + strconv.Itoa(i+1)
	}
	view.Script.SlideCount = len(view.Slides)

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "deck", view); err != nil {
		return nil, fmt.Errorf("executing deck template: %w", err)
	}

	r.logger.Debug("Deck rendered",
		slog.Int("slides", len(view.Slides)),
		slog.String("theme", view.Theme),
		slog.Int("bytes", buf.Len()),
	)

	return buf.Bytes(), nil
}

func deckTitle(doc *entities.Document) string {
	if doc.Title != "" {
		return doc.Title
	}
	for _, slide := range doc.Slides {
		if slide.Title != "" {
			return slide.Title
		}
	}
	return "slidecast"
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}

var _ ports.Renderer = (*TemplateRenderer)(nil)

const blockTemplate = `{{- if eq .Kind "bullets"}}{{.HTML}}
{{- else if eq .Kind "text"}}<p>{{.HTML}}</p>
{{- else if eq .Kind "code"}}<pre><code class="language-{{.Language}}">{{.Code}}</code></pre>
{{- else if eq .Kind "image"}}<figure><img src="{{.Src}}" alt="{{.Alt}}">{{if .Alt}}<figcaption>{{.Alt}}</figcaption>{{end}}</figure>
{{- end}}`

const deckTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<meta name="generator" content="slidecast">
<title>{{.Title}}</title>
<style>
.deck .slide { visibility: hidden; opacity: 0; }
.deck .slide.active { visibility: visible; opacity: 1; transform: none; }
.slide li.skip { list-style: none; }
body[data-transition="fade"] .slide { transition: opacity {{.Transition.DurationMs}}ms ease, visibility {{.Transition.DurationMs}}ms; }
body[data-transition="slide"] .slide { transform: translateX(6%); transition: opacity {{.Transition.DurationMs}}ms ease, transform {{.Transition.DurationMs}}ms ease, visibility {{.Transition.DurationMs}}ms; }
body.capture .slide { transition: none !important; }
</style>
<style>
{{.Stylesheet}}
</style>
</head>
<body data-transition="{{.Transition.Style}}" data-theme="{{.Theme}}">
<main class="deck">
{{- range .Slides}}
{{- if .TitleSlide}}
<section class="slide title-slide" id="{{.ID}}" data-index="{{.Index}}" data-duration="{{.Duration}}">
{{- if .Title}}<h1>{{.Title}}</h1>{{end}}
{{- if .Subtitle}}<h2>{{.Subtitle}}</h2>{{end}}
</section>
{{- else}}
<section class="slide" id="{{.ID}}" data-index="{{.Index}}" data-duration="{{.Duration}}">
{{- if .Title}}
<h1>{{.Title}}</h1>
{{- end}}
{{- range .Blocks}}
{{template "block" .}}
{{- end}}
</section>
{{- end}}
{{- end}}
</main>
<div class="progress"></div>
<script>
(function () {
  var config = {{.Script}};
  var slides = Array.prototype.slice.call(document.querySelectorAll("section.slide"));
  var progress = document.querySelector(".progress");
  var capture = new URLSearchParams(window.location.search).has("capture");
  var current = 0;

  if (capture) {
    document.body.classList.add("capture");
    document.body.setAttribute("data-transition", "none");
  }

  function fromHash() {
    var n = parseInt(window.location.hash.slice(1), 10);
    return isNaN(n) ? 0 : n - 1;
  }

  function show(n) {
    if (slides.length === 0) {
      return;
    }
    current = Math.max(0, Math.min(slides.length - 1, n));
    slides.forEach(function (slide, i) {
      slide.classList.toggle("active", i === current);
    });
    if (progress) {
      progress.style.width = ((current + 1) / slides.length * 100) + "%";
    }
    if (!capture && window.location.hash !== "#" + (current + 1)) {
      history.replaceState(null, "", "#" + (current + 1));
    }
  }

  document.addEventListener("keydown", function (e) {
    switch (e.key) {
    case "ArrowRight":
    case "ArrowDown":
    case "PageDown":
    case " ":
      show(current + 1);
      break;
    case "ArrowLeft":
    case "ArrowUp":
    case "PageUp":
      show(current - 1);
      break;
    case "Home":
      show(0);
      break;
    case "End":
      show(slides.length - 1);
      break;
    default:
      return;
    }
    e.preventDefault();
  });

  window.addEventListener("hashchange", function () {
    show(fromHash());
  });

  function connect() {
    var scheme = window.location.protocol === "https:" ? "wss:" : "ws:";
    var ws = new WebSocket(scheme + "//" + window.location.host + "/ws");
    ws.onmessage = function (msg) {
      var event = JSON.parse(msg.data);
      if (event.type === "reload") {
        window.location.reload();
      } else if (event.type === "error") {
        console.error("slidecast:", event.data);
      }
    };
    ws.onclose = function () {
      setTimeout(connect, 1000);
    };
  }

  show(fromHash());

  if (config.liveReload && !capture && /^https?:$/.test(window.location.protocol)) {
    connect();
  }
})();
</script>
</body>
</html>
`
