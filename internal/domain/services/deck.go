package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
	"github.com/fredcamaral/slidecast/internal/domain/ports"
)

// DeckDependencies are the adapters a DeckService drives. Capture and
// export ports may be nil for commands that never use them.
type DeckDependencies struct {
	Parser    ports.OutlineParser
	Formatter ports.OutlineFormatter
	Store     ports.DocumentStore
	Themes    ports.ThemeLoader
	Renderer  ports.Renderer
	Writer    ports.FileWriter

	Timeline ports.TimelineReader
	Driver   ports.CaptureDriver
	Encoder  ports.VideoEncoder
	Exporter ports.HandoutExporter
}

// DeckService runs the outline -> document -> deck -> video pipeline
type DeckService struct {
	deps   DeckDependencies
	config *entities.Config
	logger *slog.Logger
}

// NewDeckService creates a deck service. config supplies theme, render and
// capture settings; it must not be nil.
func NewDeckService(deps DeckDependencies, config *entities.Config, logger *slog.Logger) *DeckService {
	if logger == nil {
		logger = slog.Default()
	}

	return &DeckService{
		deps:   deps,
		config: config,
		logger: logger.With("service", "deck"),
	}
}

// BuildRequest names the outputs of a build. Empty paths are skipped.
type BuildRequest struct {
	Source       string
	DocumentPath string
	HTMLPath     string
}

// BuildResult describes what a build produced
type BuildResult struct {
	Deck         *entities.Deck
	DocumentPath string
	HTMLPath     string
}

// CaptureRequest describes one video capture. Source is a rendered deck
// (.html) or anything LoadDocument accepts.
type CaptureRequest struct {
	Source  string
	Output  string
	Timings []float64
}

// CaptureResult summarises a finished capture
type CaptureResult struct {
	Output   string
	Slides   int
	Frames   int
	Duration time.Duration
}

// IsDocumentPath reports whether path names a YAML or JSON document rather
// than an outline
func IsDocumentPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}

// IsMarkupPath reports whether path names a rendered deck
func IsMarkupPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	default:
		return false
	}
}

// LoadOutline reads outline text. Access errors carry a hint on how to fix them.
func (s *DeckService) LoadOutline(path string) (string, error) {
	if path == "" {
		return "", errors.New("outline path cannot be empty")
	}

	data, err := os.ReadFile(path) // #nosec G304 - outline path supplied on the command line
	switch {
	case err == nil:
		return string(data), nil
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %s (check the path, or create the file with any text editor)", ports.ErrOutlineNotFound, path)
	case errors.Is(err, fs.ErrPermission):
		return "", fmt.Errorf("cannot read outline %s: %w (check the file permissions)", path, err)
	default:
		if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
			return "", fmt.Errorf("outline %s is a directory, pass the outline file inside it", path)
		}
		return "", fmt.Errorf("reading outline %s: %w", path, err)
	}
}

// ParseOutline parses outline text. It never fails.
func (s *DeckService) ParseOutline(text string) *entities.Document {
	doc := s.deps.Parser.Parse(text)

	s.logger.Debug("Outline parsed",
		slog.Int("slides", doc.SlideCount()),
		slog.Bool("title_block", doc.HasTitleBlock()),
	)

	return doc
}

// FormatOutline writes a document back out as outline text
func (s *DeckService) FormatOutline(doc *entities.Document) string {
	return s.deps.Formatter.Format(doc)
}

// LoadDocument reads a document file, or parses an outline
func (s *DeckService) LoadDocument(ctx context.Context, path string) (*entities.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if IsDocumentPath(path) {
		doc, err := s.deps.Store.Load(ctx, path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ports.ErrOutlineNotFound, path)
			}
			return nil, fmt.Errorf("loading document: %w", err)
		}
		return doc, nil
	}

	text, err := s.LoadOutline(path)
	if err != nil {
		return nil, err
	}
	return s.ParseOutline(text), nil
}

// RenderOptions assembles the renderer settings from the configuration
func (s *DeckService) RenderOptions(theme *entities.Theme, liveReload bool) entities.RenderOptions {
	return entities.RenderOptions{
		Theme:               theme,
		Transition:          s.config.Render.GetTransition(),
		DefaultSlideSeconds: s.config.Capture.GetDefaultSlideSeconds(),
		InlineMarkdown:      s.config.Render.InlineMarkdown,
		LiveReload:          liveReload,
	}
}

// Render turns a document into deck markup with the configured theme
func (s *DeckService) Render(ctx context.Context, doc *entities.Document, liveReload bool) ([]byte, *entities.Theme, error) {
	if doc == nil {
		return nil, nil, errors.New("document cannot be nil")
	}

	theme, err := s.deps.Themes.Load(ctx, s.config.Theme.Name)
	if err != nil {
		return nil, nil, fmt.Errorf("loading theme: %w", err)
	}
	if theme.Fallback {
		s.logger.Warn("Theme not found, deck uses the built-in default",
			slog.String("theme", s.config.Theme.Name),
		)
	}

	html, err := s.deps.Renderer.Render(ctx, doc, s.RenderOptions(theme, liveReload))
	if err != nil {
		return nil, nil, fmt.Errorf("rendering deck: %w", err)
	}

	return html, theme, nil
}

// BuildDeck loads, parses and renders sourcePath in memory
func (s *DeckService) BuildDeck(ctx context.Context, sourcePath string, liveReload bool) (*entities.Deck, error) {
	start := time.Now()

	doc, err := s.LoadDocument(ctx, sourcePath)
	if err != nil {
		return nil, err
	}

	html, theme, err := s.Render(ctx, doc, liveReload)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Deck built",
		slog.String("source", sourcePath),
		slog.Int("slides", doc.SlideCount()),
		slog.Int("bytes", len(html)),
		slog.Duration("took", time.Since(start)),
	)

	return &entities.Deck{
		Document: doc,
		HTML:     html,
		Theme:    theme.Name,
		Source:   sourcePath,
	}, nil
}

// Build computes the deck in memory and then writes the requested outputs
func (s *DeckService) Build(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	deck, err := s.BuildDeck(ctx, req.Source, false)
	if err != nil {
		return nil, err
	}

	result := &BuildResult{Deck: deck}

	if req.DocumentPath != "" {
		if err := s.deps.Store.Save(ctx, req.DocumentPath, deck.Document); err != nil {
			return nil, fmt.Errorf("writing document: %w", err)
		}
		result.DocumentPath = req.DocumentPath
	}

	if req.HTMLPath != "" {
		if err := s.deps.Writer.WriteFile(req.HTMLPath, deck.HTML, 0o644); err != nil {
			return nil, fmt.Errorf("writing deck: %w", err)
		}
		result.HTMLPath = req.HTMLPath
	}

	s.logger.Info("Build complete",
		slog.String("source", req.Source),
		slog.String("document", result.DocumentPath),
		slog.String("html", result.HTMLPath),
	)

	return result, nil
}

// Capture records a deck as video. The encoder is checked before any
// slide is captured; the video is only written once every frame exists.
func (s *DeckService) Capture(ctx context.Context, req CaptureRequest) (*CaptureResult, error) {
	if s.deps.Driver == nil || s.deps.Encoder == nil || s.deps.Timeline == nil {
		return nil, errors.New("capture is not configured")
	}
	if req.Output == "" {
		return nil, errors.New("capture output path cannot be empty")
	}

	if err := s.deps.Encoder.Check(); err != nil {
		return nil, err
	}

	markupPath := req.Source
	if !IsMarkupPath(req.Source) {
		rendered, cleanup, err := s.renderForCapture(ctx, req.Source)
		if err != nil {
			return nil, err
		}
		defer cleanup()
		markupPath = rendered
	}

	timeline, err := s.deps.Timeline.ReadTimeline(markupPath)
	if err != nil {
		return nil, fmt.Errorf("reading deck timeline: %w", err)
	}
	if len(timeline) == 0 {
		return nil, fmt.Errorf("deck %s has no slides to capture", req.Source)
	}

	timings := entities.ResolveTimings(timeline, req.Timings, s.config.Capture.GetDefaultSlideSeconds())

	frames, err := s.deps.Driver.Capture(ctx, markupPath, timings, s.config.Capture.GetCaptureOptions())
	if err != nil {
		return nil, fmt.Errorf("capturing deck: %w", err)
	}

	opts := s.config.Capture.GetEncodeOptions()
	if err := s.deps.Encoder.Encode(ctx, frames, opts, req.Output); err != nil {
		return nil, fmt.Errorf("encoding video: %w", err)
	}

	total := entities.TotalFrames(frames)
	result := &CaptureResult{
		Output:   req.Output,
		Slides:   len(frames),
		Frames:   total,
		Duration: time.Duration(float64(total) / float64(opts.FPS) * float64(time.Second)),
	}

	s.logger.Info("Capture complete",
		slog.String("output", result.Output),
		slog.Int("slides", result.Slides),
		slog.Int("frames", result.Frames),
		slog.Duration("length", result.Duration),
	)

	return result, nil
}

// renderForCapture writes the deck next to its source so relative image
// paths still resolve, and returns a cleanup func removing it.
func (s *DeckService) renderForCapture(ctx context.Context, source string) (string, func(), error) {
	deck, err := s.BuildDeck(ctx, source, false)
	if err != nil {
		return "", nil, err
	}

	f, err := os.CreateTemp(filepath.Dir(source), ".slidecast-capture-*.html")
	if err != nil {
		return "", nil, fmt.Errorf("creating capture deck: %w", err)
	}
	cleanup := func() { _ = os.Remove(f.Name()) }

	if _, err := f.Write(deck.HTML); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing capture deck: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("writing capture deck: %w", err)
	}

	return f.Name(), cleanup, nil
}

// ExportHandout writes a PDF handout of source
func (s *DeckService) ExportHandout(ctx context.Context, source, outPath string) (*entities.Document, error) {
	if s.deps.Exporter == nil {
		return nil, errors.New("handout export is not configured")
	}

	doc, err := s.LoadDocument(ctx, source)
	if err != nil {
		return nil, err
	}

	if err := s.deps.Exporter.Export(ctx, doc, outPath); err != nil {
		return nil, fmt.Errorf("exporting handout: %w", err)
	}

	s.logger.Info("Handout exported",
		slog.String("source", source),
		slog.String("output", outPath),
		slog.Int("slides", doc.SlideCount()),
	)

	return doc, nil
}

var _ ports.DeckBuilder = (*DeckService)(nil)
