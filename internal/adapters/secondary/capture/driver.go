package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"golang.org/x/image/draw"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
	"github.com/fredcamaral/slidecast/internal/domain/ports"
)

// Driver implements ports.CaptureDriver. Slides are captured one at a time
// in deck order.
type Driver struct {
	shooter ports.Screenshotter
	logger  *slog.Logger
}

// NewDriver creates a capture driver around a screenshot backend
func NewDriver(shooter ports.Screenshotter, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}

	return &Driver{
		shooter: shooter,
		logger:  logger.With("service", "capture_driver"),
	}
}

// SelectScreenshotter returns headless Chrome when it can be found and the
// raster backend otherwise.
func SelectScreenshotter(cfg ChromeConfig, logger *slog.Logger) (ports.Screenshotter, error) {
	if logger == nil {
		logger = slog.Default()
	}

	chrome, err := NewChromeScreenshotter(cfg, logger)
	if err == nil {
		return chrome, nil
	}
	if !errors.Is(err, ports.ErrBrowserNotFound) {
		return nil, err
	}

	logger.Warn("Headless browser not available, using raster slide capture",
		slog.String("reason", err.Error()),
	)
	return NewRasterScreenshotter()
}

// Backend returns the name of the screenshot backend in use
func (d *Driver) Backend() string {
	return d.shooter.Name()
}

// Capture screenshots every slide of the deck at markupPath. timings holds
// one duration per slide; each frame repeats for round(seconds*fps) video
// frames, at least one.
func (d *Driver) Capture(ctx context.Context, markupPath string, timings []float64, opts entities.CaptureOptions) ([]entities.Frame, error) {
	if opts.FPS <= 0 || opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid capture options: fps=%d size=%dx%d", opts.FPS, opts.Width, opts.Height)
	}

	timeline, err := ReadTimeline(markupPath)
	if err != nil {
		return nil, err
	}
	if len(timeline) == 0 {
		return nil, fmt.Errorf("deck %s has no slides", markupPath)
	}
	if len(timings) != len(timeline) {
		return nil, fmt.Errorf("got %d timings for %d slides", len(timings), len(timeline))
	}

	d.logger.Info("Capturing deck",
		slog.String("deck", markupPath),
		slog.String("backend", d.shooter.Name()),
		slog.Int("slides", len(timeline)),
		slog.Int("fps", opts.FPS),
	)

	frames := make([]entities.Frame, 0, len(timeline))
	for i, slide := range timeline {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		img, err := d.shooter.Screenshot(ctx, markupPath, slide, opts.Width, opts.Height)
		if err != nil {
			return nil, fmt.Errorf("capturing slide %d: %w", i+1, err)
		}

		frames = append(frames, entities.Frame{
			Image: fitFrame(img, opts.Width, opts.Height),
			Count: entities.FrameCount(timings[i], opts.FPS),
		})

		d.logger.Debug("Slide captured",
			slog.Int("slide", i+1),
			slog.Int("frames", frames[i].Count),
			slog.Duration("took", time.Since(start)),
		)
	}

	return frames, nil
}

// fitFrame scales img to exactly width x height; the encoder needs every
// frame at the same size.
func fitFrame(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height && b.Min == (image.Point{}) {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

var _ ports.CaptureDriver = (*Driver)(nil)
