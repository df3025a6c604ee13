package ports

import (
	"context"
	"image"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
)

// CaptureDriver walks a rendered deck slide by slide and returns its frames
type CaptureDriver interface {
	Capture(ctx context.Context, markupPath string, timings []float64, opts entities.CaptureOptions) ([]entities.Frame, error)
}

// TimelineReader reads slide timings back from a rendered deck
type TimelineReader interface {
	ReadTimeline(markupPath string) ([]entities.SlideTiming, error)
}

// Screenshotter produces the image of one slide
type Screenshotter interface {
	// Name identifies the backend in logs
	Name() string

	// Screenshot renders the slide at the given size
	Screenshot(ctx context.Context, markupPath string, slide entities.SlideTiming, width, height int) (image.Image, error)
}

// VideoEncoder turns frames into a video file
type VideoEncoder interface {
	// Check reports whether the encoder can run at all
	Check() error

	// Encode writes the frames to outPath
	Encode(ctx context.Context, frames []entities.Frame, opts entities.EncodeOptions, outPath string) error
}
