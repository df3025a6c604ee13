package entities

import (
	"image"
	"math"
)

// SlideTiming is one slide as read back from a rendered deck
type SlideTiming struct {
	// Index is the zero-based position of the slide in the deck
	Index int `json:"index"`

	// Seconds is how long the slide stays on screen
	Seconds float64 `json:"seconds"`

	// Title is the slide heading, empty when the slide has none
	Title string `json:"title,omitempty"`

	// TitleSlide marks the deck's leading title slide
	TitleSlide bool `json:"title_slide,omitempty"`

	// Lines is the visible text of the slide body in order
	Lines []string `json:"lines,omitempty"`
}

// CaptureOptions are the frame parameters of a capture pass
type CaptureOptions struct {
	FPS    int
	Width  int
	Height int
}

// Frame is one captured slide image and how many video frames it fills
type Frame struct {
	Image image.Image
	Count int
}

// MaxSlideSeconds is the longest a single slide may stay on screen
const MaxSlideSeconds = 3600.0

// ValidSlideSeconds reports whether seconds is a finite duration between 0
// and MaxSlideSeconds
func ValidSlideSeconds(seconds float64) bool {
	return !math.IsNaN(seconds) && seconds >= 0 && seconds <= MaxSlideSeconds
}

// ClampSeconds caps a duration at MaxSlideSeconds. NaN and non-positive
// values yield 0, meaning unset.
func ClampSeconds(seconds float64) float64 {
	switch {
	case math.IsNaN(seconds) || seconds <= 0:
		return 0
	case seconds > MaxSlideSeconds:
		return MaxSlideSeconds
	default:
		return seconds
	}
}

// FrameCount returns the number of frames a slide of the given length
// occupies at fps. Every slide gets at least one frame.
func FrameCount(seconds float64, fps int) int {
	n := int(math.Round(ClampSeconds(seconds) * float64(fps)))
	if n < 1 {
		return 1
	}
	return n
}

// TotalFrames sums the frame counts of a capture
func TotalFrames(frames []Frame) int {
	total := 0
	for _, f := range frames {
		total += f.Count
	}
	return total
}

// ResolveTimings picks each slide's duration: a positive override wins,
// then the deck's data-duration, then defaultSeconds. Every value is capped
// at MaxSlideSeconds.
func ResolveTimings(timeline []SlideTiming, override []float64, defaultSeconds float64) []float64 {
	timings := make([]float64, len(timeline))
	for i, slide := range timeline {
		var fromOverride float64
		if i < len(override) {
			fromOverride = ClampSeconds(override[i])
		}

		switch {
		case fromOverride > 0:
			timings[i] = fromOverride
		case ClampSeconds(slide.Seconds) > 0:
			timings[i] = ClampSeconds(slide.Seconds)
		default:
			timings[i] = ClampSeconds(defaultSeconds)
		}
	}
	return timings
}

// EncodeOptions carries the encoder knobs from the capture config
type EncodeOptions struct {
	FPS         int
	Codec       string
	PixelFormat string
	CRF         int
}
