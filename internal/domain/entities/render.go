package entities

// TransitionConfig controls how the deck moves between slides
type TransitionConfig struct {
	Style      string `json:"style"`
	DurationMs int    `json:"duration_ms"`
}

// RenderOptions is everything the markup renderer needs besides the document.
// Values are passed per call so the renderer never reads ambient state.
type RenderOptions struct {
	Theme               *Theme
	Transition          TransitionConfig
	DefaultSlideSeconds float64
	InlineMarkdown      bool
	LiveReload          bool
}

// SlideDuration returns the slide's own duration or the fallback
func SlideDuration(s Slide, fallback float64) float64 {
	if d := ClampSeconds(s.Duration); d > 0 {
		return d
	}
	return fallback
}

// Deck is a rendered document ready to be served or written
type Deck struct {
	Document *Document
	HTML     []byte
	Theme    string
	Source   string
}
