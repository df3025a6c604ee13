package entities

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Theme   ThemeConfig   `toml:"theme"`
	Render  RenderConfig  `toml:"render"`
	Capture CaptureConfig `toml:"capture"`
	Browser BrowserConfig `toml:"browser"`
	Watcher WatcherConfig `toml:"watcher"`
	Logging LoggingConfig `toml:"logging"`
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Theme.Validate(); err != nil {
		return fmt.Errorf("theme config: %w", err)
	}

	if err := c.Render.Validate(); err != nil {
		return fmt.Errorf("render config: %w", err)
	}

	if err := c.Capture.Validate(); err != nil {
		return fmt.Errorf("capture config: %w", err)
	}

	if err := c.Watcher.Validate(); err != nil {
		return fmt.Errorf("watcher config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// ServerConfig contains preview server configuration
type ServerConfig struct {
	Host            string   `toml:"host"`
	Port            int      `toml:"port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	Environment     string   `toml:"environment"`
	CORSOrigins     []string `toml:"cors_origins"`
}

// Validate validates server configuration
func (s ServerConfig) Validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return errors.New("port must be between 0 and 65535")
	}

	if s.Host != "" {
		if strings.ContainsAny(s.Host, " /!") {
			return fmt.Errorf("invalid host: %s", s.Host)
		}
		if ip := net.ParseIP(s.Host); ip == nil && s.Host != "localhost" {
			if _, err := net.LookupHost(s.Host); err != nil {
				return fmt.Errorf("invalid host: %w", err)
			}
		}
	}

	if s.ReadTimeout < 0 {
		return errors.New("read timeout must be non-negative")
	}

	if s.WriteTimeout < 0 {
		return errors.New("write timeout must be non-negative")
	}

	if s.ShutdownTimeout < 0 {
		return errors.New("shutdown timeout must be non-negative")
	}

	for _, origin := range s.CORSOrigins {
		if origin == "" {
			return errors.New("CORS origin cannot be empty")
		}
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("invalid CORS origin format: %s (must start with http:// or https://)", origin)
		}
	}

	return nil
}

// GetReadTimeout returns the read timeout as a duration
func (s ServerConfig) GetReadTimeout() time.Duration {
	if s.ReadTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.ReadTimeout) * time.Second
}

// GetWriteTimeout returns the write timeout as a duration
func (s ServerConfig) GetWriteTimeout() time.Duration {
	if s.WriteTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.WriteTimeout) * time.Second
}

// GetShutdownTimeout returns the shutdown timeout as a duration
func (s ServerConfig) GetShutdownTimeout() time.Duration {
	if s.ShutdownTimeout <= 0 {
		return 5 * time.Second
	}
	return time.Duration(s.ShutdownTimeout) * time.Second
}

// GetCORSOrigins returns CORS origins with defaults if empty
func (s ServerConfig) GetCORSOrigins() []string {
	if len(s.CORSOrigins) == 0 {
		return []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:8080",
			"http://127.0.0.1:8080",
		}
	}
	return s.CORSOrigins
}

// IsDevelopment returns true if the server is running in development mode
func (s ServerConfig) IsDevelopment() bool {
	return s.Environment == "development" || s.Environment == ""
}

// ThemeConfig selects the deck stylesheet
type ThemeConfig struct {
	Name      string `toml:"name"`
	Directory string `toml:"directory"`
	Minify    bool   `toml:"minify"`
}

// Validate validates theme configuration
func (t ThemeConfig) Validate() error {
	if t.Name == "" {
		return errors.New("theme name cannot be empty")
	}

	if !IsValidThemeName(t.Name) {
		return fmt.Errorf("invalid theme name %q: use lowercase letters, numbers and hyphens", t.Name)
	}

	if t.Directory != "" && !filepath.IsAbs(t.Directory) {
		return errors.New("theme directory must be absolute")
	}

	return nil
}

// Transition styles understood by the deck script
const (
	TransitionNone  = "none"
	TransitionFade  = "fade"
	TransitionSlide = "slide"
)

// RenderConfig contains deck rendering configuration
type RenderConfig struct {
	Transition     string `toml:"transition"`
	TransitionMs   int    `toml:"transition_ms"`
	InlineMarkdown bool   `toml:"inline_markdown"`
}

// Validate validates render configuration
func (r RenderConfig) Validate() error {
	switch r.Transition {
	case "", TransitionNone, TransitionFade, TransitionSlide:
	default:
		return fmt.Errorf("unknown transition %q (must be none, fade or slide)", r.Transition)
	}

	if r.TransitionMs < 0 {
		return errors.New("transition duration must be non-negative")
	}

	return nil
}

// GetTransition returns the transition configuration with defaults
func (r RenderConfig) GetTransition() TransitionConfig {
	tc := TransitionConfig{Style: r.Transition, DurationMs: r.TransitionMs}
	if tc.Style == "" {
		tc.Style = TransitionFade
	}
	if tc.DurationMs == 0 && tc.Style != TransitionNone {
		tc.DurationMs = 400
	}
	return tc
}

// CaptureConfig contains video capture configuration
type CaptureConfig struct {
	FPS                 int     `toml:"fps"`
	Width               int     `toml:"width"`
	Height              int     `toml:"height"`
	DefaultSlideSeconds float64 `toml:"default_slide_seconds"`
	FFmpegPath          string  `toml:"ffmpeg_path"`
	BrowserPath         string  `toml:"browser_path"`
	Codec               string  `toml:"codec"`
	PixelFormat         string  `toml:"pixel_format"`
	CRF                 int     `toml:"crf"`
	TimeoutSeconds      int     `toml:"timeout_seconds"`
}

// Validate validates capture configuration
func (c CaptureConfig) Validate() error {
	if c.FPS < 0 || c.FPS > 120 {
		return errors.New("fps must not exceed 120 (0 selects the default)")
	}

	if c.Width < 0 || c.Height < 0 {
		return errors.New("frame dimensions must be positive")
	}

	if c.Width%2 != 0 || c.Height%2 != 0 {
		return errors.New("frame dimensions must be even")
	}

	if !ValidSlideSeconds(c.DefaultSlideSeconds) {
		return fmt.Errorf("default slide duration must be between 0 and %g seconds", MaxSlideSeconds)
	}

	if c.CRF < 0 || c.CRF > 51 {
		return errors.New("crf must be between 0 and 51")
	}

	if c.TimeoutSeconds < 0 {
		return errors.New("timeout must be non-negative")
	}

	return nil
}

// GetFPS returns the frame rate with default
func (c CaptureConfig) GetFPS() int {
	if c.FPS <= 0 {
		return 30
	}
	return c.FPS
}

// GetSize returns the frame size with default 1920x1080
func (c CaptureConfig) GetSize() (width, height int) {
	if c.Width <= 0 || c.Height <= 0 {
		return 1920, 1080
	}
	return c.Width, c.Height
}

// GetDefaultSlideSeconds returns the per-slide duration used when a slide specifies none
func (c CaptureConfig) GetDefaultSlideSeconds() float64 {
	if c.DefaultSlideSeconds <= 0 {
		return 5
	}
	return c.DefaultSlideSeconds
}

// GetTimeout returns the per-screenshot browser timeout
func (c CaptureConfig) GetTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GetEncodeOptions returns the encoder settings with defaults
func (c CaptureConfig) GetEncodeOptions() EncodeOptions {
	opts := EncodeOptions{
		FPS:         c.GetFPS(),
		Codec:       c.Codec,
		PixelFormat: c.PixelFormat,
		CRF:         c.CRF,
	}
	if opts.Codec == "" {
		opts.Codec = "libx264"
	}
	if opts.PixelFormat == "" {
		opts.PixelFormat = "yuv420p"
	}
	if opts.CRF == 0 {
		opts.CRF = 23
	}
	return opts
}

// GetCaptureOptions returns the frame parameters with defaults
func (c CaptureConfig) GetCaptureOptions() CaptureOptions {
	w, h := c.GetSize()
	return CaptureOptions{FPS: c.GetFPS(), Width: w, Height: h}
}

// BrowserConfig contains browser launch configuration for the preview server
type BrowserConfig struct {
	AutoOpen bool   `toml:"auto_open"`
	Browser  string `toml:"browser"`
}

// WatcherConfig contains file watcher configuration
type WatcherConfig struct {
	IntervalMs int `toml:"interval_ms"`
	DebounceMs int `toml:"debounce_ms"`
}

// Validate validates watcher configuration
func (w WatcherConfig) Validate() error {
	if w.IntervalMs < 50 {
		return errors.New("watcher interval must be at least 50ms")
	}

	if w.DebounceMs < 0 {
		return errors.New("debounce time must be non-negative")
	}

	return nil
}

// GetInterval returns the watcher interval as a duration
func (w WatcherConfig) GetInterval() time.Duration {
	if w.IntervalMs <= 0 {
		return 200 * time.Millisecond
	}
	return time.Duration(w.IntervalMs) * time.Millisecond
}

// GetDebounce returns the debounce time as a duration
func (w WatcherConfig) GetDebounce() time.Duration {
	if w.DebounceMs <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(w.DebounceMs) * time.Millisecond
}

// LogLevel represents logging level
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `toml:"level"`       // debug, info, warn, error
	Verbose    bool   `toml:"verbose"`     // Enable verbose logging
	JSONFormat bool   `toml:"json_format"` // Output logs in JSON format
	File       string `toml:"file"`        // Log to file (optional)
}

// Validate validates logging configuration
func (l LoggingConfig) Validate() error {
	switch LogLevel(l.Level) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError, "":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", l.Level)
	}

	if l.File != "" {
		if !filepath.IsAbs(l.File) {
			return errors.New("log file path must be absolute")
		}

		dir := filepath.Dir(l.File)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("log file directory does not exist: %s", dir)
		}
	}

	return nil
}

// GetLevel returns the log level with default
func (l LoggingConfig) GetLevel() LogLevel {
	if l.Level == "" {
		return LogLevelInfo
	}
	return LogLevel(l.Level)
}
