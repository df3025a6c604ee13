package config

import (
	"github.com/fredcamaral/slidecast/internal/domain/entities"
	"github.com/fredcamaral/slidecast/internal/domain/ports"
)

// ConfigMerger implements ports.ConfigMerger. Zero values in a later
// layer leave the earlier value alone, so a boolean can only be switched
// on by a file; flags and environment variables can switch it off.
type ConfigMerger struct{}

// NewConfigMerger creates a new configuration merger
func NewConfigMerger() *ConfigMerger {
	return &ConfigMerger{}
}

// Merge overlays configs onto the defaults, later configs taking precedence
func (m *ConfigMerger) Merge(configs ...*entities.Config) *entities.Config {
	result := GetDefaultConfig()

	for _, config := range configs {
		if config != nil {
			m.mergeInto(result, config)
		}
	}

	return result
}

// ApplyFlags applies command line overrides keyed by flag name
func (m *ConfigMerger) ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config {
	result := deepCopy(config)

	if port, ok := flags["port"].(int); ok && port > 0 {
		result.Server.Port = port
	}
	if host, ok := flags["host"].(string); ok && host != "" {
		result.Server.Host = host
	}

	if theme, ok := flags["theme"].(string); ok && theme != "" {
		result.Theme.Name = theme
	}
	if dir, ok := flags["theme-dir"].(string); ok && dir != "" {
		result.Theme.Directory = dir
	}

	if transition, ok := flags["transition"].(string); ok && transition != "" {
		result.Render.Transition = transition
	}
	if inline, ok := flags["inline-markdown"].(bool); ok {
		result.Render.InlineMarkdown = inline
	}

	if fps, ok := flags["fps"].(int); ok && fps > 0 {
		result.Capture.FPS = fps
	}
	if width, ok := flags["width"].(int); ok && width > 0 {
		result.Capture.Width = width
	}
	if height, ok := flags["height"].(int); ok && height > 0 {
		result.Capture.Height = height
	}
	if seconds, ok := flags["slide-seconds"].(float64); ok && seconds > 0 {
		result.Capture.DefaultSlideSeconds = seconds
	}

	if open, ok := flags["open"].(bool); ok {
		result.Browser.AutoOpen = open
	}

	if verbose, ok := flags["verbose"].(bool); ok && verbose {
		result.Logging.Verbose = true
	}

	return result
}

// ApplyEnvVars applies SLIDECAST_* environment overrides
func (m *ConfigMerger) ApplyEnvVars(config *entities.Config) *entities.Config {
	result := deepCopy(config)
	applyEnvironmentOverrides(result)
	return result
}

// mergeInto copies the non-zero fields of source onto target
func (m *ConfigMerger) mergeInto(target, source *entities.Config) {
	// Server config
	if source.Server.Host != "" {
		target.Server.Host = source.Server.Host
	}
	if source.Server.Port != 0 {
		target.Server.Port = source.Server.Port
	}
	if source.Server.ReadTimeout != 0 {
		target.Server.ReadTimeout = source.Server.ReadTimeout
	}
	if source.Server.WriteTimeout != 0 {
		target.Server.WriteTimeout = source.Server.WriteTimeout
	}
	if source.Server.ShutdownTimeout != 0 {
		target.Server.ShutdownTimeout = source.Server.ShutdownTimeout
	}
	if source.Server.Environment != "" {
		target.Server.Environment = source.Server.Environment
	}
	if len(source.Server.CORSOrigins) > 0 {
		target.Server.CORSOrigins = append([]string(nil), source.Server.CORSOrigins...)
	}

	// Theme config
	if source.Theme.Name != "" {
		target.Theme.Name = source.Theme.Name
	}
	if source.Theme.Directory != "" {
		target.Theme.Directory = source.Theme.Directory
	}
	target.Theme.Minify = target.Theme.Minify || source.Theme.Minify

	// Render config
	if source.Render.Transition != "" {
		target.Render.Transition = source.Render.Transition
	}
	if source.Render.TransitionMs != 0 {
		target.Render.TransitionMs = source.Render.TransitionMs
	}
	target.Render.InlineMarkdown = target.Render.InlineMarkdown || source.Render.InlineMarkdown

	// Capture config
	if source.Capture.FPS != 0 {
		target.Capture.FPS = source.Capture.FPS
	}
	if source.Capture.Width != 0 {
		target.Capture.Width = source.Capture.Width
	}
	if source.Capture.Height != 0 {
		target.Capture.Height = source.Capture.Height
	}
	if source.Capture.DefaultSlideSeconds != 0 {
		target.Capture.DefaultSlideSeconds = source.Capture.DefaultSlideSeconds
	}
	if source.Capture.FFmpegPath != "" {
		target.Capture.FFmpegPath = source.Capture.FFmpegPath
	}
	if source.Capture.BrowserPath != "" {
		target.Capture.BrowserPath = source.Capture.BrowserPath
	}
	if source.Capture.Codec != "" {
		target.Capture.Codec = source.Capture.Codec
	}
	if source.Capture.PixelFormat != "" {
		target.Capture.PixelFormat = source.Capture.PixelFormat
	}
	if source.Capture.CRF != 0 {
		target.Capture.CRF = source.Capture.CRF
	}
	if source.Capture.TimeoutSeconds != 0 {
		target.Capture.TimeoutSeconds = source.Capture.TimeoutSeconds
	}

	// Browser config
	if source.Browser.Browser != "" {
		target.Browser.Browser = source.Browser.Browser
	}
	target.Browser.AutoOpen = target.Browser.AutoOpen || source.Browser.AutoOpen

	// Watcher config
	if source.Watcher.IntervalMs != 0 {
		target.Watcher.IntervalMs = source.Watcher.IntervalMs
	}
	if source.Watcher.DebounceMs != 0 {
		target.Watcher.DebounceMs = source.Watcher.DebounceMs
	}

	// Logging config
	if source.Logging.Level != "" {
		target.Logging.Level = source.Logging.Level
	}
	if source.Logging.File != "" {
		target.Logging.File = source.Logging.File
	}
	target.Logging.Verbose = target.Logging.Verbose || source.Logging.Verbose
	target.Logging.JSONFormat = target.Logging.JSONFormat || source.Logging.JSONFormat
}

// deepCopy creates a deep copy of a configuration
func deepCopy(src *entities.Config) *entities.Config {
	if src == nil {
		return GetDefaultConfig()
	}

	dst := *src
	if src.Server.CORSOrigins != nil {
		dst.Server.CORSOrigins = append([]string(nil), src.Server.CORSOrigins...)
	}
	return &dst
}

var _ ports.ConfigMerger = (*ConfigMerger)(nil)
