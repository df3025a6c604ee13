package builders

import "github.com/fredcamaral/slidecast/internal/domain/entities"

// ConfigBuilder helps build valid Config entities for testing
type ConfigBuilder struct {
	config entities.Config
}

// NewConfigBuilder starts from a configuration that passes Validate
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: entities.Config{
			Server:  entities.ServerConfig{Host: "localhost", Port: 3000},
			Theme:   entities.ThemeConfig{Name: entities.DefaultThemeName},
			Render:  entities.RenderConfig{Transition: entities.TransitionFade, TransitionMs: 400},
			Capture: entities.CaptureConfig{FPS: 30, Width: 1920, Height: 1080, DefaultSlideSeconds: 5},
			Watcher: entities.WatcherConfig{IntervalMs: 200, DebounceMs: 300},
			Logging: entities.LoggingConfig{Level: string(entities.LogLevelInfo)},
		},
	}
}

// WithPort sets the server port
func (b *ConfigBuilder) WithPort(port int) *ConfigBuilder {
	b.config.Server.Port = port
	return b
}

// WithTheme sets the theme name
func (b *ConfigBuilder) WithTheme(name string) *ConfigBuilder {
	b.config.Theme.Name = name
	return b
}

// WithTransition sets the transition style and duration
func (b *ConfigBuilder) WithTransition(style string, ms int) *ConfigBuilder {
	b.config.Render.Transition = style
	b.config.Render.TransitionMs = ms
	return b
}

// WithCapture sets frame rate, frame size and default slide seconds
func (b *ConfigBuilder) WithCapture(fps, width, height int, slideSeconds float64) *ConfigBuilder {
	b.config.Capture.FPS = fps
	b.config.Capture.Width = width
	b.config.Capture.Height = height
	b.config.Capture.DefaultSlideSeconds = slideSeconds
	return b
}

// WithLogLevel sets the log level
func (b *ConfigBuilder) WithLogLevel(level entities.LogLevel) *ConfigBuilder {
	b.config.Logging.Level = string(level)
	return b
}

// Build returns a copy of the configuration
func (b *ConfigBuilder) Build() *entities.Config {
	config := b.config
	config.Server.CORSOrigins = append([]string(nil), b.config.Server.CORSOrigins...)
	return &config
}
