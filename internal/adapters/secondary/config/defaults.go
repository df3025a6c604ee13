// Package config loads, layers and validates slidecast.toml files.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "SLIDECAST_"

// GetDefaultConfig returns the built-in configuration
func GetDefaultConfig() *entities.Config {
	return &entities.Config{
		Server: entities.ServerConfig{
			Host:            "localhost",
			Port:            3000,
			ReadTimeout:     30,
			WriteTimeout:    30,
			ShutdownTimeout: 5,
			Environment:     "development",
			CORSOrigins: []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
			},
		},
		Theme: entities.ThemeConfig{
			Name: entities.DefaultThemeName,
		},
		Render: entities.RenderConfig{
			Transition:   entities.TransitionFade,
			TransitionMs: 400,
		},
		Capture: entities.CaptureConfig{
			FPS:                 30,
			Width:               1920,
			Height:              1080,
			DefaultSlideSeconds: 5,
			FFmpegPath:          "ffmpeg",
			Codec:               "libx264",
			PixelFormat:         "yuv420p",
			CRF:                 23,
			TimeoutSeconds:      30,
		},
		Browser: entities.BrowserConfig{
			AutoOpen: false,
		},
		Watcher: entities.WatcherConfig{
			IntervalMs: 200,
			DebounceMs: 300,
		},
		Logging: entities.LoggingConfig{
			Level: string(entities.LogLevelInfo),
		},
	}
}

// getEnv returns the value of SLIDECAST_<key> and whether it is set
func getEnv(key string) (string, bool) {
	value := os.Getenv(EnvPrefix + key)
	return value, value != ""
}

// getEnvInt returns SLIDECAST_<key> as an int; unparsable values are ignored
func getEnvInt(key string) (int, bool) {
	if value, ok := getEnv(key); ok {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue, true
		}
	}
	return 0, false
}

// getEnvFloat returns SLIDECAST_<key> as a float64
func getEnvFloat(key string) (float64, bool) {
	if value, ok := getEnv(key); ok {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue, true
		}
	}
	return 0, false
}

// getEnvBool returns SLIDECAST_<key> as a bool
func getEnvBool(key string) (bool, bool) {
	if value, ok := getEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue, true
		}
	}
	return false, false
}

// getEnvSlice splits SLIDECAST_<key> on commas
func getEnvSlice(key string) ([]string, bool) {
	value, ok := getEnv(key)
	if !ok {
		return nil, false
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result, len(result) > 0
}

// applyEnvironmentOverrides sets every field that has an environment
// variable defined
func applyEnvironmentOverrides(config *entities.Config) {
	if v, ok := getEnv("HOST"); ok {
		config.Server.Host = v
	}
	if v, ok := getEnvInt("PORT"); ok && v > 0 {
		config.Server.Port = v
	}
	if v, ok := getEnv("ENV"); ok {
		config.Server.Environment = v
	}
	if v, ok := getEnvSlice("CORS_ORIGINS"); ok {
		config.Server.CORSOrigins = v
	}

	if v, ok := getEnv("THEME"); ok {
		config.Theme.Name = v
	}
	if v, ok := getEnv("THEME_DIR"); ok {
		config.Theme.Directory = v
	}

	if v, ok := getEnv("TRANSITION"); ok {
		config.Render.Transition = v
	}
	if v, ok := getEnvBool("INLINE_MARKDOWN"); ok {
		config.Render.InlineMarkdown = v
	}

	if v, ok := getEnvInt("FPS"); ok && v > 0 {
		config.Capture.FPS = v
	}
	if v, ok := getEnvFloat("SLIDE_SECONDS"); ok && v > 0 {
		config.Capture.DefaultSlideSeconds = v
	}
	if v, ok := getEnv("FFMPEG"); ok {
		config.Capture.FFmpegPath = v
	}
	if v, ok := getEnv("CHROME"); ok {
		config.Capture.BrowserPath = v
	}

	if v, ok := getEnv("BROWSER"); ok {
		config.Browser.Browser = v
	}
	if v, ok := getEnvBool("NO_BROWSER"); ok {
		config.Browser.AutoOpen = !v
	}

	if v, ok := getEnvInt("WATCH_INTERVAL"); ok && v > 0 {
		config.Watcher.IntervalMs = v
	}
	if v, ok := getEnvInt("WATCH_DEBOUNCE"); ok && v >= 0 {
		config.Watcher.DebounceMs = v
	}

	if v, ok := getEnv("LOG_LEVEL"); ok {
		config.Logging.Level = v
	}
	if v, ok := getEnvBool("LOG_VERBOSE"); ok {
		config.Logging.Verbose = v
	}
	if v, ok := getEnvBool("LOG_JSON"); ok {
		config.Logging.JSONFormat = v
	}
	if v, ok := getEnv("LOG_FILE"); ok {
		config.Logging.File = v
	}
}
