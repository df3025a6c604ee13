package entities

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "localhost",
			Port:            3000,
			ReadTimeout:     30,
			WriteTimeout:    30,
			ShutdownTimeout: 5,
		},
		Theme:   ThemeConfig{Name: "default"},
		Render:  RenderConfig{Transition: TransitionFade, TransitionMs: 300},
		Capture: CaptureConfig{FPS: 30, Width: 1280, Height: 720, DefaultSlideSeconds: 4, CRF: 23},
		Watcher: WatcherConfig{IntervalMs: 200, DebounceMs: 500},
		Logging: LoggingConfig{Level: "info"},
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"invalid server config", func(c *Config) { c.Server.Port = -1 }, "server config"},
		{"invalid theme config", func(c *Config) { c.Theme.Name = "" }, "theme config"},
		{"invalid render config", func(c *Config) { c.Render.Transition = "spin" }, "render config"},
		{"invalid capture config", func(c *Config) { c.Capture.Width = 1281 }, "capture config"},
		{"invalid watcher config", func(c *Config) { c.Watcher.IntervalMs = 10 }, "watcher config"},
		{"invalid logging config", func(c *Config) { c.Logging.Level = "loud" }, "logging config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.mutate(config)

			err := config.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestServerConfig_Validate(t *testing.T) {
	t.Run("port range", func(t *testing.T) {
		for _, port := range []int{-1, 70000} {
			err := ServerConfig{Port: port}.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "port must be between 0 and 65535")
		}
		assert.NoError(t, ServerConfig{Port: 0}.Validate())
		assert.NoError(t, ServerConfig{Port: 65535}.Validate())
	})

	t.Run("host with invalid characters", func(t *testing.T) {
		err := ServerConfig{Host: "bad host"}.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid host")
	})

	t.Run("ip host", func(t *testing.T) {
		assert.NoError(t, ServerConfig{Host: "127.0.0.1", Port: 8080}.Validate())
	})

	t.Run("negative timeouts", func(t *testing.T) {
		assert.Error(t, ServerConfig{ReadTimeout: -1}.Validate())
		assert.Error(t, ServerConfig{WriteTimeout: -1}.Validate())
		assert.Error(t, ServerConfig{ShutdownTimeout: -1}.Validate())
	})

	t.Run("cors origins", func(t *testing.T) {
		ok := ServerConfig{CORSOrigins: []string{"http://localhost:3000", "https://example.com", "*"}}
		assert.NoError(t, ok.Validate())

		err := ServerConfig{CORSOrigins: []string{"example.com"}}.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid CORS origin format")

		err = ServerConfig{CORSOrigins: []string{""}}.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CORS origin cannot be empty")
	})
}

func TestServerConfig_Getters(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config := ServerConfig{}

		assert.Equal(t, 30*time.Second, config.GetReadTimeout())
		assert.Equal(t, 30*time.Second, config.GetWriteTimeout())
		assert.Equal(t, 5*time.Second, config.GetShutdownTimeout())
		assert.Len(t, config.GetCORSOrigins(), 4)
		assert.True(t, config.IsDevelopment())
	})

	t.Run("custom values", func(t *testing.T) {
		config := ServerConfig{
			ReadTimeout:     10,
			WriteTimeout:    20,
			ShutdownTimeout: 2,
			Environment:     "production",
			CORSOrigins:     []string{"https://deck.example.com"},
		}

		assert.Equal(t, 10*time.Second, config.GetReadTimeout())
		assert.Equal(t, 20*time.Second, config.GetWriteTimeout())
		assert.Equal(t, 2*time.Second, config.GetShutdownTimeout())
		assert.Equal(t, []string{"https://deck.example.com"}, config.GetCORSOrigins())
		assert.False(t, config.IsDevelopment())
	})
}

func TestThemeConfig_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ThemeConfig{Name: "dark"}.Validate())
		assert.NoError(t, ThemeConfig{Name: "corp-2024", Directory: t.TempDir()}.Validate())
	})

	t.Run("empty name", func(t *testing.T) {
		err := ThemeConfig{}.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "theme name cannot be empty")
	})

	t.Run("path-like name", func(t *testing.T) {
		err := ThemeConfig{Name: "../etc"}.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid theme name")
	})

	t.Run("relative directory", func(t *testing.T) {
		err := ThemeConfig{Name: "default", Directory: filepath.Join("rel", "themes")}.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be absolute")
	})
}

func TestRenderConfig(t *testing.T) {
	t.Run("validate", func(t *testing.T) {
		assert.NoError(t, RenderConfig{}.Validate())
		assert.NoError(t, RenderConfig{Transition: TransitionSlide}.Validate())
		assert.Error(t, RenderConfig{Transition: "zoom"}.Validate())
		assert.Error(t, RenderConfig{TransitionMs: -5}.Validate())
	})

	t.Run("transition defaults", func(t *testing.T) {
		assert.Equal(t, TransitionConfig{Style: TransitionFade, DurationMs: 400}, RenderConfig{}.GetTransition())
		assert.Equal(t, TransitionConfig{Style: TransitionNone}, RenderConfig{Transition: TransitionNone}.GetTransition())
		assert.Equal(t,
			TransitionConfig{Style: TransitionSlide, DurationMs: 250},
			RenderConfig{Transition: TransitionSlide, TransitionMs: 250}.GetTransition())
	})
}

func TestCaptureConfig(t *testing.T) {
	t.Run("validate", func(t *testing.T) {
		tests := []struct {
			name    string
			config  CaptureConfig
			wantErr string
		}{
			{"zero value", CaptureConfig{}, ""},
			{"fps too high", CaptureConfig{FPS: 240}, "fps"},
			{"odd width", CaptureConfig{Width: 1279, Height: 720}, "even"},
			{"negative size", CaptureConfig{Width: -2}, "positive"},
			{"negative seconds", CaptureConfig{DefaultSlideSeconds: -1}, "slide duration"},
			{"seconds over an hour", CaptureConfig{DefaultSlideSeconds: 4000}, "slide duration"},
			{"crf out of range", CaptureConfig{CRF: 52}, "crf"},
			{"negative timeout", CaptureConfig{TimeoutSeconds: -1}, "timeout"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.config.Validate()
				if tt.wantErr == "" {
					assert.NoError(t, err)
					return
				}
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			})
		}
	})

	t.Run("defaults", func(t *testing.T) {
		config := CaptureConfig{}
		w, h := config.GetSize()

		assert.Equal(t, 30, config.GetFPS())
		assert.Equal(t, 1920, w)
		assert.Equal(t, 1080, h)
		assert.Equal(t, 5.0, config.GetDefaultSlideSeconds())
		assert.Equal(t, 30*time.Second, config.GetTimeout())
		assert.Equal(t, EncodeOptions{FPS: 30, Codec: "libx264", PixelFormat: "yuv420p", CRF: 23}, config.GetEncodeOptions())
		assert.Equal(t, CaptureOptions{FPS: 30, Width: 1920, Height: 1080}, config.GetCaptureOptions())
	})

	t.Run("custom values", func(t *testing.T) {
		config := CaptureConfig{FPS: 24, Width: 640, Height: 360, Codec: "libvpx-vp9", CRF: 30}

		assert.Equal(t, CaptureOptions{FPS: 24, Width: 640, Height: 360}, config.GetCaptureOptions())
		assert.Equal(t, EncodeOptions{FPS: 24, Codec: "libvpx-vp9", PixelFormat: "yuv420p", CRF: 30}, config.GetEncodeOptions())
	})
}

func TestWatcherConfig(t *testing.T) {
	t.Run("validate", func(t *testing.T) {
		assert.NoError(t, WatcherConfig{IntervalMs: 200}.Validate())
		assert.Error(t, WatcherConfig{IntervalMs: 10}.Validate())
		assert.Error(t, WatcherConfig{IntervalMs: 200, DebounceMs: -1}.Validate())
	})

	t.Run("durations", func(t *testing.T) {
		assert.Equal(t, 200*time.Millisecond, WatcherConfig{}.GetInterval())
		assert.Equal(t, 500*time.Millisecond, WatcherConfig{}.GetDebounce())
		assert.Equal(t, time.Second, WatcherConfig{IntervalMs: 1000}.GetInterval())
		assert.Equal(t, 100*time.Millisecond, WatcherConfig{DebounceMs: 100}.GetDebounce())
	})
}

func TestLoggingConfig(t *testing.T) {
	t.Run("levels", func(t *testing.T) {
		for _, level := range []string{"", "debug", "info", "warn", "error"} {
			assert.NoError(t, LoggingConfig{Level: level}.Validate(), level)
		}
		assert.Error(t, LoggingConfig{Level: "trace"}.Validate())
	})

	t.Run("file must be absolute", func(t *testing.T) {
		err := LoggingConfig{File: "slidecast.log"}.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "absolute")
	})

	t.Run("file directory must exist", func(t *testing.T) {
		err := LoggingConfig{File: filepath.Join(t.TempDir(), "missing", "x.log")}.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")

		assert.NoError(t, LoggingConfig{File: filepath.Join(t.TempDir(), "x.log")}.Validate())
	})

	t.Run("default level", func(t *testing.T) {
		assert.Equal(t, LogLevelInfo, LoggingConfig{}.GetLevel())
		assert.Equal(t, LogLevelDebug, LoggingConfig{Level: "debug"}.GetLevel())
	})
}
