package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/slidecast/internal/adapters/secondary/capture"
	"github.com/fredcamaral/slidecast/internal/adapters/secondary/config"
	"github.com/fredcamaral/slidecast/internal/adapters/secondary/document"
	"github.com/fredcamaral/slidecast/internal/adapters/secondary/export"
	"github.com/fredcamaral/slidecast/internal/adapters/secondary/output"
	"github.com/fredcamaral/slidecast/internal/adapters/secondary/parser"
	"github.com/fredcamaral/slidecast/internal/adapters/secondary/renderer"
	"github.com/fredcamaral/slidecast/internal/adapters/secondary/theme"
	"github.com/fredcamaral/slidecast/internal/domain/entities"
	"github.com/fredcamaral/slidecast/internal/domain/ports"
	"github.com/fredcamaral/slidecast/internal/domain/services"
)

// app is the per-command runtime: resolved config plus the root logger
type app struct {
	config   *entities.Config
	logger   *slog.Logger
	closeLog func()
}

// newApp resolves the configuration for a command working on source and
// builds the root logger from it. Only flags the user set override config.
func newApp(cmd *cobra.Command, source string, flagNames ...string) (*app, error) {
	flags := changedFlags(cmd, append(flagNames, "verbose")...)

	if dir, ok := flags["theme-dir"].(string); ok && dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("resolving theme directory: %w", err)
		}
		flags["theme-dir"] = abs
	}

	workingDir := "."
	if source != "" {
		workingDir = filepath.Dir(source)
	}
	explicit, _ := cmd.Flags().GetString("config")

	configService := newConfigService()
	cfg, err := configService.LoadConfig(cmd.Context(), ports.ConfigRequest{
		WorkingDir:   workingDir,
		ExplicitPath: explicit,
		Flags:        flags,
	})
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	logger, closeLog, err := newLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	return &app{config: cfg, logger: logger, closeLog: closeLog}, nil
}

// Close releases the log file, if any
func (a *app) Close() {
	if a.closeLog != nil {
		a.closeLog()
	}
}

func newConfigService() *services.ConfigService {
	return services.NewConfigService(config.NewTOMLLoader(), config.NewConfigMerger(), nil)
}

// deckService wires the deck pipeline. The capture driver is attached
// separately since choosing a screenshot backend probes for a browser.
func (a *app) deckService(driver ports.CaptureDriver) (*services.DeckService, error) {
	store, err := document.NewStore(a.logger)
	if err != nil {
		return nil, err
	}

	templates, err := renderer.NewTemplateRenderer(a.logger)
	if err != nil {
		return nil, err
	}

	outline := parser.NewOutlineParser()

	return services.NewDeckService(services.DeckDependencies{
		Parser:    outline,
		Formatter: outline,
		Store:     store,
		Themes:    a.themes(),
		Renderer:  templates,
		Writer:    output.Writer{},
		Timeline:  capture.DeckTimeline{},
		Driver:    driver,
		Encoder:   capture.NewFFmpegEncoder(a.config.Capture.FFmpegPath, a.logger),
		Exporter:  export.NewHandoutRenderer(a.logger),
	}, a.config, a.logger), nil
}

func (a *app) themes() *theme.Loader {
	return theme.NewLoader(a.config.Theme.Directory, a.config.Theme.Minify, a.logger)
}

// captureDriver picks headless Chrome when available, raster drawing otherwise
func (a *app) captureDriver() (*capture.Driver, error) {
	shooter, err := capture.SelectScreenshotter(capture.ChromeConfig{
		ExecutablePath: a.config.Capture.BrowserPath,
		Timeout:        a.config.Capture.GetTimeout(),
	}, a.logger)
	if err != nil {
		return nil, fmt.Errorf("selecting screenshot backend: %w", err)
	}
	return capture.NewDriver(shooter, a.logger), nil
}

// newLogger builds the root slog logger. The returned func closes the log
// file when logging goes to one.
func newLogger(cfg entities.LoggingConfig, stderr io.Writer) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	switch cfg.GetLevel() {
	case entities.LogLevelDebug:
		level = slog.LevelDebug
	case entities.LogLevelWarn:
		level = slog.LevelWarn
	case entities.LogLevelError:
		level = slog.LevelError
	}
	if cfg.Verbose && level > slog.LevelDebug {
		level = slog.LevelDebug
	}

	w := stderr
	closeLog := func() {}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) // #nosec G304 - log path from validated config
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeLog = func() { _ = f.Close() }
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.JSONFormat {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler), closeLog, nil
}

// changedFlags collects the named flags the user set, keyed by flag name
// with their typed values
func changedFlags(cmd *cobra.Command, names ...string) map[string]interface{} {
	flags := make(map[string]interface{})
	for _, name := range names {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}

		switch flag.Value.Type() {
		case "int":
			if v, err := cmd.Flags().GetInt(name); err == nil {
				flags[name] = v
			}
		case "float64":
			if v, err := cmd.Flags().GetFloat64(name); err == nil {
				flags[name] = v
			}
		case "bool":
			if v, err := cmd.Flags().GetBool(name); err == nil {
				flags[name] = v
			}
		default:
			flags[name] = flag.Value.String()
		}
	}
	return flags
}

// replaceExt swaps the extension of path
func replaceExt(path, ext string) string {
	return path[:len(path)-len(filepath.Ext(path))] + ext
}
