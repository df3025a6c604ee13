// Package theme resolves theme names to deck stylesheets.
package theme

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
	"github.com/fredcamaral/slidecast/internal/domain/ports"
)

const (
	stylesheetFile = "theme.css"
	metadataFile   = "theme.toml"
)

//go:embed builtin/*.css
var builtinFS embed.FS

var builtinThemes = map[string]entities.ThemeInfo{
	"default": {Name: "default", DisplayName: "Default", Description: "Light theme with a blue accent", BuiltIn: true},
	"dark":    {Name: "dark", DisplayName: "Dark", Description: "Dark theme for dim rooms and screen recordings", BuiltIn: true},
}

// themeMetadata is the optional theme.toml next to a theme stylesheet
type themeMetadata struct {
	DisplayName string            `toml:"display_name"`
	Description string            `toml:"description"`
	Author      string            `toml:"author"`
	Variables   map[string]string `toml:"variables"`
}

// Loader looks up themes in a directory and falls back to the built-ins
type Loader struct {
	dir       string
	cache     *MemoryCache
	processor *StyleProcessor
	logger    *slog.Logger
}

// NewLoader creates a loader for dir. An empty dir only serves built-ins.
func NewLoader(dir string, minify bool, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	return &Loader{
		dir:       dir,
		cache:     NewMemoryCache(16, 0),
		processor: NewStyleProcessor(minify),
		logger:    logger.With("service", "theme_loader"),
	}
}

// Load returns the named theme. A theme that cannot be found yields the
// built-in default marked as a fallback; only unreadable theme files are errors.
func (l *Loader) Load(ctx context.Context, name string) (*entities.Theme, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if name == "" {
		name = entities.DefaultThemeName
	}

	if cached, ok := l.cache.Get(name); ok {
		return cached, nil
	}

	theme, err := l.resolve(name)
	if err != nil {
		return nil, err
	}

	if theme == nil {
		l.logger.Warn("Theme not found, using built-in default",
			slog.String("theme", name),
			slog.String("directory", l.dir),
		)
		fallback, err := l.loadBuiltin(entities.DefaultThemeName)
		if err != nil {
			return nil, err
		}
		fallback.Fallback = true
		// Fallbacks stay uncached so a theme added later is picked up.
		return fallback, nil
	}

	if err := theme.Validate(); err != nil {
		return nil, fmt.Errorf("theme %s: %w", name, err)
	}

	l.cache.Set(name, theme)
	return theme, nil
}

// resolve returns nil, nil when no theme of that name exists
func (l *Loader) resolve(name string) (*entities.Theme, error) {
	if !entities.IsValidThemeName(name) {
		return nil, nil
	}

	if theme, err := l.loadFromDir(name); err != nil || theme != nil {
		return theme, err
	}

	if _, ok := builtinThemes[name]; ok {
		return l.loadBuiltin(name)
	}

	return nil, nil
}

func (l *Loader) loadFromDir(name string) (*entities.Theme, error) {
	if l.dir == "" {
		return nil, nil
	}

	themeDir := filepath.Join(l.dir, name)
	css, err := os.ReadFile(filepath.Join(themeDir, stylesheetFile)) // #nosec G304 - name is validated
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading theme %s: %w", name, err)
	}

	meta, err := readMetadata(filepath.Join(themeDir, metadataFile))
	if err != nil {
		return nil, fmt.Errorf("reading theme %s metadata: %w", name, err)
	}

	theme := &entities.Theme{
		Name:        name,
		DisplayName: meta.DisplayName,
		Description: meta.Description,
		Author:      meta.Author,
		Variables:   meta.Variables,
	}
	if theme.DisplayName == "" {
		theme.DisplayName = displayName(name)
	}
	theme.Stylesheet = l.processor.Process(string(css), theme.Variables)

	l.logger.Debug("Theme loaded from directory",
		slog.String("theme", name),
		slog.String("path", themeDir),
	)

	return theme, nil
}

func (l *Loader) loadBuiltin(name string) (*entities.Theme, error) {
	info, ok := builtinThemes[name]
	if !ok {
		return nil, fmt.Errorf("unknown built-in theme %s", name)
	}

	css, err := builtinFS.ReadFile("builtin/" + name + ".css")
	if err != nil {
		return nil, fmt.Errorf("reading built-in theme %s: %w", name, err)
	}

	return &entities.Theme{
		Name:        info.Name,
		DisplayName: info.DisplayName,
		Description: info.Description,
		Author:      "slidecast",
		Stylesheet:  l.processor.Process(string(css), nil),
		BuiltIn:     true,
	}, nil
}

// List returns built-in and directory themes sorted by name.
// A directory theme shadows a built-in of the same name.
func (l *Loader) List(ctx context.Context) ([]entities.ThemeInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	byName := make(map[string]entities.ThemeInfo, len(builtinThemes))
	for name, info := range builtinThemes {
		byName[name] = info
	}

	if l.dir != "" {
		entries, err := os.ReadDir(l.dir)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading themes directory: %w", err)
		}

		for _, entry := range entries {
			name := entry.Name()
			if !entry.IsDir() || !entities.IsValidThemeName(name) {
				continue
			}

			themeDir := filepath.Join(l.dir, name)
			if _, err := os.Stat(filepath.Join(themeDir, stylesheetFile)); err != nil {
				continue
			}

			meta, err := readMetadata(filepath.Join(themeDir, metadataFile))
			if err != nil {
				l.logger.Warn("Skipping theme with invalid metadata",
					slog.String("theme", name),
					slog.String("error", err.Error()),
				)
				continue
			}

			info := entities.ThemeInfo{
				Name:        name,
				DisplayName: meta.DisplayName,
				Description: meta.Description,
				Path:        themeDir,
			}
			if info.DisplayName == "" {
				info.DisplayName = displayName(name)
			}
			byName[name] = info
		}
	}

	themes := make([]entities.ThemeInfo, 0, len(byName))
	for _, info := range byName {
		themes = append(themes, info)
	}
	sort.Slice(themes, func(i, j int) bool { return themes[i].Name < themes[j].Name })

	return themes, nil
}

// Exists reports whether name resolves without falling back
func (l *Loader) Exists(ctx context.Context, name string) bool {
	if !entities.IsValidThemeName(name) {
		return false
	}
	if _, ok := builtinThemes[name]; ok {
		return true
	}
	if l.dir == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(l.dir, name, stylesheetFile))
	return err == nil
}

// Invalidate drops cached themes so edits to theme files are picked up
func (l *Loader) Invalidate() {
	l.cache.Clear()
}

// CacheStats exposes the theme cache counters
func (l *Loader) CacheStats() entities.CacheStats {
	return l.cache.Stats()
}

func readMetadata(path string) (themeMetadata, error) {
	var meta themeMetadata
	data, err := os.ReadFile(path) // #nosec G304 - path built from a validated theme name
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return meta, nil
		}
		return meta, err
	}
	if err := toml.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("parsing %s: %w", metadataFile, err)
	}
	return meta, nil
}

// displayName turns "solarized-light" into "Solarized Light"
func displayName(name string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(name, "-", " "))
}

var _ ports.ThemeLoader = (*Loader)(nil)
