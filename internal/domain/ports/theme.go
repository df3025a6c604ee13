package ports

import (
	"context"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
)

// ThemeLoader resolves theme names to stylesheets
type ThemeLoader interface {
	// Load returns the named theme, or the built-in default marked as a
	// fallback when the name is unknown
	Load(ctx context.Context, name string) (*entities.Theme, error)

	// List returns information about all available themes
	List(ctx context.Context) ([]entities.ThemeInfo, error)

	// Exists checks if a theme exists
	Exists(ctx context.Context, name string) bool
}
