package ports

import (
	"context"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
)

// ConfigLoader reads slidecast.toml files
type ConfigLoader interface {
	// LoadGlobal loads the per-user configuration, creating it on first run
	LoadGlobal(ctx context.Context) (*entities.Config, error)

	// LoadLocal loads slidecast.toml from dir; a missing file yields nil
	LoadLocal(ctx context.Context, dir string) (*entities.Config, error)

	// LoadFile loads an explicit configuration file
	LoadFile(ctx context.Context, path string) (*entities.Config, error)

	// CreateDefaults writes the default configuration to path
	CreateDefaults(ctx context.Context, path string) error

	GetGlobalPath() string
	GetLocalPath(dir string) string
}

// ConfigMerger layers configurations
type ConfigMerger interface {
	// Merge overlays configs onto the defaults, later configs winning
	Merge(configs ...*entities.Config) *entities.Config

	// ApplyFlags applies command line overrides keyed by flag name
	ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config

	// ApplyEnvVars applies SLIDECAST_* environment overrides
	ApplyEnvVars(config *entities.Config) *entities.Config
}

// ConfigService resolves the effective configuration
type ConfigService interface {
	LoadConfig(ctx context.Context, req ConfigRequest) (*entities.Config, error)
	GetDefaultConfig() *entities.Config
	ValidateConfig(config *entities.Config) error
	CreateGlobalConfig(ctx context.Context) error
}

// ConfigRequest names the inputs of one configuration resolution
type ConfigRequest struct {
	// WorkingDir is searched for a local slidecast.toml
	WorkingDir string
	// ExplicitPath replaces the global and local files when set
	ExplicitPath string
	// Flags are command line overrides, highest precedence
	Flags map[string]interface{}
}
