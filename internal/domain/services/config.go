package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
	"github.com/fredcamaral/slidecast/internal/domain/ports"
)

// ConfigService resolves the effective configuration
type ConfigService struct {
	loader ports.ConfigLoader
	merger ports.ConfigMerger
	logger *slog.Logger
}

// NewConfigService creates a new configuration service
func NewConfigService(loader ports.ConfigLoader, merger ports.ConfigMerger, logger *slog.Logger) *ConfigService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ConfigService{
		loader: loader,
		merger: merger,
		logger: logger.With("service", "config"),
	}
}

// LoadConfig layers defaults, the global file, the local file (or an
// explicit file in place of both), environment variables and flags
func (s *ConfigService) LoadConfig(ctx context.Context, req ports.ConfigRequest) (*entities.Config, error) {
	var configs []*entities.Config

	if req.ExplicitPath != "" {
		explicit, err := s.loader.LoadFile(ctx, req.ExplicitPath)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		configs = append(configs, explicit)
		s.logger.Debug("Using explicit config", slog.String("path", req.ExplicitPath))
	} else {
		global, err := s.loader.LoadGlobal(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading global config: %w", err)
		}
		configs = append(configs, global)

		if req.WorkingDir != "" {
			local, err := s.loader.LoadLocal(ctx, req.WorkingDir)
			if err != nil {
				return nil, fmt.Errorf("loading local config: %w", err)
			}
			if local != nil {
				configs = append(configs, local)
				s.logger.Debug("Using local config", slog.String("path", s.loader.GetLocalPath(req.WorkingDir)))
			}
		}
	}

	merged := s.merger.Merge(configs...)
	withEnv := s.merger.ApplyEnvVars(merged)
	final := s.merger.ApplyFlags(withEnv, req.Flags)

	if err := s.ValidateConfig(final); err != nil {
		return nil, fmt.Errorf("final config validation: %w", err)
	}

	return final, nil
}

// GetDefaultConfig returns the built-in configuration
func (s *ConfigService) GetDefaultConfig() *entities.Config {
	return s.merger.Merge()
}

// ValidateConfig validates a configuration
func (s *ConfigService) ValidateConfig(config *entities.Config) error {
	if config == nil {
		return errors.New("config cannot be nil")
	}

	return config.Validate()
}

// CreateGlobalConfig writes the default configuration to the global path
func (s *ConfigService) CreateGlobalConfig(ctx context.Context) error {
	return s.loader.CreateDefaults(ctx, s.loader.GetGlobalPath())
}

var _ ports.ConfigService = (*ConfigService)(nil)
