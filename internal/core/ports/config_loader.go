package ports

import "go.trai.ch/haul/internal/core/domain"

// ConfigLoader defines the interface for the per-user configuration file.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the config. Returns ErrMissingConfig when no config exists.
	Load() (*domain.Config, error)

	// Write persists the config atomically, creating the config directory if needed.
	Write(cfg *domain.Config) error

	// Default returns a config populated with defaults for this machine.
	// The upgrade check is backdated so a fresh config triggers one.
	Default() (*domain.Config, error)

	// Path returns the location of the config file.
	Path() string
}
