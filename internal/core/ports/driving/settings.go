package driving

import (
	"context"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
)

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the effective settings: defaults, then the config file,
	// then environment overrides, then flag overrides.
	Get() (*domain.AppSettings, error)

	// GetValue returns the effective value of a config key as text.
	GetValue(key string) (string, error)

	// Set validates and persists a config key in the config file.
	Set(key, value string) error

	// Override sets a process-only value that wins over every other source.
	Override(key, value string) error

	// Validate checks the effective settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ConfigPath returns the path of the config file.
	ConfigPath() string

	// Watch calls onChange whenever the config file changes, until ctx is done.
	Watch(ctx context.Context, onChange func()) error
}
