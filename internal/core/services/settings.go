package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driven"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService merges configuration sources. Precedence, lowest first:
// defaults, config file, environment, process overrides (flags).
type SettingsService struct {
	configStore driven.ConfigStore
	env         map[string]string

	mu        sync.RWMutex
	overrides map[string]string
}

// NewSettingsService creates a new settings service.
// env maps config keys to values taken from the environment; it may be nil.
func NewSettingsService(configStore driven.ConfigStore, env map[string]string) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		env:         env,
		overrides:   make(map[string]string),
	}
}

// Get returns the effective settings. Values that fail to parse fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	d := domain.DefaultAppSettings()
	return &domain.AppSettings{
		API: domain.APISettings{
			URL:            s.getString(domain.KeyAPIURL, d.API.URL),
			TimeoutSeconds: s.getInt(domain.KeyAPITimeout, d.API.TimeoutSeconds),
			RateLimit:      s.getFloat(domain.KeyAPIRateLimit, d.API.RateLimit),
			Burst:          s.getInt(domain.KeyAPIBurst, d.API.Burst),
		},
		Auth: domain.AuthSettings{
			Region:     s.getString(domain.KeyAuthRegion, d.Auth.Region),
			ClientID:   s.getString(domain.KeyAuthClientID, d.Auth.ClientID),
			UserPoolID: s.getString(domain.KeyAuthUserPoolID, d.Auth.UserPoolID),
		},
		UI: domain.UISettings{
			Theme: s.getString(domain.KeyUITheme, d.UI.Theme),
		},
	}, nil
}

// GetValue returns the effective value of key as text.
func (s *SettingsService) GetValue(key string) (string, error) {
	if !domain.IsConfigKey(key) {
		return "", fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}
	settings, err := s.Get()
	if err != nil {
		return "", err
	}
	switch key {
	case domain.KeyAPIURL:
		return settings.API.URL, nil
	case domain.KeyAPITimeout:
		return strconv.Itoa(settings.API.TimeoutSeconds), nil
	case domain.KeyAPIRateLimit:
		return strconv.FormatFloat(settings.API.RateLimit, 'f', -1, 64), nil
	case domain.KeyAPIBurst:
		return strconv.Itoa(settings.API.Burst), nil
	case domain.KeyAuthRegion:
		return settings.Auth.Region, nil
	case domain.KeyAuthClientID:
		return settings.Auth.ClientID, nil
	case domain.KeyAuthUserPoolID:
		return settings.Auth.UserPoolID, nil
	default:
		return settings.UI.Theme, nil
	}
}

// Set validates value and persists it in the config file.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	typed, err := parseValue(key, value)
	if err != nil {
		return err
	}
	if err := s.configStore.Set(key, typed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Override sets a process-only value that wins over every other source.
func (s *SettingsService) Override(key, value string) error {
	if _, err := parseValue(key, value); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[key] = value
	return nil
}

// Validate checks the effective settings can reach the backend and the user pool.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if err := validateURL(settings.API.URL); err != nil {
		return err
	}
	if settings.Auth.ClientID == "" {
		return fmt.Errorf("%w: %s is not set (set it with 'kameleon config set %s <id>' or KAMELEON_COGNITO_CLIENT_ID)",
			domain.ErrNotConfigured, domain.KeyAuthClientID, domain.KeyAuthClientID)
	}
	if settings.Auth.Region == "" {
		return fmt.Errorf("%w: %s is not set", domain.ErrNotConfigured, domain.KeyAuthRegion)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ConfigPath returns the config file path.
func (s *SettingsService) ConfigPath() string {
	if s.configStore == nil {
		return ""
	}
	return s.configStore.Path()
}

// Watch calls onChange whenever the config file changes, until ctx is done.
func (s *SettingsService) Watch(ctx context.Context, onChange func()) error {
	if s.configStore == nil {
		return domain.ErrNotConfigured
	}
	return s.configStore.Watch(ctx, onChange)
}

// lookup returns the raw value of key from the highest-precedence source that has it.
func (s *SettingsService) lookup(key string) (string, bool) {
	s.mu.RLock()
	v, ok := s.overrides[key]
	s.mu.RUnlock()
	if ok {
		return v, true
	}
	if v, ok := s.env[key]; ok && v != "" {
		return v, true
	}
	if s.configStore == nil {
		return "", false
	}
	raw, ok := s.configStore.Get(key)
	if !ok {
		return "", false
	}
	return fmt.Sprint(raw), true
}

func (s *SettingsService) getString(key, def string) string {
	if v, ok := s.lookup(key); ok && v != "" {
		return v
	}
	return def
}

func (s *SettingsService) getInt(key string, def int) int {
	v, ok := s.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func (s *SettingsService) getFloat(key string, def float64) float64 {
	v, ok := s.lookup(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}

// parseValue converts the text form of a config value to the type stored in the file.
func parseValue(key, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch key {
	case domain.KeyAPIURL:
		if err := validateURL(value); err != nil {
			return nil, err
		}
		return strings.TrimRight(value, "/"), nil
	case domain.KeyAPITimeout, domain.KeyAPIBurst:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		return n, nil
	case domain.KeyAPIRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("%w: %s must be a positive number", domain.ErrInvalidInput, key)
		}
		return f, nil
	case domain.KeyUITheme:
		if !domain.IsTheme(value) {
			return nil, fmt.Errorf("%w: theme must be one of %s", domain.ErrInvalidInput, strings.Join(domain.Themes(), ", "))
		}
		return value, nil
	case domain.KeyAuthRegion, domain.KeyAuthClientID, domain.KeyAuthUserPoolID:
		return value, nil
	default:
		return nil, fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: api url %q must be an absolute http(s) URL", domain.ErrInvalidInput, raw)
	}
	return nil
}
