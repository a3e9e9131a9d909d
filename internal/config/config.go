// Package config reads the process environment that overlays the config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
)

// Env holds the environment overrides. Empty fields leave the config file in charge.
type Env struct {
	APIURL     string `env:"KAMELEON_API_URL"               env-description:"Backend base URL"`
	APITimeout string `env:"KAMELEON_API_TIMEOUT_SECONDS"   env-description:"Request timeout in seconds"`
	RateLimit  string `env:"KAMELEON_API_RATE_LIMIT"        env-description:"Requests per second"`
	Burst      string `env:"KAMELEON_API_BURST"             env-description:"Request burst size"`
	Region     string `env:"KAMELEON_COGNITO_REGION"        env-description:"Cognito user pool region"`
	ClientID   string `env:"KAMELEON_COGNITO_CLIENT_ID"     env-description:"Cognito app client id"`
	UserPoolID string `env:"KAMELEON_COGNITO_USER_POOL_ID"  env-description:"Cognito user pool id"`
	Endpoint   string `env:"KAMELEON_COGNITO_ENDPOINT"      env-description:"Cognito endpoint override"`
	Theme      string `env:"KAMELEON_THEME"                 env-description:"TUI theme (dark or light)"`
	Home       string `env:"KAMELEON_HOME"                  env-description:"Directory for config and local data"`
	Storage    string `env:"KAMELEON_STORAGE"               env-description:"Local storage: sqlite or memory" env-default:"sqlite"`
}

// LoadEnv reads Env from the process environment.
func LoadEnv() (*Env, error) {
	var env Env
	if err := cleanenv.ReadEnv(&env); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	return &env, nil
}

// Overrides maps config keys to the values set in the environment.
func (e *Env) Overrides() map[string]string {
	pairs := map[string]string{
		domain.KeyAPIURL:         e.APIURL,
		domain.KeyAPITimeout:     e.APITimeout,
		domain.KeyAPIRateLimit:   e.RateLimit,
		domain.KeyAPIBurst:       e.Burst,
		domain.KeyAuthRegion:     e.Region,
		domain.KeyAuthClientID:   e.ClientID,
		domain.KeyAuthUserPoolID: e.UserPoolID,
		domain.KeyUITheme:        e.Theme,
	}
	out := make(map[string]string, len(pairs))
	for k, v := range pairs {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// HomeDir returns KAMELEON_HOME, or ~/.kameleon when unset.
func (e *Env) HomeDir() (string, error) {
	if e.Home != "" {
		return e.Home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: home dir: %w", err)
	}
	return filepath.Join(home, ".kameleon"), nil
}

// Usage describes the supported environment variables.
func Usage() string {
	var env Env
	text, err := cleanenv.GetDescription(&env, nil)
	if err != nil {
		return ""
	}
	return text
}
