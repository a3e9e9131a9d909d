package domain

import "time"

// Default settings.
const (
	DefaultAPIURL         = "http://localhost:8000"
	DefaultTimeoutSeconds = 30
	DefaultRateLimit      = 10.0
	DefaultBurst          = 20
	DefaultRegion         = "us-east-1"
	DefaultTheme          = "dark"
)

// APISettings configures the backend connection.
type APISettings struct {
	URL            string
	TimeoutSeconds int
	// RateLimit is the sustained requests per second allowed by the client.
	RateLimit float64
	Burst     int
}

// Timeout returns the request timeout as a duration.
func (s APISettings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// AuthSettings configures the identity provider.
type AuthSettings struct {
	Region     string
	ClientID   string
	UserPoolID string
}

// UISettings configures the terminal interface.
type UISettings struct {
	Theme string
}

// AppSettings is the effective configuration of the client.
type AppSettings struct {
	API  APISettings
	Auth AuthSettings
	UI   UISettings
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			URL:            DefaultAPIURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
			RateLimit:      DefaultRateLimit,
			Burst:          DefaultBurst,
		},
		Auth: AuthSettings{Region: DefaultRegion},
		UI:   UISettings{Theme: DefaultTheme},
	}
}

// Config keys used in the configuration file.
const (
	KeyAPIURL         = "api.url"
	KeyAPITimeout     = "api.timeout_seconds"
	KeyAPIRateLimit   = "api.rate_limit"
	KeyAPIBurst       = "api.burst"
	KeyAuthRegion     = "auth.region"
	KeyAuthClientID   = "auth.client_id"
	KeyAuthUserPoolID = "auth.user_pool_id"
	KeyUITheme        = "ui.theme"
)

// ConfigKeys returns every recognised configuration key.
func ConfigKeys() []string {
	return []string{
		KeyAPIURL, KeyAPITimeout, KeyAPIRateLimit, KeyAPIBurst,
		KeyAuthRegion, KeyAuthClientID, KeyAuthUserPoolID, KeyUITheme,
	}
}

// IsConfigKey reports whether key is recognised.
func IsConfigKey(key string) bool {
	for _, k := range ConfigKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// Themes returns the recognised UI themes.
func Themes() []string {
	return []string{"dark", "light"}
}

// IsTheme reports whether name is a recognised UI theme.
func IsTheme(name string) bool {
	for _, t := range Themes() {
		if t == name {
			return true
		}
	}
	return false
}
