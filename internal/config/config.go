// Package config defines process configuration and its loading.
//
// Configuration layers, lowest precedence first: built-in defaults, a YAML
// file named by SPORTLINK_CONFIG, then SPORTLINK_* environment variables.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// APIBaseURL is the remote backend root, e.g. "http://localhost:8080/api".
	APIBaseURL string `koanf:"api_base_url"`

	// UpstreamTimeoutMS bounds each call to the remote backend.
	UpstreamTimeoutMS int `koanf:"upstream_timeout_ms"`

	// SessionDBPath is the SQLite file holding browser sessions.
	// ":memory:" keeps sessions in-process only.
	SessionDBPath string `koanf:"session_db_path"`

	// SessionTTLHours controls how long a login stays valid locally.
	SessionTTLHours int `koanf:"session_ttl_hours"`

	// CSRFKey is the 32-byte key for CSRF token signing, hex or raw.
	// Empty means a random per-process key (sessions break on restart).
	CSRFKey string `koanf:"csrf_key"`

	// DefaultLocale picks the UI language when the browser states no preference.
	DefaultLocale string `koanf:"default_locale"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":8090",
		APIBaseURL:        "http://localhost:8080/api",
		UpstreamTimeoutMS: 10_000,
		SessionDBPath:     "sportlink.db",
		SessionTTLHours:   24,
		CSRFKey:           "",
		DefaultLocale:     "en",
	}
}
