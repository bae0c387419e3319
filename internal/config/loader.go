package config

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SPORTLINK_CONFIG is set
//  3. env (prefix SPORTLINK_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SPORTLINK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: SPORTLINK_ADDR, SPORTLINK_API_BASE_URL, ...
	// Map env keys like SPORTLINK_API_BASE_URL -> api_base_url (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SPORTLINK_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "sportlink_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if cfg.APIBaseURL == "" {
		return nil, errors.New("api_base_url must not be empty")
	}
	if cfg.UpstreamTimeoutMS <= 0 {
		return nil, errors.New("upstream_timeout_ms must be positive")
	}
	if cfg.SessionTTLHours <= 0 {
		return nil, errors.New("session_ttl_hours must be positive")
	}
	return &cfg, nil
}
