package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "OMS_"

// Config holds runtime configuration for the OMS API.
type Config struct {
	Listen       string        `koanf:"listen"`
	LogLevel     string        `koanf:"log_level"`
	LogPretty    bool          `koanf:"log_pretty"`
	DatabaseDSN  string        `koanf:"database_dsn"`
	SnapshotPath string        `koanf:"snapshot_path"`

	Auth     AuthConfig     `koanf:"auth"`
	Identity IdentityConfig `koanf:"identity"`
	Cache    CacheConfig    `koanf:"cache"`
}

// AuthConfig configures session token issuance for the local provider.
type AuthConfig struct {
	TokenSecret string        `koanf:"token_secret"`
	TokenTTL    time.Duration `koanf:"token_ttl"`
}

// IdentityConfig selects and configures the identity provider.
type IdentityConfig struct {
	// Mode is "local" (users table + bcrypt) or "remote" (hosted REST provider).
	Mode       string        `koanf:"mode"`
	BaseURL    string        `koanf:"base_url"`
	APIKey     string        `koanf:"api_key"`
	RedirectTo string        `koanf:"redirect_to"`
	Timeout    time.Duration `koanf:"timeout"`
}

// CacheConfig bounds the access-resolution cache.
type CacheConfig struct {
	MaxEntries int           `koanf:"max_entries"`
	TTL        time.Duration `koanf:"ttl"`
}

func defaults() Config {
	return Config{
		Listen:       ":8080",
		LogLevel:     "info",
		SnapshotPath: "oms-session.json",
		Auth: AuthConfig{
			TokenTTL: 15 * time.Minute,
		},
		Identity: IdentityConfig{
			Mode:       "local",
			RedirectTo: "/login",
			Timeout:    10 * time.Second,
		},
		Cache: CacheConfig{
			MaxEntries: 1024,
			TTL:        0, // no expiry; invalidation is mutation-driven
		},
	}
}

// Load reads configuration from an optional YAML file plus OMS_* environment
// variables, env taking precedence.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	cfg := defaults()

	if path == "" {
		path = os.Getenv(envPrefix + "CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// OMS_IDENTITY_BASE_URL -> identity.base_url, OMS_LOG_LEVEL -> log_level
	if err := k.Load(env.Provider(envPrefix, ".", transformEnv), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func transformEnv(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	for _, section := range []string{"auth", "identity", "cache"} {
		if strings.HasPrefix(s, section+"_") {
			return section + "." + strings.TrimPrefix(s, section+"_")
		}
	}
	return s
}

// Validate rejects configurations the service cannot run with.
func (c Config) Validate() error {
	if c.DatabaseDSN == "" {
		return fmt.Errorf("config: database_dsn is required")
	}
	switch c.Identity.Mode {
	case "local":
		if c.Auth.TokenSecret == "" {
			return fmt.Errorf("config: auth.token_secret is required in local identity mode")
		}
	case "remote":
		if c.Identity.BaseURL == "" {
			return fmt.Errorf("config: identity.base_url is required in remote identity mode")
		}
	default:
		return fmt.Errorf("config: unsupported identity mode %q", c.Identity.Mode)
	}
	if c.Cache.MaxEntries <= 0 {
		return fmt.Errorf("config: cache.max_entries must be positive")
	}
	return nil
}
