// Package config loads cadence configuration from an optional TOML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full application configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
	Auth   AuthConfig   `toml:"auth"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Addr        string   `toml:"addr"`
	CORSOrigins []string `toml:"cors_origins"`
}

// StoreConfig selects and configures the scheduled-item row store.
type StoreConfig struct {
	Backend      string `toml:"backend"` // "sqlite" or "postgrest"
	SQLitePath   string `toml:"sqlite_path"`
	PostgRESTURL string `toml:"postgrest_url"`
	PostgRESTKey string `toml:"postgrest_key"`
	Table        string `toml:"table"`
}

// AuthConfig configures bearer-token verification and the local-mode user.
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	JWTIssuer string `toml:"jwt_issuer"`
	LocalUser string `toml:"local_user"` // identity used by CLI/TUI local mode
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:        ":8787",
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Store: StoreConfig{
			Backend: "sqlite",
			Table:   "scheduled_items",
		},
		Auth: AuthConfig{
			LocalUser: "local",
		},
	}
}

// DefaultPath returns ~/.cadence/config.toml, or "" if the home directory
// cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cadence", "config.toml")
}

// DefaultDBPath returns the local SQLite path used when none is configured.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cadence.db"
	}
	return filepath.Join(home, ".cadence", "cadence.db")
}

// Load reads the config file at path (missing files are fine), then applies
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// No file; defaults plus env.
		case err != nil:
			return Config{}, fmt.Errorf("reading config file: %w", err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if cfg.Store.SQLitePath == "" {
		cfg.Store.SQLitePath = DefaultDBPath()
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CADENCE_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("CADENCE_CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("CADENCE_STORE_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("CADENCE_DB"); v != "" {
		cfg.Store.SQLitePath = v
	}
	if v := os.Getenv("CADENCE_POSTGREST_URL"); v != "" {
		cfg.Store.PostgRESTURL = v
	}
	if v := os.Getenv("CADENCE_POSTGREST_KEY"); v != "" {
		cfg.Store.PostgRESTKey = v
	}
	if v := os.Getenv("CADENCE_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("CADENCE_JWT_ISSUER"); v != "" {
		cfg.Auth.JWTIssuer = v
	}
	if v := os.Getenv("CADENCE_LOCAL_USER"); v != "" {
		cfg.Auth.LocalUser = v
	}
}

func (c Config) validate() error {
	switch c.Store.Backend {
	case "sqlite":
	case "postgrest":
		if c.Store.PostgRESTURL == "" {
			return fmt.Errorf("store backend postgrest requires postgrest_url")
		}
	default:
		return fmt.Errorf("unknown store backend %q (want sqlite or postgrest)", c.Store.Backend)
	}
	return nil
}
