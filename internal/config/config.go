package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Storage    StorageConfig    `yaml:"storage"`
	Auth       AuthConfig       `yaml:"auth"`
	Feedback   FeedbackConfig   `yaml:"feedback"`
	Tailscale  TailscaleConfig  `yaml:"tailscale"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Validation ValidationConfig `yaml:"validation"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type StorageConfig struct {
	Driver   string         `yaml:"driver"`
	Path     string         `yaml:"path"`
	Database DatabaseConfig `yaml:"database"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

// FeedbackConfig configures the Gemini coaching call. An empty APIKey
// disables the call and every workout gets the fallback text.
type FeedbackConfig struct {
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

type CatalogConfig struct {
	// PersistCustom stores user-added exercises with the snapshot.
	PersistCustom bool `yaml:"persist_custom"`
}

type ValidationConfig struct {
	// EnforceSetRanges rejects out-of-range weight and reps at the API.
	EnforceSetRanges bool `yaml:"enforce_set_ranges"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Default returns the configuration used for keys the file leaves out.
func Default() *Config {
	return &Config{
		Server:     ServerConfig{Host: "127.0.0.1", Port: 8080},
		Storage:    StorageConfig{Driver: DriverSQLite, Path: "musclememo.db"},
		Feedback:   FeedbackConfig{Model: "gemini-2.0-flash", Timeout: 20 * time.Second},
		Tailscale:  TailscaleConfig{Hostname: "musclememo", StateDir: "tsnet-state"},
		Catalog:    CatalogConfig{PersistCustom: true},
		Validation: ValidationConfig{EnforceSetRanges: true},
	}
}

// Load reads config from a YAML file over the defaults, then applies
// environment variable overrides:
//
//	MUSCLEMEMO_SERVER_HOST, MUSCLEMEMO_SERVER_PORT,
//	MUSCLEMEMO_STORAGE_DRIVER, MUSCLEMEMO_STORAGE_PATH,
//	MUSCLEMEMO_DB_HOST, MUSCLEMEMO_DB_PORT, MUSCLEMEMO_DB_NAME,
//	MUSCLEMEMO_DB_USER, MUSCLEMEMO_DB_PASSWORD, MUSCLEMEMO_DB_SSLMODE,
//	MUSCLEMEMO_AUTH_API_KEY, MUSCLEMEMO_GEMINI_API_KEY, MUSCLEMEMO_GEMINI_MODEL
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.Server.Host, "MUSCLEMEMO_SERVER_HOST")
	setInt(&cfg.Server.Port, "MUSCLEMEMO_SERVER_PORT")
	setString(&cfg.Storage.Driver, "MUSCLEMEMO_STORAGE_DRIVER")
	setString(&cfg.Storage.Path, "MUSCLEMEMO_STORAGE_PATH")
	setString(&cfg.Storage.Database.Host, "MUSCLEMEMO_DB_HOST")
	setInt(&cfg.Storage.Database.Port, "MUSCLEMEMO_DB_PORT")
	setString(&cfg.Storage.Database.Name, "MUSCLEMEMO_DB_NAME")
	setString(&cfg.Storage.Database.User, "MUSCLEMEMO_DB_USER")
	setString(&cfg.Storage.Database.Password, "MUSCLEMEMO_DB_PASSWORD")
	setString(&cfg.Storage.Database.SSLMode, "MUSCLEMEMO_DB_SSLMODE")
	setString(&cfg.Auth.APIKey, "MUSCLEMEMO_AUTH_API_KEY")
	setString(&cfg.Feedback.APIKey, "MUSCLEMEMO_GEMINI_API_KEY")
	setString(&cfg.Feedback.Model, "MUSCLEMEMO_GEMINI_MODEL")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for sqlite")
		}
	case DriverPostgres:
		db := c.Storage.Database
		if db.Host == "" {
			return fmt.Errorf("storage.database.host is required")
		}
		if db.Port == 0 {
			return fmt.Errorf("storage.database.port is required")
		}
		if db.Name == "" {
			return fmt.Errorf("storage.database.name is required")
		}
		if db.User == "" {
			return fmt.Errorf("storage.database.user is required")
		}
	default:
		return fmt.Errorf("storage.driver must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.Storage.Driver)
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	if c.Feedback.Timeout <= 0 {
		return fmt.Errorf("feedback.timeout must be positive")
	}
	return nil
}
