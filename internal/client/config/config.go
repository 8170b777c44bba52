// Package config собирает настройки клиента из нескольких источников.
//
// Порядок (последний выигрывает): значения по умолчанию, YAML-файл,
// .env-файл и переменные окружения TODOKEEPER_*, флаги командной строки.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"

	FormatText = "text"
	FormatJSON = "json"

	// MaxPageSize is the largest page the server agrees to return.
	MaxPageSize = 100

	envPrefix = "TODOKEEPER_"
)

type Config struct {
	ServerURL string        `yaml:"server_url"`
	Store     StoreConfig   `yaml:"store"`
	Log       LogConfig     `yaml:"log"`
	PageSize  int           `yaml:"page_size"`
	Timeout   time.Duration `yaml:"timeout"`
}

type StoreConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	// Passphrase включает шифрование токенов на диске.
	Passphrase string `yaml:"passphrase"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ServerURL: "http://localhost:8000",
		Store: StoreConfig{
			Driver: DriverBolt,
			Path:   "todokeeper-client.db",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: FormatText,
		},
		PageSize: 10,
		Timeout:  10 * time.Second,
	}
}

// Load builds the configuration from defaults, the YAML file at path (when
// non-empty) and the environment. An explicitly named file must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := LoadYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadYAML reads a YAML file over the values already in target.
func LoadYAML(path string, target *Config) error {
	data, err := os.ReadFile(path) // #nosec G304 -- путь задает пользователь
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// LoadDotEnv exports variables from a .env file without overriding ones
// already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(envPrefix + key)
		if !ok || strings.TrimSpace(v) == "" {
			return "", false
		}
		return strings.TrimSpace(v), true
	}

	if v, ok := get("SERVER"); ok {
		c.ServerURL = v
	}
	if v, ok := get("STORE"); ok {
		c.Store.Driver = v
	}
	if v, ok := get("DB"); ok {
		c.Store.Path = v
	}
	if v, ok := lookup(envPrefix + "PASSPHRASE"); ok {
		c.Store.Passphrase = v
	}
	if v, ok := get("PAGE_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sPAGE_SIZE %q: %w", envPrefix, v, err)
		}
		c.PageSize = n
	}
	if v, ok := get("TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sTIMEOUT %q: %w", envPrefix, v, err)
		}
		c.Timeout = d
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := get("LOG_FORMAT"); ok {
		c.Log.Format = v
	}
	return nil
}

// Validate reports the first setting the client cannot work with.
func (c Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid server URL %q: %w", c.ServerURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server URL %q: expected http(s)://host", c.ServerURL)
	}

	switch c.Store.Driver {
	case DriverBolt, DriverSQLite:
	default:
		return fmt.Errorf("unknown store driver %q (expected %s or %s)", c.Store.Driver, DriverBolt, DriverSQLite)
	}
	if c.Store.Path == "" {
		return errors.New("store path is empty")
	}

	if c.PageSize < 1 || c.PageSize > MaxPageSize {
		return fmt.Errorf("page size must be between 1 and %d, got %d", MaxPageSize, c.PageSize)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}

	if _, err := c.Log.level(); err != nil {
		return err
	}
	switch c.Log.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unknown log format %q (expected %s or %s)", c.Log.Format, FormatText, FormatJSON)
	}
	return nil
}

func (l LogConfig) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}
	return lvl, nil
}
