package config

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultDatabase is the database every tool connects to unless overridden.
const DefaultDatabase = "mymyunsw"

// Config captures everything a single tool invocation needs.
type Config struct {
	Database Database    `toml:"database"`
	Redis    RedisConfig `toml:"redis"`
	Metrics  Metrics     `toml:"metrics"`
	LogLevel string      `toml:"log_level"`
}

// Database holds connection settings. Empty host/user/password fall through
// to the driver's own defaults (unix socket, current user, ~/.pgpass).
type Database struct {
	Driver         string `toml:"driver"`
	Name           string `toml:"name"`
	Host           string `toml:"host"`
	Port           int    `toml:"port"`
	User           string `toml:"user"`
	Password       string `toml:"password"`
	SSLMode        string `toml:"sslmode"`
	ConnectRetries int    `toml:"connect_retries"`
}

// RedisConfig enables the lookup cache when URL is set.
type RedisConfig struct {
	URL          string        `toml:"url"`
	CacheTTL     time.Duration `toml:"cache_ttl"`
	DialTimeout  time.Duration `toml:"dial_timeout"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
}

// Metrics enables the Prometheus textfile export when Textfile is set.
type Metrics struct {
	Textfile string `toml:"textfile"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Database: Database{
			Driver:         "postgres",
			Name:           DefaultDatabase,
			SSLMode:        "disable",
			ConnectRetries: 10,
		},
		Redis: RedisConfig{
			CacheTTL:     5 * time.Minute,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
		LogLevel: "warn",
	}
}

// Load builds a Config from defaults, then an optional TOML file named by
// MYMYUNSW_CONFIG, then environment variables read through getenv. Later
// sources win.
func Load(getenv func(string) string) (Config, error) {
	cfg := Default()

	if path := getenv("MYMYUNSW_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	setString(&cfg.Database.Driver, getenv("DB_DRIVER"))
	setString(&cfg.Database.Name, getenv("DB_NAME"))
	setString(&cfg.Database.Host, getenv("DB_HOST"))
	setString(&cfg.Database.User, getenv("DB_USER"))
	setString(&cfg.Database.Password, getenv("DB_PASSWORD"))
	setString(&cfg.Database.SSLMode, getenv("DB_SSLMODE"))
	setString(&cfg.Redis.URL, getenv("REDIS_URL"))
	setString(&cfg.Metrics.Textfile, getenv("METRICS_TEXTFILE"))
	setString(&cfg.LogLevel, getenv("LOG_LEVEL"))

	if err := setInt(&cfg.Database.Port, "DB_PORT", getenv("DB_PORT")); err != nil {
		return Config{}, err
	}
	if err := setInt(&cfg.Database.ConnectRetries, "DB_CONNECT_RETRIES", getenv("DB_CONNECT_RETRIES")); err != nil {
		return Config{}, err
	}
	if err := setDuration(&cfg.Redis.CacheTTL, "REDIS_CACHE_TTL", getenv("REDIS_CACHE_TTL")); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no tool can run with.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "pgx":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want postgres or pgx)", c.Database.Driver)
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.ConnectRetries < 0 {
		return fmt.Errorf("DB_CONNECT_RETRIES must not be negative")
	}
	if c.Redis.URL != "" && c.Redis.CacheTTL <= 0 {
		return fmt.Errorf("REDIS_CACHE_TTL must be positive when REDIS_URL is set")
	}
	return nil
}

// DSN renders the connection string in URL form, which both lib/pq and pgx
// accept. Only the settings that are present are emitted.
func (d Database) DSN() string {
	u := url.URL{Scheme: "postgres", Path: "/" + d.Name}
	if d.Host != "" {
		u.Host = d.Host
		if d.Port != 0 {
			u.Host = fmt.Sprintf("%s:%d", d.Host, d.Port)
		}
	}
	if d.User != "" {
		if d.Password != "" {
			u.User = url.UserPassword(d.User, d.Password)
		} else {
			u.User = url.User(d.User)
		}
	}
	q := url.Values{}
	if d.SSLMode != "" {
		q.Set("sslmode", d.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func setInt(dst *int, name, value string) error {
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, name, value string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	*dst = d
	return nil
}
