package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server   ServerConfig
	App      AppConfig
	Cache    CacheConfig
	CMS      CMSConfig
	Snapshot SnapshotConfig
	Cart     CartConfig
	Captcha  CaptchaConfig
	Session  SessionConfig
	Auth     AuthConfig
}

// AuthConfig holds API key settings for the protected routes. Keys come
// from the environment, comma-separated; nothing is embedded in source.
type AuthConfig struct {
	APIKeys []string `envconfig:"API_KEYS" default:""`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"autoparts-storefront-api"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Debug       bool   `envconfig:"APP_DEBUG" default:"false"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`
}

// CacheConfig holds cache settings.
type CacheConfig struct {
	TTL time.Duration `envconfig:"CACHE_TTL" default:"5m"`

	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// CMSConfig holds the connection settings for the headless CMS backend.
// The bearer token MUST come from the environment; it is never embedded in
// source.
type CMSConfig struct {
	BaseURL string        `envconfig:"CMS_BASE_URL" default:"http://localhost:1337/api"`
	Token   string        `envconfig:"CMS_API_TOKEN" default:""`
	Timeout time.Duration `envconfig:"CMS_TIMEOUT" default:"10s"`
}

// SnapshotConfig holds inventory snapshot store settings.
type SnapshotConfig struct {
	Type string `envconfig:"SNAPSHOT_DB_TYPE" default:"sqlite"` // sqlite, postgres, or mysql
	Path string `envconfig:"SNAPSHOT_DB_PATH" default:"./data/snapshots.db"`
	// PostgreSQL settings
	PGHost     string `envconfig:"SNAPSHOT_DB_HOST" default:"localhost"`
	PGPort     int    `envconfig:"SNAPSHOT_DB_PORT" default:"5432"`
	PGName     string `envconfig:"SNAPSHOT_DB_NAME" default:"storefront"`
	PGUser     string `envconfig:"SNAPSHOT_DB_USER" default:"postgres"`
	PGPassword string `envconfig:"SNAPSHOT_DB_PASS" default:""`
	PGSSLMode  string `envconfig:"SNAPSHOT_DB_SSLMODE" default:"disable"`
	// MySQL settings
	MySQLHost     string `envconfig:"SNAPSHOT_MYSQL_HOST" default:"localhost"`
	MySQLPort     int    `envconfig:"SNAPSHOT_MYSQL_PORT" default:"3306"`
	MySQLName     string `envconfig:"SNAPSHOT_MYSQL_NAME" default:"storefront"`
	MySQLUser     string `envconfig:"SNAPSHOT_MYSQL_USER" default:"root"`
	MySQLPassword string `envconfig:"SNAPSHOT_MYSQL_PASS" default:""`

	Retention       time.Duration `envconfig:"SNAPSHOT_RETENTION" default:"72h"`
	RefreshInterval time.Duration `envconfig:"SNAPSHOT_REFRESH_INTERVAL" default:"15m"`
}

// CartConfig holds cart persistence settings.
type CartConfig struct {
	TTL time.Duration `envconfig:"CART_TTL" default:"168h"`
}

// CaptchaConfig holds captcha challenge settings.
type CaptchaConfig struct {
	Length  int           `envconfig:"CAPTCHA_LENGTH" default:"6"`
	Charset string        `envconfig:"CAPTCHA_CHARSET" default:""`
	TTL     time.Duration `envconfig:"CAPTCHA_TTL" default:"5m"`
}

// SessionConfig holds session token settings.
type SessionConfig struct {
	TTL time.Duration `envconfig:"SESSION_TTL" default:"1h"`
}

// PostgresDSN returns the PostgreSQL connection string.
func (s *SnapshotConfig) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		s.PGUser, s.PGPassword, s.PGHost, s.PGPort, s.PGName, s.PGSSLMode)
}

// MySQLDSN returns the MySQL data source name.
func (s *SnapshotConfig) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		s.MySQLUser, s.MySQLPassword, s.MySQLHost, s.MySQLPort, s.MySQLName)
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RedisAddress returns the Redis address in host:port format.
func (c *CacheConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// BaseHost returns the CMS base URL with any trailing /api segment stripped.
// Media URLs returned by the CMS are relative to this host, not to the API
// prefix.
func (c *CMSConfig) BaseHost() string {
	base := strings.TrimRight(c.BaseURL, "/")
	base = strings.TrimSuffix(base, "/api")
	return base
}

// IsDevelopment returns true if running in development mode.
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// IsProduction returns true if running in production mode.
func (a *AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
