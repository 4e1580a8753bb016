package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"forecast.app/pkg/errors"
)

const (
	maxRedisDB          = 15
	maxCacheTTLMinutes  = 10080
	maxFetchTimeoutSecs = 120
	maxConcurrentFetch  = 64
	maxPortNumber       = 65535
)

// Config represents the application configuration structure
type Config struct {
	Server       ServerConfig       `split_words:"true"`
	Database     DatabaseConfig     `split_words:"true"`
	Weather      WeatherConfig      `split_words:"true"`
	Geocoding    GeocodingConfig    `split_words:"true"`
	Cache        CacheConfig        `split_words:"true"`
	Connectivity ConnectivityConfig `split_words:"true"`
	Favorites    FavoritesConfig    `split_words:"true"`
	Log          LogConfig          `split_words:"true"`
}

type ServerConfig struct {
	Port            int `envconfig:"SERVER_PORT" default:"8080"`
	RateLimitPerMin int `envconfig:"SERVER_RATE_LIMIT_PER_MINUTE" default:"120"`
}

// DatabaseDriver selects the storage engine backing the favorites store
type DatabaseDriver string

const (
	DatabaseDriverSQLite   DatabaseDriver = "sqlite"
	DatabaseDriverPostgres DatabaseDriver = "postgres"
)

type DatabaseConfig struct {
	Driver   DatabaseDriver `envconfig:"DB_DRIVER" default:"sqlite"`
	Path     string         `envconfig:"DB_PATH" default:"data/favorites.db"`
	Host     string         `envconfig:"DB_HOST" default:"localhost"`
	Port     int            `envconfig:"DB_PORT" default:"5432"`
	User     string         `envconfig:"DB_USER" default:"postgres"`
	Password string         `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string         `envconfig:"DB_NAME" default:"forecast"`
	SSLMode  string         `envconfig:"DB_SSL_MODE" default:"disable"`
}

func (c DatabaseConfig) GetDSN() string {
	if c.Driver == DatabaseDriverSQLite {
		return c.Path
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type WeatherConfig struct {
	APIKey              string `envconfig:"WEATHER_API_KEY"`
	BaseURL             string `envconfig:"WEATHER_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	Units               string `envconfig:"WEATHER_UNITS" default:"metric"`
	Exclude             string `envconfig:"WEATHER_EXCLUDE" default:"minutely"`
	FetchTimeoutSeconds int    `envconfig:"WEATHER_FETCH_TIMEOUT_SECONDS" default:"10"`
	EnableLogging       bool   `envconfig:"WEATHER_ENABLE_LOGGING" default:"true"`
}

type GeocodingConfig struct {
	BaseURL         string `envconfig:"GEOCODING_API_BASE_URL" default:"https://api.openweathermap.org"`
	ResultLimit     int    `envconfig:"GEOCODING_RESULT_LIMIT" default:"1"`
	CacheTTLMinutes int    `envconfig:"GEOCODING_CACHE_TTL_MINUTES" default:"1440"`
}

// CacheType represents the type of cache to use
type CacheType int

const (
	CacheTypeUnknown CacheType = iota
	CacheTypeMemory
	CacheTypeRedis
)

// String returns the string representation of cache type
func (c CacheType) String() string {
	switch c {
	case CacheTypeMemory:
		return "memory"
	case CacheTypeRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IsValid checks if the cache type is valid
func (c CacheType) IsValid() bool {
	return c == CacheTypeMemory || c == CacheTypeRedis
}

// CacheTypeFromString converts string to CacheType enum
func CacheTypeFromString(s string) CacheType {
	switch s {
	case "memory":
		return CacheTypeMemory
	case "redis":
		return CacheTypeRedis
	default:
		return CacheTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (c *CacheType) UnmarshalText(text []byte) error {
	*c = CacheTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (c CacheType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type CacheConfig struct {
	Type  CacheType   `envconfig:"CACHE_TYPE" default:"memory"`
	Redis RedisConfig `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

type ConnectivityConfig struct {
	ProbeAddr      string `envconfig:"CONNECTIVITY_PROBE_ADDR" default:"api.openweathermap.org:443"`
	ProbeTimeoutMS int    `envconfig:"CONNECTIVITY_PROBE_TIMEOUT_MS" default:"1500"`
}

type FavoritesConfig struct {
	MaxConcurrentFetches   int `envconfig:"FAVORITES_MAX_CONCURRENT_FETCHES" default:"4"`
	RefreshIntervalMinutes int `envconfig:"FAVORITES_REFRESH_INTERVAL_MINUTES" default:"0"`
}

type LogConfig struct {
	Level    string `envconfig:"LOG_LEVEL" default:"info"`
	Format   string `envconfig:"LOG_FORMAT" default:"json"`
	FilePath string `envconfig:"LOG_FILE_PATH" default:""`
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Geocoding.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Connectivity.Validate(); err != nil {
		return err
	}
	if err := c.Favorites.Validate(); err != nil {
		return err
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	if s.RateLimitPerMin < 1 {
		return errors.NewConfigurationError("SERVER_RATE_LIMIT_PER_MINUTE must be at least 1", nil)
	}
	return nil
}

func (d *DatabaseConfig) Validate() error {
	switch d.Driver {
	case DatabaseDriverSQLite:
		if strings.TrimSpace(d.Path) == "" {
			return errors.NewConfigurationError("DB_PATH cannot be empty for sqlite", nil)
		}
		return nil
	case DatabaseDriverPostgres:
		if d.Host == "" {
			return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
		}
		if d.Port < 1 || d.Port > maxPortNumber {
			return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
		}
		if d.User == "" {
			return errors.NewConfigurationError("DB_USER cannot be empty", nil)
		}
		if d.Name == "" {
			return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
		}
		return d.ValidateSSLMode()
	default:
		return errors.NewConfigurationError("DB_DRIVER must be one of: sqlite, postgres", nil)
	}
}

func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

func (w *WeatherConfig) Validate() error {
	if w.APIKey == "" {
		return errors.NewConfigurationError("WEATHER_API_KEY must be configured", nil)
	}
	if !hasHTTPScheme(w.BaseURL) {
		return errors.NewConfigurationError("WEATHER_API_BASE_URL must start with http:// or https://", nil)
	}
	if w.Units == "" {
		return errors.NewConfigurationError("WEATHER_UNITS cannot be empty", nil)
	}
	if w.FetchTimeoutSeconds < 1 || w.FetchTimeoutSeconds > maxFetchTimeoutSecs {
		return errors.NewConfigurationError("WEATHER_FETCH_TIMEOUT_SECONDS must be between 1 and 120", nil)
	}
	return nil
}

func (g *GeocodingConfig) Validate() error {
	if !hasHTTPScheme(g.BaseURL) {
		return errors.NewConfigurationError("GEOCODING_API_BASE_URL must start with http:// or https://", nil)
	}
	if g.ResultLimit < 1 || g.ResultLimit > 5 {
		return errors.NewConfigurationError("GEOCODING_RESULT_LIMIT must be between 1 and 5", nil)
	}
	if g.CacheTTLMinutes < 1 || g.CacheTTLMinutes > maxCacheTTLMinutes {
		return errors.NewConfigurationError("GEOCODING_CACHE_TTL_MINUTES must be between 1 and 10080 minutes", nil)
	}
	return nil
}

func (c *CacheConfig) Validate() error {
	if !c.Type.IsValid() {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: memory, redis", nil)
	}

	if c.Type == CacheTypeRedis {
		return c.Redis.Validate()
	}

	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis cache", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (c *ConnectivityConfig) Validate() error {
	if _, _, err := net.SplitHostPort(c.ProbeAddr); err != nil {
		return errors.NewConfigurationError("CONNECTIVITY_PROBE_ADDR must be host:port", err)
	}
	if c.ProbeTimeoutMS < 1 {
		return errors.NewConfigurationError("CONNECTIVITY_PROBE_TIMEOUT_MS must be positive", nil)
	}
	return nil
}

func (f *FavoritesConfig) Validate() error {
	if f.MaxConcurrentFetches < 1 || f.MaxConcurrentFetches > maxConcurrentFetch {
		return errors.NewConfigurationError("FAVORITES_MAX_CONCURRENT_FETCHES must be between 1 and 64", nil)
	}
	if f.RefreshIntervalMinutes < 0 {
		return errors.NewConfigurationError("FAVORITES_REFRESH_INTERVAL_MINUTES cannot be negative", nil)
	}
	return nil
}

func hasHTTPScheme(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}
