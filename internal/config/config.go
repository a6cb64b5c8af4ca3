package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the configuration shared by the campusgrid services.
// Each binary loads the same structure; sections it does not use are ignored.
type Config struct {
	Server struct {
		Name string `yaml:"name" env:"SERVER_NAME"`
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
		// AuthMode selects how course and student deployables authenticate
		// requests: "jwt" validates bearer tokens locally, "gateway" trusts
		// identity headers stamped by an upstream gateway.
		AuthMode string `yaml:"auth_mode" env:"SERVER_AUTH_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret                 string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration  string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		RefreshTokenExpiration string `yaml:"refresh_token_expiration" env:"JWT_REFRESH_TOKEN_EXPIRATION"`
		Issuer                 string `yaml:"issuer" env:"JWT_ISSUER"`
		Audience               string `yaml:"audience" env:"JWT_AUDIENCE"`
	} `yaml:"jwt"`

	Cache struct {
		Enabled bool   `yaml:"enabled" env:"CACHE_ENABLED"`
		Backend string `yaml:"backend" env:"CACHE_BACKEND"` // memory | redis
		// TTL for successful results. NegativeTTL covers cached not-found
		// results; empty means "same as TTL", a negative duration disables
		// negative caching.
		TTL         string `yaml:"ttl" env:"CACHE_TTL"`
		NegativeTTL string `yaml:"negative_ttl" env:"CACHE_NEGATIVE_TTL"`
		MaxEntries  int    `yaml:"max_entries" env:"CACHE_MAX_ENTRIES"`
		RedisURL    string `yaml:"redis_url" env:"CACHE_REDIS_URL"`
		Prefix      string `yaml:"prefix" env:"CACHE_PREFIX"`
	} `yaml:"cache"`

	// Services holds peer addresses for inter-service calls.
	Services struct {
		StudentGRPCAddr   string `yaml:"student_grpc_addr" env:"STUDENT_GRPC_ADDR"`
		StudentGRPCPort   string `yaml:"student_grpc_port" env:"STUDENT_GRPC_PORT"`
		EnrollmentBaseURL string `yaml:"enrollment_base_url" env:"ENROLLMENT_BASE_URL"`
		CallTimeout       string `yaml:"call_timeout" env:"SERVICE_CALL_TIMEOUT"`
	} `yaml:"services"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a YAML file (if present) and overrides
// it with environment variables.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.AuthMode = "jwt"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "campusgrid"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.AccessTokenExpiration = "15m"
	config.JWT.RefreshTokenExpiration = "168h"
	config.JWT.Issuer = "campusgrid.auth"
	config.JWT.Audience = "campusgrid.api"

	config.Cache.Enabled = true
	config.Cache.Backend = "memory"
	config.Cache.TTL = "30s"
	config.Cache.MaxEntries = 10000
	config.Cache.Prefix = "campusgrid"

	config.Services.StudentGRPCAddr = "localhost:9090"
	config.Services.StudentGRPCPort = "9090"
	config.Services.EnrollmentBaseURL = "http://localhost:8082"
	config.Services.CallTimeout = "5s"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if _, err := time.ParseDuration(config.JWT.RefreshTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT refresh token expiration format: %w", err)
	}

	if _, err := time.ParseDuration(config.Cache.TTL); err != nil {
		return fmt.Errorf("invalid cache TTL format: %w", err)
	}

	if config.Cache.NegativeTTL != "" && config.Cache.NegativeTTL != "off" {
		if _, err := time.ParseDuration(config.Cache.NegativeTTL); err != nil {
			return fmt.Errorf("invalid cache negative TTL format: %w", err)
		}
	}

	if config.Server.AuthMode != "jwt" && config.Server.AuthMode != "gateway" {
		return fmt.Errorf("unknown auth mode %q", config.Server.AuthMode)
	}

	if config.Cache.Backend != "memory" && config.Cache.Backend != "redis" {
		return fmt.Errorf("unknown cache backend %q", config.Cache.Backend)
	}

	if _, err := time.ParseDuration(config.Services.CallTimeout); err != nil {
		return fmt.Errorf("invalid service call timeout format: %w", err)
	}

	return nil
}

// GetPostgresConnectionString returns the postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// CacheTTL returns the parsed cache TTL.
func (c *Config) CacheTTL() time.Duration {
	d, _ := time.ParseDuration(c.Cache.TTL)
	return d
}

// CacheNegativeTTL returns the parsed negative-result TTL. Zero means "same
// as CacheTTL"; a negative value means negative caching is disabled.
func (c *Config) CacheNegativeTTL() time.Duration {
	switch c.Cache.NegativeTTL {
	case "":
		return 0
	case "off":
		return -1
	}
	d, _ := time.ParseDuration(c.Cache.NegativeTTL)
	return d
}

// ServiceCallTimeout returns the per-call budget for inter-service calls.
func (c *Config) ServiceCallTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Services.CallTimeout)
	return d
}
