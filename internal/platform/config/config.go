package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const configFileEnv = "DOPEBOOK_CONFIG_FILE"

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	LogMode       string              `yaml:"log_mode" env:"LOG_MODE"`
	HTTP          HTTPConfig          `yaml:"http"`
	Database      DatabaseConfig      `yaml:"database"`
	Auth          AuthConfig          `yaml:"auth"`
	Assembly      AssemblyConfig      `yaml:"assembly"`
	Cache         CacheConfig         `yaml:"cache"`
	Observability ObservabilityConfig `yaml:"observability"`
}

type HTTPConfig struct {
	Port string `yaml:"port" env:"PORT"`
}

type DatabaseConfig struct {
	Driver     string `yaml:"driver" env:"DB_DRIVER"`
	Host       string `yaml:"host" env:"POSTGRES_HOST"`
	Port       string `yaml:"port" env:"POSTGRES_PORT"`
	User       string `yaml:"user" env:"POSTGRES_USER"`
	Password   string `yaml:"password" env:"POSTGRES_PASSWORD"`
	Name       string `yaml:"name" env:"POSTGRES_NAME"`
	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH"`
}

// DSN renders the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Name,
	)
}

type AuthConfig struct {
	JWTSecretKey          string `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	AccessTokenTTLSeconds int    `yaml:"access_token_ttl_seconds" env:"ACCESS_TOKEN_TTL"`
}

type AssemblyConfig struct {
	WeatherBufferMinutes int `yaml:"weather_buffer_minutes" env:"WEATHER_BUFFER_MINUTES"`
	FetchConcurrency     int `yaml:"fetch_concurrency" env:"ASSEMBLY_FETCH_CONCURRENCY"`
}

// WeatherBuffer is the padding applied on both sides of a session window.
func (a AssemblyConfig) WeatherBuffer() time.Duration {
	if a.WeatherBufferMinutes < 0 {
		return 0
	}
	return time.Duration(a.WeatherBufferMinutes) * time.Minute
}

type CacheConfig struct {
	RedisAddr         string `yaml:"redis_addr" env:"REDIS_ADDR"`
	CatalogTTLSeconds int    `yaml:"catalog_ttl_seconds" env:"CATALOG_CACHE_TTL"`
}

func (c CacheConfig) CatalogTTL() time.Duration {
	return time.Duration(c.CatalogTTLSeconds) * time.Second
}

type ObservabilityConfig struct {
	MetricsEnabled        bool              `yaml:"metrics_enabled" env:"METRICS_ENABLED"`
	ScrapeIntervalSeconds int               `yaml:"scrape_interval_seconds" env:"METRICS_SCRAPE_INTERVAL_SECONDS"`
	OtelEnabled           bool              `yaml:"otel_enabled" env:"OTEL_ENABLED"`
	ServiceName           string            `yaml:"service_name" env:"OTEL_SERVICE_NAME"`
	Environment           string            `yaml:"environment" env:"APP_ENV"`
	OtelEndpoint          string            `yaml:"otel_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelInsecure          bool              `yaml:"otel_insecure" env:"OTEL_EXPORTER_OTLP_INSECURE"`
	OtelHeaders           map[string]string `yaml:"otel_headers" env:"OTEL_EXPORTER_OTLP_HEADERS" envKeyValSeparator:"="`
	OtelSampleRatio       float64           `yaml:"otel_sample_ratio" env:"OTEL_SAMPLER_RATIO"`
}

func (o ObservabilityConfig) ScrapeInterval() time.Duration {
	if o.ScrapeIntervalSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(o.ScrapeIntervalSeconds) * time.Second
}

// Load layers the embedded defaults, an optional YAML file and the environment, in that order.
func Load() (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse embedded defaults: %w", err)
	}
	if path := strings.TrimSpace(os.Getenv(configFileEnv)); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Database.Driver)) {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if r := c.Observability.OtelSampleRatio; r < 0 || r > 1 {
		return fmt.Errorf("observability.otel_sample_ratio must be within [0,1]")
	}
	if c.Assembly.FetchConcurrency < 1 {
		return fmt.Errorf("assembly.fetch_concurrency must be >= 1")
	}
	return nil
}
