package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig
	Matching MatchingConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
	SlowQueryThreshold    time.Duration

	MigrationsDir string
	RunSeeders    bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LogConfig struct {
	Level  string
	Format string
	File   string
}

type MatchingConfig struct {
	DefaultThreshold  float64
	DefaultLimit      int
	AutoAssignWorkers int
	AutoAssignDueDays int
	SearchCacheTTL    time.Duration
}

type TracingConfig struct {
	Enabled      bool
	SamplerRatio float64
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

var defaults = map[string]any{
	"DB_SSL_MODE":             "disable",
	"DB_CONNECT_TIMEOUT":      "5s",
	"DB_POOL_MAX_CONNS":       10,
	"DB_SLOW_QUERY_THRESHOLD": "200ms",
	"DB_RUN_SEEDERS":          false,
	"REDIS_ADDR":              "",
	"REDIS_DB":                0,
	"LOG_LEVEL":               "info",
	"LOG_FORMAT":              "json",
	"MATCH_DEFAULT_THRESHOLD": 70.0,
	"MATCH_DEFAULT_LIMIT":     20,
	"AUTO_ASSIGN_WORKERS":     4,
	"AUTO_ASSIGN_DUE_DAYS":    30,
	"SEARCH_CACHE_TTL":        "5m",
	"OTEL_ENABLED":            false,
	"OTEL_SAMPLER_RATIO":      1.0,
}

// Load reads configuration from the environment, optionally layered over the
// YAML file named by CONFIG_FILE. Environment variables win.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	if file := strings.TrimSpace(v.GetString("CONFIG_FILE")); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        v.GetDuration("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   v.GetDuration("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime:   v.GetDuration("DB_POOL_MAX_CONN_IDLE_TIME"),
		PoolHealthCheckPeriod: v.GetDuration("DB_POOL_HEALTH_CHECK_PERIOD"),
		SlowQueryThreshold:    v.GetDuration("DB_SLOW_QUERY_THRESHOLD"),

		MigrationsDir: opt("DB_MIGRATIONS_DIR"),
		RunSeeders:    v.GetBool("DB_RUN_SEEDERS"),
	}

	cfg.Redis = RedisConfig{
		Addr:     opt("REDIS_ADDR"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Log = LogConfig{
		Level:  opt("LOG_LEVEL"),
		Format: opt("LOG_FORMAT"),
		File:   opt("LOG_FILE"),
	}

	cfg.Matching = MatchingConfig{
		DefaultThreshold:  v.GetFloat64("MATCH_DEFAULT_THRESHOLD"),
		DefaultLimit:      v.GetInt("MATCH_DEFAULT_LIMIT"),
		AutoAssignWorkers: v.GetInt("AUTO_ASSIGN_WORKERS"),
		AutoAssignDueDays: v.GetInt("AUTO_ASSIGN_DUE_DAYS"),
		SearchCacheTTL:    v.GetDuration("SEARCH_CACHE_TTL"),
	}

	cfg.Tracing = TracingConfig{
		Enabled:      v.GetBool("OTEL_ENABLED"),
		SamplerRatio: v.GetFloat64("OTEL_SAMPLER_RATIO"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	m := c.Matching
	if m.DefaultThreshold < 0 || m.DefaultThreshold > 100 {
		return fmt.Errorf("MATCH_DEFAULT_THRESHOLD must be within [0,100], got %v", m.DefaultThreshold)
	}
	if m.DefaultLimit <= 0 {
		return fmt.Errorf("MATCH_DEFAULT_LIMIT must be positive, got %d", m.DefaultLimit)
	}
	if m.AutoAssignWorkers <= 0 {
		return fmt.Errorf("AUTO_ASSIGN_WORKERS must be positive, got %d", m.AutoAssignWorkers)
	}
	if m.AutoAssignDueDays < 0 {
		return fmt.Errorf("AUTO_ASSIGN_DUE_DAYS must not be negative, got %d", m.AutoAssignDueDays)
	}
	if c.Tracing.SamplerRatio < 0 || c.Tracing.SamplerRatio > 1 {
		return fmt.Errorf("OTEL_SAMPLER_RATIO must be within [0,1], got %v", c.Tracing.SamplerRatio)
	}
	return nil
}

func (c DatabaseConfig) Enabled() bool {
	return c.DBHost != "" && c.DBName != ""
}
