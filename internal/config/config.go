package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/Rana718/demoseed/internal/database"
	"github.com/Rana718/demoseed/internal/orchestrator"
	"github.com/Rana718/demoseed/internal/sink"
	"github.com/Rana718/demoseed/internal/types"
)

const (
	FileName       = "demoseed.config.json"
	FallbackURLEnv = "DATABASE_URL"
)

type Config struct {
	Provider   string              `json:"provider" mapstructure:"provider"`
	Databases  map[string]Database `json:"databases" mapstructure:"databases"`
	Generation Generation          `json:"generation" mapstructure:"generation"`
	Retry      Retry               `json:"retry" mapstructure:"retry"`
	Log        Log                 `json:"log" mapstructure:"log"`
}

type Database struct {
	URLEnv string `json:"url_env" mapstructure:"url_env"`
}

type Generation struct {
	ScaleFactor float64 `json:"scale_factor" mapstructure:"scale_factor"`
	Seed        int64   `json:"seed" mapstructure:"seed"`
	BatchSize   int     `json:"batch_size" mapstructure:"batch_size"`
	Employees   *int    `json:"employees,omitempty" mapstructure:"employees"`
	Customers   *int    `json:"customers,omitempty" mapstructure:"customers"`
}

type Retry struct {
	MaxAttempts int           `json:"max_attempts" mapstructure:"max_attempts"`
	Backoff     time.Duration `json:"backoff" mapstructure:"backoff"`
}

type Log struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider", "postgresql")
	v.SetDefault("generation.scale_factor", 1.0)
	v.SetDefault("generation.seed", 0)
	v.SetDefault("generation.batch_size", sink.DefaultBatchSize)
	v.SetDefault("retry.max_attempts", orchestrator.DefaultMaxAttempts)
	v.SetDefault("retry.backoff", orchestrator.DefaultBackoff)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

func LoadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Databases == nil {
		cfg.Databases = make(map[string]Database)
	}
	for _, name := range types.Databases() {
		db := cfg.Databases[name]
		if db.URLEnv == "" {
			db.URLEnv = strings.ToUpper(name) + "_URL"
		}
		cfg.Databases[name] = db
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	supported := false
	for _, provider := range database.Providers {
		if c.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Provider, database.Providers)
	}

	for name := range c.Databases {
		if _, ok := types.Schema[name]; !ok {
			return fmt.Errorf("unknown logical database %q in databases", name)
		}
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log format must be console or json, got %q", c.Log.Format)
	}

	return c.Options().Validate()
}

// Options maps the generation and retry settings onto orchestrator options.
func (c *Config) Options() orchestrator.Options {
	return orchestrator.Options{
		ScaleFactor: c.Generation.ScaleFactor,
		Employees:   c.Generation.Employees,
		Customers:   c.Generation.Customers,
		Seed:        c.Generation.Seed,
		BatchSize:   c.Generation.BatchSize,
		Retry: orchestrator.RetryPolicy{
			MaxAttempts: c.Retry.MaxAttempts,
			Backoff:     c.Retry.Backoff,
		},
	}
}

// DatabaseURLs resolves the connection URL of every logical database from
// its url_env, falling back to DATABASE_URL.
func (c *Config) DatabaseURLs() (map[string]string, error) {
	urls := make(map[string]string, len(c.Databases))
	for _, name := range types.Databases() {
		env := c.Databases[name].URLEnv
		url := os.Getenv(env)
		if url == "" {
			url = os.Getenv(FallbackURLEnv)
		}
		if url == "" {
			return nil, fmt.Errorf("database URL for %s not found in environment variable %s or %s", name, env, FallbackURLEnv)
		}
		urls[name] = url
	}
	return urls, nil
}

func IsInitialized() bool {
	_, err := os.Stat(FileName)
	return err == nil
}
