// Package config provides configuration loading and validation for the CLI.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jonathan/jobsearch-tracker/internal/scoring"
	"github.com/jonathan/jobsearch-tracker/internal/store"
)

const (
	// FileName is the config file looked up in the working directory, without extension
	FileName = "tracker"
	// EnvPrefix prefixes every environment override, e.g. TRACKER_STORE_DRIVER
	EnvPrefix = "TRACKER"
)

// Config is the CLI configuration. Values come from built-in defaults, then tracker.yaml
// (or --config), then TRACKER_* environment variables, then bound flags.
type Config struct {
	Store   StoreConfig   `mapstructure:"store" json:"store"`
	Log     LogConfig     `mapstructure:"log" json:"log"`
	Scoring ScoringConfig `mapstructure:"scoring" json:"scoring"`
	Verbose bool          `mapstructure:"verbose" json:"verbose,omitempty"` // Print observability boxes
}

// StoreConfig selects the record store driver
type StoreConfig struct {
	Driver      string `mapstructure:"driver" json:"driver" validate:"oneof=file postgres redis"`
	Path        string `mapstructure:"path" json:"path,omitempty"`                 // Directory for the file driver
	DatabaseURL string `mapstructure:"database-url" json:"database_url,omitempty"` // PostgreSQL connection URL
	RedisAddr   string `mapstructure:"redis-addr" json:"redis_addr,omitempty"`     // host:port
	RedisDB     int    `mapstructure:"redis-db" json:"redis_db,omitempty" validate:"gte=0"`
}

// LogConfig controls the zap logger
type LogConfig struct {
	JSON  bool `mapstructure:"json" json:"json,omitempty"`
	Debug bool `mapstructure:"debug" json:"debug,omitempty"`
}

// ScoringConfig holds scorer defaults that are not part of the profile
type ScoringConfig struct {
	SeedStagePolicy string `mapstructure:"seed-stage-policy" json:"seed_stage_policy,omitempty" validate:"omitempty,oneof=warn disqualify"`
	FollowUpMode    string `mapstructure:"follow-up-mode" json:"follow_up_mode" validate:"oneof=auto manual off"`
	FollowUpDays    int    `mapstructure:"follow-up-days" json:"follow_up_days" validate:"gte=0"`
	BatchLimit      int    `mapstructure:"batch-limit" json:"batch_limit" validate:"gte=0"`
	AutoUseOnly     bool   `mapstructure:"auto-use-only" json:"auto_use_only,omitempty"`
}

// Defaults returns the configuration used when nothing else is set
func Defaults() Config {
	return Config{
		Store: StoreConfig{
			Driver: store.DriverFile,
			Path:   "./data",
		},
		Scoring: ScoringConfig{
			FollowUpMode: scoring.FollowUpAuto,
			FollowUpDays: scoring.DefaultFollowUpDays,
			BatchLimit:   scoring.DefaultBatchLimit,
		},
	}
}

// NewViper returns a viper instance with defaults registered and environment overrides
// enabled. Callers bind their flags to it before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault("store.driver", d.Store.Driver)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("store.database-url", d.Store.DatabaseURL)
	v.SetDefault("store.redis-addr", d.Store.RedisAddr)
	v.SetDefault("store.redis-db", d.Store.RedisDB)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("scoring.seed-stage-policy", d.Scoring.SeedStagePolicy)
	v.SetDefault("scoring.follow-up-mode", d.Scoring.FollowUpMode)
	v.SetDefault("scoring.follow-up-days", d.Scoring.FollowUpDays)
	v.SetDefault("scoring.batch-limit", d.Scoring.BatchLimit)
	v.SetDefault("scoring.auto-use-only", d.Scoring.AutoUseOnly)
	v.SetDefault("verbose", d.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file into v and decodes the merged result. An explicit path must
// exist; without one, tracker.yaml in the working directory is optional.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	switch c.Store.Driver {
	case store.DriverFile:
		if c.Store.Path == "" {
			return fmt.Errorf("config error: 'store.path' is required for the file driver")
		}
	case store.DriverPostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("config error: 'store.database-url' is required for the postgres driver")
		}
	case store.DriverRedis:
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("config error: 'store.redis-addr' is required for the redis driver")
		}
	}

	return nil
}

// StoreOptions converts the store section into driver options
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Driver:      c.Store.Driver,
		Path:        c.Store.Path,
		DatabaseURL: c.Store.DatabaseURL,
		RedisAddr:   c.Store.RedisAddr,
		RedisDB:     c.Store.RedisDB,
	}
}

// FollowUp converts the scoring section into scorer follow-up settings
func (c *Config) FollowUp() scoring.FollowUpSettings {
	return scoring.FollowUpSettings{Mode: c.Scoring.FollowUpMode, Days: c.Scoring.FollowUpDays}
}
