package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"trinetra.xyz/crowd-alerts/pkg/alerts"
	"trinetra.xyz/crowd-alerts/pkg/common"
)

type DBConfig struct {
	Type string `mapstructure:"type"`
	Path string `mapstructure:"path"`
}

type ServerConfig struct {
	HostPort string `mapstructure:"host_port"`
}

type LimiterConfig struct {
	Rate  float64 `mapstructure:"rate"`
	Burst int     `mapstructure:"burst"`
	// limiters unused this long are dropped; 0 keeps them forever
	Idle time.Duration `mapstructure:"idle"`
}

type ClassifierConfig struct {
	PoliceCountThreshold  int           `mapstructure:"police_count_threshold"`
	EscalateAfterCritical int           `mapstructure:"escalate_after_critical"`
	EscalateWindow        time.Duration `mapstructure:"escalate_window"`
}

type Config struct {
	DB         DBConfig         `mapstructure:"db"`
	HTTP       ServerConfig     `mapstructure:"http"`
	GRPC       ServerConfig     `mapstructure:"grpc"`
	Limiter    LimiterConfig    `mapstructure:"limiter"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
}

func (c ClassifierConfig) ToAlerts() alerts.ClassifierConfig {
	return alerts.ClassifierConfig{
		PoliceCountThreshold:  c.PoliceCountThreshold,
		EscalateAfterCritical: c.EscalateAfterCritical,
		EscalateWindow:        c.EscalateWindow,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db.type", "file")
	v.SetDefault("db.path", "alerts.db")
	v.SetDefault("http.host_port", ":1080")
	v.SetDefault("grpc.host_port", "")
	v.SetDefault("limiter.rate", 5.0)
	v.SetDefault("limiter.burst", 10)
	v.SetDefault("limiter.idle", 10*time.Minute)
	v.SetDefault("classifier.police_count_threshold", alerts.DefaultPoliceCountThreshold)
	v.SetDefault("classifier.escalate_after_critical", 3)
	v.SetDefault("classifier.escalate_window", 10*time.Minute)
}

// Load reads defaults, then an optional config.yaml in . or ./config, then
// TRINETRA_* environment variables (TRINETRA_DB_TYPE, TRINETRA_HTTP_HOST_PORT,
// TRINETRA_CLASSIFIER_ESCALATE_WINDOW, ...).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix(common.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "error reading config file")
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "error unmarshalling config")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	switch c.DB.Type {
	case "file", "memory":
	default:
		return fmt.Errorf("unknown db.type %q, should be file or memory", c.DB.Type)
	}
	if c.DB.Type == "file" && strings.TrimSpace(c.DB.Path) == "" {
		return fmt.Errorf("db.path is required when db.type is file")
	}
	if c.Limiter.Rate < 0 {
		return fmt.Errorf("limiter.rate must not be negative, got %v", c.Limiter.Rate)
	}
	if c.Limiter.Burst < 0 {
		return fmt.Errorf("limiter.burst must not be negative, got %v", c.Limiter.Burst)
	}
	if c.Limiter.Idle < 0 {
		return fmt.Errorf("limiter.idle must not be negative, got %v", c.Limiter.Idle)
	}
	if c.Classifier.PoliceCountThreshold < 0 {
		return fmt.Errorf("classifier.police_count_threshold must not be negative")
	}
	if c.Classifier.EscalateAfterCritical < 0 {
		return fmt.Errorf("classifier.escalate_after_critical must not be negative")
	}
	if c.Classifier.EscalateWindow < 0 {
		return fmt.Errorf("classifier.escalate_window must not be negative")
	}
	return nil
}
