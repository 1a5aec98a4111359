// Package config provides configuration loading and validation for the CLI.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. RESUME_MATCHER_SERVICE_URL.
const EnvPrefix = "RESUME_MATCHER"

// DefaultConfigName is searched for in the working directory when no path is given.
const DefaultConfigName = "resume_matcher"

// Config holds the settings shared by every command.
type Config struct {
	ServiceURL     string        `mapstructure:"service_url" json:"service_url" validate:"required,url"`
	MatchTimeout   time.Duration `mapstructure:"match_timeout" json:"match_timeout" validate:"gt=0"`
	CompareTimeout time.Duration `mapstructure:"compare_timeout" json:"compare_timeout" validate:"gt=0"`
	ReportTimeout  time.Duration `mapstructure:"report_timeout" json:"report_timeout" validate:"gt=0"`
	DownloadDir    string        `mapstructure:"download_dir" json:"download_dir" validate:"required"`
	LogLevel       string        `mapstructure:"log_level" json:"log_level" validate:"oneof=debug info warn error"`
	LogFormat      string        `mapstructure:"log_format" json:"log_format" validate:"oneof=text json"`
	Listen         string        `mapstructure:"listen" json:"listen" validate:"required,hostname_port"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		ServiceURL:     "http://127.0.0.1:8000",
		MatchTimeout:   30 * time.Second,
		CompareTimeout: 60 * time.Second,
		ReportTimeout:  60 * time.Second,
		DownloadDir:    ".",
		LogLevel:       "info",
		LogFormat:      "text",
		Listen:         "127.0.0.1:8090",
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("service_url", d.ServiceURL)
	v.SetDefault("match_timeout", d.MatchTimeout)
	v.SetDefault("compare_timeout", d.CompareTimeout)
	v.SetDefault("report_timeout", d.ReportTimeout)
	v.SetDefault("download_dir", d.DownloadDir)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("listen", d.Listen)
}

// LoadConfig builds the configuration from defaults, an optional file and the
// environment, in increasing precedence.
//
// An explicit path must exist. With an empty path, resume_matcher.{yaml,json,toml}
// in the working directory is used when present.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.ServiceURL = strings.TrimRight(strings.TrimSpace(cfg.ServiceURL), "/")
	return &cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("config error: %w", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("'%s' is required", name)
	case "url":
		return fmt.Sprintf("'%s' must be an absolute URL, got %q", name, fe.Value())
	case "gt":
		return fmt.Sprintf("'%s' must be positive", name)
	case "oneof":
		return fmt.Sprintf("'%s' must be one of [%s], got %q", name, fe.Param(), fe.Value())
	case "hostname_port":
		return fmt.Sprintf("'%s' must be host:port, got %q", name, fe.Value())
	default:
		return fmt.Sprintf("'%s' failed %s", name, fe.Tag())
	}
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
// CLI flags are collected into a Config and merged over the loaded configuration this way.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.ServiceURL == "" {
		result.ServiceURL = defaults.ServiceURL
	}
	if result.DownloadDir == "" {
		result.DownloadDir = defaults.DownloadDir
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.Listen == "" {
		result.Listen = defaults.Listen
	}

	if result.MatchTimeout == 0 {
		result.MatchTimeout = defaults.MatchTimeout
	}
	if result.CompareTimeout == 0 {
		result.CompareTimeout = defaults.CompareTimeout
	}
	if result.ReportTimeout == 0 {
		result.ReportTimeout = defaults.ReportTimeout
	}

	return result
}
