// Package config reads the environment defaults of the command line tool.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"sk2pmml/pkg/model"
)

// Prefix of the environment variables, e.g. SK2PMML_LOG_LEVEL.
const Prefix = "sk2pmml"

type Config struct {
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat      string `envconfig:"LOG_FORMAT" default:"pretty"`
	OptionFallback string `envconfig:"OPTION_FALLBACK" default:"warn"`
	Application    string `envconfig:"APPLICATION" default:"sk2pmml"`
	PMMLVersion    string `envconfig:"PMML_VERSION" default:"4.4"`
}

// Load processes the environment and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("error reading environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.LogLevel {
	case "error", "warn", "info", "debug":
	default:
		return fmt.Errorf("invalid log level %q, must be one of error, warn, info or debug", c.LogLevel)
	}
	switch c.LogFormat {
	case "pretty", "json":
	default:
		return fmt.Errorf("invalid log format %q, must be pretty or json", c.LogFormat)
	}
	switch c.OptionFallback {
	case model.FallbackWarn, model.FallbackStrict:
	default:
		return fmt.Errorf("invalid option fallback %q, must be %s or %s", c.OptionFallback, model.FallbackWarn, model.FallbackStrict)
	}
	if c.PMMLVersion == "" {
		return fmt.Errorf("empty PMML version")
	}
	return nil
}

// EncoderOptions are the conversion settings derived from c.
func (c *Config) EncoderOptions() model.Options {
	return model.Options{OptionFallback: c.OptionFallback}
}
