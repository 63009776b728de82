// Package config holds the recognized planner options and their defaults.
package config

import (
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config is the planner configuration surface. Timeouts are per adapter
// call; RetryCount applies to transient failures per call.
type Config struct {
	LLMTimeoutMs      int `yaml:"llm_timeout_ms" mapstructure:"llm_timeout_ms"`
	WeatherTimeoutMs  int `yaml:"weather_timeout_ms" mapstructure:"weather_timeout_ms"`
	PlacesTimeoutMs   int `yaml:"places_timeout_ms" mapstructure:"places_timeout_ms"`
	MaxTripLengthDays int `yaml:"max_trip_length_days" mapstructure:"max_trip_length_days"`
	RetryCount        int `yaml:"retry_count" mapstructure:"retry_count"`
	CacheTTLSeconds   int `yaml:"cache_ttl_seconds" mapstructure:"cache_ttl_seconds"`
}

// Default returns the documented defaults.
func Default() Config {
	return Config{
		LLMTimeoutMs:      10_000,
		WeatherTimeoutMs:  5_000,
		PlacesTimeoutMs:   5_000,
		MaxTripLengthDays: 30,
		RetryCount:        1,
		CacheTTLSeconds:   900,
	}
}

// Load reads a YAML config file over the defaults; keys absent from the file
// keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config file")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "parse config file")
	}
	return cfg, nil
}

// Apply decodes a map of overrides onto the config, e.g. options passed
// through from a request or environment layer.
func (c Config) Apply(overrides map[string]any) (Config, error) {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &c,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return c, err
	}
	if err := decoder.Decode(overrides); err != nil {
		return c, errors.Wrap(err, "apply config overrides")
	}
	return c, nil
}

func (c Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLMTimeoutMs) * time.Millisecond
}

func (c Config) WeatherTimeout() time.Duration {
	return time.Duration(c.WeatherTimeoutMs) * time.Millisecond
}

func (c Config) PlacesTimeout() time.Duration {
	return time.Duration(c.PlacesTimeoutMs) * time.Millisecond
}

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
