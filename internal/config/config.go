// Package config loads and validates the demoapi service configuration
// from a YAML file, an optional .env file, and environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/demoapi/internal/errors"
)

// Config is the root service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Sampler SamplerConfig `yaml:"sampler"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Host            string   `yaml:"host"`
	Port            int      `yaml:"port"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// SamplerConfig configures the periodic host-stats sampler.
type SamplerConfig struct {
	Interval Duration `yaml:"interval"`
	DiskPath string   `yaml:"disk_path"`
	// Simulated active database connection range, inclusive.
	ConnectionsMin int `yaml:"connections_min"`
	ConnectionsMax int `yaml:"connections_max"`
}

// LoggingConfig configures slog output.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			ReadTimeout:     Duration(15 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Sampler: SamplerConfig{
			Interval:       Duration(10 * time.Second),
			DiskPath:       "/",
			ConnectionsMin: 10,
			ConnectionsMax: 50,
		},
		Logging: LoggingConfig{
			Level:  LogLevelInfo,
			Format: LogFormatText,
		},
	}
}

// Load reads the configuration file at path over the defaults, then applies
// .env and environment overrides. A missing file is not an error; the
// defaults apply.
func Load(path string) (*Config, error) {
	loadEnvFile()

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// keep defaults
	case err != nil:
		return nil, errors.WrapError(err, errors.CategoryRuntime, "reading configuration file").
			WithContext("path", path)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapError(err, errors.CategoryValidation, "parsing configuration file").
				WithContext("path", path)
		}
	}

	cfg.applyEnv()
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv applies DEMOAPI_* environment overrides on top of file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("DEMOAPI_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("DEMOAPI_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("DEMOAPI_LOG_LEVEL"); v != "" {
		c.Logging.Level = LogLevel(v)
	}
	if v := os.Getenv("DEMOAPI_LOG_FORMAT"); v != "" {
		c.Logging.Format = LogFormat(v)
	}
	if v := os.Getenv("DEMOAPI_SAMPLE_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Sampler.Interval = Duration(d)
		}
	}
}

func (c *Config) normalize() {
	c.Logging.Level = NormalizeLogLevel(string(c.Logging.Level))
	c.Logging.Format = NormalizeLogFormat(string(c.Logging.Format))
}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.ValidationError("server port out of range").
			WithContext("port", c.Server.Port)
	}
	if c.Sampler.Interval <= 0 {
		return errors.ValidationError("sampler interval must be positive").
			WithContext("interval", c.Sampler.Interval.String())
	}
	if c.Sampler.ConnectionsMin < 0 || c.Sampler.ConnectionsMax < c.Sampler.ConnectionsMin {
		return errors.ValidationError("simulated connection range is invalid").
			WithContext("min", c.Sampler.ConnectionsMin).
			WithContext("max", c.Sampler.ConnectionsMax)
	}
	return nil
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
