package application

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"sysmon/internal/config/domain"
	"sysmon/internal/infrastructure/logger"
	metricsapp "sysmon/internal/metrics/application"
	metricsinfra "sysmon/internal/metrics/infrastructure"
	"sysmon/internal/shared/validation"
)

// CLIOptions carries the raw flag values; empty means the flag was not given
type CLIOptions struct {
	Interval     string
	Path         string
	DiskPrefixes []string
	ProcRoot     string
	Source       string
	LogLevel     string
	LogFormat    string
	LogOutput    string
	EnvFile      string
	ConfigPath   string
}

// RuntimeConfig holds all runtime configuration from CLI flags, environment variables, .env and the config file
type RuntimeConfig struct {
	// Sampling
	Interval     time.Duration
	MountPath    string
	DiskPrefixes []string
	ProcRoot     string
	Source       string

	// Logging Configuration
	LogLevel  string
	LogFormat string
	LogOutput string

	EnvFile    string
	ConfigPath string
}

// LoadRuntimeConfig loads configuration with precedence: CLI flags > env vars > .env file > config file > defaults.
// The .env file must already have been loaded into the environment (see LoadEnvFile).
func LoadRuntimeConfig(cli CLIOptions, file *domain.FileConfig) (*RuntimeConfig, error) {
	if file == nil {
		file = &domain.FileConfig{}
	}

	interval := getValue(cli.Interval, "SYSMON_INTERVAL", file.Interval)
	cfg := &RuntimeConfig{
		MountPath:    getValue(cli.Path, "SYSMON_PATH", orDefault(file.Path, metricsapp.DefaultMountPath)),
		DiskPrefixes: getList(cli.DiskPrefixes, "SYSMON_DISK_PREFIXES", file.DiskPrefixes, metricsinfra.PlatformDiskPrefixes()),
		ProcRoot:     getValue(cli.ProcRoot, "SYSMON_PROC_ROOT", orDefault(file.ProcRoot, metricsinfra.DefaultProcRoot)),
		Source:       strings.ToLower(getValue(cli.Source, "SYSMON_SOURCE", orDefault(file.Source, metricsinfra.DefaultSource()))),
		LogLevel:     getValue(cli.LogLevel, "SYSMON_LOG_LEVEL", orDefault(file.Log.Level, "INFO")),
		LogFormat:    strings.ToLower(getValue(cli.LogFormat, "SYSMON_LOG_FORMAT", orDefault(file.Log.Format, "text"))),
		LogOutput:    getValue(cli.LogOutput, "SYSMON_LOG_OUTPUT", orDefault(file.Log.Output, "stderr")),
		EnvFile:      cli.EnvFile,
		ConfigPath:   ResolveConfigPath(cli),
	}

	cfg.Interval = metricsapp.DefaultInterval
	if interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			return nil, &ConfigError{Field: "interval", Message: fmt.Sprintf("invalid interval %q: %v", interval, err)}
		}
		cfg.Interval = d
	}

	return cfg, nil
}

// ResolveConfigPath returns the config file named by flag or SYSMON_CONFIG, if any
func ResolveConfigPath(cli CLIOptions) string {
	return getValue(cli.ConfigPath, "SYSMON_CONFIG", "")
}

// getValue returns the first non-empty value from CLI flag, env var, or default
func getValue(cliValue, envKey, defaultValue string) string {
	if cliValue != "" {
		return cliValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getList is getValue for comma separated lists
func getList(cliValue []string, envKey string, fileValue, defaultValue []string) []string {
	if len(cliValue) > 0 {
		return splitList(cliValue)
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return splitList([]string{envValue})
	}
	if len(fileValue) > 0 {
		return fileValue
	}
	return defaultValue
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

func orDefault(value, defaultValue string) string {
	if value != "" {
		return value
	}
	return defaultValue
}

// Valid reports every invalid setting
func (c *RuntimeConfig) Valid(ctx context.Context) map[string]string {
	problems := make(map[string]string)

	if c.Interval <= 0 {
		problems["interval"] = "interval should be more than zero"
	}
	if c.MountPath == "" {
		problems["path"] = "path cannot be empty"
	}
	if len(c.DiskPrefixes) == 0 {
		problems["disk-prefix"] = "at least one disk prefix is required"
	}
	if !metricsinfra.ValidSource(c.Source) {
		problems["source"] = fmt.Sprintf("unknown source %q (want %s or %s)", c.Source, metricsinfra.SourceProcFS, metricsinfra.SourceGopsutil)
	}
	if !logger.ValidLogLevel(c.LogLevel) {
		problems["log-level"] = fmt.Sprintf("unknown log level %q", c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		problems["log-format"] = "log format should be text or json"
	}

	return problems
}

// Validate checks that the configuration can drive a sampler
func (c *RuntimeConfig) Validate() error {
	if problems := c.Valid(context.Background()); len(problems) > 0 {
		return validation.NewValidationError(problems, "runtime")
	}
	return nil
}

// LoggerOptions returns the logging part of the configuration
func (c *RuntimeConfig) LoggerOptions() logger.Options {
	return logger.Options{Level: c.LogLevel, Format: c.LogFormat, Output: c.LogOutput}
}

// SamplerOptions returns the sampling part of the configuration
func (c *RuntimeConfig) SamplerOptions() metricsapp.SamplerOptions {
	return metricsapp.SamplerOptions{Interval: c.Interval, MountPath: c.MountPath}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
