package domain

import (
	"context"
	"strings"
	"time"
)

// LogConfig is the logging section of the config file
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// FileConfig represents the optional YAML config file.
// Empty fields mean "not set" and fall through to defaults.
type FileConfig struct {
	Interval     string    `yaml:"interval"`
	Path         string    `yaml:"path"`
	DiskPrefixes []string  `yaml:"disk_prefixes"`
	ProcRoot     string    `yaml:"proc_root"`
	Source       string    `yaml:"source"`
	Log          LogConfig `yaml:"log"`
}

func (c *FileConfig) Valid(ctx context.Context) map[string]string {
	problems := make(map[string]string, 3)

	if c.Interval != "" {
		d, err := time.ParseDuration(c.Interval)
		if err != nil {
			problems["interval"] = "interval is not a duration: " + err.Error()
		} else if d <= 0 {
			problems["interval"] = "interval should be more than zero"
		}
	}

	for _, p := range c.DiskPrefixes {
		if strings.TrimSpace(p) == "" {
			problems["disk_prefixes"] = "disk prefixes cannot be empty strings"
			break
		}
	}

	if format := strings.ToLower(c.Log.Format); format != "" && format != "text" && format != "json" {
		problems["log.format"] = "log format should be text or json"
	}

	return problems
}
