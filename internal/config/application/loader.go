package application

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"sysmon/internal/config/domain"
	"sysmon/internal/shared/validation"
)

// LoadFileConfig reads and validates the YAML config file at path.
// An empty path yields an empty config; a named file that is missing is an error.
func LoadFileConfig(ctx context.Context, path string) (*domain.FileConfig, error) {
	cfg := &domain.FileConfig{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseFileConfig(ctx, path, data)
}

// ParseFileConfig decodes and validates raw YAML; name is used in validation errors
func ParseFileConfig(ctx context.Context, name string, data []byte) (*domain.FileConfig, error) {
	cfg := &domain.FileConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if problems := cfg.Valid(ctx); len(problems) > 0 {
		return nil, validation.NewValidationError(problems, name)
	}

	return cfg, nil
}
