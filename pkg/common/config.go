package common

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// LoadConfig reads a YAML file over the defaults. A missing file is not an error
// when path is the implicit default.
func LoadConfig(path string, required bool) (*Configuration, error) {
	cfg := DefaultConfiguration()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot run with
func (c *Configuration) Validate() error {
	switch {
	case c.DetailPattern == "":
		return fmt.Errorf("%w: detail_pattern must not be empty", ErrInvalidConfig)
	case c.TitleSeparator == "":
		return fmt.Errorf("%w: title_separator must not be empty", ErrInvalidConfig)
	case c.MinLabelLength < 0:
		return fmt.Errorf("%w: min_label_length must not be negative", ErrInvalidConfig)
	case c.ExpandTimeout <= 0:
		return fmt.Errorf("%w: expand_timeout must be positive", ErrInvalidConfig)
	case c.MaxActivations < 0:
		return fmt.Errorf("%w: max_activations must not be negative", ErrInvalidConfig)
	case c.PauseMin < 0 || c.PauseMax < 0:
		return fmt.Errorf("%w: pause bounds must not be negative", ErrInvalidConfig)
	case c.PauseMax < c.PauseMin:
		return fmt.Errorf("%w: pause_max (%v) is below pause_min (%v)", ErrInvalidConfig, c.PauseMax, c.PauseMin)
	case c.RequestTimeout <= 0:
		return fmt.Errorf("%w: request_timeout must be positive", ErrInvalidConfig)
	case c.Retries < 0:
		return fmt.Errorf("%w: retries must not be negative", ErrInvalidConfig)
	case c.MaxRequestsPerSecond < 0:
		return fmt.Errorf("%w: max_requests_per_second must not be negative", ErrInvalidConfig)
	case c.OutputFile == "":
		return fmt.Errorf("%w: output_file must not be empty", ErrInvalidConfig)
	}

	switch c.Progress {
	case ProgressLog, ProgressBar, ProgressSpinner:
	default:
		return fmt.Errorf("%w: unknown progress reporter %q", ErrInvalidConfig, c.Progress)
	}
	return nil
}
