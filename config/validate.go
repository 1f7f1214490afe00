package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be console or json, got %q", c.Log.Format))
	}
	if c.Finalize.StepDelayMS < 0 {
		errs = append(errs, errors.New("finalize.step_delay_ms must not be negative"))
	}
	if c.Finalize.WordsPerSecond <= 0 {
		errs = append(errs, errors.New("finalize.words_per_second must be positive"))
	}
	return errors.Join(errs...)
}
