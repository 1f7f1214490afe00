package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

const (
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
	defaultStepDelayMS    = 1250
	defaultWordsPerSecond = 2.5
)

// Log contains logger settings.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Finalize contains settings of the simulated generation pipeline.
type Finalize struct {
	StepDelayMS    int     `toml:"step_delay_ms"`
	WordsPerSecond float64 `toml:"words_per_second"`
	UseScript      bool    `toml:"use_script"`
}

// Catalog points at an alternative takes catalog.
type Catalog struct {
	Path string `toml:"path"`
}

// Regen contains settings of the regenerate action.
type Regen struct {
	Seed uint64 `toml:"seed"`
}

// Config is the full scriptline configuration.
type Config struct {
	Log      Log      `toml:"log"`
	Finalize Finalize `toml:"finalize"`
	Catalog  Catalog  `toml:"catalog"`
	Regen    Regen    `toml:"regen"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log:      Log{Level: defaultLogLevel, Format: defaultLogFormat},
		Finalize: Finalize{StepDelayMS: defaultStepDelayMS, WordsPerSecond: defaultWordsPerSecond},
	}
}

// Sample returns the commented sample configuration.
func Sample() string {
	return sampleConfig
}

// Load reads the configuration at path on top of the defaults and validates
// it. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		return &cfg, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()
	return Decode(file)
}

// Decode parses TOML from r on top of the defaults and validates the result.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	decoder := toml.NewDecoder(r).DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("parse config: unknown keys:\n%s", strict.String())
		}
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = defaultLogFormat
	}
	c.Catalog.Path = strings.TrimSpace(c.Catalog.Path)
}

// StepDelay returns the delay of a single finalize step.
func (c *Config) StepDelay() time.Duration {
	return time.Duration(c.Finalize.StepDelayMS) * time.Millisecond
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
