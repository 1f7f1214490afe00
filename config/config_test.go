package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/vsariola/scriptline/config"
)

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if *cfg != config.Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.StepDelay() != 1250*time.Millisecond {
		t.Errorf("unexpected step delay %v", cfg.StepDelay())
	}
}

func TestSampleMatchesDefaults(t *testing.T) {
	cfg, err := config.Decode(strings.NewReader(config.Sample()))
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if *cfg != config.Default() {
		t.Errorf("sample config %+v differs from defaults %+v", cfg, config.Default())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[log]\nlevel = \" DEBUG \"\n\n[finalize]\nstep_delay_ms = 0\nuse_script = true\n\n[regen]\nseed = 7\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "console" {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}
	if cfg.StepDelay() != 0 || !cfg.Finalize.UseScript || cfg.Finalize.WordsPerSecond != 2.5 {
		t.Errorf("unexpected finalize config %+v", cfg.Finalize)
	}
	if cfg.Regen.Seed != 7 {
		t.Errorf("unexpected seed %d", cfg.Regen.Seed)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "[log]\nlevle = \"debug\"\n", "unknown keys"},
		{"bad level", "[log]\nlevel = \"loud\"\n", "log.level"},
		{"bad format", "[log]\nformat = \"xml\"\n", "log.format"},
		{"negative delay", "[finalize]\nstep_delay_ms = -1\n", "step_delay_ms"},
		{"zero rate", "[finalize]\nwords_per_second = 0\n", "words_per_second"},
		{"syntax", "[log\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Decode(strings.NewReader(tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Catalog.Path = "takes.yml"
	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded != cfg {
		t.Errorf("round trip changed config: %+v != %+v", decoded, cfg)
	}
}
