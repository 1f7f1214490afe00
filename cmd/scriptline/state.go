package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vsariola/scriptline"
)

// loadState reads a timeline snapshot. An empty path is an empty timeline.
func loadState(path string) (*scriptline.Timeline, error) {
	if path == "" {
		return scriptline.NewTimeline(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	t := scriptline.NewTimeline()
	if err := yaml.Unmarshal(b, t); err != nil {
		return nil, fmt.Errorf("parse state %s: %w", path, err)
	}
	if t.Tracks == nil {
		t.Tracks = map[string]scriptline.Track{}
	}
	if t.Clips == nil {
		t.Clips = map[string]scriptline.Clip{}
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid state %s: %w", path, err)
	}
	return t, nil
}

func writeState(w io.Writer, t *scriptline.Timeline) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	return enc.Close()
}
