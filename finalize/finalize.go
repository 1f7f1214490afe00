// Package finalize simulates the generation pipeline that turns an uploaded
// script into timeline clips. Nothing is actually generated: the Finalizer
// walks through a fixed list of progress steps and then hands a pre-built
// batch to the editor in a single dispatch.
package finalize

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vsariola/scriptline"
	"github.com/vsariola/scriptline/editor"
	"github.com/vsariola/scriptline/logging"
	"github.com/vsariola/scriptline/script"
)

// DefaultSteps are the progress messages shown while finalizing.
var DefaultSteps = []string{
	"Processing...",
	"Generating voices for the characters...",
	"Getting sound effects...",
	"Combining everything into timeline editor...",
}

// DefaultStepDelay makes the whole default sequence take five seconds.
const DefaultStepDelay = 1250 * time.Millisecond

//go:embed default_script.txt
var DefaultScript string

type (
	// Finalizer runs the simulated generation steps and dispatches the
	// generated clips.
	Finalizer struct {
		Steps     []string
		StepDelay time.Duration
		// Batch builds the clips to add once all the steps are done.
		Batch Batcher
		Now   func() time.Time
		// Logger receives a record per step.
		Logger *slog.Logger
	}

	// Batcher builds the AddClips action dispatched at the end of Run. now is
	// the time the steps finished, used to make clip ids unique.
	Batcher func(now time.Time) editor.AddClips

	// Progress is called at the start of every step with its zero-based index
	// and message.
	Progress func(step int, message string)
)

// New returns a Finalizer with the default steps and delay, adding the
// placeholder batch.
func New(logger *slog.Logger) *Finalizer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Finalizer{
		Steps:     DefaultSteps,
		StepDelay: DefaultStepDelay,
		Batch:     PlaceholderBatch,
		Now:       time.Now,
		Logger:    logger,
	}
}

// Run walks through the steps, calling progress for each one, and then
// dispatches exactly one AddClips action. If ctx is done before the steps
// finish, Run returns ctx.Err() without dispatching anything.
func (f *Finalizer) Run(ctx context.Context, d editor.Dispatcher, progress Progress) error {
	for i, step := range f.Steps {
		f.Logger.Info("finalizing", "step", i+1, "of", len(f.Steps), "message", step)
		if progress != nil {
			progress(i, step)
		}
		if err := sleep(ctx, f.StepDelay); err != nil {
			f.Logger.Warn("finalize cancelled", "step", i+1, "error", err)
			return err
		}
	}
	batch := f.Batch(f.Now())
	f.Logger.Info("finalization steps complete, dispatching clips", "clips", len(batch.Clips), "tracks", len(batch.Tracks))
	if err := d.Dispatch(batch); err != nil {
		return fmt.Errorf("could not dispatch generated clips: %w", err)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ClipIDPrefix returns the prefix of the clip ids generated at now.
func ClipIDPrefix(now time.Time) string {
	return fmt.Sprintf("clip-%d", now.UnixMilli())
}

// PlaceholderBatch returns the fixed demo dialogue between two characters
// with two sound effects.
func PlaceholderBatch(now time.Time) editor.AddClips {
	prefix := ClipIDPrefix(now)
	clip := func(n int, track string, start, end float64, label string) editor.BulkClip {
		return editor.BulkClip{
			ID:      fmt.Sprintf("%s-%d", prefix, n),
			TrackID: track,
			Start:   scriptline.Num(start),
			End:     scriptline.Num(end),
			Label:   label,
		}
	}
	return editor.AddClips{
		Clips: []editor.BulkClip{
			clip(1, "track-char1", 0, 2, "Pranav - Line 1"),
			clip(2, "track-char2", 3, 6.5, "Prem - Line 2"),
			clip(3, "track-char1", 6.5, 8.5, "Pranav - Line 3"),
			clip(4, "track-char2", 9, 11, "Prem - Line 4"),
			clip(5, "track-sfx", 2, 3, "SFX - Door Slam"),
			clip(6, "track-sfx", 8.5, 9, "SFX - Paper rustling"),
		},
		Tracks: []editor.BulkTrack{
			{ID: "track-char1", Title: "Character 1"},
			{ID: "track-char2", Title: "Character 2"},
			{ID: "track-sfx", Title: "Sound Effects"},
		},
	}
}

// ScriptBatcher parses text and returns a Batcher laying the script out on
// the timeline. Parse errors are returned immediately, before any step runs.
func ScriptBatcher(text string, wordsPerSecond float64) (Batcher, error) {
	s, err := script.Parse(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("could not parse script: %w", err)
	}
	if len(s.Cues) == 0 {
		return nil, fmt.Errorf("script has no dialogue or sound effects")
	}
	return func(now time.Time) editor.AddClips {
		return script.Batch(s, script.BatchOptions{IDPrefix: ClipIDPrefix(now), WordsPerSecond: wordsPerSecond})
	}, nil
}
