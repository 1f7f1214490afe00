package scriptline

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
)

const (
	// MinClipDuration is the shortest duration a clip can have, in seconds.
	MinClipDuration = 0.1
	// DefaultClipDuration is the duration of a clip added without one.
	DefaultClipDuration = 5.0
	// FallbackClipDuration is used by bulk inserts when neither a positive
	// duration nor a valid end time is given.
	FallbackClipDuration = 1.0
	// DefaultClipName is the name of a clip added without one.
	DefaultClipName = "New Clip"
)

type (
	// Timeline is the complete editor state: the tracks, the clips placed on
	// them and the currently selected clip. A Timeline is treated as immutable
	// once published; the editor produces a new value for every change, so
	// comparing pointers is enough to detect changes.
	Timeline struct {
		Tracks map[string]Track `yaml:"tracks"`
		Clips  map[string]Clip  `yaml:"clips"`

		// SelectedClipID is the id of the selected clip. Empty string means
		// nothing is selected. It is not guaranteed to refer to an existing
		// clip: selecting accepts any id.
		SelectedClipID string `yaml:"selectedClipId,omitempty"`
	}

	// Track is a named lane grouping clips, e.g. one per character or one for
	// sound effects.
	Track struct {
		ID    string `yaml:"id"`
		Title string `yaml:"title"`
	}

	// Clip is a timed segment of audio placed on a track, with volume and a
	// fade envelope. Times are in seconds.
	Clip struct {
		ID              string                 `yaml:"id"`
		TrackID         string                 `yaml:"trackId"`
		Name            string                 `yaml:"name"`
		Src             string                 `yaml:"src"`
		StartTime       float64                `yaml:"startTime"`
		Duration        float64                `yaml:"duration"`
		Volume          float64                `yaml:"volume"`
		FadeInDuration  float64                `yaml:"fadeInDuration"`
		FadeOutDuration float64                `yaml:"fadeOutDuration"`
		Alternatives    map[string]Alternative `yaml:"alternatives,omitempty"`
		Effects         map[string]any         `yaml:"effects,omitempty"`
	}

	// Alternative is a substitute payload that can replace the content of a
	// clip without changing its identity. A missing Duration keeps the
	// duration of the replaced clip.
	Alternative struct {
		Name     string `yaml:"name"`
		Src      string `yaml:"src"`
		Duration Number `yaml:"duration,omitempty"`
	}
)

// NewTimeline returns an empty timeline with allocated maps.
func NewTimeline() *Timeline {
	return &Timeline{
		Tracks: map[string]Track{},
		Clips:  map[string]Clip{},
	}
}

// Copy returns a deep copy of the timeline. The opaque effect values are
// copied by reference.
func (t *Timeline) Copy() *Timeline {
	ret := &Timeline{
		Tracks:         maps.Clone(t.Tracks),
		Clips:          make(map[string]Clip, len(t.Clips)),
		SelectedClipID: t.SelectedClipID,
	}
	if ret.Tracks == nil {
		ret.Tracks = map[string]Track{}
	}
	for id, c := range t.Clips {
		ret.Clips[id] = c.Copy()
	}
	return ret
}

// SortedTracks returns the tracks ordered by id.
func (t *Timeline) SortedTracks() []Track {
	ret := make([]Track, 0, len(t.Tracks))
	for _, id := range slices.Sorted(maps.Keys(t.Tracks)) {
		ret = append(ret, t.Tracks[id])
	}
	return ret
}

// ClipsOnTrack returns the clips of a track ordered by start time, ties
// broken by id.
func (t *Timeline) ClipsOnTrack(trackID string) []Clip {
	var ret []Clip
	for _, c := range t.Clips {
		if c.TrackID == trackID {
			ret = append(ret, c)
		}
	}
	slices.SortFunc(ret, func(a, b Clip) int {
		if a.StartTime != b.StartTime {
			if a.StartTime < b.StartTime {
				return -1
			}
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})
	return ret
}

// Length returns the end time of the clip that ends last, or 0 for an empty
// timeline.
func (t *Timeline) Length() float64 {
	var ret float64
	for _, c := range t.Clips {
		ret = math.Max(ret, c.End())
	}
	return ret
}

// SelectedClip returns the selected clip, if the selection refers to an
// existing clip.
func (t *Timeline) SelectedClip() (Clip, bool) {
	if t.SelectedClipID == "" {
		return Clip{}, false
	}
	c, ok := t.Clips[t.SelectedClipID]
	return c, ok
}

// Validate checks that the timeline satisfies all the invariants the editor
// maintains. All the violations are reported, joined into one error.
func (t *Timeline) Validate() error {
	var errs []error
	for id, tr := range t.Tracks {
		if tr.ID != id {
			errs = append(errs, fmt.Errorf("track %q stored under key %q", tr.ID, id))
		}
	}
	for _, id := range slices.Sorted(maps.Keys(t.Clips)) {
		c := t.Clips[id]
		if c.ID != id {
			errs = append(errs, fmt.Errorf("clip %q stored under key %q", c.ID, id))
		}
		if _, ok := t.Tracks[c.TrackID]; !ok {
			errs = append(errs, fmt.Errorf("clip %q refers to unknown track %q", id, c.TrackID))
		}
		if c.StartTime < 0 || math.IsNaN(c.StartTime) {
			errs = append(errs, fmt.Errorf("clip %q has negative start time %v", id, c.StartTime))
		}
		if !(c.Duration >= MinClipDuration) {
			errs = append(errs, fmt.Errorf("clip %q has duration %v shorter than %v", id, c.Duration, MinClipDuration))
		}
		if !(c.Volume >= 0 && c.Volume <= 1) {
			errs = append(errs, fmt.Errorf("clip %q has volume %v outside [0,1]", id, c.Volume))
		}
		maxFade := c.Duration / 2
		if !(c.FadeInDuration >= 0 && c.FadeInDuration <= maxFade) {
			errs = append(errs, fmt.Errorf("clip %q has fade in %v outside [0,%v]", id, c.FadeInDuration, maxFade))
		}
		if !(c.FadeOutDuration >= 0 && c.FadeOutDuration <= maxFade) {
			errs = append(errs, fmt.Errorf("clip %q has fade out %v outside [0,%v]", id, c.FadeOutDuration, maxFade))
		}
	}
	return errors.Join(errs...)
}

// End returns the time when the clip stops playing.
func (c *Clip) End() float64 {
	return c.StartTime + c.Duration
}

// Copy returns a copy of the clip with its own alternatives and effects maps.
func (c *Clip) Copy() Clip {
	ret := *c
	ret.Alternatives = maps.Clone(c.Alternatives)
	ret.Effects = maps.Clone(c.Effects)
	return ret
}
