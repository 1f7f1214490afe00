package scriptline_test

import (
	"strings"
	"testing"

	"github.com/vsariola/scriptline"
	"gopkg.in/yaml.v3"
)

const timelineYAML = `
tracks:
  voice: {id: voice, title: Voice}
  sfx: {id: sfx, title: Sound Effects}
clips:
  b: {id: b, trackId: voice, name: Second, startTime: 4, duration: 2, volume: 0.8, fadeInDuration: 0.5, fadeOutDuration: 0}
  a: {id: a, trackId: voice, name: First, startTime: 0, duration: 3, volume: 1, fadeInDuration: 0, fadeOutDuration: 1}
  s: {id: s, trackId: sfx, name: Door, startTime: 1, duration: 7.5, volume: 0.5, fadeInDuration: 0, fadeOutDuration: 0}
selectedClipId: a
`

func loadTimeline(t *testing.T, s string) *scriptline.Timeline {
	t.Helper()
	var tl scriptline.Timeline
	if err := yaml.Unmarshal([]byte(s), &tl); err != nil {
		t.Fatalf("could not parse timeline: %v", err)
	}
	return &tl
}

func TestTimelineQueries(t *testing.T) {
	tl := loadTimeline(t, timelineYAML)
	if err := tl.Validate(); err != nil {
		t.Fatalf("expected a valid timeline, got %v", err)
	}
	tracks := tl.SortedTracks()
	if len(tracks) != 2 || tracks[0].ID != "sfx" || tracks[1].ID != "voice" {
		t.Errorf("unexpected track order %v", tracks)
	}
	clips := tl.ClipsOnTrack("voice")
	if len(clips) != 2 || clips[0].ID != "a" || clips[1].ID != "b" {
		t.Errorf("unexpected clip order %v", clips)
	}
	if l := tl.Length(); l != 8.5 {
		t.Errorf("expected length 8.5, got %v", l)
	}
	if c, ok := tl.SelectedClip(); !ok || c.Name != "First" {
		t.Errorf("unexpected selected clip %v, %v", c, ok)
	}
	if scriptline.NewTimeline().Length() != 0 {
		t.Errorf("empty timeline should have zero length")
	}
}

func TestTimelineValidate(t *testing.T) {
	tl := loadTimeline(t, timelineYAML)
	bad := tl.Copy()
	c := bad.Clips["a"]
	c.TrackID = "ghost"
	c.Volume = 1.5
	c.Duration = 0.05
	bad.Clips["a"] = c
	err := bad.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, msg := range []string{"unknown track", "volume", "shorter than", "fade out"} {
		if !strings.Contains(err.Error(), msg) {
			t.Errorf("expected %q in %v", msg, err)
		}
	}
	if err := tl.Validate(); err != nil {
		t.Errorf("copy shares state with the original: %v", err)
	}
}

func TestTimelineRoundTrip(t *testing.T) {
	tl := loadTimeline(t, timelineYAML)
	c := tl.Clips["a"]
	c.Alternatives = map[string]scriptline.Alternative{"alt": {Name: "Alt", Src: "alt.mp3"}}
	tl.Clips["a"] = c
	out, err := yaml.Marshal(tl)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "duration: null") {
		t.Errorf("unset alternative duration should be omitted:\n%s", out)
	}
	back := loadTimeline(t, string(out))
	if back.Clips["a"].Alternatives["alt"].Duration.IsSet() {
		t.Errorf("alternative duration should stay unset")
	}
	if back.SelectedClipID != "a" || len(back.Clips) != 3 {
		t.Errorf("round trip lost data:\n%s", out)
	}
}
