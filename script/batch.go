package script

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/vsariola/scriptline"
	"github.com/vsariola/scriptline/editor"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// SoundEffectTrackID is the track holding all sound effect clips.
	SoundEffectTrackID = "track-sfx"
	// DefaultWordsPerSecond is a typical speaking rate.
	DefaultWordsPerSecond = 2.5
	soundEffectDuration   = 1.0
	minSpeechDuration     = 1.0
)

// BatchOptions control how a script is laid out on the timeline.
type BatchOptions struct {
	// IDPrefix is prepended to the clip numbers, e.g. "clip-1700000000000"
	// gives clip ids "clip-1700000000000-1", "clip-1700000000000-2", ...
	IDPrefix string
	// WordsPerSecond estimates speech durations. Non-positive values use
	// DefaultWordsPerSecond.
	WordsPerSecond float64
	// Gap is the silence between consecutive cues, in seconds.
	Gap float64
}

// TrackID returns the id of the track of a character.
func TrackID(character string) string {
	var b strings.Builder
	b.WriteString("track-")
	dash := false
	for _, r := range strings.ToLower(character) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
		} else if !dash {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// trackIDs maps character names to distinct track ids. Names whose TrackID
// is taken, by the sound effect track or an earlier character, get a numeric
// suffix.
func trackIDs(characters []Character) map[string]string {
	ret := make(map[string]string, len(characters))
	used := map[string]bool{SoundEffectTrackID: true}
	for _, c := range characters {
		base := TrackID(c.Name)
		id := base
		for n := 2; used[id]; n++ {
			id = fmt.Sprintf("%s-%d", base, n)
		}
		used[id] = true
		ret[c.Name] = id
	}
	return ret
}

// SpeechDuration estimates how long it takes to speak text, rounded to a
// tenth of a second and at least one second.
func SpeechDuration(text string, wordsPerSecond float64) float64 {
	if wordsPerSecond <= 0 {
		wordsPerSecond = DefaultWordsPerSecond
	}
	d := float64(len(strings.Fields(text))) / wordsPerSecond
	return math.Max(minSpeechDuration, math.Round(d*10)/10)
}

// Batch lays the cues of the script end to end and returns an AddClips action
// creating one track per character, a sound effect track if needed, and one
// clip per cue.
func Batch(s *Script, opts BatchOptions) editor.AddClips {
	var ret editor.AddClips
	title := cases.Title(language.Und) // casers are stateful, not shareable
	tracks := trackIDs(s.Characters)
	for _, c := range s.Characters {
		ret.Tracks = append(ret.Tracks, editor.BulkTrack{ID: tracks[c.Name], Title: title.String(c.Name)})
	}
	hasSFX := false
	t, line := 0.0, 0
	for i, cue := range s.Cues {
		clip := editor.BulkClip{ID: fmt.Sprintf("%s-%d", opts.IDPrefix, i+1)}
		var d float64
		switch cue.Kind {
		case SoundEffect:
			hasSFX = true
			clip.TrackID = SoundEffectTrackID
			clip.Label = "SFX - " + cue.Text
			d = soundEffectDuration
		default:
			line++
			clip.TrackID = tracks[cue.Speaker]
			clip.Label = fmt.Sprintf("%s - Line %d", title.String(cue.Speaker), line)
			d = SpeechDuration(cue.Text, opts.WordsPerSecond)
		}
		clip.Start = scriptline.Num(t)
		clip.End = scriptline.Num(t + d)
		clip.Duration = scriptline.Num(d)
		ret.Clips = append(ret.Clips, clip)
		t += d + opts.Gap
	}
	if hasSFX {
		ret.Tracks = append(ret.Tracks, editor.BulkTrack{ID: SoundEffectTrackID, Title: "Sound Effects"})
	}
	return ret
}
