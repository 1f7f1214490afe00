package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"math/rand/v2"
	"regexp"

	"github.com/google/uuid"
	"github.com/vsariola/scriptline"
	"github.com/vsariola/scriptline/logging"
)

// ErrUnknownAction is returned for actions the reducer does not know how to
// handle. It always indicates a programming error in the caller.
var ErrUnknownAction = errors.New("unhandled action type")

type (
	// Reducer computes the next timeline from the current one and an action.
	// It never modifies the timeline it is given: changes produce a new
	// Timeline, and actions that change nothing return the given pointer.
	// All its dependencies are explicit so that it behaves deterministically
	// under test.
	Reducer struct {
		// Catalog is the static alternatives catalog used by ReplaceClip.
		Catalog scriptline.Catalog
		// Rand picks the version number of regenerated clips. Nil uses the
		// top-level math/rand/v2 generator.
		Rand IntNer
		// NewID generates ids for clips added without one. Nil uses UUIDs.
		NewID func() string
		// Logger receives a record for every skipped action or entry. Nil
		// discards them.
		Logger *slog.Logger
	}

	// IntNer is a source of pseudo-random integers in [0,n), satisfied by
	// *rand.Rand.
	IntNer interface {
		IntN(n int) int
	}
)

const (
	regenMinVersion = 2
	regenVersions   = 10
)

var regenSuffix = regexp.MustCompile(` \(Regen v\d+\)`)

// NewReducer returns a reducer using the given catalog and logger, random
// versions from a randomly seeded generator and UUIDs for new clip ids. A nil
// logger discards the diagnostics.
func NewReducer(catalog scriptline.Catalog, logger *slog.Logger) *Reducer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Reducer{
		Catalog: catalog,
		Rand:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		NewID:   uuid.NewString,
		Logger:  logger,
	}
}

// Reduce applies the action to the timeline. The only error it returns wraps
// ErrUnknownAction; invalid references or payloads are logged and skipped.
// Pointers to actions are reduced like the values they point to.
func (r *Reducer) Reduce(t *scriptline.Timeline, a Action) (*scriptline.Timeline, error) {
	switch a := deref(a).(type) {
	case SelectClip:
		return r.selectClip(t, a), nil
	case UpdateClip:
		return r.updateClip(t, a), nil
	case ReplaceClip:
		return r.replaceClip(t, a), nil
	case RegenerateClip:
		return r.regenerateClip(t, a), nil
	case AddClip:
		return r.addClip(t, a), nil
	case DeleteClip:
		return r.deleteClip(t, a), nil
	case AddClips:
		return r.addClips(t, a), nil
	}
	r.logger().Error("unhandled action type", "type", fmt.Sprintf("%T", a))
	return t, fmt.Errorf("%w: %T", ErrUnknownAction, a)
}

// deref turns a non-nil pointer to an action into the action value. Nil
// pointers are returned as is and rejected by Reduce.
func deref(a Action) Action {
	switch p := a.(type) {
	case *SelectClip:
		if p != nil {
			return *p
		}
	case *UpdateClip:
		if p != nil {
			return *p
		}
	case *ReplaceClip:
		if p != nil {
			return *p
		}
	case *RegenerateClip:
		if p != nil {
			return *p
		}
	case *AddClip:
		if p != nil {
			return *p
		}
	case *DeleteClip:
		if p != nil {
			return *p
		}
	case *AddClips:
		if p != nil {
			return *p
		}
	}
	return a
}

func (r *Reducer) selectClip(t *scriptline.Timeline, a SelectClip) *scriptline.Timeline {
	if t.SelectedClipID == a.ClipID {
		return t
	}
	next := *t
	next.SelectedClipID = a.ClipID
	return &next
}

func (r *Reducer) updateClip(t *scriptline.Timeline, a UpdateClip) *scriptline.Timeline {
	clip, ok := t.Clips[a.ClipID]
	if !ok {
		r.logger().Warn("clip does not exist, skipping update", "action", UpdateClipKind, "clip_id", a.ClipID)
		return t
	}
	u := a.Updates
	if u.Name != nil {
		clip.Name = *u.Name
	}
	if u.Src != nil {
		clip.Src = *u.Src
	}
	if u.TrackID != nil && *u.TrackID != clip.TrackID {
		if _, ok := t.Tracks[*u.TrackID]; ok {
			clip.TrackID = *u.TrackID
		} else {
			r.logger().Warn("target track does not exist, keeping clip on its track", "action", UpdateClipKind, "clip_id", a.ClipID, "track_id", *u.TrackID)
		}
	}
	if u.Alternatives != nil {
		clip.Alternatives = maps.Clone(u.Alternatives)
	}
	if u.Effects != nil {
		clip.Effects = maps.Clone(u.Effects)
	}
	if u.StartTime.IsSet() {
		clip.StartTime = nonNegative(u.StartTime.Or(0))
	}
	if u.Duration.IsSet() {
		clip.Duration = clampDuration(u.Duration.Or(clip.Duration))
	}
	if u.Volume.IsSet() {
		clip.Volume = clampVolume(u.Volume.Or(0))
	}
	if u.FadeInDuration.IsSet() {
		clip.FadeInDuration = nonNegative(u.FadeInDuration.Or(0))
	}
	if u.FadeOutDuration.IsSet() {
		clip.FadeOutDuration = nonNegative(u.FadeOutDuration.Or(0))
	}
	for _, f := range []struct {
		name string
		n    scriptline.Number
	}{
		{"startTime", u.StartTime},
		{"duration", u.Duration},
		{"volume", u.Volume},
		{"fadeInDuration", u.FadeInDuration},
		{"fadeOutDuration", u.FadeOutDuration},
	} {
		if f.n.IsSet() && !f.n.Valid() {
			r.logger().Warn("non-numeric value, using fallback", "action", UpdateClipKind, "clip_id", a.ClipID, "field", f.name)
		}
	}
	clampFades(&clip)
	return withClip(t, clip)
}

func (r *Reducer) replaceClip(t *scriptline.Timeline, a ReplaceClip) *scriptline.Timeline {
	if a.SelectedClipID == "" {
		r.logger().Warn("no clip selected, skipping replace", "action", ReplaceClipKind)
		return t
	}
	clip, ok := t.Clips[a.SelectedClipID]
	if !ok {
		r.logger().Warn("clip does not exist, skipping replace", "action", ReplaceClipKind, "clip_id", a.SelectedClipID)
		return t
	}
	alt, ok := clip.Alternatives[a.AlternativeKey]
	if !ok {
		alt, ok = r.Catalog[a.AlternativeKey]
	}
	if !ok {
		attrs := []any{"action", ReplaceClipKind, "clip_id", a.SelectedClipID, "alternative", a.AlternativeKey}
		if s, found := r.Catalog.Suggest(a.AlternativeKey); found {
			attrs = append(attrs, "did_you_mean", s)
		}
		r.logger().Warn("unknown alternative, skipping replace", attrs...)
		return t
	}
	clip.Name = alt.Name
	clip.Src = alt.Src
	if d, ok := alt.Duration.Float(); ok {
		clip.Duration = clampDuration(d)
	}
	clampFades(&clip)
	return withClip(t, clip)
}

func (r *Reducer) regenerateClip(t *scriptline.Timeline, a RegenerateClip) *scriptline.Timeline {
	clip, ok := t.Clips[a.ClipID]
	if !ok {
		r.logger().Warn("clip does not exist, skipping regenerate", "action", RegenerateClipKind, "clip_id", a.ClipID)
		return t
	}
	name := clip.Name
	if loc := regenSuffix.FindStringIndex(name); loc != nil {
		name = name[:loc[0]] + name[loc[1]:]
	}
	version := regenMinVersion + r.randSource().IntN(regenVersions)
	clip.Name = fmt.Sprintf("%s (Regen v%d)", name, version)
	r.logger().Debug("simulated regeneration", "clip_id", a.ClipID, "name", clip.Name)
	return withClip(t, clip)
}

func (r *Reducer) addClip(t *scriptline.Timeline, a AddClip) *scriptline.Timeline {
	if _, ok := t.Tracks[a.TrackID]; !ok {
		r.logger().Warn("track does not exist, skipping clip", "action", AddClipKind, "track_id", a.TrackID)
		return t
	}
	d := a.ClipData
	if d == nil {
		r.logger().Warn("missing clip data, skipping clip", "action", AddClipKind, "track_id", a.TrackID)
		return t
	}
	id := d.ID
	if id == "" {
		id = r.newID()
	}
	if _, ok := t.Clips[id]; ok {
		r.logger().Warn("clip already exists, skipping", "action", AddClipKind, "clip_id", id)
		return t
	}
	clip := scriptline.Clip{
		ID:              id,
		TrackID:         a.TrackID,
		Name:            d.Name,
		Src:             d.Src,
		StartTime:       nonNegative(d.StartTime.Or(0)),
		Duration:        clampDuration(d.Duration.Or(scriptline.DefaultClipDuration)),
		Volume:          clampVolume(d.Volume.Or(1)),
		FadeInDuration:  nonNegative(d.FadeInDuration.Or(0)),
		FadeOutDuration: nonNegative(d.FadeOutDuration.Or(0)),
		Alternatives:    cloneOrEmpty(d.Alternatives),
		Effects:         cloneOrEmpty(d.Effects),
	}
	if clip.Name == "" {
		clip.Name = scriptline.DefaultClipName
	}
	clampFades(&clip)
	next := withClip(t, clip)
	next.SelectedClipID = id
	return next
}

func (r *Reducer) deleteClip(t *scriptline.Timeline, a DeleteClip) *scriptline.Timeline {
	if _, ok := t.Clips[a.ClipID]; !ok || a.ClipID == "" {
		r.logger().Warn("clip does not exist, skipping delete", "action", DeleteClipKind, "clip_id", a.ClipID)
		return t
	}
	next := *t
	next.Clips = maps.Clone(t.Clips)
	delete(next.Clips, a.ClipID)
	if next.SelectedClipID == a.ClipID {
		next.SelectedClipID = ""
	}
	return &next
}

func (r *Reducer) addClips(t *scriptline.Timeline, a AddClips) *scriptline.Timeline {
	log := r.logger().With("action", AddClipsKind)
	var tracks map[string]scriptline.Track
	var clips map[string]scriptline.Clip
	trackAt := func(id string) (scriptline.Track, bool) {
		if tracks != nil {
			tr, ok := tracks[id]
			return tr, ok
		}
		tr, ok := t.Tracks[id]
		return tr, ok
	}
	clipExists := func(id string) bool {
		if clips != nil {
			_, ok := clips[id]
			return ok
		}
		_, ok := t.Clips[id]
		return ok
	}
	for i, td := range a.Tracks {
		if td.ID == "" {
			log.Warn("skipping track without id", "index", i, "title", td.Title)
			continue
		}
		if _, ok := trackAt(td.ID); ok {
			log.Debug("track already exists", "track_id", td.ID)
			continue
		}
		if tracks == nil {
			tracks = maps.Clone(t.Tracks)
			if tracks == nil {
				tracks = map[string]scriptline.Track{}
			}
		}
		title := td.Title
		if title == "" {
			title = "Track " + td.ID
		}
		tracks[td.ID] = scriptline.Track{ID: td.ID, Title: title}
		log.Debug("added track", "track_id", td.ID)
	}
	for i, cd := range a.Clips {
		if cd.ID == "" || cd.TrackID == "" {
			log.Warn("skipping clip missing id or trackId", "index", i, "clip_id", cd.ID, "track_id", cd.TrackID)
			continue
		}
		if _, ok := trackAt(cd.TrackID); !ok {
			log.Warn("track does not exist, skipping clip", "clip_id", cd.ID, "track_id", cd.TrackID, "label", cd.Label)
			continue
		}
		if clipExists(cd.ID) {
			log.Warn("clip already exists, skipping", "clip_id", cd.ID)
			continue
		}
		if clips == nil {
			clips = maps.Clone(t.Clips)
			if clips == nil {
				clips = map[string]scriptline.Clip{}
			}
		}
		clip, fallback := bulkClip(cd)
		if fallback {
			log.Warn("invalid or zero duration, defaulting", "clip_id", cd.ID, "duration", clip.Duration)
		}
		clips[cd.ID] = clip
		log.Debug("added clip", "clip_id", cd.ID, "name", clip.Name, "track_id", cd.TrackID)
	}
	if tracks == nil && clips == nil {
		log.Debug("nothing added")
		return t
	}
	next := *t
	if tracks != nil {
		next.Tracks = tracks
	}
	if clips != nil {
		next.Clips = clips
	}
	return &next
}

// bulkClip builds a validated clip from an AddClips entry. fallback reports
// whether the duration had to be defaulted.
func bulkClip(cd BulkClip) (clip scriptline.Clip, fallback bool) {
	start := nonNegative(cd.Start.Or(0))
	duration := scriptline.FallbackClipDuration
	fallback = true
	if d, ok := cd.Duration.Float(); ok && d > 0 {
		duration, fallback = clampDuration(d), false
	} else if end, ok := cd.End.Float(); ok {
		duration, fallback = clampDuration(end-start), false
	}
	name := cd.Label
	if name == "" {
		name = cd.Name
	}
	if name == "" {
		name = "Clip " + cd.ID
	}
	clip = scriptline.Clip{
		ID:              cd.ID,
		TrackID:         cd.TrackID,
		Name:            name,
		Src:             cd.Src,
		StartTime:       start,
		Duration:        duration,
		Volume:          clampVolume(cd.Volume.Or(1)),
		FadeInDuration:  nonNegative(cd.FadeInDuration.Or(0)),
		FadeOutDuration: nonNegative(cd.FadeOutDuration.Or(0)),
		Alternatives:    cloneOrEmpty(cd.Alternatives),
		Effects:         cloneOrEmpty(cd.Effects),
	}
	clampFades(&clip)
	return clip, fallback
}

// globalRand draws from the goroutine-safe top-level generator.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

func (r *Reducer) randSource() IntNer {
	if r.Rand == nil {
		return globalRand{}
	}
	return r.Rand
}

func (r *Reducer) newID() string {
	if r.NewID == nil {
		return uuid.NewString()
	}
	return r.NewID()
}

func (r *Reducer) logger() *slog.Logger {
	if r.Logger == nil {
		return logging.Discard()
	}
	return r.Logger
}

// withClip returns a copy of t with clip stored under its id.
func withClip(t *scriptline.Timeline, clip scriptline.Clip) *scriptline.Timeline {
	next := *t
	next.Clips = maps.Clone(t.Clips)
	if next.Clips == nil {
		next.Clips = map[string]scriptline.Clip{}
	}
	next.Clips[clip.ID] = clip
	return &next
}

func cloneOrEmpty[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return map[K]V{}
	}
	return maps.Clone(m)
}
