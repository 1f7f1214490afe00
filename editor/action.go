package editor

import (
	"github.com/vsariola/scriptline"
)

type (
	// Action is a request to change the timeline. The set of actions is
	// closed: only the payload types of this package implement it, so the
	// reducer can handle every kind and treat anything else as a programming
	// error. Since the methods have value receivers, pointers to the payload
	// types implement it too; the reducer accepts them and rejects nil ones.
	Action interface {
		Kind() ActionKind
		action()
	}

	// ActionKind identifies the kind of an Action. Its String() is the name
	// used in action scripts.
	ActionKind int

	// SelectClip selects a clip. The id is not checked; an empty id clears the
	// selection.
	SelectClip struct {
		ClipID string `yaml:"clipId"`
	}

	// UpdateClip merges the set fields of Updates into a clip.
	UpdateClip struct {
		ClipID  string      `yaml:"clipId"`
		Updates ClipUpdates `yaml:"updates"`
	}

	// ClipUpdates is a partial clip. Nil pointers, nil maps and unset Numbers
	// leave the corresponding field unchanged.
	ClipUpdates struct {
		Name            *string                            `yaml:"name"`
		Src             *string                            `yaml:"src"`
		TrackID         *string                            `yaml:"trackId"`
		StartTime       scriptline.Number                  `yaml:"startTime"`
		Duration        scriptline.Number                  `yaml:"duration"`
		Volume          scriptline.Number                  `yaml:"volume"`
		FadeInDuration  scriptline.Number                  `yaml:"fadeInDuration"`
		FadeOutDuration scriptline.Number                  `yaml:"fadeOutDuration"`
		Alternatives    map[string]scriptline.Alternative `yaml:"alternatives"`
		Effects         map[string]any                     `yaml:"effects"`
	}

	// ReplaceClip replaces the content of the selected clip with an
	// alternative.
	ReplaceClip struct {
		SelectedClipID string `yaml:"selectedClipId"`
		AlternativeKey string `yaml:"alternativeKey"`
	}

	// RegenerateClip simulates regenerating the audio of a clip, which only
	// bumps the regeneration version in its name.
	RegenerateClip struct {
		ClipID string `yaml:"clipId"`
	}

	// AddClip adds a single clip to an existing track and selects it.
	AddClip struct {
		TrackID  string    `yaml:"trackId"`
		ClipData *ClipData `yaml:"clipData"`
	}

	// ClipData holds the caller supplied fields of a new clip. Empty strings
	// and unset numbers get defaults.
	ClipData struct {
		ID              string                             `yaml:"id"`
		Name            string                             `yaml:"name"`
		Src             string                             `yaml:"src"`
		StartTime       scriptline.Number                  `yaml:"startTime"`
		Duration        scriptline.Number                  `yaml:"duration"`
		Volume          scriptline.Number                  `yaml:"volume"`
		FadeInDuration  scriptline.Number                  `yaml:"fadeInDuration"`
		FadeOutDuration scriptline.Number                  `yaml:"fadeOutDuration"`
		Alternatives    map[string]scriptline.Alternative `yaml:"alternatives"`
		Effects         map[string]any                     `yaml:"effects"`
	}

	// DeleteClip removes a clip.
	DeleteClip struct {
		ClipID string `yaml:"clipId"`
	}

	// AddClips inserts a batch of tracks and clips. Entries are validated one
	// by one; invalid entries are skipped while the rest are applied.
	AddClips struct {
		Clips  []BulkClip  `yaml:"clips"`
		Tracks []BulkTrack `yaml:"tracks"`
	}

	// BulkTrack is a track entry of AddClips.
	BulkTrack struct {
		ID    string `yaml:"id"`
		Title string `yaml:"title"`
	}

	// BulkClip is a clip entry of AddClips. Timing is given as Start and End;
	// an explicit positive Duration takes precedence over End.
	BulkClip struct {
		ID              string                             `yaml:"id"`
		TrackID         string                             `yaml:"trackId"`
		Label           string                             `yaml:"label"`
		Name            string                             `yaml:"name"`
		Src             string                             `yaml:"src"`
		Start           scriptline.Number                  `yaml:"start"`
		End             scriptline.Number                  `yaml:"end"`
		Duration        scriptline.Number                  `yaml:"duration"`
		Volume          scriptline.Number                  `yaml:"volume"`
		FadeInDuration  scriptline.Number                  `yaml:"fadeInDuration"`
		FadeOutDuration scriptline.Number                  `yaml:"fadeOutDuration"`
		Alternatives    map[string]scriptline.Alternative `yaml:"alternatives"`
		Effects         map[string]any                     `yaml:"effects"`
	}
)

const (
	SelectClipKind ActionKind = iota
	UpdateClipKind
	ReplaceClipKind
	RegenerateClipKind
	AddClipKind
	DeleteClipKind
	AddClipsKind
	NumActionKinds
)

var actionKindNames = [NumActionKinds]string{
	"SELECT_CLIP",
	"UPDATE_CLIP",
	"REPLACE_CLIP",
	"REGENERATE_CLIP",
	"ADD_CLIP",
	"DELETE_CLIP",
	"ADD_CLIPS",
}

func (k ActionKind) String() string {
	if k < 0 || k >= NumActionKinds {
		return "UNKNOWN"
	}
	return actionKindNames[k]
}

// ParseActionKind returns the kind with the given name.
func ParseActionKind(name string) (ActionKind, bool) {
	for i, n := range actionKindNames {
		if n == name {
			return ActionKind(i), true
		}
	}
	return 0, false
}

func (SelectClip) Kind() ActionKind     { return SelectClipKind }
func (UpdateClip) Kind() ActionKind     { return UpdateClipKind }
func (ReplaceClip) Kind() ActionKind    { return ReplaceClipKind }
func (RegenerateClip) Kind() ActionKind { return RegenerateClipKind }
func (AddClip) Kind() ActionKind        { return AddClipKind }
func (DeleteClip) Kind() ActionKind     { return DeleteClipKind }
func (AddClips) Kind() ActionKind       { return AddClipsKind }

func (SelectClip) action()     {}
func (UpdateClip) action()     {}
func (ReplaceClip) action()    {}
func (RegenerateClip) action() {}
func (AddClip) action()        {}
func (DeleteClip) action()     {}
func (AddClips) action()       {}
