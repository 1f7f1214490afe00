package editor_test

import (
	"errors"
	"testing"

	"github.com/vsariola/scriptline/editor"
)

const actionScript = `
- type: ADD_CLIPS
  payload:
    tracks:
      - {id: track-char1, title: Character 1}
    clips:
      - {id: c1, trackId: track-char1, start: 0, end: "2.5", label: Pranav - Line 1}
- type: ADD_CLIP
  payload:
    trackId: track-char1
    clipData: {id: c2, name: Extra, volume: loud, duration: 3}
- type: SELECT_CLIP
  payload: {clipId: c1}
- type: UPDATE_CLIP
  payload: {clipId: c1, updates: {name: Renamed, fadeInDuration: 4}}
- type: REPLACE_CLIP
  payload: {selectedClipId: c1, alternativeKey: calm}
- type: REGENERATE_CLIP
  payload: {clipId: c2}
- type: DELETE_CLIP
  payload: {clipId: c2}
`

func TestDecodeActions(t *testing.T) {
	actions, err := editor.DecodeActions([]byte(actionScript))
	if err != nil {
		t.Fatal(err)
	}
	want := []editor.ActionKind{
		editor.AddClipsKind, editor.AddClipKind, editor.SelectClipKind, editor.UpdateClipKind,
		editor.ReplaceClipKind, editor.RegenerateClipKind, editor.DeleteClipKind,
	}
	if len(actions) != len(want) {
		t.Fatalf("expected %d actions, got %d", len(want), len(actions))
	}
	for i, a := range actions {
		if a.Kind() != want[i] {
			t.Errorf("action %d: got %v, want %v", i, a.Kind(), want[i])
		}
	}
	bulk := actions[0].(editor.AddClips)
	if end, ok := bulk.Clips[0].End.Float(); !ok || end != 2.5 {
		t.Errorf("numeric string end decoded to %v, %v", end, ok)
	}
	if bulk.Clips[0].Duration.IsSet() {
		t.Errorf("missing duration should be unset")
	}
	add := actions[1].(editor.AddClip)
	if add.ClipData == nil || !add.ClipData.Volume.IsSet() || add.ClipData.Volume.Valid() {
		t.Errorf("expected a set but invalid volume, got %+v", add.ClipData)
	}
	update := actions[3].(editor.UpdateClip)
	if update.Updates.Name == nil || *update.Updates.Name != "Renamed" || update.Updates.Src != nil {
		t.Errorf("unexpected updates %+v", update.Updates)
	}

	r, _ := newReducer(t)
	s := editor.NewStore(r, nil)
	for _, a := range actions {
		if err := s.Dispatch(a); err != nil {
			t.Fatal(err)
		}
	}
	c1 := s.State().Clips["c1"]
	if c1.Name != "Calm take" || c1.Duration != 3 || c1.FadeInDuration != 1.25 {
		t.Errorf("unexpected final clip %+v", c1)
	}
	if _, ok := s.State().Clips["c2"]; ok {
		t.Errorf("c2 should have been deleted")
	}
}

func TestDecodeActionsUnknownType(t *testing.T) {
	_, err := editor.DecodeActions([]byte("- type: ADD_CLIP\n  payload: {trackId: t1}\n- type: MOVE_TRACK\n"))
	if !errors.Is(err, editor.ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}

func TestDecodeActionsMissingPayload(t *testing.T) {
	actions, err := editor.DecodeActions([]byte(`[{"type": "ADD_CLIP"}]`))
	if err != nil {
		t.Fatal(err)
	}
	if a := actions[0].(editor.AddClip); a.ClipData != nil || a.TrackID != "" {
		t.Errorf("expected an empty payload, got %+v", a)
	}
}
