package finalize_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vsariola/scriptline/editor"
	"github.com/vsariola/scriptline/finalize"
)

type recorder struct {
	mu      sync.Mutex
	actions []editor.Action
}

func (r *recorder) Dispatch(a editor.Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, a)
	return nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.actions)
}

var fixedNow = time.UnixMilli(1700000000000)

func newFinalizer() *finalize.Finalizer {
	f := finalize.New(nil)
	f.StepDelay = 0
	f.Now = func() time.Time { return fixedNow }
	return f
}

func TestRunDispatchesOnce(t *testing.T) {
	f := newFinalizer()
	var rec recorder
	var steps []string
	if err := f.Run(context.Background(), &rec, func(i int, msg string) { steps = append(steps, msg) }); err != nil {
		t.Fatal(err)
	}
	if len(steps) != len(finalize.DefaultSteps) || steps[0] != "Processing..." {
		t.Errorf("unexpected steps %v", steps)
	}
	if rec.count() != 1 {
		t.Fatalf("expected exactly one dispatch, got %d", rec.count())
	}
	batch, ok := rec.actions[0].(editor.AddClips)
	if !ok {
		t.Fatalf("expected AddClips, got %v", rec.actions[0].Kind())
	}
	if len(batch.Clips) != 6 || len(batch.Tracks) != 3 {
		t.Errorf("unexpected placeholder batch: %d clips, %d tracks", len(batch.Clips), len(batch.Tracks))
	}
	if batch.Clips[0].ID != "clip-1700000000000-1" {
		t.Errorf("unexpected clip id %q", batch.Clips[0].ID)
	}
}

func TestRunCancelled(t *testing.T) {
	f := newFinalizer()
	f.StepDelay = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	var rec recorder
	err := f.Run(ctx, &rec, func(i int, msg string) {
		if i == 1 {
			t.Errorf("second step reached after cancellation")
		}
		cancel()
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if rec.count() != 0 {
		t.Errorf("cancelled run must not dispatch")
	}
}

func TestPlaceholderBatchFillsStore(t *testing.T) {
	store := editor.NewStore(editor.NewReducer(nil, nil), nil)
	f := newFinalizer()
	if err := f.Run(context.Background(), store, nil); err != nil {
		t.Fatal(err)
	}
	tl := store.State()
	if len(tl.Clips) != 6 || len(tl.Tracks) != 3 {
		t.Fatalf("expected 6 clips on 3 tracks, got %d on %d", len(tl.Clips), len(tl.Tracks))
	}
	if c := tl.Clips["clip-1700000000000-2"]; c.Duration != 3.5 || c.Name != "Prem - Line 2" {
		t.Errorf("unexpected clip %+v", c)
	}
	// finalizing twice at the same instant adds nothing the second time
	before := tl
	if err := f.Run(context.Background(), store, nil); err != nil {
		t.Fatal(err)
	}
	if store.State() != before {
		t.Errorf("expected the repeated batch to be a no-op")
	}
}

func TestSessionGating(t *testing.T) {
	var rec recorder
	s := finalize.NewSession(&rec, newFinalizer())
	var uploads []string
	s.OnUpload = func(name string) { uploads = append(uploads, name) }
	ctx := context.Background()
	if err := s.Finalize(ctx, nil); !errors.Is(err, finalize.ErrNotUploaded) {
		t.Errorf("expected ErrNotUploaded, got %v", err)
	}
	s.Upload("episode.txt")
	if name, ok := s.Uploaded(); !ok || name != "episode.txt" || len(uploads) != 1 {
		t.Errorf("upload not recorded: %q %v %v", name, ok, uploads)
	}
	if rec.count() != 0 {
		t.Errorf("upload must not dispatch")
	}
	if err := s.SetScript("x"); !errors.Is(err, finalize.ErrNotEditing) {
		t.Errorf("expected ErrNotEditing, got %v", err)
	}
	if err := s.BeginEdit(); err != nil {
		t.Fatal(err)
	}
	if err := s.Finalize(ctx, nil); !errors.Is(err, finalize.ErrEditing) {
		t.Errorf("expected ErrEditing, got %v", err)
	}
	s.SaveEdit()
	if err := s.Finalize(ctx, nil); err != nil {
		t.Fatal(err)
	}
	if rec.count() != 1 {
		t.Errorf("expected one dispatch, got %d", rec.count())
	}
}

func TestSessionBusy(t *testing.T) {
	var rec recorder
	f := newFinalizer()
	f.StepDelay = time.Hour
	s := finalize.NewSession(&rec, f)
	s.Upload("a.wav")
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	done := make(chan error)
	go func() {
		done <- s.Finalize(ctx, func(i int, msg string) {
			if i == 0 {
				close(started)
			}
		})
	}()
	<-started
	if err := s.Finalize(context.Background(), nil); !errors.Is(err, finalize.ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}
	if err := s.BeginEdit(); !errors.Is(err, finalize.ErrBusy) {
		t.Errorf("expected ErrBusy for editing, got %v", err)
	}
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSessionUsesScript(t *testing.T) {
	store := editor.NewStore(editor.NewReducer(nil, nil), nil)
	s := finalize.NewSession(store, newFinalizer())
	s.UseScript = true
	s.Upload("script.txt")
	if err := s.Finalize(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	tl := store.State()
	if _, ok := tl.Tracks["track-pranav"]; !ok {
		t.Errorf("expected a track per character, got %v", tl.Tracks)
	}
	if len(tl.Clips) != 6 {
		t.Errorf("expected 4 lines and 2 sound effects, got %d clips", len(tl.Clips))
	}

	if err := s.BeginEdit(); err != nil {
		t.Fatal(err)
	}
	if err := s.SetScript("Script:\nno speaker here\n"); err != nil {
		t.Fatal(err)
	}
	s.SaveEdit()
	if err := s.Finalize(context.Background(), nil); err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected a parse error, got %v", err)
	}
}
