package finalize

import (
	"context"
	"errors"
	"sync"

	"github.com/vsariola/scriptline/editor"
)

var (
	ErrNotUploaded = errors.New("no file has been uploaded")
	ErrEditing     = errors.New("script is being edited")
	ErrNotEditing  = errors.New("script is not being edited")
	ErrBusy        = errors.New("finalization already in progress")
)

type (
	// Session ties together the steps a user goes through before the clips
	// reach the timeline: uploading a file, optionally editing the script and
	// finalizing. The session never changes the timeline itself except
	// through the single dispatch at the end of Finalize.
	Session struct {
		// OnUpload is called after every upload with the file name.
		OnUpload func(name string)
		// UseScript makes Finalize lay out the session script instead of
		// the placeholder clips.
		UseScript      bool
		WordsPerSecond float64

		mu         sync.Mutex
		dispatcher editor.Dispatcher
		finalizer  *Finalizer
		fileName   string
		script     string
		editing    bool
		finalizing bool
	}
)

// NewSession returns a session holding the default script.
func NewSession(d editor.Dispatcher, f *Finalizer) *Session {
	return &Session{dispatcher: d, finalizer: f, script: DefaultScript}
}

// Upload signals that a file was selected. It does not touch the timeline.
func (s *Session) Upload(name string) {
	s.mu.Lock()
	s.fileName = name
	onUpload := s.OnUpload
	s.mu.Unlock()
	s.finalizer.Logger.Info("file uploaded", "name", name)
	if onUpload != nil {
		onUpload(name)
	}
}

// Uploaded returns the name of the last uploaded file.
func (s *Session) Uploaded() (name string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fileName, s.fileName != ""
}

func (s *Session) Script() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.script
}

func (s *Session) Editing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editing
}

// BeginEdit enters edit mode. Editing is not possible while finalizing.
func (s *Session) BeginEdit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finalizing {
		return ErrBusy
	}
	s.editing = true
	return nil
}

// SetScript replaces the script text; only allowed in edit mode.
func (s *Session) SetScript(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editing {
		return ErrNotEditing
	}
	s.script = text
	return nil
}

// SaveEdit leaves edit mode, keeping the edited script.
func (s *Session) SaveEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing {
		s.finalizer.Logger.Info("script saved", "bytes", len(s.script))
	}
	s.editing = false
}

// Finalize runs the finalizer. It is refused before an upload, while the
// script is edited and while another Finalize is running.
func (s *Session) Finalize(ctx context.Context, progress Progress) error {
	s.mu.Lock()
	switch {
	case s.fileName == "":
		s.mu.Unlock()
		return ErrNotUploaded
	case s.editing:
		s.mu.Unlock()
		return ErrEditing
	case s.finalizing:
		s.mu.Unlock()
		return ErrBusy
	}
	f := *s.finalizer
	if s.UseScript {
		batch, err := ScriptBatcher(s.script, s.WordsPerSecond)
		if err != nil {
			s.mu.Unlock()
			return err
		}
		f.Batch = batch
	}
	s.finalizing = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.finalizing = false
		s.mu.Unlock()
	}()
	return f.Run(ctx, s.dispatcher, progress)
}
