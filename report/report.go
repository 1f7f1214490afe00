// Package report renders timeline snapshots as text using Go templates with
// the sprig function library.
package report

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/vsariola/scriptline"
)

//go:embed default.tmpl
var defaultTemplate string

type (
	Renderer struct {
		Template *template.Template
	}

	// Data is what the templates are executed with.
	Data struct {
		Tracks   []TrackRow
		Clips    int
		Length   float64
		Selected *ClipRow
	}

	TrackRow struct {
		scriptline.Track
		Clips []ClipRow
	}

	ClipRow struct {
		scriptline.Clip
		EndTime  float64
		Selected bool
	}
)

var funcs = template.FuncMap{
	"seconds": func(v float64) string { return fmt.Sprintf("%.2fs", v) },
}

// New returns a renderer using the built-in template.
func New() (*Renderer, error) {
	return Parse("default", defaultTemplate)
}

// NewFromFile returns a renderer using the template in the given file.
func NewFromFile(path string) (*Renderer, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read template: %w", err)
	}
	return Parse(filepath.Base(path), string(text))
}

// Parse returns a renderer for the template text. All sprig functions and
// "seconds" are available to the template.
func Parse(name, text string) (*Renderer, error) {
	tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Funcs(funcs).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("could not parse template %q: %w", name, err)
	}
	return &Renderer{Template: tmpl}, nil
}

// Render executes the template for the timeline.
func (r *Renderer) Render(w io.Writer, t *scriptline.Timeline) error {
	if err := r.Template.Execute(w, NewData(t)); err != nil {
		return fmt.Errorf("could not execute template %q: %w", r.Template.Name(), err)
	}
	return nil
}

// NewData builds the template data of a timeline: tracks sorted by id, each
// with its clips sorted by start time.
func NewData(t *scriptline.Timeline) Data {
	d := Data{Clips: len(t.Clips), Length: t.Length()}
	for _, track := range t.SortedTracks() {
		row := TrackRow{Track: track}
		for _, c := range t.ClipsOnTrack(track.ID) {
			cr := ClipRow{Clip: c, EndTime: c.End(), Selected: c.ID == t.SelectedClipID}
			if cr.Selected {
				sel := cr
				d.Selected = &sel
			}
			row.Clips = append(row.Clips, cr)
		}
		d.Tracks = append(d.Tracks, row)
	}
	return d
}
