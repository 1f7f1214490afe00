package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/vsariola/scriptline"
)

const (
	outputTable = "table"
	outputYAML  = "yaml"
)

func validateOutput(format string) error {
	switch format {
	case outputTable, outputYAML:
		return nil
	default:
		return fmt.Errorf("output: unsupported value %q (want table or yaml)", format)
	}
}

func writeTimeline(w io.Writer, t *scriptline.Timeline, format string) error {
	if format == outputYAML {
		return writeState(w, t)
	}
	_, err := fmt.Fprintln(w, timelineTable(w, t))
	return err
}

// timelineTable lists the clips track by track, marking the selected one.
func timelineTable(w io.Writer, t *scriptline.Timeline) string {
	var rows [][]string
	for _, track := range t.SortedTracks() {
		clips := t.ClipsOnTrack(track.ID)
		if len(clips) == 0 {
			rows = append(rows, []string{"", track.Title, "", "", "", "", "", ""})
			continue
		}
		for _, c := range clips {
			sel := ""
			if c.ID == t.SelectedClipID {
				sel = "*"
			}
			rows = append(rows, []string{
				sel,
				track.Title,
				c.ID,
				c.Name,
				seconds(c.StartTime),
				seconds(c.End()),
				strconv.FormatFloat(c.Volume, 'f', 2, 64),
				fmt.Sprintf("%s/%s", seconds(c.FadeInDuration), seconds(c.FadeOutDuration)),
			})
		}
	}
	headers := []string{"", "Track", "Clip", "Name", "Start", "End", "Volume", "Fades"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight}
	return renderTable(w, headers, rows, aligns)
}

func seconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
