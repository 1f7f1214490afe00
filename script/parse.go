// Package script reads the screenplay format used by the finalize step and
// lays the screenplay out as a batch of timeline tracks and clips.
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

type (
	// Script is a parsed screenplay.
	Script struct {
		// Characters in order of first mention, either in the Characters
		// section or as a speaker.
		Characters []Character
		Cues       []Cue
	}

	Character struct {
		Name        string
		Description string
	}

	// Cue is one event of the screenplay: a line of dialogue or a sound
	// effect.
	Cue struct {
		Kind      CueKind
		Speaker   string // empty for sound effects
		Direction string // text of the leading parenthetical, if any
		Text      string
		Line      int // line number in the source, 1-based
	}

	CueKind int
)

const (
	Dialogue CueKind = iota
	SoundEffect
)

var ErrNoSpeaker = errors.New("dialogue without a speaker")

const (
	charactersHeader = "characters:"
	scriptHeader     = "script:"
	separator        = "----"
	soundEffectTag   = "sound effect:"
)

type section int

const (
	sectionNone section = iota
	sectionCharacters
	sectionScript
)

// Parse reads a screenplay. The Characters section lists "Name: description"
// lines; the Script section holds "Name: (direction) text" dialogue lines and
// "(Sound effect: description)" cues. Text without a section header is read
// as script. Other parenthesized lines are stage directions and are ignored.
func Parse(r io.Reader) (*Script, error) {
	s := &Script{}
	known := map[string]int{}
	addCharacter := func(name, description string) {
		if i, ok := known[strings.ToLower(name)]; ok {
			if s.Characters[i].Description == "" {
				s.Characters[i].Description = description
			}
			return
		}
		known[strings.ToLower(name)] = len(s.Characters)
		s.Characters = append(s.Characters, Character{Name: name, Description: description})
	}
	sec := sectionNone
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		switch lower := strings.ToLower(line); {
		case line == "":
			continue
		case lower == charactersHeader:
			sec = sectionCharacters
			continue
		case lower == scriptHeader:
			sec = sectionScript
			continue
		case strings.HasPrefix(line, separator) && strings.Trim(line, "-") == "":
			continue
		}
		if sec == sectionCharacters {
			name, desc, ok := strings.Cut(line, ":")
			if !ok || strings.TrimSpace(name) == "" {
				return nil, fmt.Errorf("line %d: expected \"Name: description\", got %q", lineNo, line)
			}
			addCharacter(strings.TrimSpace(name), strings.TrimSpace(desc))
			continue
		}
		if inner, ok := parenthesized(line); ok {
			if desc, ok := cutPrefixFold(inner, soundEffectTag); ok {
				s.Cues = append(s.Cues, Cue{Kind: SoundEffect, Text: strings.TrimSpace(desc), Line: lineNo})
			}
			continue
		}
		speaker, rest, ok := strings.Cut(line, ":")
		speaker = strings.TrimSpace(speaker)
		if !ok || speaker == "" || strings.ContainsAny(speaker, "()") {
			return nil, fmt.Errorf("line %d: %w: %q", lineNo, ErrNoSpeaker, line)
		}
		addCharacter(speaker, "")
		direction, text := splitDirection(strings.TrimSpace(rest))
		s.Cues = append(s.Cues, Cue{Kind: Dialogue, Speaker: s.Characters[known[strings.ToLower(speaker)]].Name, Direction: direction, Text: text, Line: lineNo})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read script: %w", err)
	}
	return s, nil
}

// Dialogue returns the number of dialogue cues.
func (s *Script) Dialogue() int {
	n := 0
	for _, c := range s.Cues {
		if c.Kind == Dialogue {
			n++
		}
	}
	return n
}

func parenthesized(line string) (string, bool) {
	if !strings.HasPrefix(line, "(") || !strings.HasSuffix(line, ")") {
		return "", false
	}
	return strings.TrimSpace(line[1 : len(line)-1]), true
}

// splitDirection separates a leading "( ... )" from the spoken text.
func splitDirection(s string) (direction, text string) {
	if !strings.HasPrefix(s, "(") {
		return "", s
	}
	end := strings.Index(s, ")")
	if end < 0 {
		return "", s
	}
	return strings.TrimSpace(s[1:end]), strings.TrimSpace(s[end+1:])
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", false
	}
	return s[len(prefix):], true
}
