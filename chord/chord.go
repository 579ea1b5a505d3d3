package chord

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsphweid/chordmap/model"
	"github.com/jsphweid/chordmap/util"
	"gitlab.com/gomidi/midi/v2/smf"
	"golang.org/x/exp/constraints"
)

// index is the pitch class of the trigger note
var palette = []model.Degree{
	{Label: "I", Chord: model.Chord{0, 4, 7}},
	{Label: "V7", Chord: model.Chord{-1, 2, 5, 7}},
	{Label: "ii", Chord: model.Chord{2, 5, 9}},
	{Label: "VI", Chord: model.Chord{1, 4, 9}},
	{Label: "iii", Chord: model.Chord{-1, 4, 7}},
	{Label: "IV", Chord: model.Chord{0, 5, 9}},
	{Label: "I7", Chord: model.Chord{0, 4, 7, 10}},
	{Label: "V", Chord: model.Chord{-1, 4, 7}},
	{Label: "II", Chord: model.Chord{2, 6, 9}},
	{Label: "vi", Chord: model.Chord{0, 5, 9}},
	{Label: "III", Chord: model.Chord{-1, 4, 8}},
	{Label: "iv", Chord: model.Chord{0, 5, 8}},
}

// Palette returns a fresh copy of the default degree table, one entry per
// pitch class.
func Palette() []model.Degree {
	return model.CopyDegrees(palette)
}

// Invert moves the lowest-positioned offset to the end, an octave up. After
// len(c) calls every offset has been raised by exactly 12.
func Invert(c model.Chord) {
	if len(c) == 0 {
		return
	}
	first := c[0]
	copy(c, c[1:])
	c[len(c)-1] = first + 12
}

// CreateChordKey builds a canonical key for a note set regardless of the
// order the notes are given in. The input is not modified.
func CreateChordKey[A constraints.Integer](notes []A) string {
	sorted := make([]A, len(notes))
	copy(sorted, notes)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	parts := make([]string, len(sorted))
	for i, note := range sorted {
		parts[i] = fmt.Sprintf("%v", note)
	}
	return strings.Join(parts, "-")
}

// Sounding is a set of notes held together starting at a tick offset.
type Sounding struct {
	AbsTicks int64
	Notes    []uint8
}

type reducedEvent struct {
	absTicks  int64
	isNoteOff bool
	note      uint8
}

func getSounding(pressed map[uint8]bool, absTicks int64) Sounding {
	var notes []uint8
	for note := range pressed {
		notes = append(notes, note)
	}
	sort.Slice(notes, func(i, j int) bool {
		return notes[i] < notes[j]
	})
	return Sounding{AbsTicks: absTicks, Notes: notes}
}

// GetChords lists the note sets sounding on channel after every change,
// ordered by time. Empty sets are dropped.
func GetChords(s *smf.SMF, channel uint8) []Sounding {
	var reducedEvents []reducedEvent

	for _, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			var ch, key, velocity uint8
			switch {
			case event.Message.GetNoteOn(&ch, &key, &velocity) && ch == channel:
				reducedEvents = append(reducedEvents, reducedEvent{
					absTicks:  absTicks,
					isNoteOff: velocity == 0,
					note:      key,
				})
			case event.Message.GetNoteOff(&ch, &key, &velocity) && ch == channel:
				reducedEvents = append(reducedEvents, reducedEvent{
					absTicks:  absTicks,
					isNoteOff: true,
					note:      key,
				})
			}
		}
	}

	// prioritize smaller offset values then note off
	sort.SliceStable(reducedEvents, func(i, j int) bool {
		if reducedEvents[i].absTicks != reducedEvents[j].absTicks {
			return reducedEvents[i].absTicks < reducedEvents[j].absTicks
		}
		return reducedEvents[i].isNoteOff && !reducedEvents[j].isNoteOff
	})

	timestampToChords := make(map[int64]Sounding)
	pressed := make(map[uint8]bool)
	for _, evt := range reducedEvents {
		if evt.isNoteOff {
			delete(pressed, evt.note)
		} else {
			pressed[evt.note] = true
		}
		timestampToChords[evt.absTicks] = getSounding(pressed, evt.absTicks)
	}

	var chords []Sounding
	for _, ts := range util.GetKeys(timestampToChords) {
		c := timestampToChords[ts]
		if len(c.Notes) > 0 {
			chords = append(chords, c)
		}
	}
	return chords
}
