package sample

import (
	"fmt"

	"github.com/jsphweid/chordmap/constants"
	"github.com/jsphweid/chordmap/model"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	TriggerChannel uint8 = 0
	ChordChannel   uint8 = 1
	velocity       uint8 = 100
)

func toKey(n model.Note) (uint8, error) {
	if n < constants.MinMidiNote || n > constants.MaxMidiNote {
		return 0, fmt.Errorf("note %d is outside the midi key range", n)
	}
	return uint8(n), nil
}

// Create lays the rules out one beat apart: the trigger note on
// TriggerChannel and its chord on ChordChannel, both held for the beat.
func Create(rules []model.Rule) (*smf.SMF, error) {
	res := smf.New()
	res.TimeFormat = smf.MetricTicks(constants.PreviewTicksPerQuarter)

	var track smf.Track
	for _, r := range rules {
		trigger, err := toKey(r.Trigger)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", r.TriggerName, err)
		}
		keys := make([]uint8, len(r.Outputs))
		for i, n := range r.Outputs {
			if keys[i], err = toKey(n); err != nil {
				return nil, fmt.Errorf("rule %s: %w", r.TriggerName, err)
			}
		}

		track.Add(0, midi.NoteOn(TriggerChannel, trigger, velocity))
		for _, key := range keys {
			track.Add(0, midi.NoteOn(ChordChannel, key, velocity))
		}

		track.Add(constants.PreviewTicksPerQuarter, midi.NoteOff(TriggerChannel, trigger))
		for _, key := range keys {
			track.Add(0, midi.NoteOff(ChordChannel, key))
		}
	}
	track.Close(0)

	if err := res.Add(track); err != nil {
		return nil, fmt.Errorf("could not add preview track: %w", err)
	}
	return res, nil
}
