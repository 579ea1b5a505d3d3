// Package generator builds the trigger/response rules of a chord table.
//
// For every trigger octave and pitch class it resolves the chord the pitch
// class currently maps to, names each note against the tonal root and then
// inverts that chord, so the next octave of the same pitch class sends a
// rising voicing instead of repeating the last one.
package generator

import (
	"fmt"
	"iter"

	"github.com/jsphweid/chordmap/chord"
	"github.com/jsphweid/chordmap/config"
	"github.com/jsphweid/chordmap/model"
	"github.com/jsphweid/chordmap/note"
)

// Generator yields rules one at a time. It owns its chords and cannot be
// rewound; build a new one for another run.
type Generator struct {
	degrees  []model.Degree
	noteRoot model.Note
	namer    note.Namer

	lastOctave int
	octave     int
	pc         model.PitchClass
}

// New validates cfg and copies its chords. A config that fails validation
// produces no generator, so no partial table is ever emitted.
func New(cfg *config.Config) (*Generator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", config.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{
		degrees:    model.CopyDegrees(cfg.Degrees),
		noteRoot:   model.Note(cfg.NoteRoot),
		namer:      note.NewNamer(cfg.NameTable()),
		lastOctave: cfg.Octaves.Last,
		octave:     cfg.Octaves.First,
	}, nil
}

// Next returns the next rule, octave ascending then pitch class ascending.
// ok is false once the range is exhausted.
func (g *Generator) Next() (rule model.Rule, ok bool) {
	if g.octave > g.lastOctave {
		return model.Rule{}, false
	}

	degree := g.degrees[g.pc]
	rule = model.Rule{
		Trigger:     model.NoteAt(g.pc, g.octave),
		TriggerName: g.namer.NameOf(g.pc, g.octave),
		Degree:      degree.Label,
		Outputs:     make([]model.Note, len(degree.Chord)),
		OutputNames: make([]string, len(degree.Chord)),
	}
	for i, offset := range degree.Chord {
		n := g.noteRoot + model.Note(offset)
		rule.Outputs[i] = n
		rule.OutputNames[i] = g.namer.Name(n)
	}
	chord.Invert(degree.Chord)

	g.pc++
	if g.pc == model.NumPitchClasses {
		g.pc = 0
		g.octave++
	}
	return rule, true
}

// Rules is a range-over-func view of Next sharing the same cursor.
func (g *Generator) Rules() iter.Seq[model.Rule] {
	return func(yield func(model.Rule) bool) {
		for {
			rule, ok := g.Next()
			if !ok || !yield(rule) {
				return
			}
		}
	}
}

// Collect runs a fresh generator for cfg to completion.
func Collect(cfg *config.Config) ([]model.Rule, error) {
	g, err := New(cfg)
	if err != nil {
		return nil, err
	}
	var rules []model.Rule
	for rule := range g.Rules() {
		rules = append(rules, rule)
	}
	return rules, nil
}

// Len is the number of rules a full run of cfg produces.
func Len(cfg *config.Config) int {
	if cfg.Octaves.Last < cfg.Octaves.First {
		return 0
	}
	return (cfg.Octaves.Last - cfg.Octaves.First + 1) * model.NumPitchClasses
}
