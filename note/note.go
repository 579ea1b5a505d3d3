package note

import (
	"strconv"

	"github.com/jsphweid/chordmap/model"
)

var Names = [model.NumPitchClasses]string{
	"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B",
}

// Namer formats notes with a fixed 12-entry name table.
type Namer struct {
	names [model.NumPitchClasses]string
}

func NewNamer(names [model.NumPitchClasses]string) Namer {
	return Namer{names: names}
}

// NameOf joins the name of pc with the octave number. pc must already be
// in [0,11]; octave may be negative.
func (nm Namer) NameOf(pc model.PitchClass, octave int) string {
	return nm.names[pc] + strconv.Itoa(octave)
}

func (nm Namer) Name(n model.Note) string {
	return nm.NameOf(n.PitchClass(), n.Octave())
}

var defaultNamer = NewNamer(Names)

func NameOf(pc model.PitchClass, octave int) string {
	return defaultNamer.NameOf(pc, octave)
}

func Name(n model.Note) string {
	return defaultNamer.Name(n)
}
