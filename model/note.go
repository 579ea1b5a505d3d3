package model

import "github.com/jsphweid/chordmap/util"

// NumPitchClasses is the number of pitch classes in an octave.
const NumPitchClasses = 12

type PitchClass = int

// Note is an absolute semitone count from reference note 0. It may be
// negative when an offset reaches below the reference octave.
type Note int

func NoteAt(pc PitchClass, octave int) Note {
	return Note(octave*NumPitchClasses + pc)
}

func (n Note) PitchClass() PitchClass {
	return util.FloorMod(int(n), NumPitchClasses)
}

func (n Note) Octave() int {
	return util.FloorDiv(int(n), NumPitchClasses)
}
