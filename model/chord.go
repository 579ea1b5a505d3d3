package model

// Chord is an ordered list of semitone offsets from the tonal root. The
// order is the current voicing and is significant.
type Chord []int

func (c Chord) Copy() Chord {
	res := make(Chord, len(c))
	copy(res, c)
	return res
}

// Degree is a scale degree and the chord it currently voices.
type Degree struct {
	Label string `yaml:"label" json:"label"`
	Chord Chord  `yaml:"offsets" json:"offsets"`
}

// NOTE: the chords are copied, so mutating the result never touches the
// source table
func CopyDegrees(degrees []Degree) []Degree {
	res := make([]Degree, len(degrees))
	for i, d := range degrees {
		res[i] = Degree{Label: d.Label, Chord: d.Chord.Copy()}
	}
	return res
}
