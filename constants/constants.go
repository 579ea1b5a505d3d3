package constants

import "os"

func GetOutDir() string {
	path := os.Getenv("CHORDMAP_OUT")
	if path != "" {
		return path
	}
	return "./out"
}

// GetConfigPath returns the config file named by CHORDMAP_CONFIG, or "" to
// use the compiled-in palette.
func GetConfigPath() string {
	return os.Getenv("CHORDMAP_CONFIG")
}

// C at octave 2 is the tonic
const DefaultNoteRoot = 24

const (
	DefaultFirstOctave = 1
	DefaultLastOctave  = 4
)

// MIDI key range; the tonic and every previewed note must fall inside it
const (
	MinMidiNote = 0
	MaxMidiNote = 127
)

// trigger octaves whose every pitch class is a MIDI key
const (
	MinTriggerOctave = MinMidiNote / 12
	MaxTriggerOctave = (MaxMidiNote - 11) / 12
)

const DefaultNamePrefix = "Note"

var DefaultHeader = []string{
	"# (c) Copyright 2017 Sean Connelly (@voidqk) http://syntheti.cc",
	"# MIT License",
	"# Project Home: https://github.com/voidqk/midimap",
}

const PreviewTicksPerQuarter = 480
