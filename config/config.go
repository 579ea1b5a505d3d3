// Package config loads the chord palette and generation settings.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jsphweid/chordmap/chord"
	"github.com/jsphweid/chordmap/constants"
	"github.com/jsphweid/chordmap/model"
	"github.com/jsphweid/chordmap/note"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds everything a generation run needs
type Config struct {
	// NoteRoot is the absolute note every chord offset is resolved against
	NoteRoot int `yaml:"note_root"`
	// Octaves is the inclusive range of trigger octaves
	Octaves OctaveRange `yaml:"octaves"`
	// Names are the 12 pitch-class names, C first
	Names []string `yaml:"names"`
	// NamePrefix is prepended to every note name in the rendered table
	NamePrefix string `yaml:"name_prefix"`
	// Header lines are written once before the first rule
	Header []string `yaml:"header"`
	// Degrees holds one chord per trigger pitch class
	Degrees []model.Degree `yaml:"degrees"`
}

type OctaveRange struct {
	First int `yaml:"first"`
	Last  int `yaml:"last"`
}

// Default returns the compiled-in palette
func Default() *Config {
	header := make([]string, len(constants.DefaultHeader))
	copy(header, constants.DefaultHeader)
	names := make([]string, len(note.Names))
	copy(names, note.Names[:])
	return &Config{
		NoteRoot: constants.DefaultNoteRoot,
		Octaves: OctaveRange{
			First: constants.DefaultFirstOctave,
			Last:  constants.DefaultLastOctave,
		},
		Names:      names,
		NamePrefix: constants.DefaultNamePrefix,
		Header:     header,
		Degrees:    chord.Palette(),
	}
}

// Validate checks the preconditions the generator relies on
func (c *Config) Validate() error {
	if c.NoteRoot < constants.MinMidiNote || c.NoteRoot > constants.MaxMidiNote {
		return fmt.Errorf("%w: note_root %d outside %d..%d", ErrInvalidConfig,
			c.NoteRoot, constants.MinMidiNote, constants.MaxMidiNote)
	}
	for _, octave := range []int{c.Octaves.First, c.Octaves.Last} {
		if octave < constants.MinTriggerOctave || octave > constants.MaxTriggerOctave {
			return fmt.Errorf("%w: octave %d outside %d..%d", ErrInvalidConfig,
				octave, constants.MinTriggerOctave, constants.MaxTriggerOctave)
		}
	}
	if c.Octaves.First > c.Octaves.Last {
		return fmt.Errorf("%w: octaves.first %d is after octaves.last %d", ErrInvalidConfig,
			c.Octaves.First, c.Octaves.Last)
	}
	if len(c.Names) != model.NumPitchClasses {
		return fmt.Errorf("%w: need %d names, got %d", ErrInvalidConfig, model.NumPitchClasses, len(c.Names))
	}
	seen := make(map[string]int)
	for i, name := range c.Names {
		if name == "" {
			return fmt.Errorf("%w: name %d is empty", ErrInvalidConfig, i)
		}
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("%w: name %q used for pitch classes %d and %d", ErrInvalidConfig, name, prev, i)
		}
		seen[name] = i
	}
	if len(c.Degrees) != model.NumPitchClasses {
		return fmt.Errorf("%w: need %d degrees, got %d", ErrInvalidConfig, model.NumPitchClasses, len(c.Degrees))
	}
	for i, d := range c.Degrees {
		if len(d.Chord) == 0 {
			return fmt.Errorf("%w: degree %d (%s) has no offsets", ErrInvalidConfig, i, d.Label)
		}
	}
	return nil
}

// NameTable returns the names as the fixed-size table note.Namer expects.
// Call Validate first.
func (c *Config) NameTable() [model.NumPitchClasses]string {
	var names [model.NumPitchClasses]string
	copy(names[:], c.Names)
	return names
}

// LoadFromFile reads a YAML file over the defaults and validates the result
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Load returns the defaults when path is empty, the file's config otherwise
func Load(path string, logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		logger.Debug("Using compiled-in palette")
		return Default(), nil
	}
	config, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded config", slog.String("path", path), slog.Int("note_root", config.NoteRoot))
	return config, nil
}

// SaveToFile writes the configuration as YAML
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
