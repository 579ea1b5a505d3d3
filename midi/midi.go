package midi

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = fmt.Errorf("Error parsing midi file... %v", r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("Error reading midi file... %w", err)
	}

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("Error parsing midi file... %w", err)
	}

	return res, nil
}

func WriteMidiFile(filepath string, s *smf.SMF) (e error) {
	if s == nil {
		return errors.New("no midi data to write")
	}
	f, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("Could not create midi file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && e == nil {
			e = fmt.Errorf("Could not close midi file: %w", err)
		}
	}()

	if _, err := s.WriteTo(f); err != nil {
		return fmt.Errorf("Write failed for midi file: %w", err)
	}
	return nil
}
