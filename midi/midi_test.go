package midi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/chordmap/chord"
	"github.com/jsphweid/chordmap/config"
	"github.com/jsphweid/chordmap/generator"
	"github.com/jsphweid/chordmap/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenReadPreview(t *testing.T) {
	rules, err := generator.Collect(config.Default())
	require.NoError(t, err)
	s, err := sample.Create(rules)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "preview.mid")
	require.NoError(t, WriteMidiFile(path, s))

	read, err := ReadMidiFile(path)
	require.NoError(t, err)

	chords := chord.GetChords(read, sample.ChordChannel)
	require.Len(t, chords, 48)
	assert.Equal(t, []uint8{24, 28, 31}, chords[0].Notes)
	assert.Equal(t, []uint8{28, 31, 36}, chords[12].Notes)
}

func TestReadMidiFileMissing(t *testing.T) {
	_, err := ReadMidiFile(filepath.Join(t.TempDir(), "missing.mid"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadMidiFileGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.mid")
	require.NoError(t, os.WriteFile(path, []byte("not a midi file"), 0644))

	_, err := ReadMidiFile(path)
	assert.Error(t, err)
}

func TestWriteMidiFileNil(t *testing.T) {
	assert.Error(t, WriteMidiFile(filepath.Join(t.TempDir(), "x.mid"), nil))
}
