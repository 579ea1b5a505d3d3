package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jsphweid/chordmap/chord"
	"github.com/jsphweid/chordmap/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goldenTable(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "table", "testdata", "default.golden"))
	require.NoError(t, err)
	return string(data)
}

// run resets the flag state left behind by earlier runs, which pflag keeps
// across Execute calls.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, outputPath, previewPath, watchMode = "", "", "", false
	f := rootCmd.PersistentFlags().Lookup("note-root")
	require.NoError(t, f.Value.Set(f.DefValue))
	f.Changed = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err)
	return out
}

func TestGenerateToStdout(t *testing.T) {
	out := execute(t, "generate", "--log-level", "error")
	assert.Equal(t, goldenTable(t), out)
}

func TestGenerateToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.map")
	out := execute(t, "generate", "--log-level", "error", "-o", path)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, goldenTable(t), string(data))
}

func TestGenerateWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chordmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("note_root: 36\nname_prefix: \"\"\noctaves: {first: 1, last: 1}\n"), 0644))

	out := execute(t, "generate", "--log-level", "error", "--config", path)

	assert := assert.New(t)
	assert.Equal(12, strings.Count(out, "End\n"))
	assert.Contains(out, "OnNote Any C1 Any\n\tSendNote Channel C3 Velocity\n")
}

func TestGenerateWithNoteRootFlag(t *testing.T) {
	out := execute(t, "generate", "--log-level", "error", "--note-root", "36")
	assert.Contains(t, out, "OnNote Any NoteC1 Any\n\tSendNote Channel NoteC3 Velocity\n")

	out = execute(t, "generate", "--log-level", "error")
	assert.Equal(t, goldenTable(t), out)
}

func TestGenerateRejectsNoteRootOutsideMidiRange(t *testing.T) {
	out, err := run(t, "generate", "--log-level", "error", "--note-root", "200")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Empty(t, out)
}

func TestPreviewThenInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.mid")
	out := execute(t, "preview", "--log-level", "error", "-o", path)
	assert.Equal(t, path+"\n", out)

	out = execute(t, "inspect", "--log-level", "error", path)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 48)
	assert.Contains(t, lines[0], "24-28-31")
	assert.True(t, strings.HasSuffix(lines[0], "C2 E2 G2"), lines[0])
}

func TestInitConfigWritesLoadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chordmap.yaml")
	execute(t, "init-config", "--log-level", "error", path)

	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestAnalyzeDefaultPalette(t *testing.T) {
	r, err := analyze(config.Default())
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(48, r.numRules)
	assert.Len(r.perDegree, 12)
	// B1 from the -1 offsets of V7, iii, V and III
	assert.Equal(23, int(r.lowest))
	for pc, dr := range r.perDegree {
		assert.Equal(4, dr.numUnique, "pitch class %d", pc)
	}
	assert.Equal("I7", r.perDegree[6].label)
	assert.Equal(4, r.perDegree[6].size)

	var buf bytes.Buffer
	r.print(&buf)
	assert.Contains(buf.String(), "numRules: 48\n")
	assert.Contains(buf.String(), "C   I    3 notes, 4/4 distinct voicings\n")
}

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "INFO", ""} {
		_, err := newLogger(level)
		assert.NoError(t, err, level)
	}
	_, err := newLogger("loud")
	assert.Error(t, err)
}

func TestFormatSounding(t *testing.T) {
	line := formatSounding(chord.Sounding{AbsTicks: 480, Notes: []uint8{28, 31, 36}})
	assert.Equal(t, "     480  28-31-36             E2 G2 C3", line)
}

func startWatch(t *testing.T, path string, regenerate func()) (context.CancelFunc, <-chan error) {
	t.Helper()
	cw, err := newConfigWatcher(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- cw.run(ctx, regenerate)
	}()
	return cancel, done
}

func waitForReturn(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not return after cancel")
	}
}

func TestWatchRegeneratesOnConfigChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chordmap.yaml")
	sibling := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("note_root: 24\n"), 0644))

	var calls atomic.Int32
	cancel, done := startWatch(t, path, func() { calls.Add(1) })

	require.NoError(t, os.WriteFile(sibling, []byte("unrelated"), 0644))
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("note_root: %d\n", 24+i)), 0644))
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(3 * watchDebounce)
	assert.Equal(t, int32(1), calls.Load())

	require.NoError(t, os.WriteFile(sibling, []byte("still unrelated"), 0644))
	time.Sleep(3 * watchDebounce)
	assert.Equal(t, int32(1), calls.Load())

	cancel()
	waitForReturn(t, done)
}

func TestWatchDropsPendingRegenerateOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chordmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("note_root: 24\n"), 0644))

	var calls atomic.Int32
	cancel, done := startWatch(t, path, func() { calls.Add(1) })

	require.NoError(t, os.WriteFile(path, []byte("note_root: 36\n"), 0644))
	time.Sleep(watchDebounce / 4)
	cancel()
	waitForReturn(t, done)

	time.Sleep(3 * watchDebounce)
	assert.Equal(t, int32(0), calls.Load())
}
