// Package table renders rules in the note-remapping configuration syntax.
package table

import (
	"bufio"
	"fmt"
	"io"
	"iter"

	"github.com/jsphweid/chordmap/model"
)

type Writer struct {
	w      *bufio.Writer
	prefix string
}

// NewWriter prepends prefix to every note name it writes; the remapping
// language spells C1 as NoteC1.
func NewWriter(w io.Writer, prefix string) *Writer {
	return &Writer{w: bufio.NewWriter(w), prefix: prefix}
}

func (tw *Writer) WriteHeader(lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(tw.w, line); err != nil {
			return fmt.Errorf("could not write header: %w", err)
		}
	}
	return nil
}

// WriteRule writes the blank separator, the trigger, one send line per
// output note in chord order, and the terminator.
func (tw *Writer) WriteRule(r model.Rule) error {
	_, err := fmt.Fprintf(tw.w, "\nOnNote Any %s%s Any\n", tw.prefix, r.TriggerName)
	if err != nil {
		return fmt.Errorf("could not write rule %s: %w", r.TriggerName, err)
	}
	for _, name := range r.OutputNames {
		_, err = fmt.Fprintf(tw.w, "\tSendNote Channel %s%s Velocity\n", tw.prefix, name)
		if err != nil {
			return fmt.Errorf("could not write rule %s: %w", r.TriggerName, err)
		}
	}
	if _, err = fmt.Fprintln(tw.w, "End"); err != nil {
		return fmt.Errorf("could not write rule %s: %w", r.TriggerName, err)
	}
	return nil
}

func (tw *Writer) Flush() error {
	if err := tw.w.Flush(); err != nil {
		return fmt.Errorf("could not flush table: %w", err)
	}
	return nil
}

// Render writes the header then every rule of seq, stopping at the first
// error. It returns the number of rules written.
func Render(w io.Writer, header []string, prefix string, seq iter.Seq[model.Rule]) (int, error) {
	tw := NewWriter(w, prefix)
	if err := tw.WriteHeader(header); err != nil {
		return 0, err
	}
	var count int
	for r := range seq {
		if err := tw.WriteRule(r); err != nil {
			return count, err
		}
		count++
	}
	return count, tw.Flush()
}
