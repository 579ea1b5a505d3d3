package cmd

import (
	"fmt"
	"strings"

	"github.com/jsphweid/chordmap/chord"
	"github.com/jsphweid/chordmap/midi"
	"github.com/jsphweid/chordmap/model"
	"github.com/jsphweid/chordmap/note"
	"github.com/jsphweid/chordmap/sample"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Lists the chords of a preview file",
	Long:  `Lists the chords sounding on the chord channel of a preview MIDI file`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := midi.ReadMidiFile(args[0])
		if err != nil {
			return err
		}
		for _, c := range chord.GetChords(s, sample.ChordChannel) {
			fmt.Fprintln(cmd.OutOrStdout(), formatSounding(c))
		}
		return nil
	},
}

func formatSounding(c chord.Sounding) string {
	names := make([]string, len(c.Notes))
	for i, key := range c.Notes {
		names[i] = note.Name(model.Note(key))
	}
	return fmt.Sprintf("%8d  %-20s %s", c.AbsTicks, chord.CreateChordKey(c.Notes), strings.Join(names, " "))
}
