package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jsphweid/chordmap/constants"
	"github.com/jsphweid/chordmap/generator"
	"github.com/jsphweid/chordmap/midi"
	"github.com/jsphweid/chordmap/sample"
	"github.com/jsphweid/chordmap/util"
	"github.com/spf13/cobra"
)

var previewPath string

func init() {
	previewCmd.Flags().StringVarP(&previewPath, "output", "o", "", "MIDI file to write, defaults to a new file under $CHORDMAP_OUT")
	rootCmd.AddCommand(previewCmd)
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Writes the table as a MIDI file",
	Long: `Writes every rule as one beat of a standard MIDI file: the trigger note on
channel 1 and the chord it sends on channel 2.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		rules, err := generator.Collect(cfg)
		if err != nil {
			return err
		}
		s, err := sample.Create(rules)
		if err != nil {
			return err
		}

		path := previewPath
		if path == "" {
			if err := util.EnsureDir(constants.GetOutDir()); err != nil {
				return err
			}
			path = filepath.Join(constants.GetOutDir(), uuid.New().String()+".mid")
		}
		if err := midi.WriteMidiFile(path, s); err != nil {
			return err
		}
		logger.Info("Wrote preview", slog.String("path", path), slog.Int("rules", len(rules)))
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}
