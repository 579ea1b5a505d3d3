package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/chordmap/chord"
	"github.com/jsphweid/chordmap/config"
	"github.com/jsphweid/chordmap/generator"
	"github.com/jsphweid/chordmap/model"
	"github.com/jsphweid/chordmap/note"
	"github.com/jsphweid/chordmap/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Creates a report",
	Long:  `Summarizes the generated table: rule count, note range and voicings per pitch class`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		r, err := analyze(cfg)
		if err != nil {
			return err
		}
		r.print(cmd.OutOrStdout())
		return nil
	},
}

type degreeReport struct {
	name      string
	label     string
	size      int
	voicings  []string
	numUnique int
}

type tableReport struct {
	noteRoot  model.Note
	numRules  int
	numNotes  int
	lowest    model.Note
	highest   model.Note
	perDegree map[model.PitchClass]*degreeReport
}

func analyze(cfg *config.Config) (tableReport, error) {
	rules, err := generator.Collect(cfg)
	if err != nil {
		return tableReport{}, err
	}

	report := tableReport{
		noteRoot:  model.Note(cfg.NoteRoot),
		numRules:  len(rules),
		perDegree: make(map[model.PitchClass]*degreeReport),
	}
	seen := make(map[model.PitchClass]map[string]bool)
	for i, rule := range rules {
		for j, n := range rule.Outputs {
			if (i == 0 && j == 0) || n < report.lowest {
				report.lowest = n
			}
			if (i == 0 && j == 0) || n > report.highest {
				report.highest = n
			}
		}
		report.numNotes += len(rule.Outputs)

		pc := rule.Trigger.PitchClass()
		dr, ok := report.perDegree[pc]
		if !ok {
			dr = &degreeReport{name: cfg.Names[pc], label: rule.Degree, size: len(rule.Outputs)}
			report.perDegree[pc] = dr
			seen[pc] = make(map[string]bool)
		}
		dr.voicings = append(dr.voicings, strings.Join(rule.OutputNames, " "))
		key := chord.CreateChordKey(rule.Outputs)
		if !seen[pc][key] {
			seen[pc][key] = true
			dr.numUnique++
		}
	}
	return report, nil
}

func (r tableReport) print(w io.Writer) {
	fmt.Fprintf(w, "noteRoot: %v\n", note.Name(r.noteRoot))
	fmt.Fprintf(w, "numRules: %v\n", r.numRules)
	fmt.Fprintf(w, "numNotes: %v\n", r.numNotes)
	if r.numRules > 0 {
		fmt.Fprintf(w, "range: %v (%d) .. %v (%d), span %d semitones\n",
			note.Name(r.lowest), r.lowest, note.Name(r.highest), r.highest,
			util.Max(r.highest, r.lowest)-util.Min(r.highest, r.lowest))
	}
	for _, pc := range util.GetKeys(r.perDegree) {
		dr := r.perDegree[pc]
		fmt.Fprintf(w, "%-3s %-4s %d notes, %d/%d distinct voicings\n",
			dr.name, dr.label, dr.size, dr.numUnique, len(dr.voicings))
		for _, v := range dr.voicings {
			fmt.Fprintf(w, "\t%s\n", v)
		}
	}
}
