package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jsphweid/chordmap/config"
	"github.com/jsphweid/chordmap/constants"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	noteRoot   int

	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "chordmap",
	Short: "Chord palette table generator",
	Long: `chordmap builds a note-remapping table where every trigger note sends a
chord. Each pitch class maps to a scale degree, and every octave higher the
same pitch class sends the next inversion of that chord.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(logLevel)
		if err != nil {
			return err
		}
		logger = l
		slog.SetDefault(l)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Palette config file (YAML), defaults to $CHORDMAP_CONFIG")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().IntVar(&noteRoot, "note-root", constants.DefaultNoteRoot, "Absolute note every chord offset is resolved against")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info", "":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return constants.GetConfigPath()
}

// loadConfig applies flag overrides on top of the file or compiled-in
// palette.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(resolvedConfigPath(), logger)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("note-root") {
		cfg.NoteRoot = noteRoot
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
