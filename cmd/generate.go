package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/jsphweid/chordmap/config"
	"github.com/jsphweid/chordmap/file"
	"github.com/jsphweid/chordmap/generator"
	"github.com/jsphweid/chordmap/table"
	"github.com/spf13/cobra"
)

var (
	outputPath string
	watchMode  bool
)

func init() {
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the table to this file instead of stdout")
	generateCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Regenerate the output file whenever the config file changes")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Prints the chord table",
	Long:  `Prints the chord table in the note-remapping configuration syntax`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if outputPath == "" {
			if watchMode {
				return errors.New("--watch needs --output")
			}
			return generate(cmd.OutOrStdout(), cfg)
		}

		if err := generateFile(outputPath, cfg); err != nil {
			return err
		}
		if !watchMode {
			return nil
		}

		path := resolvedConfigPath()
		if path == "" {
			return errors.New("--watch needs a config file")
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watch(ctx, path, func() {
			cfg, err := loadConfig(cmd)
			if err != nil {
				logger.Error("Could not reload config", slog.String("path", path), slog.String("error", err.Error()))
				return
			}
			if err := generateFile(outputPath, cfg); err != nil {
				logger.Error("Could not regenerate table", slog.String("error", err.Error()))
			}
		})
	},
}

func generate(w io.Writer, cfg *config.Config) error {
	g, err := generator.New(cfg)
	if err != nil {
		return err
	}
	n, err := table.Render(w, cfg.Header, cfg.NamePrefix, g.Rules())
	if err != nil {
		return err
	}
	logger.Debug("Generated table", slog.Int("rules", n))
	return nil
}

func generateFile(path string, cfg *config.Config) error {
	err := file.WriteAtomic(path, func(w io.Writer) error {
		return generate(w, cfg)
	})
	if err != nil {
		return err
	}
	logger.Info("Wrote table", slog.String("path", path), slog.Int("rules", generator.Len(cfg)))
	return nil
}

const watchDebounce = 200 * time.Millisecond

// configWatcher watches the directory of a config file because editors often
// save by replacing the file.
type configWatcher struct {
	w      *fsnotify.Watcher
	target string
}

func newConfigWatcher(path string) (*configWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	return &configWatcher{w: w, target: filepath.Clean(path)}, nil
}

// run calls regenerate, debounced, after every change to the target until
// ctx is done. A regenerate still pending at that point is dropped.
func (cw *configWatcher) run(ctx context.Context, regenerate func()) error {
	defer cw.w.Close()

	debounced := debounce.New(watchDebounce)
	defer debounced(func() {})

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-cw.w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != cw.target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				logger.Debug("Config changed", slog.String("op", ev.Op.String()))
				debounced(regenerate)
			}
		case err, ok := <-cw.w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", slog.String("error", err.Error()))
		}
	}
}

func watch(ctx context.Context, path string, regenerate func()) error {
	cw, err := newConfigWatcher(path)
	if err != nil {
		return err
	}
	logger.Info("Watching config", slog.String("path", path))
	return cw.run(ctx, regenerate)
}
