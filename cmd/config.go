package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "init-config <path>",
	Short: "Writes the current palette as a config file",
	Long: `Writes the palette in effect (compiled-in defaults, or the loaded config with
flag overrides) to a YAML file that can be edited and passed back with --config.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.SaveToFile(args[0]); err != nil {
			return err
		}
		logger.Info("Wrote config", slog.String("path", args[0]))
		return nil
	},
}
