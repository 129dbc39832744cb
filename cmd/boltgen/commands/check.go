package commands

import (
	"errors"

	"github.com/decker502/lightning/internal/printer"
	"github.com/decker502/lightning/pkg/config"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [CONFIG]",
		Short: "Validate a lightning config file",
		Long: `Load a lightning config file, merge it over the built-in defaults
and validate every field.

Without an argument the default path data/lightning.yaml is checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultConfigPath
			if len(args) > 0 {
				path = args[0]
			}
			return runCheck(path)
		},
	}
}

func runCheck(path string) error {
	printer.Step("Checking %s\n", path)

	cfg, err := config.LoadLightningConfig(path)
	if err != nil {
		if errors.Is(err, config.ErrInvalidConfig) {
			return printer.Error("invalid config", err.Error(), []string{
				"Remove the field to fall back to its default value",
			})
		}
		return printer.Error("failed to load config", err.Error(), []string{
			"Check that the file exists and is valid YAML",
		})
	}

	printer.Success("%s is valid\n", path)
	printer.Info("  pool capacity:  %d\n", cfg.Pool.Capacity)
	printer.Info("  bolt:           sway %g, density %g, taper %g, thickness %g\n",
		cfg.Bolt.Sway, cfg.Bolt.Density, cfg.Bolt.TaperStart, cfg.Bolt.Thickness)
	printer.Info("  think interval: %d ms (%d ticks at %d TPS)\n",
		cfg.Loop.ThinkIntervalMs, cfg.ThinkTicks(), cfg.Loop.TPS)
	printer.Info("  window:         %dx%d %q\n", cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)

	if cfg.Textures.Middle == "" && cfg.Textures.Cap == "" {
		printer.Warning("no textures configured, procedural textures will be used\n")
	}
	return nil
}
