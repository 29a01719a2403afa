package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/FlagRing/internal/model"
	"github.com/piwi3910/FlagRing/internal/project"
)

func newConfigCmd(g *globalOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the flagring configuration file",
	}
	cmd.AddCommand(newConfigInitCmd(g))
	cmd.AddCommand(newConfigShowCmd(g))
	return cmd
}

func newConfigInitCmd(g *globalOpts) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := g.path()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := project.SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			printSuccess("Wrote %s", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")
	return cmd
}

func newConfigShowCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			printConfig(g.path(), cfg)
			return nil
		},
	}
}

func printConfig(path string, cfg model.AppConfig) {
	if _, err := os.Stat(path); err != nil {
		printWarning("%s not found, showing defaults", path)
	} else {
		printInfo("%s", path)
	}
	printNewline()

	maxRadius := "auto"
	if cfg.DefaultMaxRadius > 0 {
		maxRadius = strconv.FormatFloat(cfg.DefaultMaxRadius, 'f', -1, 64)
	}
	printKeyValue("Step", strconv.FormatFloat(cfg.DefaultGrowthStep, 'f', -1, 64))
	printKeyValue("Max radius", maxRadius)
	printKeyValue("Background", cfg.Background)
	printKeyValue("Output", cfg.DefaultOutput)
	printKeyValue("PDF", strconv.FormatBool(cfg.ExportPDF))
	printKeyValue("Labels", strconv.FormatBool(cfg.ExportLabels))
	if len(cfg.RecentLayouts) > 0 {
		printKeyValue("Recent", strings.Join(cfg.RecentLayouts, "\n"+strings.Repeat(" ", 13)))
	}
}
