package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/FlagRing/internal/model"
	"github.com/piwi3910/FlagRing/internal/project"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. The main
// package calls it with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// globalOpts holds flags shared by every command.
type globalOpts struct {
	verbose    bool
	configPath string
}

// loadConfig reads the user configuration, falling back to defaults when the
// file does not exist.
func (g *globalOpts) loadConfig() (model.AppConfig, error) {
	cfg, err := project.LoadAppConfig(g.path())
	if err != nil {
		return model.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (g *globalOpts) path() string {
	if g.configPath != "" {
		return g.configPath
	}
	return project.DefaultConfigPath()
}

// Execute runs the flagring CLI with ctx, which the caller cancels on
// interrupt.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	g := &globalOpts{}

	root := &cobra.Command{
		Use:           "flagring",
		Short:         "FlagRing packs flag images into a compact ring",
		Long:          `FlagRing places equal-height rectangular images around a common center, growing a bounding circle until every image fits, and writes the result as one composite image.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if g.verbose {
				level = charmlog.DebugLevel
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLogger(ctx, newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("flagring %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default ~/.flagring/config.json)")

	root.AddCommand(newPackCmd(g))
	root.AddCommand(newCompareCmd(g))
	root.AddCommand(newRenderCmd(g))
	root.AddCommand(newConfigCmd(g))

	return root
}
