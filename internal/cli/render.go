package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/FlagRing/internal/export"
	"github.com/piwi3910/FlagRing/internal/project"
)

type renderOpts struct {
	out        string
	background string
}

func newRenderCmd(g *globalOpts) *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Re-compose a layout saved with pack --layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("out") {
				opts.out = cfg.DefaultOutput
			}
			if !cmd.Flags().Changed("background") {
				opts.background = cfg.Background
			}
			return runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "composite image path (default from config)")
	cmd.Flags().StringVar(&opts.background, "background", "", "canvas color, e.g. #000000 or transparent")

	return cmd
}

func runRender(ctx context.Context, path string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	bg, err := export.ParseColor(opts.background)
	if err != nil {
		return err
	}
	file, err := project.LoadLayout(path)
	if err != nil {
		return err
	}
	logger.Debug("layout loaded", "version", file.Version, "created", file.CreatedAt, "pieces", len(file.Layout.Placements))

	prog := newProgress(logger)
	canvas, err := export.Compose(file.Layout, export.NewFileSource(), bg)
	if err != nil {
		return fmt.Errorf("compose: %w", err)
	}
	if err := export.SaveImage(opts.out, canvas); err != nil {
		return err
	}
	prog.done("Composed " + opts.out)

	printSuccess("Wrote %s", opts.out)
	printLayoutStats(file.Layout)
	return nil
}
