package cli

import (
	"context"
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/FlagRing/internal/engine"
	"github.com/piwi3910/FlagRing/internal/export"
	"github.com/piwi3910/FlagRing/internal/importer"
	"github.com/piwi3910/FlagRing/internal/model"
	"github.com/piwi3910/FlagRing/internal/project"
)

// packOpts holds the command-line flags for the pack command.
type packOpts struct {
	manifest   string  // CSV, XLSX or DXF manifest instead of image paths
	out        string  // composite image path
	count      int     // number of independent layouts
	seed       int64   // 0 draws a fresh seed per layout
	step       float64 // growth step override
	maxRadius  float64 // radius limit override
	background string  // canvas color override
	pdf        bool    // write a PDF layout sheet
	labels     bool    // write a QR label sheet
	xlsx       bool    // write a placement workbook
	dxf        bool    // write a DXF drawing
	layout     string  // save the layout as JSON for re-rendering
	debugDir   string  // write one snapshot per placement
}

func newPackCmd(g *globalOpts) *cobra.Command {
	var opts packOpts

	cmd := &cobra.Command{
		Use:   "pack [paths...]",
		Short: "Pack images into a ring and write the composite",
		Long: `Pack loads the given image files and directories (or the pieces listed in a
manifest), arranges them around a common center and writes the composite.
All images must share the same height.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			applyPackConfig(cmd, &opts, cfg)
			return runPack(cmd.Context(), g, cfg, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.manifest, "manifest", "m", "", "CSV, XLSX or DXF manifest listing the pieces")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "composite image path (default from config)")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 1, "number of layouts to produce")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().Float64Var(&opts.step, "step", 0, "radius growth step in pixels")
	cmd.Flags().Float64Var(&opts.maxRadius, "max-radius", 0, "give up past this radius (0 derives a limit)")
	cmd.Flags().StringVar(&opts.background, "background", "", "canvas color, e.g. #000000 or transparent")
	cmd.Flags().BoolVar(&opts.pdf, "pdf", false, "also write a PDF layout sheet")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "also write a QR label sheet")
	cmd.Flags().BoolVar(&opts.xlsx, "xlsx", false, "also write a placement workbook")
	cmd.Flags().BoolVar(&opts.dxf, "dxf", false, "also write a DXF drawing")
	cmd.Flags().StringVar(&opts.layout, "layout", "", "save the layout as JSON for later rendering")
	cmd.Flags().StringVar(&opts.debugDir, "debug-dir", "", "write a snapshot after every placement")

	return cmd
}

// applyPackConfig fills options the user did not set from the config file.
func applyPackConfig(cmd *cobra.Command, opts *packOpts, cfg model.AppConfig) {
	if !cmd.Flags().Changed("out") {
		opts.out = cfg.DefaultOutput
	}
	if !cmd.Flags().Changed("step") {
		opts.step = cfg.DefaultGrowthStep
	}
	if !cmd.Flags().Changed("max-radius") {
		opts.maxRadius = cfg.DefaultMaxRadius
	}
	if !cmd.Flags().Changed("background") {
		opts.background = cfg.Background
	}
	if !cmd.Flags().Changed("pdf") {
		opts.pdf = cfg.ExportPDF
	}
	if !cmd.Flags().Changed("labels") {
		opts.labels = cfg.ExportLabels
	}
}

// settings builds the packer settings for the i-th layout. A fixed seed is
// offset per layout so every layout differs but stays reproducible.
func (o packOpts) settings(i int) model.PackSettings {
	s := model.DefaultSettings()
	if o.step > 0 {
		s.GrowthStep = o.step
	}
	s.MaxRadius = o.maxRadius
	if o.seed != 0 {
		s.Seed = o.seed + int64(i)
	}
	return s
}

func runPack(ctx context.Context, g *globalOpts, cfg model.AppConfig, paths []string, opts packOpts) error {
	logger := loggerFromContext(ctx)

	if opts.count < 1 {
		return fmt.Errorf("--count must be at least 1, got %d", opts.count)
	}
	if opts.out == "" {
		return fmt.Errorf("no output path: pass --out or set default_output in the config")
	}
	bg, err := export.ParseColor(opts.background)
	if err != nil {
		return err
	}

	set, err := loadInputs(logger, paths, opts.manifest)
	if err != nil {
		return err
	}
	printInfo("Packing %s pieces", StyleNumber.Render(strconv.Itoa(set.Len())))

	savedLayout := false
	for i := 0; i < opts.count; i++ {
		settings := opts.settings(i)
		l, err := packOne(ctx, logger, set, settings, bg, opts, i)
		if err != nil {
			return err
		}
		if err := writeOutputs(logger, set, l, bg, opts, i); err != nil {
			return err
		}
		if opts.layout != "" {
			path := numberedPath(opts.layout, i, opts.count)
			settings.Seed = l.Seed
			if err := project.SaveLayout(path, l, settings); err != nil {
				return err
			}
			printFile(path)
			if abs, err := filepath.Abs(path); err == nil {
				cfg.AddRecentLayout(abs)
			}
			savedLayout = true
		}
		printLayoutStats(l)
	}

	if savedLayout {
		if err := project.SaveAppConfig(g.path(), cfg); err != nil {
			logger.Warn("could not record recent layout", "err", err)
		}
	}
	return nil
}

// packOne runs the packer once, with a snapshot tracer when requested.
func packOne(ctx context.Context, logger *log.Logger, set *importer.ImageSet, settings model.PackSettings, bg color.Color, opts packOpts, i int) (model.Layout, error) {
	engineOpts := []engine.Option{engine.WithLogger(logger)}
	if opts.debugDir != "" {
		dir := opts.debugDir
		if opts.count > 1 {
			dir = filepath.Join(dir, strconv.Itoa(i))
		}
		tracer, err := export.NewDebugTracer(dir, set, bg)
		if err != nil {
			return model.Layout{}, err
		}
		engineOpts = append(engineOpts, engine.WithTracer(tracer))
		logger.Debug("writing snapshots", "dir", dir)
	}

	prog := newProgress(logger)
	l, err := engine.New(settings, engineOpts...).Pack(ctx, set.Pieces)
	if err != nil {
		return model.Layout{}, fmt.Errorf("pack: %w", err)
	}
	prog.done(fmt.Sprintf("Packed %d pieces", len(l.Placements)))
	return l, nil
}

// writeOutputs writes the composite and every requested export for the
// i-th layout.
func writeOutputs(logger *log.Logger, set *importer.ImageSet, l model.Layout, bg color.Color, opts packOpts, i int) error {
	out := numberedPath(opts.out, i, opts.count)

	prog := newProgress(logger)
	canvas, err := export.Compose(l, set, bg)
	if err != nil {
		return fmt.Errorf("compose: %w", err)
	}
	if err := export.SaveImage(out, canvas); err != nil {
		return err
	}
	prog.done("Composed " + out)
	printSuccess("Wrote %s", out)

	exports := []struct {
		enabled bool
		path    string
		write   func(string, model.Layout) error
	}{
		{opts.pdf, siblingPath(out, "", ".pdf"), export.ExportPDF},
		{opts.labels, siblingPath(out, "_labels", ".pdf"), export.ExportLabels},
		{opts.xlsx, siblingPath(out, "", ".xlsx"), export.ExportXLSX},
		{opts.dxf, siblingPath(out, "", ".dxf"), export.ExportDXF},
	}
	for _, e := range exports {
		if !e.enabled {
			continue
		}
		if err := e.write(e.path, l); err != nil {
			return fmt.Errorf("export %s: %w", e.path, err)
		}
		printFile(e.path)
	}
	return nil
}

func printLayoutStats(l model.Layout) {
	printKeyValue("Radius", fmt.Sprintf("%.1f", l.Radius))
	printKeyValue("Canvas", fmt.Sprintf("%d x %d", l.CanvasSide(), l.CanvasSide()))
	printKeyValue("Fill", fmt.Sprintf("%.1f%%", l.Fill()))
	printKeyValue("Rounds", strconv.Itoa(l.Rounds))
	printKeyValue("Seed", strconv.FormatInt(l.Seed, 10))
	printNewline()
}
