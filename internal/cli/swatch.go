package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/colourcamp/internal/swatch"
	"github.com/jmylchreest/colourcamp/pkg/camp"
)

type swatchOptions struct {
	dir        string
	out        string
	cellWidth  int
	cellHeight int
	noLabels   bool
}

func newSwatchCmd(a *app) *cobra.Command {
	var opts swatchOptions

	cmd := &cobra.Command{
		Use:   "swatch <camp>",
		Short: "Render PNG swatches for every object in a camp",
		Long: `Render one PNG per object of a camp into --out, named <bucket>-<name>.png.

Colours and palettes become a row of cells, scales a gradient and maps one
labelled row per key.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSwatch(cmd, args[0], opts)
		},
	}

	addDirFlag(cmd.Flags(), &opts.dir, "directory holding the camp")
	cmd.Flags().StringVarP(&opts.out, "out", "o", ".", "directory to write swatches to")
	cmd.Flags().IntVar(&opts.cellWidth, "cell-width", swatch.DefaultCellWidth, "cell width in pixels")
	cmd.Flags().IntVar(&opts.cellHeight, "cell-height", swatch.DefaultCellHeight, "cell height in pixels")
	cmd.Flags().BoolVar(&opts.noLabels, "no-labels", false, "do not draw hex labels")
	return cmd
}

func (a *app) runSwatch(cmd *cobra.Command, name string, opts swatchOptions) error {
	c, err := a.load(name, opts.dir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	render := swatch.Options{CellWidth: opts.cellWidth, CellHeight: opts.cellHeight, Labels: !opts.noLabels}
	written := 0
	for _, obj := range objects(c) {
		img, err := swatch.Render(obj.value, render)
		if err != nil {
			a.logger.Warn("skipping object", "bucket", obj.bucket, "name", obj.name, "error", err)
			continue
		}
		path := filepath.Join(opts.out, obj.bucket+"-"+obj.name+".png")
		if err := swatch.Save(path, img); err != nil {
			return err
		}
		a.logger.Debug("wrote swatch", "path", path)
		if !a.flags.quiet {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		written++
	}

	if written == 0 && !a.flags.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Camp %s has nothing to render\n", name)
	}
	return nil
}

type campObject struct {
	bucket string
	name   string
	value  any
}

// objects lists every object of c in bucket order.
func objects(c *camp.Camp) []campObject {
	out := make([]campObject, 0, c.Len())
	for name, item := range c.Colors.All() {
		out = append(out, campObject{camp.BucketColors, name, item})
	}
	for name, item := range c.Palettes.All() {
		out = append(out, campObject{camp.BucketPalettes, name, item})
	}
	for name, item := range c.Scales.All() {
		out = append(out, campObject{camp.BucketScales, name, item})
	}
	for name, item := range c.Maps.All() {
		out = append(out, campObject{camp.BucketMaps, name, item})
	}
	return out
}
