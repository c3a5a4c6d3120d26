package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/colourcamp/pkg/camp"
	"github.com/jmylchreest/colourcamp/pkg/colour"
	"github.com/jmylchreest/colourcamp/pkg/group"
)

// Object kinds accepted by camp add.
const (
	kindColour  = "colour"
	kindPalette = "palette"
	kindScale   = "scale"
	kindMap     = "map"
)

type campAddOptions struct {
	dir         string
	description string
	stops       []float64
	existsOK    bool
	overwrite   bool
}

func newCampAddCmd(a *app) *cobra.Command {
	var opts campAddOptions

	cmd := &cobra.Command{
		Use:   "add <camp> colour|palette|scale|map <name> <values...>",
		Short: "Add an object to a camp",
		Long: `Add a colour, palette, scale or map to a camp and save it.

Map values are written as key=colour.

Examples:
  colourcamp camp add brand colour pink '#FF15AA'
  colourcamp camp add brand palette warm '#FF15AA' 'rgb(255, 170, 21)'
  colourcamp camp add brand scale heat '#000000' '#FF0000' '#FFFF00' --stops 0,0.7,1
  colourcamp camp add brand map roles accent=#FF15AA warning=#FFAA15`,
		Args: cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCampAdd(cmd, args[0], args[1], args[2], args[3:], opts)
		},
	}

	addDirFlag(cmd.Flags(), &opts.dir, "directory holding the camp")
	cmd.Flags().StringVar(&opts.description, "description", "", "object description")
	cmd.Flags().Float64SliceVar(&opts.stops, "stops", nil, "scale stops, one per colour, ascending within [0,1]")
	cmd.Flags().BoolVar(&opts.existsOK, "exists-ok", false, "keep an existing object of the same name instead of failing")
	cmd.Flags().BoolVar(&opts.overwrite, "overwrite", false, "replace saved files that differ")
	return cmd
}

func (a *app) runCampAdd(cmd *cobra.Command, campName, kind, name string, values []string, opts campAddOptions) error {
	dir, single, err := camp.Locate(a.settings, campName, opts.dir)
	if err != nil {
		return err
	}
	c, err := camp.LoadStored(a.settings, campName, dir, camp.WithLogger(a.logger))
	if err != nil {
		return fmt.Errorf("failed to load camp: %w", err)
	}

	info := colour.Info{Name: name, Description: opts.description}
	obj, err := buildObject(kind, info, values, opts.stops)
	if err != nil {
		return err
	}
	before := c.Len()
	if err := c.AddObjects([]any{obj}, opts.existsOK); err != nil {
		return err
	}
	if c.Len() == before {
		if !a.flags.quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Skipped %s %s: %s already has one by that name\n", kind, name, campName)
		}
		return nil
	}

	if single {
		err = c.SaveFile(dir, true)
	} else {
		err = c.Save(dir, opts.overwrite)
	}
	if err != nil {
		return fmt.Errorf("failed to save camp: %w", err)
	}

	if !a.flags.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s to %s\n", kind, name, campName)
	}
	return nil
}

// buildObject parses values into the named object kind.
func buildObject(kind string, info colour.Info, values []string, stops []float64) (any, error) {
	switch kind {
	case kindColour:
		if len(values) != 1 {
			return nil, fmt.Errorf("a colour takes exactly one value, got %d", len(values))
		}
		return colour.Parse(values[0], colour.WithInfo(info))
	case kindPalette:
		colors, err := parseColours(values)
		if err != nil {
			return nil, err
		}
		return group.NewPalette(colors, group.WithInfo(info))
	case kindScale:
		colors, err := parseColours(values)
		if err != nil {
			return nil, err
		}
		return group.NewScale(colors, stops, group.WithInfo(info))
	case kindMap:
		entries := make([]group.Entry, 0, len(values))
		for _, v := range values {
			key, value, ok := strings.Cut(v, "=")
			if !ok {
				return nil, fmt.Errorf("map values must be key=colour, got %q", v)
			}
			c, err := colour.Parse(value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			entries = append(entries, group.Entry{Key: key, Color: c})
		}
		return group.NewMap(entries, group.WithInfo(info))
	}
	return nil, fmt.Errorf("unknown object kind %q, expected colour, palette, scale or map", kind)
}

func parseColours(values []string) ([]colour.Color, error) {
	colors := make([]colour.Color, len(values))
	for i, v := range values {
		c, err := colour.Parse(v)
		if err != nil {
			return nil, err
		}
		colors[i] = c
	}
	return colors, nil
}
