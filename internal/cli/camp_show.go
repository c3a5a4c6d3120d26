package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/colourcamp/pkg/camp"
	"github.com/jmylchreest/colourcamp/pkg/colour"
	"github.com/jmylchreest/colourcamp/pkg/group"
)

func newCampShowCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "List the objects in a camp",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.load(args[0], dir)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), campTable(c, newPreviewer(cmd.OutOrStdout())).Render())
			return nil
		},
	}

	addDirFlag(cmd.Flags(), &dir, "directory holding the camp")
	return cmd
}

// campTable lists every object of c, one row each.
func campTable(c *camp.Camp, preview previewer) *Table {
	table := NewTable([]string{"Bucket", "Name", "Type", "Value", ""})
	table.SetColumnMaxWidth(3, 48)

	for name, item := range c.Colors.All() {
		table.AddRow([]string{camp.BucketColors, name, item.Space(), item.CSS(), preview.Block(item, 4)})
	}
	addGroupRows(table, c.Palettes, preview)
	addGroupRows(table, c.Scales, preview)
	addGroupRows(table, c.Maps, preview)
	return table
}

func addGroupRows[T group.Group](table *Table, b *camp.Bucket[T], preview previewer) {
	for name, g := range b.All() {
		table.AddRow([]string{b.Kind(), name, g.Type(), groupSummary(g), preview.Group(g)})
	}
}

// groupSummary describes a group's members in one line.
func groupSummary(g group.Group) string {
	switch v := g.(type) {
	case *group.Map:
		parts := make([]string, 0, v.Len())
		for key, c := range v.All() {
			parts = append(parts, key+"="+c.Hex())
		}
		return strings.Join(parts, " ")
	case *group.Scale:
		parts := make([]string, 0, v.Len())
		for stop, c := range v.All() {
			parts = append(parts, c.Hex()+"@"+strconv.FormatFloat(stop, 'g', -1, 64))
		}
		return strings.Join(parts, " ")
	}
	return hexList(g.Colors())
}

func hexList(colors []colour.Color) string {
	parts := make([]string, len(colors))
	for i, c := range colors {
		parts[i] = c.Hex()
	}
	return strings.Join(parts, " ")
}

func newCampFindCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "find",
		Short: "List the camps in the camp paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			found, err := camp.Find(a.settings, dir, camp.WithLogger(a.logger))
			if err != nil {
				return err
			}

			paths := a.settings.CampPaths
			if dir != "" {
				paths = []string{dir}
			}
			table := NewTable([]string{"Path", "Camps"})
			table.SetColumnMaxWidth(1, 60)
			for _, p := range paths {
				names, ok := found[p]
				if !ok {
					continue
				}
				table.AddRow([]string{p, strings.Join(names, " ")})
			}
			fmt.Fprint(cmd.OutOrStdout(), table.Render())
			return nil
		},
	}

	addDirFlag(cmd.Flags(), &dir, "only search this directory")
	return cmd
}

type campQueryOptions struct {
	dir     string
	keys    bool
	values  bool
	literal bool
	buckets []string
}

func newCampQueryCmd(a *app) *cobra.Command {
	var opts campQueryOptions

	cmd := &cobra.Command{
		Use:   "query <name> <pattern>",
		Short: "Search object metadata in a camp",
		Long: `Search the metadata keys and values of every object in a camp.

The pattern is a regular expression matched at the start of each key or
value, or a plain substring with --literal.

Examples:
  colourcamp camp query brand 'mood|theme' --keys
  colourcamp camp query brand summer --values --bucket palettes`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.load(args[0], opts.dir)
			if err != nil {
				return err
			}
			found, err := c.Query(args[1], camp.QueryOptions{
				Keys:    opts.keys,
				Values:  opts.values,
				Buckets: opts.buckets,
				Literal: opts.literal,
			})
			if err != nil {
				return err
			}

			table := NewTable([]string{"Bucket", "Name"})
			for _, bucket := range camp.BucketNames {
				for _, name := range found[bucket] {
					table.AddRow([]string{bucket, name})
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), table.Render())
			return nil
		},
	}

	addDirFlag(cmd.Flags(), &opts.dir, "directory holding the camp")
	cmd.Flags().BoolVar(&opts.keys, "keys", false, "match metadata keys")
	cmd.Flags().BoolVar(&opts.values, "values", false, "match metadata values")
	cmd.Flags().BoolVar(&opts.literal, "literal", false, "match the pattern as a plain substring")
	cmd.Flags().Var(&bucketValue{value: &opts.buckets}, "bucket", "only search these buckets (repeatable)")
	return cmd
}
