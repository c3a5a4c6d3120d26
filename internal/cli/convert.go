package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/colourcamp/pkg/colour"
)

type convertOptions struct {
	to     string
	asJSON bool
}

func newConvertCmd(a *app) *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert <colour>",
		Short: "Convert a colour between representations",
		Long: `Convert a colour between hex, RGB, HSL and fractional RGB.

Colours may be written as hex (#FF15AA, FF15AA, #F1A8), rgb(255, 21, 170),
rgba(255, 21, 170, 0.5), 255,21,170 or hsl(158 100% 54%).

Examples:
  # Show every representation
  colourcamp convert '#FF15AA'

  # Print the HSL form only
  colourcamp convert --to HSL 'rgb(255, 21, 170)'

  # Print the serialised form
  colourcamp convert --json --to RGB '#FF15AA'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConvert(cmd, args[0], opts)
		},
	}

	cmd.Flags().Var(newSpaceValue(&opts.to, ""), "to", "only print this representation")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the serialised form")
	return cmd
}

func (a *app) runConvert(cmd *cobra.Command, input string, opts convertOptions) error {
	out := cmd.OutOrStdout()

	c, err := colour.Parse(input, colour.WithPrecision(a.settings.MaxPrecision))
	if err != nil {
		return fmt.Errorf("invalid colour: %w", err)
	}
	a.logger.Debug("parsed colour", "input", input, "space", c.Space())

	preview := newPreviewer(out)
	if opts.to != "" || opts.asJSON {
		space := opts.to
		if space == "" {
			space = c.Space()
		}
		converted, err := c.ToColorSpace(space)
		if err != nil {
			return err
		}
		if opts.asJSON {
			data, err := colour.EncodeJSON(converted)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		}
		css := converted.CSS()
		fmt.Fprintln(out, preview.Label(converted, css, len(css)+2))
		return nil
	}

	table := NewTable([]string{"Space", "Value", "CSS", ""})
	for _, space := range colour.Spaces() {
		converted, err := c.ToColorSpace(space)
		if err != nil {
			return err
		}
		table.AddRow([]string{space, fmt.Sprint(converted.Native()), converted.CSS(), preview.Block(converted, defaultWidth)})
	}
	fmt.Fprint(out, table.Render())
	return nil
}
