package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/colourcamp/pkg/camp"
	"github.com/jmylchreest/colourcamp/pkg/colour"
)

func newCampCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "camp",
		Short: "Create, edit and search camps",
		Long: `A camp is a named collection of colours, palettes, scales and maps.

Camps are saved as a directory holding camp_info.json and one JSON file per
object, or as a single <name>.json file.`,
	}

	cmd.AddCommand(newCampNewCmd(a))
	cmd.AddCommand(newCampAddCmd(a))
	cmd.AddCommand(newCampShowCmd(a))
	cmd.AddCommand(newCampFindCmd(a))
	cmd.AddCommand(newCampQueryCmd(a))
	cmd.AddCommand(newCampExportCmd(a))
	cmd.AddCommand(newCampImportCmd(a))
	return cmd
}

type campNewOptions struct {
	dir         string
	description string
	singleFile  bool
	overwrite   bool
}

func newCampNewCmd(a *app) *cobra.Command {
	var opts campNewOptions

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create an empty camp",
		Long: `Create an empty camp.

Without --dir the camp is created in the first camp path, which is created
if it does not exist yet.

Examples:
  colourcamp camp new brand --description "Brand colours"
  colourcamp camp new scratch --dir . --single-file`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCampNew(cmd, args[0], opts)
		},
	}

	addDirFlag(cmd.Flags(), &opts.dir, "directory to create the camp in")
	cmd.Flags().StringVar(&opts.description, "description", "", "camp description")
	cmd.Flags().BoolVar(&opts.singleFile, "single-file", false, "save the camp as a single <name>.json file")
	cmd.Flags().BoolVar(&opts.overwrite, "overwrite", false, "replace an existing camp of the same name")
	return cmd
}

func (a *app) runCampNew(cmd *cobra.Command, name string, opts campNewOptions) error {
	c, err := camp.New(colour.Info{Name: name, Description: opts.description}, camp.WithLogger(a.logger))
	if err != nil {
		return err
	}

	dir, err := a.targetDir(opts.dir)
	if err != nil {
		return err
	}
	if opts.singleFile {
		err = c.SaveFile(dir, opts.overwrite)
	} else {
		err = c.Save(dir, opts.overwrite)
	}
	if err != nil {
		return fmt.Errorf("failed to save camp: %w", err)
	}

	if !a.flags.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Created camp %s in %s\n", name, dir)
	}
	return nil
}

// targetDir returns dir, or the first camp path when dir is empty. The
// first camp path is created on demand.
func (a *app) targetDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	if len(a.settings.CampPaths) == 0 {
		return "", fmt.Errorf("no camp path configured, use --dir or --camp-path")
	}
	dir = a.settings.CampPaths[0]
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create camp path: %w", err)
	}
	return dir, nil
}

// load reads a camp with the command's settings and logger.
func (a *app) load(name, dir string) (*camp.Camp, error) {
	c, err := camp.Load(a.settings, name, dir, "", camp.WithLogger(a.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to load camp: %w", err)
	}
	return c, nil
}
