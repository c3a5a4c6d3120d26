package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/colourcamp/pkg/camp"
)

type campExportOptions struct {
	dir       string
	overwrite bool
}

func newCampExportCmd(a *app) *cobra.Command {
	var opts campExportOptions

	cmd := &cobra.Command{
		Use:   "export <name> <file.tar.xz>",
		Short: "Write a camp to a tar.xz archive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCampExport(cmd, args[0], args[1], opts)
		},
	}

	addDirFlag(cmd.Flags(), &opts.dir, "directory holding the camp")
	cmd.Flags().BoolVar(&opts.overwrite, "overwrite", false, "replace an existing archive")
	return cmd
}

func (a *app) runCampExport(cmd *cobra.Command, name, path string, opts campExportOptions) error {
	c, err := camp.LoadStored(a.settings, name, opts.dir, camp.WithLogger(a.logger))
	if err != nil {
		return fmt.Errorf("failed to load camp: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !opts.overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644) // #nosec G304 - user supplied output path
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}

	writeErr := c.WriteArchive(f)
	closeErr := f.Close()
	if writeErr != nil {
		_ = os.Remove(path)
		return writeErr
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close archive: %w", closeErr)
	}

	if !a.flags.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported camp %s to %s\n", name, path)
	}
	return nil
}

type campImportOptions struct {
	dir       string
	overwrite bool
}

func newCampImportCmd(a *app) *cobra.Command {
	var opts campImportOptions

	cmd := &cobra.Command{
		Use:   "import <file.tar.xz>",
		Short: "Extract camps from a tar.xz archive",
		Long: `Extract camps from a tar.xz archive into --dir, or the first camp path.

Entries outside the target directory, links and oversized files are rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCampImport(cmd, args[0], opts)
		},
	}

	addDirFlag(cmd.Flags(), &opts.dir, "directory to extract into")
	cmd.Flags().BoolVar(&opts.overwrite, "overwrite", false, "replace existing files")
	return cmd
}

func (a *app) runCampImport(cmd *cobra.Command, path string, opts campImportOptions) error {
	dir, err := a.targetDir(opts.dir)
	if err != nil {
		return err
	}

	f, err := os.Open(path) // #nosec G304 - user supplied archive path
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	names, err := camp.ExtractArchive(f, dir, opts.overwrite)
	if err != nil {
		return err
	}
	a.logger.Debug("extracted archive", "path", path, "dir", dir, "camps", names)

	if !a.flags.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %s into %s\n", strings.Join(names, ", "), dir)
	}
	return nil
}
