// Package cli provides the command-line interface for colourcamp.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/colourcamp/internal/version"
	"github.com/jmylchreest/colourcamp/pkg/settings"
)

// app carries the state shared by every command: global flags, the
// resolved settings and the logger.
type app struct {
	flags    globalFlags
	settings settings.Settings
	logger   hclog.Logger
}

// NewRootCmd builds the colourcamp command tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: hclog.NewNullLogger()}

	rootCmd := &cobra.Command{
		Use:   "colourcamp",
		Short: "Manage colours, palettes, scales and maps",
		Long: `colourcamp converts colours between hex, RGB and HSL and organises
named colours, palettes, scales and maps into camps saved on disk.

Camps are searched for in the directories given by --camp-path, or
COLOURCAMP_CAMP_PATHS, falling back to the user config directory and
the current directory.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	registerGlobalFlags(rootCmd.PersistentFlags(), &a.flags)
	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConvertCmd(a))
	rootCmd.AddCommand(newCampCmd(a))
	rootCmd.AddCommand(newSwatchCmd(a))
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// setup resolves the logger and settings once flags are parsed.
func (a *app) setup(cmd *cobra.Command) error {
	a.logger = newLogger(a.flags.verbose, a.flags.quiet, cmd.ErrOrStderr())

	cfg, err := settings.NewBuilder().
		WithEnvFiles(a.flags.envFiles...).
		WithEnvConfig().
		Build()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if a.flags.space != "" {
		cfg.DefaultColorSpace = a.flags.space
	}
	if len(a.flags.campPaths) > 0 {
		cfg.CampPaths = a.flags.campPaths
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.settings = cfg
	a.logger.Debug("resolved settings", "space", cfg.DefaultColorSpace, "camp_paths", cfg.CampPaths, "precision", cfg.MaxPrecision)
	return nil
}

// newLogger returns the command logger: Debug when verbose, Off when quiet
// and Warn otherwise.
func newLogger(verbose, quiet bool, w io.Writer) hclog.Logger {
	level := hclog.Warn
	switch {
	case quiet:
		level = hclog.Off
	case verbose:
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "colourcamp",
		Output: w,
		Level:  level,
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
