package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/colourcamp/pkg/camp"
	"github.com/jmylchreest/colourcamp/pkg/colour"
)

// globalFlags holds the persistent flags of the root command.
type globalFlags struct {
	verbose   bool
	quiet     bool
	envFiles  []string
	space     string
	campPaths []string
}

func registerGlobalFlags(fs *pflag.FlagSet, f *globalFlags) {
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "enable verbose output")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "suppress non-error output")
	fs.StringSliceVar(&f.envFiles, "env-file", []string{".env"}, "environment files to read settings from")
	fs.Var(newSpaceValue(&f.space, ""), "space", fmt.Sprintf("color space colours are loaded into (%s)", strings.Join(colour.Spaces(), ", ")))
	fs.StringArrayVar(&f.campPaths, "camp-path", nil, "directory to search for camps (repeatable)")
}

// spaceValue is a pflag.Value restricted to registered colour spaces.
type spaceValue struct {
	value *string
}

func newSpaceValue(p *string, def string) *spaceValue {
	*p = def
	return &spaceValue{value: p}
}

func (s *spaceValue) String() string { return *s.value }

func (s *spaceValue) Set(v string) error {
	if err := colour.ValidateSpace(v); err != nil {
		return err
	}
	*s.value = v
	return nil
}

func (s *spaceValue) Type() string { return "space" }

// bucketValue is a repeatable pflag.Value restricted to camp bucket names.
type bucketValue struct {
	value *[]string
}

func (b *bucketValue) String() string { return strings.Join(*b.value, ",") }

func (b *bucketValue) Set(v string) error {
	for _, name := range strings.Split(v, ",") {
		if !slices.Contains(camp.BucketNames, name) {
			return fmt.Errorf("unknown bucket %q, expected one of %v", name, camp.BucketNames)
		}
		*b.value = append(*b.value, name)
	}
	return nil
}

func (b *bucketValue) Type() string { return "bucket" }

// addDirFlag registers the --dir flag used by camp commands.
func addDirFlag(fs *pflag.FlagSet, p *string, usage string) {
	fs.StringVarP(p, "dir", "d", "", usage)
}
