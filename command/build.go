package command

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/hfget/hfget"
	"github.com/hfget/hfget/buildozer"
	"github.com/hfget/hfget/pipeline"
	"github.com/spf13/cobra"
)

// newBuild returns the command which acts as the
// entrypoint for `hfget build`.
func newBuild() *cobra.Command {
	var (
		dir       string
		specPath  string
		profile   string
		skipDeps  bool
		verify    bool
		cleanOnly bool
		cmd       = &cobra.Command{
			Use:           "build",
			Short:         "Package the project directory into an installable .apk",
			Version:       hfget.SemVer(),
			SilenceErrors: true,
			SilenceUsage:  true,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()

				spec, err := loadSpec(dir, specPath)
				if err != nil {
					return err
				}

				p := &pipeline.Pipeline{
					Dir:            dir,
					Spec:           spec,
					Profile:        profile,
					SkipSystemDeps: skipDeps,
					Verify:         verify,
					Output:         cmd.ErrOrStderr(),
				}

				if cleanOnly {
					return p.Clean(ctx)
				}

				result, err := p.Run(ctx)
				if err != nil {
					color.New(color.FgRed, color.Bold).Fprintln(cmd.ErrOrStderr(), "build failed")
					return err
				}

				color.New(color.FgGreen, color.Bold).Fprintln(cmd.ErrOrStderr(), "build succeeded")

				fmt.Fprintln(cmd.OutOrStdout(), result.Artifact)
				if verify && result.Fingerprints != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", result.Package, result.Fingerprints)
				}

				return nil
			},
		}
	)

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory for hfget build")
	cmd.Flags().StringVar(&specPath, "spec", "", "path to the spec, defaulting to "+buildozer.SpecName+" in the project directory")
	cmd.Flags().StringVar(&profile, "profile", "debug", "build profile, debug or release")
	cmd.Flags().BoolVar(&skipDeps, "skip-deps", false, "skip installing OS packages")
	cmd.Flags().BoolVar(&verify, "verify", false, "decode the built .apk and check it against the spec")
	cmd.Flags().BoolVar(&cleanOnly, "clean", false, "remove build state and exit")

	return cmd
}

// loadSpec reads the spec from specPath, falling back to
// the default spec when the project directory has none.
func loadSpec(dir, specPath string) (*buildozer.Spec, error) {
	if specPath == "" {
		specPath = filepath.Join(dir, buildozer.SpecName)
	}

	f, err := os.Open(specPath)
	if errors.Is(err, fs.ErrNotExist) {
		return buildozer.DefaultSpec(), nil
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	return buildozer.DecodeSpec(f)
}
