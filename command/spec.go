package command

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hfget/hfget"
	"github.com/hfget/hfget/buildozer"
	"github.com/spf13/cobra"
)

// newSpec returns the command which acts as the
// entrypoint for `hfget spec`.
func newSpec() *cobra.Command {
	var (
		dir   string
		force bool
		cmd   = &cobra.Command{
			Use:           "spec",
			Short:         "Write the default " + buildozer.SpecName + " to the project directory",
			Version:       hfget.SemVer(),
			SilenceErrors: true,
			SilenceUsage:  true,
			RunE: func(cmd *cobra.Command, args []string) error {
				name := filepath.Join(dir, buildozer.SpecName)

				if !force {
					if _, err := os.Stat(name); err == nil {
						return fmt.Errorf("%s already exists, use --force to overwrite", name)
					}
				}

				f, err := os.Create(name)
				if err != nil {
					return err
				}
				defer f.Close()

				if err = buildozer.DefaultSpec().Encode(f); err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), name)

				return nil
			},
		}
	)

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory for hfget spec")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing "+buildozer.SpecName)

	return cmd
}
