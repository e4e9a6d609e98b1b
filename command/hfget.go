package command

import (
	"log/slog"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/go-logr/logr"
	"github.com/hfget/hfget"
	"github.com/spf13/cobra"
)

// NewHFGet returns the root command for hfget
// which acts as its CLI entrypoint.
func NewHFGet() *cobra.Command {
	var (
		verbosity int
		cmd       = &cobra.Command{
			Use:           "hfget",
			Version:       hfget.SemVer(),
			SilenceErrors: true,
			SilenceUsage:  true,
			PersistentPreRun: func(cmd *cobra.Command, _ []string) {
				if verbose := os.Getenv("HFGET_VERBOSE"); verbose != "" && slices.ContainsFunc([]string{"1", "y", "yes", "true", "t"}, func(s string) bool {
					return strings.EqualFold(s, verbose)
				}) {
					verbosity = 2
				}

				var (
					handler = slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
						Level: slog.Level(int(slog.LevelError) - 4*verbosity),
					})
					slogr = logr.FromSlogHandler(handler)
				)

				cmd.SetContext(hfget.WithLogger(cmd.Context(), slogr))
			},
		}
	)

	cmd.SetVersionTemplate("{{ .Name }}{{ .Version }} " + runtime.Version() + "\n")
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "V", "verbosity for hfget")

	cmd.AddCommand(newGet(), newLs(), newBuild(), newSpec(), newServe(), newMirror())

	return cmd
}
