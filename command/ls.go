package command

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"text/tabwriter"

	humanize "github.com/dustin/go-humanize"
	"github.com/hfget/hfget"
	"github.com/hfget/hfget/internal/hfgetregexp"
	"github.com/spf13/cobra"
)

// newLs returns the command which acts as the
// entrypoint for `hfget ls`.
func newLs() *cobra.Command {
	var (
		huburlstr string
		asJSON    bool
		cmd       = &cobra.Command{
			Use:           "ls",
			Short:         "List the files of a repository",
			Args:          cobra.ExactArgs(1),
			Version:       hfget.SemVer(),
			SilenceErrors: true,
			SilenceUsage:  true,
			RunE: func(cmd *cobra.Command, args []string) error {
				var (
					ctx = cmd.Context()
					cli = new(hfget.Client)
				)

				if huburlstr != "" {
					var err error
					if cli.Base, err = url.Parse(huburlstr); err != nil {
						return err
					}
				}

				repo, err := parseRepoArg(args[0])
				if err != nil {
					return err
				}

				files, err := cli.ListFiles(ctx, repo)
				if err != nil {
					return err
				}

				if asJSON {
					return json.NewEncoder(cmd.OutOrStdout()).Encode(files)
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				for _, file := range files {
					fmt.Fprintf(w, "%s\t%s\n", file.Path, humanize.Bytes(uint64(file.Size)))
				}

				return w.Flush()
			},
		}
	)

	cmd.Flags().StringVar(&huburlstr, "hub", "", "hub base URL for hfget ls")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the file listing as JSON")

	return cmd
}

// parseRepoArg accepts either an owner/name[@revision] slug
// or a hub tree URL.
func parseRepoArg(arg string) (*hfget.Repo, error) {
	slug, revision, found := strings.Cut(arg, "@")
	if !found {
		revision = hfget.DefaultRevision
	}

	if match := hfgetregexp.RepoSlug.FindStringSubmatch(slug); match != nil {
		repo := &hfget.Repo{
			Owner:    match[1],
			Name:     match[2],
			Revision: revision,
		}

		return repo, hfget.ValidateRepo(repo)
	}

	src, err := hfget.ParseSource(arg)
	if err != nil {
		return nil, fmt.Errorf("invalid repository %s", arg)
	} else if !src.IsTree() {
		return nil, fmt.Errorf("%s does not reference a repository tree", arg)
	}

	return src.Repo, nil
}
