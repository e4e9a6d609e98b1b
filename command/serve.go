package command

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/hfget/hfget"
	"github.com/hfget/hfget/internal/hfgethttp"
	"github.com/spf13/cobra"
)

// newServe returns the command which acts as the
// entrypoint for `hfget serve`.
func newServe() *cobra.Command {
	var (
		address string
		dir     string
		cmd     = &cobra.Command{
			Use:           "serve",
			Short:         "Serve downloaded files over HTTP",
			Version:       hfget.SemVer(),
			SilenceErrors: true,
			SilenceUsage:  true,
			RunE: func(cmd *cobra.Command, _ []string) error {
				var (
					ctx = cmd.Context()
					log = hfget.LoggerFrom(ctx)
					srv = &http.Server{
						ReadHeaderTimeout: time.Second * 5,
						BaseContext: func(_ net.Listener) context.Context {
							return ctx
						},
						Handler: hfgethttp.NewHandler(dir),
					}
					errC = make(chan error)
				)
				defer srv.Close()

				lis, err := net.Listen("tcp", address)
				if err != nil {
					return err
				}
				defer lis.Close()

				go func() {
					log.Info("listening on " + address)
					errC <- srv.Serve(lis)
				}()

				select {
				case <-ctx.Done():
					return ctx.Err()
				case err := <-errC:
					return err
				}
			},
		}
	)

	cmd.Flags().StringVar(&address, "addr", ":8080", "listen address for hfget serve")
	cmd.Flags().StringVar(&dir, "dir", "downloads", "directory to serve files from")

	return cmd
}
