package command

import (
	"github.com/hfget/hfget"
	"github.com/hfget/hfget/internal/hfgetpubsub"
	"github.com/spf13/cobra"
	"gocloud.dev/blob"
	"gocloud.dev/pubsub"
)

// newMirror returns the command which acts as the
// entrypoint for `hfget mirror`.
func newMirror() *cobra.Command {
	var (
		bloburlstr   string
		pubsuburlstr string
		cmd          = &cobra.Command{
			Use:           "mirror",
			Short:         "Copy announced downloads into a bucket until interrupted",
			Version:       hfget.SemVer(),
			SilenceErrors: true,
			SilenceUsage:  true,
			RunE: func(cmd *cobra.Command, _ []string) error {
				var (
					ctx = cmd.Context()
					log = hfget.LoggerFrom(ctx)
				)

				log.Info("opening bucket " + bloburlstr)
				bucket, err := blob.OpenBucket(ctx, bloburlstr)
				if err != nil {
					return err
				}
				defer bucket.Close()

				log.Info("opening subscription " + pubsuburlstr)
				subscription, err := pubsub.OpenSubscription(ctx, pubsuburlstr)
				if err != nil {
					return err
				}
				defer subscription.Shutdown(ctx)

				log.Info("receiving messages on " + pubsuburlstr)

				return hfgetpubsub.Receive(ctx, bucket, subscription, nil)
			},
		}
	)

	cmd.Flags().StringVar(&bloburlstr, "blob", "mem://", "blob URL for hfget mirror")
	cmd.Flags().StringVar(&pubsuburlstr, "events", "mem://hfget", "pubsub URL for download completion events")

	return cmd
}
