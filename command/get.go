package command

import (
	"fmt"
	"net/url"
	"path/filepath"
	"sync"

	"github.com/hfget/hfget"
	"github.com/hfget/hfget/download"
	"github.com/hfget/hfget/internal/hfgetblob"
	"github.com/hfget/hfget/internal/hfgetpubsub"
	"github.com/spf13/cobra"
	"gocloud.dev/blob"
	"gocloud.dev/pubsub"
)

// newGet returns the command which acts as the
// entrypoint for `hfget get`.
func newGet() *cobra.Command {
	var (
		dir          string
		parallel     int
		huburlstr    string
		bloburlstr   string
		pubsuburlstr string
		cmd          = &cobra.Command{
			Use:           "get",
			Short:         "Download files or whole repository subtrees",
			Args:          cobra.MinimumNArgs(1),
			Version:       hfget.SemVer(),
			SilenceErrors: true,
			SilenceUsage:  true,
			RunE: func(cmd *cobra.Command, args []string) error {
				var (
					ctx = cmd.Context()
					log = hfget.LoggerFrom(ctx)
					cli = new(hfget.Client)
				)

				if huburlstr != "" {
					var err error
					if cli.Base, err = url.Parse(huburlstr); err != nil {
						return err
					}
				}

				service := download.NewService(dir, parallel)

				var (
					mirrored sync.WaitGroup
					errC     = make(chan error, 1)
				)
				if bloburlstr != "" {
					log.V(1).Info("opening bucket " + bloburlstr)
					bucket, err := blob.OpenBucket(ctx, bloburlstr)
					if err != nil {
						return err
					}
					defer bucket.Close()

					log.V(1).Info("opening topic " + pubsuburlstr)
					topic, err := pubsub.OpenTopic(ctx, pubsuburlstr)
					if err != nil {
						return err
					}
					defer topic.Shutdown(ctx)

					log.V(1).Info("opening subscription " + pubsuburlstr)
					subscription, err := pubsub.OpenSubscription(ctx, pubsuburlstr)
					if err != nil {
						return err
					}
					defer subscription.Shutdown(ctx)

					go func() {
						errC <- hfgetpubsub.Receive(ctx, bucket, subscription, func(*hfgetpubsub.Message) {
							mirrored.Done()
						})
					}()

					service.SetUpdateCallback(func(task *download.Task) {
						if task.Status != download.StatusCompleted {
							return
						}

						rel, err := filepath.Rel(dir, task.Path)
						if err != nil {
							rel = filepath.Base(task.Path)
						}

						mirrored.Add(1)
						if err := hfgetpubsub.Publish(ctx, topic, &hfgetpubsub.Message{
							Path: task.Path,
							Key:  hfgetblob.Key(rel),
						}); err != nil {
							mirrored.Done()
							log.Error(err, "publish "+task.Path)
						}
					})
				}

				for _, arg := range args {
					src, err := hfget.ParseSource(arg)
					if err != nil {
						return err
					}

					tasks, err := service.AddSource(ctx, cli, src)
					if err != nil {
						return err
					}

					log.Info(fmt.Sprintf("queued %d download(s) for %s", len(tasks), arg))
				}

				var failed int
				for _, task := range service.Wait() {
					switch task.Status {
					case download.StatusCompleted:
						log.Info("downloaded " + task.Path)
						fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", task.Path, task.ProgressString())
					default:
						failed++
						log.Info("failed "+task.URL, "status", task.Status.String(), "cause", task.Err)
					}
				}

				if bloburlstr != "" {
					if err := waitMirrored(&mirrored, errC); err != nil && ctx.Err() == nil {
						return err
					}
				}

				if err := ctx.Err(); err != nil {
					return err
				}

				if failed > 0 {
					return fmt.Errorf("%d download(s) failed", failed)
				}

				return nil
			},
		}
	)

	cmd.Flags().StringVar(&dir, "dir", "downloads", "destination directory for hfget get")
	cmd.Flags().IntVar(&parallel, "parallel", download.DefaultMaxParallel, "max parallel downloads for hfget get")
	cmd.Flags().StringVar(&huburlstr, "hub", "", "hub base URL for hfget get")
	cmd.Flags().StringVar(&bloburlstr, "mirror", "", "blob URL to mirror completed downloads into")
	cmd.Flags().StringVar(&pubsuburlstr, "events", "mem://hfget", "pubsub URL for download completion events")

	return cmd
}

// waitMirrored blocks until the in-flight mirror uploads drain,
// or until the mirror worker dies and reports why.
func waitMirrored(mirrored *sync.WaitGroup, errC <-chan error) error {
	drained := make(chan struct{})
	go func() {
		mirrored.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		select {
		case err := <-errC:
			return err
		default:
			return nil
		}
	case err := <-errC:
		return err
	}
}
