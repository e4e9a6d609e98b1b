package hfgetpubsub

import (
	"context"
	"encoding/json"

	"github.com/hfget/hfget"
	"github.com/hfget/hfget/internal/hfgetblob"
	"gocloud.dev/blob"
	"gocloud.dev/pubsub"
)

// Message announces a completed download to the mirror worker.
type Message struct {
	// Path is the local file.
	Path string `json:"path"`
	// Key is where the file belongs in the mirror bucket.
	Key string `json:"key"`
}

// Publish sends the completed download to the topic.
func Publish(ctx context.Context, topic *pubsub.Topic, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return topic.Send(ctx, &pubsub.Message{Body: body})
}

// Receive copies each announced download into the bucket until
// the context is done, calling onMirrored after each message is
// handled. Messages that cannot be processed are logged and
// acked so one bad announcement does not stop the worker.
func Receive(ctx context.Context, bucket *blob.Bucket, subscription *pubsub.Subscription, onMirrored func(*Message)) error {
	log := hfget.LoggerFrom(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			msg, err := subscription.Receive(ctx)
			if err != nil {
				return err
			}

			m := &Message{}
			if err = json.Unmarshal(msg.Body, m); err != nil {
				log.Error(err, "unmarshal message")
				msg.Ack()
				continue
			}

			log.V(1).Info("mirroring", "path", m.Path, "key", m.Key)

			// Redelivery cannot help a message whose local
			// file is gone, so failures get acked too.
			if err = hfgetblob.Upload(ctx, bucket, m.Key, m.Path); err != nil {
				log.Error(err, "mirror "+m.Path)
			}

			msg.Ack()

			if onMirrored != nil {
				onMirrored(m)
			}
		}
	}
}
