package hfgetblob

import (
	"context"
	"io"
	"os"

	"gocloud.dev/blob"
)

// Upload copies the local file at name into the bucket at key.
// The write is only durable once the writer closes cleanly.
func Upload(ctx context.Context, bucket *blob.Bucket, key, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := bucket.NewWriter(ctx, key, nil)
	if err != nil {
		return err
	}

	if _, err = io.Copy(w, f); err != nil {
		_ = w.Close()
		return err
	}

	return w.Close()
}
