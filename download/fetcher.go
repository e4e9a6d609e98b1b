package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
)

// DefaultChunkSize is how many bytes get copied between
// progress reports and pause/cancel checks.
const DefaultChunkSize = 8192

// ProgressFunc reports received against total bytes.
// total is 0 when the remote size is unknown.
type ProgressFunc func(received, total int64)

// FetchOpts carry the optional knobs of Fetcher.Fetch.
type FetchOpts struct {
	Progress ProgressFunc
	// Gate is called between chunks. It blocks while the
	// download is paused and returns an error to abort.
	Gate func(context.Context) error
}

// Fetcher downloads files over HTTP, resuming partial
// downloads where the server cooperates.
type Fetcher struct {
	HTTPClient *http.Client
	ChunkSize  int
}

func (f *Fetcher) init() {
	if f.HTTPClient == nil {
		f.HTTPClient = http.DefaultClient
	}
	if f.ChunkSize <= 0 {
		f.ChunkSize = DefaultChunkSize
	}
}

// Size asks the remote for the file size via HEAD.
// Unknown sizes are reported as 0, not as an error.
func (f *Fetcher) Size(ctx context.Context, url string) (int64, error) {
	f.init()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, err
	}

	res, err := f.HTTPClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return 0, nil
	}

	size, _ := strconv.ParseInt(res.Header.Get("Content-Length"), 10, 64)
	return size, nil
}

// Fetch downloads url to name. A partial file at name is
// continued with a Range request; if the server answers a
// ranged request with anything but 206, the download restarts
// from zero. A file already at the remote size is left alone.
func (f *Fetcher) Fetch(ctx context.Context, url, name string, opts *FetchOpts) error {
	f.init()

	if opts == nil {
		opts = &FetchOpts{}
	}

	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	var received int64
	if fi, err := os.Stat(name); err == nil {
		received = fi.Size()
	}

	total, err := f.Size(ctx, url)
	if err != nil {
		return err
	}

	if received > 0 && received == total {
		if opts.Progress != nil {
			opts.Progress(received, total)
		}
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	if received > 0 {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", received))
	}

	res, err := f.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if received > 0 && res.StatusCode != http.StatusPartialContent {
		// The server ignored the Range, start over.
		res.Body.Close()
		received = 0

		req, err = http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		res, err = f.HTTPClient.Do(req)
		if err != nil {
			return err
		}
		defer res.Body.Close()
	}

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusPartialContent {
		return fmt.Errorf("http status code %d", res.StatusCode)
	}

	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if received > 0 {
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}

	file, err := os.OpenFile(name, flag, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	buf := make([]byte, f.ChunkSize)
	for {
		if opts.Gate != nil {
			if err := opts.Gate(ctx); err != nil {
				return err
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		n, err := res.Body.Read(buf)
		if n > 0 {
			if _, werr := file.Write(buf[:n]); werr != nil {
				return werr
			}

			received += int64(n)

			if opts.Progress != nil {
				opts.Progress(received, total)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return err
		}
	}

	return file.Close()
}
