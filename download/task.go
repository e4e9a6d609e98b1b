package download

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Task represents a single download.
type Task struct {
	ID         string
	URL        string
	Path       string
	Status     Status
	Size       int64
	Received   int64
	StartedAt  time.Time
	FinishedAt time.Time
	Err        string
}

// Progress returns the fraction downloaded, 0.0 to 1.0,
// or 0 when the total size is unknown.
func (t *Task) Progress() float64 {
	if t.Size <= 0 {
		return 0
	}

	return float64(t.Received) / float64(t.Size)
}

// ProgressString renders the progress the way the
// CLI reports it, e.g. "1.2 MB / 4.5 MB (26.7%)".
func (t *Task) ProgressString() string {
	received := humanize.Bytes(uint64(t.Received))

	if t.Size <= 0 {
		return received
	}

	return fmt.Sprintf("%s / %s (%.1f%%)",
		received,
		humanize.Bytes(uint64(t.Size)),
		t.Progress()*100,
	)
}
