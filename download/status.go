package download

// Status represents the state of a download task.
type Status string

const (
	// StatusPending means the task is queued but not started.
	StatusPending Status = "Pending"

	// StatusStarting means the task is in the process of starting.
	StatusStarting Status = "Starting"

	// StatusDownloading means the download is in progress.
	StatusDownloading Status = "Downloading"

	// StatusPaused means the download is suspended and can be resumed.
	StatusPaused Status = "Paused"

	// StatusCompleted means the task finished successfully.
	StatusCompleted Status = "Completed"

	// StatusCanceled means the task was canceled.
	StatusCanceled Status = "Canceled"

	// StatusError means the task failed.
	StatusError Status = "Error"
)

func (s Status) String() string {
	return string(s)
}

// IsActive returns true if the task still occupies a worker.
func (s Status) IsActive() bool {
	return s == StatusStarting || s == StatusDownloading || s == StatusPaused
}

// IsFinished returns true if the task reached a terminal state.
func (s Status) IsFinished() bool {
	return s == StatusCompleted || s == StatusCanceled || s == StatusError
}
