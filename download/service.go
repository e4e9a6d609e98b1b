package download

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/flytam/filenamify"
	"github.com/google/uuid"
	"github.com/hfget/hfget"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxParallel is how many downloads run at
// once unless configured otherwise.
const DefaultMaxParallel = 2

// Service runs download tasks with bounded parallelism.
type Service struct {
	dir      string
	fetcher  *Fetcher
	group    *errgroup.Group
	onUpdate func(*Task)

	mu    sync.RWMutex
	tasks map[string]*Task
	ctrls map[string]*control
	order []string
}

type ServiceOpt func(*Service)

func WithFetcher(f *Fetcher) ServiceOpt {
	return func(s *Service) {
		s.fetcher = f
	}
}

// NewService returns a Service writing downloads beneath dir,
// running at most maxParallel of them at once.
func NewService(dir string, maxParallel int, opts ...ServiceOpt) *Service {
	if maxParallel <= 0 {
		maxParallel = DefaultMaxParallel
	}

	s := &Service{
		dir:     dir,
		fetcher: &Fetcher{},
		group:   &errgroup.Group{},
		tasks:   map[string]*Task{},
		ctrls:   map[string]*control{},
	}

	s.group.SetLimit(maxParallel)

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SetUpdateCallback registers fn to be called with a snapshot
// of a task every time it changes.
func (s *Service) SetUpdateCallback(fn func(*Task)) {
	s.onUpdate = fn
}

// Add queues the download of url to name, relative to the
// service directory. Name path elements are sanitized.
func (s *Service) Add(ctx context.Context, url, name string) (*Task, error) {
	s.mu.Lock()

	for _, task := range s.tasks {
		if task.URL == url && !task.Status.IsFinished() {
			s.mu.Unlock()
			return nil, fmt.Errorf("task already exists for URL %s", url)
		}
	}

	taskCtx, cancel := context.WithCancel(ctx)

	task := &Task{
		ID:        uuid.NewString(),
		URL:       url,
		Path:      filepath.Join(s.dir, sanitizePath(name)),
		Status:    StatusPending,
		StartedAt: time.Now(),
	}

	s.tasks[task.ID] = task
	s.ctrls[task.ID] = &control{cancel: cancel}
	s.order = append(s.order, task.ID)

	snapshot := s.snapshot(task.ID)

	// group.Go blocks until a worker slot frees up, and the
	// workers need the registry lock, so it cannot be held here.
	s.mu.Unlock()

	s.group.Go(func() error {
		s.run(taskCtx, task.ID)
		return nil
	})

	return snapshot, nil
}

// AddSource queues a parsed source: its direct URL, or every
// file of its repository subtree listed through cli.
func (s *Service) AddSource(ctx context.Context, cli *hfget.Client, src *hfget.Source) ([]*Task, error) {
	if !src.IsTree() {
		task, err := s.Add(ctx, src.URL, src.Filename)
		if err != nil {
			return nil, err
		}

		return []*Task{task}, nil
	}

	files, err := cli.ListFiles(ctx, src.Repo)
	if err != nil {
		return nil, err
	}

	tasks := make([]*Task, 0, len(files))
	for _, file := range files {
		task, err := s.Add(ctx, cli.ResolveURL(src.Repo, file.Path), filepath.Join(src.Repo.Name, file.Path))
		if err != nil {
			return nil, err
		}

		tasks = append(tasks, task)
	}

	return tasks, nil
}

// Task returns a snapshot of the task by ID.
func (s *Service) Task(id string) (*Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.tasks[id]
	if !ok {
		return nil, false
	}

	return s.snapshot(id), true
}

// Tasks returns snapshots of all tasks in the order they were added.
func (s *Service) Tasks() []*Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]*Task, 0, len(s.order))
	for _, id := range s.order {
		tasks = append(tasks, s.snapshot(id))
	}

	return tasks
}

// Pause suspends an active task between chunks.
func (s *Service) Pause(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ctrl, err := s.get(id)
	if err != nil {
		return err
	}

	if !task.Status.IsActive() {
		return fmt.Errorf("task is not active: %s", task.Status)
	}

	ctrl.pause()
	task.Status = StatusPaused
	s.notify(id)

	return nil
}

// Resume continues a paused task.
func (s *Service) Resume(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ctrl, err := s.get(id)
	if err != nil {
		return err
	}

	if task.Status != StatusPaused {
		return fmt.Errorf("task is not paused: %s", task.Status)
	}

	ctrl.resume()
	task.Status = StatusDownloading
	s.notify(id)

	return nil
}

// Cancel aborts a task. Paused tasks are canceled, too.
func (s *Service) Cancel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ctrl, err := s.get(id)
	if err != nil {
		return err
	}

	if task.Status.IsFinished() {
		return fmt.Errorf("task is finished: %s", task.Status)
	}

	ctrl.resume()
	ctrl.cancel()

	return nil
}

// Wait blocks until every queued task reached a terminal
// state and returns their snapshots. Failed tasks carry
// their error in Task.Err.
func (s *Service) Wait() []*Task {
	_ = s.group.Wait()
	return s.Tasks()
}

func (s *Service) run(ctx context.Context, id string) {
	s.mu.Lock()
	task, ctrl, err := s.get(id)
	if err != nil {
		s.mu.Unlock()
		return
	}
	if ctx.Err() != nil {
		task.Status = StatusCanceled
		task.FinishedAt = time.Now()
		s.notify(id)
		s.mu.Unlock()
		return
	}
	task.Status = StatusStarting
	var (
		url  = task.URL
		name = task.Path
	)
	s.notify(id)
	s.mu.Unlock()

	s.transition(id, StatusStarting, StatusDownloading)

	err = s.fetcher.Fetch(ctx, url, name, &FetchOpts{
		Gate: ctrl.gate,
		Progress: func(received, total int64) {
			s.mu.Lock()
			task.Received = received
			task.Size = total
			s.notify(id)
			s.mu.Unlock()
		},
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	task.FinishedAt = time.Now()

	switch {
	case err == nil:
		task.Status = StatusCompleted
	case ctx.Err() != nil:
		task.Status = StatusCanceled
	default:
		task.Status = StatusError
		task.Err = err.Error()
	}

	s.notify(id)
}

// transition moves the task from one status to another, leaving
// it alone if something else moved it first. In particular a
// pause landing between the Starting transition and here must
// not get overwritten.
func (s *Service) transition(id string, from, to Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if task, ok := s.tasks[id]; ok && task.Status == from {
		task.Status = to
		s.notify(id)
	}
}

// get, snapshot and notify expect s.mu to be held.

func (s *Service) get(id string) (*Task, *control, error) {
	task, ok := s.tasks[id]
	if !ok {
		return nil, nil, fmt.Errorf("task not found: %s", id)
	}

	return task, s.ctrls[id], nil
}

func (s *Service) snapshot(id string) *Task {
	task := *s.tasks[id]
	return &task
}

func (s *Service) notify(id string) {
	if s.onUpdate != nil {
		s.onUpdate(s.snapshot(id))
	}
}

func sanitizePath(name string) string {
	elems := strings.Split(filepath.ToSlash(name), "/")

	for i, elem := range elems {
		if sanitized, err := filenamify.Filenamify(elem, filenamify.Options{Replacement: "_"}); err == nil && sanitized != "" {
			elems[i] = sanitized
		}
	}

	return filepath.Join(elems...)
}
