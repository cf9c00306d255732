package tasks

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned for ids never issued by this process instance.
	ErrNotFound = errors.New("task not found")
	// ErrTerminal is returned on any attempt to mutate a task that already
	// reached completed or failed.
	ErrTerminal = errors.New("task already in a terminal state")
)

// Statistics is a point-in-time count of tasks by status.
type Statistics struct {
	Total      int
	Pending    int
	Processing int
	Completed  int
	Failed     int
}

// Store is the process-wide map from task id to task record. It owns all task
// state mutation and is safe for concurrent use by many pipeline goroutines
// and reader requests. It is constructed explicitly and injected; there is no
// package-level instance.
type Store struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]*Task
}

func NewStore() *Store {
	return &Store{tasks: make(map[uuid.UUID]*Task)}
}

// Create registers a new pending task for the given postcode and returns a
// snapshot of it. The generated id is never reused.
func (s *Store) Create(postcode string) Task {
	task := &Task{
		ID:        uuid.New(),
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
		Postcode:  postcode,
	}

	s.mu.Lock()
	s.tasks[task.ID] = task
	s.mu.Unlock()

	return *task
}

// Get returns a snapshot of the task. Result and Metadata are immutable once
// set, so sharing their pointers with readers is safe: a reader can only
// observe them after the status write that published them.
func (s *Store) Get(id uuid.UUID) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	return *task, nil
}

// SetProcessing transitions a pending task to processing.
func (s *Store) SetProcessing(id uuid.UUID) error {
	return s.update(id, func(task *Task) {
		task.Status = StatusProcessing
	})
}

// Complete publishes the assembled result and transitions the task to
// completed. The result must be fully assembled before this call.
func (s *Store) Complete(id uuid.UUID, result Result) error {
	return s.update(id, func(task *Task) {
		task.Status = StatusCompleted
		task.Result = &result
		task.Metadata = &Metadata{
			Region:      result.Region,
			Severity:    result.Severity,
			ProcessedAt: time.Now().UTC(),
		}
	})
}

// Fail transitions the task to failed with the captured error text. No partial
// result is stored.
func (s *Store) Fail(id uuid.UUID, errText string) error {
	return s.update(id, func(task *Task) {
		task.Status = StatusFailed
		task.Error = errText
	})
}

// update applies fn under the write lock, refusing writes to terminal tasks so
// the status machine stays monotonic even in the face of a buggy caller.
func (s *Store) update(id uuid.UUID, fn func(*Task)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return ErrNotFound
	}
	if task.Status.IsTerminal() {
		return errors.Wrapf(ErrTerminal, "task %s", id)
	}

	fn(task)
	return nil
}

// Statistics counts tasks by status for the metrics collector.
func (s *Store) Statistics() Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Statistics{Total: len(s.tasks)}
	for _, task := range s.tasks {
		switch task.Status {
		case StatusPending:
			stats.Pending++
		case StatusProcessing:
			stats.Processing++
		case StatusCompleted:
			stats.Completed++
		case StatusFailed:
			stats.Failed++
		}
	}
	return stats
}
