package tasks

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func TestStoreCreateAndGet(t *testing.T) {
	s := NewStore()

	created := s.Create("SW1A 1AA")
	if created.Status != StatusPending {
		t.Fatalf("new task status = %q, want %q", created.Status, StatusPending)
	}
	if created.Postcode != "SW1A 1AA" {
		t.Fatalf("new task postcode = %q", created.Postcode)
	}

	got, err := s.Get(created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != created.ID || got.Status != StatusPending {
		t.Fatalf("Get returned %+v", got)
	}
}

func TestStoreGetUnknownID(t *testing.T) {
	s := NewStore()

	_, err := s.Get(uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get unknown id: err = %v, want ErrNotFound", err)
	}
}

func TestStoreLifecycle(t *testing.T) {
	s := NewStore()
	task := s.Create("M1 1AE")

	if err := s.SetProcessing(task.ID); err != nil {
		t.Fatalf("SetProcessing: %v", err)
	}

	result := Result{Region: "Greater Manchester", Severity: SeverityLarge, Summary: "summary"}
	if err := s.Complete(task.ID, result); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	got, err := s.Get(task.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != StatusCompleted {
		t.Fatalf("status = %q, want completed", got.Status)
	}
	if got.Result == nil || got.Result.Region != "Greater Manchester" {
		t.Fatalf("result = %+v", got.Result)
	}
	if got.Metadata == nil || got.Metadata.Severity != SeverityLarge || got.Metadata.ProcessedAt.IsZero() {
		t.Fatalf("metadata = %+v", got.Metadata)
	}
}

func TestStoreTerminalStatesAreFinal(t *testing.T) {
	s := NewStore()

	completed := s.Create("E1 6AN")
	_ = s.SetProcessing(completed.ID)
	_ = s.Complete(completed.ID, Result{Region: "Greater London"})

	if err := s.Fail(completed.ID, "too late"); !errors.Is(err, ErrTerminal) {
		t.Fatalf("Fail on completed task: err = %v, want ErrTerminal", err)
	}
	if err := s.SetProcessing(completed.ID); !errors.Is(err, ErrTerminal) {
		t.Fatalf("SetProcessing on completed task: err = %v, want ErrTerminal", err)
	}

	failed := s.Create("E1 6AN")
	_ = s.SetProcessing(failed.ID)
	_ = s.Fail(failed.ID, "pipeline error")

	if err := s.Complete(failed.ID, Result{}); !errors.Is(err, ErrTerminal) {
		t.Fatalf("Complete on failed task: err = %v, want ErrTerminal", err)
	}

	got, _ := s.Get(failed.ID)
	if got.Status != StatusFailed || got.Error != "pipeline error" {
		t.Fatalf("failed task = %+v", got)
	}
	if got.Result != nil {
		t.Fatal("failed task has a result")
	}
}

func TestStoreConcurrentWriters(t *testing.T) {
	s := NewStore()

	const n = 50
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = s.Create(fmt.Sprintf("SW%d", i)).ID
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_ = s.SetProcessing(id)
			_ = s.Complete(id, Result{Region: "Greater London"})
		}(id)
	}
	// Concurrent readers against the same ids.
	for _, id := range ids {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_, _ = s.Get(id)
			_ = s.Statistics()
		}(id)
	}
	wg.Wait()

	stats := s.Statistics()
	if stats.Total != n || stats.Completed != n {
		t.Fatalf("statistics = %+v, want %d total and completed", stats, n)
	}
}

func TestStoreStatistics(t *testing.T) {
	s := NewStore()

	pending := s.Create("A")
	_ = pending

	processing := s.Create("B")
	_ = s.SetProcessing(processing.ID)

	completed := s.Create("C")
	_ = s.SetProcessing(completed.ID)
	_ = s.Complete(completed.ID, Result{})

	failed := s.Create("D")
	_ = s.SetProcessing(failed.ID)
	_ = s.Fail(failed.ID, "err")

	stats := s.Statistics()
	want := Statistics{Total: 4, Pending: 1, Processing: 1, Completed: 1, Failed: 1}
	if stats != want {
		t.Fatalf("statistics = %+v, want %+v", stats, want)
	}
}
