// Package service sits between the HTTP handlers and the domain packages: it
// owns the task lifecycle, the background processing goroutines, and the
// coefficient cache.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/flytipwatch/impact-planner/internal/events"
	"github.com/flytipwatch/impact-planner/internal/tasks"
	"github.com/flytipwatch/impact-planner/pkg/metrics"
)

// ReportPipeline runs the full analysis for one report.
type ReportPipeline interface {
	Run(ctx context.Context, postcode string, image []byte) (tasks.Result, error)
}

// EventWriter publishes task lifecycle events.
type EventWriter interface {
	Write(ctx context.Context, kind string, body io.Reader) error
}

type ReportService struct {
	store    *tasks.Store
	pipeline ReportPipeline
	events   EventWriter
	log      *zap.SugaredLogger
}

func NewReportService(store *tasks.Store, pipeline ReportPipeline, eventWriter EventWriter) *ReportService {
	return &ReportService{
		store:    store,
		pipeline: pipeline,
		events:   eventWriter,
		log:      zap.S().Named("report_service"),
	}
}

// Submit registers a new report and starts its analysis in the background.
// The returned task is always pending; callers poll Get for the outcome.
func (s *ReportService) Submit(ctx context.Context, postcode string, image []byte) (tasks.Task, error) {
	if strings.TrimSpace(postcode) == "" {
		return tasks.Task{}, NewErrEmptyPostcode()
	}

	task := s.store.Create(postcode)
	metrics.IncreaseReportsSubmittedMetric()
	s.emitEvent(ctx, events.TaskSubmittedKind, events.TaskEvent{
		TaskID:   task.ID.String(),
		Status:   string(task.Status),
		Postcode: task.Postcode,
	})

	// Detached from the request context on purpose: a client disconnect
	// must not abort the analysis of an already accepted report.
	go s.process(context.Background(), task.ID, postcode, image)

	s.log.Infow("report submitted", "task_id", task.ID, "postcode", postcode, "image_bytes", len(image))
	return task, nil
}

// Get returns a snapshot of the task.
func (s *ReportService) Get(_ context.Context, id uuid.UUID) (tasks.Task, error) {
	task, err := s.store.Get(id)
	if err != nil {
		if errors.Is(err, tasks.ErrNotFound) {
			return tasks.Task{}, NewErrTaskNotFound(id)
		}
		return tasks.Task{}, err
	}
	return task, nil
}

// Statistics exposes the store counters for the health endpoint and the
// metrics collector.
func (s *ReportService) Statistics() tasks.Statistics {
	return s.store.Statistics()
}

func (s *ReportService) process(ctx context.Context, id uuid.UUID, postcode string, image []byte) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorw("panic while processing task", "task_id", id, "panic", r)
			s.finish(ctx, id, tasks.Result{}, fmt.Errorf("internal error while processing report"))
		}
	}()

	if err := s.store.SetProcessing(id); err != nil {
		s.log.Errorw("failed to mark task processing", "task_id", id, "error", err)
		return
	}

	result, err := s.pipeline.Run(ctx, postcode, image)
	s.finish(ctx, id, result, err)
}

// finish records the terminal state exactly once and emits the matching event.
func (s *ReportService) finish(ctx context.Context, id uuid.UUID, result tasks.Result, runErr error) {
	if runErr != nil {
		if err := s.store.Fail(id, runErr.Error()); err != nil {
			s.log.Errorw("failed to mark task failed", "task_id", id, "error", err)
			return
		}
		metrics.IncreaseTasksFinishedMetric(string(tasks.StatusFailed))
		s.emitEvent(ctx, events.TaskFailedKind, events.TaskEvent{
			TaskID: id.String(),
			Status: string(tasks.StatusFailed),
			Error:  runErr.Error(),
		})
		s.log.Warnw("task failed", "task_id", id, "error", runErr)
		return
	}

	if err := s.store.Complete(id, result); err != nil {
		s.log.Errorw("failed to mark task completed", "task_id", id, "error", err)
		return
	}
	metrics.IncreaseTasksFinishedMetric(string(tasks.StatusCompleted))
	s.emitEvent(ctx, events.TaskCompletedKind, events.TaskEvent{
		TaskID:   id.String(),
		Status:   string(tasks.StatusCompleted),
		Region:   result.Region,
		Severity: string(result.Severity),
	})
	s.log.Infow("task completed", "task_id", id, "region", result.Region, "severity", result.Severity)
}

func (s *ReportService) emitEvent(ctx context.Context, kind string, event events.TaskEvent) {
	if s.events == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		s.log.Errorw("failed to marshal task event", "kind", kind, "error", err)
		return
	}
	if err := s.events.Write(ctx, kind, bytes.NewReader(data)); err != nil {
		s.log.Errorw("failed to write task event", "kind", kind, "error", err)
	}
}
