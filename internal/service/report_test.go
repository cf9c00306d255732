package service_test

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"

	"github.com/flytipwatch/impact-planner/internal/events"
	"github.com/flytipwatch/impact-planner/internal/service"
	"github.com/flytipwatch/impact-planner/internal/tasks"
)

func TestService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Service Suite")
}

var _ = Describe("report service", Ordered, func() {
	Context("submit", func() {
		It("rejects an empty postcode", func() {
			svc := service.NewReportService(tasks.NewStore(), &stubPipeline{}, nil)

			_, err := svc.Submit(context.TODO(), "   ", nil)
			Expect(err).To(HaveOccurred())

			var emptyPostcode *service.ErrEmptyPostcode
			Expect(errors.As(err, &emptyPostcode)).To(BeTrue())
		})

		It("returns a pending task and completes it in the background", func() {
			pipeline := &stubPipeline{
				result: tasks.Result{Region: "Kent", Severity: tasks.SeverityLarge, Summary: "summary"},
			}
			recorder := newEventRecorder()
			svc := service.NewReportService(tasks.NewStore(), pipeline, recorder)

			task, err := svc.Submit(context.TODO(), "ME1 1AA", []byte("jpeg"))
			Expect(err).To(BeNil())
			Expect(task.Status).To(Equal(tasks.StatusPending))
			Expect(task.Postcode).To(Equal("ME1 1AA"))

			Eventually(func() tasks.Status {
				got, err := svc.Get(context.TODO(), task.ID)
				Expect(err).To(BeNil())
				return got.Status
			}, time.Second).Should(Equal(tasks.StatusCompleted))

			got, err := svc.Get(context.TODO(), task.ID)
			Expect(err).To(BeNil())
			Expect(got.Result).ToNot(BeNil())
			Expect(got.Result.Region).To(Equal("Kent"))
			Expect(got.Error).To(BeEmpty())
			Expect(got.Metadata).ToNot(BeNil())
			Expect(got.Metadata.Severity).To(Equal(tasks.SeverityLarge))

			Eventually(recorder.Kinds, time.Second).Should(Equal([]string{
				events.TaskSubmittedKind,
				events.TaskCompletedKind,
			}))
		})

		It("marks the task failed when the pipeline errors", func() {
			pipeline := &stubPipeline{err: errors.New("region database on fire")}
			recorder := newEventRecorder()
			svc := service.NewReportService(tasks.NewStore(), pipeline, recorder)

			task, err := svc.Submit(context.TODO(), "ME1 1AA", nil)
			Expect(err).To(BeNil())

			Eventually(func() tasks.Status {
				got, err := svc.Get(context.TODO(), task.ID)
				Expect(err).To(BeNil())
				return got.Status
			}, time.Second).Should(Equal(tasks.StatusFailed))

			got, _ := svc.Get(context.TODO(), task.ID)
			Expect(got.Error).To(ContainSubstring("on fire"))
			Expect(got.Result).To(BeNil())

			Eventually(recorder.Kinds, time.Second).Should(Equal([]string{
				events.TaskSubmittedKind,
				events.TaskFailedKind,
			}))
		})

		It("recovers a panicking pipeline into a failed task", func() {
			svc := service.NewReportService(tasks.NewStore(), &panickingPipeline{}, nil)

			task, err := svc.Submit(context.TODO(), "ME1 1AA", nil)
			Expect(err).To(BeNil())

			Eventually(func() tasks.Status {
				got, err := svc.Get(context.TODO(), task.ID)
				Expect(err).To(BeNil())
				return got.Status
			}, time.Second).Should(Equal(tasks.StatusFailed))

			got, _ := svc.Get(context.TODO(), task.ID)
			Expect(got.Error).To(ContainSubstring("internal error"))
		})
	})

	Context("get", func() {
		It("returns a typed error for unknown ids", func() {
			svc := service.NewReportService(tasks.NewStore(), &stubPipeline{}, nil)

			_, err := svc.Get(context.TODO(), uuid.New())
			Expect(err).To(HaveOccurred())

			var notFound *service.ErrTaskNotFound
			Expect(errors.As(err, &notFound)).To(BeTrue())
		})
	})
})

type stubPipeline struct {
	result tasks.Result
	err    error
}

func (p *stubPipeline) Run(_ context.Context, _ string, _ []byte) (tasks.Result, error) {
	return p.result, p.err
}

type panickingPipeline struct{}

func (p *panickingPipeline) Run(_ context.Context, _ string, _ []byte) (tasks.Result, error) {
	panic("inference client is nil")
}

type eventRecorder struct {
	mu     sync.Mutex
	kinds  []string
	bodies []events.TaskEvent
}

func newEventRecorder() *eventRecorder {
	return &eventRecorder{}
}

func (r *eventRecorder) Write(_ context.Context, kind string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	event := events.TaskEvent{}
	if err := json.Unmarshal(data, &event); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = append(r.kinds, kind)
	r.bodies = append(r.bodies, event)
	return nil
}

func (r *eventRecorder) Kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.kinds...)
}
