// Package v1alpha1 implements the HTTP handlers of the public API.
package v1alpha1

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	api "github.com/flytipwatch/impact-planner/api/v1alpha1"
	"github.com/flytipwatch/impact-planner/internal/handlers/v1alpha1/mappers"
	"github.com/flytipwatch/impact-planner/internal/service"
	"github.com/flytipwatch/impact-planner/pkg/requestid"
)

// maxImageBytes caps the uploaded photo size at 10 MiB.
const maxImageBytes = 10 << 20

// RegionCounter reports how many regions the coefficient snapshot covers.
type RegionCounter interface {
	Regions() int
}

type ServiceHandler struct {
	reports *service.ReportService
	regions RegionCounter
}

func NewServiceHandler(reports *service.ReportService, regions RegionCounter) *ServiceHandler {
	return &ServiceHandler{
		reports: reports,
		regions: regions,
	}
}

// RegisterRoutes mounts the public endpoints on the router.
func (h *ServiceHandler) RegisterRoutes(router chi.Router) {
	router.Post("/submit", h.Submit)
	router.Get("/result/{taskId}", h.GetResult)
	router.Get("/health", h.Health)
}

// Submit accepts a multipart report (postcode field plus image file) and
// replies with the task id to poll.
func (h *ServiceHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		renderError(w, r, http.StatusBadRequest, "request body must be multipart/form-data")
		return
	}

	postcode := r.FormValue("postcode")
	image, err := readImage(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.reports.Submit(r.Context(), postcode, image)
	if err != nil {
		var emptyPostcode *service.ErrEmptyPostcode
		if errors.As(err, &emptyPostcode) {
			renderError(w, r, http.StatusBadRequest, "postcode is required")
			return
		}
		renderError(w, r, http.StatusInternalServerError, "failed to submit report")
		return
	}

	render.JSON(w, r, api.SubmissionReply{
		TaskId:  task.ID.String(),
		Status:  api.TaskStatus(task.Status),
		Message: "Report accepted. Poll /result/{taskId} for the analysis.",
	})
}

// GetResult returns the current state of a task, including the result once the
// task completed. A malformed id can never have been issued by this process,
// so it is reported as unknown rather than as a syntax error.
func (h *ServiceHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "taskId")
	id, err := uuid.Parse(raw)
	if err != nil {
		renderError(w, r, http.StatusNotFound, fmt.Sprintf("task %s not found", raw))
		return
	}

	task, err := h.reports.Get(r.Context(), id)
	if err != nil {
		var notFound *service.ErrTaskNotFound
		if errors.As(err, &notFound) {
			renderError(w, r, http.StatusNotFound, err.Error())
			return
		}
		renderError(w, r, http.StatusInternalServerError, "failed to fetch task")
		return
	}

	render.JSON(w, r, mappers.TaskStatusToApi(task))
}

func (h *ServiceHandler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, api.HealthReply{
		Status:        "ok",
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		RegionsLoaded: h.regions.Regions(),
	})
}

// readImage extracts the image part.
func readImage(r *http.Request) ([]byte, error) {
	file, _, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, errors.New("image is required")
		}
		return nil, errors.New("failed to read image upload")
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		return nil, errors.New("failed to read image upload")
	}
	return image, nil
}

func renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, api.ErrorReply{
		Message:   message,
		RequestId: requestid.FromContextPtr(r.Context()),
	})
}
