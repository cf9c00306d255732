package v1alpha1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "github.com/flytipwatch/impact-planner/api/v1alpha1"
	handlers "github.com/flytipwatch/impact-planner/internal/handlers/v1alpha1"
	"github.com/flytipwatch/impact-planner/internal/service"
	"github.com/flytipwatch/impact-planner/internal/tasks"
)

type stubPipeline struct {
	result tasks.Result
	err    error
}

func (p *stubPipeline) Run(_ context.Context, _ string, _ []byte) (tasks.Result, error) {
	return p.result, p.err
}

// stubRegions stands in for the coefficient cache backing /health.
type stubRegions struct {
	count int
}

func (s stubRegions) Regions() int { return s.count }

func newTestRouter(pipeline service.ReportPipeline) http.Handler {
	reports := service.NewReportService(tasks.NewStore(), pipeline, nil)
	handler := handlers.NewServiceHandler(reports, stubRegions{count: 43})

	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func multipartBody(t *testing.T, postcode string, image []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if postcode != "" {
		require.NoError(t, writer.WriteField("postcode", postcode))
	}
	if image != nil {
		part, err := writer.CreateFormFile("image", "incident.jpg")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestSubmitAcceptsReport(t *testing.T) {
	router := newTestRouter(&stubPipeline{result: tasks.Result{Region: "Kent"}})

	body, contentType := multipartBody(t, "ME1 1AA", []byte("jpeg-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/submit", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	reply := api.SubmissionReply{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Equal(t, api.TaskStatusPending, reply.Status)
	_, err := uuid.Parse(reply.TaskId)
	assert.NoError(t, err)
}

func TestSubmitMissingImage(t *testing.T) {
	router := newTestRouter(&stubPipeline{})

	body, contentType := multipartBody(t, "SW1A 1AA", nil)
	req := httptest.NewRequest(http.MethodPost, "/submit", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	reply := api.ErrorReply{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Contains(t, reply.Message, "image")
}

func TestSubmitMissingPostcode(t *testing.T) {
	router := newTestRouter(&stubPipeline{})

	body, contentType := multipartBody(t, "", []byte("jpeg"))
	req := httptest.NewRequest(http.MethodPost, "/submit", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	reply := api.ErrorReply{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Contains(t, reply.Message, "postcode")
}

func TestSubmitRejectsNonMultipart(t *testing.T) {
	router := newTestRouter(&stubPipeline{})

	req := httptest.NewRequest(http.MethodPost, "/submit", bytes.NewBufferString(`{"postcode":"SW1A 1AA"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetResultLifecycle(t *testing.T) {
	router := newTestRouter(&stubPipeline{
		result: tasks.Result{
			Region:   "Kent",
			Severity: tasks.SeverityLarge,
			Material: tasks.MaterialFurniture,
			Metrics:  tasks.ImpactMetrics{Co2EmissionsKg: 30.0, CrimeChangePct: 12.5},
			Council:  tasks.CouncilContact{Name: "Kent Council", ReportingURL: "https://www.kent.gov.uk/report"},
			Summary:  "a summary",
			ImageURL: "http://images.local/x.jpg",
		},
	})

	body, contentType := multipartBody(t, "ME1 1AA", []byte("jpeg"))
	req := httptest.NewRequest(http.MethodPost, "/submit", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	submitted := api.SubmissionReply{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &submitted))

	var reply api.TaskStatusReply
	require.Eventually(t, func() bool {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/result/"+submitted.TaskId, nil))
		if rec.Code != http.StatusOK {
			return false
		}
		reply = api.TaskStatusReply{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
		return reply.Status == api.TaskStatusCompleted
	}, time.Second, 10*time.Millisecond)

	require.NotNil(t, reply.Result)
	assert.Equal(t, 30.0, reply.Result.EnvironmentalImpact.Co2Emissions)
	assert.Equal(t, 12.5, reply.Result.CrimeChange)
	assert.Equal(t, "Kent Council", reply.Result.CouncilInfo.Name)
	assert.Equal(t, "a summary", reply.Result.Summary)
	assert.Equal(t, "http://images.local/x.jpg", reply.Result.ImageUrl)
	assert.Empty(t, reply.Error)
}

func TestGetResultUnknownTask(t *testing.T) {
	router := newTestRouter(&stubPipeline{})

	req := httptest.NewRequest(http.MethodGet, "/result/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetResultMalformedTaskID(t *testing.T) {
	router := newTestRouter(&stubPipeline{})

	// Any id this process never issued is unknown, well-formed or not.
	req := httptest.NewRequest(http.MethodGet, "/result/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	reply := api.ErrorReply{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Contains(t, reply.Message, "not found")
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&stubPipeline{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	reply := api.HealthReply{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Equal(t, "ok", reply.Status)
	assert.Equal(t, 43, reply.RegionsLoaded)
	assert.NotEmpty(t, reply.Timestamp)
}
