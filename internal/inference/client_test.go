package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flytipwatch/impact-planner/internal/tasks"
)

// fakeGateway answers every /v1/generate call with the configured text and
// records the last request for inspection.
func fakeGateway(t *testing.T, status int, text string, lastReq *generateRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/generate", r.URL.Path)
		if lastReq != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(lastReq))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(generateReply{Text: text})
	}))
}

func TestClassifySeverity(t *testing.T) {
	lastReq := &generateRequest{}
	srv := fakeGateway(t, http.StatusOK, "large", lastReq)
	defer srv.Close()

	c := NewClient(srv.URL, "", WithVisionModel("vision-test"))
	bucket, err := c.ClassifySeverity(context.Background(), []byte("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, tasks.SeverityLarge, bucket)
	assert.Equal(t, "vision-test", lastReq.Model)
	assert.NotEmpty(t, lastReq.Image)
}

func TestClassifySeverityRecoversFreeText(t *testing.T) {
	srv := fakeGateway(t, http.StatusOK, "This looks like a vehicle-load of waste.", nil)
	defer srv.Close()

	c := NewClient(srv.URL, "")
	bucket, err := c.ClassifySeverity(context.Background(), []byte("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, tasks.SeverityVehicleLoad, bucket)
}

func TestClassifySeverityUnrecognizedAnswer(t *testing.T) {
	srv := fakeGateway(t, http.StatusOK, "I cannot tell.", nil)
	defer srv.Close()

	c := NewClient(srv.URL, "")
	bucket, err := c.ClassifySeverity(context.Background(), []byte("jpeg"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnrecognizedAnswer))
	assert.Equal(t, tasks.DefaultSeverity, bucket)
}

func TestClassifyMaterial(t *testing.T) {
	srv := fakeGateway(t, http.StatusOK, "mostly construction rubble", nil)
	defer srv.Close()

	c := NewClient(srv.URL, "")
	label, err := c.ClassifyMaterial(context.Background(), []byte("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, tasks.MaterialConstruction, label)
}

func TestGenerateSummaryStripsMarkdown(t *testing.T) {
	srv := fakeGateway(t, http.StatusOK, "**Your** street is *affected*.", nil)
	defer srv.Close()

	c := NewClient(srv.URL, "")
	summary, err := c.GenerateSummary(context.Background(), Facts{
		Region:   "Kent",
		Severity: tasks.SeverityMedium,
		Material: tasks.MaterialHousehold,
	})
	require.NoError(t, err)
	assert.Equal(t, "Your street is affected.", summary)
}

func TestGenerateSummaryEmptyAnswer(t *testing.T) {
	srv := fakeGateway(t, http.StatusOK, "   ", nil)
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.GenerateSummary(context.Background(), Facts{Region: "Kent"})
	require.Error(t, err)
}

func TestFindCouncilContact(t *testing.T) {
	answer := "```json\n" +
		`{"url":"https://www.kent.gov.uk/report-fly-tipping","contact_number":"0300 041 4141","council_website":"https://www.kent.gov.uk","confidence":"high"}` +
		"\n```"
	srv := fakeGateway(t, http.StatusOK, answer, nil)
	defer srv.Close()

	c := NewClient(srv.URL, "")
	contact, err := c.FindCouncilContact(context.Background(), "Kent")
	require.NoError(t, err)
	assert.Equal(t, "Kent Council", contact.Name)
	assert.Equal(t, "https://www.kent.gov.uk/report-fly-tipping", contact.ReportingURL)
	assert.Equal(t, "0300 041 4141", contact.ContactNumber)
	assert.Equal(t, "high", contact.Confidence)
}

func TestFindCouncilContactBadAnswer(t *testing.T) {
	srv := fakeGateway(t, http.StatusOK, "the council is reachable online", nil)
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.FindCouncilContact(context.Background(), "Kent")
	require.Error(t, err)
}

func TestGatewayErrorStatus(t *testing.T) {
	srv := fakeGateway(t, http.StatusBadGateway, "", nil)
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.ClassifySeverity(context.Background(), []byte("jpeg"))
	require.Error(t, err)
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripCodeFences(tt.in))
	}
}
