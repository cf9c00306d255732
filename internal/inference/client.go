// Package inference is the HTTP client for the vision/LLM gateway that backs
// the classification, narrative, and council lookup stages. The client only
// reports transport and contract errors; substituting fallback values is the
// pipeline's job.
package inference

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

var (
	// ErrUnrecognizedAnswer is returned when the model's answer cannot be
	// mapped onto the closed label set even with substring recovery.
	ErrUnrecognizedAnswer = errors.New("unrecognized model answer")
)

type ClientOption func(c *Client)

type Client struct {
	client         *resty.Client
	visionModel    string
	narrativeModel string
}

// NewClient builds a gateway client for the given base URL. The API key may be
// empty for unauthenticated local gateways.
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	restyClient := resty.New().SetBaseURL(baseURL)
	if apiKey != "" {
		restyClient.SetAuthToken(apiKey)
	}

	c := &Client{
		client:         restyClient,
		visionModel:    "vision-flash",
		narrativeModel: "narrative-flash",
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func WithVisionModel(model string) ClientOption {
	return func(c *Client) {
		c.visionModel = model
	}
}

func WithNarrativeModel(model string) ClientOption {
	return func(c *Client) {
		c.narrativeModel = model
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Image  string `json:"image,omitempty"`
}

type generateReply struct {
	Text string `json:"text"`
}

// generate performs one completion round trip. Image bytes, when present, are
// sent base64-encoded alongside the prompt.
func (c *Client) generate(ctx context.Context, model, prompt string, image []byte) (string, error) {
	req := generateRequest{Model: model, Prompt: prompt}
	if len(image) > 0 {
		req.Image = base64.StdEncoding.EncodeToString(image)
	}

	var reply generateReply
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&reply).
		Post("/v1/generate")
	if err != nil {
		return "", errors.Wrap(err, "calling inference gateway")
	}
	if resp.StatusCode() != http.StatusOK {
		return "", errors.Errorf("inference gateway returned %s", resp.Status())
	}

	return reply.Text, nil
}
