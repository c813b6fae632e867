package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/theapemachine/study-assistant/pkg/errors"
	"github.com/theapemachine/study-assistant/pkg/study"
)

// maxErrorBody caps how much of a failed response is kept for the log.
const maxErrorBody = 512

/*
GenerateClient talks to the generation endpoint over HTTP.
*/
type GenerateClient struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

type Option func(*GenerateClient)

// WithHTTPClient replaces the default instrumented client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *GenerateClient) {
		c.httpClient = httpClient
	}
}

/*
WithTimeout bounds each request. Zero leaves the client's own timeout alone.
The timeout lands on a copy, so a shared client passed to WithHTTPClient is
never modified.
*/
func WithTimeout(timeout time.Duration) Option {
	return func(c *GenerateClient) {
		c.timeout = timeout
	}
}

/*
NewGenerateClient creates a client for the endpoint rooted at baseURL. An
empty or malformed baseURL is accepted here and fails on the first request.
*/
func NewGenerateClient(baseURL string, opts ...Option) *GenerateClient {
	client := &GenerateClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.timeout > 0 {
		bounded := *client.httpClient
		bounded.Timeout = client.timeout
		client.httpClient = &bounded
	}

	return client
}

// URL is the full address requests are posted to.
func (c *GenerateClient) URL() string {
	return c.baseURL + "/generate"
}

/*
Generate posts req and returns the result text. Failures come back as
*errors.TransportError, *errors.StatusError or *errors.DecodeError.
*/
func (c *GenerateClient) Generate(ctx context.Context, req study.Request) (string, error) {
	url := c.URL()

	body, err := json.Marshal(req)
	if err != nil {
		return "", &errors.TransportError{URL: url, Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &errors.TransportError{URL: url, Err: err}
	}

	httpReq.Header.Set("Content-Type", "application/json")

	log.Debug("posting generation request", "url", url, "task", req.TaskType)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &errors.TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &errors.StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &errors.TransportError{URL: url, Err: err}
	}

	var payload struct {
		Result *string `json:"result"`
	}

	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", &errors.DecodeError{Message: "body is not the expected JSON object", Err: err}
	}

	if payload.Result == nil {
		return "", &errors.DecodeError{Message: "missing result field"}
	}

	return *payload.Result, nil
}
