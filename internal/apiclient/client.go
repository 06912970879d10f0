package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const maxErrorBodySize = 64 << 10

// Client talks JSON to the booking backend. Every call is attempted once.
type Client struct {
	baseURL    string
	httpClient *http.Client
	duration   metric.Float64Histogram
}

func New(baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
}

func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	duration, err := otel.Meter("github.com/metinatakli/movie-booking-web/internal/apiclient").
		Float64Histogram(
			"backend.request.duration",
			metric.WithDescription("Duration of calls to the booking backend"),
			metric.WithUnit("s"),
		)
	if err != nil {
		otel.Handle(err)
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		duration:   duration,
	}
}

func (c *Client) Get(ctx context.Context, path string, dst any) error {
	return c.do(ctx, http.MethodGet, path, nil, dst)
}

func (c *Client) Post(ctx context.Context, path string, body, dst any) error {
	return c.do(ctx, http.MethodPost, path, body, dst)
}

func (c *Client) Put(ctx context.Context, path string, body, dst any) error {
	return c.do(ctx, http.MethodPut, path, body, dst)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, dst any) error {
	start := time.Now()
	status := 0

	defer func() {
		if c.duration == nil {
			return
		}

		c.duration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
			attribute.String("http.method", method),
			attribute.Int("http.status_code", status),
		))
	}()

	var reqBody io.Reader
	if body != nil {
		js, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}

		reqBody = bytes.NewReader(js)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &Error{Method: method, Path: path, Err: err}
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	status = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newResponseError(method, path, resp)
	}

	if dst == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	err = json.NewDecoder(resp.Body).Decode(dst)
	switch {
	case errors.Is(err, io.EOF):
		// some mutations answer 2xx with an empty body
		return nil
	case err != nil:
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}

	return nil
}

func newResponseError(method, path string, resp *http.Response) *Error {
	apiErr := &Error{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil || len(data) == 0 {
		return apiErr
	}

	var envelope errorEnvelope
	if json.Unmarshal(data, &envelope) == nil {
		apiErr.Message = envelope.Error
	}

	return apiErr
}
