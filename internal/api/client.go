// Package api is the HTTP client for the date plan scoring backend.
//
// Every method performs exactly one round trip. There is no retry, batching or caching;
// callers own cancellation through the context they pass in.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"resty.dev/v3"
)

var errNoResponse = errors.New("no response")

// Options configures a Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration // 0 leaves timeouts to the transport
	UserAgent string
	Logger    *slog.Logger
}

type Client struct {
	client *resty.Client
	logger *slog.Logger
}

func New(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")).
		SetRetryCount(0).
		SetResponseBodyUnlimitedReads(true).
		SetHeader("Accept", "application/json")
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}

	return &Client{
		client: client,
		logger: logger.With("component", "api"),
	}
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) r(ctx context.Context) *resty.Request {
	return c.client.R().WithContext(ctx)
}

// errorBody is the shape of 4xx responses: {"detail": "..."}.
// FastAPI validation failures send a list instead of a string, hence RawMessage.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

func (b *errorBody) detail() string {
	if b == nil || len(b.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(b.Detail, &s); err == nil {
		return s
	}
	return ""
}

// resultBody is embedded in success payloads that may report {"error": "..."} with a 200.
type resultBody struct {
	Error string `json:"error,omitempty"`
}

func (c *Client) checkResult(b resultBody, method, path string) error {
	if strings.TrimSpace(b.Error) == "" {
		return nil
	}
	c.logger.Warn("request reported error", "method", method, "path", path, "error", b.Error)
	return &ResultError{Message: b.Error}
}

// send executes one request and classifies the outcome. result is decoded on 2xx.
func (c *Client) send(req *resty.Request, method, path string, result any) error {
	eb := &errorBody{}
	req.SetError(eb)
	if result != nil {
		req.SetResult(result)
	}

	c.logger.Debug("request", "method", method, "path", path)
	res, err := req.Execute(method, path)

	if res == nil || res.RawResponse == nil {
		if err == nil {
			err = errNoResponse
		}
		c.logger.Warn("request failed", "method", method, "path", path, "error", err)
		return &TransportError{Method: method, Path: path, Err: err}
	}

	status := res.StatusCode()
	switch {
	case status >= 400 && status < 500:
		detail := eb.detail()
		c.logger.Warn("request rejected", "method", method, "path", path, "status", status, "detail", detail)
		return &RejectedError{Status: status, Detail: detail}
	case !res.IsSuccess():
		c.logger.Warn("request failed", "method", method, "path", path, "status", status, "body", res.String())
		return &ServerError{Status: status, Body: res.String()}
	case err != nil:
		// 2xx with a body that does not decode.
		c.logger.Warn("malformed response", "method", method, "path", path, "status", status, "error", err)
		return &ServerError{Status: status, Body: res.String()}
	}

	c.logger.Debug("response", "method", method, "path", path, "status", status, "duration", res.Duration())
	return nil
}
