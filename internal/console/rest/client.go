// Package rest is the console's channel to the remote backend. Every call
// takes the bearer token as an explicit parameter; there is no process-wide
// default header, so two in-flight requests from different sessions cannot
// race on shared credential state.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ledgerdesk/ledgerdesk/internal/domain"
)

const defaultTimeout = 15 * time.Second

// Client issues authenticated JSON requests against one backend base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// NewClient creates a Client for the given base URL, e.g. "https://api.example.com".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the backend's standard success wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// errorBody is the backend's error payload; Message is surfaced to the user
// verbatim.
type errorBody struct {
	Message string `json:"message"`
}

// Get issues a GET request and decodes the envelope's data into out.
func (c *Client) Get(ctx context.Context, token, path string, query url.Values, out any) error {
	return c.do(ctx, token, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request with a JSON body and decodes the envelope's data into out.
func (c *Client) Post(ctx context.Context, token, path string, body, out any) error {
	return c.do(ctx, token, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT request with a JSON body and decodes the envelope's data into out.
func (c *Client) Put(ctx context.Context, token, path string, body, out any) error {
	return c.do(ctx, token, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE request and decodes the envelope's data into out.
func (c *Client) Delete(ctx context.Context, token, path string, out any) error {
	return c.do(ctx, token, http.MethodDelete, path, nil, nil, out)
}

// messageData is the payload of mutation endpoints that answer with a toast line.
type messageData struct {
	Message string `json:"message"`
}

// ToggleStatus flips the status of one row of a resource and returns the
// server's message line.
func (c *Client) ToggleStatus(ctx context.Context, token, resource string, id uint) (string, error) {
	var data messageData
	path := fmt.Sprintf("/api/v1/%s/status/%d", resource, id)
	if err := c.Put(ctx, token, path, nil, &data); err != nil {
		return "", err
	}
	return data.Message, nil
}

// Remove deletes one row of a resource and returns the server's message line.
func (c *Client) Remove(ctx context.Context, token, resource string, id uint) (string, error) {
	var data messageData
	path := fmt.Sprintf("/api/v1/%s/%d", resource, id)
	if err := c.Delete(ctx, token, path, &data); err != nil {
		return "", err
	}
	return data.Message, nil
}

// do performs one request. Non-2xx responses become *domain.AppError carrying
// the server's message; transport failures are wrapped as internal errors.
// Requests are never retried.
func (c *Client) do(ctx context.Context, token, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return domain.NewAppError(domain.CodeInternal, "encode request body", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return domain.NewAppError(domain.CodeInternal, "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.NewAppError(domain.CodeInternal, "request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NewAppError(domain.CodeInternal, "read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return domain.NewAppError(domain.CodeInternal, "decode response", err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return domain.NewAppError(domain.CodeInternal, "decode response data", err)
	}
	return nil
}

// errorFromResponse maps a non-2xx response to an AppError with the server's
// message (or a status line when the body is not the expected shape).
func errorFromResponse(status int, raw []byte) error {
	msg := http.StatusText(status)
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		msg = body.Message
	}

	code := domain.CodeInternal
	switch status {
	case http.StatusNotFound:
		code = domain.CodeNotFound
	case http.StatusConflict:
		code = domain.CodeAlreadyExists
	case http.StatusBadRequest:
		code = domain.CodeValidation
	case http.StatusUnauthorized:
		code = domain.CodeUnauthorized
	case http.StatusForbidden:
		code = domain.CodeForbidden
	}
	return domain.NewAppError(code, msg, nil)
}
