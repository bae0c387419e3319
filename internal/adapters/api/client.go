// Package api is the client for the remote sportlink REST backend. All
// business state lives behind this boundary; the adapter attaches the
// bearer token, normalizes loose payload shapes into domain types and
// classifies every failure into the taxonomy in errors.go.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxBodyBytes caps how much of a response body is read. The API returns
// small JSON documents and short text bodies.
const maxBodyBytes = 4 << 20

// Client issues authenticated requests against the backend REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the given base URL, e.g.
// "http://localhost:8080/api". A nil httpClient falls back to a default
// with a 10s timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// do issues one request and returns the raw response body. The bearer token
// is attached unless the path targets the auth endpoints. Failures come back
// classified; callers never see a raw *url.Error or status code branch.
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body any) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" && !strings.HasPrefix(path, "/auth/") {
		if !strings.HasPrefix(token, "Bearer ") {
			token = "Bearer " + token
		}
		req.Header.Set("Authorization", token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		slog.Warn("api_unreachable", "method", method, "path", path, "error", err)
		return nil, &Error{kind: ErrUnreachable, Body: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{kind: ErrUnreachable, Body: err.Error()}
	}

	if resp.StatusCode >= 400 {
		classified := classify(resp.StatusCode, string(data))
		slog.Info("api_request_failed",
			"method", method, "path", path,
			"status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())
		return nil, classified
	}

	return data, nil
}

// getJSON issues a GET and decodes a JSON response into out.
func (c *Client) getJSON(ctx context.Context, path, token string, query url.Values, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, token, query, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{kind: ErrServer, Body: trimForLog(data)}
	}
	return nil
}

// text issues a request against an endpoint whose success body is plain
// text. The body is returned as an opaque string, never JSON-decoded.
func (c *Client) text(ctx context.Context, method, path, token string, query url.Values, body any) (string, error) {
	data, err := c.do(ctx, method, path, token, query, body)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func trimForLog(data []byte) string {
	const max = 200
	if len(data) > max {
		return string(data[:max]) + "..."
	}
	return string(data)
}
