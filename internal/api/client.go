package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// TokenSource supplies the bearer token attached to authenticated calls.
// An empty string means no session; the request is then sent unauthenticated.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource returning a fixed token. Useful for tests and
// for web handlers that carry the token in a request cookie.
type StaticToken string

func (s StaticToken) Token() string { return string(s) }

// Client talks to the Tressa backend REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// requestOptions is the options bag for a single call.
type requestOptions struct {
	method    string
	jsonBody  any        // marshalled as JSON when set
	formBody  url.Values // sent form-encoded when set (login endpoint)
	needsAuth bool
	headers   map[string]string
}

// New creates a Client for the backend at baseURL (without the /api prefix).
// tokens may be nil, in which case every call is anonymous.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tokens:     tokens,
	}
}

// WithTokens returns a shallow copy of the client using the given token
// source. Web handlers use this to bind a client to the caller's cookie.
func (c *Client) WithTokens(tokens TokenSource) *Client {
	cp := *c
	cp.tokens = tokens
	return &cp
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// do performs one API call and decodes the JSON response into out (which may
// be nil). Non-2xx statuses are normalized into *APIError.
func (c *Client) do(ctx context.Context, endpoint string, opts requestOptions, out any) error {
	var body io.Reader
	contentType := ""
	switch {
	case opts.formBody != nil:
		body = strings.NewReader(opts.formBody.Encode())
		contentType = "application/x-www-form-urlencoded"
	case opts.jsonBody != nil:
		data, err := json.Marshal(opts.jsonBody)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	method := opts.method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api"+endpoint, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range opts.headers {
		req.Header.Set(k, v)
	}
	if opts.needsAuth && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// RawContent fetches a snippet's unrendered content as plain text, bypassing
// JSON parsing. No auth is required for the raw endpoint.
func (c *Client) RawContent(ctx context.Context, id int) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/api/tress/%d/raw", c.baseURL, id), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", decodeError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading raw content: %w", err)
	}
	return string(data), nil
}

// RawURL returns the shareable URL of a snippet's raw content.
func (c *Client) RawURL(id int) string {
	return fmt.Sprintf("%s/api/tress/%d/raw", c.baseURL, id)
}
