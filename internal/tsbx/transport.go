package tsbx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/net/http/httpguts"
)

const (
	sandboxesPath = "/api/v0/sandboxes"

	// DefaultUserAgent identifies this service to the provisioning API.
	DefaultUserAgent = "askrepo-service/0.1"

	// maxResponseBody bounds how much of a response body is read.
	maxResponseBody = 4 << 20
)

// transport owns the HTTP client, base URL and fixed request headers.
// It is immutable after construction and safe for concurrent use.
type transport struct {
	httpClient *http.Client
	baseURL    *url.URL
	headers    http.Header
}

func newTransport(endpoint, token string, httpClient *http.Client, userAgent string) (*transport, error) {
	base, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, &ConfigurationError{Field: "endpoint", Err: err}
	}

	authorization := "Bearer " + token
	if !httpguts.ValidHeaderFieldValue(authorization) {
		// never echo the token back
		return nil, &ConfigurationError{Field: "token", Err: errors.New("admin token contains characters not allowed in an HTTP header")}
	}

	headers := make(http.Header)
	headers.Set("Accept", "application/json")
	headers.Set("Content-Type", "application/json")
	headers.Set("Authorization", authorization)
	if userAgent != "" {
		headers.Set("User-Agent", userAgent)
	}

	return &transport{
		httpClient: httpClient,
		baseURL:    base,
		headers:    headers,
	}, nil
}

// parseEndpoint accepts an absolute URL or a bare host[:port], which is
// treated as plain http.
func parseEndpoint(endpoint string) (*url.URL, error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		u, err = url.Parse("http://" + endpoint)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid URL (expected absolute URL, e.g. http://localhost:9000): %w", endpoint, err)
		}
		if u.Host == "" {
			return nil, fmt.Errorf("%q is not a valid URL (expected absolute URL, e.g. http://localhost:9000): missing host", endpoint)
		}
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return u, nil
}

// sandboxesURL resolves the sandboxes collection endpoint. Each call returns
// a fresh URL the caller may modify.
func (t *transport) sandboxesURL() *url.URL {
	return t.baseURL.ResolveReference(&url.URL{Path: sandboxesPath})
}

func (t *transport) newRequest(ctx context.Context, method string, u *url.URL, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}
	for key, values := range t.headers {
		req.Header[key] = append([]string(nil), values...)
	}
	return req, nil
}

// do sends req and returns the status code and body. Only send and receive
// failures are reported here; status handling is up to the caller.
func (t *transport) do(req *http.Request) (int, []byte, error) {
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
