package tsbx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

const (
	opList   = "list sandboxes"
	opCreate = "create sandbox"
)

// SandboxRecord is the provisioning service's acknowledgment of a sandbox.
type SandboxRecord struct {
	ID string `json:"id"`
}

type sandboxList struct {
	Items *[]json.RawMessage `json:"items"`
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	logger     logr.Logger
	metrics    *Metrics
}

// WithHTTPClient sets the HTTP client used for every request.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
// It is ignored when WithHTTPClient is used.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *clientOptions) {
		o.userAgent = ua
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logr.Logger) Option {
	return func(o *clientOptions) {
		o.logger = l
	}
}

// WithMetrics enables metrics recording.
func WithMetrics(m *Metrics) Option {
	return func(o *clientOptions) {
		o.metrics = m
	}
}

// Client talks to the provisioning service's sandboxes collection.
// Each call is a single HTTP round trip; nothing is retried.
// After creation the client is immutable and safe for concurrent use.
type Client struct {
	transport *transport
	log       logr.Logger
	metrics   *Metrics
}

// NewClient creates a client for the service at endpoint, authenticating
// with the admin token. Endpoint may omit the scheme, in which case http is
// assumed. A malformed endpoint or token yields a *ConfigurationError.
func NewClient(endpoint, token string, opts ...Option) (*Client, error) {
	o := clientOptions{
		timeout:   30 * time.Second,
		userAgent: DefaultUserAgent,
		logger:    logr.Discard(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: o.timeout}
	}

	t, err := newTransport(endpoint, token, o.httpClient, o.userAgent)
	if err != nil {
		return nil, err
	}

	return &Client{
		transport: t,
		log:       o.logger.WithName("tsbx"),
		metrics:   o.metrics,
	}, nil
}

// BaseURL returns the normalized base URL of the provisioning service.
func (c *Client) BaseURL() string {
	return c.transport.baseURL.String()
}

// ExistsWithTag reports whether at least one sandbox carries tag.
// An empty tag is sent as is; the service's behaviour for it is undefined.
func (c *Client) ExistsWithTag(ctx context.Context, tag string) (bool, error) {
	items, err := c.listByTag(ctx, tag)
	if err != nil {
		return false, err
	}
	return len(items) > 0, nil
}

// FindByTag returns the first sandbox carrying tag, or nil if there is none.
// The record is decoded leniently: an item without an id yields an empty ID.
func (c *Client) FindByTag(ctx context.Context, tag string) (*SandboxRecord, error) {
	items, err := c.listByTag(ctx, tag)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	var record SandboxRecord
	if err := json.Unmarshal(items[0], &record); err != nil {
		c.log.V(1).Info("matched sandbox item is not an object", "tag", tag)
	}
	return &record, nil
}

func (c *Client) listByTag(ctx context.Context, tag string) (items []json.RawMessage, err error) {
	started := time.Now()
	defer func() { c.metrics.recordAPICall(opList, err, started) }()

	subject := "tag " + strconv.Quote(tag)

	u := c.transport.sandboxesURL()
	q := u.Query()
	q.Set("tags", tag)
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	c.log.V(1).Info("checking for existing sandbox by tag", "url", u.String(), "tag", tag)

	req, err := c.transport.newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("tsbx: %s: %w", opList, err)
	}

	status, body, err := c.transport.do(req)
	if err != nil {
		return nil, &TransportError{Op: opList, Subject: subject, Err: err}
	}
	if !isSuccess(status) {
		return nil, &RemoteError{Op: opList, Subject: subject, StatusCode: status, Body: string(body)}
	}

	var list sandboxList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, &DecodeError{Op: opList, Subject: subject, Err: err}
	}
	if list.Items == nil {
		return nil, &DecodeError{Op: opList, Subject: subject, Err: errors.New(`response has no "items" array`)}
	}
	return *list.Items, nil
}

// Create submits payload and returns the new sandbox. This is not an atomic
// check-and-create; pair it with ExistsWithTag or use a Provisioner.
//
// If ctx is cancelled after the request was sent the sandbox may still be
// created by the service.
func (c *Client) Create(ctx context.Context, payload SandboxPayload) (record *SandboxRecord, err error) {
	started := time.Now()
	defer func() { c.metrics.recordAPICall(opCreate, err, started) }()

	subject := "tags " + strconv.Quote(strings.Join(payload.Tags, ","))
	u := c.transport.sandboxesURL()

	c.log.V(1).Info("creating sandbox", "url", u.String(), "tags", payload.Tags)

	req, err := c.transport.newRequest(ctx, http.MethodPost, u, payload)
	if err != nil {
		return nil, fmt.Errorf("tsbx: %s: %w", opCreate, err)
	}

	status, body, err := c.transport.do(req)
	if err != nil {
		return nil, &TransportError{Op: opCreate, Subject: subject, Err: err}
	}
	if !isSuccess(status) {
		return nil, &RemoteError{Op: opCreate, Subject: subject, StatusCode: status, Body: string(body)}
	}

	var created SandboxRecord
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, &DecodeError{Op: opCreate, Subject: subject, Err: err}
	}
	if created.ID == "" {
		return nil, &DecodeError{Op: opCreate, Subject: subject, Err: errors.New(`response has no "id"`)}
	}

	c.log.Info("created sandbox", "sandbox", created.ID, "tags", payload.Tags)
	return &created, nil
}
