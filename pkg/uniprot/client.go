// Package uniprot issues single-shot requests against the UniProt REST API and
// decodes its JSON and FASTA answers.
package uniprot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const (
	// BaseURL is the public UniProt REST endpoint.
	BaseURL = "https://rest.uniprot.org"
	// DefaultUserAgent identifies this server to UniProt.
	DefaultUserAgent = "uniprot-mcp/1.0"
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second

	maxLoggedBody = 512
)

// Format selects how a response body is returned.
type Format int

const (
	// FormatJSON decodes the body as JSON.
	FormatJSON Format = iota
	// FormatText returns the body as text.
	FormatText
	// FormatJSONOrText decodes JSON and falls back to the raw text.
	FormatJSONOrText
)

// Request describes one outbound call. Body is JSON encoded and sent with
// any method, GET included.
type Request struct {
	URL     string
	Method  string
	Query   map[string]any
	Headers map[string]string
	Body    any
	Timeout time.Duration
	Format  Format
}

// Client performs Requests. It is safe for concurrent use.
type Client struct {
	rest      *resty.Client
	logger    *log.Logger
	userAgent string
	timeout   time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout sets the timeout used when a Request does not carry one.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient swaps the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.rest = resty.NewWithClient(hc)
		}
	}
}

// NewClient returns a Client that logs through logger. A nil logger discards output.
func NewClient(logger *log.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	c := &Client{
		rest:      resty.New(),
		logger:    logger,
		userAgent: DefaultUserAgent,
		timeout:   DefaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Exactly one attempt per call. GET bodies are sent rather than silently dropped.
	c.rest.SetRetryCount(0).SetAllowGetMethodPayload(true).SetLogger(logger)

	return c
}

// Headers returns the default header set merged with extra, extra winning on collision.
func (c *Client) Headers(extra map[string]string) map[string]string {
	headers := map[string]string{
		"User-Agent": c.userAgent,
		"Accept":     "application/json",
	}

	for k, v := range extra {
		headers[http.CanonicalHeaderKey(k)] = v
	}

	return headers
}

// Do performs req once. It never returns an error: every fault is logged and
// reported through Result.Failure.
func (c *Client) Do(ctx context.Context, req Request) Result {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}

	logger := c.logger.With("request_id", uuid.NewString(), "method", method, "url", req.URL)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	r := c.rest.R().
		SetContext(ctx).
		SetHeaders(c.Headers(req.Headers))

	for k, v := range req.Query {
		if v == nil {
			continue
		}
		r.SetQueryParam(k, fmt.Sprint(v))
	}

	if req.Body != nil {
		r.SetBody(req.Body)
	}

	logger.Debug("sending request", "query", req.Query)

	resp, err := r.Execute(method, req.URL)
	if err != nil {
		logger.Error("request error", "error", err, "timeout", errors.Is(err, context.DeadlineExceeded))
		return failed(&Failure{Kind: KindTransport, Err: err})
	}

	if !resp.IsSuccess() {
		body := snippet(string(resp.Body()))
		logger.Error("http error", "status", resp.StatusCode(), "body", body)
		return failed(&Failure{
			Kind:       KindHTTPStatus,
			StatusCode: resp.StatusCode(),
			Body:       body,
		})
	}

	logger.Debug("response received", "status", resp.StatusCode(), "bytes", len(resp.Body()))

	if req.Format == FormatText {
		return Result{Text: string(resp.Body()), IsText: true}
	}

	var data any
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		if req.Format == FormatJSONOrText {
			logger.Debug("body is not JSON, returning text", "error", err)
			return Result{Text: string(resp.Body()), IsText: true}
		}
		logger.Error("failed to parse JSON response", "error", err, "body", snippet(string(resp.Body())))
		return failed(&Failure{Kind: KindDecode, Err: err})
	}

	return Result{Data: data}
}

func snippet(s string) string {
	if len(s) <= maxLoggedBody {
		return s
	}
	return s[:maxLoggedBody] + "..."
}
