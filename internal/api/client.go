package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kraigochieng/4th-year-project/internal/logger"
)

const (
	// DefaultBaseURL is the API root of a local development server.
	DefaultBaseURL = "http://localhost:8000/api/v1"

	defaultTimeout = 10 * time.Second
	userAgent      = "adrctl/1.0"
	maxBodyBytes   = 1 << 20
)

// Client is the ADR API client. It only translates calls to and from the
// wire format: no retries, no caching, no token storage.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a client for the API rooted at baseURL. A zero timeout
// selects the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + path
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, *Error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &Error{Kind: KindInvalidInput, Detail: "creating request", Err: err}
	}
	return req, nil
}

// do sends req and decodes a 2xx body into dst. dst may be nil to discard
// the body, or a *json.RawMessage to keep it untouched; anything else is
// decoded after converting keys to camelCase.
func (c *Client) do(req *http.Request, dst any) *Error {
	requestID := uuid.NewString()
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	log := logger.L().With(
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.String("request_id", requestID),
	)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		apiErr := transportError(req.Context(), c.baseURL, err)
		log.Warn("request failed", zap.Error(apiErr))
		return apiErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &Error{Kind: KindTransport, Status: resp.StatusCode, Detail: "reading response", Err: err}
	}

	log.Debug("response received",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("bytes", len(body)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, body)
	}

	switch d := dst.(type) {
	case nil:
		return nil
	case *json.RawMessage:
		*d = append((*d)[:0], body...)
		return nil
	}

	if err := decodeCamelized(body, dst); err != nil {
		return &Error{
			Kind:   KindDecode,
			Status: resp.StatusCode,
			Detail: fmt.Sprintf("decoding response from %s", req.URL.Path),
			Err:    err,
		}
	}
	return nil
}
