// Package api is the client for the Top 2000 REST API.
package api

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

	"golang.org/x/time/rate"

	"github.com/llehouerou/top2000/internal/session"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "top2000/0.1"

	// Retry configuration
	initialDelay = 500 * time.Millisecond
	maxDelay     = 5 * time.Second

	maxErrorBody = 200
)

var (
	// ErrNotAuthenticated is returned when an operation requires a session and none is stored.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrUnauthorized is returned when the API rejects the session token (401).
	// The stored session is cleared before it is returned.
	ErrUnauthorized = errors.New("session expired")
	// ErrForbidden is returned by admin endpoints (401 or 403) when the
	// account is not an administrator. The session is kept.
	ErrForbidden = errors.New("not an administrator")
)

// access is the authorization a request needs.
type access int

const (
	accessPublic access = iota
	accessUser
	accessAdmin
)

// StatusError is returned for non-success HTTP responses.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API returned status %d", e.Code)
	}
	return fmt.Sprintf("API status %d: %s", e.Code, e.Message)
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	RateLimit  float64 // requests per second, 0 = unlimited
	Retries    int
	Sessions   session.Store
	// CacheSize is the number of cached search responses; <= 0 disables
	// the cache. A cache keeps two background goroutines for the life of
	// the process, so build one cached Client per process.
	CacheSize  int
	CacheTTL   time.Duration
	HTTPClient *http.Client
}

// Client provides access to the Top 2000 API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	retries    int
	retryDelay time.Duration
	sessions   session.Store
	cache      *searchCache
	now        func() time.Time
}

// NewClient creates a new API client.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), max(1, int(opts.RateLimit)))
	}

	sessions := opts.Sessions
	if sessions == nil {
		sessions = session.NewMemory()
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		userAgent:  userAgent,
		httpClient: httpClient,
		limiter:    limiter,
		retries:    max(opts.Retries, 0),
		retryDelay: initialDelay,
		sessions:   sessions,
		cache:      newSearchCache(opts.CacheSize, opts.CacheTTL),
		now:        time.Now,
	}
}

// Sessions returns the session store used for authenticated calls.
func (c *Client) Sessions() session.Store {
	return c.sessions
}

// IsAuthenticated returns true if a valid session is stored.
func (c *Client) IsAuthenticated() bool {
	return session.Token(c.sessions, c.now()) != ""
}

// get performs an unauthenticated GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, accessPublic, out)
}

// do performs a request and decodes the JSON body into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, body any, auth access, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	var token string
	if auth != accessPublic {
		token = session.Token(c.sessions, c.now())
		if token == "" {
			return ErrNotAuthenticated
		}
	}

	newRequest := func() (*http.Request, error) {
		var reader io.Reader = http.NoBody
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return req, nil
	}

	resp, err := c.doRequestWithRetry(ctx, newRequest)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case auth == accessAdmin && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden):
		return ErrForbidden
	case auth == accessUser && resp.StatusCode == http.StatusUnauthorized:
		_ = c.sessions.Clear()
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// doRequestWithRetry executes an HTTP request with exponential backoff retry.
// Retries on 5xx errors and network errors; waits on the rate limiter before
// each attempt.
func (c *Client) doRequestWithRetry(ctx context.Context, newRequest func() (*http.Request, error)) (*http.Response, error) {
	var lastErr error
	delay := c.retryDelay

	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
			delay = min(delay*2, maxDelay)
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := newRequest()
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}

		// Success or client error (4xx) - don't retry
		if resp.StatusCode < 500 {
			return resp, nil
		}

		// Server error (5xx) - retry
		if attempt == c.retries {
			return resp, nil
		}
		resp.Body.Close()
		lastErr = fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", c.retries+1, lastErr)
}

// newStatusError builds a StatusError, preferring the API's {"message": ...}
// body over the raw text.
func newStatusError(resp *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	if json.Unmarshal(body, &payload) == nil {
		msg = firstNonEmpty(payload.Message, payload.Error)
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody] + "..."
		}
	}
	return &StatusError{Code: resp.StatusCode, Message: msg}
}
