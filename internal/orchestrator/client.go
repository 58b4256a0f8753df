package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"call-console/internal/credentials"
	"call-console/pkg/logger"

	"github.com/google/uuid"
)

const (
	apiPrefix        = "/api"
	fallbackMessage  = "Something went wrong"
	maxErrorBodySize = 64 << 10
)

// ErrUnauthorized is returned after the orchestrator answered 401. By then the
// stored credentials have been cleared and the OnUnauthorized hook has run.
var ErrUnauthorized = errors.New("Unauthorized")

// RequestError is any other non-2xx answer from the orchestrator.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string { return e.Message }

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration

	// HTTPClient overrides the default client (Timeout is then ignored).
	HTTPClient *http.Client

	// OnUnauthorized is invoked after a 401 once credentials are cleared.
	// The console uses it to flag that the operator must log in again.
	OnUnauthorized func(ctx context.Context)

	Logger *slog.Logger
}

// Client talks to the Call Orchestration Service. It carries no business logic:
// every method maps 1:1 to a remote endpoint.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         credentials.Store
	onUnauthorized func(ctx context.Context)
	log            *slog.Logger
}

func NewClient(tokens credentials.Store, opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		httpClient:     hc,
		tokens:         tokens,
		onUnauthorized: opts.OnUnauthorized,
		log:            log,
	}
}

// do sends one JSON request to path (relative to /api) and decodes the answer into out.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	url := c.baseURL + apiPrefix + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(logger.HeaderRequestID, requestID(ctx))

	if c.tokens != nil {
		tok, err := c.tokens.Token(ctx)
		if err != nil {
			return err
		}
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized(ctx)
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := &RequestError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
		c.logFor(ctx).Debug("orchestrator request failed", "method", method, "path", path, "status", resp.StatusCode, "message", reqErr.Message)
		return reqErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) handleUnauthorized(ctx context.Context) {
	if c.tokens != nil {
		if err := c.tokens.Clear(ctx); err != nil {
			c.logFor(ctx).Warn("clearing credentials after 401 failed", "err", err)
		}
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized(ctx)
	}
}

func errorMessage(r io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(r, maxErrorBodySize)).Decode(&payload); err != nil {
		return fallbackMessage
	}
	if strings.TrimSpace(payload.Message) == "" {
		return fallbackMessage
	}
	return payload.Message
}

// logFor prefers the request-scoped logger installed by the HTTP middleware.
func (c *Client) logFor(ctx context.Context) *slog.Logger {
	if logger.RequestID(ctx) != "" {
		return logger.From(ctx)
	}
	return c.log
}

// requestID reuses the inbound request id when the console is serving a request.
func requestID(ctx context.Context) string {
	if rid := logger.RequestID(ctx); rid != "" {
		return rid
	}
	return uuid.NewString()
}
