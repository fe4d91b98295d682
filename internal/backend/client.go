package backend

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

	"github.com/google/uuid"

	"github.com/five82/sentiboard/internal/sentiment"
)

// SentimentSource defines the backend operations the dashboard depends on.
// This interface is implemented by *Client and can be used for testing.
type SentimentSource interface {
	FetchSentiment(ctx context.Context, sessionID string) (sentiment.Snapshot, error)
	Escalate(ctx context.Context, sessionID string) error
	FetchAggregate(ctx context.Context) ([]sentiment.Aggregate, error)
}

// Ensure Client implements SentimentSource at compile time.
var _ SentimentSource = (*Client)(nil)

// Client talks to the sentiment backend over HTTP.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	now       func() time.Time
}

const (
	defaultAPIBase        = "127.0.0.1:8080"
	defaultUserAgent      = "sentiboard/0.1"
	defaultRequestTimeout = 10 * time.Second

	requestIDHeader = "X-Request-ID"
)

// NewClient builds a Client for apiBase, a host:port or URL. A non-positive
// timeout uses the default.
func NewClient(apiBase string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
		now:       time.Now,
	}, nil
}

// FetchSentiment retrieves the current score and suggestions for a chat session.
func (c *Client) FetchSentiment(ctx context.Context, sessionID string) (sentiment.Snapshot, error) {
	if c == nil {
		return sentiment.Snapshot{}, fmt.Errorf("client is nil")
	}
	rel, err := sessionPath(sessionID, "sentiment")
	if err != nil {
		return sentiment.Snapshot{}, err
	}
	var payload SentimentResponse
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return sentiment.Snapshot{}, err
	}
	return payload.toSnapshot(c.now()), nil
}

// Escalate asks the backend to escalate the case behind a chat session.
func (c *Client) Escalate(ctx context.Context, sessionID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	rel, err := sessionPath(sessionID, "escalate")
	if err != nil {
		return err
	}
	return c.doURL(ctx, http.MethodPost, rel, nil)
}

// FetchAggregate retrieves the latest score of every active chat session.
func (c *Client) FetchAggregate(ctx context.Context) ([]sentiment.Aggregate, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []AggregateEntry
	if err := c.doURL(ctx, http.MethodGet, &url.URL{Path: "/api/sentiments"}, &payload); err != nil {
		return nil, err
	}
	out := make([]sentiment.Aggregate, 0, len(payload))
	for _, entry := range payload {
		out = append(out, entry.toAggregate())
	}
	return out, nil
}

func sessionPath(sessionID, action string) (*url.URL, error) {
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return nil, fmt.Errorf("%w: session id required", sentiment.ErrInvalidArgument)
	}
	return &url.URL{
		Path:    "/api/sessions/" + id + "/" + action,
		RawPath: "/api/sessions/" + url.PathEscape(id) + "/" + action,
	}, nil
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.String(), resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := decodeBody(body, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeBody accepts either a JSON document or a JSON string holding one.
func decodeBody(body []byte, dest any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return err
		}
		trimmed = []byte(inner)
	}
	return json.Unmarshal(trimmed, dest)
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", apiBase, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
