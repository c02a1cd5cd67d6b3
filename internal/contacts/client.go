package contacts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/postdeskapp/postdesk-server/internal/domain"
	"github.com/postdeskapp/postdesk-server/internal/ratelimit"
)

const (
	// Outbound pacing toward the contacts service.
	defaultRPS   = 20.0
	defaultBurst = 10

	limiterKey = "contacts"
)

// Client is an HTTP Gateway implementation against a fixed base address.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *ratelimit.KeyedRateLimiter
	logger  *slog.Logger
}

var _ Gateway = (*Client)(nil)

// NewClient creates a contacts client for the given base URL.
// A non-positive timeout falls back to 10 seconds.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
		},
		limiter: ratelimit.New(defaultRPS, defaultBurst),
		logger:  logger,
	}
}

// Get implements Gateway.
func (c *Client) Get(ctx context.Context, id int64) (*domain.Contact, error) {
	return c.doRequest(ctx, http.MethodGet, "/contacts/"+strconv.FormatInt(id, 10), nil)
}

// Create implements Gateway.
func (c *Client) Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	return c.doRequest(ctx, http.MethodPost, "/contacts", contact)
}

// Update implements Gateway. The contact must carry its id.
func (c *Client) Update(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	if contact.ID == nil {
		return nil, &BadRequestError{Message: "contact id is required for update"}
	}
	return c.doRequest(ctx, http.MethodPut, "/contacts/"+strconv.FormatInt(*contact.ID, 10), contact)
}

// doRequest executes one call against the contacts service and maps the
// response status onto the gateway error taxonomy.
func (c *Client) doRequest(ctx context.Context, method, path string, payload *domain.Contact) (*domain.Contact, error) {
	if err := c.limiter.Wait(ctx, limiterKey); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode contact: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("contacts request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		var contact domain.Contact
		if err := json.Unmarshal(body, &contact); err != nil {
			return nil, fmt.Errorf("parse contact: %w", err)
		}
		return &contact, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusBadRequest:
		return nil, &BadRequestError{Message: rejectionMessage(body)}
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	default:
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}

// rejectionMessage extracts the service's message from a 400 body. The
// contacts service sends either a bare string or an object with a message
// (or problem-details title) field; anything else passes through as-is.
func rejectionMessage(body []byte) string {
	var obj struct {
		Message string `json:"message"`
		Title   string `json:"title"`
	}
	if err := json.Unmarshal(body, &obj); err == nil {
		if obj.Message != "" {
			return obj.Message
		}
		if obj.Title != "" {
			return obj.Title
		}
	}
	var str string
	if err := json.Unmarshal(body, &str); err == nil && str != "" {
		return str
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = "invalid contact"
	}
	return msg
}
