package openlist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/openlist-contrib/openlist-bridge/internal/domain"
	"github.com/openlist-contrib/openlist-bridge/internal/ports"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout  = 30 * time.Second
	maxResponseSize = 4 << 20
)

// Config describes how to reach the service. Exactly one auth mode must be
// set: Username+Password, or APIKey.
type Config struct {
	BaseURL  string
	Username string
	Password string
	APIKey   string

	// HTTPClient overrides the default 30s-timeout client, mainly for tests.
	HTTPClient *http.Client

	// RateLimit/RateBurst throttle outgoing calls. Zero means no throttle.
	RateLimit rate.Limit
	RateBurst int
}

type Client struct {
	baseURL    string
	username   string
	password   string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter

	// token is the session state. Only the auth path writes it.
	mu    sync.Mutex
	token string
}

var _ ports.FileService = (*Client)(nil)

func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, domain.NewValidationError("base_url is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, domain.NewValidationError("base_url %q is not a valid URL: %v", cfg.BaseURL, err)
	}

	hasPassword := cfg.Username != "" || cfg.Password != ""
	hasKey := cfg.APIKey != ""
	switch {
	case hasPassword && hasKey:
		return nil, domain.NewValidationError("username/password and api_key are mutually exclusive")
	case hasPassword && (cfg.Username == "" || cfg.Password == ""):
		return nil, domain.NewValidationError("username and password must both be set")
	case !hasPassword && !hasKey:
		return nil, domain.NewValidationError("either username/password or api_key is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	limit := cfg.RateLimit
	if limit <= 0 {
		limit = rate.Inf
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	c := &Client{
		baseURL:    baseURL,
		username:   cfg.Username,
		password:   cfg.Password,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, burst),
	}
	if hasKey {
		c.token = cfg.APIKey
	}

	return c, nil
}

// errUnauthorized signals the auth-expired path inside a single do() call.
var errUnauthorized = errors.New("unauthorized")

// do performs one envelope request: ensure a token, send, and on an
// auth-expired signal re-authenticate once and retry the original request
// exactly once. All client operations pass through here so the retry policy
// lives in one place.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	if err := c.ensureToken(ctx); err != nil {
		return err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return &domain.TransportError{Op: "rate limit wait", Err: err}
	}

	data, err := c.roundTrip(ctx, method, path, query, body)
	if !errors.Is(err, errUnauthorized) {
		if err != nil {
			return err
		}
		return decodeData(data, out)
	}

	if c.apiKey != "" {
		return &domain.AuthError{Reason: "api key rejected by service"}
	}

	c.clearToken()
	if err := c.ensureToken(ctx); err != nil {
		return err
	}

	data, err = c.roundTrip(ctx, method, path, query, body)
	if errors.Is(err, errUnauthorized) {
		return &domain.AuthError{Reason: "request still unauthorized after re-login"}
	}
	if err != nil {
		return err
	}
	return decodeData(data, out)
}

// roundTrip sends one HTTP request and returns the envelope payload, or
// errUnauthorized when either the HTTP status or the envelope code reports
// an expired token.
func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, &domain.TransportError{Op: "encode request body", Err: err}
		}
		reader = bytes.NewReader(encoded)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, &domain.TransportError{Op: "create request", Err: err}
	}
	request.Header.Set("Authorization", c.currentToken())
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, &domain.TransportError{Op: fmt.Sprintf("%s %s", method, path), Err: err}
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return nil, &domain.TransportError{Op: "read response", Err: err}
	}

	if response.StatusCode == http.StatusUnauthorized {
		return nil, errUnauthorized
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &domain.TransportError{
			Op:  fmt.Sprintf("%s %s: decode envelope (status %d)", method, path, response.StatusCode),
			Err: err,
		}
	}

	switch env.Code {
	case http.StatusOK:
		return env.Data, nil
	case http.StatusUnauthorized:
		return nil, errUnauthorized
	default:
		return nil, &domain.RemoteError{Code: env.Code, Message: env.Message}
	}
}

func decodeData(data json.RawMessage, out any) error {
	if out == nil {
		return nil
	}
	// A success envelope may carry "data": null for mutations.
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &domain.TransportError{Op: "decode envelope data", Err: err}
	}
	return nil
}

func (c *Client) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) clearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.apiKey == "" {
		c.token = ""
	}
}
