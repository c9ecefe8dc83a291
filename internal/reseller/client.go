package reseller

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"

	"github.com/benx421/proxy-ledger/internal/config"
)

const (
	tokenPath       = "/user/token/get"
	maxResponseSize = 4 << 20
	logBodyLimit    = 512
	errorBodyLimit  = 2048
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Client talks to the proxy reseller REST API. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	tokens     *TokenCache
	breaker    *gobreaker.CircuitBreaker[*Response]
	logger     *slog.Logger
	baseURL    string
	login      string
	password   string
	timeout    time.Duration
}

// NewClient creates a client for the reseller API described by cfg
func NewClient(cfg *config.ResellerConfig, logger *slog.Logger) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("component", "reseller"),
		baseURL:    cfg.BaseURL,
		login:      cfg.Login,
		password:   cfg.Password,
		timeout:    cfg.Timeout,
	}
	c.tokens = NewTokenCache(c.fetchToken, cfg.TokenTTL, c.logger)
	c.breaker = newBreaker(cfg, c.logger)
	return c
}

func newBreaker(cfg *config.ResellerConfig, logger *slog.Logger) *gobreaker.CircuitBreaker[*Response] {
	threshold := uint32(max(cfg.BreakerFailures, 1))

	return gobreaker.NewCircuitBreaker[*Response](gobreaker.Settings{
		Name:        "reseller-api",
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// A 4xx answer means the remote is up and rejected our input.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var apiErr *RemoteAPIError
			return errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			breakerState.WithLabelValues(name).Set(float64(to))
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

// Tokens exposes the token cache
func (c *Client) Tokens() *TokenCache {
	return c.tokens
}

// CreateSubUser creates a sub-user. Zero threads and sticky range fall back to the defaults.
func (c *Client) CreateSubUser(ctx context.Context, params CreateSubUserParams) (*Response, error) {
	params.applyDefaults()
	if err := validate.Struct(params); err != nil {
		return nil, fmt.Errorf("invalid sub-user params: %w", err)
	}

	body := map[string]any{
		"label":        params.Label,
		"threads":      params.Threads,
		"sticky_range": params.StickyRange,
	}
	if len(params.AllowedIPs) > 0 {
		body["allowed_ips"] = params.AllowedIPs
	}

	return c.post(ctx, "/sub-user/create", body)
}

// UpdateSubUser sends the non-nil fields of params for the given sub-user
func (c *Client) UpdateSubUser(ctx context.Context, subUserID int64, params UpdateSubUserParams) (*Response, error) {
	if err := validate.Struct(params); err != nil {
		return nil, fmt.Errorf("invalid sub-user params: %w", err)
	}

	body := map[string]any{"subuser_id": subUserID}
	if params.Label != nil {
		body["label"] = *params.Label
	}
	if params.Threads != nil {
		body["threads"] = *params.Threads
	}
	if params.AllowedIPs != nil {
		body["allowed_ips"] = *params.AllowedIPs
	}

	return c.post(ctx, "/sub-user/update", body)
}

// DeleteSubUser removes a sub-user on the reseller side
func (c *Client) DeleteSubUser(ctx context.Context, subUserID int64) error {
	_, err := c.post(ctx, "/sub-user/delete", map[string]any{"subuser_id": subUserID})
	return err
}

// GetSubUser fetches one sub-user
func (c *Client) GetSubUser(ctx context.Context, subUserID int64) (*Response, error) {
	return c.get(ctx, "/sub-user/get", url.Values{"subuser_id": {strconv.FormatInt(subUserID, 10)}})
}

// ListSubUsers fetches a page of sub-users
func (c *Client) ListSubUsers(ctx context.Context, limit, offset int) (*Response, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}
	return c.get(ctx, "/sub-user/list", params)
}

// GetSubUserBalance fetches the remaining traffic of a sub-user
func (c *Client) GetSubUserBalance(ctx context.Context, subUserID int64) (*Response, error) {
	return c.get(ctx, "/sub-user/balance/get", url.Values{"subuser_id": {strconv.FormatInt(subUserID, 10)}})
}

// AddSubUserBalance adds traffic to a sub-user
func (c *Client) AddSubUserBalance(ctx context.Context, subUserID, traffic int64) (*Response, error) {
	return c.post(ctx, "/sub-user/balance/add", map[string]any{
		"subuser_id": subUserID,
		"traffic":    traffic,
	})
}

// GetBalance fetches the reseller's own balance
func (c *Client) GetBalance(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/user/balance", nil)
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, params, nil)
}

func (c *Client) post(ctx context.Context, path string, body map[string]any) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body map[string]any) (*Response, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.breaker.Execute(func() (*Response, error) {
		return c.send(ctx, method, path, token.Value, query, body)
	})
	if err == nil {
		return resp, nil
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		requestsTotal.WithLabelValues(path, "rejected").Inc()
		return nil, &RemoteAPIError{Method: method, Path: path, Err: err}
	}

	var apiErr *RemoteAPIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		c.tokens.Invalidate(token.Value)
	}
	return nil, err
}

func (c *Client) send(ctx context.Context, method, path, token string, query url.Values, body map[string]any) (*Response, error) {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return nil, &RemoteAPIError{Method: method, Path: path, Err: err}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	requestDuration.WithLabelValues(path).Observe(latency.Seconds())

	if err != nil {
		requestsTotal.WithLabelValues(path, "error").Inc()
		c.logger.Error("reseller request failed",
			"method", method, "path", path, "latency_ms", latency.Milliseconds(), "error", err)
		return nil, &RemoteAPIError{Method: method, Path: path, Err: err}
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	if err != nil {
		requestsTotal.WithLabelValues(path, "error").Inc()
		return nil, &RemoteAPIError{Method: method, Path: path, Status: httpResp.StatusCode, Err: err}
	}

	requestsTotal.WithLabelValues(path, strconv.Itoa(httpResp.StatusCode)).Inc()
	logBody := truncate(raw, logBodyLimit)
	if path == tokenPath {
		logBody = "[redacted]"
	}
	c.logger.Info("reseller request",
		"method", method,
		"path", path,
		"status", httpResp.StatusCode,
		"latency_ms", latency.Milliseconds(),
		"body", logBody,
	)

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, &RemoteAPIError{
			Method: method,
			Path:   path,
			Status: httpResp.StatusCode,
			Body:   truncate(raw, errorBodyLimit),
		}
	}

	resp, err := decodeResponse(httpResp.StatusCode, raw)
	if err != nil {
		return nil, &RemoteAPIError{
			Method: method,
			Path:   path,
			Status: httpResp.StatusCode,
			Body:   truncate(raw, errorBodyLimit),
			Err:    fmt.Errorf("malformed response: %w", err),
		}
	}
	return resp, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body map[string]any) (*http.Request, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// fetchToken exchanges the configured credentials for a bearer token
func (c *Client) fetchToken(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.send(ctx, http.MethodPost, tokenPath, "", nil, map[string]any{
		"login":    c.login,
		"password": c.password,
	})
	if err != nil {
		var apiErr *RemoteAPIError
		if errors.As(err, &apiErr) {
			return "", &AuthError{Status: apiErr.Status, Body: apiErr.Body, Err: apiErr}
		}
		return "", &AuthError{Err: err}
	}

	token, ok := resp.String("token")
	if !ok || token == "" {
		return "", &AuthError{Status: resp.StatusCode, Body: truncate(resp.Raw, errorBodyLimit), Err: ErrNoToken}
	}
	return token, nil
}
