package reseller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTokenTTL is one hour short of the 24h lifetime the reseller issues,
// leaving room for clock drift between the two sides.
const DefaultTokenTTL = 23 * time.Hour

// AuthToken is an issued bearer token. It is replaced wholesale on refresh.
type AuthToken struct {
	Expiry time.Time
	Value  string
}

// Valid reports whether the token can still be used at the given instant
func (t AuthToken) Valid(now time.Time) bool {
	return t.Value != "" && now.Before(t.Expiry)
}

// TokenFetcher obtains a fresh token value from the remote token endpoint
type TokenFetcher func(ctx context.Context) (string, error)

// TokenCache holds a single bearer token. Concurrent callers that find it
// missing or expired share one refresh call.
type TokenCache struct {
	token  AuthToken
	fetch  TokenFetcher
	now    func() time.Time
	logger *slog.Logger
	group  singleflight.Group
	ttl    time.Duration
	mu     sync.RWMutex
}

// NewTokenCache creates an empty cache that refreshes through fetch
func NewTokenCache(fetch TokenFetcher, ttl time.Duration, logger *slog.Logger) *TokenCache {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenCache{
		fetch:  fetch,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// Token returns the cached token, refreshing it first when absent or expired
func (c *TokenCache) Token(ctx context.Context) (AuthToken, error) {
	if tok, ok := c.cached(); ok {
		return tok, nil
	}

	ch := c.group.DoChan("token", func() (any, error) {
		if tok, ok := c.cached(); ok {
			return tok, nil
		}
		return c.refresh(ctx)
	})

	select {
	case <-ctx.Done():
		return AuthToken{}, &AuthError{Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return AuthToken{}, res.Err
		}
		return res.Val.(AuthToken), nil
	}
}

// Invalidate drops the cached token if it still holds the given value, so the
// next call refreshes. A token refreshed concurrently is left alone.
func (c *TokenCache) Invalidate(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token.Value == value {
		c.token = AuthToken{}
		c.logger.Info("reseller token invalidated")
	}
}

func (c *TokenCache) cached() (AuthToken, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.token.Valid(c.now()) {
		return c.token, true
	}
	return AuthToken{}, false
}

func (c *TokenCache) refresh(ctx context.Context) (AuthToken, error) {
	// The shared refresh must not be cancelled by whichever caller happened to start it.
	value, err := c.fetch(context.WithoutCancel(ctx))
	if err != nil {
		tokenRefreshes.WithLabelValues("failure").Inc()
		c.logger.Error("reseller token refresh failed", "error", err)
		var authErr *AuthError
		if errors.As(err, &authErr) {
			return AuthToken{}, err
		}
		return AuthToken{}, &AuthError{Err: err}
	}

	tok := AuthToken{Value: value, Expiry: c.now().Add(c.ttl)}

	c.mu.Lock()
	c.token = tok
	c.mu.Unlock()

	tokenRefreshes.WithLabelValues("success").Inc()
	c.logger.Info("reseller token refreshed", "expires_at", tok.Expiry)

	return tok, nil
}
