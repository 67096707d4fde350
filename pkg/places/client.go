// Package places resolves coordinates to human-readable place labels. The
// lookup is a best-effort enrichment: callers treat any failure as "Unknown
// location" and carry on.
package places

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/meridian-legal/pfas-intake/internal/resilience"
)

// Place is a resolved location label.
type Place struct {
	Label string `json:"label"`
}

// Provider is a single reverse-lookup backend. A nil Place with a nil error
// means the provider had no result for the coordinate.
type Provider interface {
	Name() string
	Reverse(ctx context.Context, lat, lng float64) (*Place, error)
}

// Client tries providers in order, caching resolved labels. Each provider is
// guarded by its own circuit breaker so a dead backend is skipped cheaply.
type Client struct {
	providers []Provider
	breakers  []*resilience.CircuitBreaker
	cache     *Cache
	retry     resilience.RetryConfig
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithCache attaches a lookup cache.
func WithCache(cache *Cache) ClientOption {
	return func(c *Client) { c.cache = cache }
}

// WithRetryConfig overrides the per-provider retry settings.
func WithRetryConfig(cfg resilience.RetryConfig) ClientOption {
	return func(c *Client) { c.retry = cfg }
}

// NewClient creates a Client over the given providers, tried in order.
func NewClient(providers []Provider, opts ...ClientOption) *Client {
	c := &Client{
		providers: providers,
		retry:     resilience.DefaultRetryConfig(),
	}
	c.retry.MaxAttempts = 2
	for _, opt := range opts {
		opt(c)
	}
	for range c.providers {
		c.breakers = append(c.breakers, resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{}))
	}
	return c
}

// Lookup resolves a coordinate to a place label. It returns an error only
// when every provider missed or failed; callers fail open on error.
func (c *Client) Lookup(ctx context.Context, lat, lng float64) (*Place, error) {
	if c.cache != nil {
		if p, err := c.cache.Get(ctx, lat, lng); err == nil && p != nil {
			return p, nil
		}
	}

	var lastErr error
	for i, provider := range c.providers {
		br := c.breakers[i]
		if err := br.Allow(); err != nil {
			zap.L().Debug("places: provider circuit open, skipping",
				zap.String("provider", provider.Name()),
			)
			lastErr = err
			continue
		}

		p, err := resilience.DoVal(ctx, c.retry, func(ctx context.Context) (*Place, error) {
			return provider.Reverse(ctx, lat, lng)
		})
		br.Record(err)
		if err != nil {
			zap.L().Debug("places: provider failed, trying next",
				zap.String("provider", provider.Name()),
				zap.Error(err),
			)
			lastErr = err
			continue
		}
		if p == nil || p.Label == "" {
			continue
		}

		if c.cache != nil {
			if cacheErr := c.cache.Put(ctx, lat, lng, p); cacheErr != nil {
				zap.L().Debug("places: cache store failed", zap.Error(cacheErr))
			}
		}
		return p, nil
	}

	if lastErr != nil {
		return nil, eris.Wrap(lastErr, "places: lookup")
	}
	return nil, eris.New("places: no provider returned a result")
}
