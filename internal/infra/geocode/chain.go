package geocode

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"insight/config"
	"insight/internal/domain/entity"
	"insight/internal/domain/service"
	"insight/internal/errors"
)

// Chain is the debounced two-tier geocoder adapter. Providers are consulted
// in order; the first match wins and later providers are never called.
// All provider failures collapse to a nil result at this boundary, with the
// distinguishing detail logged.
type Chain struct {
	providers []provider
	debounce  time.Duration
	logger    *slog.Logger

	mu      sync.Mutex
	pending chan struct{} // closed when a newer call supersedes the pending one
}

// NewChain builds the provider chain from config. The keyed primary is only
// included when an API key is configured; the free fallback is always
// present.
func NewChain(cfg *config.Config, logger *slog.Logger) service.Geocoder {
	providers := make([]provider, 0, 2)
	if cfg.Geocoder.LocationIQ.APIKey != "" {
		providers = append(providers, newLocationIQProvider(cfg.Geocoder))
	} else {
		logger.Info("locationiq API key not configured, using fallback provider only")
	}
	providers = append(providers, newNominatimProvider(cfg.Geocoder))

	return newChain(providers, cfg.Geocoder.Debounce, logger)
}

func newChain(providers []provider, debounce time.Duration, logger *slog.Logger) *Chain {
	return &Chain{
		providers: providers,
		debounce:  debounce,
		logger:    logger,
	}
}

// Geocode resolves a free-text address. Empty input yields (nil, nil) with
// no network call. A call abandoned by a newer one returns
// service.ErrSuperseded.
func (c *Chain) Geocode(ctx context.Context, address string) (*entity.GeoResult, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, nil
	}

	if err := c.waitQuiet(ctx); err != nil {
		return nil, err
	}

	return c.lookup(ctx, address), nil
}

// waitQuiet enforces the debounce window: at most one pending geocode per
// quiet interval, earlier pending calls are cancelled before they start.
func (c *Chain) waitQuiet(ctx context.Context) error {
	c.mu.Lock()
	if c.pending != nil {
		close(c.pending)
	}
	cancelled := make(chan struct{})
	c.pending = cancelled
	c.mu.Unlock()

	timer := time.NewTimer(c.debounce)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	case <-cancelled:
		return service.ErrSuperseded
	case <-timer.C:
		return nil
	}
}

func (c *Chain) lookup(ctx context.Context, address string) *entity.GeoResult {
	for _, p := range c.providers {
		result, err := p.Lookup(ctx, address)
		if err == nil {
			return result
		}

		if errors.Is(err, ErrNoMatch) {
			c.logger.Debug("geocoding provider had no match",
				slog.String("provider", p.Name()),
				slog.String("address", address))
		} else {
			c.logger.Warn("geocoding provider failed",
				slog.String("provider", p.Name()),
				slog.Any("error", err))
		}
	}

	c.logger.Info("address did not resolve", slog.String("address", address))

	return nil
}
