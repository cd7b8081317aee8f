package geocode

import (
	"context"
	"net/http"
	"net/url"

	"insight/config"
	"insight/internal/domain/entity"
	"insight/internal/errors"

	"golang.org/x/time/rate"
)

// locationIQProvider queries the keyed primary geocoding service.
type locationIQProvider struct {
	endpoint string
	apiKey   string
	client   *http.Client
	limiter  *rate.Limiter
}

func newLocationIQProvider(cfg *config.GeocoderConfig) *locationIQProvider {
	return &locationIQProvider{
		endpoint: cfg.LocationIQ.Endpoint,
		apiKey:   cfg.LocationIQ.APIKey,
		client:   &http.Client{Timeout: cfg.RequestTimeout},
		limiter:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

func (p *locationIQProvider) Name() string {
	return "locationiq"
}

func (p *locationIQProvider) Lookup(ctx context.Context, address string) (*entity.GeoResult, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	query := url.Values{}
	query.Set("key", p.apiKey)
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build locationiq request")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "locationiq request")
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, errors.Wrap(err, "locationiq response")
	}

	return decodeFirstMatch(resp.Body)
}
