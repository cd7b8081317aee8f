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

// nominatimProvider queries the free fallback service. Nominatim's usage
// policy requires an identifying User-Agent and at most one request per
// second, enforced by the limiter.
type nominatimProvider struct {
	endpoint  string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
}

func newNominatimProvider(cfg *config.GeocoderConfig) *nominatimProvider {
	return &nominatimProvider{
		endpoint:  cfg.Nominatim.Endpoint,
		userAgent: cfg.Nominatim.UserAgent,
		client:    &http.Client{Timeout: cfg.RequestTimeout},
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

func (p *nominatimProvider) Name() string {
	return "nominatim"
}

func (p *nominatimProvider) Lookup(ctx context.Context, address string) (*entity.GeoResult, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build nominatim request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "nominatim request")
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, errors.Wrap(err, "nominatim response")
	}

	return decodeFirstMatch(resp.Body)
}
