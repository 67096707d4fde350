package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/meridian-legal/pfas-intake/internal/resilience"
)

const (
	defaultNominatimBaseURL = "https://nominatim.openstreetmap.org"
	defaultUserAgent        = "pfas-intake/1.0"

	// Nominatim's usage policy caps anonymous clients at one request per second.
	defaultNominatimRPS = 1
)

// Nominatim reverse-geocodes through the OSM Nominatim API.
type Nominatim struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NominatimOption configures the Nominatim provider.
type NominatimOption func(*Nominatim)

// WithBaseURL overrides the API base URL (used by tests and self-hosted instances).
func WithBaseURL(u string) NominatimOption {
	return func(n *Nominatim) { n.baseURL = u }
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) NominatimOption {
	return func(n *Nominatim) { n.userAgent = ua }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) NominatimOption {
	return func(n *Nominatim) { n.httpClient = hc }
}

// WithRateLimit sets the requests-per-second limit.
func WithRateLimit(rps float64) NominatimOption {
	return func(n *Nominatim) {
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		n.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewNominatim creates a Nominatim provider with the given options.
func NewNominatim(opts ...NominatimOption) *Nominatim {
	n := &Nominatim{
		baseURL:    defaultNominatimBaseURL,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(defaultNominatimRPS, 1),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Name implements Provider.
func (n *Nominatim) Name() string { return "nominatim" }

// nominatimResponse is the subset of the reverse-geocode response we read.
type nominatimResponse struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

// Reverse implements Provider. Zoom 10 resolves to city granularity, which is
// all the verdict message needs.
func (n *Nominatim) Reverse(ctx context.Context, lat, lng float64) (*Place, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "places: nominatim rate limit")
	}

	params := url.Values{
		"format": {"json"},
		"lat":    {fmt.Sprintf("%f", lat)},
		"lon":    {fmt.Sprintf("%f", lng)},
		"zoom":   {"10"},
	}
	reqURL := n.baseURL + "/reverse?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "places: nominatim build request")
	}
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "places: nominatim request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		err := eris.Errorf("places: nominatim returned status %d", resp.StatusCode)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "places: nominatim read body")
	}

	var parsed nominatimResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, eris.Wrap(err, "places: nominatim parse response")
	}
	if parsed.Error != "" {
		// Nominatim reports "unable to geocode" for open-ocean coordinates.
		return nil, nil
	}
	if parsed.DisplayName == "" {
		return nil, nil
	}
	return &Place{Label: parsed.DisplayName}, nil
}
