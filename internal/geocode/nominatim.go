// Package geocode resolves street addresses to a best-effort city/county
// pair via the Nominatim (OpenStreetMap) API.
package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Location is the resolved jurisdiction context for an address. Either field
// may be empty; an unresolved address is not an error.
type Location struct {
	City   string
	County string
}

// Resolver maps an address string to a best-effort Location.
type Resolver interface {
	Resolve(ctx context.Context, address string) (*Location, error)
}

// Client resolves addresses against a Nominatim endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL overrides the Nominatim endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithUserAgent sets the User-Agent header. Nominatim's usage policy
// requires an identifying agent.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithRateLimit sets the requests-per-second limit for Nominatim calls.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewClient creates a Nominatim client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://nominatim.openstreetmap.org",
		userAgent:  "Spyglass-PermitBot/1.0 (+https://spyglassrealty.com)",
		limiter:    rate.NewLimiter(1, 1), // Nominatim policy: max 1 req/s
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// nominatimPlace is one entry in the Nominatim search response.
type nominatimPlace struct {
	Address struct {
		City         string `json:"city"`
		Town         string `json:"town"`
		Village      string `json:"village"`
		Municipality string `json:"municipality"`
		Hamlet       string `json:"hamlet"`
		County       string `json:"county"`
	} `json:"address"`
}

// Resolve implements Resolver. An address Nominatim cannot place yields an
// empty Location, not an error; errors are transport or endpoint failures.
func (c *Client) Resolve(ctx context.Context, address string) (*Location, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "geocode: rate limit")
	}

	params := url.Values{
		"q":              {address},
		"format":         {"json"},
		"addressdetails": {"1"},
		"limit":          {"1"},
	}

	reqURL := c.baseURL + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: build request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("geocode: nominatim returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: read body")
	}

	var places []nominatimPlace
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, eris.Wrap(err, "geocode: parse response")
	}

	if len(places) == 0 {
		return &Location{}, nil
	}

	comp := places[0].Address
	// Prefer city, then progressively smaller settlement names.
	city := firstNonEmpty(comp.City, comp.Town, comp.Village, comp.Municipality, comp.Hamlet)
	return &Location{City: city, County: comp.County}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
