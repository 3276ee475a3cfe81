// Package corestack provides a client for the CoRE Stack data APIs: active
// location listings, LULC raster tiles, and micro-watershed boundaries.
package corestack

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"golang.org/x/time/rate"
)

// Client defines the CoRE Stack operations used by the analysis pipeline.
type Client interface {
	// Locations lists states/districts/tehsils with available data.
	Locations(ctx context.Context) ([]Location, error)
	// FetchLULC downloads the LULC tile for a location and year.
	FetchLULC(ctx context.Context, state, district, tehsil string, year int) (*LULCTile, error)
	// FetchBoundaries downloads micro-watershed boundary polygons.
	FetchBoundaries(ctx context.Context, state, district, tehsil string) (*geojson.FeatureCollection, error)
}

// Location is one entry of the active-locations listing.
type Location struct {
	State    string `json:"state"`
	District string `json:"district"`
	Tehsil   string `json:"tehsil"`
	Years    []int  `json:"years"`
}

// LULCTile is a georeferenced categorical raster as served by the API:
// row-major codes plus a six-coefficient affine transform and a CRS
// identifier.
type LULCTile struct {
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	CRS       string     `json:"crs"`
	Transform [6]float64 `json:"transform"`
	Codes     []int      `json:"codes"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit overrides the default request rate limit.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a CoRE Stack API client authenticating with a bearer
// API key.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://api.core-stack.org",
		http: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(5), 5),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// retryableStatusCode returns true if the HTTP status code should trigger a retry.
func retryableStatusCode(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusInternalServerError ||
		code == http.StatusBadGateway ||
		code == http.StatusServiceUnavailable
}

// retryDo executes a GET with rate limiting and exponential backoff on
// transient failures. Returns the body and status code, or the last error
// after exhausting retries.
func (c *httpClient) retryDo(ctx context.Context, req *http.Request) ([]byte, int, error) {
	const maxAttempts = 3
	backoff := 1 * time.Second

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, 0, err
		}

		resp, err := c.http.Do(req.Clone(ctx))
		if err != nil {
			lastErr = err
			if attempt < maxAttempts {
				select {
				case <-ctx.Done():
					return nil, 0, ctx.Err()
				case <-time.After(backoff):
				}
				backoff *= 2
				continue
			}
			return nil, 0, lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, resp.StatusCode, eris.Wrap(readErr, "corestack: read response body")
		}

		if retryableStatusCode(resp.StatusCode) && attempt < maxAttempts {
			lastErr = eris.Errorf("corestack: status %d: %s", resp.StatusCode, string(body))
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}

		return body, resp.StatusCode, nil
	}

	return nil, 0, lastErr
}

// get runs an authenticated GET and returns the body, mapping transport and
// non-200 failures to FetchError.
func (c *httpClient) get(ctx context.Context, op, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Op: op, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	body, statusCode, err := c.retryDo(ctx, req)
	if err != nil {
		return nil, &FetchError{Op: op, Err: err}
	}
	if statusCode != http.StatusOK {
		return nil, &FetchError{
			Op:         op,
			StatusCode: statusCode,
			Err:        eris.Errorf("unexpected status %d: %s", statusCode, string(body)),
		}
	}
	return body, nil
}

func (c *httpClient) Locations(ctx context.Context) ([]Location, error) {
	body, err := c.get(ctx, "locations", c.baseURL+"/v1/locations/active")
	if err != nil {
		return nil, err
	}

	var result struct {
		Locations []Location `json:"locations"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &DecodeError{Op: "locations", Err: err}
	}
	return result.Locations, nil
}

func (c *httpClient) FetchLULC(ctx context.Context, state, district, tehsil string, year int) (*LULCTile, error) {
	url := fmt.Sprintf("%s/v1/lulc/%s/%s/%s?year=%d", c.baseURL, state, district, tehsil, year)
	body, err := c.get(ctx, "lulc", url)
	if err != nil {
		return nil, err
	}

	var tile LULCTile
	if err := json.Unmarshal(body, &tile); err != nil {
		return nil, &DecodeError{Op: "lulc", Err: err}
	}
	if tile.Width <= 0 || tile.Height <= 0 {
		return nil, &DecodeError{Op: "lulc", Err: eris.Errorf("invalid dimensions %dx%d", tile.Width, tile.Height)}
	}
	if len(tile.Codes) != tile.Width*tile.Height {
		return nil, &DecodeError{
			Op:  "lulc",
			Err: eris.Errorf("%d codes for %dx%d tile", len(tile.Codes), tile.Width, tile.Height),
		}
	}
	return &tile, nil
}

func (c *httpClient) FetchBoundaries(ctx context.Context, state, district, tehsil string) (*geojson.FeatureCollection, error) {
	url := fmt.Sprintf("%s/v1/boundaries/mws/%s/%s/%s", c.baseURL, state, district, tehsil)
	body, err := c.get(ctx, "boundaries", url)
	if err != nil {
		return nil, err
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(body, &fc); err != nil {
		return nil, &DecodeError{Op: "boundaries", Err: err}
	}
	return &fc, nil
}
