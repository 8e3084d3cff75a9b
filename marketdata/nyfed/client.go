// Package nyfed fetches SOFR and EFFR reference-rate fixings from the New
// York Fed markets API and caches them on disk. The pricing core never
// touches this package directly; it consumes the rates.Series this package
// produces.
package nyfed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/meenmo/stirfutures/rates"
)

const (
	defaultBaseURL = "https://markets.newyorkfed.org"

	sofrPath = "/api/rates/secured/sofr/search.json"
	effrPath = "/api/rates/unsecured/effr/search.json"
)

// Client calls the NY Fed reference-rates API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client against the production NY Fed API with a 30s
// timeout.
func NewClient() *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWith overrides the base URL and HTTP client; zero values fall
// back to the defaults. Used by tests against httptest servers.
func NewClientWith(baseURL string, httpClient *http.Client) *Client {
	c := NewClient()
	if baseURL != "" {
		c.baseURL = baseURL
	}
	if httpClient != nil {
		c.httpClient = httpClient
	}
	return c
}

// FetchSOFR fetches secured overnight financing rate fixings. Zero start
// or end leaves that side of the window unbounded.
func (c *Client) FetchSOFR(ctx context.Context, start, end time.Time) (*rates.Series, error) {
	return c.fetchRefRate(ctx, "sofr", sofrPath, start, end)
}

// FetchEFFR fetches effective federal funds rate fixings.
func (c *Client) FetchEFFR(ctx context.Context, start, end time.Time) (*rates.Series, error) {
	return c.fetchRefRate(ctx, "effr", effrPath, start, end)
}

type refRatesResponse struct {
	RefRates []refRate `json:"refRates"`
}

type refRate struct {
	EffectiveDate string          `json:"effectiveDate"`
	PercentRate   json.RawMessage `json:"percentRate"`
}

// parseRate accepts the percentRate field as either a JSON number or a
// numeric string; anything else marks the row for dropping.
func parseRate(raw json.RawMessage) (float64, bool) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" || s == "null" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (c *Client) fetchRefRate(ctx context.Context, name, path string, start, end time.Time) (*rates.Series, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("nyfed: %w", err)
	}
	q := u.Query()
	if !start.IsZero() {
		q.Set("startDate", start.Format("2006-01-02"))
	}
	if !end.IsZero() {
		q.Set("endDate", end.Format("2006-01-02"))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("nyfed: %s: %w", name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nyfed: %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nyfed: %s: unexpected status %s", name, resp.Status)
	}

	var payload refRatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("nyfed: %s: decode: %w", name, err)
	}

	// Rows with unparseable dates or non-numeric rates are dropped so the
	// core only ever sees clean fixings.
	obs := make([]rates.Observation, 0, len(payload.RefRates))
	dropped := 0
	for _, r := range payload.RefRates {
		d, err := time.Parse("2006-01-02", r.EffectiveDate)
		if err != nil {
			dropped++
			continue
		}
		rate, ok := parseRate(r.PercentRate)
		if !ok {
			dropped++
			continue
		}
		obs = append(obs, rates.Observation{Date: d.UTC(), Rate: rate})
	}

	log.Debug().
		Str("rate", name).
		Int("rows", len(obs)).
		Int("dropped", dropped).
		Msg("fetched NY Fed fixings")

	return rates.New(obs), nil
}
