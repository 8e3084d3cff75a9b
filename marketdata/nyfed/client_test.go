package nyfed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/stirfutures/marketdata/nyfed"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

const sofrPayload = `{
  "refRates": [
    {"effectiveDate": "2025-01-03", "percentRate": 4.31},
    {"effectiveDate": "2025-01-02", "percentRate": "4.30"},
    {"effectiveDate": "2025-01-06", "percentRate": "N/A"},
    {"effectiveDate": "not-a-date", "percentRate": 4.28},
    {"effectiveDate": "2025-01-07", "percentRate": null}
  ]
}`

func TestFetchSOFR(t *testing.T) {
	t.Parallel()

	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sofrPayload))
	}))
	defer srv.Close()

	client := nyfed.NewClientWith(srv.URL, srv.Client())
	series, err := client.FetchSOFR(context.Background(), day(2025, 1, 1), day(2025, 1, 31))
	require.NoError(t, err)

	assert.Equal(t, "/api/rates/secured/sofr/search.json", gotPath)
	assert.Equal(t, "endDate=2025-01-31&startDate=2025-01-01", gotQuery)

	// Rows with non-numeric rates or unparseable dates are dropped; the
	// survivors come back sorted by date.
	require.Equal(t, 2, series.Len())
	obs := series.Observations()
	assert.Equal(t, day(2025, 1, 2), obs[0].Date)
	assert.Equal(t, 4.30, obs[0].Rate)
	assert.Equal(t, day(2025, 1, 3), obs[1].Date)
	assert.Equal(t, 4.31, obs[1].Rate)
}

func TestFetchEFFR_Path(t *testing.T) {
	t.Parallel()

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"refRates": []}`))
	}))
	defer srv.Close()

	client := nyfed.NewClientWith(srv.URL, srv.Client())
	series, err := client.FetchEFFR(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, "/api/rates/unsecured/effr/search.json", gotPath)
	assert.Equal(t, 0, series.Len())
}

func TestFetch_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := nyfed.NewClientWith(srv.URL, srv.Client())
	_, err := client.FetchSOFR(context.Background(), time.Time{}, time.Time{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestFetch_ContextCancelled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"refRates": []}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := nyfed.NewClientWith(srv.URL, srv.Client())
	_, err := client.FetchSOFR(ctx, time.Time{}, time.Time{})
	assert.Error(t, err)
}
