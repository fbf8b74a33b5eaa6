package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goaTimeline = `{
  "resolvedAddress": "Goa, India",
  "address": "Goa",
  "timezone": "Asia/Kolkata",
  "description": "Similar temperatures continuing with no rain expected.",
  "days": [
    {"datetime": "2025-03-01", "tempmax": 33.1, "tempmin": 23.4, "temp": 28.2, "conditions": "Clear", "icon": "clear-day"},
    {"datetime": "2025-03-02", "tempmax": 32.8, "tempmin": 23.0, "temp": 27.9, "conditions": "Partially cloudy", "icon": "partly-cloudy-day"}
  ]
}`

func TestFetchBuildsTimelineRequest(t *testing.T) {
	var gotPath, gotRawPath string
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRawPath = r.URL.EscapedPath()
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(goaTimeline))
	}))
	defer srv.Close()

	client, err := NewClient("wx-key", WithBaseURL(srv.URL+"/timeline/"))
	require.NoError(t, err)

	forecast, err := client.Fetch(context.Background(), "Panaji, Goa", "2025-03-01", "2025-03-04")
	require.NoError(t, err)

	assert.Equal(t, "/timeline/Panaji, Goa/2025-03-01/2025-03-04", gotPath)
	assert.Equal(t, "/timeline/Panaji%2C%20Goa/2025-03-01/2025-03-04", gotRawPath)
	assert.Equal(t, "metric", gotQuery["unitGroup"][0])
	assert.Equal(t, "days", gotQuery["include"][0])
	assert.Equal(t, "wx-key", gotQuery["key"][0])
	assert.Equal(t, "json", gotQuery["contentType"][0])

	assert.Equal(t, "Goa, India", forecast.ResolvedAddress)
	require.Len(t, forecast.Days, 2)
	assert.Equal(t, "2025-03-01", forecast.Days[0].Datetime)
	assert.InDelta(t, 33.1, forecast.Days[0].TempMax, 0.001)
	assert.JSONEq(t, goaTimeline, string(forecast.Raw))
}

func TestFetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Invalid location parameter value.", http.StatusBadRequest)
	}))
	defer srv.Close()

	client, err := NewClient("wx-key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), "Atlantis", "2025-03-01", "2025-03-02")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServiceUnavailable)

	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
	assert.Equal(t, "Atlantis", svcErr.Location)
	assert.Contains(t, svcErr.Body, "Invalid location")
}

func TestFetchTransportFailureRedactsKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	client, err := NewClient("super-secret-key", WithBaseURL(base))
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), "Goa", "2025-03-01", "2025-03-02")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
	assert.NotContains(t, err.Error(), "super-secret-key")
}

func TestFetchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	client, err := NewClient("wx-key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), "Goa", "2025-03-01", "2025-03-02")
	assert.ErrorIs(t, err, ErrServiceUnavailable)
	assert.Contains(t, err.Error(), "decode")
}

func TestFetchLongErrorBodyIsTruncated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(strings.Repeat("e", 4*maxErrorBody)))
	}))
	defer srv.Close()

	client, err := NewClient("wx-key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), "Goa", "2025-03-01", "2025-03-02")
	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Len(t, svcErr.Body, maxErrorBody+3)
}

func TestFetchCanceledKeepsCause(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(goaTimeline))
	}))
	defer srv.Close()

	client, err := NewClient("super-secret-key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.Fetch(ctx, "Goa", "2025-03-01", "2025-03-02")

	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
	assert.NotContains(t, err.Error(), "super-secret-key")
	assert.Contains(t, err.Error(), "REDACTED")
}

func TestExcerptKeepsRunesWhole(t *testing.T) {
	body := strings.Repeat("€", maxErrorBody)

	got := excerpt([]byte(body))

	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
	trimmed := strings.TrimSuffix(got, "...")
	assert.LessOrEqual(t, len(trimmed), maxErrorBody)
	assert.Equal(t, maxErrorBody/3*3, len(trimmed))
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient("  ")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
