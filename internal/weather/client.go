// Package weather fetches daily forecasts from the Visual Crossing timeline API.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"
)

const DefaultBaseURL = "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline"

// maxErrorBody bounds how much of a failed response ends up in a ServiceError.
const maxErrorBody = 512

var (
	ErrMissingAPIKey      = errors.New("weather API key is not configured")
	ErrServiceUnavailable = errors.New("weather service unavailable")
)

// ServiceError describes a failed timeline request. It matches
// ErrServiceUnavailable with errors.Is.
type ServiceError struct {
	Location   string
	StatusCode int
	Body       string
	Err        error
}

func (e *ServiceError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "weather request for %q failed", e.Location)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " with status %d", e.StatusCode)
	}
	if e.Body != "" {
		fmt.Fprintf(&b, ": %s", e.Body)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ServiceError) Unwrap() error { return e.Err }

func (e *ServiceError) Is(target error) bool { return target == ErrServiceUnavailable }

// Forecast is the decoded timeline payload. Raw keeps the body exactly as
// the service sent it.
type Forecast struct {
	ResolvedAddress string          `json:"resolvedAddress"`
	Address         string          `json:"address"`
	Timezone        string          `json:"timezone"`
	Description     string          `json:"description"`
	Days            []Day           `json:"days"`
	Raw             json.RawMessage `json:"-"`
}

// Day is one entry of the timeline's "days" array, in metric units.
type Day struct {
	Datetime     string   `json:"datetime"`
	TempMax      float64  `json:"tempmax"`
	TempMin      float64  `json:"tempmin"`
	Temp         float64  `json:"temp"`
	Humidity     float64  `json:"humidity"`
	Precip       float64  `json:"precip"`
	PrecipProb   float64  `json:"precipprob"`
	WindSpeed    float64  `json:"windspeed"`
	Conditions   string   `json:"conditions"`
	Description  string   `json:"description"`
	Icon         string   `json:"icon"`
	Sunrise      string   `json:"sunrise"`
	Sunset       string   `json:"sunset"`
	UVIndex      float64  `json:"uvindex"`
	FeelsLikeMax float64  `json:"feelslikemax"`
	FeelsLikeMin float64  `json:"feelslikemin"`
	CloudCover   float64  `json:"cloudcover"`
	SevereRisk   float64  `json:"severerisk,omitempty"`
	PrecipType   []string `json:"preciptype,omitempty"`
}

// Client calls the timeline endpoint. It makes one attempt per call and
// relies on the caller's context for cancellation.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient returns ErrMissingAPIKey when apiKey is empty.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Fetch requests daily metric weather for location over the inclusive range
// [startDate, endDate]. Dates are YYYY-MM-DD.
func (c *Client) Fetch(ctx context.Context, location, startDate, endDate string) (*Forecast, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.timelineURL(location, startDate, endDate), nil)
	if err != nil {
		return nil, &ServiceError{Location: location, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ServiceError{Location: location, Err: c.redact(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ServiceError{Location: location, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServiceError{
			Location:   location,
			StatusCode: resp.StatusCode,
			Body:       excerpt(body),
		}
	}

	var forecast Forecast
	if err := json.Unmarshal(body, &forecast); err != nil {
		return nil, &ServiceError{
			Location:   location,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to decode response: %w", err),
		}
	}
	forecast.Raw = json.RawMessage(body)
	return &forecast, nil
}

func (c *Client) timelineURL(location, startDate, endDate string) string {
	q := url.Values{}
	q.Set("unitGroup", "metric")
	q.Set("include", "days")
	q.Set("key", c.apiKey)
	q.Set("contentType", "json")

	return fmt.Sprintf("%s/%s/%s/%s?%s",
		c.baseURL,
		url.PathEscape(location),
		url.PathEscape(startDate),
		url.PathEscape(endDate),
		q.Encode(),
	)
}

// redact strips the API key from the URL quoted by transport errors. The
// error chain is kept so callers can still match context cancellation.
func (c *Client) redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = strings.NewReplacer(
			c.apiKey, "REDACTED",
			url.QueryEscape(c.apiKey), "REDACTED",
		).Replace(urlErr.URL)
	}
	return err
}

// excerpt trims body to at most maxErrorBody bytes without splitting a rune.
func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) <= maxErrorBody {
		return s
	}
	cut := maxErrorBody
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
