package transit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNoData means the API answered but carried no usable arrival.
var ErrNoData = errors.New("no arrival data")

// ErrNotConfigured means no endpoint or stop was set.
var ErrNotConfigured = errors.New("transit endpoint not configured")

// ArrivalFetcher is implemented by *Client and stubbed in tests.
type ArrivalFetcher interface {
	FetchArrival(ctx context.Context) (string, error)
}

var _ ArrivalFetcher = (*Client)(nil)

// Client queries a stop-arrivals endpoint.
type Client struct {
	endpoint  *url.URL
	stopParam string
	stopID    string
	http      *http.Client
	userAgent string
}

const (
	defaultStopParam = "stop_id"
	defaultTimeout   = 5 * time.Second
	defaultUserAgent = "pulse/0.1"
)

// Options configure NewClient.
type Options struct {
	Endpoint  string
	StopParam string
	StopID    string
	Timeout   time.Duration
	UserAgent string
}

// NewClient validates opts and builds a Client.
func NewClient(opts Options) (*Client, error) {
	endpoint := strings.TrimSpace(opts.Endpoint)
	stopID := strings.TrimSpace(opts.StopID)
	if endpoint == "" || stopID == "" {
		return nil, ErrNotConfigured
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("endpoint %q: scheme must be http or https", endpoint)
	}

	param := strings.TrimSpace(opts.StopParam)
	if param == "" {
		param = defaultStopParam
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}

	return &Client{
		endpoint:  u,
		stopParam: param,
		stopID:    stopID,
		http:      &http.Client{Timeout: timeout},
		userAgent: ua,
	}, nil
}

type arrival struct {
	BTime2 *string `json:"btime2"`
}

// FetchArrival performs one GET and returns the first entry's btime2 field.
func (c *Client) FetchArrival(ctx context.Context) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}

	reqURL := *c.endpoint
	values := reqURL.Query()
	values.Set(c.stopParam, c.stopID)
	reqURL.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("arrivals returned status %d", resp.StatusCode)
	}

	var payload []arrival
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(payload) == 0 || payload[0].BTime2 == nil {
		return "", ErrNoData
	}
	value := strings.TrimSpace(*payload[0].BTime2)
	if value == "" {
		return "", ErrNoData
	}
	return value, nil
}
