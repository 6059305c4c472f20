package gateway

import (
	"context"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/i474232898/weather-lookup/internal/lookup"
)

const (
	weatherPath     = "/api/weather"
	requestIDHeader = "X-Request-ID"
)

var _ lookup.Gateway = (*Client)(nil)

// Client talks to the weather gateway service over HTTP.
type Client struct {
	rest *resty.Client
}

// New creates a Client for the gateway at baseURL. A zero timeout leaves the
// deadline to the caller's context.
func New(baseURL string, timeout time.Duration) *Client {
	rest := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		rest.SetTimeout(timeout)
	}
	return &Client{rest: rest}
}

// Lookup issues one GET /api/weather?city=... round trip. Non-2xx statuses are
// returned as a Response, not an error.
func (c *Client) Lookup(ctx context.Context, city string) (lookup.Response, error) {
	requestID := uuid.NewString()

	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, requestID).
		SetQueryParam("city", city).
		Get(weatherPath)
	if err != nil {
		log.Printf("gateway: lookup %s for %q failed: %v", requestID, city, err)
		return lookup.Response{}, err
	}

	return lookup.Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
	}, nil
}
