package geolocate

import (
	"encoding/json"
	"net/http"
	"time"

	"smartwaste/internal/logger"
)

// Client resolves the camera's approximate position from its public IP.
// Lookup is best-effort: every failure degrades to unknown coordinates and
// is never surfaced to the caller.
type Client struct {
	lookupURL  string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a geolocation client against an ip-api style endpoint.
func NewClient(lookupURL string, timeoutSeconds int, logger *logger.Logger) *Client {
	return &Client{
		lookupURL:  lookupURL,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second},
		logger:     logger,
	}
}

// Locate returns the latitude/longitude pair, or (nil, nil) when unknown.
func (c *Client) Locate() (*float64, *float64) {
	resp, err := c.httpClient.Get(c.lookupURL)
	if err != nil {
		c.logger.Warning("Geolocation lookup failed: %v", err)
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warning("Geolocation lookup returned status %d", resp.StatusCode)
		return nil, nil
	}

	var payload struct {
		Lat *float64 `json:"lat"`
		Lon *float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Warning("Geolocation response decode failed: %v", err)
		return nil, nil
	}

	if payload.Lat == nil || payload.Lon == nil {
		return nil, nil
	}
	return payload.Lat, payload.Lon
}
