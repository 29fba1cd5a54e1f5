// Package ors talks to openrouteservice for address geocoding and driving routes.
package ors

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"evidencija/ports"
)

// DefaultProfile is the routing profile used when none is given
const DefaultProfile = "driving-car"

// Config configures the client
type Config struct {
	APIKey  string
	BaseURL string
	Country string
	Timeout time.Duration
}

// UpstreamError is a failed or malformed openrouteservice response. Status is
// the HTTP status a proxy should answer with; Body is JSON to pass along.
type UpstreamError struct {
	Status int
	Body   json.RawMessage
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("openrouteservice: status %d: %s", e.Status, string(e.Body))
}

// ErrMissingKey is returned by every call when no API key is configured
var ErrMissingKey = errors.New("Missing ORS_API_KEY")

// Client calls the openrouteservice HTTP API
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a client. It is safe for concurrent use.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.openrouteservice.org"
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// Configured reports whether an API key is set
func (c *Client) Configured() bool {
	return c.config.APIKey != ""
}

// SearchRaw runs a geocoding search and returns the response JSON unchanged.
// Responses with an "error" member are failures even under HTTP 200.
func (c *Client) SearchRaw(ctx context.Context, text string) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrMissingKey
	}

	q := url.Values{}
	q.Set("api_key", c.config.APIKey)
	q.Set("text", text)
	q.Set("size", "5")
	if c.config.Country != "" {
		q.Set("boundary.country", c.config.Country)
	}
	endpoint := strings.TrimRight(c.config.BaseURL, "/") + "/geocode/search?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "*/*")

	status, body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	if err := checkFailure(status, body); err != nil {
		return nil, err
	}
	return body, nil
}

// Geocode returns the candidate places for text, best match first
func (c *Client) Geocode(ctx context.Context, text string) ([]ports.Place, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	body, err := c.SearchRaw(ctx, text)
	if err != nil {
		return nil, err
	}

	var places []ports.Place
	gjson.GetBytes(body, "features").ForEach(func(_, feature gjson.Result) bool {
		coords := feature.Get("geometry.coordinates").Array()
		if len(coords) < 2 {
			return true
		}
		places = append(places, ports.Place{
			Label: feature.Get("properties.label").String(),
			// GeoJSON orders [lng, lat]
			Point: ports.Coordinates{Lat: coords[1].Float(), Lng: coords[0].Float()},
		})
		return true
	})
	return places, nil
}

// Directions requests a GeoJSON route and extracts its distance summary
func (c *Client) Directions(ctx context.Context, start, end ports.Coordinates, profile string) (*ports.Route, error) {
	if !c.Configured() {
		return nil, ErrMissingKey
	}
	if profile == "" {
		profile = DefaultProfile
	}

	payload, err := json.Marshal(map[string]interface{}{
		"coordinates":  [][2]float64{{start.Lng, start.Lat}, {end.Lng, end.Lat}},
		"instructions": false,
	})
	if err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson",
		strings.TrimRight(c.config.BaseURL, "/"), url.PathEscape(profile))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "*/*")

	status, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if err := checkFailure(status, body); err != nil {
		return nil, err
	}

	summary := gjson.GetBytes(body, "features.0.properties.summary")
	return &ports.Route{
		DistanceKm: summary.Get("distance").Float() / 1000,
		DurationS:  summary.Get("duration").Float(),
		GeoJSON:    json.RawMessage(body),
	}, nil
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "json") || !gjson.ValidBytes(body) {
		detail, _ := json.Marshal(map[string]interface{}{
			"message":     "Unexpected openrouteservice response",
			"contentType": contentType,
			"rawText":     string(body),
		})
		return 0, nil, &UpstreamError{Status: http.StatusBadGateway, Body: wrapError(detail)}
	}
	return resp.StatusCode, body, nil
}

// checkFailure turns a non-2xx status, or a 200 carrying an "error" member,
// into an UpstreamError. The latter is reported as 400.
func checkFailure(status int, body []byte) error {
	errVal := gjson.GetBytes(body, "error")
	if status < 300 && !errVal.Exists() {
		return nil
	}
	out := body
	if errVal.Exists() {
		out = []byte(errVal.Raw)
	}
	code := status
	if status < 300 {
		code = http.StatusBadRequest
	}
	return &UpstreamError{Status: code, Body: wrapError(out)}
}

// wrapError nests a JSON value under an "error" key
func wrapError(v []byte) json.RawMessage {
	out, err := json.Marshal(map[string]json.RawMessage{"error": json.RawMessage(v)})
	if err != nil {
		return json.RawMessage(`{"error":"unreadable upstream error"}`)
	}
	return out
}
