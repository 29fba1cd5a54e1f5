package ors

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"evidencija/ports"
)

const searchBody = `{"features":[
 {"properties":{"label":"Ilica 1, Zagreb"},"geometry":{"coordinates":[15.97,45.81]}},
 {"properties":{"label":"broken"},"geometry":{"coordinates":[]}}
]}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{APIKey: "key", BaseURL: srv.URL, Country: "HR"})
}

func TestGeocode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocode/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "key", q.Get("api_key"))
		assert.Equal(t, "Ilica 1", q.Get("text"))
		assert.Equal(t, "5", q.Get("size"))
		assert.Equal(t, "HR", q.Get("boundary.country"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, searchBody)
	})

	places, err := client.Geocode(context.Background(), " Ilica 1 ")
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "Ilica 1, Zagreb", places[0].Label)
	assert.Equal(t, ports.Coordinates{Lat: 45.81, Lng: 15.97}, places[0].Point)
}

func TestGeocodeBlankTextSkipsRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("unexpected request")
	})
	places, err := client.Geocode(context.Background(), "  ")
	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestSearchRawErrorUnder200(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		io.WriteString(w, `{"error":{"code":2010,"message":"bad text"}}`)
	})

	_, err := client.SearchRaw(context.Background(), "x")
	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusBadRequest, upstream.Status)
	assert.Equal(t, "bad text", gjson.GetBytes(upstream.Body, "error.message").String())
}

func TestSearchRawUpstreamStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"message":"quota"}`)
	})

	_, err := client.SearchRaw(context.Background(), "x")
	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusForbidden, upstream.Status)
	assert.Equal(t, "quota", gjson.GetBytes(upstream.Body, "error.message").String())
}

func TestSearchRawNonJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, "<html>gateway</html>")
	})

	_, err := client.SearchRaw(context.Background(), "x")
	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusBadGateway, upstream.Status)
	assert.Equal(t, "text/html", gjson.GetBytes(upstream.Body, "error.contentType").String())
}

func TestMissingKey(t *testing.T) {
	client := NewClient(Config{})
	assert.False(t, client.Configured())

	_, err := client.SearchRaw(context.Background(), "x")
	assert.ErrorIs(t, err, ErrMissingKey)
	_, err = client.Directions(context.Background(), ports.Coordinates{}, ports.Coordinates{}, "")
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestDirections(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/directions/driving-car/geojson", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("Authorization"))

		var payload struct {
			Coordinates  [][2]float64 `json:"coordinates"`
			Instructions bool         `json:"instructions"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, [][2]float64{{15.9, 45.8}, {16.4, 43.5}}, payload.Coordinates)
		assert.False(t, payload.Instructions)

		w.Header().Set("Content-Type", "application/geo+json;charset=UTF-8")
		io.WriteString(w, `{"type":"FeatureCollection","features":[{"properties":{"summary":{"distance":12345.6,"duration":900}}}]}`)
	})

	route, err := client.Directions(context.Background(),
		ports.Coordinates{Lat: 45.8, Lng: 15.9}, ports.Coordinates{Lat: 43.5, Lng: 16.4}, "")
	require.NoError(t, err)
	assert.InDelta(t, 12.3456, route.DistanceKm, 1e-9)
	assert.Equal(t, 900.0, route.DurationS)
	assert.Equal(t, "FeatureCollection", gjson.GetBytes(route.GeoJSON, "type").String())
}

func TestDirectionsUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/directions/cycling-regular/geojson", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":{"code":2010,"message":"no route"}}`)
	})

	_, err := client.Directions(context.Background(), ports.Coordinates{}, ports.Coordinates{}, "cycling-regular")
	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusNotFound, upstream.Status)
}
