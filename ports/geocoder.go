package ports

import (
	"context"
	"encoding/json"
)

// Coordinates is a WGS84 point
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is a geocoding hit
type Place struct {
	Label string      `json:"label"`
	Point Coordinates `json:"point"`
}

// Route is a driving route between two points
type Route struct {
	DistanceKm float64         `json:"distanceKm"`
	DurationS  float64         `json:"durationS"`
	GeoJSON    json.RawMessage `json:"geojson"`
}

// Geocoder resolves addresses and routes. Implementations call an external service.
type Geocoder interface {
	// Geocode returns up to a handful of candidate places for free text
	Geocode(ctx context.Context, text string) ([]Place, error)

	// Directions returns the route between start and end for a routing profile
	Directions(ctx context.Context, start, end Coordinates, profile string) (*Route, error)
}
