package tracks

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dpup/terrain-profile/internal/lib/geo"
	"github.com/dpup/terrain-profile/internal/lib/profile"
)

// Format identifies the encoding of an input track
type Format string

const (
	FormatGeoJSON  Format = "geojson"
	FormatGPX      Format = "gpx"
	FormatPolyline Format = "polyline"
)

// ParseFormat validates a user-supplied format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatGeoJSON, FormatGPX, FormatPolyline:
		return f, nil
	case "json":
		return FormatGeoJSON, nil
	default:
		return "", fmt.Errorf("unknown track format %q", name)
	}
}

// DetectFormat guesses the format from a file extension, defaulting to GeoJSON
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gpx":
		return FormatGPX
	case ".polyline", ".txt":
		return FormatPolyline
	default:
		return FormatGeoJSON
	}
}

// Parse decodes data in the given format
func Parse(format Format, data []byte) (profile.Geometry, error) {
	switch format {
	case FormatGeoJSON:
		return ParseGeoJSON(data)
	case FormatGPX:
		return ParseGPX(data)
	case FormatPolyline:
		return ParsePolyline(string(data))
	default:
		return nil, fmt.Errorf("unknown track format %q", format)
	}
}

// ParsePolyline decodes a Google encoded polyline. Polylines carry no
// elevation so every vertex is at 0.
func ParsePolyline(encoded string) (profile.Geometry, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, profile.ErrMissingGeometry
	}

	points, err := geo.DecodePolyline(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", profile.ErrInvalidGeometry, err)
	}

	path := make(profile.Path, len(points))
	for i, p := range points {
		path[i] = profile.Coordinate{p.Longitude, p.Latitude}
	}
	return path, nil
}

// EncodePolyline writes the profile vertices as a Google encoded polyline.
// Elevation and cumulative distance are dropped.
func EncodePolyline(p *profile.Profile) (string, error) {
	if p == nil || len(p.Vertices) == 0 {
		return "", profile.ErrMissingGeometry
	}

	points := make([]geo.Point, len(p.Vertices))
	for i, v := range p.Vertices {
		points[i] = v.Point()
	}
	return geo.EncodePolyline(points), nil
}
