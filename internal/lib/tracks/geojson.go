package tracks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/dpup/terrain-profile/internal/lib/profile"
)

var jsonNull = []byte("null")

// geojsonObject captures the members needed to dispatch on the GeoJSON type
type geojsonObject struct {
	Type        string          `json:"type"`
	Geometry    json.RawMessage `json:"geometry"`
	Coordinates json.RawMessage `json:"coordinates"`
	Properties  map[string]any  `json:"properties"`
}

// ParseGeoJSON reads a LineString, a MultiLineString, a Feature wrapping one
// of those, or a bare array of [lon, lat, ele] positions.
func ParseGeoJSON(data []byte) (profile.Geometry, error) {
	data = bytes.TrimSpace(data)
	if isEmptyJSON(data) {
		return nil, profile.ErrMissingGeometry
	}

	// Bare arrays carry no type tag and are always a coordinate list
	if data[0] == '[' {
		var coords []profile.Coordinate
		if err := json.Unmarshal(data, &coords); err != nil {
			return nil, fmt.Errorf("%w: failed to decode coordinates: %v", profile.ErrInvalidGeometry, err)
		}
		return profile.CoordinateList(coords), nil
	}

	var obj geojsonObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("%w: failed to decode GeoJSON: %v", profile.ErrInvalidGeometry, err)
	}

	if obj.Type != "Feature" {
		return decodeGeometry(obj, data)
	}

	geometryData := bytes.TrimSpace(obj.Geometry)
	if isEmptyJSON(geometryData) {
		return nil, fmt.Errorf("%w: feature has no geometry", profile.ErrMissingGeometry)
	}

	var inner geojsonObject
	if err := json.Unmarshal(geometryData, &inner); err != nil {
		return nil, fmt.Errorf("%w: failed to decode feature geometry: %v", profile.ErrInvalidGeometry, err)
	}

	g, err := decodeGeometry(inner, geometryData)
	if err != nil {
		return nil, err
	}
	return &profile.Feature{Geometry: g, Properties: obj.Properties}, nil
}

// decodeGeometry converts a LineString or MultiLineString object; every other
// GeoJSON type is rejected.
func decodeGeometry(obj geojsonObject, data []byte) (profile.Geometry, error) {
	switch obj.Type {
	case "LineString", "MultiLineString":
	case "":
		return nil, fmt.Errorf("%w: missing type", profile.ErrInvalidGeometry)
	default:
		return nil, fmt.Errorf("%w: %s", profile.ErrInvalidGeometry, obj.Type)
	}

	if isEmptyJSON(bytes.TrimSpace(obj.Coordinates)) {
		return nil, fmt.Errorf("%w: %s has no coordinates", profile.ErrMissingGeometry, obj.Type)
	}

	var g geom.T
	if err := geojson.Unmarshal(data, &g); err != nil {
		var unsupported geojson.ErrUnsupportedType
		if errors.As(err, &unsupported) {
			return nil, fmt.Errorf("%w: %s", profile.ErrInvalidGeometry, string(unsupported))
		}
		return nil, fmt.Errorf("%w: %v", profile.ErrInvalidGeometry, err)
	}

	switch t := g.(type) {
	case *geom.LineString:
		return pathFromCoords(t.Coords()), nil
	case *geom.MultiLineString:
		parts := make(profile.MultiPath, 0, t.NumLineStrings())
		for _, line := range t.Coords() {
			parts = append(parts, pathFromCoords(line))
		}
		return parts, nil
	default:
		return nil, fmt.Errorf("%w: %T", profile.ErrInvalidGeometry, g)
	}
}

func pathFromCoords(coords []geom.Coord) profile.Path {
	path := make(profile.Path, len(coords))
	for i, c := range coords {
		path[i] = profile.Coordinate(c)
	}
	return path
}

func isEmptyJSON(data []byte) bool {
	return len(data) == 0 || bytes.Equal(data, jsonNull)
}

// EncodeGeoJSON writes the profile as a GeoJSON Feature with an XYZ
// LineString. The statistics and the cumulative distance of every vertex are
// stored in the feature properties.
func EncodeGeoJSON(p *profile.Profile) ([]byte, error) {
	if p == nil || len(p.Vertices) == 0 {
		return nil, profile.ErrMissingGeometry
	}

	flat := make([]float64, 0, 3*len(p.Vertices))
	distances := make([]float64, 0, len(p.Vertices))
	for _, v := range p.Vertices {
		flat = append(flat, v.Longitude, v.Latitude, v.Elevation)
		distances = append(distances, v.CumulativeDistance)
	}

	feature := &geojson.Feature{
		Geometry: geom.NewLineStringFlat(geom.XYZ, flat),
		Properties: map[string]any{
			"length":        p.Statistics.Length,
			"real_length":   p.Statistics.RealLength,
			"ascend":        p.Statistics.Ascend,
			"descend":       p.Statistics.Descend,
			"min_elevation": p.Statistics.MinElevation,
			"max_elevation": p.Statistics.MaxElevation,
			"distances":     distances,
		},
	}

	data, err := json.Marshal(feature)
	if err != nil {
		return nil, fmt.Errorf("failed to encode GeoJSON: %w", err)
	}
	return data, nil
}
