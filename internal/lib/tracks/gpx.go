package tracks

import (
	"fmt"
	"math"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/dpup/terrain-profile/internal/lib/profile"
)

// ParseGPX converts GPX track segments into paths. Each non-empty segment
// becomes one part; a file with no track points falls back to its routes.
// Points without elevation get 0; non-finite values are rejected.
func ParseGPX(data []byte) (profile.Geometry, error) {
	gpxFile, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse GPX: %v", profile.ErrInvalidGeometry, err)
	}

	var parts profile.MultiPath
	for _, track := range gpxFile.Tracks {
		for _, segment := range track.Segments {
			if len(segment.Points) > 0 {
				path, err := pathFromGPX(segment.Points)
				if err != nil {
					return nil, err
				}
				parts = append(parts, path)
			}
		}
	}

	if len(parts) == 0 {
		for _, route := range gpxFile.Routes {
			if len(route.Points) > 0 {
				path, err := pathFromGPX(route.Points)
				if err != nil {
					return nil, err
				}
				parts = append(parts, path)
			}
		}
	}

	switch len(parts) {
	case 0:
		return nil, fmt.Errorf("%w: GPX has no track or route points", profile.ErrMissingGeometry)
	case 1:
		return parts[0], nil
	default:
		return parts, nil
	}
}

func pathFromGPX(points []gpx.GPXPoint) (profile.Path, error) {
	path := make(profile.Path, len(points))
	for i, p := range points {
		coord := profile.Coordinate{p.Longitude, p.Latitude, p.Elevation.Value()}
		for _, v := range coord {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: GPX point %d is not a finite number", profile.ErrInvalidGeometry, i)
			}
		}
		path[i] = coord
	}
	return path, nil
}
