package geo

import (
	"errors"
	"math"

	"github.com/golang/geo/s1"
	"github.com/twpayne/go-polyline"
)

// EarthRadius is the WGS-84 equatorial radius in meters, used here as the
// radius of a sphere rather than an ellipsoid.
const EarthRadius = 6378137.0

var errInvalidCoordinates = errors.New("invalid coordinates: latitude must be [-90, 90], longitude must be [-180, 180]")

// Haversine calculates the great-circle distance between two points in meters.
// Inputs are not validated; NaN coordinates yield NaN.
func Haversine(p1, p2 Point) float64 {
	lat1 := radians(p1.Latitude)
	lat2 := radians(p2.Latitude)
	dlat := lat2 - lat1
	dlon := radians(p2.Longitude - p1.Longitude)

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadius * c
}

// Oblique returns the straight-line length of a segment whose horizontal
// extent is planar meters and whose elevation changes by dh meters.
func Oblique(planar, dh float64) float64 {
	return math.Sqrt(dh*dh + planar*planar)
}

// PointToPoint is the validated form of Haversine
func PointToPoint(p1, p2 Point) (float64, error) {
	if !IsValidCoordinate(p1) || !IsValidCoordinate(p2) {
		return 0, errInvalidCoordinates
	}

	if p1.Latitude == p2.Latitude && p1.Longitude == p2.Longitude {
		return 0, nil
	}

	return Haversine(p1, p2), nil
}

// DecodePolyline decodes Google polyline string to point sequence
func DecodePolyline(encoded string) ([]Point, error) {
	if encoded == "" {
		return nil, errors.New("encoded polyline string is empty")
	}

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, errors.New("failed to decode polyline: " + err.Error())
	}

	points := make([]Point, len(coords))
	for i, coord := range coords {
		points[i] = Point{
			Latitude:  coord[0],
			Longitude: coord[1],
		}

		if !IsValidCoordinate(points[i]) {
			return nil, errors.New("decoded polyline contains invalid coordinates")
		}
	}

	return points, nil
}

// EncodePolyline encodes points as a Google polyline string. Elevation is dropped.
func EncodePolyline(points []Point) string {
	coords := make([][]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, []float64{p.Latitude, p.Longitude})
	}
	return string(polyline.EncodeCoords(coords))
}

// IsValidCoordinate validates latitude and longitude values
func IsValidCoordinate(point Point) bool {
	return point.Latitude >= -90 && point.Latitude <= 90 &&
		point.Longitude >= -180 && point.Longitude <= 180
}

func radians(deg float64) float64 {
	return (s1.Angle(deg) * s1.Degree).Radians()
}
