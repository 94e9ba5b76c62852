package geo

// Point represents a geographic coordinate with an optional elevation in meters
type Point struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Elevation float64 `json:"ele"`
}

// DistanceFunc measures the planar distance between two points in meters
type DistanceFunc func(p1, p2 Point) float64
