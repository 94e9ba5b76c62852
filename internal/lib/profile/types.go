package profile

import (
	"errors"

	"github.com/dpup/terrain-profile/internal/lib/geo"
)

var (
	// ErrMissingGeometry is returned when there is no geometry to profile
	ErrMissingGeometry = errors.New("geometry not set")

	// ErrInvalidGeometry is returned when the geometry is not a path, a
	// collection of paths or a flat list of coordinates
	ErrInvalidGeometry = errors.New("geometry is not supported")
)

// Elevation seeds for the running min/max. Terrain outside this band is not
// reported correctly when no vertex falls inside it.
const (
	MinElevationSeed = 10000.0
	MaxElevationSeed = -10000.0
)

// Coordinate is a raw [longitude, latitude, elevation?] tuple
type Coordinate []float64

// Geometry is one of the accepted input shapes: Path, MultiPath,
// CoordinateList or a Feature wrapping one of them.
type Geometry interface {
	geometryType() string
}

// Path is a single ordered line (GeoJSON LineString)
type Path []Coordinate

// MultiPath is an ordered collection of paths (GeoJSON MultiLineString)
type MultiPath []Path

// CoordinateList is a bare array of coordinates with no type tag
type CoordinateList []Coordinate

// Feature wraps a geometry together with free-form properties. Only one
// level of wrapping is unwrapped.
type Feature struct {
	Geometry   Geometry
	Properties map[string]any
}

func (Path) geometryType() string           { return "LineString" }
func (MultiPath) geometryType() string      { return "MultiLineString" }
func (CoordinateList) geometryType() string { return "CoordinateList" }
func (*Feature) geometryType() string       { return "Feature" }

// Vertex is a normalized path vertex annotated with the distance from the
// first vertex of the profile
type Vertex struct {
	Latitude           float64 `json:"lat"`
	Longitude          float64 `json:"lon"`
	Elevation          float64 `json:"ele"`
	CumulativeDistance float64 `json:"dist"`
	Part               int     `json:"part"`
}

// Point returns the vertex as a geo.Point
func (v Vertex) Point() geo.Point {
	return geo.Point{Latitude: v.Latitude, Longitude: v.Longitude, Elevation: v.Elevation}
}

// Statistics summarizes a profile. All values are in meters.
type Statistics struct {
	Length       float64 `json:"length"`
	RealLength   float64 `json:"real_length"`
	Ascend       float64 `json:"ascend"`
	Descend      float64 `json:"descend"`
	MinElevation float64 `json:"min_elevation"`
	MaxElevation float64 `json:"max_elevation"`
}

// ElevationGain is the total climb, the same value as Ascend
func (s Statistics) ElevationGain() float64 { return s.Ascend }

// ElevationLoss is the total drop, the same value as Descend
func (s Statistics) ElevationLoss() float64 { return s.Descend }

// Profile is the result of a calculation
type Profile struct {
	Vertices   []Vertex   `json:"vertices"`
	Statistics Statistics `json:"statistics"`
}

// Calculator computes elevation profiles from input geometries
type Calculator interface {
	// Flatten the geometry and compute distances and statistics
	Calculate(g Geometry) (*Profile, error)

	// Compute distances and statistics for already normalized vertices
	Aggregate(vertices []Vertex) ([]Vertex, Statistics, error)
}

// NewCalculator is implemented in calculator.go
