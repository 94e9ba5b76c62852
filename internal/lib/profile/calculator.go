package profile

import (
	"math"

	"github.com/dpup/terrain-profile/internal/lib/geo"
)

// Option configures a Calculator or a call to Aggregate
type Option func(*options)

type options struct {
	distance geo.DistanceFunc
	partGaps bool
}

// WithPartGaps controls how the step between the last vertex of one part and
// the first vertex of the next is treated. When false (the default) the parts
// are bridged and the step counts like any other segment. When true it adds
// nothing to the statistics and the cumulative distance carries over.
func WithPartGaps(skip bool) Option {
	return func(o *options) {
		o.partGaps = skip
	}
}

// WithDistanceFunc replaces the haversine distance
func WithDistanceFunc(fn geo.DistanceFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.distance = fn
		}
	}
}

func newOptions(opts []Option) options {
	o := options{distance: geo.Haversine}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// calculator implements the Calculator interface
type calculator struct {
	opts []Option
}

// NewCalculator creates a new Calculator implementation
func NewCalculator(opts ...Option) Calculator {
	return &calculator{opts: opts}
}

// Calculate normalizes the geometry and aggregates the resulting vertices
func (c *calculator) Calculate(g Geometry) (*Profile, error) {
	vertices, err := Normalize(g)
	if err != nil {
		return nil, err
	}

	annotated, stats, err := Aggregate(vertices, c.opts...)
	if err != nil {
		return nil, err
	}

	return &Profile{Vertices: annotated, Statistics: stats}, nil
}

// Aggregate delegates to the package-level Aggregate with the calculator's options
func (c *calculator) Aggregate(vertices []Vertex) ([]Vertex, Statistics, error) {
	return Aggregate(vertices, c.opts...)
}

// Aggregate walks consecutive vertex pairs once, returning a copy of the
// vertices annotated with cumulative distance along with the profile
// statistics. The input slice is not modified.
func Aggregate(vertices []Vertex, opts ...Option) ([]Vertex, Statistics, error) {
	if len(vertices) == 0 {
		return nil, Statistics{}, ErrMissingGeometry
	}

	o := newOptions(opts)

	annotated := make([]Vertex, len(vertices))
	copy(annotated, vertices)
	annotated[0].CumulativeDistance = 0

	var (
		length, realLength float64
		ascend, descend    float64
	)
	// A lone vertex is its own min and max; the seeds only apply to pairs.
	minh, maxh := MinElevationSeed, MaxElevationSeed
	if len(annotated) == 1 {
		minh, maxh = annotated[0].Elevation, annotated[0].Elevation
	}

	for i := 0; i < len(annotated)-1; i++ {
		p1 := annotated[i]
		p2 := annotated[i+1]

		minh = math.Min(minh, math.Min(p1.Elevation, p2.Elevation))
		maxh = math.Max(maxh, math.Max(p1.Elevation, p2.Elevation))

		if o.partGaps && p1.Part != p2.Part {
			annotated[i+1].CumulativeDistance = length
			continue
		}

		dist := o.distance(p1.Point(), p2.Point())
		length += dist
		annotated[i+1].CumulativeDistance = length

		// descend accumulates non-positive deltas
		dh := p2.Elevation - p1.Elevation
		if dh <= 0 {
			descend += dh
		} else {
			ascend += dh
		}

		realLength += geo.Oblique(dist, dh)
	}

	return annotated, Statistics{
		Length:       length,
		RealLength:   realLength,
		Ascend:       math.Abs(ascend),
		Descend:      math.Abs(descend),
		MinElevation: minh,
		MaxElevation: maxh,
	}, nil
}
