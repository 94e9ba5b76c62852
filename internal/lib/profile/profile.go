package profile

import "sort"

// TotalDistance is the cumulative distance of the last vertex in meters
func (p *Profile) TotalDistance() float64 {
	if p == nil || len(p.Vertices) == 0 {
		return 0
	}
	return p.Vertices[len(p.Vertices)-1].CumulativeDistance
}

// TotalDistanceKm is TotalDistance in kilometers
func (p *Profile) TotalDistanceKm() float64 {
	return p.TotalDistance() / 1000
}

// At returns the vertex nearest to the given distance from the start.
// Distances outside the profile clamp to the first or last vertex.
func (p *Profile) At(distance float64) (Vertex, bool) {
	if p == nil || len(p.Vertices) == 0 {
		return Vertex{}, false
	}

	n := len(p.Vertices)
	i := sort.Search(n, func(i int) bool {
		return p.Vertices[i].CumulativeDistance >= distance
	})

	switch {
	case i == 0:
		return p.Vertices[0], true
	case i == n:
		return p.Vertices[n-1], true
	}

	before, after := p.Vertices[i-1], p.Vertices[i]
	if distance-before.CumulativeDistance > after.CumulativeDistance-distance {
		return after, true
	}
	return before, true
}

// Grades returns the slope of each segment in percent. Zero-length segments,
// including skipped gaps between parts, have a grade of 0.
func (p *Profile) Grades() []float64 {
	if p == nil || len(p.Vertices) < 2 {
		return nil
	}

	grades := make([]float64, len(p.Vertices)-1)
	for i := range grades {
		run := p.Vertices[i+1].CumulativeDistance - p.Vertices[i].CumulativeDistance
		if run <= 0 {
			continue
		}
		grades[i] = (p.Vertices[i+1].Elevation - p.Vertices[i].Elevation) / run * 100
	}
	return grades
}
