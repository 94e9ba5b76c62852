package profile

import "fmt"

// Normalize flattens a geometry into a single ordered vertex sequence.
// Parts of a MultiPath are concatenated in order with no gap marker; each
// vertex records the index of the part it came from.
func Normalize(g Geometry) ([]Vertex, error) {
	if g == nil {
		return nil, ErrMissingGeometry
	}

	if f, ok := g.(*Feature); ok {
		if f == nil || f.Geometry == nil {
			return nil, ErrMissingGeometry
		}
		g = f.Geometry
		if _, nested := g.(*Feature); nested {
			return nil, fmt.Errorf("%w: nested Feature", ErrInvalidGeometry)
		}
	}

	var vertices []Vertex
	var err error

	switch geometry := g.(type) {
	case Path:
		vertices, err = appendCoordinates(nil, geometry, 0)
	case CoordinateList:
		vertices, err = appendCoordinates(nil, geometry, 0)
	case MultiPath:
		for part, path := range geometry {
			vertices, err = appendCoordinates(vertices, path, part)
			if err != nil {
				break
			}
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidGeometry, g.geometryType())
	}

	if err != nil {
		return nil, err
	}
	if len(vertices) == 0 {
		return nil, fmt.Errorf("%w: %s has no coordinates", ErrMissingGeometry, g.geometryType())
	}

	return vertices, nil
}

func appendCoordinates(vertices []Vertex, coords []Coordinate, part int) ([]Vertex, error) {
	for i, coord := range coords {
		v, err := newVertex(coord, part)
		if err != nil {
			return nil, fmt.Errorf("coordinate %d of part %d: %w", i, part, err)
		}
		vertices = append(vertices, v)
	}
	return vertices, nil
}

// newVertex maps [lon, lat, elev?] to a vertex; a missing elevation is 0
func newVertex(coord Coordinate, part int) (Vertex, error) {
	if len(coord) < 2 {
		return Vertex{}, fmt.Errorf("%w: coordinate needs at least 2 values, got %d", ErrInvalidGeometry, len(coord))
	}

	v := Vertex{
		Longitude: coord[0],
		Latitude:  coord[1],
		Part:      part,
	}
	if len(coord) > 2 {
		v.Elevation = coord[2]
	}
	return v, nil
}
