package tracks

import (
	"bytes"
	"fmt"

	"github.com/twpayne/go-kml"

	"github.com/dpup/terrain-profile/internal/lib/profile"
)

// EncodeKML writes the profile as a single placemark holding an
// absolute-altitude LineString. The statistics go in the description.
func EncodeKML(p *profile.Profile, name string) ([]byte, error) {
	if p == nil || len(p.Vertices) == 0 {
		return nil, profile.ErrMissingGeometry
	}

	coords := make([]kml.Coordinate, len(p.Vertices))
	for i, v := range p.Vertices {
		coords[i] = kml.Coordinate{Lon: v.Longitude, Lat: v.Latitude, Alt: v.Elevation}
	}

	s := p.Statistics
	description := fmt.Sprintf(
		"Length: %.0f m\nOblique length: %.0f m\nAscend: %.0f m\nDescend: %.0f m\nMin elevation: %.0f m\nMax elevation: %.0f m",
		s.Length, s.RealLength, s.Ascend, s.Descend, s.MinElevation, s.MaxElevation,
	)

	doc := kml.KML(
		kml.Document(
			kml.Name(name),
			kml.Placemark(
				kml.Name(name),
				kml.Description(description),
				kml.LineString(
					kml.Tessellate(true),
					kml.AltitudeMode(kml.AltitudeModeAbsolute),
					kml.Coordinates(coords...),
				),
			),
		),
	)

	var buf bytes.Buffer
	if err := doc.WriteIndent(&buf, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to encode KML: %w", err)
	}
	return buf.Bytes(), nil
}
