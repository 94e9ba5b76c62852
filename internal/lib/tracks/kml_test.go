package tracks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpup/terrain-profile/internal/lib/profile"
)

func TestEncodeKML(t *testing.T) {
	g, err := ParseGeoJSON([]byte(lineString))
	require.NoError(t, err)
	p := calculate(t, g)

	data, err := EncodeKML(p, "Hill repeat")
	require.NoError(t, err)

	doc := string(data)
	assert.Contains(t, doc, "<kml")
	assert.Contains(t, doc, "<name>Hill repeat</name>")
	assert.Contains(t, doc, "<LineString>")
	assert.Contains(t, doc, "<altitudeMode>absolute</altitudeMode>")
	assert.Contains(t, doc, "Ascend: 8 m")
	assert.Contains(t, doc, "Min elevation: 560 m")

	// one lon,lat,alt tuple per vertex
	start := strings.Index(doc, "<coordinates>")
	end := strings.Index(doc, "</coordinates>")
	require.True(t, start >= 0 && end > start)
	tuples := strings.Fields(doc[start+len("<coordinates>") : end])
	assert.Len(t, tuples, 4)
	assert.Len(t, strings.Split(tuples[0], ","), 3)
	assert.True(t, strings.HasPrefix(tuples[0], "24.04"))
}

func TestEncodeKML_Empty(t *testing.T) {
	_, err := EncodeKML(nil, "empty")
	assert.ErrorIs(t, err, profile.ErrMissingGeometry)
}
