package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dpup/terrain-profile/internal/lib/profile"
	"github.com/dpup/terrain-profile/internal/lib/tracks"
	"github.com/dpup/terrain-profile/internal/services"
)

// profileResponse is the JSON body for POST /api/v1/profile
type profileResponse struct {
	*profile.Profile
	Cached bool `json:"cached"`
}

func (s *Server) handleProfile(c *gin.Context) {
	p, cached, ok := s.compute(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, profileResponse{Profile: p, Cached: cached})
}

func (s *Server) handleGeoJSON(c *gin.Context) {
	p, _, ok := s.compute(c)
	if !ok {
		return
	}
	data, err := tracks.EncodeGeoJSON(p)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/geo+json", data)
}

func (s *Server) handleKML(c *gin.Context) {
	p, _, ok := s.compute(c)
	if !ok {
		return
	}
	data, err := tracks.EncodeKML(p, c.DefaultQuery("name", "Elevation profile"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/vnd.google-earth.kml+xml", data)
}

// compute reads the request body and runs it through the profile service.
// It writes the error response itself and returns false on failure.
func (s *Server) compute(c *gin.Context) (*profile.Profile, bool, bool) {
	format, err := requestFormat(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false, false
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, s.config.MaxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return nil, false, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return nil, false, false
	}

	p, cached, err := s.service.Compute(c.Request.Context(), format, body)
	if err != nil {
		s.writeError(c, err)
		return nil, false, false
	}
	return p, cached, true
}

func (s *Server) writeError(c *gin.Context, err error) {
	if services.IsInvalidInput(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// requestFormat takes the format from the query string, falling back to the
// content type and then to GeoJSON.
func requestFormat(c *gin.Context) (tracks.Format, error) {
	if name := c.Query("format"); name != "" {
		return tracks.ParseFormat(name)
	}
	contentType := c.ContentType()
	switch {
	case strings.Contains(contentType, "gpx"):
		return tracks.FormatGPX, nil
	case contentType == "text/plain":
		return tracks.FormatPolyline, nil
	default:
		return tracks.FormatGeoJSON, nil
	}
}

func homepageHandler(c *gin.Context) {
	c.String(http.StatusOK, `terrain-profile

Elevation profiles for GPS tracks.

  POST /api/v1/profile?format=geojson|gpx|polyline   profile and statistics as JSON
  POST /api/v1/profile.geojson                       profile as a GeoJSON Feature
  POST /api/v1/profile.kml?name=...                  profile as KML
  GET  /healthz
  GET  /metrics
`)
}
