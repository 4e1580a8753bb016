package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"forecast.app/pkg/errors"
)

// ReverseGeocodeResponse is the body of GET /api/geocode/reverse
type ReverseGeocodeResponse struct {
	Name string `json:"name"`
}

// geocodeForward handles GET /api/geocode/forward?place=
func (s *HTTPServerAdapter) geocodeForward(c *gin.Context) {
	place := strings.TrimSpace(c.Query("place"))
	if place == "" {
		s.handleError(c, errors.NewValidationError("place parameter is required"))
		return
	}

	match, ok := s.locations.Lookup(c.Request.Context(), place)
	if !ok {
		s.handleError(c, errors.NewUnknownPlaceError("no location found for "+place))
		return
	}

	c.JSON(http.StatusOK, match)
}

// geocodeReverse handles GET /api/geocode/reverse?lat=&lon=
func (s *HTTPServerAdapter) geocodeReverse(c *gin.Context) {
	coord, err := coordinateQuery(c)
	if err != nil {
		s.handleError(c, err)
		return
	}
	if err := coord.Validate(); err != nil {
		s.handleError(c, err)
		return
	}

	name, ok := s.locations.ResolveReverse(c.Request.Context(), coord)
	if !ok {
		s.handleError(c, errors.NewNotFoundError("no locality found at "+coord.String()))
		return
	}

	c.JSON(http.StatusOK, ReverseGeocodeResponse{Name: name})
}
