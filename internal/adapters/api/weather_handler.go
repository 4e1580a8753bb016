package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"forecast.app/internal/core/location"
	"forecast.app/pkg/errors"
)

// coordinateQuery parses ?lat=&lon=. Range checks are left to the callee so
// out-of-range input reports InvalidLocation.
func coordinateQuery(c *gin.Context) (location.Coordinate, error) {
	latRaw, lonRaw := c.Query("lat"), c.Query("lon")
	if latRaw == "" || lonRaw == "" {
		return location.Coordinate{}, errors.NewValidationError("lat and lon parameters are required")
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return location.Coordinate{}, errors.NewValidationError("lat must be a number")
	}
	lon, err := strconv.ParseFloat(lonRaw, 64)
	if err != nil {
		return location.Coordinate{}, errors.NewValidationError("lon must be a number")
	}

	return location.Coordinate{Latitude: lat, Longitude: lon}, nil
}

// getWeather handles GET /api/weather requests
func (s *HTTPServerAdapter) getWeather(c *gin.Context) {
	coord, err := coordinateQuery(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	respondEnvelope(c, http.StatusOK, s.weather.FetchCurrent(c.Request.Context(), coord))
}
