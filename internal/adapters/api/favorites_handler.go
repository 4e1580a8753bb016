package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"forecast.app/internal/core/location"
	"forecast.app/pkg/errors"
)

// AddFavoriteRequest is the body of POST /api/favorites
type AddFavoriteRequest struct {
	DisplayName string   `json:"display_name" binding:"required"`
	Latitude    *float64 `json:"latitude" binding:"required,coord_lat"`
	Longitude   *float64 `json:"longitude" binding:"required,coord_lon"`
}

// SearchFavoriteRequest is the body of POST /api/favorites/search
type SearchFavoriteRequest struct {
	Place string `json:"place" binding:"required"`
}

func favoriteID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("favorite id must be a positive integer")
	}
	return uint(id), nil
}

// listFavorites handles GET /api/favorites. Snapshots are the stored ones;
// nothing is fetched.
func (s *HTTPServerAdapter) listFavorites(c *gin.Context) {
	favs, err := s.favorites.List(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, favs)
}

// getFavorite handles GET /api/favorites/:id
func (s *HTTPServerAdapter) getFavorite(c *gin.Context) {
	id, err := favoriteID(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	fav, err := s.favorites.Get(c.Request.Context(), id)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, fav)
}

// addFavorite handles POST /api/favorites
func (s *HTTPServerAdapter) addFavorite(c *gin.Context) {
	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, errors.NewValidationError("invalid request: "+err.Error()))
		return
	}

	coord := location.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude}
	fav, err := s.favorites.Add(c.Request.Context(), req.DisplayName, coord)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, fav)
}

// searchFavorite handles POST /api/favorites/search: resolve, fetch, save
func (s *HTTPServerAdapter) searchFavorite(c *gin.Context) {
	var req SearchFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, errors.NewValidationError("invalid request: "+err.Error()))
		return
	}

	respondEnvelope(c, http.StatusCreated, s.favorites.Search(c.Request.Context(), req.Place))
}

// deleteFavorite handles DELETE /api/favorites/:id
func (s *HTTPServerAdapter) deleteFavorite(c *gin.Context) {
	id, err := favoriteID(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	if err := s.favorites.Delete(c.Request.Context(), id); err != nil {
		s.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// refreshFavorites handles POST /api/favorites/refresh. Each entry carries
// its own outcome; one failed favorite does not fail the response.
func (s *HTTPServerAdapter) refreshFavorites(c *gin.Context) {
	entries, err := s.refresher.RefreshAll(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
