// Package api provides HTTP adapters for the hexagonal architecture
// These adapters handle incoming HTTP requests and translate them to use cases
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"

	"forecast.app/internal/core/favorites"
	"forecast.app/internal/core/location"
	"forecast.app/internal/core/result"
	"forecast.app/internal/core/weather"
	"forecast.app/internal/ports"
	"forecast.app/pkg/errors"
)

const requestIDHeader = "X-Request-ID"

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port int
	// RateLimitPerMin caps requests per client IP; 0 disables limiting
	RateLimitPerMin int
}

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router           *gin.Engine
	handler          http.Handler
	config           ServerConfig
	weather          WeatherService
	locations        LocationService
	favorites        FavoritesService
	refresher        FavoritesRefresher
	metricsCollector MetricsCollector
	health           ports.SystemHealthChecker
	logger           ports.Logger
}

// Use case interfaces that the HTTP adapter depends on
type WeatherService interface {
	FetchCurrent(ctx context.Context, coord location.Coordinate) result.Envelope[weather.Snapshot]
}

type LocationService interface {
	Lookup(ctx context.Context, placeName string) (location.Place, bool)
	ResolveReverse(ctx context.Context, c location.Coordinate) (string, bool)
}

type FavoritesService interface {
	List(ctx context.Context) ([]favorites.Favorite, error)
	Get(ctx context.Context, id uint) (favorites.Favorite, error)
	Add(ctx context.Context, displayName string, coord location.Coordinate) (favorites.Favorite, error)
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, placeName string) result.Envelope[favorites.Favorite]
}

type FavoritesRefresher interface {
	RefreshAll(ctx context.Context) ([]favorites.Entry, error)
}

type MetricsCollector interface {
	GetMetrics(ctx context.Context) (map[string]interface{}, error)
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config              ServerConfig
	WeatherService      WeatherService
	LocationService     LocationService
	FavoritesService    FavoritesService
	FavoritesRefresher  FavoritesRefresher
	MetricsCollector    MetricsCollector
	SystemHealthChecker ports.SystemHealthChecker
	// MetricsHandler serves GET /metrics; nil leaves the route out
	MetricsHandler http.Handler
	Logger         ports.Logger
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}
	if err := registerValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())

	server := &HTTPServerAdapter{
		router:           router,
		config:           opts.Config,
		weather:          opts.WeatherService,
		locations:        opts.LocationService,
		favorites:        opts.FavoritesService,
		refresher:        opts.FavoritesRefresher,
		metricsCollector: opts.MetricsCollector,
		health:           opts.SystemHealthChecker,
		logger:           opts.Logger,
	}

	router.Use(server.requestID(), server.accessLog())
	server.setupRoutes(opts.MetricsHandler)

	server.handler = router
	if opts.Config.RateLimitPerMin > 0 {
		server.handler = httprate.LimitByIP(opts.Config.RateLimitPerMin, time.Minute)(router)
	}

	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.WeatherService == nil {
		return errors.NewValidationError("weather service is required")
	}
	if opts.LocationService == nil {
		return errors.NewValidationError("location service is required")
	}
	if opts.FavoritesService == nil {
		return errors.NewValidationError("favorites service is required")
	}
	if opts.FavoritesRefresher == nil {
		return errors.NewValidationError("favorites refresher is required")
	}
	if opts.MetricsCollector == nil {
		return errors.NewValidationError("metrics collector is required")
	}
	if opts.SystemHealthChecker == nil {
		return errors.NewValidationError("system health checker is required")
	}
	if opts.Logger == nil {
		return errors.NewValidationError("logger is required")
	}
	return nil
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes(metricsHandler http.Handler) {
	api := s.router.Group("/api")
	{
		api.GET("/weather", s.getWeather)
		api.GET("/geocode/forward", s.geocodeForward)
		api.GET("/geocode/reverse", s.geocodeReverse)

		api.GET("/favorites", s.listFavorites)
		api.POST("/favorites", s.addFavorite)
		api.POST("/favorites/search", s.searchFavorite)
		api.POST("/favorites/refresh", s.refreshFavorites)
		api.GET("/favorites/:id", s.getFavorite)
		api.DELETE("/favorites/:id", s.deleteFavorite)

		api.GET("/metrics", s.getMetrics)
	}

	s.router.GET("/health", s.getHealth)
	if metricsHandler != nil {
		s.router.GET("/metrics", gin.WrapH(metricsHandler))
	}
}

// Handler returns the router wrapped in the rate limiter
func (s *HTTPServerAdapter) Handler() http.Handler {
	return s.handler
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}

// requestID propagates a caller supplied request ID or assigns a new one
func (s *HTTPServerAdapter) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *HTTPServerAdapter) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		s.logger.Debug("HTTP request served",
			ports.F("request_id", c.GetString("request_id")),
			ports.F("method", c.Request.Method),
			ports.F("path", c.FullPath()),
			ports.F("status", c.Writer.Status()),
			ports.F("duration_ms", time.Since(started).Milliseconds()))
	}
}
