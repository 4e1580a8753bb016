package external

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"forecast.app/internal/ports"
	"forecast.app/pkg/errors"
)

// OpenWeatherGeocoder implements the Geocoder port against the
// OpenWeatherMap geocoding API. Repeated transport or server faults open a
// circuit breaker so later lookups fail fast.
type OpenWeatherGeocoder struct {
	apiKey  string
	client  *resty.Client
	breaker *gobreaker.CircuitBreaker
	logger  ports.Logger
}

// OpenWeatherGeocoderParams holds parameters for creating the geocoder
type OpenWeatherGeocoderParams struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Logger  ports.Logger

	// Breaker tuning; zero values fall back to defaults
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

// errLookupAbandoned marks a lookup the caller stopped waiting for. It says
// nothing about the geocoding service, so the breaker does not count it.
var errLookupAbandoned = stderrors.New("geocoding lookup abandoned")

type geocodeEntry struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state"`
}

func NewOpenWeatherGeocoder(params OpenWeatherGeocoderParams) (*OpenWeatherGeocoder, error) {
	if params.APIKey == "" {
		return nil, errors.NewConfigurationError("geocoding API key is required", nil)
	}
	if params.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openweathermap.org"
	}
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	threshold := params.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	openTimeout := params.OpenTimeout
	if openTimeout <= 0 {
		openTimeout = 30 * time.Second
	}

	logger := params.Logger
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "geocoding",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || stderrors.Is(err, errLookupAbandoned)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				ports.F("breaker", name),
				ports.F("from", from.String()),
				ports.F("to", to.String()))
		},
	})

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &OpenWeatherGeocoder{
		apiKey:  params.APIKey,
		client:  client,
		breaker: breaker,
		logger:  logger,
	}, nil
}

// Forward looks up places matching query, best match first
func (g *OpenWeatherGeocoder) Forward(ctx context.Context, query string, limit int) ([]ports.GeocodeCandidate, error) {
	return g.lookup(ctx, "/geo/1.0/direct", map[string]string{
		"q":     query,
		"limit": strconv.Itoa(normalizeLimit(limit)),
	})
}

// Reverse looks up the places around lat/lon
func (g *OpenWeatherGeocoder) Reverse(ctx context.Context, lat, lon float64, limit int) ([]ports.GeocodeCandidate, error) {
	return g.lookup(ctx, "/geo/1.0/reverse", map[string]string{
		"lat":   strconv.FormatFloat(lat, 'f', -1, 64),
		"lon":   strconv.FormatFloat(lon, 'f', -1, 64),
		"limit": strconv.Itoa(normalizeLimit(limit)),
	})
}

func (g *OpenWeatherGeocoder) lookup(ctx context.Context, path string, params map[string]string) ([]ports.GeocodeCandidate, error) {
	result, err := g.breaker.Execute(func() (interface{}, error) {
		resp, err := g.client.R().
			SetContext(ctx).
			SetQueryParams(params).
			SetQueryParam("appid", g.apiKey).
			Get(path)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("%w: %w", errLookupAbandoned, ctxErr)
			}
			return nil, errors.NewNetworkError("failed to call geocoding service", err)
		}
		if resp.StatusCode() >= 500 {
			return nil, errors.NewRemoteRejectedError(
				fmt.Sprintf("geocoding service returned status %d", resp.StatusCode()), nil)
		}
		return resp, nil
	})
	if err != nil {
		if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, errors.NewNetworkError("geocoding service unavailable", err)
		}
		if stderrors.Is(err, errLookupAbandoned) {
			return nil, errors.NewNetworkError("geocoding lookup canceled", err)
		}
		return nil, err
	}

	resp := result.(*resty.Response)
	if resp.IsError() {
		return nil, errors.NewRemoteRejectedError(
			fmt.Sprintf("geocoding service returned status %d", resp.StatusCode()), nil)
	}

	var entries []geocodeEntry
	if err := json.Unmarshal(resp.Body(), &entries); err != nil {
		return nil, errors.NewParseError("failed to decode geocoding response", err)
	}

	candidates := make([]ports.GeocodeCandidate, 0, len(entries))
	for _, e := range entries {
		candidates = append(candidates, ports.GeocodeCandidate{
			Name:      e.Name,
			Latitude:  e.Lat,
			Longitude: e.Lon,
			Country:   e.Country,
			State:     e.State,
		})
	}

	g.logger.Debug("Geocoding lookup completed",
		ports.F("path", path),
		ports.F("candidates", len(candidates)),
		ports.F("duration_ms", resp.Time().Milliseconds()))

	return candidates, nil
}

// BreakerState reports the circuit breaker state for health checks
func (g *OpenWeatherGeocoder) BreakerState() string {
	return g.breaker.State().String()
}

func normalizeLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > 5 {
		return 5
	}
	return limit
}
