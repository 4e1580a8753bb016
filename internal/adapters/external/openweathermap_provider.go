package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"forecast.app/internal/ports"
	"forecast.app/pkg/errors"
)

// HTTPClient interface for HTTP requests (for testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// OpenWeatherMapProviderAdapter implements WeatherProvider port for OpenWeatherMap
type OpenWeatherMapProviderAdapter struct {
	apiKey  string
	baseURL string
	units   string
	exclude string
	client  HTTPClient
	logger  ports.Logger
}

// OpenWeatherMapProviderParams holds parameters for creating OpenWeatherMap provider
type OpenWeatherMapProviderParams struct {
	APIKey  string
	BaseURL string
	Units   string
	Exclude string
	Logger  ports.Logger
	Client  HTTPClient
}

// OpenWeatherMapResponse represents the current-conditions payload
type OpenWeatherMapResponse struct {
	Name string `json:"name"`
	Dt   int64  `json:"dt"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

// NewOpenWeatherMapProviderAdapter creates a new OpenWeatherMap provider adapter.
// The HTTP client carries no timeout of its own; callers bound each request
// through the context.
func NewOpenWeatherMapProviderAdapter(params OpenWeatherMapProviderParams) (*OpenWeatherMapProviderAdapter, error) {
	if params.APIKey == "" {
		return nil, errors.NewConfigurationError("weather API key is required", nil)
	}
	if params.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openweathermap.org/data/2.5"
	}
	units := params.Units
	if units == "" {
		units = "metric"
	}
	exclude := params.Exclude
	if exclude == "" {
		exclude = "minutely"
	}
	client := params.Client
	if client == nil {
		client = &http.Client{}
	}

	return &OpenWeatherMapProviderAdapter{
		apiKey:  params.APIKey,
		baseURL: baseURL,
		units:   units,
		exclude: exclude,
		client:  client,
		logger:  params.Logger,
	}, nil
}

// GetCurrentWeather issues a single current-conditions request for lat/lon
func (p *OpenWeatherMapProviderAdapter) GetCurrentWeather(ctx context.Context, lat, lon float64) (*ports.WeatherData, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("units", p.units)
	query.Set("exclude", p.exclude)
	query.Set("appid", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/weather?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.NewNetworkError("failed to build OpenWeatherMap request", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.NewNetworkError("failed to call OpenWeatherMap", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			p.logger.Warn("Failed to close OpenWeatherMap response body", ports.F("error", closeErr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.NewRemoteRejectedError(
			fmt.Sprintf("OpenWeatherMap returned status %d", resp.StatusCode),
			fmt.Errorf("%s", body))
	}

	var apiResp OpenWeatherMapResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, errors.NewParseError("failed to decode OpenWeatherMap response", err)
	}
	if len(apiResp.Weather) == 0 {
		return nil, errors.NewParseError("OpenWeatherMap response has no weather conditions", nil)
	}

	condition := apiResp.Weather[0]
	data := &ports.WeatherData{
		Temperature:   apiResp.Main.Temp,
		FeelsLike:     apiResp.Main.FeelsLike,
		Humidity:      apiResp.Main.Humidity,
		WindSpeed:     apiResp.Wind.Speed,
		ConditionCode: strconv.Itoa(condition.ID),
		Description:   condition.Description,
		IconID:        condition.Icon,
		PlaceName:     apiResp.Name,
	}
	if apiResp.Dt > 0 {
		data.Timestamp = time.Unix(apiResp.Dt, 0).UTC()
	}

	return data, nil
}

// GetProviderName returns the name of this weather provider
func (p *OpenWeatherMapProviderAdapter) GetProviderName() string {
	return "openweathermap"
}
