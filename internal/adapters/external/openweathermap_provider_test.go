package external

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forecast.app/internal/mocks"
	"forecast.app/pkg/errors"
)

const londonCurrentJSON = `{
	"name": "London",
	"dt": 1714564800,
	"main": {"temp": 15.2, "feels_like": 14.1, "humidity": 72},
	"wind": {"speed": 4.1},
	"weather": [{"id": 800, "main": "Clear", "description": "clear sky", "icon": "01d"}]
}`

func newTestProvider(t *testing.T, handler http.HandlerFunc) *OpenWeatherMapProviderAdapter {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider, err := NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{
		APIKey:  "test-api-key",
		BaseURL: server.URL,
		Logger:  mocks.NewLogger(),
	})
	require.NoError(t, err)
	return provider
}

func TestOpenWeatherMapProvider_GetCurrentWeather_Success(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "51.5074", q.Get("lat"))
		assert.Equal(t, "-0.1278", q.Get("lon"))
		assert.Equal(t, "metric", q.Get("units"))
		assert.Equal(t, "minutely", q.Get("exclude"))
		assert.Equal(t, "test-api-key", q.Get("appid"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(londonCurrentJSON))
	})

	data, err := provider.GetCurrentWeather(context.Background(), 51.5074, -0.1278)
	require.NoError(t, err)

	assert.Equal(t, 15.2, data.Temperature)
	assert.Equal(t, 14.1, data.FeelsLike)
	assert.Equal(t, 72.0, data.Humidity)
	assert.Equal(t, 4.1, data.WindSpeed)
	assert.Equal(t, "800", data.ConditionCode)
	assert.Equal(t, "clear sky", data.Description)
	assert.Equal(t, "01d", data.IconID)
	assert.Equal(t, "London", data.PlaceName)
	assert.True(t, data.Timestamp.Equal(time.Unix(1714564800, 0)))
	assert.Equal(t, "openweathermap", provider.GetProviderName())
}

func TestOpenWeatherMapProvider_GetCurrentWeather_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		errType errors.ErrorType
	}{
		{"Unauthorized", http.StatusUnauthorized, `{"cod":401,"message":"Invalid API key"}`, errors.ErrorTypeRemoteRejected},
		{"ServerError", http.StatusInternalServerError, `oops`, errors.ErrorTypeRemoteRejected},
		{"MalformedBody", http.StatusOK, `{"main":`, errors.ErrorTypeParse},
		{"NoConditions", http.StatusOK, `{"main":{"temp":1},"weather":[]}`, errors.ErrorTypeParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			data, err := provider.GetCurrentWeather(context.Background(), 1, 1)
			assert.Nil(t, data)
			assert.Equal(t, tt.errType, errors.KindOf(err))
		})
	}
}

func TestOpenWeatherMapProvider_TransportFailureIsNetwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	provider, err := NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{
		APIKey:  "k",
		BaseURL: url,
		Logger:  mocks.NewLogger(),
	})
	require.NoError(t, err)

	_, err = provider.GetCurrentWeather(context.Background(), 1, 1)
	assert.True(t, errors.IsNetworkError(err))
}

func TestOpenWeatherMapProvider_HonoursContextDeadline(t *testing.T) {
	release := make(chan struct{})
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := provider.GetCurrentWeather(ctx, 1, 1)
	assert.True(t, errors.IsNetworkError(err))
}

func TestNewOpenWeatherMapProviderAdapter_Validation(t *testing.T) {
	_, err := NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{Logger: mocks.NewLogger()})
	assert.True(t, errors.IsConfigurationError(err))

	_, err = NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{APIKey: "k"})
	assert.True(t, errors.IsValidationError(err))
}
