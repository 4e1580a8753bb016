package external

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forecast.app/internal/mocks"
	"forecast.app/pkg/errors"
)

func newTestGeocoder(t *testing.T, handler http.HandlerFunc) *OpenWeatherGeocoder {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	geocoder, err := NewOpenWeatherGeocoder(OpenWeatherGeocoderParams{
		APIKey:           "geo-key",
		BaseURL:          server.URL,
		Timeout:          time.Second,
		Logger:           mocks.NewLogger(),
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
	})
	require.NoError(t, err)
	return geocoder
}

func TestOpenWeatherGeocoder_Forward(t *testing.T) {
	geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geo/1.0/direct", r.URL.Path)
		assert.Equal(t, "London", r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "geo-key", r.URL.Query().Get("appid"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"London","lat":51.5074,"lon":-0.1278,"country":"GB","state":"England"}]`))
	})

	got, err := geocoder.Forward(context.Background(), "London", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "London", got[0].Name)
	assert.InDelta(t, 51.5074, got[0].Latitude, 1e-9)
	assert.InDelta(t, -0.1278, got[0].Longitude, 1e-9)
	assert.Equal(t, "GB", got[0].Country)
	assert.Equal(t, "England", got[0].State)
}

func TestOpenWeatherGeocoder_ForwardNoMatch(t *testing.T) {
	geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	got, err := geocoder.Forward(context.Background(), "Atlantis", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpenWeatherGeocoder_Reverse(t *testing.T) {
	geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geo/1.0/reverse", r.URL.Path)
		assert.Equal(t, "48.8566", r.URL.Query().Get("lat"))
		assert.Equal(t, "2.3522", r.URL.Query().Get("lon"))
		_, _ = w.Write([]byte(`[{"name":"Paris","lat":48.8566,"lon":2.3522,"country":"FR"}]`))
	})

	got, err := geocoder.Reverse(context.Background(), 48.8566, 2.3522, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Paris", got[0].Name)
}

func TestOpenWeatherGeocoder_ErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		errType errors.ErrorType
	}{
		{"Rejected", http.StatusUnauthorized, `{"cod":401}`, errors.ErrorTypeRemoteRejected},
		{"ServerError", http.StatusBadGateway, ``, errors.ErrorTypeRemoteRejected},
		{"Malformed", http.StatusOK, `{"name":"x"}`, errors.ErrorTypeParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := geocoder.Forward(context.Background(), "x", 1)
			assert.Equal(t, tt.errType, errors.KindOf(err))
		})
	}
}

func TestOpenWeatherGeocoder_BreakerOpensOnServerFaults(t *testing.T) {
	var calls int32
	geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := geocoder.Forward(ctx, "x", 1)
		assert.True(t, errors.IsRemoteRejectedError(err))
	}
	assert.Equal(t, "open", geocoder.BreakerState())

	_, err := geocoder.Forward(ctx, "x", 1)
	assert.True(t, errors.IsNetworkError(err))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestOpenWeatherGeocoder_CallerCancellationDoesNotTrip(t *testing.T) {
	geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(100 * time.Millisecond):
		case <-r.Context().Done():
			return
		}
		_, _ = w.Write([]byte(`[{"name":"London","lat":51.5074,"lon":-0.1278,"country":"GB"}]`))
	})

	for i := 0; i < 5; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
		_, err := geocoder.Forward(ctx, "London", 1)
		cancel()
		assert.True(t, errors.IsNetworkError(err))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	}
	assert.Equal(t, "closed", geocoder.BreakerState())

	got, err := geocoder.Forward(context.Background(), "London", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "London", got[0].Name)
}

func TestOpenWeatherGeocoder_ClientErrorsDoNotTrip(t *testing.T) {
	geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	for i := 0; i < 3; i++ {
		_, err := geocoder.Forward(context.Background(), "x", 1)
		assert.True(t, errors.IsRemoteRejectedError(err))
	}
	assert.Equal(t, "closed", geocoder.BreakerState())
}

func TestNewOpenWeatherGeocoder_Validation(t *testing.T) {
	_, err := NewOpenWeatherGeocoder(OpenWeatherGeocoderParams{Logger: mocks.NewLogger()})
	assert.True(t, errors.IsConfigurationError(err))

	_, err = NewOpenWeatherGeocoder(OpenWeatherGeocoderParams{APIKey: "k"})
	assert.True(t, errors.IsValidationError(err))
}
