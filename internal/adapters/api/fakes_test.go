package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"forecast.app/internal/core/favorites"
	"forecast.app/internal/core/location"
	"forecast.app/internal/core/result"
	"forecast.app/internal/core/weather"
	"forecast.app/internal/mocks"
	"forecast.app/internal/ports"
)

type stubWeather struct {
	env   result.Envelope[weather.Snapshot]
	calls []location.Coordinate
}

func (s *stubWeather) FetchCurrent(_ context.Context, coord location.Coordinate) result.Envelope[weather.Snapshot] {
	s.calls = append(s.calls, coord)
	return s.env
}

type stubLocations struct {
	places  map[string]location.Place
	reverse map[location.Coordinate]string
}

func (s *stubLocations) Lookup(_ context.Context, name string) (location.Place, bool) {
	p, ok := s.places[name]
	return p, ok
}

func (s *stubLocations) ResolveReverse(_ context.Context, c location.Coordinate) (string, bool) {
	name, ok := s.reverse[c]
	return name, ok
}

type stubFavorites struct {
	list      []favorites.Favorite
	listErr   error
	byID      map[uint]favorites.Favorite
	added     []favorites.Favorite
	addErr    error
	deleted   []uint
	deleteErr error
	search    result.Envelope[favorites.Favorite]
}

func (s *stubFavorites) List(context.Context) ([]favorites.Favorite, error) {
	return s.list, s.listErr
}

func (s *stubFavorites) Get(_ context.Context, id uint) (favorites.Favorite, error) {
	fav, ok := s.byID[id]
	if !ok {
		return favorites.Favorite{}, errNotFound
	}
	return fav, nil
}

func (s *stubFavorites) Add(_ context.Context, name string, coord location.Coordinate) (favorites.Favorite, error) {
	if s.addErr != nil {
		return favorites.Favorite{}, s.addErr
	}
	fav := favorites.Favorite{ID: uint(len(s.added) + 1), DisplayName: name, Coordinate: coord}
	s.added = append(s.added, fav)
	return fav, nil
}

func (s *stubFavorites) Delete(_ context.Context, id uint) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubFavorites) Search(context.Context, string) result.Envelope[favorites.Favorite] {
	return s.search
}

type stubRefresher struct {
	entries []favorites.Entry
	err     error
}

func (s *stubRefresher) RefreshAll(context.Context) ([]favorites.Entry, error) {
	return s.entries, s.err
}

type stubMetrics struct{}

func (stubMetrics) GetMetrics(context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{"weather": map[string]interface{}{"provider": "openweathermap"}}, nil
}

type stubHealth struct {
	results map[string]ports.HealthStatus
}

func (s stubHealth) CheckAll(context.Context) map[string]ports.HealthStatus {
	return s.results
}

type testServer struct {
	server    *HTTPServerAdapter
	weather   *stubWeather
	locations *stubLocations
	favorites *stubFavorites
	refresher *stubRefresher
	logger    *mocks.Logger
}

func newTestServer(t *testing.T, opts ...func(*ServerOptions)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{
		weather:   &stubWeather{},
		locations: &stubLocations{places: map[string]location.Place{}, reverse: map[location.Coordinate]string{}},
		favorites: &stubFavorites{byID: map[uint]favorites.Favorite{}},
		refresher: &stubRefresher{},
		logger:    mocks.NewLogger(),
	}

	options := ServerOptions{
		Config:              ServerConfig{Port: 8080},
		WeatherService:      ts.weather,
		LocationService:     ts.locations,
		FavoritesService:    ts.favorites,
		FavoritesRefresher:  ts.refresher,
		MetricsCollector:    stubMetrics{},
		SystemHealthChecker: stubHealth{results: map[string]ports.HealthStatus{}},
		Logger:              ts.logger,
	}
	for _, opt := range opts {
		opt(&options)
	}

	server, err := NewHTTPServerAdapter(options)
	require.NoError(t, err)
	ts.server = server
	return ts
}

func (ts *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(w, req)
	return w
}
