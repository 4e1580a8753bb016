// Package mocks provides testify mocks for the ports package.
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"forecast.app/internal/ports"
)

// TestingT is the subset of *testing.T the constructors need
type TestingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(m *mock.Mock, t TestingT) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// WeatherProvider mocks ports.WeatherProvider
type WeatherProvider struct {
	mock.Mock
}

func NewWeatherProvider(t TestingT) *WeatherProvider {
	m := &WeatherProvider{}
	register(&m.Mock, t)
	return m
}

func (m *WeatherProvider) GetCurrentWeather(ctx context.Context, lat, lon float64) (*ports.WeatherData, error) {
	args := m.Called(ctx, lat, lon)
	data, _ := args.Get(0).(*ports.WeatherData)
	return data, args.Error(1)
}

func (m *WeatherProvider) GetProviderName() string {
	return m.Called().String(0)
}

// Geocoder mocks ports.Geocoder
type Geocoder struct {
	mock.Mock
}

func NewGeocoder(t TestingT) *Geocoder {
	m := &Geocoder{}
	register(&m.Mock, t)
	return m
}

func (m *Geocoder) Forward(ctx context.Context, query string, limit int) ([]ports.GeocodeCandidate, error) {
	args := m.Called(ctx, query, limit)
	candidates, _ := args.Get(0).([]ports.GeocodeCandidate)
	return candidates, args.Error(1)
}

func (m *Geocoder) Reverse(ctx context.Context, lat, lon float64, limit int) ([]ports.GeocodeCandidate, error) {
	args := m.Called(ctx, lat, lon, limit)
	candidates, _ := args.Get(0).([]ports.GeocodeCandidate)
	return candidates, args.Error(1)
}

// GeocodeCache mocks ports.GeocodeCache
type GeocodeCache struct {
	mock.Mock
}

func NewGeocodeCache(t TestingT) *GeocodeCache {
	m := &GeocodeCache{}
	register(&m.Mock, t)
	return m
}

func (m *GeocodeCache) Get(ctx context.Context, key string) (*ports.GeocodeCandidate, error) {
	args := m.Called(ctx, key)
	candidate, _ := args.Get(0).(*ports.GeocodeCandidate)
	return candidate, args.Error(1)
}

func (m *GeocodeCache) Set(ctx context.Context, key string, candidate *ports.GeocodeCandidate, ttl time.Duration) error {
	return m.Called(ctx, key, candidate, ttl).Error(0)
}

// ConnectivityChecker mocks ports.ConnectivityChecker
type ConnectivityChecker struct {
	mock.Mock
}

func NewConnectivityChecker(t TestingT) *ConnectivityChecker {
	m := &ConnectivityChecker{}
	register(&m.Mock, t)
	return m
}

func (m *ConnectivityChecker) IsReachable(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

// FavoritesRepository mocks ports.FavoritesRepository
type FavoritesRepository struct {
	mock.Mock
}

func NewFavoritesRepository(t TestingT) *FavoritesRepository {
	m := &FavoritesRepository{}
	register(&m.Mock, t)
	return m
}

func (m *FavoritesRepository) List(ctx context.Context) ([]*ports.FavoriteData, error) {
	args := m.Called(ctx)
	favs, _ := args.Get(0).([]*ports.FavoriteData)
	return favs, args.Error(1)
}

func (m *FavoritesRepository) FindByID(ctx context.Context, id uint) (*ports.FavoriteData, error) {
	args := m.Called(ctx, id)
	fav, _ := args.Get(0).(*ports.FavoriteData)
	return fav, args.Error(1)
}

func (m *FavoritesRepository) Insert(ctx context.Context, fav *ports.FavoriteData) error {
	return m.Called(ctx, fav).Error(0)
}

func (m *FavoritesRepository) UpdateSnapshot(ctx context.Context, id uint, snapshot *ports.SnapshotData) error {
	return m.Called(ctx, id, snapshot).Error(0)
}

func (m *FavoritesRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// ConfigProvider mocks ports.ConfigProvider
type ConfigProvider struct {
	mock.Mock
}

func NewConfigProvider(t TestingT) *ConfigProvider {
	m := &ConfigProvider{}
	register(&m.Mock, t)
	return m
}

func (m *ConfigProvider) GetWeatherConfig() ports.WeatherConfig {
	return m.Called().Get(0).(ports.WeatherConfig)
}

func (m *ConfigProvider) GetGeocodingConfig() ports.GeocodingConfig {
	return m.Called().Get(0).(ports.GeocodingConfig)
}

func (m *ConfigProvider) GetFavoritesConfig() ports.FavoritesConfig {
	return m.Called().Get(0).(ports.FavoritesConfig)
}

func (m *ConfigProvider) GetServerConfig() ports.ServerConfig {
	return m.Called().Get(0).(ports.ServerConfig)
}

// StaticConfig is a ports.ConfigProvider returning fixed values
type StaticConfig struct {
	Weather   ports.WeatherConfig
	Geocoding ports.GeocodingConfig
	Favorites ports.FavoritesConfig
	Server    ports.ServerConfig
}

func (c *StaticConfig) GetWeatherConfig() ports.WeatherConfig     { return c.Weather }
func (c *StaticConfig) GetGeocodingConfig() ports.GeocodingConfig { return c.Geocoding }
func (c *StaticConfig) GetFavoritesConfig() ports.FavoritesConfig { return c.Favorites }
func (c *StaticConfig) GetServerConfig() ports.ServerConfig       { return c.Server }

// LogEntry is one call recorded by Logger
type LogEntry struct {
	Level   string
	Message string
	Fields  []ports.Field
}

// Logger records log calls instead of asserting on them
type Logger struct {
	mu      sync.Mutex
	entries []LogEntry
}

func NewLogger() *Logger {
	return &Logger{}
}

func (l *Logger) record(level, msg string, fields []ports.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Message: msg, Fields: fields})
}

func (l *Logger) Debug(msg string, fields ...ports.Field) { l.record("DEBUG", msg, fields) }
func (l *Logger) Info(msg string, fields ...ports.Field)  { l.record("INFO", msg, fields) }
func (l *Logger) Warn(msg string, fields ...ports.Field)  { l.record("WARN", msg, fields) }
func (l *Logger) Error(msg string, fields ...ports.Field) { l.record("ERROR", msg, fields) }

// Entries returns a copy of the recorded calls
func (l *Logger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// HasMessage reports whether msg was logged at level
func (l *Logger) HasMessage(level, msg string) bool {
	for _, e := range l.Entries() {
		if e.Level == level && e.Message == msg {
			return true
		}
	}
	return false
}

// CacheMetrics mocks ports.CacheMetrics by counting calls
type CacheMetrics struct {
	mu     sync.Mutex
	Hits   int64
	Misses int64
}

func (m *CacheMetrics) GetStats() ports.CacheStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := m.Hits + m.Misses
	stats := ports.CacheStats{Hits: m.Hits, Misses: m.Misses, TotalOps: total}
	if total > 0 {
		stats.HitRatio = float64(m.Hits) / float64(total)
	}
	return stats
}

func (m *CacheMetrics) RecordHit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Hits++
}

func (m *CacheMetrics) RecordMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Misses++
}

// DataLayerMetrics records outcomes in memory
type DataLayerMetrics struct {
	mu        sync.Mutex
	Fetches   map[string]int
	Refreshes map[string]int
}

func NewDataLayerMetrics() *DataLayerMetrics {
	return &DataLayerMetrics{Fetches: map[string]int{}, Refreshes: map[string]int{}}
}

func (m *DataLayerMetrics) ObserveWeatherFetch(outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Fetches[outcome]++
}

func (m *DataLayerMetrics) RecordFavoriteRefresh(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Refreshes[outcome]++
}

// FetchCount returns how many fetches ended with outcome
func (m *DataLayerMetrics) FetchCount(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Fetches[outcome]
}

// RefreshCount returns how many refreshes ended with outcome
func (m *DataLayerMetrics) RefreshCount(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Refreshes[outcome]
}
