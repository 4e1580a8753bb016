package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Weather
	WeatherProvider WeatherProvider

	// Location
	Geocoder     Geocoder
	GeocodeCache GeocodeCache
	Connectivity ConnectivityChecker

	// Favorites
	FavoritesRepository FavoritesRepository

	// Cache
	CacheProvider CacheProvider

	// Infrastructure
	ConfigProvider ConfigProvider
	Logger         Logger
	Database       interface{}
}
