package weather

import (
	"context"
	stderrors "errors"
	"time"

	"forecast.app/internal/core/location"
	"forecast.app/internal/core/result"
	"forecast.app/internal/ports"
	"forecast.app/pkg/errors"
)

const defaultFetchTimeout = 10 * time.Second

// Client fetches current conditions for a coordinate. Every outcome,
// including rejected input, is returned as an envelope.
type Client struct {
	provider     ports.WeatherProvider
	connectivity ports.ConnectivityChecker
	config       ports.ConfigProvider
	logger       ports.Logger
	metrics      ports.DataLayerMetrics
	now          func() time.Time
}

type ClientDependencies struct {
	Provider     ports.WeatherProvider
	Connectivity ports.ConnectivityChecker
	Config       ports.ConfigProvider
	Logger       ports.Logger
	Metrics      ports.DataLayerMetrics
}

func NewClient(deps ClientDependencies) (*Client, error) {
	if deps.Provider == nil {
		return nil, errors.NewValidationError("weather provider is required")
	}
	if deps.Connectivity == nil {
		return nil, errors.NewValidationError("connectivity checker is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	return &Client{
		provider:     deps.Provider,
		connectivity: deps.Connectivity,
		config:       deps.Config,
		logger:       deps.Logger,
		metrics:      deps.Metrics,
		now:          time.Now,
	}, nil
}

// FetchCurrent issues at most one request for coord. Invalid coordinates
// and an unreachable network fail without touching the provider.
func (c *Client) FetchCurrent(ctx context.Context, coord location.Coordinate) result.Envelope[Snapshot] {
	if err := coord.Validate(); err != nil {
		c.logger.Debug("Rejected weather request", ports.F("coordinate", coord.String()), ports.F("error", err))
		return result.Failure[Snapshot](err)
	}

	if !c.connectivity.IsReachable(ctx) {
		c.metrics.ObserveWeatherFetch(errors.NetworkError.String(), 0)
		return result.Failure[Snapshot](errors.NewNetworkError("no internet connection", nil))
	}

	timeout := c.config.GetWeatherConfig().FetchTimeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	data, err := c.provider.GetCurrentWeather(fetchCtx, coord.Latitude, coord.Longitude)
	elapsed := time.Since(start)

	if err != nil {
		appErr := classify(err)
		c.metrics.ObserveWeatherFetch(appErr.Type.String(), elapsed)
		c.logger.Warn("Weather fetch failed",
			ports.F("coordinate", coord.String()),
			ports.F("kind", appErr.Type.String()),
			ports.F("error", err))
		return result.Failure[Snapshot](appErr)
	}

	snapshot := c.toSnapshot(data)
	if err := snapshot.IsValid(); err != nil {
		c.metrics.ObserveWeatherFetch(errors.ParseError.String(), elapsed)
		return result.Failure[Snapshot](errors.NewParseError("invalid weather payload", err))
	}

	c.metrics.ObserveWeatherFetch(ports.OutcomeSuccess, elapsed)
	c.logger.Debug("Weather retrieved successfully",
		ports.F("coordinate", coord.String()),
		ports.F("temperature", snapshot.Temperature),
		ports.F("duration_ms", elapsed.Milliseconds()))
	return result.Success(snapshot)
}

func classify(err error) *errors.AppError {
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.NewNetworkError("weather request timed out", err)
	case stderrors.Is(err, context.Canceled):
		return errors.NewNetworkError("weather request canceled", err)
	}
	if appErr, ok := errors.As(err); ok {
		return appErr
	}
	return errors.NewNetworkError("weather request failed", err)
}

func (c *Client) toSnapshot(data *ports.WeatherData) Snapshot {
	if data == nil {
		return Snapshot{}
	}
	fetchedAt := data.Timestamp
	if fetchedAt.IsZero() {
		fetchedAt = c.now()
	}
	return Snapshot{
		Temperature:   data.Temperature,
		FeelsLike:     data.FeelsLike,
		Humidity:      data.Humidity,
		WindSpeed:     data.WindSpeed,
		ConditionCode: data.ConditionCode,
		Description:   data.Description,
		IconID:        data.IconID,
		PlaceName:     data.PlaceName,
		FetchedAt:     fetchedAt,
	}
}

// ProviderName reports which upstream serves weather data
func (c *Client) ProviderName() string {
	return c.provider.GetProviderName()
}
