package ports

import "time"

// Outcome labels shared by the data-layer metrics
const (
	OutcomeSuccess  = "success"
	OutcomeCanceled = "canceled"
)

// DataLayerMetrics records the outcome of remote fetches and favorite refreshes.
// Outcome is OutcomeSuccess, OutcomeCanceled or an error kind such as NETWORK_ERROR.
type DataLayerMetrics interface {
	ObserveWeatherFetch(outcome string, duration time.Duration)
	RecordFavoriteRefresh(outcome string)
}
