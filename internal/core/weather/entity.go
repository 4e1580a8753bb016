package weather

import (
	"fmt"
	"strings"
	"time"
)

const absoluteZeroCelsius = -273.15

// Snapshot is the current conditions at one coordinate at one instant.
// It is produced once per successful fetch and never mutated.
type Snapshot struct {
	Temperature   float64   `json:"temperature"`
	FeelsLike     float64   `json:"feels_like"`
	Humidity      float64   `json:"humidity"`
	WindSpeed     float64   `json:"wind_speed"`
	ConditionCode string    `json:"condition_code"`
	Description   string    `json:"description"`
	IconID        string    `json:"icon_id"`
	PlaceName     string    `json:"place_name,omitempty"`
	FetchedAt     time.Time `json:"fetched_at"`
}

// IsValid validates a snapshot decoded from the provider
func (s Snapshot) IsValid() error {
	if strings.TrimSpace(s.Description) == "" {
		return fmt.Errorf("description cannot be empty")
	}
	if s.Temperature < absoluteZeroCelsius {
		return fmt.Errorf("temperature cannot be below absolute zero")
	}
	if s.Humidity < 0 || s.Humidity > 100 {
		return fmt.Errorf("humidity must be between 0 and 100")
	}
	return nil
}

// TemperatureInFahrenheit converts temperature from Celsius to Fahrenheit
func (s Snapshot) TemperatureInFahrenheit() float64 {
	return s.Temperature*9/5 + 32
}

// IconURL returns the provider's 2x icon for the snapshot, or "" without an icon id
func (s Snapshot) IconURL() string {
	if s.IconID == "" {
		return ""
	}
	return fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", s.IconID)
}

// HumidityDescription provides a human-readable description of humidity level
func (s Snapshot) HumidityDescription() string {
	switch {
	case s.Humidity < 20:
		return "Very dry"
	case s.Humidity < 30:
		return "Dry"
	case s.Humidity < 60:
		return "Comfortable"
	case s.Humidity < 80:
		return "Humid"
	default:
		return "Very humid"
	}
}

// String returns a string representation of the snapshot
func (s Snapshot) String() string {
	place := s.PlaceName
	if place == "" {
		place = "unknown place"
	}
	return fmt.Sprintf("%s: %.1f°C, %.0f%% humidity, %s", place, s.Temperature, s.Humidity, s.Description)
}
