// Package location holds the coordinate value type and the resolver that
// translates between place names and coordinates.
package location

import (
	"fmt"

	"forecast.app/pkg/errors"
	"forecast.app/pkg/validation"
)

// UnknownValue is the legacy out-of-range marker for "no location".
const UnknownValue = 360.0

// Unknown is the sentinel coordinate older callers pass when no location is
// available. It is never produced by this package and is always rejected.
var Unknown = Coordinate{Latitude: UnknownValue, Longitude: UnknownValue}

// Coordinate is a WGS84 latitude/longitude pair in decimal degrees
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// New returns a validated coordinate
func New(lat, lon float64) (Coordinate, error) {
	c := Coordinate{Latitude: lat, Longitude: lon}
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}

// IsUnknown reports whether c is the legacy sentinel
func (c Coordinate) IsUnknown() bool {
	return c.Latitude == UnknownValue && c.Longitude == UnknownValue
}

// Validate returns an InvalidLocation error for the sentinel and for
// coordinates outside lat [-90,90], lon [-180,180].
func (c Coordinate) Validate() error {
	if c.IsUnknown() {
		return errors.NewInvalidLocationError("location is unknown")
	}
	if !validation.IsValidLatitude(c.Latitude) {
		return errors.NewInvalidLocationError(fmt.Sprintf("latitude %v out of range [-90, 90]", c.Latitude))
	}
	if !validation.IsValidLongitude(c.Longitude) {
		return errors.NewInvalidLocationError(fmt.Sprintf("longitude %v out of range [-180, 180]", c.Longitude))
	}
	return nil
}

// String renders the coordinate with four decimals
func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Latitude, c.Longitude)
}
