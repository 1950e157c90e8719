package kernel

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// GeoMinLat is the minimum valid latitude in degrees.
	GeoMinLat float64 = -90
	// GeoMaxLat is the maximum valid latitude in degrees.
	GeoMaxLat float64 = 90
	// GeoMinLng is the minimum valid longitude in degrees.
	GeoMinLng float64 = -180
	// GeoMaxLng is the maximum valid longitude in degrees.
	GeoMaxLng float64 = 180
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly initialized GeoPoint.
// GeoPoints must be created using the NewGeoPoint constructor to ensure validity.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a geographic coordinate pair with validated latitude and longitude.
// GeoPoint is an immutable value object; the zero value is invalid and will fail
// validation - use the constructor to create instances.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(40.4168, -3.7038)
//	if err != nil {
//	    // Handle validation error
//	}
type GeoPoint struct {
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a new GeoPoint with the specified coordinates.
// Latitude must be within [GeoMinLat..GeoMaxLat] and longitude within
// [GeoMinLng..GeoMaxLng]. Returns an error if either value is out of bounds.
func NewGeoPoint(lat float64, lng float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(point.setLat(lat), point.setLng(lng)); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate checks if the GeoPoint was properly constructed using the constructor.
// The zero value of GeoPoint is invalid and will fail this validation.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lng returns the longitude in degrees.
func (p GeoPoint) Lng() float64 {
	return p.lng
}

// IsEqual compares two geo points by coordinates.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.lat == other.lat && p.lng == other.lng
}

// String returns a human-readable representation of the point.
func (p GeoPoint) String() string {
	return fmt.Sprintf("Geo(%g,%g)", p.lat, p.lng)
}

func (p *GeoPoint) setLat(lat float64) error {
	if lat < GeoMinLat || lat > GeoMaxLat {
		return errs.NewValueIsOutOfRangeError("lat", lat, GeoMinLat, GeoMaxLat)
	}
	p.lat = lat
	return nil
}

func (p *GeoPoint) setLng(lng float64) error {
	if lng < GeoMinLng || lng > GeoMaxLng {
		return errs.NewValueIsOutOfRangeError("lng", lng, GeoMinLng, GeoMaxLng)
	}
	p.lng = lng
	return nil
}
