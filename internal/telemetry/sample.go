// internal/telemetry/sample.go
package telemetry

import (
	"math"
	"strconv"
	"time"
)

// NotAvailable is the sentinel shown for fields the vehicle did not
// report. Missing data is never rendered as zero.
const NotAvailable = "n/a"

// Sample is one flat telemetry record. Every field is optional; nil
// means the vehicle did not report it.
type Sample struct {
	AccelX     *float64
	AccelY     *float64
	AccelZ     *float64
	DistanceCM *float64
	Motion     *bool
	Latitude   *float64
	Longitude  *float64
	GeoLat     *float64
	GeoLong    *float64
	PWM        *float64
	SprayLeft  *bool
	SprayRight *bool

	At time.Time
}

// Fields renders the sample for display: every known field, with the
// sentinel for anything unreported.
func (s Sample) Fields() map[string]string {
	return map[string]string{
		"accel_x":     numText(s.AccelX),
		"accel_y":     numText(s.AccelY),
		"accel_z":     numText(s.AccelZ),
		"distance_cm": numText(s.DistanceCM),
		"motion":      boolText(s.Motion),
		"latitude":    numText(s.Latitude),
		"longitude":   numText(s.Longitude),
		"geolat":      numText(s.GeoLat),
		"geolong":     numText(s.GeoLong),
		"pwm":         numText(s.PWM),
		"spray_left":  boolText(s.SprayLeft),
		"spray_right": boolText(s.SprayRight),
	}
}

// MapPoint returns the coordinates the map marker should re-center on.
// ok is false unless both coordinates are present and finite; prefers
// latitude/longitude and falls back to geolat/geolong.
func MapPoint(s Sample) (lat, lng float64, ok bool) {
	if p, q, ok := finitePair(s.Latitude, s.Longitude); ok {
		return p, q, true
	}
	return finitePair(s.GeoLat, s.GeoLong)
}

func finitePair(a, b *float64) (float64, float64, bool) {
	if a == nil || b == nil {
		return 0, 0, false
	}
	if math.IsNaN(*a) || math.IsInf(*a, 0) || math.IsNaN(*b) || math.IsInf(*b, 0) {
		return 0, 0, false
	}
	return *a, *b, true
}

func numText(v *float64) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return NotAvailable
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func boolText(v *bool) string {
	if v == nil {
		return NotAvailable
	}
	if *v {
		return "1"
	}
	return "0"
}
