// Package testdata builds synthetic routes for tests. Real capture
// files vary too much run to run; generated routes make the expected
// numbers obvious.
package testdata

import (
	"math"
	"time"

	"github.com/striderun/strider/types/trackpoint"
)

// Anchor coordinates and start time for generated routes. Arbitrary but
// fixed; tests depend on determinism, not on the place.
const (
	StartLat = 44.9889
	StartLng = -93.2555
)

var StartTime = time.Date(2025, 6, 1, 7, 30, 0, 0, time.UTC)

// MetersPerDegreeLat is the north-south span of one degree on the
// spherical model the engine uses (R = 6,371,000 m).
const MetersPerDegreeLat = math.Pi / 180 * 6371000

// Float returns a pointer, for the optional TrackPoint fields.
func Float(v float64) *float64 {
	return &v
}

// StraightRoute walks due north from the anchor: n points, stepMeters
// apart, interval apart in time, all reporting the given accuracy.
func StraightRoute(n int, stepMeters float64, interval time.Duration, accuracy float64) trackpoint.TrackPoints {
	pts := make(trackpoint.TrackPoints, 0, n)
	for i := 0; i < n; i++ {
		pts = append(pts, &trackpoint.TrackPoint{
			Lat:      StartLat + float64(i)*stepMeters/MetersPerDegreeLat,
			Lng:      StartLng,
			Accuracy: Float(accuracy),
			Time:     StartTime.Add(time.Duration(i) * interval),
		})
	}
	return pts
}

// PacedRoute walks due north at a steady pace (seconds per km) for the
// given distance, one point every stepMeters. The first point sits at
// the anchor; elapsed time follows from pace and distance exactly.
func PacedRoute(totalMeters, stepMeters, paceSecPerKm float64) trackpoint.TrackPoints {
	n := int(totalMeters/stepMeters) + 1
	secPerStep := paceSecPerKm * stepMeters / 1000.0
	pts := make(trackpoint.TrackPoints, 0, n)
	for i := 0; i < n; i++ {
		pts = append(pts, &trackpoint.TrackPoint{
			Lat:  StartLat + float64(i)*stepMeters/MetersPerDegreeLat,
			Lng:  StartLng,
			Time: StartTime.Add(time.Duration(float64(i) * secPerStep * float64(time.Second))),
		})
	}
	return pts
}

// WithElevations copies the route and sets elevations, repeating the
// given profile as needed.
func WithElevations(pts trackpoint.TrackPoints, profile ...float64) trackpoint.TrackPoints {
	out := pts.Copy()
	for i, tp := range out {
		tp.Elevation = Float(profile[i%len(profile)])
	}
	return out
}

// Teleported copies the route and drags one point roughly km kilometers
// east, the kind of fix an urban canyon spits out.
func Teleported(pts trackpoint.TrackPoints, idx int, km float64) trackpoint.TrackPoints {
	out := pts.Copy()
	out[idx].Lng += km * 1000 / MetersPerDegreeLat
	return out
}
