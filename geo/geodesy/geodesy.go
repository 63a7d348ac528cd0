// Package geodesy holds the spherical-Earth primitives everything else
// is built on: great-circle distance, bearing, speed between samples,
// and viewport bounding boxes.
package geodesy

import (
	"errors"
	"math"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/striderun/strider/common"
	"github.com/striderun/strider/types/trackpoint"
)

// EarthRadius is the mean spherical Earth radius in meters.
const EarthRadius = 6371000.0

var ErrEmptyRoute = errors.New("bounding box of zero points")

// Unit selects the length unit of a distance result.
type Unit int

const (
	Meters Unit = iota
	Kilometers
	Miles
)

const metersPerMile = 1609.344

func fromMeters(meters float64, unit Unit) float64 {
	switch unit {
	case Kilometers:
		return meters / 1000.0
	case Miles:
		return meters / metersPerMile
	default:
		return meters
	}
}

// Haversine returns the great-circle distance in meters between two
// lng/lat points. Zero for identical points, exact at the antipodes
// within floating-point rounding.
func Haversine(a, b orb.Point) float64 {
	if a == b {
		return 0
	}
	lat1 := a.Lat() * math.Pi / 180
	lat2 := b.Lat() * math.Pi / 180
	dLat := (b.Lat() - a.Lat()) * math.Pi / 180
	dLng := (b.Lon() - a.Lon()) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng
	return 2 * EarthRadius * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Distance returns the great-circle distance between two samples in the
// given unit, rounded to precision decimal places. A negative precision
// skips rounding; use that for intermediate sums.
func Distance(a, b *trackpoint.TrackPoint, unit Unit, precision int) float64 {
	d := fromMeters(Haversine(a.Point(), b.Point()), unit)
	return common.DecimalToFixed(d, precision)
}

// RouteDistance sums consecutive pairwise distances over a route,
// unrounded. Routes shorter than two points cover no distance.
func RouteDistance(pts trackpoint.TrackPoints, unit Unit) float64 {
	meters := 0.0
	for i := 1; i < len(pts); i++ {
		meters += Haversine(pts[i-1].Point(), pts[i].Point())
	}
	return fromMeters(meters, unit)
}

// Speed returns the speed in meters per second between two samples.
// Non-chronological or duplicate timestamps yield 0, never NaN or Inf.
func Speed(a, b *trackpoint.TrackPoint) float64 {
	dt := b.Time.Sub(a.Time).Seconds()
	if dt <= 0 {
		return 0
	}
	return Haversine(a.Point(), b.Point()) / dt
}

// SpeedKmh returns the speed in kilometers per hour between two samples.
func SpeedKmh(a, b *trackpoint.TrackPoint) float64 {
	return common.MpsToKmh(Speed(a, b))
}

// Bearing returns the initial compass bearing from a to b in [0, 360).
func Bearing(a, b *trackpoint.TrackPoint) float64 {
	deg := geo.Bearing(a.Point(), b.Point())
	deg = math.Mod(deg+360, 360)
	if deg == 360 {
		deg = 0
	}
	return deg
}

// Box is a map viewport: the route's extremes, center, and padded spans.
type Box struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
	CenterLat      float64
	CenterLng      float64
	LatDelta       float64
	LngDelta       float64
}

// MinBoxDelta keeps a single-point or degenerate route renderable;
// a zero-span viewport is useless to a map.
const MinBoxDelta = 0.01

// BoundingBox computes the viewport for a route, expanding each span by
// paddingFraction on both sides. An empty route is a programmer error.
func BoundingBox(pts trackpoint.TrackPoints, paddingFraction float64) (Box, error) {
	if len(pts) == 0 {
		return Box{}, ErrEmptyRoute
	}

	rb := s2.NewRectBounder()
	for _, tp := range pts {
		rb.AddPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(tp.Lat, tp.Lng)))
	}
	rect := rb.RectBound()

	box := Box{
		MinLat: rect.Lat.Lo * 180 / math.Pi,
		MaxLat: rect.Lat.Hi * 180 / math.Pi,
		MinLng: rect.Lng.Lo * 180 / math.Pi,
		MaxLng: rect.Lng.Hi * 180 / math.Pi,
	}
	box.CenterLat = (box.MinLat + box.MaxLat) / 2
	box.CenterLng = (box.MinLng + box.MaxLng) / 2
	box.LatDelta = (box.MaxLat - box.MinLat) * (1 + 2*paddingFraction)
	box.LngDelta = (box.MaxLng - box.MinLng) * (1 + 2*paddingFraction)
	if box.LatDelta < MinBoxDelta {
		box.LatDelta = MinBoxDelta
	}
	if box.LngDelta < MinBoxDelta {
		box.LngDelta = MinBoxDelta
	}
	return box, nil
}
