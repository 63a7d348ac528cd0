package trackpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/striderun/strider/common"
)

var ErrBadCoordinates = errors.New("latitude/longitude not finite or out of range")
var ErrMissingTime = errors.New("missing or zero time")

// TrackPoint stores one raw GPS sample of a run.
// Accuracy and Elevation are optional; clients that don't report them
// send nothing at all rather than a sentinel value, so absence is a nil
// pointer, not a zero.
type TrackPoint struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"long"`
	Accuracy  *float64  `json:"accuracy,omitempty"`  // horizontal, in meters; smaller is better
	Elevation *float64  `json:"elevation,omitempty"` // in meters
	Speed     *float64  `json:"speed,omitempty"`     // reported, in m/s
	Time      time.Time `json:"time"`
}

// UnmarshalJSON is a custom unmarshaler for TrackPoint.
// It asserts that the Time field is a valid RFC3339 time.
func (tp *TrackPoint) UnmarshalJSON(data []byte) error {
	type Alias TrackPoint
	aux := &struct {
		Time string `json:"time"`
		*Alias
	}{
		Alias: (*Alias)(tp),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	tp.Time, err = time.Parse(time.RFC3339, aux.Time)
	if err != nil {
		return err
	}
	return nil
}

// Validate asserts the structural invariants of a sample: finite,
// in-range coordinates and a nonzero timestamp. A point failing this
// never enters a route.
func (tp *TrackPoint) Validate() error {
	if !common.IsFinite(tp.Lat) || !common.IsFinite(tp.Lng) {
		return ErrBadCoordinates
	}
	if tp.Lat < -90 || tp.Lat > 90 {
		return fmt.Errorf("%w: lat=%v", ErrBadCoordinates, tp.Lat)
	}
	if tp.Lng < -180 || tp.Lng > 180 {
		return fmt.Errorf("%w: long=%v", ErrBadCoordinates, tp.Lng)
	}
	if tp.Time.IsZero() {
		return ErrMissingTime
	}
	return nil
}

// Point returns the sample as an orb point, lng/lat ordered.
func (tp *TrackPoint) Point() orb.Point {
	return orb.Point{tp.Lng, tp.Lat}
}

// Copy returns a deep copy of the point.
func (tp *TrackPoint) Copy() *TrackPoint {
	cp := *tp
	if tp.Accuracy != nil {
		v := *tp.Accuracy
		cp.Accuracy = &v
	}
	if tp.Elevation != nil {
		v := *tp.Elevation
		cp.Elevation = &v
	}
	if tp.Speed != nil {
		v := *tp.Speed
		cp.Speed = &v
	}
	return &cp
}

// TrackPoints is a route: an ordered sequence of samples, chronologically
// non-decreasing once validated. The engine transforms routes; it never
// owns or persists them.
type TrackPoints []*TrackPoint

// Copy returns a deep copy of the route.
func (tps TrackPoints) Copy() TrackPoints {
	out := make(TrackPoints, len(tps))
	for i, tp := range tps {
		out[i] = tp.Copy()
	}
	return out
}

// Timespan returns the elapsed time between the first and last point.
func (tps TrackPoints) Timespan() time.Duration {
	if len(tps) < 2 {
		return 0
	}
	return tps[len(tps)-1].Time.Sub(tps[0].Time)
}
