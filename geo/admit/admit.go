// Package admit is the streaming accept/reject gate applied to each raw
// location update during active capture, before a point ever enters a
// stored route. One Filter per capture session; each call is O(1) and
// only the last accepted point is retained as state.
package admit

import (
	"errors"
	"fmt"
	"time"

	"github.com/striderun/strider/events"
	"github.com/striderun/strider/geo/geodesy"
	"github.com/striderun/strider/params"
	"github.com/striderun/strider/stream"
	"github.com/striderun/strider/types/trackpoint"
)

// ErrInvalidLocation covers structurally bad coordinates and physically
// implausible jumps. ErrAccuracyTooLow covers a reported accuracy beyond
// the admission threshold. Both are transient: a rejected update never
// aborts the session, the filter just waits for the next one.
var ErrInvalidLocation = errors.New("invalid location")
var ErrAccuracyTooLow = errors.New("accuracy too low")

const rejectionRingSize = 16

// Rejection records one discarded update, for diagnostics.
type Rejection struct {
	Point *trackpoint.TrackPoint
	Err   error // nil for silent interval/displacement drops
	At    time.Time
}

// Filter is the per-session admission gate. Not safe for concurrent use;
// location updates arrive on a single callback and so do calls here.
type Filter struct {
	cfg          *params.AdmissionConfig
	lastAccepted *trackpoint.TrackPoint
	rejections   *stream.RingBuffer[Rejection]
}

func NewFilter(cfg *params.AdmissionConfig) *Filter {
	if cfg == nil {
		cfg = params.DefaultAdmissionConfig
	}
	return &Filter{
		cfg:        cfg,
		rejections: stream.NewRingBuffer[Rejection](rejectionRingSize),
	}
}

// Admit applies the admission policy to one incoming update, in order,
// rejecting on the first failed rule:
//
//  1. structurally invalid coordinates -> ErrInvalidLocation
//  2. reported accuracy beyond threshold -> ErrAccuracyTooLow, except the
//     very first point of a session, which is always admitted so a slow
//     GPS lock can't deadlock tracking
//  3. implied speed from the last accepted point beyond the max -> ErrInvalidLocation
//  4. too soon or too near the last accepted point -> silent drop, no error
//
// On acceptance the point becomes the new cursor, is published to
// events.AdmittedPointFeed, and true is returned. Past points are never
// re-evaluated; a rejected update is simply not recorded.
func (f *Filter) Admit(tp *trackpoint.TrackPoint) (bool, error) {
	if err := tp.Validate(); err != nil {
		return false, f.reject(tp, fmt.Errorf("%w: %w", ErrInvalidLocation, err))
	}

	if f.lastAccepted != nil {
		if tp.Accuracy != nil && *tp.Accuracy > f.cfg.AccuracyThreshold {
			return false, f.reject(tp, fmt.Errorf("%w: %.0fm > %.0fm",
				ErrAccuracyTooLow, *tp.Accuracy, f.cfg.AccuracyThreshold))
		}

		if kmh := geodesy.SpeedKmh(f.lastAccepted, tp); kmh > f.cfg.MaxSpeed {
			return false, f.reject(tp, fmt.Errorf("%w: %.1fkm/h > %.1fkm/h",
				ErrInvalidLocation, kmh, f.cfg.MaxSpeed))
		}

		elapsed := tp.Time.Sub(f.lastAccepted.Time)
		moved := geodesy.Haversine(f.lastAccepted.Point(), tp.Point())
		if elapsed < f.cfg.MinInterval || moved < f.cfg.MinDisplacement {
			return false, f.reject(tp, nil)
		}
	}

	f.lastAccepted = tp
	events.AdmittedPointFeed.Send(tp)
	return true, nil
}

func (f *Filter) reject(tp *trackpoint.TrackPoint, err error) error {
	f.rejections.Add(Rejection{Point: tp, Err: err, At: time.Now()})
	return err
}

// LastAccepted returns the cursor, nil before the first acceptance.
func (f *Filter) LastAccepted() *trackpoint.TrackPoint {
	return f.lastAccepted
}

// RecentRejections returns up to the last few discarded updates, oldest
// first.
func (f *Filter) RecentRejections() []Rejection {
	return f.rejections.Get()
}

// Reset clears all session state. Call when capture stops or restarts.
func (f *Filter) Reset() {
	f.lastAccepted = nil
	f.rejections.Reset()
}
