package params

import (
	"time"

	"github.com/striderun/strider/common"
)

type AdmissionConfig struct {
	// AccuracyThreshold is the worst reported horizontal accuracy (meters)
	// admitted during live capture. The very first point of a session is
	// exempt, so a slow GPS lock can't deadlock tracking.
	AccuracyThreshold float64

	// MaxSpeed is the fastest plausible speed (km/h) from the last
	// accepted point. Anything faster is a glitch, not a runner.
	MaxSpeed float64

	// MinInterval is the minimum elapsed time since the last accepted
	// point. Points arriving faster are dropped silently.
	MinInterval time.Duration

	// MinDisplacement is the minimum distance (meters) moved since the
	// last accepted point. Standing still does not make a route.
	MinDisplacement float64
}

var DefaultAdmissionConfig = &AdmissionConfig{
	AccuracyThreshold: 100.0,
	MaxSpeed:          common.SpeedOfDrivingCityKmh,
	MinInterval:       800 * time.Millisecond,
	MinDisplacement:   5.0,
}
