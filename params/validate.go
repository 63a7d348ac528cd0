package params

import "github.com/striderun/strider/common"

type ValidationConfig struct {
	// MaxSpeed is the speed (km/h) above which a point is dropped by the
	// speed pass, measured against the last kept point.
	MaxSpeed float64

	// MaxAccuracy is the worst reported horizontal accuracy (meters) kept
	// by the accuracy pass. Points reporting no accuracy are kept.
	MaxAccuracy float64

	// MinPointsRequired is the fewest points a route can keep and still
	// be valid.
	MinPointsRequired int

	// OutlierThreshold is the farthest (meters) an interior point may sit
	// from the midpoint of its neighbors before the outlier pass drops it.
	OutlierThreshold float64
}

var DefaultValidationConfig = &ValidationConfig{
	MaxSpeed:          common.SpeedOfDrivingCityKmh,
	MaxAccuracy:       50.0,
	MinPointsRequired: 5,
	OutlierThreshold:  100.0,
}
