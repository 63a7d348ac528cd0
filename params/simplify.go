package params

type SimplificationConfig struct {
	// MaxPoints bounds the size of a stored or rendered route.
	MaxPoints int

	// Tolerance is the Douglas-Peucker perpendicular-distance threshold,
	// in degrees. 0.0001 is roughly 11 meters at the equator.
	Tolerance float64

	// ToleranceCap bounds tolerance-doubling retries when the first
	// Douglas-Peucker pass still exceeds MaxPoints.
	ToleranceCap float64

	// PreserveEndpoints keeps the first and last point no matter what.
	PreserveEndpoints bool
}

var DefaultSimplificationConfig = &SimplificationConfig{
	MaxPoints:         1000,
	Tolerance:         0.0001,
	ToleranceCap:      0.01,
	PreserveEndpoints: true,
}
