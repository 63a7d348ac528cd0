package common

// Speeds are meters per second unless noted.

const SpeedOfWalkingMin = 0.23 // or 0.8 km/h
const SpeedOfWalkingMean = 1.2 // or 4.3 km/h
const SpeedOfWalkingMax = 1.78 // or 6.4 km/h

const SpeedOfRunningMin = 2.23  // or 8 km/h
const SpeedOfRunningMean = 3.35 // or 12 km/h or 8min/mile
const SpeedOfRunningMax = 5.56  // or 20 km/h

const SpeedOfCyclingMax = 11.76 // or 42 km/h

// SpeedOfDrivingCityKmh is about as fast as anything plausibly
// tracked by a foot-race app should ever move; it is the default
// ceiling for both the live admission gate and the batch validator.
const SpeedOfDrivingCityKmh = 50.0
const SpeedOfDrivingCity = SpeedOfDrivingCityKmh / 3.6 // m/s

// KmhToMps converts kilometers per hour to meters per second.
func KmhToMps(kmh float64) float64 {
	return kmh / 3.6
}

// MpsToKmh converts meters per second to kilometers per hour.
func MpsToKmh(mps float64) float64 {
	return mps * 3.6
}
