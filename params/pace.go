package params

type PaceConfig struct {
	// SplitDistance is the segment length (meters) that closes a split.
	SplitDistance float64

	// MinPartialDistance is the shortest trailing partial segment (meters)
	// worth reporting as a split of its own.
	MinPartialDistance float64

	// OutlierSpeed is the speed (km/h) from either neighbor above which an
	// interior point is excluded from pace analysis. Looser than the batch
	// validator's speed pass; it is scoped to pace math only.
	OutlierSpeed float64

	// ZoneEasyOffset, ZoneModerateOffset, ZoneHardOffset are the pace-zone
	// boundaries in seconds per km, relative to the route's average pace.
	// Easy is avg+ZoneEasyOffset and slower; Maximum is faster than
	// avg-ZoneHardOffset.
	ZoneEasyOffset     float64
	ZoneModerateOffset float64
	ZoneHardOffset     float64

	// SplitClassifyThreshold is the half-to-half mean pace difference
	// (seconds per km) beyond which a run stops being "even".
	SplitClassifyThreshold float64

	// EffortThreshold is how far (seconds per km) a split must sit from
	// the average pace to count as notably fast or slow.
	EffortThreshold float64
}

var DefaultPaceConfig = &PaceConfig{
	SplitDistance:          1000.0,
	MinPartialDistance:     100.0,
	OutlierSpeed:           25.0,
	ZoneEasyOffset:         60.0,
	ZoneModerateOffset:     30.0,
	ZoneHardOffset:         90.0,
	SplitClassifyThreshold: 15.0,
	EffortThreshold:        30.0,
}
