// Package pace turns a route into the numbers runners argue about:
// kilometer splits, pace zones, split strategy, and consistency.
//
// All paces are seconds per kilometer. The positive/negative split
// labels keep their historical mapping: "negative" marks a SLOWER
// second half, the inverse of common running usage. Existing clients
// depend on the mapping; do not "fix" it here.
package pace

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/striderun/strider/geo/geodesy"
	"github.com/striderun/strider/params"
	"github.com/striderun/strider/types/trackpoint"
)

// Zone names, ordered easiest to hardest.
const (
	ZoneEasy     = "Easy"
	ZoneModerate = "Moderate"
	ZoneHard     = "Hard"
	ZoneMaximum  = "Maximum"
)

// Classifications of half-to-half strategy and effort placement.
const (
	SplitPositive = "positive"
	SplitNegative = "negative"
	SplitEven     = "even"

	EffortFrontLoaded = "front_loaded"
	EffortBackLoaded  = "back_loaded"
	EffortEven        = "even"
)

// Split is one (approximately) kilometer sub-segment of the route.
type Split struct {
	Index         int                    `json:"index"` // 1-based
	Pace          float64                `json:"pace"`  // seconds per km
	Elapsed       float64                `json:"elapsedTime"`
	Distance      float64                `json:"segmentDistance"` // meters
	Start         *trackpoint.TrackPoint `json:"start"`
	End           *trackpoint.TrackPoint `json:"end"`
	ElevationGain float64                `json:"elevationGain"`
	ElevationLoss float64                `json:"elevationLoss"`
}

// Zone is a pace band derived from the route's own average pace, not
// user-configured. Bounds are seconds per km; a zero UpperBound means
// unbounded above (Easy), a zero LowerBound unbounded below (Maximum).
type Zone struct {
	Name       string  `json:"name"`
	LowerBound float64 `json:"paceLowerBound"`
	UpperBound float64 `json:"paceUpperBound"`
}

// ZoneTime is time spent in one zone, as split elapsed-time sums.
type ZoneTime struct {
	Zone
	Seconds float64 `json:"seconds"`
	Percent float64 `json:"percent"`
}

// Report is the full analysis of one route. Value-semantics; computed
// fresh per call and never retained by the engine.
type Report struct {
	Splits             []Split    `json:"splits"`
	AveragePace        float64    `json:"averagePace"`
	PaceStdDev         float64    `json:"paceStdDev"`
	FastestSplit       int        `json:"fastestSplit"` // 1-based index, 0 when empty
	SlowestSplit       int        `json:"slowestSplit"`
	Classification     string     `json:"splitClassification"`
	EffortDistribution string     `json:"effortDistribution"`
	Zones              []ZoneTime `json:"zones"`
	TotalDistance      float64    `json:"totalDistance"` // meters
	TotalElapsed       float64    `json:"totalElapsed"`  // seconds
}

// emptyReport is the all-zero/neutral analysis for degenerate routes.
func emptyReport() *Report {
	return &Report{
		Splits:             []Split{},
		Zones:              []ZoneTime{},
		Classification:     SplitEven,
		EffortDistribution: EffortEven,
	}
}

// Analyze computes the full pace report for a route, typically one that
// already passed batch validation. Degenerate routes (fewer than two
// points, or a first kilometer that never completes) yield the empty
// report, never an error.
func Analyze(pts trackpoint.TrackPoints, cfg *params.PaceConfig) *Report {
	if cfg == nil {
		cfg = params.DefaultPaceConfig
	}
	if len(pts) < 2 {
		return emptyReport()
	}

	filtered := outlierPrefilter(pts, cfg.OutlierSpeed)
	splits := cutSplits(filtered, cfg)
	if len(splits) == 0 {
		return emptyReport()
	}

	paces := make([]float64, len(splits))
	totalDistance, totalElapsed := 0.0, 0.0
	for i, s := range splits {
		paces[i] = s.Pace
		totalDistance += s.Distance
		totalElapsed += s.Elapsed
	}

	statsData := stats.Float64Data(paces)
	avgPace := statsMustFloat(statsData.Mean, 0)

	r := &Report{
		Splits:             splits,
		AveragePace:        avgPace,
		PaceStdDev:         statsMustFloat(statsData.StandardDeviationPopulation, 0),
		Classification:     classifySplits(paces, cfg.SplitClassifyThreshold),
		EffortDistribution: effortDistribution(paces, avgPace, cfg.EffortThreshold),
		Zones:              zoneTimes(splits, avgPace, totalElapsed, cfg),
		TotalDistance:      totalDistance,
		TotalElapsed:       totalElapsed,
	}
	r.FastestSplit, r.SlowestSplit = extremeSplits(splits)
	return r
}

func statsMustFloat(fn func() (float64, error), def float64) float64 {
	out, err := fn()
	if err != nil {
		return def
	}
	return out
}

// outlierPrefilter drops interior points implying an implausible speed
// from EITHER original neighbor. Looser than the batch validator's speed
// pass, scoped to pace math only; endpoints always survive.
func outlierPrefilter(pts trackpoint.TrackPoints, maxKmh float64) trackpoint.TrackPoints {
	if len(pts) <= 2 {
		return pts
	}
	out := make(trackpoint.TrackPoints, 0, len(pts))
	out = append(out, pts[0])
	for i := 1; i < len(pts)-1; i++ {
		if geodesy.SpeedKmh(pts[i-1], pts[i]) > maxKmh ||
			geodesy.SpeedKmh(pts[i], pts[i+1]) > maxKmh {
			continue
		}
		out = append(out, pts[i])
	}
	out = append(out, pts[len(pts)-1])
	return out
}

// cutSplits walks the route accumulating distance and closes a split
// every time the segment reaches the configured distance. A trailing
// partial is appended only when it is long enough to mean anything,
// and only to a list that already has at least one full split; a route
// whose first kilometer never completes has no pace story to tell.
func cutSplits(pts trackpoint.TrackPoints, cfg *params.PaceConfig) []Split {
	if len(pts) < 2 {
		return nil
	}

	splits := []Split{}
	segStart := pts[0]
	segDistance := 0.0
	gain, loss := 0.0, 0.0

	closeSplit := func(end *trackpoint.TrackPoint) {
		elapsed := end.Time.Sub(segStart.Time).Seconds()
		pace := 0.0
		if segDistance > 0 {
			pace = elapsed / (segDistance / 1000.0)
		}
		splits = append(splits, Split{
			Index:         len(splits) + 1,
			Pace:          pace,
			Elapsed:       elapsed,
			Distance:      segDistance,
			Start:         segStart,
			End:           end,
			ElevationGain: gain,
			ElevationLoss: loss,
		})
	}

	for i := 1; i < len(pts); i++ {
		prev, cur := pts[i-1], pts[i]
		segDistance += geodesy.Haversine(prev.Point(), cur.Point())

		delta := elevation(cur) - elevation(prev)
		if delta > 0 {
			gain += delta
		} else {
			loss += -delta
		}

		if segDistance >= cfg.SplitDistance {
			closeSplit(cur)
			segStart = cur
			segDistance, gain, loss = 0, 0, 0
		}
	}

	if len(splits) == 0 {
		return nil
	}
	if segDistance > cfg.MinPartialDistance {
		closeSplit(pts[len(pts)-1])
	}
	return splits
}

// elevation treats missing altitude as 0.
func elevation(tp *trackpoint.TrackPoint) float64 {
	if tp.Elevation == nil {
		return 0
	}
	return *tp.Elevation
}

// zoneTimes derives the four pace bands from the average pace and sums
// split elapsed time into each.
func zoneTimes(splits []Split, avgPace, totalElapsed float64, cfg *params.PaceConfig) []ZoneTime {
	zones := []ZoneTime{
		{Zone: Zone{Name: ZoneEasy, LowerBound: avgPace + cfg.ZoneEasyOffset}},
		{Zone: Zone{Name: ZoneModerate, LowerBound: avgPace - cfg.ZoneModerateOffset, UpperBound: avgPace + cfg.ZoneEasyOffset}},
		{Zone: Zone{Name: ZoneHard, LowerBound: avgPace - cfg.ZoneHardOffset, UpperBound: avgPace - cfg.ZoneModerateOffset}},
		{Zone: Zone{Name: ZoneMaximum, UpperBound: avgPace - cfg.ZoneHardOffset}},
	}

	zoneFor := func(pace float64) int {
		switch {
		case pace >= avgPace+cfg.ZoneEasyOffset:
			return 0
		case pace >= avgPace-cfg.ZoneModerateOffset:
			return 1
		case pace >= avgPace-cfg.ZoneHardOffset:
			return 2
		default:
			return 3
		}
	}

	for _, s := range splits {
		zones[zoneFor(s.Pace)].Seconds += s.Elapsed
	}
	if totalElapsed > 0 {
		for i := range zones {
			zones[i].Percent = 100 * zones[i].Seconds / totalElapsed
		}
	}
	return zones
}

// classifySplits compares the mean pace of the first half of splits to
// the second. A second half slower by more than the threshold is labeled
// "negative", faster is "positive"; see the package comment about the
// inverted mapping. The middle split of an odd count belongs to neither
// half.
func classifySplits(paces []float64, threshold float64) string {
	n := len(paces)
	if n < 2 {
		return SplitEven
	}
	half := n / 2
	first := statsMustFloat(stats.Float64Data(paces[:half]).Mean, 0)
	second := statsMustFloat(stats.Float64Data(paces[n-half:]).Mean, 0)

	diff := second - first
	switch {
	case diff > threshold:
		return SplitNegative
	case diff < -threshold:
		return SplitPositive
	default:
		return SplitEven
	}
}

// effortDistribution counts notably fast splits (more than threshold
// s/km under average) in each half of the run.
func effortDistribution(paces []float64, avgPace, threshold float64) string {
	n := len(paces)
	if n < 2 {
		return EffortEven
	}
	half := n / 2
	fastFirst, fastSecond := 0, 0
	for i, p := range paces {
		if avgPace-p <= threshold {
			continue
		}
		if i < half {
			fastFirst++
		} else if i >= n-half {
			fastSecond++
		}
	}
	switch {
	case fastFirst > fastSecond:
		return EffortFrontLoaded
	case fastSecond > fastFirst:
		return EffortBackLoaded
	default:
		return EffortEven
	}
}

// extremeSplits returns the 1-based indexes of the fastest and slowest
// splits.
func extremeSplits(splits []Split) (fastest, slowest int) {
	minPace, maxPace := math.Inf(1), math.Inf(-1)
	for _, s := range splits {
		if s.Pace < minPace {
			minPace, fastest = s.Pace, s.Index
		}
		if s.Pace > maxPace {
			maxPace, slowest = s.Pace, s.Index
		}
	}
	return fastest, slowest
}
