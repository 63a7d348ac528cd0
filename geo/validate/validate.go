// Package validate is the post-hoc cleanup of a completed route: an
// accuracy pass, a speed pass, and an outlier pass, in that order, plus
// a 0-100 quality score summarizing how trustworthy the GPS data is.
// Data quality is an outcome here, never an error; degenerate routes
// come back with IsValid=false, not a panic or failure.
package validate

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/striderun/strider/common"
	"github.com/striderun/strider/events"
	"github.com/striderun/strider/geo/geodesy"
	"github.com/striderun/strider/params"
	"github.com/striderun/strider/types/trackpoint"
)

// Result is the verdict on one route. Points is an owned copy; the
// input route is never mutated.
type Result struct {
	IsValid         bool                   `json:"isValid"`
	Points          trackpoint.TrackPoints `json:"points"`
	RemovedCount    int                    `json:"removedCount"`
	AverageAccuracy float64                `json:"averageAccuracy"`
	QualityScore    int                    `json:"qualityScore"`
}

// Route filters a completed route per cfg and scores what survives.
// Safe to call concurrently for different routes; each call works on
// its own copy. Re-validating a validated route removes nothing.
func Route(pts trackpoint.TrackPoints, cfg *params.ValidationConfig) *Result {
	if cfg == nil {
		cfg = params.DefaultValidationConfig
	}

	original := len(pts)
	if original < cfg.MinPointsRequired {
		return &Result{
			IsValid:      false,
			Points:       trackpoint.TrackPoints{},
			RemovedCount: original,
			QualityScore: 0,
		}
	}

	working := pts.Copy()
	sort.SliceStable(working, func(i, j int) bool {
		return working[i].Time.Before(working[j].Time)
	})

	working = accuracyPass(working, cfg.MaxAccuracy)
	working = speedPass(working, cfg.MaxSpeed)
	working = outlierPass(working, cfg.OutlierThreshold)

	avgAccuracy, hasAccuracy := averageAccuracy(working)
	events.ValidatedRouteFeed.Send(working)

	return &Result{
		IsValid:         len(working) >= cfg.MinPointsRequired,
		Points:          working,
		RemovedCount:    original - len(working),
		AverageAccuracy: avgAccuracy,
		QualityScore:    qualityScore(len(working), original, avgAccuracy, hasAccuracy, cfg),
	}
}

// accuracyPass drops points reporting an accuracy worse than maxAccuracy.
// Points reporting none are kept; absence of data is not evidence of bad
// data.
func accuracyPass(pts trackpoint.TrackPoints, maxAccuracy float64) trackpoint.TrackPoints {
	kept := make(trackpoint.TrackPoints, 0, len(pts))
	for _, tp := range pts {
		if tp.Accuracy != nil && *tp.Accuracy > maxAccuracy {
			continue
		}
		kept = append(kept, tp)
	}
	return kept
}

// speedPass always keeps the first point, then measures each point
// against the last KEPT point, not its raw predecessor; a dropped glitch
// must not become the baseline for the next comparison. Two points on
// the same timestamp can't yield a speed, so the one with better
// accuracy replaces the kept one; with accuracy unknown on either side,
// both stay.
func speedPass(pts trackpoint.TrackPoints, maxSpeed float64) trackpoint.TrackPoints {
	if len(pts) == 0 {
		return pts
	}
	kept := make(trackpoint.TrackPoints, 0, len(pts))
	kept = append(kept, pts[0])
	for i := 1; i < len(pts); i++ {
		tp := pts[i]
		last := kept[len(kept)-1]

		if tp.Time.Equal(last.Time) {
			if tp.Accuracy != nil && last.Accuracy != nil {
				if *tp.Accuracy < *last.Accuracy {
					kept[len(kept)-1] = tp
				}
				continue
			}
			kept = append(kept, tp)
			continue
		}

		if geodesy.SpeedKmh(last, tp) <= maxSpeed {
			kept = append(kept, tp)
		}
	}
	return kept
}

// outlierPass keeps the first and last point unconditionally. Each
// interior point is measured against the midpoint of the previously KEPT
// point and the following ORIGINAL point. The asymmetry is intentional:
// the already-filtered past anchors one end while the unfiltered future
// anchors the other, so one outlier can't drag its neighbor out with it.
func outlierPass(pts trackpoint.TrackPoints, threshold float64) trackpoint.TrackPoints {
	if len(pts) <= 2 {
		return pts
	}
	kept := make(trackpoint.TrackPoints, 0, len(pts))
	kept = append(kept, pts[0])
	for i := 1; i < len(pts)-1; i++ {
		prev := kept[len(kept)-1]
		next := pts[i+1]
		mid := midpoint(prev, next)
		if geodesy.Haversine(pts[i].Point(), mid) <= threshold {
			kept = append(kept, pts[i])
		}
	}
	kept = append(kept, pts[len(pts)-1])
	return kept
}

func midpoint(a, b *trackpoint.TrackPoint) orb.Point {
	return orb.Point{(a.Lng + b.Lng) / 2, (a.Lat + b.Lat) / 2}
}

// averageAccuracy is the mean over points that report one; 0 if none do.
func averageAccuracy(pts trackpoint.TrackPoints) (mean float64, any bool) {
	sum, n := 0.0, 0
	for _, tp := range pts {
		if tp.Accuracy != nil {
			sum += *tp.Accuracy
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// qualityScore composes retention (<=40), accuracy (<=30), and density
// (<=30) into a clamped 0-100 integer. A route with no accuracy data at
// all earns a flat middling accuracy component; it can't be rewarded or
// punished for data it never had.
func qualityScore(filtered, original int, avgAccuracy float64, hasAccuracy bool, cfg *params.ValidationConfig) int {
	retention := 40.0 * float64(filtered) / float64(original)
	if retention > 40 {
		retention = 40
	}

	accuracy := 15.0
	if hasAccuracy {
		accuracy = 30.0 - 30.0*avgAccuracy/cfg.MaxAccuracy
		if accuracy < 0 {
			accuracy = 0
		}
	}

	density := 30.0 * float64(filtered) / float64(cfg.MinPointsRequired)
	if density > 30 {
		density = 30
	}

	return common.ClampInt(common.Round(retention+accuracy+density), 0, 100)
}
