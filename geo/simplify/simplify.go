// Package simplify bounds the point count of a stored or rendered route
// without visibly distorting its shape. Small routes get a cheap
// near-duplicate sweep; big ones get Douglas-Peucker with a stride
// fallback when even a coarse tolerance can't get under the cap.
// Output is deterministic for identical input and config.
package simplify

import (
	"math"

	"github.com/striderun/strider/geo/geodesy"
	"github.com/striderun/strider/params"
	"github.com/striderun/strider/types/trackpoint"
)

// degreesToMeters converts an angular tolerance to meters of arc.
func degreesToMeters(deg float64) float64 {
	return deg * math.Pi / 180 * geodesy.EarthRadius
}

// Route returns a simplified copy of the route. Routes of two points or
// fewer pass through unchanged; the first and last point always survive.
// Simplifying an already-simplified route never adds points back.
func Route(pts trackpoint.TrackPoints, cfg *params.SimplificationConfig) trackpoint.TrackPoints {
	if cfg == nil {
		cfg = params.DefaultSimplificationConfig
	}
	if len(pts) <= 2 {
		return pts.Copy()
	}

	if len(pts) <= cfg.MaxPoints {
		return dedupePass(pts, cfg)
	}

	// A non-positive tolerance can't double its way to the cap; fall
	// straight through to the stride bound instead of retrying forever.
	for tol := cfg.Tolerance; tol > 0 && tol <= cfg.ToleranceCap; tol *= 2 {
		out := douglasPeucker(pts, tol)
		if len(out) <= cfg.MaxPoints {
			return out
		}
	}
	return stridePass(pts, cfg.MaxPoints)
}

// dedupePass drops points closer than tolerance/2 to the previously kept
// point. This is deduplication, not shape simplification; GPS fixes
// taken standing still pile up in one spot.
func dedupePass(pts trackpoint.TrackPoints, cfg *params.SimplificationConfig) trackpoint.TrackPoints {
	minGap := degreesToMeters(cfg.Tolerance) / 2
	out := make(trackpoint.TrackPoints, 0, len(pts))
	out = append(out, pts[0].Copy())
	last := 0
	for i := 1; i < len(pts)-1; i++ {
		if geodesy.Haversine(pts[last].Point(), pts[i].Point()) < minGap {
			continue
		}
		out = append(out, pts[i].Copy())
		last = i
	}
	tail := pts[len(pts)-1]
	if cfg.PreserveEndpoints || geodesy.Haversine(pts[last].Point(), tail.Point()) >= minGap {
		out = append(out, tail.Copy())
	}
	return out
}

type span struct {
	first, last int
}

// douglasPeucker keeps only points whose perpendicular distance from the
// running baseline exceeds tol (degrees). Iterative with an explicit
// span stack; a pathological route must not blow the call stack.
func douglasPeucker(pts trackpoint.TrackPoints, tol float64) trackpoint.TrackPoints {
	n := len(pts)
	tolMeters := degreesToMeters(tol)
	keep := make([]bool, n)
	keep[0], keep[n-1] = true, true

	stack := make([]span, 0, 64)
	stack = append(stack, span{0, n - 1})
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		maxDist, maxIdx := 0.0, -1
		for i := s.first + 1; i < s.last; i++ {
			d := perpendicularDistance(pts[i], pts[s.first], pts[s.last])
			if d > maxDist {
				maxDist, maxIdx = d, i
			}
		}
		if maxIdx != -1 && maxDist > tolMeters {
			keep[maxIdx] = true
			stack = append(stack, span{s.first, maxIdx}, span{maxIdx, s.last})
		}
	}

	out := make(trackpoint.TrackPoints, 0, n)
	for i, k := range keep {
		if k {
			out = append(out, pts[i].Copy())
		}
	}
	return out
}

// perpendicularDistance measures p against segment a-b in meters, on a
// local equirectangular projection centered on the segment. Good at
// route scale; not globally accurate, and doesn't need to be.
func perpendicularDistance(p, a, b *trackpoint.TrackPoint) float64 {
	scale := math.Cos((a.Lat + b.Lat) / 2 * math.Pi / 180)
	project := func(tp *trackpoint.TrackPoint) (x, y float64) {
		x = (tp.Lng - a.Lng) * math.Pi / 180 * scale * geodesy.EarthRadius
		y = (tp.Lat - a.Lat) * math.Pi / 180 * geodesy.EarthRadius
		return
	}

	px, py := project(p)
	bx, by := project(b)

	segLenSq := bx*bx + by*by
	if segLenSq == 0 {
		return math.Hypot(px, py)
	}
	// Perpendicular distance to the infinite line through a and b.
	return math.Abs(px*by-py*bx) / math.Sqrt(segLenSq)
}

// stridePass uniformly samples maxPoints indices, first and last always
// included. The shape suffers; the bound holds.
func stridePass(pts trackpoint.TrackPoints, maxPoints int) trackpoint.TrackPoints {
	n := len(pts)
	if maxPoints < 2 {
		maxPoints = 2
	}
	stride := float64(n-1) / float64(maxPoints-1)
	out := make(trackpoint.TrackPoints, 0, maxPoints)
	lastIdx := -1
	for i := 0; i < maxPoints; i++ {
		idx := int(math.Round(float64(i) * stride))
		if idx >= n {
			idx = n - 1
		}
		if idx == lastIdx {
			continue
		}
		out = append(out, pts[idx].Copy())
		lastIdx = idx
	}
	return out
}
