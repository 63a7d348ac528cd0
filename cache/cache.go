// Package cache holds short-lived derived state: the last accepted point
// per capture session, and memoized analysis reports keyed by route
// content. Nothing here is persistence; everything expires.
package cache

import (
	"fmt"

	"github.com/jellydator/ttlcache/v3"
	"github.com/striderun/strider/geo/pace"
	"github.com/striderun/strider/params"
	"github.com/striderun/strider/types/trackpoint"
)

var LastKnownTTLCache = ttlcache.New[string, *trackpoint.TrackPoint](
	ttlcache.WithTTL[string, *trackpoint.TrackPoint](params.CacheLastKnownTTL))

var ReportTTLCache = ttlcache.New[string, *pace.Report](
	ttlcache.WithTTL[string, *pace.Report](params.CacheReportTTL))

// SetLastKnown records the most recent accepted point for a session.
func SetLastKnown(sessionID string, tp *trackpoint.TrackPoint) {
	LastKnownTTLCache.Set(sessionID, tp, ttlcache.DefaultTTL)
}

// LastKnown returns the most recent accepted point for a session, nil if
// the session is unknown or expired.
func LastKnown(sessionID string) *trackpoint.TrackPoint {
	item := LastKnownTTLCache.Get(sessionID)
	if item == nil {
		return nil
	}
	return item.Value()
}

// RouteKey hashes route content. Identical routes hash identically, so a
// re-analysis of an unchanged route is a cache hit.
func RouteKey(pts trackpoint.TrackPoints) (string, error) {
	hash, err := pts.ContentHash()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", hash), nil
}

// SetReport memoizes an analysis report for a route.
func SetReport(pts trackpoint.TrackPoints, r *pace.Report) {
	key, err := RouteKey(pts)
	if err != nil {
		return
	}
	ReportTTLCache.Set(key, r, ttlcache.DefaultTTL)
}

// Report returns the memoized analysis for a route, if any.
func Report(pts trackpoint.TrackPoints) (*pace.Report, bool) {
	key, err := RouteKey(pts)
	if err != nil {
		return nil, false
	}
	item := ReportTTLCache.Get(key)
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}
