package params

import "time"

var (
	// CacheLastKnownTTL bounds how long a capture session's last accepted
	// point stays addressable after the session goes quiet.
	CacheLastKnownTTL = 24 * time.Hour

	// CacheReportTTL bounds memoized pace analysis reports.
	CacheReportTTL = 1 * time.Hour
)

// DefaultBatchSize is the channel buffer used by streaming pipelines.
var DefaultBatchSize = 100_000

// DefaultDedupeCacheSize is the LRU size for duplicate-point rejection.
var DefaultDedupeCacheSize = 10_000
