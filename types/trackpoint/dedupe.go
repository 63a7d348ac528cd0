package trackpoint

import (
	"fmt"

	"github.com/golang/groupcache/lru"
	"github.com/mitchellh/hashstructure/v2"
	"github.com/striderun/strider/params"
)

// hashablePoint flattens a sample for content hashing. time.Time exposes
// no exported fields, so hashing a TrackPoint directly would hash
// everything BUT the timestamp; the time must travel as a plain integer.
type hashablePoint struct {
	Lat       float64
	Lng       float64
	Accuracy  *float64
	Elevation *float64
	Speed     *float64
	UnixNano  int64
}

func hashable(tp *TrackPoint) hashablePoint {
	return hashablePoint{
		Lat:       tp.Lat,
		Lng:       tp.Lng,
		Accuracy:  tp.Accuracy,
		Elevation: tp.Elevation,
		Speed:     tp.Speed,
		UnixNano:  tp.Time.UnixNano(),
	}
}

// ContentHash hashes the full content of the sample, timestamp included.
func (tp *TrackPoint) ContentHash() (uint64, error) {
	return hashstructure.Hash(hashable(tp), hashstructure.FormatV2, nil)
}

// ContentHash hashes the route's content in order. Identical routes hash
// identically regardless of whether they share backing memory.
func (tps TrackPoints) ContentHash() (uint64, error) {
	hs := make([]hashablePoint, len(tps))
	for i, tp := range tps {
		hs[i] = hashable(tp)
	}
	return hashstructure.Hash(hs, hashstructure.FormatV2, nil)
}

// NewDedupeLRUFunc returns a predicate that passes each unique point once.
// Flaky clients re-send updates; byte-identical repeats are rejected on an
// LRU of content hashes. Not safe for concurrent use; scope one per stream.
func NewDedupeLRUFunc() func(TrackPoint) bool {
	var dedupeCache = lru.New(params.DefaultDedupeCacheSize)
	return func(tp TrackPoint) bool {
		hash, err := tp.ContentHash()
		if err != nil {
			return false
		}
		key := fmt.Sprintf("%d", hash)
		_, ok := dedupeCache.Get(key)
		if ok {
			return false
		}
		dedupeCache.Add(key, true)
		return true
	}
}
