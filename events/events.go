// Package events lets collaborators (storage, live UI, exporters)
// subscribe to engine milestones without the engine knowing them.
// Feeds are in-process only; subscribing is optional and dropping a
// subscription loses nothing but notifications.
package events

import (
	"github.com/ethereum/go-ethereum/event"
	"github.com/striderun/strider/types/trackpoint"
)

// AdmittedPointFeed is emitted for every point accepted by a live
// admission filter. Payloads are the accepted point as stored; rejected
// points are never published anywhere.
var AdmittedPointFeed = event.FeedOf[*trackpoint.TrackPoint]{}

// ValidatedRouteFeed is emitted when a completed route has been run
// through the batch validator. Payloads are the kept (filtered) points;
// the validation verdict travels with the caller, not the feed.
var ValidatedRouteFeed = event.FeedOf[trackpoint.TrackPoints]{}
