// Package types decodes the wire shapes clients actually send:
// flat trackpoint arrays, GeoJSON features, or feature collections.
package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/striderun/strider/types/trackpoint"
	"github.com/tidwall/gjson"
)

var ErrDecodeTracks = fmt.Errorf("could not decode as trackpoints or geojson or geojsonfc")

// DecodeTrackPoints attempts to decode a byte slice into a slice of
// TrackPoints. An error will be returned if the unmarshaling fails,
// OR if the resulting slice is empty,
// OR if the first trackpoint in the slice has a zero Time field.
// A Time value is required for all points, and an unmarshal of a geojson
// slice will not fill the flat Time field ('.properties.Time' vs '.time').
func DecodeTrackPoints(data []byte) (trackpoint.TrackPoints, error) {
	trackPoints := trackpoint.TrackPoints{}
	if err := json.Unmarshal(data, &trackPoints); err != nil {
		return nil, err
	}
	if len(trackPoints) == 0 {
		return nil, errors.New("empty trackpoints")
	}
	if trackPoints[0].Time.IsZero() {
		return nil, errors.New("invalid trackpoint (missing or zero 'time' field)")
	}
	return trackPoints, nil
}

// DecodeTrackPointsShotgun is a serial collection of handy-bandy attempts
// to turn input data into a route, useful for a legacy-supporting surface.
// It sniffs the shape with gjson before committing to a decoder.
func DecodeTrackPointsShotgun(data []byte) (trackpoint.TrackPoints, error) {

	// Is it a geojson.FeatureCollection object?
	// https://datatracker.ietf.org/doc/html/rfc7946#section-3.3
	if res := gjson.GetBytes(data, "features"); res.Exists() {
		gjfc := geojson.NewFeatureCollection()
		if err := gjfc.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		out := make(trackpoint.TrackPoints, 0, len(gjfc.Features))
		for _, f := range gjfc.Features {
			tp, err := FeatureToTrackPoint(f)
			if err != nil {
				return nil, err
			}
			out = append(out, tp)
		}
		return out, nil
	}

	parsed := gjson.ParseBytes(data)
	if !parsed.IsArray() {
		// A single bare feature?
		if gjson.GetBytes(data, "geometry").Exists() {
			f, err := geojson.UnmarshalFeature(data)
			if err != nil {
				return nil, err
			}
			tp, err := FeatureToTrackPoint(f)
			if err != nil {
				return nil, err
			}
			return trackpoint.TrackPoints{tp}, nil
		}
		return nil, ErrDecodeTracks
	}

	arr := parsed.Array()
	if len(arr) == 0 {
		return nil, fmt.Errorf("empty set")
	}

	// An array of features, or an array of flat points.
	if arr[0].Get("geometry").Exists() {
		out := make(trackpoint.TrackPoints, 0, len(arr))
		for _, el := range arr {
			f, err := geojson.UnmarshalFeature([]byte(el.Raw))
			if err != nil {
				return nil, err
			}
			tp, err := FeatureToTrackPoint(f)
			if err != nil {
				return nil, err
			}
			out = append(out, tp)
		}
		return out, nil
	}
	return DecodeTrackPoints(data)
}

// FeatureToTrackPoint flattens a GeoJSON point feature into a TrackPoint.
// Time comes from properties.UnixTime when present, else properties.Time
// as RFC3339. Accuracy and Elevation stay absent when the feature doesn't
// report them.
func FeatureToTrackPoint(f *geojson.Feature) (*trackpoint.TrackPoint, error) {
	pt, ok := f.Geometry.(orb.Point)
	if !ok {
		return nil, fmt.Errorf("feature geometry is not a point: %T", f.Geometry)
	}
	tp := &trackpoint.TrackPoint{
		Lat: pt.Lat(),
		Lng: pt.Lon(),
	}
	if v, ok := f.Properties["UnixTime"]; ok {
		switch t := v.(type) {
		case int64:
			tp.Time = time.Unix(t, 0)
		case float64:
			tp.Time = time.Unix(int64(t), 0)
		}
	}
	if tp.Time.IsZero() {
		ts, _ := f.Properties["Time"].(string)
		t, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("feature has no usable time: %w", err)
		}
		tp.Time = t
	}
	if v, ok := f.Properties["Accuracy"].(float64); ok {
		tp.Accuracy = &v
	}
	if v, ok := f.Properties["Elevation"].(float64); ok {
		tp.Elevation = &v
	}
	if v, ok := f.Properties["Speed"].(float64); ok && v >= 0 {
		tp.Speed = &v
	}
	return tp, nil
}
