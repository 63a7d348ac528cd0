package types

import (
	"testing"
	"time"
)

var flatTrack = []byte(`[
{"lat":44.9889,"long":-93.2555,"accuracy":5,"time":"2025-06-01T07:30:00Z"},
{"lat":44.9890,"long":-93.2555,"accuracy":5,"time":"2025-06-01T07:30:05Z"}
]`)

var featureCollection = []byte(`{
  "type": "FeatureCollection",
  "features": [
    {"type":"Feature","geometry":{"type":"Point","coordinates":[-93.2555,44.9889]},
     "properties":{"Time":"2025-06-01T07:30:00Z","Accuracy":5,"Elevation":253.1}},
    {"type":"Feature","geometry":{"type":"Point","coordinates":[-93.2555,44.9890]},
     "properties":{"UnixTime":1748763005,"Speed":3.2}}
  ]
}`)

var bareFeature = []byte(`{"type":"Feature",
 "geometry":{"type":"Point","coordinates":[-93.2555,44.9889]},
 "properties":{"Time":"2025-06-01T07:30:00Z"}}`)

func TestDecodeTrackPoints(t *testing.T) {
	tps, err := DecodeTrackPoints(flatTrack)
	if err != nil {
		t.Fatal(err)
	}
	if len(tps) != 2 {
		t.Fatalf("expected 2 points, got %d", len(tps))
	}
	if tps[0].Lat != 44.9889 || tps[0].Lng != -93.2555 {
		t.Errorf("coordinates: %v, %v", tps[0].Lat, tps[0].Lng)
	}
	if tps[0].Accuracy == nil || *tps[0].Accuracy != 5 {
		t.Error("accuracy not decoded")
	}
}

func TestDecodeTrackPoints_Errors(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"not json", []byte(`nope`)},
		{"empty array", []byte(`[]`)},
		{"missing time", []byte(`[{"lat":1,"long":2,"time":"2025-06-01T07:30:00Z"},{}]`)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := DecodeTrackPoints(c.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDecodeTrackPointsShotgun(t *testing.T) {
	t.Run("flat array", func(t *testing.T) {
		tps, err := DecodeTrackPointsShotgun(flatTrack)
		if err != nil {
			t.Fatal(err)
		}
		if len(tps) != 2 {
			t.Fatalf("expected 2 points, got %d", len(tps))
		}
	})
	t.Run("feature collection", func(t *testing.T) {
		tps, err := DecodeTrackPointsShotgun(featureCollection)
		if err != nil {
			t.Fatal(err)
		}
		if len(tps) != 2 {
			t.Fatalf("expected 2 points, got %d", len(tps))
		}
		if tps[0].Elevation == nil || *tps[0].Elevation != 253.1 {
			t.Error("elevation not carried from properties")
		}
		if !tps[1].Time.Equal(time.Unix(1748763005, 0)) {
			t.Errorf("unix time not decoded: %v", tps[1].Time)
		}
		if tps[1].Speed == nil || *tps[1].Speed != 3.2 {
			t.Error("speed not carried from properties")
		}
	})
	t.Run("bare feature", func(t *testing.T) {
		tps, err := DecodeTrackPointsShotgun(bareFeature)
		if err != nil {
			t.Fatal(err)
		}
		if len(tps) != 1 {
			t.Fatalf("expected 1 point, got %d", len(tps))
		}
		if tps[0].Lat != 44.9889 || tps[0].Lng != -93.2555 {
			t.Errorf("coordinates: %v, %v", tps[0].Lat, tps[0].Lng)
		}
	})
	t.Run("array of features", func(t *testing.T) {
		data := []byte(`[` + string(bareFeature) + `]`)
		tps, err := DecodeTrackPointsShotgun(data)
		if err != nil {
			t.Fatal(err)
		}
		if len(tps) != 1 {
			t.Fatalf("expected 1 point, got %d", len(tps))
		}
	})
	t.Run("unrecognized shape", func(t *testing.T) {
		if _, err := DecodeTrackPointsShotgun([]byte(`{"hello":"world"}`)); err == nil {
			t.Error("expected error")
		}
	})
}
