package validate

import (
	"math"
	"testing"
	"time"

	"github.com/striderun/strider/events"
	"github.com/striderun/strider/params"
	"github.com/striderun/strider/testing/testdata"
	"github.com/striderun/strider/types/trackpoint"
)

// eastOffset shifts a point by meters of longitude at its own latitude.
func eastOffset(tp *trackpoint.TrackPoint, meters float64) {
	tp.Lng += meters / (testdata.MetersPerDegreeLat * math.Cos(tp.Lat*math.Pi/180))
}

func TestRoute_TooFewPoints(t *testing.T) {
	route := testdata.StraightRoute(4, 10, 5*time.Second, 5)
	res := Route(route, nil)
	if res.IsValid {
		t.Error("4 points reported valid")
	}
	if len(res.Points) != 0 {
		t.Errorf("expected empty points, got %d", len(res.Points))
	}
	if res.RemovedCount != 4 {
		t.Errorf("expected removedCount 4, got %d", res.RemovedCount)
	}
	if res.QualityScore != 0 {
		t.Errorf("expected score 0, got %d", res.QualityScore)
	}
}

func TestRoute_CleanRoute(t *testing.T) {
	route := testdata.StraightRoute(5, 10, 5*time.Second, 5)
	res := Route(route, nil)
	if !res.IsValid {
		t.Fatal("clean route reported invalid")
	}
	if res.RemovedCount != 0 {
		t.Errorf("clean route removed %d points", res.RemovedCount)
	}
	if res.AverageAccuracy != 5 {
		t.Errorf("expected average accuracy 5, got %f", res.AverageAccuracy)
	}
	// retention 40 + accuracy 27 + density 30
	if res.QualityScore != 97 {
		t.Errorf("expected score 97, got %d", res.QualityScore)
	}
	if res.QualityScore <= 80 {
		t.Error("clean route must score above 80")
	}
}

func TestRoute_InputNotMutated(t *testing.T) {
	route := testdata.StraightRoute(6, 10, 5*time.Second, 5)
	route[3].Accuracy = testdata.Float(100)
	before := route.Copy()

	Route(route, nil)

	for i := range route {
		if route[i].Lat != before[i].Lat || !route[i].Time.Equal(before[i].Time) {
			t.Fatalf("input point %d mutated", i)
		}
		if (route[i].Accuracy == nil) != (before[i].Accuracy == nil) {
			t.Fatalf("input point %d accuracy mutated", i)
		}
	}
}

func TestRoute_AccuracyPass(t *testing.T) {
	route := testdata.StraightRoute(5, 10, 5*time.Second, 5)
	route[2].Accuracy = testdata.Float(100)
	res := Route(route, nil)
	if res.RemovedCount != 1 {
		t.Errorf("expected 1 removed, got %d", res.RemovedCount)
	}
	// 4 survivors is below the minimum.
	if res.IsValid {
		t.Error("expected invalid after dropping below minimum")
	}
}

func TestRoute_NoAccuracyData(t *testing.T) {
	route := testdata.StraightRoute(5, 10, 5*time.Second, 0)
	for _, tp := range route {
		tp.Accuracy = nil
	}
	res := Route(route, nil)
	if !res.IsValid {
		t.Fatal("accuracy-less route reported invalid")
	}
	if res.AverageAccuracy != 0 {
		t.Errorf("expected average accuracy 0, got %f", res.AverageAccuracy)
	}
	// retention 40 + flat 15 + density 30
	if res.QualityScore != 85 {
		t.Errorf("expected score 85, got %d", res.QualityScore)
	}
}

func TestRoute_SpeedPass(t *testing.T) {
	route := testdata.Teleported(testdata.StraightRoute(7, 10, 5*time.Second, 5), 3, 5)
	res := Route(route, nil)
	if !res.IsValid {
		t.Fatal("route reported invalid")
	}
	if res.RemovedCount != 1 {
		t.Errorf("expected the teleported point removed, got %d", res.RemovedCount)
	}
	for _, tp := range res.Points {
		if tp.Lng > testdata.StartLng+0.01 {
			t.Error("teleported point survived")
		}
	}
}

func TestRoute_SortsByTime(t *testing.T) {
	route := testdata.StraightRoute(5, 10, 5*time.Second, 5)
	route[1], route[3] = route[3], route[1]
	res := Route(route, nil)
	if !res.IsValid || res.RemovedCount != 0 {
		t.Fatalf("shuffled clean route: valid=%v removed=%d", res.IsValid, res.RemovedCount)
	}
	for i := 1; i < len(res.Points); i++ {
		if res.Points[i].Time.Before(res.Points[i-1].Time) {
			t.Fatal("output not time-ordered")
		}
	}
}

func TestRoute_SameTimestampTieBreak(t *testing.T) {
	t.Run("better accuracy replaces", func(t *testing.T) {
		route := testdata.StraightRoute(6, 10, 5*time.Second, 10)
		dup := route[2].Copy()
		dup.Time = route[2].Time
		dup.Accuracy = testdata.Float(4)
		route = append(route[:3], append(trackpoint.TrackPoints{dup}, route[3:]...)...)

		res := Route(route, nil)
		if res.RemovedCount != 1 {
			t.Fatalf("expected 1 removed, got %d", res.RemovedCount)
		}
		found := false
		for _, tp := range res.Points {
			if tp.Accuracy != nil && *tp.Accuracy == 4 {
				found = true
			}
		}
		if !found {
			t.Error("lower-accuracy duplicate did not replace the kept point")
		}
	})
	t.Run("unknown accuracy keeps both", func(t *testing.T) {
		route := testdata.StraightRoute(6, 10, 5*time.Second, 10)
		dup := route[2].Copy()
		dup.Accuracy = nil
		route = append(route[:3], append(trackpoint.TrackPoints{dup}, route[3:]...)...)

		res := Route(route, nil)
		if res.RemovedCount != 0 {
			t.Errorf("expected both same-timestamp points kept, got %d removed", res.RemovedCount)
		}
	})
}

func TestRoute_OutlierPass(t *testing.T) {
	// 30s intervals keep the lateral spikes under the speed ceiling so
	// only the outlier pass can judge them.
	t.Run("single spike removed", func(t *testing.T) {
		route := testdata.StraightRoute(7, 10, 30*time.Second, 5)
		eastOffset(route[3], 200)
		res := Route(route, nil)
		if res.RemovedCount != 1 {
			t.Errorf("expected the spike removed, got %d", res.RemovedCount)
		}
	})
	t.Run("paired spikes survive", func(t *testing.T) {
		route := testdata.StraightRoute(7, 10, 30*time.Second, 5)
		eastOffset(route[3], 150)
		eastOffset(route[4], 150)
		res := Route(route, nil)
		if res.RemovedCount != 0 {
			t.Errorf("expected paired deviation kept, got %d removed", res.RemovedCount)
		}
	})
	t.Run("endpoints unconditional", func(t *testing.T) {
		route := testdata.StraightRoute(5, 10, 30*time.Second, 5)
		res := Route(route, nil)
		if res.Points[0].Lat != route[0].Lat || res.Points[len(res.Points)-1].Lat != route[4].Lat {
			t.Error("endpoints not preserved")
		}
	})
}

func TestRoute_Idempotent(t *testing.T) {
	route := testdata.Teleported(testdata.StraightRoute(8, 10, 5*time.Second, 5), 4, 5)
	route[2].Accuracy = testdata.Float(80)

	first := Route(route, nil)
	second := Route(first.Points, nil)
	if second.RemovedCount != 0 {
		t.Errorf("re-validation removed %d points", second.RemovedCount)
	}
	if len(second.Points) != len(first.Points) {
		t.Errorf("point count changed: %d -> %d", len(first.Points), len(second.Points))
	}
	if second.QualityScore < first.QualityScore {
		t.Errorf("score dropped on re-validation: %d -> %d", first.QualityScore, second.QualityScore)
	}
}

func TestRoute_PublishesValidatedRoute(t *testing.T) {
	ch := make(chan trackpoint.TrackPoints, 1)
	sub := events.ValidatedRouteFeed.Subscribe(ch)
	defer sub.Unsubscribe()

	route := testdata.StraightRoute(5, 10, 5*time.Second, 5)
	res := Route(route, nil)

	select {
	case got := <-ch:
		if len(got) != len(res.Points) {
			t.Errorf("feed carried %d points, result %d", len(got), len(res.Points))
		}
	case <-time.After(time.Second):
		t.Fatal("validated route never published")
	}
}

func TestRoute_CustomConfig(t *testing.T) {
	cfg := &params.ValidationConfig{
		MaxSpeed:          50,
		MaxAccuracy:       50,
		MinPointsRequired: 3,
		OutlierThreshold:  100,
	}
	route := testdata.StraightRoute(3, 10, 5*time.Second, 5)
	res := Route(route, cfg)
	if !res.IsValid {
		t.Error("3 points invalid under MinPointsRequired=3")
	}
}
