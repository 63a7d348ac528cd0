package cache

import (
	"testing"
	"time"

	"github.com/striderun/strider/geo/pace"
	"github.com/striderun/strider/testing/testdata"
)

func TestLastKnown(t *testing.T) {
	if got := LastKnown("nobody"); got != nil {
		t.Errorf("unknown session returned %v", got)
	}

	route := testdata.StraightRoute(2, 10, 5*time.Second, 5)
	SetLastKnown("session-a", route[0])
	SetLastKnown("session-b", route[1])

	if got := LastKnown("session-a"); got != route[0] {
		t.Error("session-a returned wrong point")
	}
	if got := LastKnown("session-b"); got != route[1] {
		t.Error("session-b returned wrong point")
	}

	// Overwrite wins.
	SetLastKnown("session-a", route[1])
	if got := LastKnown("session-a"); got != route[1] {
		t.Error("overwrite did not take")
	}
}

func TestRouteKey(t *testing.T) {
	route := testdata.StraightRoute(5, 10, 5*time.Second, 5)

	a, err := RouteKey(route)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RouteKey(route.Copy())
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("identical route content hashed differently")
	}

	changed := route.Copy()
	changed[2].Lat += 0.001
	c, err := RouteKey(changed)
	if err != nil {
		t.Fatal(err)
	}
	if a == c {
		t.Error("different route content hashed identically")
	}
}

func TestReportMemoization(t *testing.T) {
	route := testdata.PacedRoute(3000, 30, 300)

	if _, ok := Report(route); ok {
		t.Fatal("cold cache reported a hit")
	}

	want := pace.Analyze(route, nil)
	SetReport(route, want)

	got, ok := Report(route)
	if !ok {
		t.Fatal("warm cache missed")
	}
	if got != want {
		t.Error("cache returned a different report")
	}

	// A copy with identical content is the same route.
	if _, ok := Report(route.Copy()); !ok {
		t.Error("content-identical copy missed the cache")
	}
}
