package meshfabric

import "testing"

func TestRingRouteAnticlockwiseShorter(t *testing.T) {
	ring := NewRing(4, 100, 1, true, true, nil)
	route := ring.Route(0, 3)
	ids := route.IDs()
	want := []DeviceId{0, 3}
	if !idsEqual(ids, want) {
		t.Fatalf("route(0,3) = %v, want %v", ids, want)
	}
}

func TestRingRouteTieBreaksClockwise(t *testing.T) {
	ring := NewRing(4, 100, 1, true, true, nil)
	route := ring.Route(0, 2)
	if len(route) != 3 {
		t.Fatalf("route(0,2) length = %d, want 3", len(route))
	}
	ids := route.IDs()
	want := []DeviceId{0, 1, 2}
	if !idsEqual(ids, want) {
		t.Fatalf("route(0,2) = %v, want %v (clockwise tiebreak)", ids, want)
	}
}

func TestRingRouteLengthFormula(t *testing.T) {
	n := 8
	ring := NewRing(n, 100, 1, true, true, nil)
	for src := 0; src < n; src++ {
		for dst := 0; dst < n; dst++ {
			route := ring.Route(DeviceId(src), DeviceId(dst))
			diff := dst - src
			if diff < 0 {
				diff += n
			}
			other := n - diff
			want := 1 + min(diff, other)
			if len(route) != want {
				t.Errorf("route(%d,%d) length = %d, want %d", src, dst, len(route), want)
			}
		}
	}
}

func TestRingSelfRoute(t *testing.T) {
	ring := NewRing(4, 100, 1, true, true, nil)
	route := ring.Route(2, 2)
	if len(route) != 1 || route[0].ID != 2 {
		t.Fatalf("route(2,2) = %v, want [2]", route.IDs())
	}
}

func TestRingConnectionPoliciesBidirectionalCount(t *testing.T) {
	ring := NewRing(5, 100, 1, true, false, nil)
	policies := ring.ConnectionPolicies()
	if len(policies) != 10 {
		t.Fatalf("len(policies) = %d, want 10", len(policies))
	}
}

func idsEqual(a, b []DeviceId) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
