package meshfabric

import "testing"

func TestFullyConnectedRouteIsDirectHop(t *testing.T) {
	fc := NewFullyConnected(4, 100, 1, true, nil)
	route := fc.Route(2, 0)
	ids := route.IDs()
	want := []DeviceId{2, 0}
	if !idsEqual(ids, want) {
		t.Fatalf("route(2,0) = %v, want %v", ids, want)
	}
}

func TestFullyConnectedConnectionPolicyCount(t *testing.T) {
	fc := NewFullyConnected(4, 100, 1, false, nil)
	policies := fc.ConnectionPolicies()
	if len(policies) != 12 {
		t.Fatalf("len(policies) = %d, want 12", len(policies))
	}
}

func TestFullyConnectedRouteAlwaysLengthTwo(t *testing.T) {
	fc := NewFullyConnected(5, 100, 1, true, nil)
	for src := 0; src < 5; src++ {
		for dst := 0; dst < 5; dst++ {
			route := fc.Route(DeviceId(src), DeviceId(dst))
			if src == dst {
				continue
			}
			if len(route) != 2 {
				t.Errorf("route(%d,%d) length = %d, want 2", src, dst, len(route))
			}
		}
	}
}

func TestFullyConnectedSelfRoute(t *testing.T) {
	fc := NewFullyConnected(5, 100, 1, true, nil)
	route := fc.Route(2, 2)
	if len(route) != 1 || route[0].ID != 2 {
		t.Fatalf("route(2,2) = %v, want [2]", route.IDs())
	}
}
