package meshfabric

import "testing"

func TestRouteFrontBack(t *testing.T) {
	route := Route{{ID: 0}, {ID: 1}, {ID: 2}}
	front, ok := route.Front()
	if !ok || front.ID != 0 {
		t.Fatalf("Front() = %v, %v, want 0, true", front, ok)
	}
	back, ok := route.Back()
	if !ok || back.ID != 2 {
		t.Fatalf("Back() = %v, %v, want 2, true", back, ok)
	}
}

func TestRouteFrontBackEmpty(t *testing.T) {
	var route Route
	if _, ok := route.Front(); ok {
		t.Fatalf("Front() on empty route reported ok")
	}
	if _, ok := route.Back(); ok {
		t.Fatalf("Back() on empty route reported ok")
	}
}

func TestRouteComplete(t *testing.T) {
	route := Route{{ID: 0}, {ID: 1}, {ID: 2}}
	if !route.Complete(2) {
		t.Fatalf("Complete(2) = false, want true")
	}
	if route.Complete(3) {
		t.Fatalf("Complete(3) = true, want false")
	}
	var empty Route
	if empty.Complete(0) {
		t.Fatalf("Complete on empty route = true, want false")
	}
}

func TestRouteIDs(t *testing.T) {
	route := Route{{ID: 5}, {ID: 6}}
	ids := route.IDs()
	want := []DeviceId{5, 6}
	if !idsEqual(ids, want) {
		t.Fatalf("IDs() = %v, want %v", ids, want)
	}
}

func TestTopologyKindStringRoundTrip(t *testing.T) {
	kinds := []TopologyKind{
		Ring, Mesh1D, FullyConnected, SwitchTopology, Bus,
		BinaryTree, DoubleBinaryTree, HyperCube, Mesh2D, Torus2D, KingMesh2D,
	}
	for _, k := range kinds {
		name := k.String()
		parsed, err := ParseTopologyKind(name)
		if err != nil {
			t.Fatalf("ParseTopologyKind(%q): %v", name, err)
		}
		if parsed != k {
			t.Errorf("round-trip(%v) = %v via %q", k, parsed, name)
		}
	}
}

func TestParseTopologyKindRejectsUnknown(t *testing.T) {
	if _, err := ParseTopologyKind("Nonsense"); err == nil {
		t.Fatalf("expected error for unknown topology name")
	}
}

func TestMesh1DTagIsMeshNotMesh1D(t *testing.T) {
	if got := Mesh1D.String(); got != "Mesh" {
		t.Fatalf("Mesh1D.String() = %q, want %q", got, "Mesh")
	}
}
