package meshfabric

import "testing"

// Every BasicTopology's route(x, x) is exactly [x], length 1, in every
// topology, per the universal self-route boundary property.
func TestSelfRouteCompletesForEveryTopology(t *testing.T) {
	cases := []struct {
		kind      TopologyKind
		npusCount int
	}{
		{Ring, 5},
		{Mesh1D, 5},
		{FullyConnected, 5},
		{SwitchTopology, 5},
		{Bus, 5},
		{BinaryTree, 7},
		{DoubleBinaryTree, 7},
		{HyperCube, 8},
		{Mesh2D, 9},
		{Torus2D, 9},
		{KingMesh2D, 9},
	}
	for _, c := range cases {
		topo, err := NewBasicTopology(c.kind, c.npusCount, 100, 1, true, nil)
		if err != nil {
			t.Fatalf("NewBasicTopology(%v): %v", c.kind, err)
		}
		for x := 0; x < c.npusCount; x++ {
			route := topo.Route(DeviceId(x), DeviceId(x))
			if len(route) != 1 || route[0].ID != DeviceId(x) {
				t.Errorf("%v: route(%d,%d) = %v, want [%d]", c.kind, x, x, route.IDs(), x)
			}
		}
	}
}

// npus_count == 2 is legal for every topology that doesn't impose a grid
// shape constraint.
func TestNpusCountTwoIsLegalWhereApplicable(t *testing.T) {
	kinds := []TopologyKind{
		Ring, Mesh1D, FullyConnected, SwitchTopology, Bus,
		BinaryTree, DoubleBinaryTree, HyperCube,
	}
	for _, kind := range kinds {
		topo, err := NewBasicTopology(kind, 2, 100, 1, true, nil)
		if err != nil {
			t.Fatalf("NewBasicTopology(%v, npus_count=2): %v", kind, err)
		}
		route := topo.Route(0, 1)
		if !route.Complete(1) {
			t.Errorf("%v: route(0,1) = %v, not complete", kind, route.IDs())
		}
	}
}

// A fault at derate 0.0 on the sole link of a two-node HyperCube leaves
// routing with no detour option; the route must stop short of dest.
func TestUnreachableDestinationUnderFaultProducesPartialRoute(t *testing.T) {
	faults := NewFaultTable([]FaultEntry{{U: 0, V: 1, Health: 0.0}})
	topo, err := NewHyperCube(2, 100, 1, true, true, faults)
	if err != nil {
		t.Fatalf("NewHyperCube: %v", err)
	}
	route := topo.Route(0, 1)
	if route.Complete(1) {
		t.Fatalf("route(0,1) = %v, expected a partial route under a fully faulted link", route.IDs())
	}
	back, ok := route.Back()
	if !ok || back.ID != 0 {
		t.Fatalf("route(0,1) ended at %v, want to stop at 0", route.IDs())
	}
}

// connection_policies(), deduplicated, describes exactly the set of
// directed links a bidirectional topology installs when built standalone.
func TestConnectionPoliciesMatchInstalledLinks(t *testing.T) {
	kinds := []TopologyKind{Ring, Mesh1D, HyperCube, Mesh2D, Torus2D, KingMesh2D, BinaryTree}
	for _, kind := range kinds {
		npusCount := 8
		switch kind {
		case Mesh2D, Torus2D, KingMesh2D:
			npusCount = 9
		case BinaryTree:
			npusCount = 7
		}
		topo, err := NewBasicTopology(kind, npusCount, 100, 1, true, nil)
		if err != nil {
			t.Fatalf("NewBasicTopology(%v): %v", kind, err)
		}
		seen := map[ConnectionPolicy]bool{}
		for _, p := range topo.ConnectionPolicies() {
			seen[p] = true
		}
		for pair := range seen {
			if !topo.Graph().HasLink(pair.Src, pair.Dst) {
				t.Errorf("%v: policy %v has no installed link", kind, pair)
			}
		}
		for u := 0; u < npusCount; u++ {
			for _, v := range topo.Graph().LinksFrom(DeviceId(u)) {
				if !seen[ConnectionPolicy{Src: DeviceId(u), Dst: v}] {
					t.Errorf("%v: installed link %d->%d has no matching policy", kind, u, v)
				}
			}
		}
	}
}

// Building the same configuration twice yields isomorphic topologies:
// identical device counts and an identical installed-link relation.
func TestBuildingSameConfigTwiceYieldsIsomorphicTopologies(t *testing.T) {
	build := func() *MultiDimTopology {
		cfg := buildRingRingConfig(t, nil)
		mdt, err := BuildMultiDimTopology(cfg)
		if err != nil {
			t.Fatalf("BuildMultiDimTopology: %v", err)
		}
		return mdt
	}
	a, b := build(), build()
	if a.NpusCount() != b.NpusCount() {
		t.Fatalf("NpusCount mismatch: %d vs %d", a.NpusCount(), b.NpusCount())
	}
	for u := 0; u < a.NpusCount(); u++ {
		linksA := a.Graph().LinksFrom(DeviceId(u))
		linksB := b.Graph().LinksFrom(DeviceId(u))
		if len(linksA) != len(linksB) {
			t.Fatalf("LinksFrom(%d) length mismatch: %v vs %v", u, linksA, linksB)
		}
		for _, v := range linksA {
			if !b.Graph().HasLink(DeviceId(u), v) {
				t.Errorf("link %d->%d present in build a but not build b", u, v)
			}
		}
	}
}
