package meshfabric

import "testing"

func buildRingRingConfig(t *testing.T, nonRecursiveFrom *int) *NetworkConfig {
	t.Helper()
	desc := &NetworkConfigDesc{
		Topology:         []string{"Ring", "Ring"},
		NpusCount:        []int{4, 4},
		Bandwidth:        []float64{100, 100},
		Latency:          []float64{1, 1},
		NonRecursiveFrom: nonRecursiveFrom,
	}
	cfg, err := desc.Validate(nil)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return cfg
}

func TestMultiDimAddressRoundTrip(t *testing.T) {
	cfg := buildRingRingConfig(t, nil)
	mdt, err := BuildMultiDimTopology(cfg)
	if err != nil {
		t.Fatalf("BuildMultiDimTopology: %v", err)
	}
	for id := 0; id < mdt.NpusCount(); id++ {
		addr := mdt.TranslateAddress(DeviceId(id))
		back := mdt.TranslateAddressBack(addr)
		if back != DeviceId(id) {
			t.Errorf("round-trip(%d) = %d via %v", id, back, addr)
		}
	}
}

func TestMultiDimRecursiveComposition(t *testing.T) {
	cfg := buildRingRingConfig(t, nil)
	mdt, err := BuildMultiDimTopology(cfg)
	if err != nil {
		t.Fatalf("BuildMultiDimTopology: %v", err)
	}
	if mdt.NpusCount() != 16 {
		t.Fatalf("NpusCount() = %d, want 16", mdt.NpusCount())
	}
	route := mdt.Route(0, 15)
	if !route.Complete(15) {
		t.Fatalf("route(0,15) did not complete: %v", route.IDs())
	}
	for i := 0; i < len(route)-1; i++ {
		u, v := route[i].ID, route[i+1].ID
		if !mdt.Graph().HasLink(u, v) {
			t.Errorf("route hop %d->%d is not an installed link", u, v)
		}
	}
}

func TestMultiDimClusterComposition(t *testing.T) {
	crossover := 1
	cfg := buildRingRingConfig(t, &crossover)
	mdt, err := BuildMultiDimTopology(cfg)
	if err != nil {
		t.Fatalf("BuildMultiDimTopology: %v", err)
	}
	if !mdt.IsCluster() {
		t.Fatalf("expected cluster mode with non_recursive_from=1")
	}
	route := mdt.Route(5, 14)
	if !route.Complete(14) {
		t.Fatalf("route(5,14) did not complete: %v", route.IDs())
	}
	for i := 0; i < len(route)-1; i++ {
		u, v := route[i].ID, route[i+1].ID
		if !mdt.Graph().HasLink(u, v) {
			t.Errorf("route hop %d->%d is not an installed link", u, v)
		}
	}
}

func TestMultiDimSwitchDimensionTranslation(t *testing.T) {
	desc := &NetworkConfigDesc{
		Topology:  []string{"Switch", "Ring"},
		NpusCount: []int{3, 4},
		Bandwidth: []float64{100, 100},
		Latency:   []float64{1, 1},
	}
	cfg, err := desc.Validate(nil)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	mdt, err := BuildMultiDimTopology(cfg)
	if err != nil {
		t.Fatalf("BuildMultiDimTopology: %v", err)
	}
	// npus_count = 3*4 = 12; switch dim 0 contributes npus_count_per_dim[1] = 4 extra devices.
	if mdt.GetTotalNumDevices() != 16 {
		t.Fatalf("GetTotalNumDevices() = %d, want 16", mdt.GetTotalNumDevices())
	}
}
