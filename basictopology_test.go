package meshfabric

import "testing"

func TestBaseAccessorsReflectConstruction(t *testing.T) {
	ring := NewRing(6, 50, 3, true, true, nil)
	if ring.Kind() != Ring {
		t.Errorf("Kind() = %v, want Ring", ring.Kind())
	}
	if ring.NpusCount() != 6 {
		t.Errorf("NpusCount() = %d, want 6", ring.NpusCount())
	}
	if ring.DevicesCount() != 6 {
		t.Errorf("DevicesCount() = %d, want 6", ring.DevicesCount())
	}
	if ring.LinkLatency() != 3 {
		t.Errorf("LinkLatency() = %v, want 3", ring.LinkLatency())
	}
	if ring.LinkBandwidthDim0() != 50 {
		t.Errorf("LinkBandwidthDim0() = %v, want 50", ring.LinkBandwidthDim0())
	}
}

// A faulted link is still installed rather than omitted entirely: a
// partial derate scales its bandwidth, and a health-0 entry leaves it
// installed at full nominal bandwidth (its brokenness is only consulted
// at routing time).
func TestInstallStandaloneAppliesDerateWithoutOmittingTheLink(t *testing.T) {
	faults := NewFaultTable([]FaultEntry{{U: 0, V: 1, Health: 0.25}})
	mesh := NewMesh1D(3, 100, 1, true, true, faults)
	bw, ok := mesh.Graph().Bandwidth(0, 1)
	if !ok {
		t.Fatalf("expected link 0->1 to still be installed under partial derate")
	}
	if bw != 25 {
		t.Fatalf("Bandwidth(0,1) = %v, want 25 (100 * 0.25)", bw)
	}
}

func TestInstallStandaloneFullyDeratedLinkStillInstalledAtFullBandwidth(t *testing.T) {
	faults := NewFaultTable([]FaultEntry{{U: 0, V: 1, Health: 0.0}})
	mesh := NewMesh1D(3, 100, 1, true, true, faults)
	bw, ok := mesh.Graph().Bandwidth(0, 1)
	if !ok {
		t.Fatalf("expected link 0->1 to still be installed at derate 0")
	}
	if bw != 100 {
		t.Fatalf("Bandwidth(0,1) = %v, want 100 (full nominal bandwidth at derate 0)", bw)
	}
}

// A dimension built non-standalone (embedded in a MultiDimTopology)
// never materializes its own links.
func TestEmbeddedTopologyInstallsNoLinksOfItsOwn(t *testing.T) {
	mesh := NewMesh1D(3, 100, 1, true, false, nil)
	if _, ok := mesh.Graph().Bandwidth(0, 1); ok {
		t.Fatalf("embedded topology should not install its own links")
	}
}
