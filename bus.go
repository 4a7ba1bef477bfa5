package meshfabric

// BusTopology models every NPU as a spoke off a single shared bus device
// (id = npus_count). A bus and a switch differ only in bandwidth-sharing
// semantics that are out of scope for this non-congestion-aware core, so
// BusTopology reuses Switch's route and connection-policy shape exactly.
type BusTopology struct {
	base
	busID DeviceId
}

// NewBus builds a Bus dimension.
func NewBus(npusCount int, bandwidth Bandwidth, latency Latency, standalone bool, faults *FaultTable) *BusTopology {
	t := &BusTopology{
		base:  newBase(Bus, npusCount, npusCount+1, bandwidth, latency, true, standalone, faults),
		busID: DeviceId(npusCount),
	}
	for i := 0; i < npusCount; i++ {
		t.installStandalone(DeviceId(i), t.busID, bandwidth, true)
	}
	return t
}

// Route always goes through the bus: [src, bus, dst], or just [src]
// when src == dst.
func (t *BusTopology) Route(src, dst DeviceId) Route {
	if src == dst {
		return Route{t.device(src)}
	}
	return Route{t.device(src), t.device(t.busID), t.device(dst)}
}

// ConnectionPolicies emits (i, bus) and (bus, i) for every NPU i.
func (t *BusTopology) ConnectionPolicies() []ConnectionPolicy {
	n := t.npusCount
	policies := make([]ConnectionPolicy, 0, 2*n)
	for i := 0; i < n; i++ {
		policies = append(policies, ConnectionPolicy{Src: DeviceId(i), Dst: t.busID})
		policies = append(policies, ConnectionPolicy{Src: t.busID, Dst: DeviceId(i)})
	}
	return policies
}
