package meshfabric

// SwitchTopologyImpl introduces one extra device (id = npus_count, the
// switch) that every NPU links to bidirectionally.
type SwitchTopologyImpl struct {
	base
	switchID DeviceId
}

// NewSwitch builds a Switch dimension.
func NewSwitch(npusCount int, bandwidth Bandwidth, latency Latency, standalone bool, faults *FaultTable) *SwitchTopologyImpl {
	t := &SwitchTopologyImpl{
		base:     newBase(SwitchTopology, npusCount, npusCount+1, bandwidth, latency, true, standalone, faults),
		switchID: DeviceId(npusCount),
	}
	for i := 0; i < npusCount; i++ {
		t.installStandalone(DeviceId(i), t.switchID, bandwidth, true)
	}
	return t
}

// Route always goes through the switch: [src, switch, dst], or just
// [src] when src == dst.
func (t *SwitchTopologyImpl) Route(src, dst DeviceId) Route {
	if src == dst {
		return Route{t.device(src)}
	}
	return Route{t.device(src), t.device(t.switchID), t.device(dst)}
}

// ConnectionPolicies emits (i, switch) and (switch, i) for every NPU i.
func (t *SwitchTopologyImpl) ConnectionPolicies() []ConnectionPolicy {
	n := t.npusCount
	policies := make([]ConnectionPolicy, 0, 2*n)
	for i := 0; i < n; i++ {
		policies = append(policies, ConnectionPolicy{Src: DeviceId(i), Dst: t.switchID})
		policies = append(policies, ConnectionPolicy{Src: t.switchID, Dst: DeviceId(i)})
	}
	return policies
}
