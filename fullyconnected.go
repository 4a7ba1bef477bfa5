package meshfabric

// FullyConnectedTopology links every ordered pair (i, j), i != j.
type FullyConnectedTopology struct {
	base
}

// NewFullyConnected builds a FullyConnected dimension.
func NewFullyConnected(npusCount int, bandwidth Bandwidth, latency Latency, standalone bool, faults *FaultTable) *FullyConnectedTopology {
	t := &FullyConnectedTopology{base: newBase(FullyConnected, npusCount, npusCount, bandwidth, latency, false, standalone, faults)}
	for src := 0; src < npusCount; src++ {
		for dst := 0; dst < npusCount; dst++ {
			if src != dst {
				t.installStandalone(DeviceId(src), DeviceId(dst), bandwidth, false)
			}
		}
	}
	return t
}

// Route is always the direct hop [src, dst], or just [src] when src == dst.
func (t *FullyConnectedTopology) Route(src, dst DeviceId) Route {
	if src == dst {
		return Route{t.device(src)}
	}
	return Route{t.device(src), t.device(dst)}
}

// ConnectionPolicies emits every ordered pair (i, j), i != j.
func (t *FullyConnectedTopology) ConnectionPolicies() []ConnectionPolicy {
	n := t.npusCount
	policies := make([]ConnectionPolicy, 0, n*(n-1))
	for src := 0; src < n; src++ {
		for dst := 0; dst < n; dst++ {
			if src != dst {
				policies = append(policies, ConnectionPolicy{Src: DeviceId(src), Dst: DeviceId(dst)})
			}
		}
	}
	return policies
}
