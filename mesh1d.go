package meshfabric

// Mesh1DTopology connects npus_count devices in a linear, non-wrapping
// chain 0 - 1 - ... - (n-1). This is the concrete variant behind the
// NetworkConfig topology tag "Mesh".
type Mesh1DTopology struct {
	base
}

// NewMesh1D builds a Mesh1D dimension.
func NewMesh1D(npusCount int, bandwidth Bandwidth, latency Latency, bidirectional, standalone bool, faults *FaultTable) *Mesh1DTopology {
	t := &Mesh1DTopology{base: newBase(Mesh1D, npusCount, npusCount, bandwidth, latency, bidirectional, standalone, faults)}
	for i := 0; i < npusCount-1; i++ {
		t.installStandalone(DeviceId(i), DeviceId(i+1), bandwidth, bidirectional)
	}
	return t
}

// Route is monotonic in the index direction from src to dst.
func (t *Mesh1DTopology) Route(src, dst DeviceId) Route {
	route := Route{}
	if dst >= src {
		for i := src; i <= dst; i++ {
			route = append(route, t.device(i))
		}
	} else {
		for i := src; i >= dst; i-- {
			route = append(route, t.device(i))
		}
	}
	return route
}

// ConnectionPolicies emits (i, i+1) for every adjacent pair, plus the
// reverse edge when bidirectional.
func (t *Mesh1DTopology) ConnectionPolicies() []ConnectionPolicy {
	n := t.npusCount
	policies := make([]ConnectionPolicy, 0, 2*(n-1))
	for i := 0; i < n-1; i++ {
		policies = append(policies, ConnectionPolicy{Src: DeviceId(i), Dst: DeviceId(i + 1)})
		if t.bidirectional {
			policies = append(policies, ConnectionPolicy{Src: DeviceId(i + 1), Dst: DeviceId(i)})
		}
	}
	return policies
}
