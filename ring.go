package meshfabric

// ringBandwidthScale folds a ring link's two parallel directions into one
// effective per-link capacity when the ring is constructed standalone.
const ringBandwidthScale = 2.0

// RingTopology connects npus_count devices in a cycle 0 -> 1 -> ... ->
// n-1 -> 0, optionally bidirectionally.
type RingTopology struct {
	base
}

// NewRing builds a Ring dimension. When standalone is true it also
// materializes its own links.
func NewRing(npusCount int, bandwidth Bandwidth, latency Latency, bidirectional, standalone bool, faults *FaultTable) *RingTopology {
	t := &RingTopology{base: newBase(Ring, npusCount, npusCount, bandwidth, latency, bidirectional, standalone, faults)}
	for i := 0; i < npusCount; i++ {
		u := DeviceId(i)
		v := DeviceId((i + 1) % npusCount)
		t.installStandalone(u, v, Bandwidth(float64(bandwidth)*ringBandwidthScale), bidirectional)
	}
	return t
}

// Route picks the shorter of the two directions around the ring
// (bidirectional only), breaking ties by going clockwise, and walks
// hop-by-hop to dest. Ring does not consult the fault table while
// routing: it never detours around a derate-0 link and never stops
// short — such a hop is still traversed (the link itself stays installed
// at full nominal bandwidth), matching the original topology's route
// implementation.
func (t *RingTopology) Route(src, dst DeviceId) Route {
	n := t.npusCount
	step := 1
	if t.bidirectional {
		clockwise := int(dst) - int(src)
		if clockwise < 0 {
			clockwise += n
		}
		anticlockwise := n - clockwise
		if anticlockwise < clockwise {
			step = -1
		}
	}

	route := Route{t.device(src)}
	cur := int(src)
	for cur != int(dst) {
		cur += step
		if cur < 0 {
			cur += n
		} else if cur >= n {
			cur -= n
		}
		route = append(route, t.device(DeviceId(cur)))
	}
	return route
}

// ConnectionPolicies emits (i, i+1 mod n) for every i, plus the reverse
// edges when bidirectional.
func (t *RingTopology) ConnectionPolicies() []ConnectionPolicy {
	n := t.npusCount
	policies := make([]ConnectionPolicy, 0, 2*n)
	for i := 0; i < n; i++ {
		policies = append(policies, ConnectionPolicy{Src: DeviceId(i), Dst: DeviceId((i + 1) % n)})
	}
	if t.bidirectional {
		for i := 0; i < n; i++ {
			policies = append(policies, ConnectionPolicy{Src: DeviceId((i + 1) % n), Dst: DeviceId(i)})
		}
	}
	return policies
}
